// Package timezone provides the application clock used for booking rows.
//
// The record store keeps created_at as a plain formatted string, so every
// timestamp written to it must come from one location to stay comparable:
//
//	created := timezone.Format(timezone.Now(), constant.CreatedAtLayout)
//
// Supported timezone formats:
// - Standard IANA names only: "UTC", "Asia/Kuala_Lumpur", "Europe/London"
//
// The timezone is configured via the APP_TIMEZONE environment variable
// and is automatically initialized when the package is imported.
package timezone
