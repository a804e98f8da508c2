package sheets

import (
	"context"

	"homestay/config"

	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// New builds the Google Sheets service backing the booking record store.
func New(config *config.Config) *sheets.Service {
	ctx := context.Background()

	service, err := sheets.NewService(ctx,
		option.WithCredentialsFile(config.Sheets.CredentialsFile),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create Google Sheets service")
	}

	log.Info().
		Str("spreadsheet", config.Sheets.SpreadsheetID).
		Str("sheet", config.Sheets.SheetName).
		Msg("Connected to Google Sheets")

	return service
}
