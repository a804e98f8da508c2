package media

//go:generate go run go.uber.org/mock/mockgen -source=./archiver.go -destination=./mocks/archiver_mock.go -package=mocks

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"homestay/infras/otel"
	"homestay/infras/s3"
	"homestay/shared/constant"
	"homestay/shared/failure"
	"homestay/shared/logger"
)

const (
	archiveDirectory = "payment-proofs"
	fetchTimeout     = 30 * time.Second

	// The gateway hosts media behind short-lived URLs, so fetched proofs are
	// capped instead of streamed.
	maxMediaBytes = 16 << 20
)

// Archiver copies a gateway-hosted payment proof into durable storage and
// returns its archived URL.
type Archiver interface {
	Archive(ctx context.Context, mediaURL, bookingRef string) (string, error)
}

type archiverImpl struct {
	client  *http.Client
	storage s3.S3
	otel    otel.Otel
}

func New(storage s3.S3, otl otel.Otel) Archiver {
	return &archiverImpl{
		client:  &http.Client{Timeout: fetchTimeout},
		storage: storage,
		otel:    otl,
	}
}

func (a *archiverImpl) Archive(ctx context.Context, mediaURL, bookingRef string) (url string, err error) {
	ctx, scope := a.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".media.Archive")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute("booking.ref", bookingRef)

	data, contentType, err := a.fetch(ctx, mediaURL)
	if err != nil {
		logger.ErrorWithStack(err)

		return constant.Empty, err
	}

	fileName := fmt.Sprintf("%s%s", bookingRef, extensionFor(contentType))

	url, err = a.storage.UploadFileBytes(ctx, constant.Empty, archiveDirectory, fileName, contentType, data)
	if err != nil {
		logger.ErrorWithStack(err)

		return constant.Empty, failure.InternalError(err)
	}

	return url, nil
}

func (a *archiverImpl) fetch(ctx context.Context, mediaURL string) (data []byte, contentType string, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, mediaURL, nil)
	if err != nil {
		return nil, constant.Empty, failure.BadRequestFromString("invalid media url")
	}

	res, err := a.client.Do(req)
	if err != nil {
		return nil, constant.Empty, failure.Unavailable(fmt.Sprintf("failed to fetch media: %v", err))
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, constant.Empty, failure.Unavailable(fmt.Sprintf("failed to fetch media: status %d", res.StatusCode))
	}

	data, err = io.ReadAll(io.LimitReader(res.Body, maxMediaBytes))
	if err != nil {
		return nil, constant.Empty, failure.Unavailable(fmt.Sprintf("failed to read media body: %v", err))
	}

	return data, res.Header.Get(constant.RequestHeaderContentType), nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "application/pdf":
		return ".pdf"
	default:
		return ".bin"
	}
}
