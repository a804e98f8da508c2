package media_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"homestay/infras/otel/mocks"
	s3Mocks "homestay/infras/s3/mocks"
	"homestay/internal/domains/booking/media"
	"homestay/shared/failure"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestArchive(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	bookingRef := "3f1c9d20-0000-0000-0000-000000000000"

	t.Run("uploadsFetchedMedia", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "image/jpeg")
			_, _ = w.Write([]byte("jpeg-bytes"))
		}))
		defer server.Close()

		storage := s3Mocks.NewMockS3(ctrl)
		storage.EXPECT().
			UploadFileBytes(gomock.Any(), "", "payment-proofs", bookingRef+".jpg", "image/jpeg", []byte("jpeg-bytes")).
			Return("https://cdn.example.com/payment-proofs/"+bookingRef+".jpg", nil)

		archiver := media.New(storage, mocks.NewOtel())

		url, err := archiver.Archive(context.Background(), server.URL, bookingRef)

		assert.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/payment-proofs/"+bookingRef+".jpg", url)
	})

	t.Run("gatewayReturnsNotFound", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		storage := s3Mocks.NewMockS3(ctrl)

		archiver := media.New(storage, mocks.NewOtel())

		_, err := archiver.Archive(context.Background(), server.URL, bookingRef)

		assert.Error(t, err)
		assert.Equal(t, http.StatusServiceUnavailable, failure.GetCode(err))
	})

	t.Run("uploadFails", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "image/png")
			_, _ = w.Write([]byte("png-bytes"))
		}))
		defer server.Close()

		storage := s3Mocks.NewMockS3(ctrl)
		storage.EXPECT().
			UploadFileBytes(gomock.Any(), "", "payment-proofs", bookingRef+".png", "image/png", []byte("png-bytes")).
			Return("", assert.AnError)

		archiver := media.New(storage, mocks.NewOtel())

		_, err := archiver.Archive(context.Background(), server.URL, bookingRef)

		assert.Error(t, err)
		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	})
}
