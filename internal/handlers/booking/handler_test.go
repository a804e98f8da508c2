package booking_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"homestay/config"
	"homestay/infras/otel/mocks"
	bookingMocks "homestay/internal/domains/booking/mocks"
	"homestay/internal/domains/booking/model/dto"
	"homestay/internal/handlers/booking"
	cacheMocks "homestay/shared/cache/mocks"
	"homestay/shared/constant"
	gDto "homestay/shared/dto"
	"homestay/transport/http/middleware"
)

const testAPIKey = "operator-key"

func newRouter(workflow *bookingMocks.MockWorkflow, ctrl *gomock.Controller) *chi.Mux {
	cfg := &config.Config{}
	cfg.App.APIKey = testAPIKey

	appMiddleware := middleware.NewAppMiddleware(mocks.NewOtel(), cfg, cacheMocks.NewMockRedisCache(ctrl))
	handler := booking.New(workflow, appMiddleware, mocks.NewOtel())

	router := chi.NewRouter()
	router.Route("/v1", handler.Router)

	return router
}

func TestGetBookings(t *testing.T) {
	t.Run("listsBookingsWithValidKey", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		workflow := bookingMocks.NewMockWorkflow(ctrl)
		workflow.EXPECT().
			GetAll(gomock.Any(), gDto.QueryParams{Page: 1, Limit: 10}).
			Return(dto.GetBookingsResponse{
				Bookings:  []dto.BookingResponse{{Phone: "+60123"}},
				Page:      1,
				Limit:     10,
				Total:     1,
				TotalPage: 1,
			}, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/bookings/", nil)
		req.Header.Set(constant.RequestHeaderAPIKey, testAPIKey)

		recorder := httptest.NewRecorder()
		newRouter(workflow, ctrl).ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "+60123")
	})

	t.Run("missingKeyIsForbidden", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		workflow := bookingMocks.NewMockWorkflow(ctrl)

		req := httptest.NewRequest(http.MethodGet, "/v1/bookings/", nil)

		recorder := httptest.NewRecorder()
		newRouter(workflow, ctrl).ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusForbidden, recorder.Code)
	})

	t.Run("wrongKeyIsForbidden", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		workflow := bookingMocks.NewMockWorkflow(ctrl)

		req := httptest.NewRequest(http.MethodGet, "/v1/bookings/", nil)
		req.Header.Set(constant.RequestHeaderAPIKey, "wrong")

		recorder := httptest.NewRecorder()
		newRouter(workflow, ctrl).ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusForbidden, recorder.Code)
	})
}
