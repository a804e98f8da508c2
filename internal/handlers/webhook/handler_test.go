package webhook_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"homestay/infras/otel/mocks"
	bookingMocks "homestay/internal/domains/booking/mocks"
	"homestay/internal/domains/booking/model/dto"
	"homestay/internal/handlers/webhook"
	"homestay/shared/constant"
)

func newRouter(workflow *bookingMocks.MockWorkflow) *chi.Mux {
	handler := webhook.New(workflow, mocks.NewOtel())

	router := chi.NewRouter()
	router.Route("/v1", handler.Router)

	return router
}

func postForm(router http.Handler, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/v1/webhook", strings.NewReader(form.Encode()))
	req.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeFormURLEncoded)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	return recorder
}

func TestReceiveMessage(t *testing.T) {
	t.Run("replyKeepsGatewayEnvelopeShape", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		workflow := bookingMocks.NewMockWorkflow(ctrl)
		workflow.EXPECT().
			HandleMessage(gomock.Any(), dto.InboundMessage{
				Phone: "+60123456789",
				Body:  "I want to book",
			}).
			Return(dto.Reply{Body: "Booking received!"})

		recorder := postForm(newRouter(workflow), url.Values{
			constant.FormFieldFrom: {"+60123456789"},
			constant.FormFieldBody: {"I want to book"},
		})

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.JSONEq(t, `{"messages":[{"body":"Booking received!"}]}`, recorder.Body.String())
	})

	t.Run("mediaURLIsForwarded", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		workflow := bookingMocks.NewMockWorkflow(ctrl)
		workflow.EXPECT().
			HandleMessage(gomock.Any(), dto.InboundMessage{
				Phone:    "+60123456789",
				Body:     "receipt attached",
				MediaURL: "https://media.example.com/proof.jpg",
			}).
			Return(dto.Reply{Body: "Payment proof received!"})

		recorder := postForm(newRouter(workflow), url.Values{
			constant.FormFieldFrom:     {"+60123456789"},
			constant.FormFieldBody:     {"receipt attached"},
			constant.FormFieldMediaURL: {"https://media.example.com/proof.jpg"},
		})

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.JSONEq(t, `{"messages":[{"body":"Payment proof received!"}]}`, recorder.Body.String())
	})

	t.Run("mediaOnlyMessageWithoutCaptionIsAccepted", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		workflow := bookingMocks.NewMockWorkflow(ctrl)
		workflow.EXPECT().
			HandleMessage(gomock.Any(), dto.InboundMessage{
				Phone:    "+60123456789",
				MediaURL: "https://media.example.com/proof.jpg",
			}).
			Return(dto.Reply{Body: "Payment proof received!"})

		recorder := postForm(newRouter(workflow), url.Values{
			constant.FormFieldFrom:     {"+60123456789"},
			constant.FormFieldBody:     {""},
			constant.FormFieldMediaURL: {"https://media.example.com/proof.jpg"},
		})

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.JSONEq(t, `{"messages":[{"body":"Payment proof received!"}]}`, recorder.Body.String())
	})

	t.Run("missingSenderIsRejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		workflow := bookingMocks.NewMockWorkflow(ctrl)

		recorder := postForm(newRouter(workflow), url.Values{
			constant.FormFieldBody: {"hello"},
		})

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("malformedMediaURLIsTreatedAsAbsent", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		workflow := bookingMocks.NewMockWorkflow(ctrl)
		workflow.EXPECT().
			HandleMessage(gomock.Any(), dto.InboundMessage{
				Phone: "+60123456789",
				Body:  "receipt",
			}).
			Return(dto.Reply{Body: "Please attach your payment receipt."})

		recorder := postForm(newRouter(workflow), url.Values{
			constant.FormFieldFrom:     {"+60123456789"},
			constant.FormFieldBody:     {"receipt"},
			constant.FormFieldMediaURL: {"not-a-url"},
		})

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.JSONEq(t, `{"messages":[{"body":"Please attach your payment receipt."}]}`, recorder.Body.String())
	})
}
