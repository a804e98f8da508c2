package webhook

import (
	"net/http"

	"homestay/infras/otel"
	"homestay/internal/domains/booking/model/dto"
	"homestay/internal/domains/booking/service"
	"homestay/shared/constant"
	"homestay/shared/failure"
	"homestay/shared/validator"
	"homestay/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	workflow service.Workflow
	otel     otel.Otel
}

func New(workflow service.Workflow, otel otel.Otel) Handler {
	return Handler{
		workflow: workflow,
		otel:     otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Post("/webhook", handler.ReceiveMessage)
}

// ReceiveMessage handles one inbound chat message from the messaging
// gateway. The response always carries HTTP 200 with the gateway's reply
// envelope; workflow failures surface as reply text, not as error statuses.
func (handler *Handler) ReceiveMessage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ReceiveMessage")
	defer scope.End()

	if err := r.ParseForm(); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse webhook form")

		response.WithError(w, failure.BadRequestFromString("malformed form body"))

		return
	}

	msg := dto.InboundMessage{
		Phone:    r.PostFormValue(constant.FormFieldFrom),
		Body:     r.PostFormValue(constant.FormFieldBody),
		MediaURL: r.PostFormValue(constant.FormFieldMediaURL),
	}

	if err := validator.ValidateStruct(&msg); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate webhook fields")

		response.WithError(w, err)

		return
	}

	// A malformed attachment reference is treated as no attachment, so the
	// message falls through to the default reply path instead of bouncing.
	if msg.MediaURL != constant.Empty {
		if err := validator.ValidateVar(msg.MediaURL, "url"); err != nil {
			log.Warn().Str("media", msg.MediaURL).Msg("ignoring malformed media URL")

			msg.MediaURL = constant.Empty
		}
	}

	scope.SetAttribute("webhook.phone", msg.Phone)

	reply := handler.workflow.HandleMessage(ctx, msg)

	response.WithPayload(w, http.StatusOK, dto.WebhookResponseFromReply(reply))
}
