package booking

import (
	"net/http"

	"homestay/infras/otel"
	"homestay/internal/domains/booking/service"
	"homestay/shared/constant"
	gDto "homestay/shared/dto"
	"homestay/transport/http/middleware"
	"homestay/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	workflow   service.Workflow
	middleware middleware.AppMiddleware
	otel       otel.Otel
}

func New(workflow service.Workflow, middleware middleware.AppMiddleware, otel otel.Otel) Handler {
	return Handler{
		workflow:   workflow,
		middleware: middleware,
		otel:       otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.Use(handler.middleware.RequireAPIKey)
		routerGroup.Get("/", handler.GetBookings)
	})
}

// GetBookings lists stored booking rows, newest first, for the operator.
func (handler *Handler) GetBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	bookings, err := handler.workflow.GetAll(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get bookings")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Bookings retrieved successfully")

	response.WithJSON(w, http.StatusOK, bookings)
}
