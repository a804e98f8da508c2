package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"homestay/config"
	"homestay/infras/kafka"
	"homestay/infras/otel"
	"homestay/internal/domains/booking/media"
	"homestay/internal/domains/booking/model"
	"homestay/internal/domains/booking/model/dto"
	"homestay/internal/domains/booking/repository"
	intentModel "homestay/internal/domains/intent/model"
	intentService "homestay/internal/domains/intent/service"
	"homestay/shared/constant"
	sharedDto "homestay/shared/dto"
	"homestay/shared/failure"
	"homestay/shared/logger"
	"homestay/shared/timezone"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// User-facing replies. Every workflow outcome maps to exactly one of these;
// internal error details never reach the guest.
const (
	ReplyServiceUnavailable  = "Sorry, our booking assistant is temporarily unavailable. Please try again later."
	ReplyInvalidGuests       = "Please send a valid number of guests for your stay."
	ReplyMaxGuests           = "We can host at most 6 guests per booking."
	ReplyBookingSaveFailed   = "We could not save your booking right now. Please try again shortly."
	ReplyPaymentReceived     = "Payment proof received! We will verify it and confirm your booking shortly."
	ReplyPaymentUpdateFailed = "We could not record your payment proof right now. Please try again shortly."

	replyBookingCreatedFormat = "Booking received! Please transfer the deposit to %s to confirm your stay."
)

// Workflow stitches stateless webhook calls into the reservation lifecycle.
// HandleMessage never returns an error: every failure is converted into a
// well-formed reply here, nothing propagates to the transport layer.
type Workflow interface {
	HandleMessage(ctx context.Context, msg dto.InboundMessage) dto.Reply
	GetAll(ctx context.Context, params sharedDto.QueryParams) (dto.GetBookingsResponse, error)
}

type workflowImpl struct {
	store      repository.RecordStore
	classifier intentService.Classifier
	archiver   media.Archiver
	producer   kafka.Client
	config     *config.Config
	otel       otel.Otel
}

func New(
	store repository.RecordStore,
	classifier intentService.Classifier,
	archiver media.Archiver,
	producer kafka.Client,
	config *config.Config,
	otl otel.Otel,
) Workflow {
	return &workflowImpl{
		store:      store,
		classifier: classifier,
		archiver:   archiver,
		producer:   producer,
		config:     config,
		otel:       otl,
	}
}

func (svc *workflowImpl) HandleMessage(ctx context.Context, msg dto.InboundMessage) dto.Reply {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.HandleMessage")
	defer scope.End()

	// The phone number doubles as the classifier session, so one guest's
	// messages share conversation context on the classifier side.
	result, err := svc.classifier.Detect(ctx, msg.Phone, msg.Body)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return dto.Reply{Body: ReplyServiceUnavailable}
	}

	scope.SetAttribute("intent.name", result.Intent)

	switch {
	case result.Intent == intentModel.IntentBookHomestay:
		return svc.bookHomestay(ctx, msg, result.Slots)
	case result.Intent == intentModel.IntentConfirmPayment && msg.MediaURL != constant.Empty:
		return svc.confirmPayment(ctx, msg)
	default:
		// Unrecognized intents, and ConfirmPayment without an attachment,
		// fall through to the classifier's own reply.
		return dto.Reply{Body: result.FulfillmentText}
	}
}

func (svc *workflowImpl) bookHomestay(ctx context.Context, msg dto.InboundMessage, slots intentModel.Slots) dto.Reply {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.bookHomestay")
	defer scope.End()

	guests, err := slots.Int(intentModel.SlotGuests)
	if err != nil || guests <= 0 {
		return dto.Reply{Body: ReplyInvalidGuests}
	}

	if guests > model.MaxGuests {
		return dto.Reply{Body: ReplyMaxGuests}
	}

	record := model.Record{
		CreatedAt:    timezone.Now().Format(constant.CreatedAtLayout),
		Phone:        msg.Phone,
		CheckinDate:  slots.String(intentModel.SlotCheckinDate),
		CheckoutDate: slots.String(intentModel.SlotCheckoutDate),
		Guests:       guests,
		BookingRef:   uuid.NewString(),
		Status:       model.StatusPendingPayment,
	}

	if err := svc.store.Append(ctx, record); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return dto.Reply{Body: ReplyBookingSaveFailed}
	}

	svc.publishEvent(ctx, model.BookingEvent{
		Event:      model.EventBookingCreated,
		Phone:      record.Phone,
		BookingRef: record.BookingRef,
		Status:     record.Status,
		OccurredAt: timezone.Now(),
	})

	return dto.Reply{Body: fmt.Sprintf(replyBookingCreatedFormat, svc.config.Booking.PaymentAccount)}
}

func (svc *workflowImpl) confirmPayment(ctx context.Context, msg dto.InboundMessage) dto.Reply {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.confirmPayment")
	defer scope.End()

	row, err := svc.store.FindMostRecentByPhone(ctx, msg.Phone)

	switch {
	case failure.IsNotFound(err):
		// No booking row matched, but the proof is still acknowledged. The
		// operator reconciles unmatched proofs by hand.
		log.Warn().Str("phone", msg.Phone).Msg("payment proof received without a matching booking")

		return dto.Reply{Body: ReplyPaymentReceived}
	case err != nil:
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return dto.Reply{Body: ReplyPaymentUpdateFailed}
	}

	// Both cells are updated independently. A partial failure leaves the
	// media ref written with the status unchanged; that intermediate state
	// is accepted, not rolled back.
	mediaErr := svc.store.UpdateCell(ctx, row.Index, model.ColumnMediaRef, msg.MediaURL)
	statusErr := svc.store.UpdateCell(ctx, row.Index, model.ColumnStatus, model.StatusPendingVerification)

	if mediaErr != nil || statusErr != nil {
		logger.ErrorWithStack(fmt.Errorf("failed to record payment proof: media=%v status=%v", mediaErr, statusErr))
		scope.TraceIfError(mediaErr)
		scope.TraceIfError(statusErr)

		return dto.Reply{Body: ReplyPaymentUpdateFailed}
	}

	svc.archiveProof(ctx, msg.MediaURL, row.Record.BookingRef)

	svc.publishEvent(ctx, model.BookingEvent{
		Event:      model.EventPaymentReceived,
		Phone:      msg.Phone,
		BookingRef: row.Record.BookingRef,
		Status:     model.StatusPendingVerification,
		OccurredAt: timezone.Now(),
	})

	return dto.Reply{Body: ReplyPaymentReceived}
}

func (svc *workflowImpl) GetAll(ctx context.Context, params sharedDto.QueryParams) (dto.GetBookingsResponse, error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.GetAll")
	defer scope.End()

	records, total, err := svc.store.GetAll(ctx, params)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return dto.GetBookingsResponse{}, err
	}

	return dto.GetBookingsResponseFromModels(records, params.Page, params.Limit, total), nil
}

// publishEvent is best effort. A broker outage never changes the reply.
func (svc *workflowImpl) publishEvent(ctx context.Context, event model.BookingEvent) {
	err := svc.producer.SendMessages(ctx, svc.config.Kafka.Topic.BookingEvents, kafka.Message{
		Key:   event.Phone,
		Value: event,
	})
	if err != nil {
		log.Error().Err(err).Str("event", event.Event).Msg("failed to publish booking event")
	}
}

// archiveProof is best effort. The sheet keeps the gateway URL either way;
// the archive is a durable second copy.
func (svc *workflowImpl) archiveProof(ctx context.Context, mediaURL, bookingRef string) {
	url, err := svc.archiver.Archive(ctx, mediaURL, bookingRef)
	if err != nil {
		log.Error().Err(err).Str("bookingRef", bookingRef).Msg("failed to archive payment proof")

		return
	}

	log.Info().Str("bookingRef", bookingRef).Str("url", url).Msg("payment proof archived")
}
