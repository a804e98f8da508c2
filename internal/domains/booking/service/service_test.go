package service_test

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"homestay/config"
	kafkaMocks "homestay/infras/kafka/mocks"
	"homestay/infras/otel/mocks"
	mediaMocks "homestay/internal/domains/booking/media/mocks"
	bookingMocks "homestay/internal/domains/booking/mocks"
	"homestay/internal/domains/booking/model"
	"homestay/internal/domains/booking/model/dto"
	"homestay/internal/domains/booking/service"
	intentMocks "homestay/internal/domains/intent/mocks"
	intentModel "homestay/internal/domains/intent/model"
	gDto "homestay/shared/dto"
	"homestay/shared/failure"
)

type workflowFixture struct {
	store      *bookingMocks.MockRecordStore
	classifier *intentMocks.MockClassifier
	archiver   *mediaMocks.MockArchiver
	producer   *kafkaMocks.MockClient
	svc        service.Workflow
}

func newWorkflowFixture(ctrl *gomock.Controller) *workflowFixture {
	cfg := &config.Config{}
	cfg.Booking.PaymentAccount = "MAYBANK 1234567890"
	cfg.Kafka.Topic.BookingEvents = "booking-events"

	f := &workflowFixture{
		store:      bookingMocks.NewMockRecordStore(ctrl),
		classifier: intentMocks.NewMockClassifier(ctrl),
		archiver:   mediaMocks.NewMockArchiver(ctrl),
		producer:   kafkaMocks.NewMockClient(ctrl),
	}

	f.svc = service.New(f.store, f.classifier, f.archiver, f.producer, cfg, mocks.NewOtel())

	return f
}

func (f *workflowFixture) classify(result intentModel.Result, err error) {
	f.classifier.EXPECT().
		Detect(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(result, err)
}

func TestWorkflowHandleMessage_BookHomestay(t *testing.T) {
	msg := dto.InboundMessage{
		Phone: "+60123456789",
		Body:  "I want to book a homestay",
	}

	bookResult := func(slots intentModel.Slots) intentModel.Result {
		return intentModel.Result{
			Intent: intentModel.IntentBookHomestay,
			Slots:  slots,
		}
	}

	t.Run("successfulBookingAppendsRowAndQuotesPaymentAccount", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newWorkflowFixture(ctrl)
		f.classify(bookResult(intentModel.Slots{
			intentModel.SlotGuests:       float64(4),
			intentModel.SlotCheckinDate:  "2026-09-10",
			intentModel.SlotCheckoutDate: "2026-09-12",
		}), nil)

		var appended model.Record

		f.store.EXPECT().
			Append(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, record model.Record) error {
				appended = record

				return nil
			})

		f.producer.EXPECT().
			SendMessages(gomock.Any(), "booking-events", gomock.Any()).
			Return(nil)

		reply := f.svc.HandleMessage(context.Background(), msg)

		assert.Contains(t, reply.Body, "MAYBANK 1234567890")
		assert.Equal(t, msg.Phone, appended.Phone)
		assert.Equal(t, "2026-09-10", appended.CheckinDate)
		assert.Equal(t, "2026-09-12", appended.CheckoutDate)
		assert.Equal(t, 4, appended.Guests)
		assert.Equal(t, model.StatusPendingPayment, appended.Status)
		assert.NotEmpty(t, appended.BookingRef)
		assert.NotEmpty(t, appended.CreatedAt)
		assert.Empty(t, appended.MediaRef)
	})

	t.Run("invalidGuestSlotsRejectWithoutMutation", func(t *testing.T) {
		invalidSlots := []intentModel.Slots{
			{},
			{intentModel.SlotGuests: "four"},
			{intentModel.SlotGuests: float64(2.5)},
			{intentModel.SlotGuests: float64(0)},
			{intentModel.SlotGuests: float64(-1)},
		}

		for i, slots := range invalidSlots {
			t.Run(strconv.Itoa(i), func(t *testing.T) {
				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				f := newWorkflowFixture(ctrl)
				f.classify(bookResult(slots), nil)

				reply := f.svc.HandleMessage(context.Background(), msg)

				assert.Equal(t, service.ReplyInvalidGuests, reply.Body)
			})
		}
	})

	t.Run("tooManyGuestsRejectWithoutMutation", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newWorkflowFixture(ctrl)
		f.classify(bookResult(intentModel.Slots{
			intentModel.SlotGuests: float64(8),
		}), nil)

		reply := f.svc.HandleMessage(context.Background(), msg)

		assert.Equal(t, service.ReplyMaxGuests, reply.Body)
	})

	t.Run("boundaryGuestCountIsAccepted", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newWorkflowFixture(ctrl)
		f.classify(bookResult(intentModel.Slots{
			intentModel.SlotGuests: float64(6),
		}), nil)

		f.store.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil)
		f.producer.EXPECT().SendMessages(gomock.Any(), "booking-events", gomock.Any()).Return(nil)

		reply := f.svc.HandleMessage(context.Background(), msg)

		assert.Contains(t, reply.Body, "MAYBANK 1234567890")
	})

	t.Run("appendFailureYieldsSaveFailedReply", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newWorkflowFixture(ctrl)
		f.classify(bookResult(intentModel.Slots{
			intentModel.SlotGuests: float64(2),
		}), nil)

		f.store.EXPECT().
			Append(gomock.Any(), gomock.Any()).
			Return(failure.InternalError(assert.AnError))

		reply := f.svc.HandleMessage(context.Background(), msg)

		assert.Equal(t, service.ReplyBookingSaveFailed, reply.Body)
	})

	t.Run("brokerOutageDoesNotChangeReply", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newWorkflowFixture(ctrl)
		f.classify(bookResult(intentModel.Slots{
			intentModel.SlotGuests: float64(2),
		}), nil)

		f.store.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil)
		f.producer.EXPECT().
			SendMessages(gomock.Any(), "booking-events", gomock.Any()).
			Return(assert.AnError)

		reply := f.svc.HandleMessage(context.Background(), msg)

		assert.Contains(t, reply.Body, "MAYBANK 1234567890")
	})
}

func TestWorkflowHandleMessage_ConfirmPayment(t *testing.T) {
	msg := dto.InboundMessage{
		Phone:    "+60123456789",
		Body:     "here is my receipt",
		MediaURL: "https://media.example.com/proof.jpg",
	}

	confirmResult := intentModel.Result{
		Intent: intentModel.IntentConfirmPayment,
	}

	foundRow := model.Row{
		Index: 5,
		Record: model.Record{
			Phone:      msg.Phone,
			BookingRef: "ref-123",
			Status:     model.StatusPendingPayment,
		},
	}

	t.Run("updatesBothCellsAndAcknowledges", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newWorkflowFixture(ctrl)
		f.classify(confirmResult, nil)

		f.store.EXPECT().
			FindMostRecentByPhone(gomock.Any(), msg.Phone).
			Return(foundRow, nil)
		f.store.EXPECT().
			UpdateCell(gomock.Any(), 5, model.ColumnMediaRef, msg.MediaURL).
			Return(nil)
		f.store.EXPECT().
			UpdateCell(gomock.Any(), 5, model.ColumnStatus, model.StatusPendingVerification).
			Return(nil)

		f.archiver.EXPECT().
			Archive(gomock.Any(), msg.MediaURL, "ref-123").
			Return("https://cdn.example.com/proof.jpg", nil)
		f.producer.EXPECT().
			SendMessages(gomock.Any(), "booking-events", gomock.Any()).
			Return(nil)

		reply := f.svc.HandleMessage(context.Background(), msg)

		assert.Equal(t, service.ReplyPaymentReceived, reply.Body)
	})

	t.Run("mediaCellFailureStillAttemptsStatusCell", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newWorkflowFixture(ctrl)
		f.classify(confirmResult, nil)

		f.store.EXPECT().
			FindMostRecentByPhone(gomock.Any(), msg.Phone).
			Return(foundRow, nil)
		f.store.EXPECT().
			UpdateCell(gomock.Any(), 5, model.ColumnMediaRef, msg.MediaURL).
			Return(failure.InternalError(assert.AnError))
		f.store.EXPECT().
			UpdateCell(gomock.Any(), 5, model.ColumnStatus, model.StatusPendingVerification).
			Return(nil)

		reply := f.svc.HandleMessage(context.Background(), msg)

		assert.Equal(t, service.ReplyPaymentUpdateFailed, reply.Body)
	})

	t.Run("statusCellFailureYieldsUpdateFailedReply", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newWorkflowFixture(ctrl)
		f.classify(confirmResult, nil)

		f.store.EXPECT().
			FindMostRecentByPhone(gomock.Any(), msg.Phone).
			Return(foundRow, nil)
		f.store.EXPECT().
			UpdateCell(gomock.Any(), 5, model.ColumnMediaRef, msg.MediaURL).
			Return(nil)
		f.store.EXPECT().
			UpdateCell(gomock.Any(), 5, model.ColumnStatus, model.StatusPendingVerification).
			Return(failure.InternalError(assert.AnError))

		reply := f.svc.HandleMessage(context.Background(), msg)

		assert.Equal(t, service.ReplyPaymentUpdateFailed, reply.Body)
	})

	t.Run("noMatchingRowStillAcknowledges", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newWorkflowFixture(ctrl)
		f.classify(confirmResult, nil)

		f.store.EXPECT().
			FindMostRecentByPhone(gomock.Any(), msg.Phone).
			Return(model.Row{}, failure.NotFound(model.EntityName))

		reply := f.svc.HandleMessage(context.Background(), msg)

		assert.Equal(t, service.ReplyPaymentReceived, reply.Body)
	})

	t.Run("lookupFailureYieldsUpdateFailedReply", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newWorkflowFixture(ctrl)
		f.classify(confirmResult, nil)

		f.store.EXPECT().
			FindMostRecentByPhone(gomock.Any(), msg.Phone).
			Return(model.Row{}, failure.InternalError(assert.AnError))

		reply := f.svc.HandleMessage(context.Background(), msg)

		assert.Equal(t, service.ReplyPaymentUpdateFailed, reply.Body)
	})

	t.Run("missingMediaFallsThroughToFulfillmentText", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newWorkflowFixture(ctrl)
		f.classify(intentModel.Result{
			Intent:          intentModel.IntentConfirmPayment,
			FulfillmentText: "Please attach your payment receipt.",
		}, nil)

		reply := f.svc.HandleMessage(context.Background(), dto.InboundMessage{
			Phone: msg.Phone,
			Body:  "I paid",
		})

		assert.Equal(t, "Please attach your payment receipt.", reply.Body)
	})
}

func TestWorkflowHandleMessage_Dispatch(t *testing.T) {
	msg := dto.InboundMessage{
		Phone: "+60123456789",
		Body:  "hello",
	}

	t.Run("classifierUnavailableNeverTouchesStore", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newWorkflowFixture(ctrl)
		f.classify(intentModel.Result{}, failure.Unavailable("intent classifier unavailable"))

		reply := f.svc.HandleMessage(context.Background(), msg)

		assert.Equal(t, service.ReplyServiceUnavailable, reply.Body)
	})

	t.Run("unrecognizedIntentRepliesFulfillmentTextVerbatim", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newWorkflowFixture(ctrl)
		f.classify(intentModel.Result{
			Intent:          "Default Fallback Intent",
			FulfillmentText: "Sorry, I didn't get that.",
		}, nil)

		reply := f.svc.HandleMessage(context.Background(), msg)

		assert.Equal(t, "Sorry, I didn't get that.", reply.Body)
	})
}

func TestWorkflowGetAll(t *testing.T) {
	t.Run("successfulListing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newWorkflowFixture(ctrl)

		params := gDto.QueryParams{Page: 1, Limit: 10}
		records := []model.Record{
			{Phone: "+60123", Status: model.StatusPendingVerification},
			{Phone: "+60456", Status: model.StatusPendingPayment},
		}

		f.store.EXPECT().
			GetAll(gomock.Any(), params).
			Return(records, 2, nil)

		res, err := f.svc.GetAll(context.Background(), params)

		assert.NoError(t, err)
		assert.Len(t, res.Bookings, 2)
		assert.Equal(t, 2, res.Total)
		assert.Equal(t, 1, res.TotalPage)
	})

	t.Run("storeError", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newWorkflowFixture(ctrl)

		params := gDto.QueryParams{Page: 1, Limit: 10}

		f.store.EXPECT().
			GetAll(gomock.Any(), params).
			Return(nil, 0, failure.InternalError(assert.AnError))

		_, err := f.svc.GetAll(context.Background(), params)

		assert.Error(t, err)
	})
}
