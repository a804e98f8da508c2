package dto

import (
	"homestay/internal/domains/booking/model"
	"homestay/shared"
)

// InboundMessage is one chat message relayed by the messaging gateway,
// decoded from the webhook's form fields. Only the sender is mandatory: a
// media-only message (payment proof photo without a caption) arrives with an
// empty body.
type InboundMessage struct {
	Phone    string `validate:"required"`
	Body     string
	MediaURL string
}

// Reply is the text the workflow wants sent back to the guest.
type Reply struct {
	Body string
}

// WebhookMessage is one outbound message in the gateway response envelope.
type WebhookMessage struct {
	Body string `json:"body"`
}

// WebhookResponse is the exact envelope the messaging gateway consumes.
type WebhookResponse struct {
	Messages []WebhookMessage `json:"messages"`
}

// WebhookResponseFromReply wraps a single reply in the gateway envelope.
func WebhookResponseFromReply(reply Reply) WebhookResponse {
	return WebhookResponse{
		Messages: []WebhookMessage{
			{Body: reply.Body},
		},
	}
}

type BookingResponse struct {
	CreatedAt    string `json:"createdAt"`
	Phone        string `json:"phone"`
	CheckinDate  string `json:"checkinDate"`
	CheckoutDate string `json:"checkoutDate"`
	Guests       int    `json:"guests"`
	BookingRef   string `json:"bookingRef"`
	MediaRef     string `json:"mediaRef,omitempty"`
	Status       string `json:"status"`
}

func BookingResponseFromModel(record model.Record) BookingResponse {
	return BookingResponse{
		CreatedAt:    record.CreatedAt,
		Phone:        record.Phone,
		CheckinDate:  record.CheckinDate,
		CheckoutDate: record.CheckoutDate,
		Guests:       record.Guests,
		BookingRef:   record.BookingRef,
		MediaRef:     record.MediaRef,
		Status:       record.Status,
	}
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	Page      int               `json:"page"`
	Limit     int               `json:"limit"`
	Total     int               `json:"total"`
	TotalPage int               `json:"totalPage"`
}

func GetBookingsResponseFromModels(records []model.Record, page, limit, total int) GetBookingsResponse {
	bookings := make([]BookingResponse, 0, len(records))
	for _, record := range records {
		bookings = append(bookings, BookingResponseFromModel(record))
	}

	return GetBookingsResponse{
		Bookings:  bookings,
		Page:      page,
		Limit:     limit,
		Total:     total,
		TotalPage: shared.CalculateTotalPage(total, limit),
	}
}
