package model

import (
	"fmt"
	"strconv"
)

const (
	EntityName = "booking"

	// MaxGuests is the hard capacity of the property. Requests above it are
	// rejected before any row is written.
	MaxGuests = 6
)

// Booking lifecycle labels stored in the status column. The progression is
// expected to move forward only, but the store does not enforce it.
const (
	StatusPendingPayment      = "Pending Payment"
	StatusPendingVerification = "Pending Verification"
	StatusConfirmed           = "Confirmed"
	StatusRejected            = "Rejected"
)

// Positional column layout of a booking row, 1-indexed as the record store
// addresses cells. The payment-confirmation path updates columns 7 and 8 in
// place, so these positions are a fixed external contract.
const (
	ColumnCreatedAt  = 1
	ColumnPhone      = 2
	ColumnCheckin    = 3
	ColumnCheckout   = 4
	ColumnGuests     = 5
	ColumnBookingRef = 6
	ColumnMediaRef   = 7
	ColumnStatus     = 8

	ColumnCount = 8
)

// Record is one booking row. CreatedAt and the dates stay strings: the store
// holds them as display text and nothing in the workflow computes on them.
type Record struct {
	CreatedAt    string
	Phone        string
	CheckinDate  string
	CheckoutDate string
	Guests       int
	BookingRef   string
	MediaRef     string
	Status       string
}

// Row is a located record: Index is the 1-based row number in the sheet,
// header row included, usable directly for cell updates.
type Row struct {
	Index  int
	Record Record
}

// Columns renders the record in the positional layout for an append call.
func (r Record) Columns() []interface{} {
	return []interface{}{
		r.CreatedAt,
		r.Phone,
		r.CheckinDate,
		r.CheckoutDate,
		strconv.Itoa(r.Guests),
		r.BookingRef,
		r.MediaRef,
		r.Status,
	}
}

// RecordFromColumns rebuilds a record from a raw row. Short rows are
// tolerated; missing cells read as empty.
func RecordFromColumns(columns []interface{}) Record {
	rec := Record{
		CreatedAt:    cellString(columns, ColumnCreatedAt),
		Phone:        cellString(columns, ColumnPhone),
		CheckinDate:  cellString(columns, ColumnCheckin),
		CheckoutDate: cellString(columns, ColumnCheckout),
		BookingRef:   cellString(columns, ColumnBookingRef),
		MediaRef:     cellString(columns, ColumnMediaRef),
		Status:       cellString(columns, ColumnStatus),
	}

	if guests, err := strconv.Atoi(cellString(columns, ColumnGuests)); err == nil {
		rec.Guests = guests
	}

	return rec
}

// MostRecentByPhone scans raw sheet values from the newest row backward and
// returns the first row whose phone column matches. The same phone can hold
// several historical bookings; picking the latest appended row is the
// deliberate tie-break, since only the newest booking is assumed to be
// awaiting payment. Row 1 is the header and is never matched.
func MostRecentByPhone(values [][]interface{}, phone string) (Row, bool) {
	for i := len(values) - 1; i >= 1; i-- {
		if cellString(values[i], ColumnPhone) != phone {
			continue
		}

		return Row{
			Index:  i + 1,
			Record: RecordFromColumns(values[i]),
		}, true
	}

	return Row{}, false
}

func cellString(columns []interface{}, column int) string {
	idx := column - 1
	if idx < 0 || idx >= len(columns) {
		return ""
	}

	switch v := columns[idx].(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}
