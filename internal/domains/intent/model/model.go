package model

import (
	"math"
	"strconv"
	"strings"

	"homestay/shared/failure"

	"google.golang.org/protobuf/types/known/structpb"
)

// Intent display names defined on the Dialogflow agent.
const (
	IntentBookHomestay   = "BookHomestay"
	IntentConfirmPayment = "ConfirmPayment"
)

// Slot names extracted by the agent.
const (
	SlotGuests       = "guests"
	SlotCheckinDate  = "checkin_date"
	SlotCheckoutDate = "checkout_date"
)

// Result is one classification outcome: the matched intent (possibly the
// agent's fallback), the extracted slot values, and the agent's own reply
// text for intents this service does not act on.
type Result struct {
	Intent          string
	Slots           Slots
	FulfillmentText string
}

// Slots is a typed accessor over the untyped parameter map the classifier
// returns. Values may be absent or carry a different kind than the slot
// schema suggests, so every read has an explicit missing/parse branch.
type Slots map[string]any

func SlotsFromProto(params *structpb.Struct) Slots {
	if params == nil {
		return Slots{}
	}

	return Slots(params.AsMap())
}

// String returns the named slot as a string, or "" when the slot is absent.
// Numeric values are formatted without an exponent.
func (s Slots) String(name string) string {
	value, ok := s[name]
	if !ok {
		return ""
	}

	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

// Int returns the named slot as an integer. Missing slots, non-numeric
// strings, and fractional numbers are all reported as a bad-request failure
// rather than defaulting to zero.
func (s Slots) Int(name string) (int, error) {
	value, ok := s[name]
	if !ok {
		return 0, failure.BadRequestFromString("slot " + name + " is missing") //nolint:wrapcheck
	}

	switch v := value.(type) {
	case float64:
		if v != math.Trunc(v) {
			return 0, failure.BadRequestFromString("slot " + name + " is not a whole number") //nolint:wrapcheck
		}

		return int(v), nil
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, failure.BadRequestFromString("slot " + name + " is not a number") //nolint:wrapcheck
		}

		return parsed, nil
	default:
		return 0, failure.BadRequestFromString("slot " + name + " is not a number") //nolint:wrapcheck
	}
}
