package paypal

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Events emitted by the NVP client after a successful call.
const (
	EventProPaymentSuccessful     = "pro.payment_successful"
	EventProProfileCreated        = "pro.payment_profile_created"
	EventProRecurringStatusChange = "pro.recurring_status_change"
	EventProRecurringCancel       = "pro.recurring_cancel"
	EventProRecurringSuspend      = "pro.recurring_suspend"
	EventProRecurringReactivate   = "pro.recurring_reactivate"
)

// Events emitted by the IPN listener once a notification is stored.
const (
	EventIPNPaymentSuccessful  = "ipn.payment_successful"
	EventIPNPaymentFlagged     = "ipn.payment_flagged"
	EventIPNRecurringCreate    = "ipn.recurring_create"
	EventIPNRecurringPayment   = "ipn.recurring_payment"
	EventIPNRecurringCancel    = "ipn.recurring_cancel"
	EventIPNSubscriptionCancel = "ipn.subscription_cancel"
	EventIPNSubscriptionSignup = "ipn.subscription_signup"
	EventIPNSubscriptionEOT    = "ipn.subscription_eot"
	EventIPNSubscriptionModify = "ipn.subscription_modify"
)

// Event is what the core hands to an EventSink. Record is the persisted
// *nvp.Record or *ipn.Record the event is about.
type Event struct {
	ID         uuid.UUID         `json:"id"`
	Name       string            `json:"name"`
	Source     string            `json:"source"` // "nvp" or "ipn"
	RecordID   uint              `json:"record_id"`
	Params     map[string]string `json:"params,omitempty"`
	Record     any               `json:"record"`
	OccurredAt time.Time         `json:"occurred_at"`
}

func NewEvent(name, source string, recordID uint, params map[string]string, record any) Event {
	return Event{
		ID:         uuid.New(),
		Name:       name,
		Source:     source,
		RecordID:   recordID,
		Params:     params,
		Record:     record,
		OccurredAt: time.Now().UTC(),
	}
}

// EventSink receives notifications. Delivery is fire-and-forget from the
// core's side: a returned error is logged and otherwise ignored.
type EventSink interface {
	Emit(ctx context.Context, ev Event) error
}

// SinkFunc adapts a function to EventSink.
type SinkFunc func(ctx context.Context, ev Event) error

func (f SinkFunc) Emit(ctx context.Context, ev Event) error {
	return f(ctx, ev)
}

// NopSink discards every event.
type NopSink struct{}

func (NopSink) Emit(context.Context, Event) error { return nil }
