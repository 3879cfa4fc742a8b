package ipn

import (
	"context"
	"errors"

	"paygate/pkg/paypal"
)

// Classify lists the events a stored record triggers, in emission order. A
// transaction yields payment_successful or payment_flagged; at most one
// recurring or subscription event may follow it.
func Classify(rec *Record) []string {
	var events []string
	if rec.IsTransaction() {
		if rec.Flag {
			events = append(events, paypal.EventIPNPaymentFlagged)
		} else {
			events = append(events, paypal.EventIPNPaymentSuccessful)
		}
	}
	switch {
	case rec.IsRecurringCreate():
		events = append(events, paypal.EventIPNRecurringCreate)
	case rec.IsRecurringPayment():
		events = append(events, paypal.EventIPNRecurringPayment)
	case rec.IsRecurringCancel():
		events = append(events, paypal.EventIPNRecurringCancel)
	case rec.IsSubscriptionCancellation():
		events = append(events, paypal.EventIPNSubscriptionCancel)
	case rec.IsSubscriptionSignup():
		events = append(events, paypal.EventIPNSubscriptionSignup)
	case rec.IsSubscriptionEndOfTerm():
		events = append(events, paypal.EventIPNSubscriptionEOT)
	case rec.IsSubscriptionModified():
		events = append(events, paypal.EventIPNSubscriptionModify)
	}
	return events
}

// Notify emits every classified event. All events are attempted; the sink
// errors are joined.
func Notify(ctx context.Context, sink paypal.EventSink, rec *Record) error {
	var errs []error
	for _, name := range Classify(rec) {
		ev := paypal.NewEvent(name, "ipn", rec.ID, rec.Fields, rec)
		if err := sink.Emit(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
