package nvp

import (
	"context"
	"errors"

	"paygate/pkg/paypal"
)

// ProfileStatusBenignFailure is PayPal's answer when a profile is already in
// a state the requested action cannot leave.
const ProfileStatusBenignFailure = "Invalid profile status for cancel action; profile should be active or suspended"

const (
	ActionCancel     = "Cancel"
	ActionSuspend    = "Suspend"
	ActionReactivate = "Reactivate"
)

func (c *Client) DoDirectPayment(ctx context.Context, params map[string]string) (*Record, error) {
	return c.Call(ctx, MethodDoDirectPayment, params)
}

// SetExpressCheckout starts an Express Checkout. Recurring parameters are
// rewritten into a billing agreement request first. Check the returned
// record's token and redirect the buyer with ExpressCheckoutURL.
func (c *Client) SetExpressCheckout(ctx context.Context, params map[string]string) (*Record, error) {
	if isRecurring(params) {
		adapted, err := recurringExpressCheckout(params)
		if err != nil {
			return nil, err
		}
		params = adapted
	}
	return c.Call(ctx, MethodSetExpressCheckout, params)
}

func (c *Client) GetExpressCheckoutDetails(ctx context.Context, params map[string]string) (*Record, error) {
	return c.Call(ctx, MethodGetExpressCheckoutDetails, params)
}

// DoExpressCheckoutPayment completes an Express Checkout. Recurring
// parameters create a recurring profile from the checkout token instead.
func (c *Client) DoExpressCheckoutPayment(ctx context.Context, params map[string]string) (*Record, error) {
	if isRecurring(params) {
		return c.CreateRecurringPaymentsProfile(ctx, params, false)
	}
	return c.Call(ctx, MethodDoExpressCheckoutPayment, params)
}

// CreateRecurringPaymentsProfile needs card holder data when direct is set,
// otherwise an Express Checkout token.
func (c *Client) CreateRecurringPaymentsProfile(ctx context.Context, params map[string]string, direct bool) (*Record, error) {
	extra := []string{"TOKEN"}
	if direct {
		extra = []string{"CREDITCARDTYPE", "ACCT", "EXPDATE", "FIRSTNAME", "LASTNAME"}
	}
	return c.call(ctx, MethodCreateRecurringPaymentsProfile, params, extra)
}

func (c *Client) GetTransactionDetails(ctx context.Context, params map[string]string) (*Record, error) {
	return c.Call(ctx, MethodGetTransactionDetails, params)
}

func (c *Client) GetRecurringPaymentsProfileDetails(ctx context.Context, params map[string]string) (*Record, error) {
	return c.Call(ctx, MethodGetRecurringPaymentsProfileDetails, params)
}

func (c *Client) UpdateRecurringPaymentsProfile(ctx context.Context, params map[string]string) (*Record, error) {
	return c.Call(ctx, MethodUpdateRecurringPaymentsProfile, params)
}

// ManageRecurringPaymentsProfileStatus cancels, suspends or reactivates a
// profile (PROFILEID, ACTION). With failSilently, the benign "already in that
// state" failure returns (nil, nil). On success exactly one of the cancel,
// suspend or reactivate events fires.
func (c *Client) ManageRecurringPaymentsProfileStatus(ctx context.Context, params map[string]string, failSilently bool) (*Record, error) {
	rec, err := c.Call(ctx, MethodManageRecurringPaymentsProfileStatus, params)
	if err != nil {
		var pf *ProcessingFailure
		if failSilently && errors.As(err, &pf) && pf.Message == ProfileStatusBenignFailure {
			c.log.Info().Str("profile_id", upperKeys(params)["PROFILEID"]).Msg("[NVP] profile status unchanged, ignoring")
			return nil, nil
		}
		return nil, err
	}
	req := upperKeys(params)
	switch req["ACTION"] {
	case ActionCancel:
		c.emit(ctx, paypal.EventProRecurringCancel, req, rec)
	case ActionSuspend:
		c.emit(ctx, paypal.EventProRecurringSuspend, req, rec)
	case ActionReactivate:
		c.emit(ctx, paypal.EventProRecurringReactivate, req, rec)
	}
	return rec, nil
}

func (c *Client) MassPay(context.Context, map[string]string) (*Record, error) {
	return nil, ErrNotImplemented
}

func (c *Client) BillOutstandingAmount(context.Context, map[string]string) (*Record, error) {
	return nil, ErrNotImplemented
}

func (c *Client) RefundTransaction(context.Context, map[string]string) (*Record, error) {
	return nil, ErrNotImplemented
}

// SetCustomerBillingAgreement was replaced by SetExpressCheckout with billing
// agreement fields.
func (c *Client) SetCustomerBillingAgreement(context.Context, map[string]string) (*Record, error) {
	return nil, ErrDeprecated
}
