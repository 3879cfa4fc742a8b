package nvp

import "paygate/pkg/paypal"

const (
	MethodDoDirectPayment                      = "DoDirectPayment"
	MethodSetExpressCheckout                   = "SetExpressCheckout"
	MethodGetExpressCheckoutDetails            = "GetExpressCheckoutDetails"
	MethodDoExpressCheckoutPayment             = "DoExpressCheckoutPayment"
	MethodGetTransactionDetails                = "GetTransactionDetails"
	MethodCreateRecurringPaymentsProfile       = "CreateRecurringPaymentsProfile"
	MethodUpdateRecurringPaymentsProfile       = "UpdateRecurringPaymentsProfile"
	MethodGetRecurringPaymentsProfileDetails   = "GetRecurringPaymentsProfileDetails"
	MethodManageRecurringPaymentsProfileStatus = "ManageRecurringPaymentsProfileStatus"
)

// Method describes one supported NVP operation.
type Method struct {
	Name     string
	Required []string
	Defaults map[string]string
	// Event is emitted after a successful, unflagged call. Empty means none.
	Event string
}

var methods = map[string]Method{
	MethodDoDirectPayment: {
		Name:     MethodDoDirectPayment,
		Defaults: map[string]string{"PAYMENTACTION": "Sale"},
		Required: []string{
			"CREDITCARDTYPE", "ACCT", "EXPDATE", "CVV2", "IPADDRESS",
			"FIRSTNAME", "LASTNAME", "STREET", "CITY", "STATE", "COUNTRYCODE",
			"ZIP", "AMT",
		},
		Event: paypal.EventProPaymentSuccessful,
	},
	MethodSetExpressCheckout: {
		Name:     MethodSetExpressCheckout,
		Required: []string{"RETURNURL", "CANCELURL", "AMT"},
		Defaults: map[string]string{"NOSHIPPING": "1"},
	},
	MethodGetExpressCheckoutDetails: {
		Name:     MethodGetExpressCheckoutDetails,
		Required: []string{"TOKEN"},
	},
	MethodManageRecurringPaymentsProfileStatus: {
		Name:     MethodManageRecurringPaymentsProfileStatus,
		Required: []string{"PROFILEID", "ACTION"},
		Event:    paypal.EventProRecurringStatusChange,
	},
	MethodDoExpressCheckoutPayment: {
		Name:     MethodDoExpressCheckoutPayment,
		Defaults: map[string]string{"PAYMENTACTION": "Sale"},
		Required: []string{"RETURNURL", "CANCELURL", "AMT", "TOKEN", "PAYERID"},
		Event:    paypal.EventProPaymentSuccessful,
	},
	MethodGetTransactionDetails: {
		Name:     MethodGetTransactionDetails,
		Required: []string{"TRANSACTIONID"},
	},
	MethodCreateRecurringPaymentsProfile: {
		Name:     MethodCreateRecurringPaymentsProfile,
		Required: []string{"PROFILESTARTDATE", "BILLINGPERIOD", "BILLINGFREQUENCY", "AMT"},
		Event:    paypal.EventProProfileCreated,
	},
	MethodUpdateRecurringPaymentsProfile: {
		Name:     MethodUpdateRecurringPaymentsProfile,
		Required: []string{"PROFILEID"},
	},
	MethodGetRecurringPaymentsProfileDetails: {
		Name:     MethodGetRecurringPaymentsProfileDetails,
		Required: []string{"PROFILEID"},
	},
}

// LookupMethod returns a copy of the descriptor so callers cannot alter the table.
func LookupMethod(name string) (Method, bool) {
	m, ok := methods[name]
	if !ok {
		return Method{}, false
	}
	cp := Method{Name: m.Name, Event: m.Event}
	cp.Required = append([]string(nil), m.Required...)
	if m.Defaults != nil {
		cp.Defaults = make(map[string]string, len(m.Defaults))
		for k, v := range m.Defaults {
			cp.Defaults[k] = v
		}
	}
	return cp, true
}
