package nvp

import "strings"

// isRecurring reports whether params describe a recurring profile.
func isRecurring(params map[string]string) bool {
	for k := range params {
		if strings.EqualFold(k, "BILLINGFREQUENCY") {
			return true
		}
	}
	return false
}

// recurringExpressCheckout turns profile parameters into the billing
// agreement shape SetExpressCheckout accepts. DESC becomes the agreement
// description; the schedule fields are left for CreateRecurringPaymentsProfile.
func recurringExpressCheckout(params map[string]string) (map[string]string, error) {
	out := upperKeys(params)
	desc, ok := out["DESC"]
	if !ok {
		return nil, &MissingParameterError{Fields: []string{"DESC"}}
	}
	out["L_BILLINGTYPE0"] = "RecurringPayments"
	out["L_BILLINGAGREEMENTDESCRIPTION0"] = desc
	for _, k := range []string{"BILLINGFREQUENCY", "BILLINGPERIOD", "PROFILESTARTDATE", "DESC"} {
		delete(out, k)
	}
	return out, nil
}
