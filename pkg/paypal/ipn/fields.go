package ipn

import (
	"fmt"
	"strings"
	"time"
)

const (
	FieldTxnID         = "txn_id"
	FieldTxnType       = "txn_type"
	FieldPaymentStatus = "payment_status"
	FieldReceiverEmail = "receiver_email"
	FieldCharset       = "charset"
	FieldTestIPN       = "test_ipn"
)

var knownFields = map[string]struct{}{}

func init() {
	groups := [][]string{
		// basic
		{"business", "charset", "custom", "notify_version", "parent_txn_id", "receiver_email",
			"receiver_id", "residence_country", "test_ipn", "txn_id", "txn_type", "verify_sign"},
		// buyer
		{"address_country", "address_city", "address_country_code", "address_name", "address_state",
			"address_status", "address_street", "address_zip", "contact_phone", "first_name",
			"last_name", "payer_business_name", "payer_email", "payer_id"},
		// payment
		{"auth_amount", "auth_exp", "auth_id", "auth_status", "exchange_rate", "invoice",
			"item_name", "item_number", "mc_currency", "mc_fee", "mc_gross", "mc_handling",
			"mc_shipping", "memo", "num_cart_items", "option_name1", "option_name2", "payer_status",
			"payment_date", "payment_gross", "payment_status", "payment_type", "pending_reason",
			"protection_eligibility", "quantity", "reason_code", "remaining_settle",
			"settle_amount", "settle_currency", "shipping", "shipping_method", "tax",
			"transaction_entity"},
		// auction
		{"auction_buyer_id", "auction_closing_date", "auction_multi_item", "for_auction"},
		// recurring payments
		{"amount", "amount_per_cycle", "initial_payment_amount", "next_payment_date",
			"outstanding_balance", "payment_cycle", "period_type", "product_name", "product_type",
			"profile_status", "recurring_payment_id", "rp_invoice_id", "time_created"},
		// subscriptions
		{"amount1", "amount2", "amount3", "mc_amount1", "mc_amount2", "mc_amount3", "password",
			"period1", "period2", "period3", "reattempt", "recur_times", "recurring", "retry_at",
			"subscr_date", "subscr_effective", "subscr_id", "username"},
		// disputes
		{"case_creation_date", "case_id", "case_type"},
	}
	for _, g := range groups {
		for _, f := range g {
			knownFields[f] = struct{}{}
		}
	}
}

// dateFields are parsed into Record.Dates instead of Record.Fields.
var dateFields = map[string]struct{}{
	"auction_closing_date": {},
	"case_creation_date":   {},
	"next_payment_date":    {},
	"payment_date":         {},
	"retry_at":             {},
	"subscr_date":          {},
	"subscr_effective":     {},
	"time_created":         {},
}

func IsKnownField(name string) bool {
	_, ok := knownFields[strings.ToLower(name)]
	return ok
}

func isDateField(name string) bool {
	_, ok := dateFields[name]
	return ok
}

// DateLayout is how IPN renders dates, e.g. "18:30:30 Jan 01, 2009 PST".
const DateLayout = "15:04:05 Jan 02, 2006 MST"

// PayPal stamps IPN dates in Pacific time. Only the abbreviations it sends
// are accepted; time.Parse would otherwise invent a zero offset for them.
var zoneOffsets = map[string]int{
	"PST": -8 * 3600,
	"PDT": -7 * 3600,
	"GMT": 0,
	"UTC": 0,
}

// ParseDate parses an IPN date into UTC. A dot after the month ("Jan.") is
// tolerated.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	i := strings.LastIndexByte(s, ' ')
	if i < 0 {
		return time.Time{}, fmt.Errorf("ipn: bad date %q", s)
	}
	clock, zone := s[:i], s[i+1:]
	offset, ok := zoneOffsets[strings.ToUpper(zone)]
	if !ok {
		return time.Time{}, fmt.Errorf("ipn: unknown time zone %q in date %q", zone, s)
	}
	clock = strings.Replace(clock, ". ", " ", 1)
	t, err := time.ParseInLocation("15:04:05 Jan _2, 2006", clock, time.FixedZone(zone, offset))
	if err != nil {
		return time.Time{}, fmt.Errorf("ipn: bad date %q: %w", s, err)
	}
	return t.UTC(), nil
}

// FormatDate renders t in DateLayout using PayPal's Pacific standard offset.
func FormatDate(t time.Time) string {
	return t.In(time.FixedZone("PST", zoneOffsets["PST"])).Format(DateLayout)
}

var paymentStatuses = map[string]struct{}{
	"Canceled_Reversal":  {},
	"Completed":          {},
	"Created":            {},
	"Denied":             {},
	"Expired":            {},
	"Failed":             {},
	"In-Progress":        {},
	"Partially_Refunded": {},
	"Pending":            {},
	"Processed":          {},
	"Refunded":           {},
	"Reversed":           {},
	"Voided":             {},
}

const StatusCompleted = "Completed"

func isValidPaymentStatus(s string) bool {
	_, ok := paymentStatuses[s]
	return ok
}
