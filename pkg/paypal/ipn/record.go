package ipn

import (
	"strings"
	"time"
)

// Txn types the classifier recognises.
const (
	TxnRecurringProfileCreated = "recurring_payment_profile_created"
	TxnRecurringPayment        = "recurring_payment"
	TxnRecurringProfileCancel  = "recurring_payment_profile_cancel"
	TxnSubscrCancel            = "subscr_cancel"
	TxnSubscrSignup            = "subscr_signup"
	TxnSubscrEOT               = "subscr_eot"
	TxnSubscrModify            = "subscr_modify"
)

// Record is one logged IPN delivery.
type Record struct {
	ID      uint   `json:"id"`
	TxnType string `json:"txn_type"`
	// Fields holds schema-filtered, charset-decoded values keyed by
	// lower-case name. Date fields live in Dates.
	Fields    map[string]string    `json:"fields"`
	Dates     map[string]time.Time `json:"dates,omitempty"`
	TestIPN   bool                 `json:"test_ipn"`
	Flag      bool                 `json:"flag"`
	FlagCode  string               `json:"flag_code,omitempty"`
	FlagInfo  string               `json:"flag_info,omitempty"`
	IPAddress string               `json:"ip_address,omitempty"`
	UserID    *uint                `json:"user_id,omitempty"`
	// Query is the body exactly as PayPal posted it; the postback echoes it.
	Query     string    `json:"query"`
	Response  string    `json:"response"`
	CreatedAt time.Time `json:"created_at"`
}

func (r *Record) Get(field string) string {
	return r.Fields[strings.ToLower(field)]
}

func (r *Record) Date(field string) (time.Time, bool) {
	t, ok := r.Dates[strings.ToLower(field)]
	return t, ok
}

func (r *Record) TxnID() string         { return r.Get(FieldTxnID) }
func (r *Record) PaymentStatus() string { return r.Get(FieldPaymentStatus) }
func (r *Record) ReceiverEmail() string { return r.Get(FieldReceiverEmail) }

// SetFlag marks the record invalid. Repeated flags accumulate their info.
func (r *Record) SetFlag(info, code string) {
	r.Flag = true
	if r.FlagInfo == "" {
		r.FlagInfo = info
	} else {
		r.FlagInfo += " " + info
	}
	if code != "" {
		r.FlagCode = code
	}
}

func (r *Record) IsTransaction() bool { return r.TxnID() != "" }

func (r *Record) IsRecurringCreate() bool  { return r.TxnType == TxnRecurringProfileCreated }
func (r *Record) IsRecurringPayment() bool { return r.TxnType == TxnRecurringPayment }
func (r *Record) IsRecurringCancel() bool  { return r.TxnType == TxnRecurringProfileCancel }

func (r *Record) IsSubscriptionCancellation() bool { return r.TxnType == TxnSubscrCancel }
func (r *Record) IsSubscriptionSignup() bool       { return r.TxnType == TxnSubscrSignup }
func (r *Record) IsSubscriptionEndOfTerm() bool    { return r.TxnType == TxnSubscrEOT }
func (r *Record) IsSubscriptionModified() bool     { return r.TxnType == TxnSubscrModify }
