package nvp

import "strings"

// Field names a Record keeps from the merged request/response data. Anything
// else PayPal sends back is dropped before the record is built.
const (
	FieldMethod           = "method"
	FieldAck              = "ack"
	FieldProfileStatus    = "profilestatus"
	FieldTimestamp        = "timestamp"
	FieldProfileID        = "profileid"
	FieldProfileReference = "profilereference"
	FieldCorrelationID    = "correlationid"
	FieldToken            = "token"
	FieldPayerID          = "payerid"
	FieldFirstName        = "firstname"
	FieldLastName         = "lastname"
	FieldStreet           = "street"
	FieldCity             = "city"
	FieldState            = "state"
	FieldCountryCode      = "countrycode"
	FieldZip              = "zip"
	FieldInvNum           = "invnum"
	FieldCustom           = "custom"
	FieldAmt              = "amt"
	FieldTransactionID    = "transactionid"
	FieldPaymentStatus    = "paymentstatus"
)

var knownFields = map[string]struct{}{
	FieldMethod:           {},
	FieldAck:              {},
	FieldProfileStatus:    {},
	FieldTimestamp:        {},
	FieldProfileID:        {},
	FieldProfileReference: {},
	FieldCorrelationID:    {},
	FieldToken:            {},
	FieldPayerID:          {},
	FieldFirstName:        {},
	FieldLastName:         {},
	FieldStreet:           {},
	FieldCity:             {},
	FieldState:            {},
	FieldCountryCode:      {},
	FieldZip:              {},
	FieldInvNum:           {},
	FieldCustom:           {},
	FieldAmt:              {},
	FieldTransactionID:    {},
	FieldPaymentStatus:    {},
}

// IsKnownField reports whether name (any case) is part of the record schema.
func IsKnownField(name string) bool {
	_, ok := knownFields[strings.ToLower(name)]
	return ok
}

// KnownFields returns the schema in no particular order.
func KnownFields() []string {
	out := make([]string, 0, len(knownFields))
	for k := range knownFields {
		out = append(out, k)
	}
	return out
}

// restrictedFields never leave the process in a stored request query.
var restrictedFields = map[string]struct{}{
	"ACCT":    {},
	"CVV2":    {},
	"EXPDATE": {},
}
