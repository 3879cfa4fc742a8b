package ipn

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePayment(t *testing.T) {
	rec, err := Parse(paymentBody)
	require.NoError(t, err)

	assert.Equal(t, "51403485VH153354B", rec.TxnID())
	assert.Equal(t, "web_accept", rec.TxnType)
	assert.Equal(t, "seller@example.com", rec.ReceiverEmail())
	assert.Equal(t, "10.00", rec.Get("MC_GROSS"))
	assert.NotContains(t, rec.Fields, "not_a_field")
	assert.NotContains(t, rec.Fields, "payment_date")
	assert.False(t, rec.TestIPN)
	assert.Equal(t, paymentBody, rec.Query)

	paid, ok := rec.Date("payment_date")
	require.True(t, ok)
	assert.True(t, paid.Equal(time.Date(2009, 1, 2, 2, 30, 30, 0, time.UTC)), "got %s", paid)
}

func TestParseUpperCaseKeysAndTestFlag(t *testing.T) {
	rec, err := Parse("TXN_ID=1&Test_IPN=1&TXN_TYPE=subscr_signup")
	require.NoError(t, err)
	assert.Equal(t, "1", rec.TxnID())
	assert.True(t, rec.TestIPN)
	assert.Equal(t, TxnSubscrSignup, rec.TxnType)
}

func TestParseCharset(t *testing.T) {
	rec, err := Parse("charset=windows-1252&first_name=Jos%E9&last_name=M%FCller")
	require.NoError(t, err)
	assert.Equal(t, "José", rec.Get("first_name"))
	assert.Equal(t, "Müller", rec.Get("last_name"))

	rec, err = Parse("charset=UTF-8&first_name=Jos%C3%A9")
	require.NoError(t, err)
	assert.Equal(t, "José", rec.Get("first_name"))
}

func TestParseInvalidForms(t *testing.T) {
	cases := map[string]string{
		"bad escape":      "txn_id=%zz",
		"semicolon":       "txn_id=1;payment_status=Completed",
		"unknown charset": "charset=klingon&txn_id=1",
		"bad date":        "txn_id=1&payment_date=yesterday",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			rec, err := Parse(body)
			require.Error(t, err)
			require.NotNil(t, rec)
			assert.Equal(t, body, rec.Query)
		})
	}
}

func TestParseBadDateKeepsOtherFields(t *testing.T) {
	rec, err := Parse("txn_id=1&payment_date=yesterday&payment_status=Completed")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "payment_date")
	assert.Equal(t, "1", rec.TxnID())
	assert.Equal(t, "Completed", rec.PaymentStatus())
}

func TestParseDate(t *testing.T) {
	summer, err := ParseDate("09:00:00 Jul 04, 2010 PDT")
	require.NoError(t, err)
	assert.True(t, summer.Equal(time.Date(2010, 7, 4, 16, 0, 0, 0, time.UTC)))

	dotted, err := ParseDate("18:30:30 Jan. 1, 2009 PST")
	require.NoError(t, err)
	assert.True(t, dotted.Equal(time.Date(2009, 1, 2, 2, 30, 30, 0, time.UTC)))

	_, err = ParseDate("18:30:30 Jan 01, 2009 CET")
	assert.Error(t, err)
	_, err = ParseDate("nonsense")
	assert.Error(t, err)

	assert.Equal(t, "18:30:30 Jan 01, 2009 PST", FormatDate(time.Date(2009, 1, 2, 2, 30, 30, 0, time.UTC)))
}

func TestIsKnownField(t *testing.T) {
	assert.True(t, IsKnownField("txn_id"))
	assert.True(t, IsKnownField("Recurring_Payment_ID"))
	assert.True(t, IsKnownField("case_creation_date"))
	assert.False(t, IsKnownField("cmd"))
}
