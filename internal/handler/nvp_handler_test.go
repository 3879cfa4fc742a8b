package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paygate/internal/domain"
	"paygate/internal/models"
)

func TestNVPCallSuccess(t *testing.T) {
	f := newFixture(t)
	f.paypal.nvp = "ACK=Success&TRANSACTIONID=9XY&AMT=10.00"
	tok := f.token(t, 4, domain.RoleOperator)

	w := f.do(http.MethodPost, "/api/v1/nvp/DoDirectPayment", tok, NVPCallRequest{Params: directPaymentParams()})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	rec := decode(t, w)["record"].(map[string]any)
	assert.Equal(t, "DoDirectPayment", rec["method"])
	assert.EqualValues(t, 4, rec["user_id"])

	var stored models.NVPTransaction
	require.NoError(t, f.db.First(&stored).Error)
	assert.Equal(t, "9XY", stored.TransactionID)
	require.NotNil(t, stored.UserID)
	assert.Equal(t, uint(4), *stored.UserID)

	var ev models.PaymentEvent
	require.NoError(t, f.db.First(&ev).Error)
	assert.Equal(t, "pro.payment_successful", ev.Name)
	assert.NotContains(t, ev.Params, "ACCT", "card data never reaches the event log")

	var audit models.AuditLog
	require.NoError(t, f.db.First(&audit).Error)
	assert.Equal(t, domain.AuditNVPCall, audit.Action)
	assert.Equal(t, "Success", audit.Metadata["outcome"])
}

func TestNVPSetExpressCheckoutRedirect(t *testing.T) {
	f := newFixture(t)
	f.paypal.nvp = "ACK=Success&TOKEN=EC-123"
	w := f.do(http.MethodPost, "/api/v1/nvp/SetExpressCheckout", f.token(t, 1, domain.RoleAdmin), NVPCallRequest{Params: map[string]string{
		"RETURNURL": "https://shop.test/return",
		"CANCELURL": "https://shop.test/cancel",
		"AMT":       "5.00",
	}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "https://www.sandbox.paypal.com/webscr?cmd=_express-checkout&token=EC-123", decode(t, w)["redirect_url"])
}

func TestNVPCallErrors(t *testing.T) {
	f := newFixture(t)
	tok := f.token(t, 1, domain.RoleAdmin)

	w := f.do(http.MethodPost, "/api/v1/nvp/DoDirectPayment", tok, NVPCallRequest{Params: map[string]string{"AMT": "1.00"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w)["missing"], "ACCT")

	w = f.do(http.MethodPost, "/api/v1/nvp/DoSomethingElse", tok, NVPCallRequest{})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = f.do(http.MethodPost, "/api/v1/nvp/RefundTransaction", tok, NVPCallRequest{})
	assert.Equal(t, http.StatusNotImplemented, w.Code)

	w = f.do(http.MethodPost, "/api/v1/nvp/SetCustomerBillingAgreement", tok, NVPCallRequest{})
	assert.Equal(t, http.StatusGone, w.Code)

	assert.Zero(t, f.paypal.nvpCalls, "none of these reach PayPal")
}

func TestNVPCallFlagged(t *testing.T) {
	f := newFixture(t)
	f.paypal.nvp = "ACK=Failure&L_ERRORCODE0=10486&L_LONGMESSAGE0=Declined"
	w := f.do(http.MethodPost, "/api/v1/nvp/DoDirectPayment", f.token(t, 1, domain.RoleAdmin), NVPCallRequest{Params: directPaymentParams()})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, "10486", body["code"])
	assert.Equal(t, "Declined", body["error"])
	assert.EqualValues(t, 1, body["record_id"])

	var n int64
	f.db.Model(&models.PaymentEvent{}).Count(&n)
	assert.Zero(t, n)
}

func TestNVPCallRoles(t *testing.T) {
	f := newFixture(t)
	w := f.do(http.MethodPost, "/api/v1/nvp/DoDirectPayment", "", NVPCallRequest{Params: directPaymentParams()})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = f.do(http.MethodPost, "/api/v1/nvp/DoDirectPayment", f.token(t, 2, domain.RoleViewer), NVPCallRequest{Params: directPaymentParams()})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestProfileStatus(t *testing.T) {
	f := newFixture(t)
	f.paypal.nvp = "ACK=Success&PROFILEID=I-ABC"
	tok := f.token(t, 1, domain.RoleAdmin)

	w := f.do(http.MethodPost, "/api/v1/recurring/I-ABC/status", tok, ProfileStatusRequest{Action: "Suspend", Note: "chargeback"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, f.paypal.lastBody, "ACTION=Suspend")
	assert.Contains(t, f.paypal.lastBody, "PROFILEID=I-ABC")

	var names []string
	f.db.Model(&models.PaymentEvent{}).Order("id").Pluck("name", &names)
	assert.Equal(t, []string{"pro.recurring_status_change", "pro.recurring_suspend"}, names)

	w = f.do(http.MethodPost, "/api/v1/recurring/I-ABC/status", tok, ProfileStatusRequest{Action: "Pause"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProfileStatusFailSilently(t *testing.T) {
	f := newFixture(t)
	f.paypal.nvp = "ACK=Failure&L_ERRORCODE0=11556&L_LONGMESSAGE0=Invalid%20profile%20status%20for%20cancel%20action%3B%20profile%20should%20be%20active%20or%20suspended"
	tok := f.token(t, 1, domain.RoleAdmin)

	w := f.do(http.MethodPost, "/api/v1/recurring/I-ABC/status", tok, ProfileStatusRequest{Action: "Cancel", FailSilently: true})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, true, decode(t, w)["ignored"])

	w = f.do(http.MethodPost, "/api/v1/recurring/I-ABC/status", tok, ProfileStatusRequest{Action: "Cancel"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}
