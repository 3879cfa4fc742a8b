package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paygate/internal/domain"
)

func TestRecordsListAndGet(t *testing.T) {
	f := newFixture(t)
	admin := f.token(t, 1, domain.RoleAdmin)
	viewer := f.token(t, 2, domain.RoleViewer)

	f.paypal.nvp = "ACK=Success&TRANSACTIONID=T1"
	require.Equal(t, http.StatusOK, f.do(http.MethodPost, "/api/v1/nvp/DoDirectPayment", admin, NVPCallRequest{Params: directPaymentParams()}).Code)
	f.paypal.nvp = "ACK=Failure&L_ERRORCODE0=10486&L_LONGMESSAGE0=Declined"
	require.Equal(t, http.StatusUnprocessableEntity, f.do(http.MethodPost, "/api/v1/nvp/DoDirectPayment", admin, NVPCallRequest{Params: directPaymentParams()}).Code)
	require.Equal(t, http.StatusOK, postIPN(f, ipnPayment).Code)

	w := f.do(http.MethodGet, "/api/v1/nvp/transactions", viewer, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.EqualValues(t, 2, body["total"])
	assert.Len(t, body["transactions"], 2)

	w = f.do(http.MethodGet, "/api/v1/nvp/transactions?flagged=true", viewer, nil)
	body = decode(t, w)
	assert.EqualValues(t, 1, body["total"])
	first := body["transactions"].([]any)[0].(map[string]any)
	assert.Equal(t, "10486", first["flag_code"])

	w = f.do(http.MethodGet, "/api/v1/nvp/transactions/1", viewer, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "T1", decode(t, w)["transaction"].(map[string]any)["transaction_id"])

	assert.Equal(t, http.StatusNotFound, f.do(http.MethodGet, "/api/v1/nvp/transactions/99", viewer, nil).Code)
	assert.Equal(t, http.StatusBadRequest, f.do(http.MethodGet, "/api/v1/nvp/transactions/abc", viewer, nil).Code)

	w = f.do(http.MethodGet, "/api/v1/ipn/notifications?txn_id=61E67681CH3238416", viewer, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, decode(t, w)["total"])
	assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/api/v1/ipn/notifications/1", viewer, nil).Code)

	w = f.do(http.MethodGet, "/api/v1/events?source=ipn", viewer, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body = decode(t, w)
	assert.EqualValues(t, 1, body["total"])
	assert.EqualValues(t, 20, body["limit"])

	assert.Equal(t, http.StatusUnauthorized, f.do(http.MethodGet, "/api/v1/events", "", nil).Code)
}
