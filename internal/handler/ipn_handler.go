package handler

import (
	"io"
	"net/http"

	"paygate/pkg/paypal"
	"paygate/pkg/paypal/ipn"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// maxIPNBody bounds a notification body; real ones are a few KB.
const maxIPNBody = 64 << 10

type IPNHandler struct {
	listener *ipn.Listener
	log      zerolog.Logger
}

func NewIPNHandler(listener *ipn.Listener, log zerolog.Logger) *IPNHandler {
	return &IPNHandler{listener: listener, log: log}
}

// Handle answers PayPal with 200 "OK" for every stored notification, flagged
// or not. Anything else makes PayPal retry, so 500 is reserved for storage
// failures.
func (h *IPNHandler) Handle(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxIPNBody))
	if err != nil {
		c.String(http.StatusBadRequest, "invalid body")
		return
	}
	ctx := paypal.WithOrigin(c.Request.Context(), paypal.Origin{IPAddress: c.ClientIP()})
	if _, err := h.listener.Process(ctx, string(body)); err != nil {
		h.log.Error().Err(err).Str("ip", c.ClientIP()).Msg("[IPN] delivery not stored")
		c.String(http.StatusInternalServerError, "ERROR")
		return
	}
	c.String(http.StatusOK, "OK")
}
