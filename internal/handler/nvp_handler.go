package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"paygate/internal/domain"
	"paygate/internal/middleware"
	"paygate/internal/repository"
	"paygate/pkg/paypal"
	"paygate/pkg/paypal/nvp"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// NVPHandler lets console operators drive the NVP client.
type NVPHandler struct {
	client    *nvp.Client
	auditRepo *repository.AuditLogRepository
	log       zerolog.Logger
}

func NewNVPHandler(client *nvp.Client, auditRepo *repository.AuditLogRepository, log zerolog.Logger) *NVPHandler {
	return &NVPHandler{client: client, auditRepo: auditRepo, log: log}
}

type NVPCallRequest struct {
	Params map[string]string `json:"params"`
	// Direct selects card holder data over an Express Checkout token for
	// CreateRecurringPaymentsProfile.
	Direct       bool `json:"direct"`
	FailSilently bool `json:"fail_silently"`
}

type ProfileStatusRequest struct {
	Action       string `json:"action" binding:"required,oneof=Cancel Suspend Reactivate"`
	Note         string `json:"note"`
	FailSilently bool   `json:"fail_silently"`
}

// Call handles POST /nvp/:method.
func (h *NVPHandler) Call(c *gin.Context) {
	var req NVPCallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Params == nil {
		req.Params = map[string]string{}
	}
	method := c.Param("method")
	rec, err := h.dispatch(h.origin(c), method, req)
	h.respond(c, domain.AuditNVPCall, method, rec, err)
}

// ProfileStatus handles POST /recurring/:profile_id/status.
func (h *NVPHandler) ProfileStatus(c *gin.Context) {
	var req ProfileStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	params := map[string]string{
		"PROFILEID": c.Param("profile_id"),
		"ACTION":    req.Action,
	}
	if req.Note != "" {
		params["NOTE"] = req.Note
	}
	rec, err := h.client.ManageRecurringPaymentsProfileStatus(h.origin(c), params, req.FailSilently)
	h.respond(c, domain.AuditProfileStatus, nvp.MethodManageRecurringPaymentsProfileStatus, rec, err)
}

func (h *NVPHandler) dispatch(ctx context.Context, method string, req NVPCallRequest) (*nvp.Record, error) {
	p := req.Params
	switch method {
	case nvp.MethodDoDirectPayment:
		return h.client.DoDirectPayment(ctx, p)
	case nvp.MethodSetExpressCheckout:
		return h.client.SetExpressCheckout(ctx, p)
	case nvp.MethodGetExpressCheckoutDetails:
		return h.client.GetExpressCheckoutDetails(ctx, p)
	case nvp.MethodDoExpressCheckoutPayment:
		return h.client.DoExpressCheckoutPayment(ctx, p)
	case nvp.MethodCreateRecurringPaymentsProfile:
		return h.client.CreateRecurringPaymentsProfile(ctx, p, req.Direct)
	case nvp.MethodGetTransactionDetails:
		return h.client.GetTransactionDetails(ctx, p)
	case nvp.MethodGetRecurringPaymentsProfileDetails:
		return h.client.GetRecurringPaymentsProfileDetails(ctx, p)
	case nvp.MethodUpdateRecurringPaymentsProfile:
		return h.client.UpdateRecurringPaymentsProfile(ctx, p)
	case nvp.MethodManageRecurringPaymentsProfileStatus:
		return h.client.ManageRecurringPaymentsProfileStatus(ctx, p, req.FailSilently)
	case "MassPay":
		return h.client.MassPay(ctx, p)
	case "BillOutstandingAmount":
		return h.client.BillOutstandingAmount(ctx, p)
	case "RefundTransaction":
		return h.client.RefundTransaction(ctx, p)
	case "SetCustomerBillingAgreement":
		return h.client.SetCustomerBillingAgreement(ctx, p)
	default:
		return h.client.Call(ctx, method, p)
	}
}

// origin tags the call with the console operator so the stored record names
// who made it.
func (h *NVPHandler) origin(c *gin.Context) context.Context {
	o := paypal.Origin{IPAddress: c.ClientIP()}
	if id := middleware.GetOperatorID(c); id != 0 {
		o.UserID = &id
	}
	return paypal.WithOrigin(c.Request.Context(), o)
}

func (h *NVPHandler) respond(c *gin.Context, action, method string, rec *nvp.Record, err error) {
	operatorID := middleware.GetOperatorID(c)
	meta := map[string]string{"method": method}

	var pf *nvp.ProcessingFailure
	var missing *nvp.MissingParameterError
	switch {
	case err == nil && rec == nil:
		// fail_silently swallowed the benign profile status failure
		meta["outcome"] = "ignored"
		writeAudit(c, h.auditRepo, h.log, operatorID, action, domain.ResourceNVPTransaction, "", meta)
		c.JSON(http.StatusOK, gin.H{"record": nil, "ignored": true})
	case err == nil:
		meta["outcome"] = rec.Ack()
		writeAudit(c, h.auditRepo, h.log, operatorID, action, domain.ResourceNVPTransaction, strconv.FormatUint(uint64(rec.ID), 10), meta)
		resp := gin.H{"record": rec}
		if method == nvp.MethodSetExpressCheckout {
			if token := rec.Get(nvp.FieldToken); token != "" {
				resp["redirect_url"] = h.client.ExpressCheckoutURL(token)
			}
		}
		c.JSON(http.StatusOK, resp)
	case errors.As(err, &pf):
		meta["outcome"] = "flagged"
		meta["flag_code"] = pf.Code
		writeAudit(c, h.auditRepo, h.log, operatorID, action, domain.ResourceNVPTransaction, strconv.FormatUint(uint64(pf.Record.ID), 10), meta)
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":     pf.Message,
			"code":      pf.Code,
			"record_id": pf.Record.ID,
		})
	case errors.As(err, &missing):
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required params", "missing": missing.Fields})
	case errors.Is(err, nvp.ErrUnknownOperation):
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown NVP method " + method})
	case errors.Is(err, nvp.ErrNotImplemented):
		c.JSON(http.StatusNotImplemented, gin.H{"error": method + " is not implemented"})
	case errors.Is(err, nvp.ErrDeprecated):
		c.JSON(http.StatusGone, gin.H{"error": method + " is deprecated, use SetExpressCheckout"})
	default:
		h.log.Error().Err(err).Str("method", method).Uint("operator_id", operatorID).Msg("[NVP] call failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "paypal call failed"})
	}
}
