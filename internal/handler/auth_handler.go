package handler

import (
	"errors"
	"net/http"
	"strconv"

	"paygate/internal/auth"
	"paygate/internal/domain"
	"paygate/internal/middleware"
	"paygate/internal/models"
	"paygate/internal/repository"
	"paygate/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type AuthHandler struct {
	svc       *service.AuthService
	auditRepo *repository.AuditLogRepository
	log       zerolog.Logger
}

func NewAuthHandler(svc *service.AuthService, auditRepo *repository.AuditLogRepository, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, auditRepo: auditRepo, log: log}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	op, access, refresh, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCreds) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		h.log.Error().Err(err).Str("email", req.Email).Msg("[AUTH] login failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}
	writeAudit(c, h.auditRepo, h.log, op.ID, domain.AuditLogin, "operator", strconv.FormatUint(uint64(op.ID), 10), nil)
	c.JSON(http.StatusOK, gin.H{
		"operator":      op,
		"access_token":  access,
		"refresh_token": refresh,
	})
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	access, refresh, err := h.svc.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidToken) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired refresh token"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "refresh failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"access_token": access, "refresh_token": refresh})
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req struct {
		CurrentPassword string `json:"current_password" binding:"required"`
		NewPassword     string `json:"new_password" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.svc.ChangePassword(c.Request.Context(), middleware.GetOperatorID(c), req.CurrentPassword, req.NewPassword); err != nil {
		if errors.Is(err, service.ErrInvalidCreds) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "current password is incorrect"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// writeAudit never fails the request; a lost audit row is only logged.
func writeAudit(c *gin.Context, repo *repository.AuditLogRepository, log zerolog.Logger, operatorID uint, action, resource, resourceID string, meta map[string]string) {
	if repo == nil {
		return
	}
	var opID *uint
	if operatorID != 0 {
		opID = &operatorID
	}
	err := repo.Create(c.Request.Context(), &models.AuditLog{
		OperatorID: opID,
		Action:     action,
		Resource:   resource,
		ResourceID: resourceID,
		IP:         c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
		Metadata:   meta,
	})
	if err != nil {
		log.Warn().Err(err).Str("action", action).Msg("[AUDIT] write failed")
	}
}
