package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bensefia-clinic/clinic-api/internal/services"
	"github.com/bensefia-clinic/clinic-api/internal/store"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterUser creates an unverified account and emails the verification
// token. The email send never blocks or fails the registration.
func (h *Handler) RegisterUser(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "reason": "invalid"})
		return
	}

	user, token, err := h.Accounts.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			c.JSON(http.StatusConflict, gin.H{"success": false, "reason": "exists"})
			return
		}
		log.Printf("RegisterUser: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "reason": "internal"})
		return
	}

	h.NotificationSvc.SendVerificationEmail(user.Email, token)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "registered"})
}

// SendVerification re-issues a verification token for an existing account
// and mails it. Unlike registration this send is awaited so the client can
// tell the user when delivery failed.
func (h *Handler) SendVerification(c *gin.Context) {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "reason": "invalid"})
		return
	}

	user, token, err := h.Accounts.IssueToken(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "reason": "not_found"})
			return
		}
		log.Printf("SendVerification: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "reason": "internal"})
		return
	}

	if err := h.NotificationSvc.SendVerificationEmailSync(user.Email, token); err != nil {
		log.Printf("SendVerification: send to %s failed: %v", user.Email, err)
		c.JSON(http.StatusOK, gin.H{"success": false, "reason": "send_failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// VerifyEmail redeems a one-time verification token.
func (h *Handler) VerifyEmail(c *gin.Context) {
	var req struct {
		Email string `json:"email"`
		Token string `json:"token"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "reason": "invalid"})
		return
	}

	user, err := h.Accounts.Redeem(c.Request.Context(), req.Email, req.Token)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "reason": "not_found"})
		case errors.Is(err, services.ErrInvalidToken):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "reason": "invalid_token"})
		default:
			log.Printf("VerifyEmail: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "reason": "internal"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "email": user.Email})
}

// Login authenticates a verified user and hands out a session token.
func (h *Handler) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "reason": "invalid"})
		return
	}

	user, err := h.Accounts.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "reason": "not_found"})
		case errors.Is(err, services.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "reason": "invalid_credentials"})
		case errors.Is(err, services.ErrNotVerified):
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "reason": "not_verified"})
		default:
			log.Printf("Login: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "reason": "internal"})
		}
		return
	}

	token := h.Sessions.Create(user.Email)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   token,
		"user":    gin.H{"email": user.Email},
	})
}

// ForgotPassword is a stub: there is no reset flow, the endpoint only
// acknowledges so the login page can show its toast.
func (h *Handler) ForgotPassword(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true})
}
