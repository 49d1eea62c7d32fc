package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type resetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	OTP         string `json:"otp"`
	NewPassword string `json:"newPassword"`
}

// InitiatePasswordResetHandler starts the OTP flow for a forgotten password.
func (h *StaffHandler) InitiatePasswordResetHandler(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Service.InitiatePasswordReset(req.Email); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "If the account exists, an OTP has been sent."})
}

// ResetPasswordHandler completes the OTP flow and sets the new password.
func (h *StaffHandler) ResetPasswordHandler(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.OTP == "" || req.NewPassword == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "OTP and new password are required"})
		return
	}

	if err := h.Service.ResetPassword(req.Email, req.OTP, req.NewPassword); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password has been successfully reset. Please sign in with your new password."})
}
