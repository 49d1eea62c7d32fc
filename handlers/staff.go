package handlers

import (
	"net/http"

	"tillpoint/models"
	"tillpoint/services/staff"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// StaffHandler exposes staff account and session endpoints.
type StaffHandler struct {
	Service staff.StaffService
}

func NewStaffHandler(svc staff.StaffService) *StaffHandler {
	return &StaffHandler{Service: svc}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginHandler authenticates a staff member and issues the session token.
// The token and role are also set as cookies for the page navigation guard.
func (h *StaffHandler) LoginHandler(c *gin.Context) {
	logger := getLogger(c)

	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	resp, err := h.Service.Authenticate(req.Email, req.Password)
	if err != nil {
		logger.Warn("Authentication failed", zap.String("email", req.Email), zap.Error(err))
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	// Cookies feed the navigation access guard; max age matches token life.
	c.SetCookie("tp_token", resp.Token, 24*60*60, "/", "", false, true)
	c.SetCookie("tp_role", resp.Role, 24*60*60, "/", "", false, false)

	c.JSON(http.StatusOK, resp)
}

// LogoutHandler revokes the caller's session token and clears the cookies.
func (h *StaffHandler) LogoutHandler(c *gin.Context) {
	staffID := c.GetString("staffID")
	if staffID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.Service.RevokeAuthToken(staffID); err != nil {
		getLogger(c).Error("Failed to revoke token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sign out"})
		return
	}

	c.SetCookie("tp_token", "", -1, "/", "", false, true)
	c.SetCookie("tp_role", "", -1, "/", "", false, false)
	c.JSON(http.StatusOK, gin.H{"message": "Signed out"})
}

// RegisterStaffHandler creates a new staff account (admin only).
func (h *StaffHandler) RegisterStaffHandler(c *gin.Context) {
	var req staff.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	created, err := h.Service.Register(req)
	if err != nil {
		getLogger(c).Error("Failed to register staff", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetStaffByIDHandler returns one staff member.
func (h *StaffHandler) GetStaffByIDHandler(c *gin.Context) {
	staffRec, err := h.Service.GetStaffByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Staff member not found"})
		return
	}
	c.JSON(http.StatusOK, staffRec)
}

// GetAllStaffHandler returns every staff member (admin only).
func (h *StaffHandler) GetAllStaffHandler(c *gin.Context) {
	all, err := h.Service.GetAllStaff()
	if err != nil {
		getLogger(c).Error("Failed to list staff", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list staff"})
		return
	}
	c.JSON(http.StatusOK, all)
}

// UpdateStaffHandler applies a partial profile update for the caller.
func (h *StaffHandler) UpdateStaffHandler(c *gin.Context) {
	staffID := c.GetString("staffID")

	var req models.StaffUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	req.ID = staffID

	updated, err := h.Service.UpdateStaff(req)
	if err != nil {
		getLogger(c).Error("Failed to update staff", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteStaffHandler removes a staff account (admin only).
func (h *StaffHandler) DeleteStaffHandler(c *gin.Context) {
	if err := h.Service.DeleteStaff(c.Param("id")); err != nil {
		getLogger(c).Error("Failed to delete staff", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete staff"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Staff member removed"})
}

type updatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}

// UpdatePasswordHandler changes the caller's password.
func (h *StaffHandler) UpdatePasswordHandler(c *gin.Context) {
	staffID := c.GetString("staffID")

	var req updatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if err := h.Service.UpdatePassword(staffID, req.CurrentPassword, req.NewPassword); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password updated. Please sign in again."})
}

type fcmTokenRequest struct {
	Token string `json:"token" binding:"required"`
}

// UpdateFCMTokenHandler registers the caller's push notification device token.
func (h *StaffHandler) UpdateFCMTokenHandler(c *gin.Context) {
	staffID := c.GetString("staffID")

	var req fcmTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if err := h.Service.UpdateFCMToken(staffID, req.Token); err != nil {
		getLogger(c).Error("Failed to update FCM token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update device token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Device token updated"})
}
