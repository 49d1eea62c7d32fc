package staff

import (
	staffRepo "tillpoint/database/repository/staff"
	"tillpoint/models"
)

type StaffService interface {
	// Accounts (admin-managed)
	Register(req RegisterRequest) (*models.Staff, error)
	GetStaffByID(staffID string) (*models.Staff, error)
	GetAllStaff() ([]models.Staff, error)
	UpdateStaff(req models.StaffUpdateRequest) (*models.Staff, error)
	DeleteStaff(staffID string) error

	// Authentication
	Authenticate(email, password string) (*AuthResponse, error)
	RevokeAuthToken(staffID string) error
	UpdatePassword(staffID, currentPassword, newPassword string) error

	// Devices
	UpdateFCMToken(staffID, token string) error

	// Password reset
	InitiatePasswordReset(email string) error
	ResetPassword(email, otp, newPassword string) error
}

// DefaultStaffService is the production implementation.
type DefaultStaffService struct {
	Repo staffRepo.StaffRepository
}

// RegisterRequest carries the fields needed to create a staff account.
type RegisterRequest struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	PhoneNumber string `json:"phoneNumber"`
	Role        string `json:"role" binding:"required"`
	Password    string `json:"password" binding:"required,min=8"`
}

// AuthResponse contains the staff member's ID, token, and profile basics.
type AuthResponse struct {
	ID    string `json:"id"`
	Token string `json:"token"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role"`
}
