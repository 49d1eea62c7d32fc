package staff

import (
	"fmt"

	"tillpoint/models"
	"tillpoint/services/access"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"
)

// Register creates a new staff account. Accounts are admin-created; there is
// no self-service signup for a till.
func (s *DefaultStaffService) Register(req RegisterRequest) (*models.Staff, error) {
	if access.ParseRole(req.Role) == access.RoleGuest {
		return nil, fmt.Errorf("unknown role %q", req.Role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	staffRec := &models.Staff{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		PhoneNumber:  req.PhoneNumber,
		Role:         req.Role,
		PasswordHash: string(hash),
		Active:       true,
	}

	if err := s.Repo.Create(staffRec); err != nil {
		return nil, fmt.Errorf("failed to create staff account: %w", err)
	}
	return staffRec, nil
}

// GetStaffByID returns one staff member.
func (s *DefaultStaffService) GetStaffByID(staffID string) (*models.Staff, error) {
	return s.Repo.GetByIDWithProjection(staffID, nil)
}

// GetAllStaff returns every staff member.
func (s *DefaultStaffService) GetAllStaff() ([]models.Staff, error) {
	return s.Repo.GetAll()
}

// UpdateStaff applies a partial profile update.
func (s *DefaultStaffService) UpdateStaff(req models.StaffUpdateRequest) (*models.Staff, error) {
	updateDoc := bson.M{}
	if req.Name != "" {
		updateDoc["name"] = req.Name
	}
	if req.PhoneNumber != "" {
		updateDoc["phoneNumber"] = req.PhoneNumber
	}
	if req.ProfileImage != "" {
		updateDoc["profileImage"] = req.ProfileImage
	}
	if len(updateDoc) == 0 {
		return nil, fmt.Errorf("no fields to update")
	}

	if err := s.Repo.UpdateSetDocument(req.ID, updateDoc); err != nil {
		return nil, err
	}
	return s.Repo.GetByIDWithProjection(req.ID, nil)
}

// DeleteStaff removes a staff account.
func (s *DefaultStaffService) DeleteStaff(staffID string) error {
	return s.Repo.Delete(staffID)
}

// UpdateFCMToken registers the device token push notifications are sent to.
func (s *DefaultStaffService) UpdateFCMToken(staffID, token string) error {
	return s.Repo.UpdateSetDocument(staffID, bson.M{"fcmToken": token})
}
