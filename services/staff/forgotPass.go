package staff

import (
	"fmt"

	"tillpoint/utils"

	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"
)

// InitiatePasswordReset generates an OTP for the account and sends it to the
// staff member's phone.
func (s *DefaultStaffService) InitiatePasswordReset(email string) error {
	staffRec, err := s.Repo.GetByEmailWithProjection(email, bson.M{"id": 1, "phoneNumber": 1})
	if err != nil {
		// Do not reveal whether the account exists.
		utils.GetLogger().Sugar().Infof("password reset requested for unknown email %s", email)
		return nil
	}
	return utils.InitiatePasswordResetOTP(staffRec.ID, staffRec.PhoneNumber)
}

// ResetPassword verifies the OTP and replaces the password, revoking any
// existing session.
func (s *DefaultStaffService) ResetPassword(email, otp, newPassword string) error {
	staffRec, err := s.Repo.GetByEmailWithProjection(email, bson.M{"id": 1})
	if err != nil {
		return fmt.Errorf("invalid reset request")
	}

	if err := utils.VerifyPasswordResetOTP(staffRec.ID, otp); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.Repo.UpdateSetDocument(staffRec.ID, bson.M{"passwordHash": string(hash)}); err != nil {
		return fmt.Errorf("failed to reset password: %w", err)
	}

	return s.RevokeAuthToken(staffRec.ID)
}
