package staff

import (
	"context"
	"fmt"
	"time"

	"tillpoint/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const tokenDuration = 24 * time.Hour

// Authenticate verifies the staff member's credentials and issues a session token.
func (s *DefaultStaffService) Authenticate(email, password string) (*AuthResponse, error) {
	staffRec, err := s.Repo.GetByEmailWithProjection(email, bson.M{})
	if err != nil {
		utils.GetLogger().Error("Authenticate: failed to fetch staff", zap.Error(err))
		return nil, fmt.Errorf("invalid email or password")
	}
	if !staffRec.Active {
		return nil, fmt.Errorf("account is deactivated, contact your manager")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(staffRec.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid email or password")
	}

	token, err := utils.GenerateToken(staffRec.ID, staffRec.Role, tokenDuration)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	tokenHash := utils.HashToken(token)

	if err := s.Repo.UpdateSetDocument(staffRec.ID, bson.M{
		"tokenHash": tokenHash,
		"lastLogin": time.Now(),
	}); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}

	// Cache the token hash so request auth can skip the DB on the hot path.
	cacheKey := utils.AuthCachePrefix + staffRec.ID
	if err := utils.GetAuthCacheClient().Set(context.Background(), cacheKey, tokenHash, time.Hour).Err(); err != nil {
		utils.GetLogger().Warn("Authenticate: failed to cache token hash", zap.Error(err))
	}

	return &AuthResponse{
		ID:    staffRec.ID,
		Token: token,
		Name:  staffRec.Name,
		Email: staffRec.Email,
		Role:  staffRec.Role,
	}, nil
}

// RevokeAuthToken signs the staff member out everywhere.
func (s *DefaultStaffService) RevokeAuthToken(staffID string) error {
	if err := s.Repo.UpdateSetDocument(staffID, bson.M{"tokenHash": ""}); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	cacheKey := utils.AuthCachePrefix + staffID
	if err := utils.GetAuthCacheClient().Del(context.Background(), cacheKey).Err(); err != nil {
		utils.GetLogger().Warn("RevokeAuthToken: failed to clear token cache", zap.Error(err))
	}
	return nil
}

// UpdatePassword changes the staff member's password and revokes the current session.
func (s *DefaultStaffService) UpdatePassword(staffID, currentPassword, newPassword string) error {
	staffRec, err := s.Repo.GetByIDWithProjection(staffID, bson.M{})
	if err != nil {
		return fmt.Errorf("failed to fetch staff: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(staffRec.PasswordHash), []byte(currentPassword)); err != nil {
		return fmt.Errorf("current password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.Repo.UpdateSetDocument(staffID, bson.M{"passwordHash": string(hash)}); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return s.RevokeAuthToken(staffID)
}
