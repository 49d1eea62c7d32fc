package utils

import (
	"context"
	"crypto/rand"
	"encoding/base32"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// generateSecureOTP generates a secure random OTP of the specified length.
// It returns a base32 encoded string (without padding) truncated to the desired length.
func generateSecureOTP(length int) (string, error) {
	numBytes := (length*5 + 7) / 8
	randomBytes := make([]byte, numBytes)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	otp := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(randomBytes)
	if len(otp) > length {
		otp = otp[:length]
	}
	return otp, nil
}

// SendOTPMessage delivers the OTP to the staff member's phone.
// Replace the body with the actual SMS gateway integration; for now the
// outgoing message is logged.
func SendOTPMessage(phoneNumber, message string) error {
	GetLogger().Sugar().Infof("Sending OTP message to %s: %s", phoneNumber, message)
	return nil
}

// InitiatePasswordResetOTP generates an OTP, stores it in Redis with a
// 5-minute TTL and sends it to the staff member.
func InitiatePasswordResetOTP(staffID, phoneNumber string) error {
	otp, err := generateSecureOTP(6)
	if err != nil {
		return fmt.Errorf("failed to generate OTP: %w", err)
	}
	ttl := 5 * time.Minute
	otpKey := fmt.Sprintf("otp:%s", staffID)

	ctx := context.Background()
	client := GetOTPCacheClient()
	if client == nil {
		return fmt.Errorf("OTP cache client not initialized")
	}

	if err := client.Set(ctx, otpKey, otp, ttl).Err(); err != nil {
		GetLogger().Error("Failed to cache OTP", zap.Error(err))
		return fmt.Errorf("failed to initiate password reset OTP")
	}

	message := fmt.Sprintf("Your Tillpoint OTP is: %s. It expires in 5 minutes.", otp)
	if err := SendOTPMessage(phoneNumber, message); err != nil {
		GetLogger().Error("Failed to send OTP", zap.Error(err))
		return fmt.Errorf("failed to send OTP")
	}

	GetLogger().Sugar().Infof("Sent password reset OTP to %s for staff %s (expires in %v)", phoneNumber, staffID, ttl)
	return nil
}

// VerifyPasswordResetOTP retrieves the stored OTP from Redis and compares it
// to the provided OTP. If they match, it deletes the OTP from the cache.
func VerifyPasswordResetOTP(staffID, providedOTP string) error {
	otpKey := fmt.Sprintf("otp:%s", staffID)
	ctx := context.Background()
	client := GetOTPCacheClient()
	if client == nil {
		return fmt.Errorf("OTP cache client not initialized")
	}

	storedOTP, err := client.Get(ctx, otpKey).Result()
	if err != nil {
		if err == redis.Nil {
			return fmt.Errorf("OTP not found or expired")
		}
		return fmt.Errorf("failed to retrieve OTP: %w", err)
	}

	if storedOTP != providedOTP {
		return fmt.Errorf("OTP does not match")
	}

	if err := client.Del(ctx, otpKey).Err(); err != nil {
		GetLogger().Error("Failed to delete OTP after verification", zap.Error(err))
	}
	return nil
}
