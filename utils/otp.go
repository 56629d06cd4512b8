package utils

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const otpTTL = 5 * time.Minute

// GenerateOTP generates a secure random 4-digit one-time code.
func GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		return "", fmt.Errorf("failed to generate OTP: %w", err)
	}
	return fmt.Sprintf("%04d", n.Int64()+1000), nil
}

// StoreResetOTP stores a password-reset OTP for the given email with a
// 5-minute TTL, replacing any previous code.
func StoreResetOTP(email, otp string) error {
	ctx := context.Background()
	client := GetOTPCacheClient()

	key := "reset:" + email
	if err := client.Set(ctx, key, otp, otpTTL).Err(); err != nil {
		GetLogger().Error("Failed to cache reset OTP", zap.Error(err))
		return fmt.Errorf("failed to store reset OTP")
	}
	return nil
}

// VerifyResetOTP compares the provided OTP against the stored one and deletes
// it on success.
func VerifyResetOTP(email, providedOTP string) error {
	ctx := context.Background()
	client := GetOTPCacheClient()

	key := "reset:" + email
	stored, err := client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return fmt.Errorf("OTP not found or expired")
		}
		return fmt.Errorf("failed to retrieve OTP: %w", err)
	}
	if stored != providedOTP {
		return fmt.Errorf("OTP does not match")
	}

	if err := client.Del(ctx, key).Err(); err != nil {
		GetLogger().Error("Failed to delete OTP after verification", zap.Error(err))
	}
	return nil
}
