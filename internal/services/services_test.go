package services

import (
	"time"

	"tripai-backend/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:         "test-secret",
			AccessTokenTTL: time.Hour,
			ResetTokenTTL:  10 * time.Minute,
		},
		Admin: config.AdminConfig{
			Email:    "admin@tripai.com",
			Password: "admin123",
			Name:     "Super Admin",
		},
		Wallet: config.WalletConfig{
			SignupBonus:    500,
			RewardRate:     0.05,
			ResetCodeTTL:   3 * time.Minute,
			CurrencySymbol: "₹",
		},
	}
}
