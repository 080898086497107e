package config

import "testing"

func TestNewFromEnv(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		t.Setenv("MEALMODE_DB_PATH", "")
		t.Setenv("MEALMODE_BOUGHT_STATE_PATH", "")
		t.Setenv("TELEGRAM_ALLOWED_USER_IDS", "")
		t.Setenv("ADMIN_TELEGRAM_ID", "")

		cfg, err := NewFromEnv()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cfg.DatabasePath != "data/mealmode.db" {
			t.Errorf("Expected default database path, got %q", cfg.DatabasePath)
		}
		if cfg.BoughtStatePath != "data/shopping_bought.json" {
			t.Errorf("Expected default bought state path, got %q", cfg.BoughtStatePath)
		}
		if len(cfg.TelegramAllowedUserIDs) != 0 {
			t.Errorf("Expected no allowed user IDs, got %v", cfg.TelegramAllowedUserIDs)
		}
	})

	t.Run("AllowedUserIDs", func(t *testing.T) {
		t.Setenv("TELEGRAM_ALLOWED_USER_IDS", "123, 456,789")
		t.Setenv("ADMIN_TELEGRAM_ID", "123")

		cfg, err := NewFromEnv()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		want := []int64{123, 456, 789}
		if len(cfg.TelegramAllowedUserIDs) != len(want) {
			t.Fatalf("Expected %d IDs, got %d", len(want), len(cfg.TelegramAllowedUserIDs))
		}
		for i, id := range want {
			if cfg.TelegramAllowedUserIDs[i] != id {
				t.Errorf("Expected ID %d at position %d, got %d", id, i, cfg.TelegramAllowedUserIDs[i])
			}
		}
		if cfg.AdminTelegramID != 123 {
			t.Errorf("Expected admin ID 123, got %d", cfg.AdminTelegramID)
		}
	})

	t.Run("BadAllowedUserIDs", func(t *testing.T) {
		t.Setenv("TELEGRAM_ALLOWED_USER_IDS", "123,abc")

		if _, err := NewFromEnv(); err == nil {
			t.Error("Expected an error for a non-numeric user ID")
		}
	})

	t.Run("BadAdminID", func(t *testing.T) {
		t.Setenv("TELEGRAM_ALLOWED_USER_IDS", "")
		t.Setenv("ADMIN_TELEGRAM_ID", "not-a-number")

		if _, err := NewFromEnv(); err == nil {
			t.Error("Expected an error for a non-numeric admin ID")
		}
	})
}

func TestRequireTelegram(t *testing.T) {
	t.Run("MissingToken", func(t *testing.T) {
		cfg := &Config{TelegramWebhookURL: "https://example.com/webhook"}
		if err := cfg.RequireTelegram(); err == nil {
			t.Error("Expected an error when the bot token is missing")
		}
	})

	t.Run("MissingWebhookURL", func(t *testing.T) {
		cfg := &Config{TelegramBotToken: "token"}
		if err := cfg.RequireTelegram(); err == nil {
			t.Error("Expected an error when the webhook URL is missing")
		}
	})

	t.Run("Complete", func(t *testing.T) {
		cfg := &Config{
			TelegramBotToken:   "token",
			TelegramWebhookURL: "https://example.com/webhook",
		}
		if err := cfg.RequireTelegram(); err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
	})
}
