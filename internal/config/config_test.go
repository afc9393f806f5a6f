package config

import (
	"testing"
	"time"

	"github.com/mfenderov/docscan/pkg/models"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	if cfg.Credits.DefaultBalance != models.DefaultCredits {
		t.Errorf("Credits.DefaultBalance = %d, want %d", cfg.Credits.DefaultBalance, models.DefaultCredits)
	}
	if cfg.Credits.ResetInterval != 24*time.Hour {
		t.Errorf("Credits.ResetInterval = %v, want 24h", cfg.Credits.ResetInterval)
	}
	if cfg.Server.MaxUploadBytes != 5*1024*1024 {
		t.Errorf("Server.MaxUploadBytes = %d, want 5 MiB", cfg.Server.MaxUploadBytes)
	}
	if cfg.Storage.Enabled || cfg.Elasticsearch.Enabled {
		t.Error("optional backends should be disabled by default")
	}
	if cfg.Database.Path == "" {
		t.Error("Database.Path should have a default")
	}
}
