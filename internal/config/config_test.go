package config

import (
	"os"
	"testing"

	"github.com/spf13/viper"
)

func TestLoadConfig_Defaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	unsetEnvWithCleanup(t, "SERVER_PORT")
	unsetEnvWithCleanup(t, "DISPATCH_RATE_LIMIT_PER_MINUTE")
	unsetEnvWithCleanup(t, "HOSTED_AUTH_LINK_TTL_MINUTES")

	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.ServerPort != "8080" {
		t.Fatalf("expected default server port 8080, got %q", cfg.ServerPort)
	}
	if cfg.DispatchRateLimitPerMinute != 30 {
		t.Fatalf("expected default dispatch rate limit 30, got %d", cfg.DispatchRateLimitPerMinute)
	}
	if cfg.HostedAuthLinkTTLMinutes != 60 {
		t.Fatalf("expected default hosted auth link TTL 60, got %d", cfg.HostedAuthLinkTTLMinutes)
	}
}

func TestLoadConfig_ReadsEnvironment(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	setEnvWithCleanup(t, "UNIPILE_API_KEY", "unipile-key")
	setEnvWithCleanup(t, "SCHEDULE_SECRET", "sweep-secret")

	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.UnipileAPIKey != "unipile-key" {
		t.Fatalf("expected UnipileAPIKey from env, got %q", cfg.UnipileAPIKey)
	}
	if cfg.ScheduleSecret != "sweep-secret" {
		t.Fatalf("expected ScheduleSecret from env, got %q", cfg.ScheduleSecret)
	}
}

func TestAllowedOrigins_SplitsAndTrims(t *testing.T) {
	cfg := Config{CORSAllowedOrigins: "https://app.scoutline.io, https://staging.scoutline.io ,"}
	origins := cfg.AllowedOrigins()
	if len(origins) != 2 {
		t.Fatalf("expected 2 origins, got %d: %v", len(origins), origins)
	}
	if origins[0] != "https://app.scoutline.io" || origins[1] != "https://staging.scoutline.io" {
		t.Fatalf("unexpected origins: %v", origins)
	}
}

func TestAllowedOrigins_FallsBackToProductionBaseURL(t *testing.T) {
	cfg := Config{ProductionBaseURL: "https://scoutline.io"}
	origins := cfg.AllowedOrigins()
	if len(origins) != 1 || origins[0] != "https://scoutline.io" {
		t.Fatalf("expected production base url fallback, got %v", origins)
	}
}

func setEnvWithCleanup(t *testing.T, key string, value string) {
	t.Helper()
	prev, hadPrev := os.LookupEnv(key)
	if err := os.Setenv(key, value); err != nil {
		t.Fatalf("failed to set env %s: %v", key, err)
	}
	t.Cleanup(func() {
		if hadPrev {
			_ = os.Setenv(key, prev)
			return
		}
		_ = os.Unsetenv(key)
	})
}

func unsetEnvWithCleanup(t *testing.T, key string) {
	t.Helper()
	prev, hadPrev := os.LookupEnv(key)
	if err := os.Unsetenv(key); err != nil {
		t.Fatalf("failed to unset env %s: %v", key, err)
	}
	t.Cleanup(func() {
		if hadPrev {
			_ = os.Setenv(key, prev)
			return
		}
		_ = os.Unsetenv(key)
	})
}
