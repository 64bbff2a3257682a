package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func lookupFrom(env map[string]string) envLookup {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(nil, lookupFrom(map[string]string{
		"DATABASE_URI": "postgres://localhost/tariffbot",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.RunAddress != ":8080" {
		t.Fatalf("unexpected run address %q", cfg.RunAddress)
	}
	if cfg.PaymentProvider != MockProviderName {
		t.Fatalf("expected mock provider by default, got %q", cfg.PaymentProvider)
	}
	if cfg.ReconcileInterval != time.Minute {
		t.Fatalf("unexpected reconcile interval %s", cfg.ReconcileInterval)
	}
	if cfg.PendingGrace != 15*time.Minute {
		t.Fatalf("unexpected pending grace %s", cfg.PendingGrace)
	}
	if cfg.WorkerPoolSize != 4 || cfg.ReconcileBatch != 32 {
		t.Fatalf("unexpected worker defaults: %d/%d", cfg.WorkerPoolSize, cfg.ReconcileBatch)
	}
}

func TestLoadRequiresDatabaseURI(t *testing.T) {
	if _, err := load(nil, lookupFrom(nil)); err == nil {
		t.Fatal("expected error when database URI is missing")
	}
}

func TestLoadRequiresProviderAddressForRealProvider(t *testing.T) {
	env := map[string]string{
		"DATABASE_URI":     "postgres://localhost/tariffbot",
		"PAYMENT_PROVIDER": "sbp",
	}
	if _, err := load(nil, lookupFrom(env)); err == nil {
		t.Fatal("expected error when provider address is missing")
	}

	env["PROVIDER_ADDRESS"] = "https://sbp.example"
	cfg, err := load(nil, lookupFrom(env))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.PaymentProvider != "sbp" {
		t.Fatalf("unexpected provider %q", cfg.PaymentProvider)
	}
}

func TestFlagsOverrideEnvironment(t *testing.T) {
	args := []string{
		"-a", ":9000",
		"-provider", "mock",
		"-reconcile-interval", "30s",
		"-pending-grace", "1m",
		"-worker-pool", "2",
	}
	cfg, err := load(args, lookupFrom(map[string]string{
		"DATABASE_URI": "postgres://localhost/tariffbot",
		"RUN_ADDRESS":  ":8081",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.RunAddress != ":9000" {
		t.Fatalf("expected flag to win, got %q", cfg.RunAddress)
	}
	if cfg.ReconcileInterval != 30*time.Second {
		t.Fatalf("unexpected reconcile interval %s", cfg.ReconcileInterval)
	}
	if cfg.PendingGrace != time.Minute {
		t.Fatalf("unexpected pending grace %s", cfg.PendingGrace)
	}
	if cfg.WorkerPoolSize != 2 {
		t.Fatalf("unexpected pool size %d", cfg.WorkerPoolSize)
	}
}

func TestWebhookSecretFileOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "secret")
	if err := os.WriteFile(path, []byte("from-file"), 0o600); err != nil {
		t.Fatalf("write secret file: %v", err)
	}

	cfg, err := load(nil, lookupFrom(map[string]string{
		"DATABASE_URI":        "postgres://localhost/tariffbot",
		"WEBHOOK_SECRET":      "from-env",
		"WEBHOOK_SECRET_FILE": path,
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.WebhookSecret != "from-file" {
		t.Fatalf("expected file secret to win, got %q", cfg.WebhookSecret)
	}
}

func TestNonPositiveValuesFallBackToDefaults(t *testing.T) {
	cfg, err := load([]string{"-worker-pool", "-1", "-reconcile-batch", "0"}, lookupFrom(map[string]string{
		"DATABASE_URI": "postgres://localhost/tariffbot",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.WorkerPoolSize != defaultWorkerPoolSize {
		t.Fatalf("expected default pool size, got %d", cfg.WorkerPoolSize)
	}
	if cfg.ReconcileBatch != defaultReconcileBatch {
		t.Fatalf("expected default batch, got %d", cfg.ReconcileBatch)
	}
}
