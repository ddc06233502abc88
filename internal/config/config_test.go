package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/sinclairtarget/git-contrib/internal/config"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{
		config.OutputDirEnv,
		config.FormatEnv,
		config.BackendEnv,
		config.NoCacheEnv,
		config.CacheDirEnv,
		config.JobsEnv,
		config.LogLevelEnv,
	} {
		t.Setenv(key, "")
	}
}

func TestFromEnvDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.FromEnv()
	if err != nil {
		t.Fatalf("FromEnv() returned error: %v", err)
	}

	expected := config.Default()
	if diff := cmp.Diff(
		expected,
		cfg,
		cmpopts.IgnoreFields(config.Config{}, "CacheDir"),
	); diff != "" {
		t.Errorf("config is wrong:\n%s", diff)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv(config.OutputDirEnv, "/tmp/reports")
	t.Setenv(config.FormatEnv, "XLSX")
	t.Setenv(config.BackendEnv, "cli")
	t.Setenv(config.NoCacheEnv, "true")
	t.Setenv(config.CacheDirEnv, "/tmp/cache")
	t.Setenv(config.JobsEnv, "3")
	t.Setenv(config.LogLevelEnv, "debug")

	cfg, err := config.FromEnv()
	if err != nil {
		t.Fatalf("FromEnv() returned error: %v", err)
	}

	expected := config.Config{
		OutputDir: "/tmp/reports",
		Format:    "xlsx",
		Backend:   "cli",
		NoCache:   true,
		CacheDir:  "/tmp/cache",
		Jobs:      3,
		LogLevel:  slog.LevelDebug,
	}
	if diff := cmp.Diff(expected, cfg); diff != "" {
		t.Errorf("config is wrong:\n%s", diff)
	}
}

func TestFromEnvBadValues(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{config.NoCacheEnv, "maybe"},
		{config.JobsEnv, "lots"},
		{config.LogLevelEnv, "chatty"},
	}

	for _, test := range tests {
		t.Run(test.key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(test.key, test.value)

			_, err := config.FromEnv()
			if err == nil {
				t.Errorf("expected error for %s=%s", test.key, test.value)
			}
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	os.Unsetenv(config.FormatEnv) // .env never overrides a set variable

	dir := t.TempDir()
	err := os.WriteFile(
		filepath.Join(dir, ".env"),
		[]byte("GIT_CONTRIB_FORMAT=xlsx\nGIT_CONTRIB_JOBS=2\n"),
		0o644,
	)
	if err != nil {
		t.Fatalf("could not write .env: %v", err)
	}

	// Explicit environment wins over the file
	t.Setenv(config.JobsEnv, "5")
	t.Chdir(dir)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.Format != "xlsx" {
		t.Errorf("expected format from .env but got %s", cfg.Format)
	}
	if cfg.Jobs != 5 {
		t.Errorf("expected jobs from environment but got %d", cfg.Jobs)
	}
}
