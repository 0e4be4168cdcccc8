package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func mapLookup(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Expected default config valid, got %v", err)
	}
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	err := cfg.ApplyEnv(mapLookup(map[string]string{
		EnvLogLevel:        "debug",
		EnvFrameInterval:   "20ms",
		EnvAudioEnabled:    "false",
		EnvMasterVolume:    "150",
		EnvServerAddr:      " :9000 ",
		EnvCollisionRadius: "2.5",
		EnvKillsToCharge:   "3",
		EnvSeed:            "99",
		EnvKeymap:          "x=quit, space=toggle_mute",
	}))
	if err != nil {
		t.Fatalf("ApplyEnv failed: %v", err)
	}

	if cfg.LogLevel != "debug" {
		t.Errorf("Expected debug, got %s", cfg.LogLevel)
	}
	if cfg.FrameInterval != 20*time.Millisecond {
		t.Errorf("Expected 20ms, got %v", cfg.FrameInterval)
	}
	if cfg.AudioEnabled {
		t.Error("Expected audio disabled")
	}
	if cfg.MasterVolume != 1 {
		t.Errorf("Expected volume clamped to 1, got %v", cfg.MasterVolume)
	}
	if cfg.ServerAddr != ":9000" {
		t.Errorf("Expected :9000, got %q", cfg.ServerAddr)
	}
	if cfg.CollisionRadius != 2.5 || cfg.KillsToCharge != 3 || cfg.Seed != 99 {
		t.Errorf("Expected 2.5/3/99, got %v/%d/%d", cfg.CollisionRadius, cfg.KillsToCharge, cfg.Seed)
	}
	if cfg.Keymap != "x=quit, space=toggle_mute" {
		t.Errorf("Expected keymap passed through, got %q", cfg.Keymap)
	}
}

func TestApplyEnvErrors(t *testing.T) {
	cfg := Default()
	err := cfg.ApplyEnv(mapLookup(map[string]string{
		EnvPollInterval: "soon",
		EnvSeed:         "-1",
	}))
	if !errors.Is(err, ErrInvalid) {
		t.Errorf("Expected ErrInvalid, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		mut  func(*Config)
	}{
		{"level", func(c *Config) { c.LogLevel = "chatty" }},
		{"frame", func(c *Config) { c.FrameInterval = time.Second }},
		{"poll", func(c *Config) { c.PollInterval = 0 }},
		{"radius", func(c *Config) { c.CollisionRadius = -1 }},
		{"kills", func(c *Config) { c.KillsToCharge = 0 }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := Default()
			c.mut(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("Expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestLoadDotenv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte("SWORDRAIN_KILLS_TO_CHARGE=5\nSWORDRAIN_SEED=7\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvKillsToCharge, "")
	os.Unsetenv(EnvKillsToCharge)
	t.Setenv(EnvSeed, "11") // process env wins over the file

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.KillsToCharge != 5 {
		t.Errorf("Expected 5 from file, got %d", cfg.KillsToCharge)
	}
	if cfg.Seed != 11 {
		t.Errorf("Expected env seed 11, got %d", cfg.Seed)
	}
	os.Unsetenv(EnvKillsToCharge)
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.env")); err != nil {
		t.Errorf("Expected missing env file to be ignored, got %v", err)
	}
}
