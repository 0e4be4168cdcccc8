package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/lixenwraith/sword-rain/internal/log"
	"github.com/lixenwraith/sword-rain/parameter"
)

// ErrInvalid wraps every validation failure
var ErrInvalid = errors.New("invalid configuration")

// Environment variable names
const (
	EnvPrefix          = "SWORDRAIN_"
	EnvLogLevel        = EnvPrefix + "LOG_LEVEL"
	EnvLogFile         = EnvPrefix + "LOG_FILE"
	EnvFrameInterval   = EnvPrefix + "FRAME_INTERVAL"
	EnvPollInterval    = EnvPrefix + "POLL_INTERVAL"
	EnvAudioEnabled    = EnvPrefix + "AUDIO_ENABLED"
	EnvMasterVolume    = EnvPrefix + "MASTER_VOLUME"
	EnvServerAddr      = EnvPrefix + "SERVER_ADDR"
	EnvCollisionRadius = EnvPrefix + "COLLISION_RADIUS"
	EnvKillsToCharge   = EnvPrefix + "KILLS_TO_CHARGE"
	EnvSeed            = EnvPrefix + "SEED"
	EnvCORSOrigins     = EnvPrefix + "CORS_ORIGINS"
	EnvKeymap          = EnvPrefix + "KEYMAP"
)

// Config is the resolved runtime configuration
type Config struct {
	LogLevel string
	LogFile  string

	FrameInterval time.Duration
	PollInterval  time.Duration

	AudioEnabled bool
	MasterVolume float64 // 0.0-1.0

	ServerAddr  string // empty disables the bridge
	CORSOrigins string

	Keymap string // "key=action" overrides, see input.LoadKeyConfig

	CollisionRadius float64
	KillsToCharge   int
	Seed            uint64
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		LogLevel:        "info",
		FrameInterval:   parameter.FrameUpdateInterval,
		PollInterval:    parameter.GesturePollInterval,
		AudioEnabled:    true,
		MasterVolume:    0.5,
		CORSOrigins:     "*",
		CollisionRadius: parameter.CollisionRadius,
		KillsToCharge:   parameter.MonstersToKill,
		Seed:            uint64(time.Now().UnixNano()),
	}
}

// Load resolves defaults, then the optional dotenv files, then the environment
// A missing dotenv file is not an error; an unreadable one is
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
		log.Debug("loaded env file", "file", f)
	}

	cfg := Default()
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

// ApplyEnv overlays values found through lookup onto cfg
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	var errs []error
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok {
			*dst = strings.TrimSpace(v)
		}
	}
	dur := func(key string, dst *time.Duration) {
		if v, ok := lookup(key); ok {
			d, err := time.ParseDuration(strings.TrimSpace(v))
			if err != nil {
				errs = append(errs, fmt.Errorf("%w: %s: %v", ErrInvalid, key, err))
				return
			}
			*dst = d
		}
	}

	str(EnvLogLevel, &c.LogLevel)
	str(EnvLogFile, &c.LogFile)
	str(EnvServerAddr, &c.ServerAddr)
	str(EnvCORSOrigins, &c.CORSOrigins)
	str(EnvKeymap, &c.Keymap)
	dur(EnvFrameInterval, &c.FrameInterval)
	dur(EnvPollInterval, &c.PollInterval)

	if v, ok := lookup(EnvAudioEnabled); ok {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: %s: %v", ErrInvalid, EnvAudioEnabled, err))
		} else {
			c.AudioEnabled = b
		}
	}

	// Master volume is 0-100 in the environment
	if v, ok := lookup(EnvMasterVolume); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: %s: %v", ErrInvalid, EnvMasterVolume, err))
		} else {
			c.MasterVolume = min(1, max(0, float64(n)/100))
		}
	}

	if v, ok := lookup(EnvCollisionRadius); ok {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: %s: %v", ErrInvalid, EnvCollisionRadius, err))
		} else {
			c.CollisionRadius = f
		}
	}

	if v, ok := lookup(EnvKillsToCharge); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: %s: %v", ErrInvalid, EnvKillsToCharge, err))
		} else {
			c.KillsToCharge = n
		}
	}

	if v, ok := lookup(EnvSeed); ok {
		n, err := strconv.ParseUint(strings.TrimSpace(v), 10, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: %s: %v", ErrInvalid, EnvSeed, err))
		} else {
			c.Seed = n
		}
	}

	return errors.Join(errs...)
}

// Validate checks ranges; every error wraps ErrInvalid
func (c Config) Validate() error {
	var errs []error
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("%w: %v", ErrInvalid, err))
	}
	if c.FrameInterval <= 0 || c.FrameInterval > parameter.MaxFrameDelta {
		errs = append(errs, fmt.Errorf("%w: frame interval %v outside (0, %v]", ErrInvalid, c.FrameInterval, parameter.MaxFrameDelta))
	}
	if c.PollInterval <= 0 || c.PollInterval > parameter.MaxFrameDelta {
		errs = append(errs, fmt.Errorf("%w: poll interval %v outside (0, %v]", ErrInvalid, c.PollInterval, parameter.MaxFrameDelta))
	}
	if c.CollisionRadius <= 0 {
		errs = append(errs, fmt.Errorf("%w: collision radius must be positive, got %v", ErrInvalid, c.CollisionRadius))
	}
	if c.KillsToCharge < 1 {
		errs = append(errs, fmt.Errorf("%w: kills to charge must be at least 1, got %d", ErrInvalid, c.KillsToCharge))
	}
	return errors.Join(errs...)
}
