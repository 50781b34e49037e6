package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"vacuum_packaging/internal/packaging"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. VACPACK_DB_PATH.
const EnvPrefix = "VACPACK"

// Config is the typed view of configs/config.yml plus environment overrides.
type Config struct {
	Port            string
	ShutdownTimeout time.Duration

	DBPath string

	LogLevel  string
	LogFormat string // console | json

	SigningKey string
	TokenTTL   time.Duration

	Stages packaging.Timings
}

var errEmptySigningKey = errors.New("auth.signing_key must not be empty")

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("shutdown_timeout", 10*time.Second)
	v.SetDefault("db.path", "app.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("auth.signing_key", "change-me")
	v.SetDefault("auth.token_ttl", time.Hour)

	d := packaging.DefaultTimings()
	v.SetDefault("stages.preheat", d.PreHeat)
	v.SetDefault("stages.evacuate", d.Evacuate)
	v.SetDefault("stages.nitrogen_flush", d.NitrogenFlush)
	v.SetDefault("stages.cool_down", d.CoolDown)
}

// New returns a viper instance with defaults, env overrides and the
// config file search path set up. The file is optional.
func New(paths ...string) *viper.Viper {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yml")
	if len(paths) == 0 {
		paths = []string{"configs"} // configs/config.yml
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file (if any) and decodes it.
func Load(paths ...string) (Config, error) {
	v := New(paths...)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}
	return FromViper(v)
}

// FromViper decodes and checks an already prepared viper instance.
func FromViper(v *viper.Viper) (Config, error) {
	cfg := Config{
		Port:            v.GetString("port"),
		ShutdownTimeout: v.GetDuration("shutdown_timeout"),
		DBPath:          v.GetString("db.path"),
		LogLevel:        strings.ToLower(v.GetString("log.level")),
		LogFormat:       strings.ToLower(v.GetString("log.format")),
		SigningKey:      v.GetString("auth.signing_key"),
		TokenTTL:        v.GetDuration("auth.token_ttl"),
		Stages: packaging.Timings{
			PreHeat:       v.GetDuration("stages.preheat"),
			Evacuate:      v.GetDuration("stages.evacuate"),
			NitrogenFlush: v.GetDuration("stages.nitrogen_flush"),
			CoolDown:      v.GetDuration("stages.cool_down"),
		},
	}

	if strings.TrimSpace(cfg.SigningKey) == "" {
		return Config{}, errEmptySigningKey
	}
	if cfg.TokenTTL <= 0 {
		return Config{}, fmt.Errorf("auth.token_ttl must be positive, got %s", cfg.TokenTTL)
	}
	for name, d := range map[string]time.Duration{
		"stages.preheat":        cfg.Stages.PreHeat,
		"stages.evacuate":       cfg.Stages.Evacuate,
		"stages.nitrogen_flush": cfg.Stages.NitrogenFlush,
		"stages.cool_down":      cfg.Stages.CoolDown,
	} {
		if d < 0 {
			return Config{}, fmt.Errorf("%s must not be negative, got %s", name, d)
		}
	}
	return cfg, nil
}
