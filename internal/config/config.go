package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

type Duration struct{ time.Duration }

// [Duration] implements [json.Marshaler]
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		d.Duration = time.Duration(value)
		return nil
	case string:
		var err error
		d.Duration, err = time.ParseDuration(value)
		if err != nil {
			return err
		}
		return nil

	default:
		return errors.New("invalid duration")
	}
}

type JwtConfig struct {
	Secret        string   `json:"secret"`
	TokenLifetime Duration `json:"token_lifetime"`
}

type Config struct {
	Mode       string    `json:"mode"`
	Addr       string    `json:"addr"`
	LogFile    string    `json:"log_file"`
	SessionTTL Duration  `json:"session_ttl"`
	MaxWidth   int       `json:"max_width"`
	MaxHeight  int       `json:"max_height"`
	Jwt        JwtConfig `json:"jwt"`
}

func Default() *Config {
	return &Config{
		Mode:       "production",
		Addr:       ":8000",
		SessionTTL: Duration{2 * time.Hour},
		MaxWidth:   100,
		MaxHeight:  100,
		Jwt: JwtConfig{
			TokenLifetime: Duration{24 * time.Hour},
		},
	}
}

func (c Config) Fields() logrus.Fields {
	return map[string]any{
		"mode":               c.Mode,
		"addr":               c.Addr,
		"log_file":           c.LogFile,
		"session_ttl":        c.SessionTTL.Duration.String(),
		"max_width":          c.MaxWidth,
		"max_height":         c.MaxHeight,
		"jwt_secret_set":     c.Jwt.Secret != "",
		"jwt_token_lifetime": c.Jwt.TokenLifetime.Duration.String(),
	}
}

func (c Config) Development() bool {
	return c.Mode != "production"
}

// Load reads the JSON file at path over the defaults, then applies env
// overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	config := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("unable to read config %s: %w", path, err)
		default:
			if err := json.Unmarshal(b, config); err != nil {
				return nil, fmt.Errorf("unable to parse config %s: %w", path, err)
			}
		}
	}
	config.applyEnv()
	if err := config.validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) applyEnv() {
	if addr, ok := os.LookupEnv("APP_ADDR"); ok {
		c.Addr = addr
	}
	if development, ok := os.LookupEnv("DEVELOPMENT"); ok {
		if development != "0" {
			c.Mode = "development"
		} else {
			c.Mode = "production"
		}
	}
	if secret, ok := os.LookupEnv("JWT_SECRET"); ok {
		c.Jwt.Secret = secret
	}
	if logFile, ok := os.LookupEnv("LOG_FILE"); ok {
		c.LogFile = logFile
	}
}

func (c *Config) validate() error {
	if c.Addr == "" {
		return errors.New("addr must be set")
	}
	if c.MaxWidth < 1 || c.MaxHeight < 1 {
		return fmt.Errorf("max board size must be positive, got %dx%d", c.MaxWidth, c.MaxHeight)
	}
	if c.Jwt.TokenLifetime.Duration <= 0 {
		return errors.New("jwt token_lifetime must be positive")
	}
	return nil
}
