package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Gemini GeminiConfig `yaml:"gemini" mapstructure:"gemini"`
	Form   FormConfig   `yaml:"form" mapstructure:"form"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// GeminiConfig holds Gemini API credentials and retry settings.
type GeminiConfig struct {
	// APIKeys accepts a YAML list or a comma-separated string (GEMINI_API_KEYS).
	APIKeys     []string `yaml:"api_keys" mapstructure:"api_keys"`
	Models      []string `yaml:"models" mapstructure:"models"`
	Rounds      int      `yaml:"rounds" mapstructure:"rounds"`
	TimeoutSecs int      `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	JSONMode    bool     `yaml:"json_mode" mapstructure:"json_mode"`
}

// Timeout returns the per-request timeout.
func (g GeminiConfig) Timeout() time.Duration {
	return time.Duration(g.TimeoutSecs) * time.Second
}

// Keys returns the usable API keys in rotation order.
func (g GeminiConfig) Keys() []string {
	return ParseKeys(strings.Join(g.APIKeys, ","))
}

// FormConfig configures how a page's questions are batched.
type FormConfig struct {
	BatchSize int `yaml:"batch_size" mapstructure:"batch_size"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// ParseKeys splits a comma-separated key list. Each entry is trimmed of
// whitespace and surrounding quotes; entries left empty are dropped.
func ParseKeys(raw string) []string {
	var keys []string
	for _, part := range strings.Split(raw, ",") {
		k := strings.TrimSpace(part)
		k = strings.Trim(k, `"`)
		k = strings.Trim(k, `'`)
		k = strings.TrimSpace(k)
		if k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

// Load reads configuration from .env, config.yaml and the environment.
func Load() (*Config, error) {
	if err := LoadDotEnv(".env"); err != nil {
		return nil, err
	}

	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("AUTOFILL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("gemini.api_keys", "GEMINI_API_KEYS", "AUTOFILL_GEMINI_API_KEYS"); err != nil {
		return nil, eris.Wrap(err, "config: bind env")
	}

	// Defaults
	v.SetDefault("gemini.models", []string{"gemini-2.5-flash", "gemini-2.5-flash-lite", "gemini-3-flash-preview"})
	v.SetDefault("gemini.rounds", 20)
	v.SetDefault("gemini.timeout_secs", 30)
	v.SetDefault("gemini.json_mode", true)
	v.SetDefault("form.batch_size", 10)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// LoadDotEnv exports the variables of a dotenv file that are not already
// set in the process environment. A missing file is not an error.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return eris.Wrapf(err, "config: stat %s", path)
	}

	dv := viper.New()
	dv.SetConfigFile(path)
	dv.SetConfigType("env")
	if err := dv.ReadInConfig(); err != nil {
		return eris.Wrapf(err, "config: read %s", path)
	}

	for _, key := range dv.AllKeys() {
		name := strings.ToUpper(key)
		if _, set := os.LookupEnv(name); set {
			continue
		}
		if err := os.Setenv(name, dv.GetString(key)); err != nil {
			return eris.Wrapf(err, "config: export %s", name)
		}
	}
	return nil
}

// Validate checks the settings the resolve command depends on.
func (c *Config) Validate() error {
	if c.Form.BatchSize <= 0 {
		return eris.Errorf("config: form.batch_size must be positive (got %d)", c.Form.BatchSize)
	}
	if c.Gemini.Rounds <= 0 {
		return eris.Errorf("config: gemini.rounds must be positive (got %d)", c.Gemini.Rounds)
	}
	if c.Gemini.TimeoutSecs <= 0 {
		return eris.Errorf("config: gemini.timeout_secs must be positive (got %d)", c.Gemini.TimeoutSecs)
	}
	if len(c.Gemini.Models) == 0 {
		return eris.New("config: gemini.models must not be empty")
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
