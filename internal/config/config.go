package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/at-ishikawa/latinlookup/internal/dictionary"
)

const (
	StoreFile     = "file"
	StoreDatabase = "database"
	StoreNone     = "none"
)

type Config struct {
	Server       ServerConfig       `mapstructure:"server"`
	Dictionaries DictionariesConfig `mapstructure:"dictionaries"`
	Collector    CollectorConfig    `mapstructure:"collector"`
	Templates    TemplatesConfig    `mapstructure:"templates"`
	Outputs      OutputsConfig      `mapstructure:"outputs"`
	Database     DatabaseConfig     `mapstructure:"database"`
}

type ServerConfig struct {
	Port int        `mapstructure:"port" validate:"min=1,max=65535"`
	CORS CORSConfig `mapstructure:"cors"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type DictionariesConfig struct {
	LatinWords LatinWordsConfig `mapstructure:"latin_words"`
}

type LatinWordsConfig struct {
	BaseURL        string        `mapstructure:"base_url" validate:"required,url"`
	Timeout        time.Duration `mapstructure:"timeout" validate:"gt=0"`
	RetryAttempts  uint          `mapstructure:"retry_attempts"`
	UserAgent      string        `mapstructure:"user_agent"`
	Store          string        `mapstructure:"store" validate:"oneof=file database none"`
	CacheDirectory string        `mapstructure:"cache_directory" validate:"required_if=Store file"`
	CacheCapacity  int           `mapstructure:"cache_capacity" validate:"min=0"`
}

type CollectorConfig struct {
	Delay      time.Duration `mapstructure:"delay" validate:"min=0"`
	OutputFile string        `mapstructure:"output_file" validate:"required"`
}

type TemplatesConfig struct {
	ReportTemplate string `mapstructure:"report_template" validate:"omitempty,file"`
}

type OutputsConfig struct {
	ReportDirectory string `mapstructure:"report_directory"`
}

type DatabaseConfig struct {
	Host            string            `mapstructure:"host"`
	Port            int               `mapstructure:"port"`
	Database        string            `mapstructure:"database"`
	Username        string            `mapstructure:"username"`
	Password        string            `mapstructure:"password"`
	TLS             bool              `mapstructure:"tls"`
	Params          map[string]string `mapstructure:"params"`
	MaxOpenConns    int               `mapstructure:"max_open_conns"`
	MaxIdleConns    int               `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int               `mapstructure:"conn_max_lifetime_seconds"`
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
	envFile    string
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/latinlookup")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
		envFile:    ".env",
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	if err := loadDotEnv(loader.envFile); err != nil {
		return nil, err
	}

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors.allowed_origins", []string{"https://la.wikipedia.org"})
	v.SetDefault("dictionaries.latin_words.base_url", dictionary.DefaultBaseURL)
	v.SetDefault("dictionaries.latin_words.timeout", 10*time.Second)
	v.SetDefault("dictionaries.latin_words.retry_attempts", 2)
	v.SetDefault("dictionaries.latin_words.user_agent", dictionary.DefaultUserAgent)
	v.SetDefault("dictionaries.latin_words.store", StoreFile)
	v.SetDefault("dictionaries.latin_words.cache_directory", filepath.Join("dictionaries", "latin_words"))
	v.SetDefault("dictionaries.latin_words.cache_capacity", 0)
	v.SetDefault("collector.delay", time.Second)
	v.SetDefault("collector.output_file", "latin_words_responses.json")
	// Template is optional - if not specified, will use embedded fallback template
	v.SetDefault("templates.report_template", "")
	v.SetDefault("outputs.report_directory", filepath.Join("outputs", "reports"))
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.database", "local")
	v.SetDefault("database.username", "user")

	if err := v.BindEnv("dictionaries.latin_words.base_url", "LATIN_WORDS_BASE_URL"); err != nil {
		return nil, fmt.Errorf("failed to bind LATIN_WORDS_BASE_URL environment variable: %w", err)
	}
	// Bind database password to environment variable
	if err := v.BindEnv("database.password", "DB_PASSWORD"); err != nil {
		return nil, fmt.Errorf("failed to bind DB_PASSWORD environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return nil, fmt.Errorf("validator.Struct > %w", err)
		}
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}

// loadDotEnv exports the variables of an env file that exists. Variables
// already set in the environment win.
func loadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("godotenv.Load(%s) > %w", path, err)
	}
	return nil
}

// ClientConfig converts the latin-words settings for dictionary.NewClient.
func (c LatinWordsConfig) ClientConfig() dictionary.ClientConfig {
	return dictionary.ClientConfig{
		BaseURL:       c.BaseURL,
		UserAgent:     c.UserAgent,
		Timeout:       c.Timeout,
		RetryAttempts: c.RetryAttempts,
	}
}
