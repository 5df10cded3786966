package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// Storage backend constants
	StorageLocal = "local"
	StorageS3    = "s3"

	// Default values
	DefaultLogLevel       = "info"
	DefaultMaxFileSize    = 100 * 1024 * 1024 // 100MB
	DefaultSourceLanguage = "auto"
	DefaultTargetLanguage = "en"
	DefaultModel          = "Llama-4-Maverick-17B-128E-Instruct-FP8"

	// Directory permissions
	DefaultDirPerm = 0o750
)

// Config holds all configuration for the immigration-form translation
// pipeline. API keys and endpoints are explicit here and passed into
// constructors; nothing reads the environment after startup.
type Config struct {
	// Document processing configuration
	OutputDirectory string
	MaxFileSize     int64 // Maximum PDF file size in bytes

	// Translation service configuration
	TranslatorEndpoint string
	TranslatorAPIKey   string
	TranslatorModel    string
	SourceLanguage     string
	TargetLanguage     string

	// OCR fallback configuration; empty endpoint disables OCR
	OCREndpoint string

	// Object storage configuration
	StorageBackend string // "local" or "s3"
	S3Bucket       string
	S3Region       string
	S3Endpoint     string
	S3AccessKey    string
	S3SecretKey    string

	// Application configuration
	Version  string
	LogLevel string
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	currentDir, err := os.Getwd()
	if err != nil {
		currentDir = "."
	}

	return &Config{
		OutputDirectory: filepath.Join(currentDir, "out"),
		MaxFileSize:     DefaultMaxFileSize,
		TranslatorModel: DefaultModel,
		SourceLanguage:  DefaultSourceLanguage,
		TargetLanguage:  DefaultTargetLanguage,
		StorageBackend:  StorageLocal,
		LogLevel:        DefaultLogLevel,
	}
}

// LoadFromFlags parses command line flags and returns a configuration
func LoadFromFlags() (*Config, error) {
	cfg := DefaultConfig()

	setupViperEnvironment(cfg)
	defineCommandLineFlags(cfg)
	bindFlagsToViper()

	pflag.Parse()

	populateConfigFromViper(cfg)

	if cfg.OutputDirectory != "" {
		if expandedPath, err := filepath.Abs(cfg.OutputDirectory); err == nil {
			cfg.OutputDirectory = expandedPath
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setupViperEnvironment configures viper with environment variables and defaults
func setupViperEnvironment(cfg *Config) {
	viper.SetEnvPrefix("IMMIFORM")
	// Dash-named keys map to underscore env names, e.g. IMMIFORM_S3_BUCKET.
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("outdir", cfg.OutputDirectory)
	viper.SetDefault("maxfilesize", cfg.MaxFileSize)
	viper.SetDefault("translator-endpoint", cfg.TranslatorEndpoint)
	viper.SetDefault("translator-apikey", cfg.TranslatorAPIKey)
	viper.SetDefault("translator-model", cfg.TranslatorModel)
	viper.SetDefault("source-lang", cfg.SourceLanguage)
	viper.SetDefault("target-lang", cfg.TargetLanguage)
	viper.SetDefault("ocr-endpoint", cfg.OCREndpoint)
	viper.SetDefault("storage", cfg.StorageBackend)
	viper.SetDefault("s3-bucket", cfg.S3Bucket)
	viper.SetDefault("s3-region", cfg.S3Region)
	viper.SetDefault("s3-endpoint", cfg.S3Endpoint)
	viper.SetDefault("s3-access-key", cfg.S3AccessKey)
	viper.SetDefault("s3-secret-key", cfg.S3SecretKey)
	viper.SetDefault("loglevel", cfg.LogLevel)
}

// defineCommandLineFlags sets up all command line flags
func defineCommandLineFlags(cfg *Config) {
	pflag.String("outdir", cfg.OutputDirectory, "Directory for rebuilt documents (local storage)")
	pflag.Int64("maxfilesize", cfg.MaxFileSize, "Maximum PDF file size in bytes")
	pflag.String("translator-endpoint", cfg.TranslatorEndpoint, "Translation service endpoint URL")
	pflag.String("translator-apikey", cfg.TranslatorAPIKey, "Translation service API key")
	pflag.String("translator-model", cfg.TranslatorModel, "Translation model name")
	pflag.String("source-lang", cfg.SourceLanguage, "Source language ('auto' to detect)")
	pflag.String("target-lang", cfg.TargetLanguage, "Target language")
	pflag.String("ocr-endpoint", cfg.OCREndpoint, "OCR service endpoint URL (empty disables OCR)")
	pflag.String("storage", cfg.StorageBackend, "Storage backend: 'local' or 's3'")
	pflag.String("s3-bucket", cfg.S3Bucket, "S3 bucket for stored documents")
	pflag.String("s3-region", cfg.S3Region, "S3 region")
	pflag.String("s3-endpoint", cfg.S3Endpoint, "Custom S3 endpoint (for S3-compatible stores)")
	pflag.String("s3-access-key", cfg.S3AccessKey, "S3 access key")
	pflag.String("s3-secret-key", cfg.S3SecretKey, "S3 secret key")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
}

// bindFlagsToViper binds command line flags to viper configuration
func bindFlagsToViper() {
	for _, name := range []string{
		"outdir", "maxfilesize",
		"translator-endpoint", "translator-apikey", "translator-model",
		"source-lang", "target-lang", "ocr-endpoint",
		"storage", "s3-bucket", "s3-region", "s3-endpoint", "s3-access-key", "s3-secret-key",
		"loglevel",
	} {
		_ = viper.BindPFlag(name, pflag.Lookup(name))
	}
}

// populateConfigFromViper fills the config struct with values from viper
func populateConfigFromViper(cfg *Config) {
	cfg.OutputDirectory = viper.GetString("outdir")
	cfg.MaxFileSize = viper.GetInt64("maxfilesize")
	cfg.TranslatorEndpoint = viper.GetString("translator-endpoint")
	cfg.TranslatorAPIKey = viper.GetString("translator-apikey")
	cfg.TranslatorModel = viper.GetString("translator-model")
	cfg.SourceLanguage = viper.GetString("source-lang")
	cfg.TargetLanguage = viper.GetString("target-lang")
	cfg.OCREndpoint = viper.GetString("ocr-endpoint")
	cfg.StorageBackend = viper.GetString("storage")
	cfg.S3Bucket = viper.GetString("s3-bucket")
	cfg.S3Region = viper.GetString("s3-region")
	cfg.S3Endpoint = viper.GetString("s3-endpoint")
	cfg.S3AccessKey = viper.GetString("s3-access-key")
	cfg.S3SecretKey = viper.GetString("s3-secret-key")
	cfg.LogLevel = viper.GetString("loglevel")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.StorageBackend != StorageLocal && c.StorageBackend != StorageS3 {
		return errors.New("storage backend must be either 'local' or 's3'")
	}

	if c.StorageBackend == StorageS3 && c.S3Bucket == "" {
		return errors.New("s3 storage requires a bucket name")
	}

	if c.StorageBackend == StorageLocal {
		if c.OutputDirectory == "" {
			return errors.New("output directory cannot be empty")
		}
		if _, err := os.Stat(c.OutputDirectory); os.IsNotExist(err) {
			if err := os.MkdirAll(c.OutputDirectory, DefaultDirPerm); err != nil {
				return fmt.Errorf("cannot create output directory %s: %w", c.OutputDirectory, err)
			}
		} else if err != nil {
			return fmt.Errorf("cannot access output directory %s: %w", c.OutputDirectory, err)
		}
	}

	if c.MaxFileSize <= 0 {
		return errors.New("maximum file size must be positive")
	}

	if c.TranslatorEndpoint != "" && c.TranslatorAPIKey == "" {
		return errors.New("translator endpoint requires an API key")
	}

	if c.TargetLanguage == "" {
		return errors.New("target language cannot be empty")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	return nil
}

// IsDebug returns true if debug logging is enabled
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// String returns a string representation of the configuration with secrets
// withheld.
func (c *Config) String() string {
	return fmt.Sprintf("Config{Storage: %s, OutputDirectory: %s, TargetLanguage: %s, LogLevel: %s, MaxFileSize: %d}",
		c.StorageBackend, c.OutputDirectory, c.TargetLanguage, c.LogLevel, c.MaxFileSize)
}
