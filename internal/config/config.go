package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// ProjectFile is the optional per-project configuration file in the app root.
const ProjectFile = "dtogen.cue"

type Config struct {
	AppRoot         string `json:"appRoot" env:"DTOGEN_APP_ROOT" env-description:"application root" validate:"required"`
	ModelsDir       string `json:"modelsDir" env:"DTOGEN_MODELS_DIR" env-description:"models directory, relative to the app root" validate:"required"`
	DtosDir         string `json:"dtosDir" env:"DTOGEN_DTOS_DIR" env-description:"output directory for DTOs" validate:"required"`
	ValidatorsDir   string `json:"validatorsDir" env:"DTOGEN_VALIDATORS_DIR" env-description:"output directory for validators" validate:"required"`
	ModelsNamespace string `json:"modelsNamespace" env:"DTOGEN_MODELS_NAMESPACE" env-description:"import alias of the models directory" validate:"required"`
	DtosNamespace   string `json:"dtosNamespace" env:"DTOGEN_DTOS_NAMESPACE" env-description:"import alias of the DTOs directory" validate:"required"`
	BaseDtoPackage  string `json:"baseDtoPackage" env:"DTOGEN_BASE_DTO_PACKAGE" env-description:"module exporting BaseDto and BaseModelDto" validate:"required"`
	TemplatesDir    string `json:"templatesDir" env:"DTOGEN_TEMPLATES_DIR" env-description:"directory with template overrides"`
	Concurrency     int    `json:"concurrency" env:"DTOGEN_CONCURRENCY" env-description:"models analyzed in parallel" validate:"min=1,max=256"`

	LogLevel     string `json:"logLevel" env:"DTOGEN_LOG_LEVEL" env-description:"debug, info, warn or error" validate:"oneof=debug info warn error"`
	LogFormat    string `json:"logFormat" env:"DTOGEN_LOG_FORMAT" env-description:"text or json" validate:"oneof=text json"`
	HTTPAddr     string `json:"httpAddr" env:"DTOGEN_HTTP_ADDR" env-description:"listen address of the preview API" validate:"hostname_port"`
	OTLPEndpoint string `json:"otlpEndpoint" env:"DTOGEN_OTLP_ENDPOINT" env-description:"OTLP/HTTP trace collector; empty disables export"`
	MetricsFile  string `json:"metricsFile" env:"DTOGEN_METRICS_FILE" env-description:"write CLI metrics to this textfile"`
}

// Default returns the configuration of a stock AdonisJS application rooted at appRoot.
func Default(appRoot string) Config {
	return Config{
		AppRoot:         appRoot,
		ModelsDir:       "app/models",
		DtosDir:         "app/dtos",
		ValidatorsDir:   "app/validators",
		ModelsNamespace: "#models",
		DtosNamespace:   "#dtos",
		BaseDtoPackage:  "@adocasts.com/dto/base",
		Concurrency:     8,
		LogLevel:        "info",
		LogFormat:       "text",
		HTTPAddr:        "127.0.0.1:8787",
	}
}

// Load resolves configuration for appRoot: defaults, then dtogen.cue, then
// .env, then the process environment.
func Load(appRoot string) (*Config, error) {
	if appRoot == "" {
		appRoot = "."
	}
	cfg := Default(appRoot)

	if err := loadProjectFile(filepath.Join(appRoot, ProjectFile), &cfg); err != nil {
		return nil, err
	}

	envFile := filepath.Join(appRoot, ".env")
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("config error: load %s: %w", envFile, err)
		}
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field constraints and reports every violation at once.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("config error: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: failed %q (value %v)", fe.Field(), fe.Tag(), fe.Value()))
	}
	return fmt.Errorf("config error: %s", strings.Join(msgs, "; "))
}

// EnvHelp describes the environment variables Config reads.
func EnvHelp() string {
	var cfg Config
	help, err := cleanenv.GetDescription(&cfg, nil)
	if err != nil {
		return err.Error()
	}
	return help
}

// Resolve joins a root-relative directory with AppRoot.
func (c *Config) Resolve(dir string) string {
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(c.AppRoot, dir)
}
