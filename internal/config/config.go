// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package config handles application configuration loading from environment
// variables and an optional .env file. It provides a centralized Config
// struct used across the application.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"folio/internal/models"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTesting     = "testing"
)

// Config holds all application configuration values.
type Config struct {
	// Server settings
	Host string `validate:"required"`
	Port string `validate:"required,numeric"`
	Env  string `validate:"oneof=development production testing"`

	// PostgreSQL connection
	DBHost     string `validate:"required"`
	DBPort     string `validate:"required,numeric"`
	DBUser     string `validate:"required"`
	DBPassword string
	DBName     string `validate:"required"`

	// Valkey (Redis-compatible cache)
	ValkeyHost     string `validate:"required"`
	ValkeyPort     string `validate:"required,numeric"`
	ValkeyPassword string

	Storage   StorageConfig
	Portfolio PortfolioConfig
}

// StorageConfig selects where item images are read from. When S3Endpoint
// is empty, files are served from FilesRoot on the local disk.
type StorageConfig struct {
	S3Endpoint  string `validate:"omitempty,url"`
	S3Region    string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string `validate:"required_with=S3Endpoint"`
	S3PublicURL string

	// FilesRoot is the web root holding the files/ tree; registry paths
	// such as "files/portfolio/a.jpg" are resolved below it.
	FilesRoot string `validate:"required_without=S3Endpoint"`
	FilesURL  string // URL prefix of FilesRoot, "" for the site root
}

// PortfolioConfig are the page and module settings of the portfolio
// listings.
type PortfolioConfig struct {
	DateFormat   string `validate:"required"`
	OutputFormat string `validate:"oneof=html5 xhtml"`
	Language     string `validate:"required,bcp47_language_tag"`
	ImgSize      string // "width,height,mode", e.g. "320,240,crop"
	PerPage      int    `validate:"gte=0"`
	Template     string `validate:"required,excludesall=/\\."`
	ReaderPath   string `validate:"required,startswith=/"`
}

// Load reads configuration from the environment, after merging a .env file
// if present, applying defaults for development where appropriate. Returns
// an error if a value is malformed or critical values are missing in
// production mode.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{
		Host: v.GetString("APP_HOST"),
		Port: v.GetString("APP_PORT"),
		Env:  v.GetString("APP_ENV"),

		DBHost:     v.GetString("POSTGRES_HOST"),
		DBPort:     v.GetString("POSTGRES_PORT"),
		DBUser:     v.GetString("POSTGRES_USER"),
		DBPassword: v.GetString("POSTGRES_PASSWORD"),
		DBName:     v.GetString("POSTGRES_DB"),

		ValkeyHost:     v.GetString("VALKEY_HOST"),
		ValkeyPort:     v.GetString("VALKEY_PORT"),
		ValkeyPassword: v.GetString("VALKEY_PASSWORD"),

		Storage: StorageConfig{
			S3Endpoint:  v.GetString("S3_ENDPOINT"),
			S3Region:    v.GetString("S3_REGION"),
			S3AccessKey: v.GetString("S3_ACCESS_KEY"),
			S3SecretKey: v.GetString("S3_SECRET_KEY"),
			S3Bucket:    v.GetString("S3_BUCKET"),
			S3PublicURL: v.GetString("S3_PUBLIC_URL"),
			FilesRoot:   v.GetString("FILES_ROOT"),
			FilesURL:    v.GetString("FILES_URL"),
		},

		Portfolio: PortfolioConfig{
			DateFormat:   v.GetString("PORTFOLIO_DATE_FORMAT"),
			OutputFormat: v.GetString("PORTFOLIO_OUTPUT_FORMAT"),
			Language:     v.GetString("PORTFOLIO_LANGUAGE"),
			ImgSize:      v.GetString("PORTFOLIO_IMG_SIZE"),
			Template:     v.GetString("PORTFOLIO_TEMPLATE"),
			ReaderPath:   v.GetString("PORTFOLIO_READER_PATH"),
		},
	}

	perPage, err := strconv.Atoi(v.GetString("PORTFOLIO_PER_PAGE"))
	if err != nil {
		return nil, fmt.Errorf("PORTFOLIO_PER_PAGE must be a number: %w", err)
	}
	cfg.Portfolio.PerPage = perPage

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_HOST", "0.0.0.0")
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("APP_ENV", EnvDevelopment)

	v.SetDefault("POSTGRES_HOST", "localhost")
	v.SetDefault("POSTGRES_PORT", "5432")
	v.SetDefault("POSTGRES_USER", "folio")
	v.SetDefault("POSTGRES_PASSWORD", "changeme")
	v.SetDefault("POSTGRES_DB", "folio")

	v.SetDefault("VALKEY_HOST", "localhost")
	v.SetDefault("VALKEY_PORT", "6379")
	v.SetDefault("VALKEY_PASSWORD", "")

	v.SetDefault("S3_REGION", "us-east-1")
	v.SetDefault("FILES_ROOT", ".")
	v.SetDefault("FILES_URL", "")

	v.SetDefault("PORTFOLIO_DATE_FORMAT", "d.m.Y")
	v.SetDefault("PORTFOLIO_OUTPUT_FORMAT", "html5")
	v.SetDefault("PORTFOLIO_LANGUAGE", "en")
	v.SetDefault("PORTFOLIO_IMG_SIZE", "")
	v.SetDefault("PORTFOLIO_PER_PAGE", "10")
	v.SetDefault("PORTFOLIO_TEMPLATE", "portfolio_short")
	v.SetDefault("PORTFOLIO_READER_PATH", "/portfolio")
}

// Validate checks the struct tags and the production-only rules.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid configuration: %s failed %q", fe.Namespace(), fe.Tag())
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if _, err := ParseImageSize(c.Portfolio.ImgSize); err != nil {
		return err
	}

	if c.Env == EnvProduction {
		if c.DBPassword == "changeme" {
			return fmt.Errorf("POSTGRES_PASSWORD must be set in production")
		}
	}
	return nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == EnvDevelopment
}

// UseS3 returns true if images are stored in an S3 bucket.
func (c *Config) UseS3() bool {
	return c.Storage.S3Endpoint != ""
}

// ImageSize returns the parsed default image size of the listings.
// Load has already validated it.
func (p PortfolioConfig) ImageSize() models.ImageSize {
	size, _ := ParseImageSize(p.ImgSize)
	return size
}

// ParseImageSize parses "width,height,mode". Empty parts are allowed, so
// ",,3" selects preset 3 and "" means no default size.
func ParseImageSize(s string) (models.ImageSize, error) {
	var size models.ImageSize
	s = strings.TrimSpace(s)
	if s == "" {
		return size, nil
	}

	parts := strings.Split(s, ",")
	if len(parts) > 3 {
		return size, fmt.Errorf("invalid image size %q: want width,height,mode", s)
	}
	for i, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		switch i {
		case 0, 1:
			n, err := strconv.Atoi(part)
			if err != nil || n < 0 {
				return size, fmt.Errorf("invalid image size %q: %q is not a dimension", s, part)
			}
			if i == 0 {
				size.Width = n
			} else {
				size.Height = n
			}
		case 2:
			size.Mode = part
		}
	}
	return size, nil
}
