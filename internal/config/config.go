// Package config provides configuration management for the migration commands.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"

	"sitemig/internal/models"
)

// Configuration errors.
var (
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrReadConfig    = errors.New("failed to read config file")
)

// Config represents the complete migration configuration.
type Config struct {
	Content   ContentConfig   `yaml:"content"`
	Migration MigrationConfig `yaml:"migration"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ContentConfig locates the content collections, relative to Root unless absolute.
type ContentConfig struct {
	Root            string `yaml:"root"`
	ArticlesDir     string `yaml:"articles_dir"`
	BlogDir         string `yaml:"blog_dir"`
	PeopleDir       string `yaml:"people_dir"`
	PagesDir        string `yaml:"pages_dir"`
	PublicationsDir string `yaml:"publications_dir"`
	PublicationsDoc string `yaml:"publications_doc"`
	AuthorMapping   string `yaml:"author_mapping"`
	MigrationNotes  string `yaml:"migration_notes"`
}

// MigrationConfig holds the policy knobs of the article migration.
type MigrationConfig struct {
	TeamID           string   `yaml:"team_id"`
	ExcerptMarker    string   `yaml:"excerpt_marker"`
	DefaultHeadshot  string   `yaml:"default_headshot"`
	Categories       []string `yaml:"categories"`
	DefaultSections  []string `yaml:"default_sections"`
	ExcerptMaxLength int      `yaml:"excerpt_max_length"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration matching the legacy repository layout.
func Default() *Config {
	return &Config{
		Content: ContentConfig{
			Root:            ".",
			ArticlesDir:     "src/content/articles",
			BlogDir:         "src/content/blog",
			PeopleDir:       "src/content/people",
			PagesDir:        "src/content/pages",
			PublicationsDir: "src/content/publications",
			PublicationsDoc: "publications.md",
			AuthorMapping:   "scripts/author-mapping.json",
			MigrationNotes:  "MIGRATION_NOTES.md",
		},
		Migration: MigrationConfig{
			TeamID:           models.TeamID,
			ExcerptMarker:    "<!--more-->",
			ExcerptMaxLength: 300,
			DefaultHeadshot:  "/src/assets/people/placeholder.png",
			Categories:       append([]string(nil), models.ArticleCategories...),
			DefaultSections:  []string{"Community"},
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadConfig loads configuration from a YAML file on top of the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadConfig, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SaveConfig saves configuration to a YAML file.
func (c *Config) SaveConfig(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	err := validation.ValidateStruct(c,
		validation.Field(&c.Content),
		validation.Field(&c.Migration),
		validation.Field(&c.Logging),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return nil
}

// Validate implements validation.Validatable.
func (c ContentConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Root, validation.Required),
		validation.Field(&c.ArticlesDir, validation.Required),
		validation.Field(&c.BlogDir, validation.Required),
		validation.Field(&c.PeopleDir, validation.Required),
		validation.Field(&c.PagesDir, validation.Required),
		validation.Field(&c.PublicationsDir, validation.Required),
		validation.Field(&c.PublicationsDoc, validation.Required),
		validation.Field(&c.AuthorMapping, validation.Required),
		validation.Field(&c.MigrationNotes, validation.Required),
	)
}

// Validate implements validation.Validatable.
func (m MigrationConfig) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.TeamID, validation.Required),
		validation.Field(&m.ExcerptMarker, validation.Required),
		validation.Field(&m.ExcerptMaxLength, validation.Required, validation.Min(10)),
		validation.Field(&m.Categories, validation.Required, validation.Each(validation.Required)),
		validation.Field(&m.DefaultSections, validation.Each(validation.Required)),
	)
}

// Validate implements validation.Validatable.
func (l LoggingConfig) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.Level, validation.Required, validation.In("debug", "info", "warn", "error")),
	)
}

// Path resolves a configured content path against the content root.
func (c *Config) Path(p string) string {
	if filepath.IsAbs(p) {
		return p
	}

	return filepath.Join(c.Content.Root, p)
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Root: %s, Articles: %s, People: %s, Publications: %s}",
		c.Content.Root,
		c.Content.ArticlesDir,
		c.Content.PeopleDir,
		c.Content.PublicationsDir,
	)
}
