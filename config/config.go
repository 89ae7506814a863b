package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// NamePlaceholder is the substring of the log filename template that gets
// replaced with a character name.
const NamePlaceholder = "<NAME>"

// Config is the complete scanner configuration.
type Config struct {
	Logs       LogsConfig      `json:"logs" yaml:"logs"`
	Inventory  InventoryConfig `json:"inventory" yaml:"inventory"`
	Checkpoint string          `json:"checkpoint" yaml:"checkpoint"`
	Journal    JournalConfig   `json:"journal" yaml:"journal"`
	Logging    LoggingConfig   `json:"logging" yaml:"logging"`
}

// LogsConfig locates the EverQuest log files to scan.
type LogsConfig struct {
	Dir      string   `json:"dir" yaml:"dir"`
	Template string   `json:"template" yaml:"template"`
	Sources  []string `json:"sources" yaml:"sources"`
}

// LogPath resolves the log file for one character by substituting the name
// into the filename template.
func (l LogsConfig) LogPath(source string) string {
	name := strings.Replace(l.Template, NamePlaceholder, source, 1)
	return filepath.Join(l.Dir, name)
}

// TableConfig names one inventory table and where its name and count
// columns sit. Positions are fixed per file, never auto-detected.
type TableConfig struct {
	Path        string `json:"path" yaml:"path"`
	NameColumn  int    `json:"name_column" yaml:"name_column"`
	CountColumn int    `json:"count_column" yaml:"count_column"`
}

// InventoryConfig holds the two tables trades are routed to.
type InventoryConfig struct {
	Items TableConfig `json:"items" yaml:"items"`
	Words TableConfig `json:"words" yaml:"words"`
}

// JournalConfig controls the optional SQLite trade journal. An empty
// DBPath disables it.
type JournalConfig struct {
	DBPath string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// LoggingConfig controls diagnostic output. With an empty File, logs go to
// stderr; otherwise to a size-rotated file.
type LoggingConfig struct {
	Level      string `json:"level" yaml:"level"`
	File       string `json:"file,omitempty" yaml:"file,omitempty"`
	MaxSizeMB  int    `json:"max_size_mb,omitempty" yaml:"max_size_mb,omitempty"`
	MaxBackups int    `json:"max_backups,omitempty" yaml:"max_backups,omitempty"`
	MaxAgeDays int    `json:"max_age_days,omitempty" yaml:"max_age_days,omitempty"`
	Compress   bool   `json:"compress,omitempty" yaml:"compress,omitempty"`
}

// LoadFromFile loads configuration from a file (YAML or JSON).
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension).
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks if the configuration is usable.
func (c *Config) Validate() error {
	if c.Logs.Dir == "" {
		return fmt.Errorf("logs.dir is required")
	}
	if !strings.Contains(c.Logs.Template, NamePlaceholder) {
		return fmt.Errorf("logs.template must contain %q", NamePlaceholder)
	}
	if len(c.Logs.Sources) == 0 {
		return fmt.Errorf("logs.sources must name at least one character")
	}
	if err := c.Inventory.Items.validate("inventory.items"); err != nil {
		return err
	}
	if err := c.Inventory.Words.validate("inventory.words"); err != nil {
		return err
	}
	if c.Checkpoint == "" {
		return fmt.Errorf("checkpoint path is required")
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn or error")
	}
	return nil
}

func (t TableConfig) validate(key string) error {
	if t.Path == "" {
		return fmt.Errorf("%s.path is required", key)
	}
	if t.NameColumn < 0 || t.CountColumn < 0 {
		return fmt.Errorf("%s column positions must be non-negative", key)
	}
	if t.NameColumn == t.CountColumn {
		return fmt.Errorf("%s name and count columns must differ", key)
	}
	return nil
}

// Default returns a configuration matching a stock P1999 install layout.
func Default() *Config {
	return &Config{
		Logs: LogsConfig{
			Dir:      "./logs",
			Template: "eqlog_<NAME>_P1999Teal.txt",
			Sources:  []string{"Librarian", "Mule", "Freeport", "Devook"},
		},
		Inventory: InventoryConfig{
			Items: TableConfig{Path: "./items.csv", NameColumn: 1, CountColumn: 2},
			Words: TableConfig{Path: "./words.csv", NameColumn: 2, CountColumn: 3},
		},
		Checkpoint: "./history.json",
		Journal: JournalConfig{
			DBPath: "./trades.sqlite",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
