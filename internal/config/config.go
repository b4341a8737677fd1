package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/piwi3910/packassist/internal/model"
	"github.com/piwi3910/packassist/internal/project"
	"github.com/piwi3910/packassist/internal/voice"
)

const (
	defaultSampleRate = 16000
	defaultBlockSize  = 8000
)

// Config aggregates runtime configuration resolved from multiple sources.
// Precedence: CLI flags > YAML config > Environment variables > Defaults
type Config struct {
	Box     BoxConfig     `yaml:"box"`
	Columns ColumnsConfig `yaml:"columns"`
	Voice   VoiceConfig   `yaml:"voice"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
	Session SessionConfig `yaml:"session"`
	Export  ExportConfig  `yaml:"export"`
}

// BoxConfig is the physical box grid.
type BoxConfig struct {
	Rows          int `yaml:"rows"`
	Columns       int `yaml:"columns"`
	SeparatorRows int `yaml:"separator_rows"`
}

// Geometry converts the section to a box geometry.
func (c BoxConfig) Geometry() model.BoxGeometry {
	return model.BoxGeometry{Rows: c.Rows, Columns: c.Columns, SeparatorRows: c.SeparatorRows}
}

// Validate checks the box dimensions.
func (c BoxConfig) Validate() error {
	return c.Geometry().Validate()
}

// ColumnsConfig names the columns of imported lists.
type ColumnsConfig struct {
	Code       string   `yaml:"code"`
	Positional []string `yaml:"positional"`
	Weight     string   `yaml:"weight"`
}

// ColumnSet converts the section to a model column set.
func (c ColumnsConfig) ColumnSet() model.ColumnSet {
	return model.ColumnSet{
		Code:       c.Code,
		Positional: append([]string(nil), c.Positional...),
		Weight:     c.Weight,
	}
}

// Validate checks that every column has a distinct, non-empty name.
func (c ColumnsConfig) Validate() error {
	seen := map[string]bool{}
	for _, name := range append(append([]string{c.Code}, c.Positional...), c.Weight) {
		name = strings.TrimSpace(name)
		if name == "" {
			return errors.New("column names cannot be empty")
		}
		if seen[name] {
			return fmt.Errorf("duplicate column %q", name)
		}
		seen[name] = true
	}
	return nil
}

// VoiceConfig configures speech input.
type VoiceConfig struct {
	Enabled        bool                 `yaml:"enabled"`
	ModelPath      string               `yaml:"model_path"`
	Device         string               `yaml:"device"`
	SampleRate     int                  `yaml:"sample_rate"`
	BlockSize      int                  `yaml:"block_size"`
	StartSuspended bool                 `yaml:"start_suspended"`
	JokeToken      string               `yaml:"joke_token"`
	JokeReply      string               `yaml:"joke_reply"`
	Words          []voice.Substitution `yaml:"words"`    // nil keeps the built-in table
	Commands       map[string]string    `yaml:"commands"` // nil keeps the built-in table
	AudioDump      string               `yaml:"audio_dump"`
}

// Interpreter returns the interpreter settings of the section.
func (c VoiceConfig) Interpreter() voice.InterpreterConfig {
	return voice.InterpreterConfig{
		JokeToken:     c.JokeToken,
		JokeReply:     c.JokeReply,
		Substitutions: c.Words,
		Commands:      c.Commands,
	}
}

var knownCommands = map[string]bool{
	voice.CommandPrevious: true,
	voice.CommandNext:     true,
	voice.CommandEnd:      true,
	voice.CommandClear:    true,
}

// Validate checks audio parameters and the command table.
func (c VoiceConfig) Validate() error {
	if c.Enabled && strings.TrimSpace(c.ModelPath) == "" {
		return errors.New("model_path is required when voice input is enabled")
	}
	if c.SampleRate <= 0 {
		return fmt.Errorf("sample_rate must be positive, got %d", c.SampleRate)
	}
	if c.BlockSize <= 0 {
		return fmt.Errorf("block_size must be positive, got %d", c.BlockSize)
	}
	for phrase, cmd := range c.Commands {
		if !knownCommands[cmd] {
			return fmt.Errorf("phrase %q maps to unknown command %q", phrase, cmd)
		}
	}
	for _, w := range c.Words {
		if w.From == "" {
			return errors.New("word substitution with empty source")
		}
	}
	return nil
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Validate checks level and format names.
func (c LoggingConfig) Validate() error {
	if _, err := zapcore.ParseLevel(c.Level); err != nil {
		return err
	}
	if c.Format != "json" && c.Format != "console" {
		return fmt.Errorf("format must be json or console, got %q", c.Format)
	}
	return nil
}

// MetricsConfig configures the Prometheus endpoint. An empty Addr disables it.
type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

// SessionConfig configures autosave of the working session.
type SessionConfig struct {
	Path     string `yaml:"path"`
	Autosave bool   `yaml:"autosave"`
}

// Validate checks that autosave has somewhere to write.
func (c SessionConfig) Validate() error {
	if c.Autosave && strings.TrimSpace(c.Path) == "" {
		return errors.New("path is required when autosave is enabled")
	}
	return nil
}

// ExportConfig configures printable output.
type ExportConfig struct {
	FontPath string `yaml:"font_path"` // TrueType font with Cyrillic glyphs for PDFs
}

// CLIOverrides holds command-line flag overrides.
type CLIOverrides struct {
	ConfigFile    string
	Rows          *int
	Columns       *int
	SeparatorRows *int
	VoiceModel    *string
	VoiceDevice   *string
	NoVoice       *bool
	LogLevel      *string
	MetricsAddr   *string
}

// Load extracts configuration from multiple sources with precedence:
// CLI flags > YAML config > Environment variables > Defaults
func Load(overrides *CLIOverrides) (Config, error) {
	cfg := Default()

	if err := applyEnvConfig(&cfg); err != nil {
		return Config{}, err
	}

	if overrides != nil && overrides.ConfigFile != "" {
		if err := loadFromFile(overrides.ConfigFile, &cfg); err != nil {
			return Config{}, fmt.Errorf("load YAML config: %w", err)
		}
	}

	if overrides != nil {
		applyCLIOverrides(&cfg, overrides)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Default returns a Config with default values.
func Default() Config {
	cols := model.DefaultColumns()
	g := model.DefaultGeometry()
	return Config{
		Box:     BoxConfig{Rows: g.Rows, Columns: g.Columns, SeparatorRows: g.SeparatorRows},
		Columns: ColumnsConfig{Code: cols.Code, Positional: cols.Positional, Weight: cols.Weight},
		Voice: VoiceConfig{
			SampleRate: defaultSampleRate,
			BlockSize:  defaultBlockSize,
			JokeToken:  voice.DefaultJokeToken,
			JokeReply:  voice.DefaultJokeReply,
		},
		Logging: LoggingConfig{Level: "info", Format: "console"},
		Session: SessionConfig{Path: project.DefaultSessionPath(), Autosave: true},
	}
}

// Validate checks every section and names the failing one.
func (c Config) Validate() error {
	sections := []struct {
		name string
		v    interface{ Validate() error }
	}{
		{"box", c.Box},
		{"columns", c.Columns},
		{"voice", c.Voice},
		{"logging", c.Logging},
		{"session", c.Session},
	}
	for _, s := range sections {
		if err := s.v.Validate(); err != nil {
			return fmt.Errorf("%s config: %w", s.name, err)
		}
	}
	return nil
}

// loadFromFile decodes a YAML file over cfg. Keys absent from the file keep
// their current values.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse YAML: %w", err)
	}
	return nil
}

// applyEnvConfig applies environment variable configuration.
func applyEnvConfig(cfg *Config) error {
	ints := []struct {
		key string
		dst *int
	}{
		{"PACKASSIST_BOX_ROWS", &cfg.Box.Rows},
		{"PACKASSIST_BOX_COLUMNS", &cfg.Box.Columns},
		{"PACKASSIST_BOX_SEPARATOR", &cfg.Box.SeparatorRows},
	}
	for _, e := range ints {
		raw := strings.TrimSpace(os.Getenv(e.key))
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("%s: invalid integer %q", e.key, raw)
		}
		*e.dst = v
	}

	if modelPath := strings.TrimSpace(os.Getenv("PACKASSIST_VOICE_MODEL")); modelPath != "" {
		cfg.Voice.ModelPath = modelPath
		cfg.Voice.Enabled = true
	}
	if device := strings.TrimSpace(os.Getenv("PACKASSIST_VOICE_DEVICE")); device != "" {
		cfg.Voice.Device = device
	}
	if level := strings.TrimSpace(os.Getenv("PACKASSIST_LOG_LEVEL")); level != "" {
		cfg.Logging.Level = level
	}
	if addr := strings.TrimSpace(os.Getenv("PACKASSIST_METRICS_ADDR")); addr != "" {
		cfg.Metrics.Addr = addr
	}
	return nil
}

// applyCLIOverrides applies command-line flag overrides.
func applyCLIOverrides(cfg *Config, o *CLIOverrides) {
	if o.Rows != nil && *o.Rows > 0 {
		cfg.Box.Rows = *o.Rows
	}
	if o.Columns != nil && *o.Columns > 0 {
		cfg.Box.Columns = *o.Columns
	}
	if o.SeparatorRows != nil && *o.SeparatorRows >= 0 {
		cfg.Box.SeparatorRows = *o.SeparatorRows
	}
	if o.VoiceModel != nil && *o.VoiceModel != "" {
		cfg.Voice.ModelPath = *o.VoiceModel
		cfg.Voice.Enabled = true
	}
	if o.VoiceDevice != nil && *o.VoiceDevice != "" {
		cfg.Voice.Device = *o.VoiceDevice
	}
	if o.NoVoice != nil && *o.NoVoice {
		cfg.Voice.Enabled = false
	}
	if o.LogLevel != nil && *o.LogLevel != "" {
		cfg.Logging.Level = *o.LogLevel
	}
	if o.MetricsAddr != nil && *o.MetricsAddr != "" {
		cfg.Metrics.Addr = *o.MetricsAddr
	}
}
