package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	// Data source: a local CSV/TSV/XLSX path or an http(s) URL.
	DataPath        string `mapstructure:"data_path" yaml:"data_path"`
	Delimiter       string `mapstructure:"delimiter" yaml:"delimiter"`
	SheetName       string `mapstructure:"sheet_name" yaml:"sheet_name"`
	MaxRows         int    `mapstructure:"max_rows" yaml:"max_rows"`
	Timezone        string `mapstructure:"timezone" yaml:"timezone"`
	FetchTimeoutSec int    `mapstructure:"fetch_timeout_sec" yaml:"fetch_timeout_sec"`

	// Cleaning plan
	DatetimeColumns      []string `mapstructure:"datetime_columns" yaml:"datetime_columns"`
	DatetimeFormat       string   `mapstructure:"datetime_format" yaml:"datetime_format"`
	CategoryColumns      []string `mapstructure:"category_columns" yaml:"category_columns"`
	CategoryFallback     string   `mapstructure:"category_fallback" yaml:"category_fallback"`
	NestedColumns        []string `mapstructure:"nested_columns" yaml:"nested_columns"`
	RecordColumns        []string `mapstructure:"record_columns" yaml:"record_columns"`
	RecordDateFields     []string `mapstructure:"record_date_fields" yaml:"record_date_fields"`
	BooleanColumns       []string `mapstructure:"boolean_columns" yaml:"boolean_columns"`
	FloatColumns         []string `mapstructure:"float_columns" yaml:"float_columns"`
	EmojiColumns         []string `mapstructure:"emoji_columns" yaml:"emoji_columns"`
	JoinKey              string   `mapstructure:"join_key" yaml:"join_key"`
	InstitutionRemapFile string   `mapstructure:"institution_remap_file" yaml:"institution_remap_file"`
	KeywordRemapFile     string   `mapstructure:"keyword_remap_file" yaml:"keyword_remap_file"`
	Validate             bool     `mapstructure:"validate" yaml:"validate"`

	// Word frequency and chart
	TextFields        []string          `mapstructure:"text_fields" yaml:"text_fields"`
	FieldLabels       map[string]string `mapstructure:"field_labels" yaml:"field_labels"`
	MaxWords          int               `mapstructure:"max_words" yaml:"max_words"`
	MinTokenLen       int               `mapstructure:"min_token_len" yaml:"min_token_len"`
	ChartKind         string            `mapstructure:"chart_kind" yaml:"chart_kind"`
	ColorScale        string            `mapstructure:"color_scale" yaml:"color_scale"`
	Title             string            `mapstructure:"title" yaml:"title"`
	Width             int               `mapstructure:"width" yaml:"width"`
	Height            int               `mapstructure:"height" yaml:"height"`
	SpiralAngleStep   float64           `mapstructure:"spiral_angle_step" yaml:"spiral_angle_step"`
	SpiralRadiusScale float64           `mapstructure:"spiral_radius_scale" yaml:"spiral_radius_scale"`
	MinFontSize       float64           `mapstructure:"min_font_size" yaml:"min_font_size"`
	MaxFontSize       float64           `mapstructure:"max_font_size" yaml:"max_font_size"`

	// Server and logging
	ServerAddr string `mapstructure:"server_addr" yaml:"server_addr"`
	LogLevel   string `mapstructure:"log_level" yaml:"log_level"`
	LogFormat  string `mapstructure:"log_format" yaml:"log_format"`
}

// Dir returns ~/.wordloom.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".wordloom"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.wordloom/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		dir, err := Dir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("WORDLOOM")
	v.AutomaticEnv()
	setDefaults(v)

	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	} else {
		dir, err := Dir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// optional read
		_ = v.ReadInConfig()
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("data_path", "data.csv")
	v.SetDefault("delimiter", "")
	v.SetDefault("timezone", "America/Lima")
	v.SetDefault("fetch_timeout_sec", 30)

	v.SetDefault("datetime_columns", []string{"Published"})
	v.SetDefault("datetime_format", "")
	v.SetDefault("category_columns", []string{"institution"})
	v.SetDefault("category_fallback", "sin especificar")
	v.SetDefault("nested_columns", []string{"keywords"})
	v.SetDefault("emoji_columns", []string{})
	v.SetDefault("record_columns", []string{})
	v.SetDefault("record_date_fields", []string{"fecha_inicio_form"})
	v.SetDefault("boolean_columns", []string{})
	v.SetDefault("float_columns", []string{})
	v.SetDefault("join_key", "institution")
	v.SetDefault("validate", false)

	v.SetDefault("text_fields", []string{"main_keyword", "Post"})
	v.SetDefault("field_labels", map[string]string{
		"main_keyword": "Palabra clave",
		"Post":         "Publicación",
	})
	v.SetDefault("max_words", 50)
	v.SetDefault("min_token_len", 3)
	v.SetDefault("chart_kind", "treemap")
	v.SetDefault("color_scale", "Viridis")
	v.SetDefault("title", "Nube de palabras")
	v.SetDefault("width", 800)
	v.SetDefault("height", 400)
	v.SetDefault("spiral_angle_step", 2.4)
	v.SetDefault("spiral_radius_scale", 15.0)
	v.SetDefault("min_font_size", 10.0)
	v.SetDefault("max_font_size", 50.0)

	v.SetDefault("server_addr", "127.0.0.1:8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
}

// Label returns the display label for a text field, or the field itself.
func (c *Global) Label(field string) string {
	if l, ok := c.FieldLabels[field]; ok && l != "" {
		return l
	}
	return field
}

// DelimiterRune returns the first rune of Delimiter; "\t" and "tab" mean a
// tab. Empty means auto-detect (0).
func (c *Global) DelimiterRune() rune {
	switch c.Delimiter {
	case "":
		return 0
	case `\t`, "tab":
		return '\t'
	}
	return []rune(c.Delimiter)[0]
}
