package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/KaramelBytes/wordloom/internal/chart"
	cfgpkg "github.com/KaramelBytes/wordloom/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set Wordloom configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "No config loaded")
			return nil
		}
		b, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("marshal config: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(b)
		return err
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Long: `Set a config value and save to disk. List values (text_fields,
datetime_columns, category_columns, nested_columns, emoji_columns,
record_columns, record_date_fields, boolean_columns, float_columns) are
comma-separated.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		if err := setConfigValue(cfg, key, val); err != nil {
			return err
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "✓ Saved config")
		return nil
	},
}

func setConfigValue(c *cfgpkg.Global, key, val string) error {
	switch key {
	case "data_path":
		c.DataPath = val
	case "delimiter":
		c.Delimiter = val
	case "sheet_name":
		c.SheetName = val
	case "timezone":
		c.Timezone = val
	case "datetime_format":
		c.DatetimeFormat = val
	case "category_fallback":
		c.CategoryFallback = val
	case "join_key":
		c.JoinKey = val
	case "institution_remap_file":
		c.InstitutionRemapFile = val
	case "keyword_remap_file":
		c.KeywordRemapFile = val
	case "color_scale":
		c.ColorScale = val
	case "title":
		c.Title = val
	case "server_addr":
		c.ServerAddr = val
	case "datetime_columns":
		c.DatetimeColumns = splitList(val)
	case "category_columns":
		c.CategoryColumns = splitList(val)
	case "nested_columns":
		c.NestedColumns = splitList(val)
	case "emoji_columns":
		c.EmojiColumns = splitList(val)
	case "record_columns":
		c.RecordColumns = splitList(val)
	case "record_date_fields":
		c.RecordDateFields = splitList(val)
	case "boolean_columns":
		c.BooleanColumns = splitList(val)
	case "float_columns":
		c.FloatColumns = splitList(val)
	case "text_fields":
		c.TextFields = splitList(val)
	case "chart_kind":
		k, err := chart.ParseKind(val)
		if err != nil {
			return err
		}
		c.ChartKind = string(k)
	case "log_level":
		switch strings.ToLower(val) {
		case "debug", "info", "warn", "warning", "error":
			c.LogLevel = strings.ToLower(val)
		default:
			return fmt.Errorf("invalid log_level: %s (use debug, info, warn or error)", val)
		}
	case "log_format":
		switch val {
		case "text", "json":
			c.LogFormat = val
		default:
			return fmt.Errorf("invalid log_format: %s (use text or json)", val)
		}
	case "validate":
		b, err := strconv.ParseBool(val)
		if err != nil {
			return fmt.Errorf("invalid bool for validate: %v", val)
		}
		c.Validate = b
	case "max_rows", "max_words", "min_token_len", "width", "height", "fetch_timeout_sec":
		i, err := strconv.Atoi(val)
		if err != nil || i < 0 {
			return fmt.Errorf("invalid int for %s: %v", key, val)
		}
		switch key {
		case "max_rows":
			c.MaxRows = i
		case "max_words":
			c.MaxWords = i
		case "min_token_len":
			c.MinTokenLen = i
		case "width":
			c.Width = i
		case "height":
			c.Height = i
		case "fetch_timeout_sec":
			c.FetchTimeoutSec = i
		}
	case "spiral_angle_step", "spiral_radius_scale", "min_font_size", "max_font_size":
		f, err := strconv.ParseFloat(val, 64)
		if err != nil || f <= 0 {
			return fmt.Errorf("invalid float for %s: %v", key, val)
		}
		switch key {
		case "spiral_angle_step":
			c.SpiralAngleStep = f
		case "spiral_radius_scale":
			c.SpiralRadiusScale = f
		case "min_font_size":
			c.MinFontSize = f
		case "max_font_size":
			c.MaxFontSize = f
		}
	default:
		if field, ok := strings.CutPrefix(key, "field_labels."); ok && field != "" {
			if c.FieldLabels == nil {
				c.FieldLabels = map[string]string{}
			}
			c.FieldLabels[field] = val
			return nil
		}
		return fmt.Errorf("unknown key: %s", key)
	}
	return nil
}

func splitList(s string) []string {
	out := []string{}
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
