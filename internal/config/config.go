package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// DirName is the per-user config directory under $HOME.
const DirName = ".indiaviz"

// Global configuration structure.
type Global struct {
	DataPath string `mapstructure:"data_path" yaml:"data_path"`

	// Dashboard defaults used when build flags are omitted
	DefaultRegion    string  `mapstructure:"default_region" yaml:"default_region"`
	DefaultPrimary   string  `mapstructure:"default_primary" yaml:"default_primary"`
	DefaultSecondary string  `mapstructure:"default_secondary" yaml:"default_secondary"`
	Normalize        bool    `mapstructure:"normalize" yaml:"normalize"`
	TopN             int     `mapstructure:"top_n" yaml:"top_n"`
	OutlierThreshold float64 `mapstructure:"outlier_threshold" yaml:"outlier_threshold"`
	OutputDir        string  `mapstructure:"output_dir" yaml:"output_dir"`

	// Input parsing
	Delimiter  string `mapstructure:"delimiter" yaml:"delimiter"`
	SheetName  string `mapstructure:"sheet_name" yaml:"sheet_name"`
	SheetIndex int    `mapstructure:"sheet_index" yaml:"sheet_index"`
}

// Keys lists the settable configuration keys in display order.
var Keys = []string{
	"data_path", "default_region", "default_primary", "default_secondary", "normalize",
	"top_n", "outlier_threshold", "output_dir", "delimiter", "sheet_name", "sheet_index",
}

// Path returns the config file location: cfgFile if set, otherwise
// ~/.indiaviz/config.yaml.
func Path(cfgFile string) (string, error) {
	if cfgFile != "" {
		return cfgFile, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, DirName, "config.yaml"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.indiaviz/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path, err := Path(cfgFile)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
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
// Precedence: env > config file > defaults. A .env file in the working
// directory is loaded first and never overrides variables already set.
func Load(cfgFile string) (*Global, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("INDIAVIZ")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("data_path", "")
	v.SetDefault("default_region", "Overall")
	v.SetDefault("default_primary", "")
	v.SetDefault("default_secondary", "")
	v.SetDefault("normalize", false)
	v.SetDefault("top_n", 10)
	v.SetDefault("outlier_threshold", 2.0)
	v.SetDefault("output_dir", ".")
	v.SetDefault("delimiter", "")
	v.SetDefault("sheet_name", "")
	v.SetDefault("sheet_index", 1)

	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		v.AddConfigPath(filepath.Join(home, DirName))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}
