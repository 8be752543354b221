package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// CommandConfig is an external command line. It may be configured as a
// single string ("node scripts/ts-definition.mjs") or as a list.
type CommandConfig struct {
	Args []string `mapstructure:"-"`
}

type LinkPrefixConfig struct {
	Prefix string `mapstructure:"prefix"`
	Path   string `mapstructure:"path"`
}

type RustConfig struct {
	Dump        string `mapstructure:"dump"`
	Methods     string `mapstructure:"methods"`
	Crate       string `mapstructure:"crate"`
	DocsBaseURL string `mapstructure:"docs_base_url"`
}

type PythonConfig struct {
	Index        string             `mapstructure:"index"`
	DocsBaseURL  string             `mapstructure:"docs_base_url"`
	LinkPrefixes []LinkPrefixConfig `mapstructure:"link_prefixes"`
}

type TypeScriptConfig struct {
	Module         string        `mapstructure:"module"`
	DocsBaseURL    string        `mapstructure:"docs_base_url"`
	Generator      CommandConfig `mapstructure:"generator"`
	TimeoutSeconds int           `mapstructure:"timeout_seconds"`
	Cache          bool          `mapstructure:"cache"`
}

type RenderConfig struct {
	OutDir      string `mapstructure:"out_dir"`
	Concurrency int    `mapstructure:"concurrency"`
	HTML        bool   `mapstructure:"html"`
}

type ReportConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

type Config struct {
	Rust       RustConfig       `mapstructure:"rust"`
	Python     PythonConfig     `mapstructure:"python"`
	TypeScript TypeScriptConfig `mapstructure:"typescript"`
	Render     RenderConfig     `mapstructure:"render"`
	Report     ReportConfig     `mapstructure:"report"`
}

// GeneratorTimeout is the per-invocation limit for the TypeScript generator.
func (c *Config) GeneratorTimeout() time.Duration {
	if c.TypeScript.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.TypeScript.TimeoutSeconds) * time.Second
}

// cacheBase returns the base cache directory for sdkdoc.
// Checks XDG_CACHE_HOME, then ~/.cache, then /tmp/sdkdoc as fallback.
func cacheBase() string {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, "sdkdoc")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".cache", "sdkdoc")
	}
	return filepath.Join(os.TempDir(), "sdkdoc")
}

// ReportDBPath returns the default path of the DuckDB build report.
func ReportDBPath() string {
	return filepath.Join(cacheBase(), "report.db")
}

// GeneratorCacheDir returns the directory caching generator output.
func GeneratorCacheDir() string {
	return filepath.Join(cacheBase(), "tsdef")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("rust.dump", "public/sdk/rust/drift_rs.json")
	v.SetDefault("rust.methods", "public/sdk/rust/drift_rs.methods.json")
	v.SetDefault("rust.crate", "drift_rs")
	v.SetDefault("rust.docs_base_url", "https://docs.rs/drift-rs/latest")

	v.SetDefault("python.index", "public/sdk/python/api.json")
	v.SetDefault("python.docs_base_url", "https://drift-labs.github.io/driftpy")
	v.SetDefault("python.link_prefixes", []map[string]string{
		{"prefix": "driftpy.drift_client", "path": "/clearing_house/"},
		{"prefix": "driftpy.drift_user", "path": "/clearing_house_user/"},
		{"prefix": "driftpy.accounts", "path": "/accounts/"},
		{"prefix": "driftpy.addresses", "path": "/addresses/"},
	})

	v.SetDefault("typescript.module", "@drift-labs/sdk")
	v.SetDefault("typescript.docs_base_url", "https://drift-labs.github.io/protocol-v2/sdk")
	v.SetDefault("typescript.generator", "node scripts/ts-definition.mjs")
	v.SetDefault("typescript.timeout_seconds", 60)
	v.SetDefault("typescript.cache", true)

	v.SetDefault("render.out_dir", "build/sdkdoc")
	v.SetDefault("render.concurrency", 4)
	v.SetDefault("render.html", false)

	v.SetDefault("report.enabled", true)
	v.SetDefault("report.path", ReportDBPath())
}

// InitializeViper configures v with the config search path, defaults and
// SDKDOC_ environment overrides, then reads the config file if present.
func InitializeViper(v *viper.Viper) error {
	v.SetConfigName("sdkdoc")
	v.SetConfigType("toml")

	v.AddConfigPath(".")
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		v.AddConfigPath(filepath.Join(xdg, "sdkdoc"))
	} else if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "sdkdoc"))
	}

	setDefaults(v)

	v.SetEnvPrefix("SDKDOC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}
	return nil
}

func commandConfigHookFunc() mapstructure.DecodeHookFunc {
	return func(f, t reflect.Type, data interface{}) (interface{}, error) {
		if t != reflect.TypeOf(CommandConfig{}) {
			return data, nil
		}
		switch v := data.(type) {
		case string:
			return CommandConfig{Args: strings.Fields(v)}, nil
		case []string:
			return CommandConfig{Args: v}, nil
		case []interface{}:
			args := make([]string, 0, len(v))
			for _, a := range v {
				s, ok := a.(string)
				if !ok {
					return nil, fmt.Errorf("generator argument %v is not a string", a)
				}
				args = append(args, s)
			}
			return CommandConfig{Args: args}, nil
		}
		return data, nil
	}
}

// Load reads configuration from the config file, defaults and environment.
// An explicit file path overrides the search path.
func Load(file string) (*Config, error) {
	v := viper.New()
	if file != "" {
		if _, err := os.Stat(file); err != nil {
			return nil, fmt.Errorf("config file: %w", err)
		}
		v.SetConfigFile(file)
	}
	if err := InitializeViper(v); err != nil {
		return nil, err
	}

	var config Config
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       commandConfigHookFunc(),
		WeaklyTypedInput: true,
		Result:           &config,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create decoder: %w", err)
	}

	if err := decoder.Decode(v.AllSettings()); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}
