// Package config loads HostShell settings. Later layers win: built-in
// defaults, .env files, HOSTSHELL_* environment variables, then command line
// flags bound to the viper instance.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"hostshell/pkg/hosttypes"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable and .env key.
const EnvPrefix = "HOSTSHELL"

// Configuration keys.
const (
	KeyHostKind        = "host.kind"
	KeyHostName        = "host.name"
	KeyHostGroup       = "host.group"
	KeyHostDescription = "host.description"
	KeyHostProfile     = "host.profile"
	KeyHostNoColor     = "host.no_color"
	KeyHostNoTitle     = "host.no_title"
	KeyHostNoProfile   = "host.no_profile"
	KeyHostNoCancel    = "host.no_cancel"
	KeyHostThemeFile   = "host.theme_file"
	KeyHostPromptMarks = "host.prompt_marks"
	KeyLogLevel        = "log.level"
	KeyLogFile         = "log.file"
)

// HostConfig selects and describes the host to create.
type HostConfig struct {
	Kind        string
	Name        string
	Group       string
	Description string
	Profile     string
	ThemeFile   string
	NoColor     bool
	NoTitle     bool
	NoProfile   bool
	NoCancel    bool
	PromptMarks bool
}

// LogConfig configures the global logger.
type LogConfig struct {
	Level string
	File  string
}

// Config is the resolved configuration.
type Config struct {
	Host HostConfig
	Log  LogConfig
}

// SetDefaults registers the built-in defaults on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyHostKind, "console")
	v.SetDefault(KeyHostName, "hostshell")
	v.SetDefault(KeyHostGroup, "")
	v.SetDefault(KeyHostDescription, "")
	v.SetDefault(KeyHostProfile, "")
	v.SetDefault(KeyHostNoColor, false)
	v.SetDefault(KeyHostNoTitle, false)
	v.SetDefault(KeyHostNoProfile, false)
	v.SetDefault(KeyHostNoCancel, false)
	v.SetDefault(KeyHostThemeFile, "")
	v.SetDefault(KeyHostPromptMarks, false)
	v.SetDefault(KeyLogLevel, "")
	v.SetDefault(KeyLogFile, "")
}

// DefaultEnvFiles returns the .env files read by Load: the one in the user
// configuration directory, then the one in the working directory.
func DefaultEnvFiles() []string {
	var files []string
	if dir, err := os.UserConfigDir(); err == nil {
		files = append(files, filepath.Join(dir, "hostshell", ".env"))
	}
	if dir, err := os.Getwd(); err == nil {
		files = append(files, filepath.Join(dir, ".env"))
	}
	return files
}

// Load resolves the configuration from v. Missing .env files are skipped.
func Load(v *viper.Viper, envFiles ...string) (*Config, error) {
	SetDefaults(v)

	for _, path := range envFiles {
		if err := loadDotEnv(v, path); err != nil {
			return nil, err
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		Host: HostConfig{
			Kind:        v.GetString(KeyHostKind),
			Name:        v.GetString(KeyHostName),
			Group:       v.GetString(KeyHostGroup),
			Description: v.GetString(KeyHostDescription),
			Profile:     v.GetString(KeyHostProfile),
			ThemeFile:   v.GetString(KeyHostThemeFile),
			NoColor:     v.GetBool(KeyHostNoColor),
			NoTitle:     v.GetBool(KeyHostNoTitle),
			NoProfile:   v.GetBool(KeyHostNoProfile),
			NoCancel:    v.GetBool(KeyHostNoCancel),
			PromptMarks: v.GetBool(KeyHostPromptMarks),
		},
		Log: LogConfig{
			Level: v.GetString(KeyLogLevel),
			File:  v.GetString(KeyLogFile),
		},
	}

	if cfg.Host.Kind == "" {
		return nil, fmt.Errorf("%s must not be empty", KeyHostKind)
	}
	return cfg, nil
}

// loadDotEnv stores HOSTSHELL_SECTION_NAME entries of a .env file as
// defaults for section.name, so real environment variables and flags still win.
func loadDotEnv(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read .env file %s: %w", path, err)
	}

	envMap, err := godotenv.Unmarshal(string(data))
	if err != nil {
		return fmt.Errorf("failed to parse .env file %s: %w", path, err)
	}

	for key, value := range envMap {
		if configKey, ok := envKeyToConfigKey(key); ok {
			v.SetDefault(configKey, value)
		}
	}
	return nil
}

// envKeyToConfigKey maps HOSTSHELL_HOST_NO_COLOR to host.no_color.
func envKeyToConfigKey(key string) (string, bool) {
	rest, ok := strings.CutPrefix(strings.ToUpper(key), EnvPrefix+"_")
	if !ok {
		return "", false
	}
	section, name, ok := strings.Cut(strings.ToLower(rest), "_")
	if !ok || section == "" || name == "" {
		return "", false
	}
	return section + "." + name, true
}

// HostData returns the construction data for the configured host.
func (c *Config) HostData(interp hosttypes.Interpreter) hosttypes.HostData {
	data := hosttypes.NewHostData(c.Host.Name, c.Host.Kind, interp)
	data.Group = c.Host.Group
	data.Description = c.Host.Description
	data.Profile = c.Host.Profile
	if c.Host.NoColor {
		data.Flags |= hosttypes.CreateFlagNoColor
	}
	if c.Host.NoTitle {
		data.Flags |= hosttypes.CreateFlagNoTitle
	}
	if c.Host.NoProfile {
		data.Flags |= hosttypes.CreateFlagNoProfile
	}
	if c.Host.NoCancel {
		data.Flags |= hosttypes.CreateFlagNoCancel
	}
	return data
}
