package configuration

import (
	"fmt"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"pratdiff/internal/diff"
	"pratdiff/internal/logging"
)

const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

var ColorChoices = []string{ColorAuto, ColorAlways, ColorNever}

type Configuration struct {
	// Context is the number of unchanged lines shown around every change
	Context      int             `json:"context"`
	Color        string          `json:"color"`
	VerbosePaths bool            `json:"verbosePaths"`
	Algorithm    string          `json:"algorithm"`
	// MaxLines refuses to diff inputs with more lines, 0 disables the limit
	MaxLines     int             `json:"maxLines"`
	LogFile      string          `json:"logFile"`
	Profiling    ProfilingConfig `json:"profiling"`
}

var CurrentConfig Configuration

// InitConfig reads in config file and ENV variables if set.
func InitConfig(cfgFile string) {
	viper.SetConfigName("pratdiff")

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			logging.Warning("Couldn't detect home directory: %v", err)
		} else {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath("/etc/pratdiff/")
	}

	viper.SetEnvPrefix("pratdiff")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	setDefaultValues()
}

func setDefaultValues() {
	viper.SetDefault("Context", 3)
	viper.SetDefault("Color", ColorAuto)
	viper.SetDefault("VerbosePaths", false)
	viper.SetDefault("Algorithm", string(diff.Patience))
	viper.SetDefault("MaxLines", 0)
	viper.SetDefault("LogFile", "")

	viper.SetDefault("Profiling", ProfilingConfig{
		Enabled: false,
		Host:    "localhost",
		Port:    6060,
	})
	viper.SetDefault("Profiling.Enabled", false)
	viper.SetDefault("Profiling.Host", "localhost")
	viper.SetDefault("Profiling.Port", 6060)
}

// BindFlags lets command line flags take precedence over the config file
func BindFlags(flags *pflag.FlagSet, keys map[string]string) error {
	for key, flagName := range keys {
		flag := flags.Lookup(flagName)
		if flag == nil {
			return fmt.Errorf("unknown flag %q for config key %s", flagName, key)
		}
		if err := viper.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("binding flag %q: %w", flagName, err)
		}
	}
	return nil
}

// DetectAndReadConfigFile detects the path of the first existing config file
func DetectAndReadConfigFile() (string, error) {
	err := readInConfig()
	if err != nil {
		// running without a config file is fine, a broken one is not
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return "", fmt.Errorf("reading config file: %w", err)
		}
	}
	return GetFilePath(), nil
}

// readInConfig reads and parses the config file
func readInConfig() error {
	return viper.ReadInConfig()
}

// GetFilePath this is only populated _after_ readInConfig()
func GetFilePath() string {
	return viper.ConfigFileUsed()
}

func LoadConfig() error {
	err := viper.Unmarshal(&CurrentConfig)
	if err != nil {
		return fmt.Errorf("unable to decode into struct: %w", err)
	}
	return nil
}
