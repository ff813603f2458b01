// Package config holds the catalog's viper-backed settings.
//
// Precedence, highest first: explicit flags (bound with BindPFlag),
// CATALOG_* environment variables, config.yaml, defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config keys.
const (
	KeyDB               = "db"
	KeyJSON             = "json"
	KeyExportDir        = "export.dir"
	KeyExportHeader     = "export.header"
	KeyExportOrderBy    = "export.order-by"
	KeyListOrderBy      = "list.order-by"
	KeyLogLevel         = "log.level"
	KeyLogFile          = "log.file"
	KeyTelemetryEnabled = "telemetry.enabled"
	KeyTelemetryStdout  = "telemetry.stdout"
	KeyBusyTimeout      = "sqlite.busy-timeout"
	KeyBusyRetries      = "sqlite.busy-retries"
)

// EnvPrefix is prepended to every environment override, e.g. CATALOG_DB.
const EnvPrefix = "CATALOG"

var v *viper.Viper

// Initialize sets up the viper singleton: defaults, environment binding and
// the first config.yaml found in the working directory or the user config
// directory. A missing config file is not an error.
func Initialize() error {
	v = viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if dir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(dir, "catalog"))
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyDB, "catalog.db")
	v.SetDefault(KeyJSON, false)
	v.SetDefault(KeyExportDir, "exports")
	v.SetDefault(KeyExportHeader, false)
	v.SetDefault(KeyExportOrderBy, "date_added")
	v.SetDefault(KeyListOrderBy, "date_added")
	v.SetDefault(KeyLogLevel, "warn")
	v.SetDefault(KeyLogFile, "")
	v.SetDefault(KeyTelemetryEnabled, false)
	v.SetDefault(KeyTelemetryStdout, false)
	v.SetDefault(KeyBusyTimeout, 5*time.Second)
	v.SetDefault(KeyBusyRetries, 5)
}

// ResetForTesting drops all state so tests start from defaults.
func ResetForTesting() {
	v = viper.New()
	setDefaults(v)
}

func get() *viper.Viper {
	if v == nil {
		ResetForTesting()
	}
	return v
}

// BindPFlag makes an explicitly set flag win over env and file values.
func BindPFlag(key string, flag *pflag.Flag) error {
	if flag == nil {
		return fmt.Errorf("no flag for config key %q", key)
	}
	return get().BindPFlag(key, flag)
}

// ConfigFileUsed returns the path of the loaded config file, if any.
func ConfigFileUsed() string {
	return get().ConfigFileUsed()
}

func GetString(key string) string {
	return get().GetString(key)
}

func GetBool(key string) bool {
	return get().GetBool(key)
}

func GetInt(key string) int {
	return get().GetInt(key)
}

func GetDuration(key string) time.Duration {
	return get().GetDuration(key)
}

func GetStringSlice(key string) []string {
	return get().GetStringSlice(key)
}

// Set overrides a value for the rest of the process.
func Set(key string, value interface{}) {
	get().Set(key, value)
}

// AllSettings returns every resolved setting.
func AllSettings() map[string]interface{} {
	return get().AllSettings()
}
