// Package config loads wsdlmodel settings from a YAML file, the
// environment and command line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. WSDLMODEL_LOG_LEVEL.
const EnvPrefix = "WSDLMODEL"

// Keys.
const (
	LogLevel        = "log.level"
	LogPretty       = "log.pretty"
	HTTPInsecure    = "http.insecure"
	HTTPTimeout     = "http.timeout"
	GeneratePackage = "generate.package"
	ModelFormat     = "model.format"
)

// New returns a viper instance with defaults and environment overrides.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// SetDefaults registers the default value of every key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(LogLevel, "info")
	v.SetDefault(LogPretty, true)
	v.SetDefault(HTTPInsecure, false)
	v.SetDefault(HTTPTimeout, 30*time.Second)
	v.SetDefault(GeneratePackage, "")
	v.SetDefault(ModelFormat, "yaml")
}

// Load reads file into v. With no file, $HOME/.wsdlmodel.yaml is read
// when it exists.
func Load(v *viper.Viper, file string) error {
	if file != "" {
		v.SetConfigFile(file)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil
		}
		v.AddConfigPath(home)
		v.SetConfigName(".wsdlmodel")
		v.SetConfigType("yaml")
	}
	err := v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	switch {
	case errors.As(err, &notFound):
		log.Debug().Msg("config file not found")
		return nil
	case err != nil:
		return fmt.Errorf("config: %w", err)
	}
	log.Debug().Str("file", v.ConfigFileUsed()).Msg("using config file")
	return nil
}
