package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment variables read by Load, e.g.
// IPFS_PROVIDER_API_ADDRESS or IPFS_PROVIDER_EMBEDDED_OFFLINE.
const EnvPrefix = "IPFS_PROVIDER"

// SetDefaults registers every key on v so that environment variables are
// picked up by Unmarshal even when no file mentions them.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("providers", DefaultProviders)
	v.SetDefault("api_address", "")
	v.SetDefault("default_api_address", "")
	v.SetDefault("origin", "")
	v.SetDefault("permissions", []string{})
	v.SetDefault("repo_path", "")
	v.SetDefault("embedded.repo_path", "")
	v.SetDefault("embedded.offline", false)
	v.SetDefault("embedded.profiles", []string{})
	v.SetDefault("debug", false)
	v.SetDefault("timeouts.connectivity_test", 0)
	v.SetDefault("timeouts.resolve", 0)
}

// Load reads configuration from flags already bound to v, the environment
// and an optional file, then validates it. An explicitly named configFile
// must exist; otherwise a missing ipfs-provider.{yaml,json} in configPaths
// is fine.
func Load(v *viper.Viper, configFile string, configPaths ...string) (*Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("ipfs-provider")
		v.AddConfigPath(".")
		for _, p := range configPaths {
			v.AddConfigPath(p)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.Timeouts = cfg.Timeouts.WithDefaults()
	return &cfg, nil
}
