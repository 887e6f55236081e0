package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/singnet/ipfs-provider-go/pkg/address"
	"github.com/singnet/ipfs-provider-go/pkg/provider"
)

// DefaultProviders is the provider order used when Providers is empty.
var DefaultProviders = []string{"injected-global", "network-api"}

// Config holds the settings needed to run a discovery.
// Use Validate to fill implicit defaults and to check names and addresses.
type Config struct {
	// Providers lists provider names in the order they are tried.
	// Default: DefaultProviders.
	Providers []string `json:"providers" yaml:"providers" mapstructure:"providers"`
	// APIAddress is an explicit RPC address (multiaddr or http(s) URL). When
	// set, the network-api provider tries it and nothing else.
	APIAddress string `json:"api_address" yaml:"api_address" mapstructure:"api_address"`
	// DefaultAPIAddress is the last-resort RPC address.
	// Default: /ip4/127.0.0.1/tcp/5001
	DefaultAPIAddress string `json:"default_api_address" yaml:"default_api_address" mapstructure:"default_api_address"`
	// Origin is the URL the caller is served from, if any.
	Origin string `json:"origin" yaml:"origin" mapstructure:"origin"`
	// Permissions are the commands requested from an injected handle.
	Permissions []string `json:"permissions" yaml:"permissions" mapstructure:"permissions"`
	// RepoPath is the repository the local-repo provider reads the api file from.
	RepoPath string `json:"repo_path" yaml:"repo_path" mapstructure:"repo_path"`
	// Embedded configures the embedded-node provider.
	Embedded Embedded `json:"embedded" yaml:"embedded" mapstructure:"embedded"`
	// Debug enables verbose logging.
	Debug bool `json:"debug" yaml:"debug" mapstructure:"debug"`
	// Timeouts configures deadlines. See Timeouts.WithDefaults for defaults.
	Timeouts Timeouts `json:"timeouts" yaml:"timeouts" mapstructure:"timeouts"`
}

// Embedded configures an in-process node.
type Embedded struct {
	// RepoPath of the node. Empty means a temporary repository.
	RepoPath string `json:"repo_path" yaml:"repo_path" mapstructure:"repo_path"`
	// Offline disables networking.
	Offline bool `json:"offline" yaml:"offline" mapstructure:"offline"`
	// Profiles are kubo config profiles applied when a repository is created.
	Profiles []string `json:"profiles" yaml:"profiles" mapstructure:"profiles"`
}

// Timeouts controls discovery deadlines.
// Zero values will be replaced by defaults in WithDefaults.
type Timeouts struct {
	ConnectivityTest time.Duration `json:"connectivity_test" yaml:"connectivity_test" mapstructure:"connectivity_test"` // per candidate handle
	Resolve          time.Duration `json:"resolve" yaml:"resolve" mapstructure:"resolve"`                               // whole run
}

// Validate normalizes the configuration by applying defaults for Providers
// and DefaultAPIAddress, and checks provider names, addresses and the
// origin. APIAddress is checked too: an invalid explicit address would
// otherwise be silently ignored.
func (c *Config) Validate() error {
	if len(c.Providers) == 0 {
		c.Providers = append([]string(nil), DefaultProviders...)
	}
	for _, name := range c.Providers {
		if _, ok := provider.Lookup(name); !ok {
			return fmt.Errorf("unknown provider %q (known: %v)", name, provider.Names())
		}
	}

	if c.DefaultAPIAddress == "" {
		c.DefaultAPIAddress = address.DefaultAPIAddress
	}
	if address.Validate(c.DefaultAPIAddress) == nil {
		return fmt.Errorf("invalid default api address %q", c.DefaultAPIAddress)
	}

	if c.APIAddress != "" && address.Validate(c.APIAddress) == nil {
		return fmt.Errorf("invalid api address %q", c.APIAddress)
	}

	if c.Origin != "" {
		u, err := url.Parse(c.Origin)
		if err != nil {
			return fmt.Errorf("invalid origin %q: %w", c.Origin, err)
		}
		if u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("origin %q must be an absolute url", c.Origin)
		}
	}

	return nil
}

// OriginURL returns the parsed Origin, or nil when unset or invalid.
func (c *Config) OriginURL() *url.URL {
	if c.Origin == "" {
		return nil
	}
	u, err := url.Parse(c.Origin)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil
	}
	return u
}

// WithDefaults returns a copy of t with zero values replaced by defaults:
//
//	ConnectivityTest: 10s
//	Resolve:          2m
func (t Timeouts) WithDefaults() Timeouts {
	tt := t
	if tt.ConnectivityTest == 0 {
		tt.ConnectivityTest = 10 * time.Second
	}
	if tt.Resolve == 0 {
		tt.Resolve = 2 * time.Minute
	}
	return tt
}
