package discovery

import (
	"fmt"

	"github.com/singnet/ipfs-provider-go/pkg/config"
	"github.com/singnet/ipfs-provider-go/pkg/connectivity"
	"github.com/singnet/ipfs-provider-go/pkg/env"
	"github.com/singnet/ipfs-provider-go/pkg/model"
	"github.com/singnet/ipfs-provider-go/pkg/provider"
)

// FromConfig builds a run from a file or environment configuration. base
// carries what a configuration cannot express, such as the embedded-node
// loader or a custom environment; settings present in c override it.
func FromConfig(c *config.Config, base provider.Options) (*Config, error) {
	cc := *c
	if err := cc.Validate(); err != nil {
		return nil, err
	}
	if cc.Debug {
		SetDebug(true)
	}

	providers := make([]provider.Provider, 0, len(cc.Providers))
	for _, name := range cc.Providers {
		f, ok := provider.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("unknown provider %q", name)
		}
		providers = append(providers, f())
	}

	opts := provider.Options{
		DefaultAPIAddress: cc.DefaultAPIAddress,
		RepoPath:          cc.RepoPath,
	}
	if e := cc.Embedded; e.RepoPath != "" || e.Offline || len(e.Profiles) > 0 {
		opts.NodeConfig = &model.NodeConfig{RepoPath: e.RepoPath, Offline: e.Offline, Profiles: e.Profiles}
	}
	if cc.APIAddress != "" {
		opts.APIAddress = cc.APIAddress
	}
	if len(cc.Permissions) > 0 {
		opts.Permissions = &model.Permissions{Commands: cc.Permissions}
	}
	if cc.Timeouts.ConnectivityTest > 0 {
		opts.ConnectivityTest = connectivity.WithTimeout(base.ConnectivityTest, cc.Timeouts.ConnectivityTest)
	}
	if base.Environment == nil {
		e := env.Process()
		if u := cc.OriginURL(); u != nil {
			e.Origin = u
		}
		opts.Environment = e
	}

	return &Config{
		Providers: providers,
		Options:   provider.Merge(base, opts),
	}, nil
}
