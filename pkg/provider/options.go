package provider

import (
	"context"

	iface "github.com/ipfs/kubo/core/coreiface"
	"github.com/singnet/ipfs-provider-go/pkg/address"
	"github.com/singnet/ipfs-provider-go/pkg/connectivity"
	"github.com/singnet/ipfs-provider-go/pkg/env"
	"github.com/singnet/ipfs-provider-go/pkg/model"
)

// InitFunc instantiates an embedded node from a loaded constructor. It
// replaces the default strategy of calling the constructor directly.
type InitFunc func(ctx context.Context, newNode model.NodeConstructor, cfg model.NodeConfig) (iface.CoreAPI, error)

// Options are the settings a probe runs with. Zero-valued fields are unset
// and do not override lower layers when merged.
type Options struct {
	// ConnectivityTest decides whether a candidate handle works.
	ConnectivityTest connectivity.Test
	// Environment is the host context the probes inspect.
	Environment env.Environment

	// APIAddress is an explicit RPC address: a multiaddr string, an http(s)
	// URL string, an ma.Multiaddr or a *url.URL. Invalid values are ignored.
	APIAddress any
	// DefaultAPIAddress is the last-resort RPC address.
	DefaultAPIAddress string
	// ClientConstructor builds RPC clients. When unset the environment's
	// constructor is used.
	ClientConstructor model.ClientConstructor

	// Permissions requested from an injected handle. Merged by union.
	Permissions *model.Permissions

	// LoadNode lazily provides the embedded-node constructor.
	LoadNode model.Loader
	// Init overrides how the embedded node is instantiated.
	Init InitFunc
	// NodeConfig is handed to the embedded-node constructor.
	NodeConfig *model.NodeConfig

	// RepoPath is the repository whose api file the local-repo probe reads.
	RepoPath string
}

// Merge combines layers from lowest to highest precedence. Set fields of a
// later layer replace those of earlier ones; Permissions are unioned. No
// layer is modified.
func Merge(layers ...Options) Options {
	var out Options
	for _, l := range layers {
		if l.ConnectivityTest != nil {
			out.ConnectivityTest = l.ConnectivityTest
		}
		if l.Environment != nil {
			out.Environment = l.Environment
		}
		if l.APIAddress != nil {
			out.APIAddress = l.APIAddress
		}
		if l.DefaultAPIAddress != "" {
			out.DefaultAPIAddress = l.DefaultAPIAddress
		}
		if l.ClientConstructor != nil {
			out.ClientConstructor = l.ClientConstructor
		}
		if l.Permissions != nil {
			out.Permissions = out.Permissions.WithCommands(l.Permissions.Commands...)
		}
		if l.LoadNode != nil {
			out.LoadNode = l.LoadNode
		}
		if l.Init != nil {
			out.Init = l.Init
		}
		if l.NodeConfig != nil {
			nc := *l.NodeConfig
			nc.Profiles = append([]string(nil), l.NodeConfig.Profiles...)
			out.NodeConfig = &nc
		}
		if l.RepoPath != "" {
			out.RepoPath = l.RepoPath
		}
	}
	return out
}

// builtin is the lowest layer of every merge.
func builtin() Options {
	return Options{
		ConnectivityTest:  connectivity.Default,
		DefaultAPIAddress: address.DefaultAPIAddress,
	}
}

// environment returns o.Environment, or an empty one when unset.
func (o Options) environment() env.Environment {
	if o.Environment == nil {
		return &env.Static{}
	}
	return o.Environment
}

// withEnvironment fills the environment when no layer supplied one.
func (o Options) withEnvironment() Options {
	if o.Environment == nil {
		o.Environment = env.Process()
	}
	return o
}
