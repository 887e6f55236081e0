// Package provider implements the probes that locate an IPFS handle and the
// factory that binds each probe to its layered options.
//
// A probe returns (nil, nil) when it has nothing to offer. Connectivity
// failures are absorbed by the probe and reported as absence; other errors
// are returned for the orchestrator to log.
package provider

import (
	"context"
	"errors"

	"github.com/singnet/ipfs-provider-go/pkg/model"
)

// Probe is one strategy for locating a working handle.
type Probe func(ctx context.Context, opts Options) (*model.Result, error)

// Provider is a probe bound to its defaults and call-site options, waiting for
// the run-wide options supplied by the orchestrator.
type Provider struct {
	Kind model.Kind
	Name string

	resolve func(ctx context.Context, global Options) (*model.Result, error)
}

// Resolve runs the provider with the run-wide options.
func (p Provider) Resolve(ctx context.Context, global Options) (*model.Result, error) {
	if p.resolve == nil {
		return nil, errors.New("provider " + p.String() + " has no probe")
	}
	return p.resolve(ctx, global)
}

// WithName returns a copy of p labelled name in diagnostics.
func (p Provider) WithName(name string) Provider {
	p.Name = name
	return p
}

func (p Provider) String() string {
	if p.Name != "" {
		return p.Name
	}
	return p.Kind.String()
}

// Factory binds call-site options to a probe. Calling it with no arguments
// uses the probe defaults only.
type Factory func(call ...Options) Provider

// MakeProvider wraps probe so that it runs with options merged from, lowest to
// highest precedence: the built-in connectivity test and default API address,
// defaults, the orchestrator's global options and the call-site options.
func MakeProvider(kind model.Kind, probe Probe, defaults Options) Factory {
	return func(call ...Options) Provider {
		callOpts := Merge(call...)
		return Provider{
			Kind: kind,
			Name: kind.String(),
			resolve: func(ctx context.Context, global Options) (*model.Result, error) {
				opts := Merge(builtin(), defaults, global, callOpts).withEnvironment()
				return probe(ctx, opts)
			},
		}
	}
}
