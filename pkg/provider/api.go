package provider

import (
	"context"
	"fmt"

	ma "github.com/multiformats/go-multiaddr"
	"github.com/singnet/ipfs-provider-go/pkg/address"
	"github.com/singnet/ipfs-provider-go/pkg/connectivity"
	"github.com/singnet/ipfs-provider-go/pkg/model"
	"go.uber.org/zap"
)

// probeNetworkAPI tries, in order:
//  1. the explicit APIAddress, and nothing else when one is given;
//  2. the environment's location, unless it is already the default API;
//  3. DefaultAPIAddress.
func probeNetworkAPI(ctx context.Context, opts Options) (*model.Result, error) {
	newClient, err := clientConstructor(opts)
	if err != nil {
		return nil, err
	}

	if opts.APIAddress != nil {
		if explicit := address.Validate(opts.APIAddress); explicit != nil {
			zap.L().Info("trying ipfs rpc api with custom api address", zap.Stringer("addr", explicit))
			return maybeAPI(ctx, model.KindNetworkAPI, newClient, explicit, opts.ConnectivityTest), nil
		}
		zap.L().Warn("ignoring invalid api address", zap.Any("addr", opts.APIAddress))
	}

	if origin, ok := opts.environment().Location(); ok && !address.IsDefaultOrigin(origin) {
		originAddr, err := address.FromURL(origin)
		if err != nil {
			zap.L().Warn("failed to convert origin to a multiaddr", zap.String("origin", origin.String()), zap.Error(err))
		} else {
			zap.L().Info("trying ipfs rpc api at current origin", zap.Stringer("addr", originAddr))
			if res := maybeAPI(ctx, model.KindNetworkAPI, newClient, originAddr, opts.ConnectivityTest); res != nil {
				return res, nil
			}
		}
	}

	def := address.Validate(opts.DefaultAPIAddress)
	if def == nil {
		return nil, &ConfigurationError{
			Missing: "DefaultAPIAddress",
			Err:     fmt.Errorf("invalid address %q", opts.DefaultAPIAddress),
		}
	}
	zap.L().Info("trying ipfs rpc api", zap.Stringer("addr", def))
	return maybeAPI(ctx, model.KindNetworkAPI, newClient, def, opts.ConnectivityTest), nil
}

// clientConstructor picks the caller's constructor, then the environment's.
func clientConstructor(opts Options) (model.ClientConstructor, error) {
	if opts.ClientConstructor != nil {
		return opts.ClientConstructor, nil
	}
	if c, ok := opts.environment().ClientConstructor(); ok {
		return c, nil
	}
	return nil, &ConfigurationError{Missing: "ClientConstructor"}
}

// maybeAPI constructs and tests a client for addr. Any failure yields nil.
func maybeAPI(ctx context.Context, kind model.Kind, newClient model.ClientConstructor, addr ma.Multiaddr, test connectivity.Test) *model.Result {
	api, err := newClient(ctx, addr)
	if err != nil {
		zap.L().Warn("failed to create ipfs rpc client", zap.Stringer("addr", addr), zap.Error(err))
		return nil
	}
	if err := connectivity.Run(ctx, test, api); err != nil {
		zap.L().Warn("failed to connect to ipfs rpc api", zap.Stringer("addr", addr), zap.Error(err))
		return nil
	}
	return &model.Result{IPFS: api, Provider: kind, APIAddress: addr}
}
