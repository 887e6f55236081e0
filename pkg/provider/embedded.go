package provider

import (
	"context"
	"io"

	iface "github.com/ipfs/kubo/core/coreiface"
	"github.com/singnet/ipfs-provider-go/pkg/connectivity"
	"github.com/singnet/ipfs-provider-go/pkg/model"
	"go.uber.org/zap"
)

// probeEmbeddedNode loads the node constructor on demand, instantiates the
// node and tests it. Load, construction and test failures are all reported as
// absence so that a broken embedded setup never ends the scan.
func probeEmbeddedNode(ctx context.Context, opts Options) (*model.Result, error) {
	if opts.LoadNode == nil {
		return nil, &ConfigurationError{Missing: "LoadNode"}
	}

	newNode, err := opts.LoadNode(ctx)
	if err != nil {
		zap.L().Warn("failed to load embedded ipfs node", zap.Error(err))
		return nil, nil
	}
	if newNode == nil {
		zap.L().Warn("embedded ipfs loader returned no constructor")
		return nil, nil
	}

	start := opts.Init
	if start == nil {
		start = defaultInit
	}
	var cfg model.NodeConfig
	if opts.NodeConfig != nil {
		cfg = *opts.NodeConfig
	}

	api, err := start(ctx, newNode, cfg)
	if err != nil {
		zap.L().Warn("failed to start embedded ipfs node", zap.Error(err))
		return nil, nil
	}

	if err := connectivity.Run(ctx, opts.ConnectivityTest, api); err != nil {
		zap.L().Warn("embedded ipfs node failed connectivity test", zap.Error(err))
		if c, ok := api.(io.Closer); ok {
			if cerr := c.Close(); cerr != nil {
				zap.L().Warn("failed to close embedded ipfs node", zap.Error(cerr))
			}
		}
		return nil, nil
	}

	return &model.Result{IPFS: api, Provider: model.KindEmbeddedNode}, nil
}

func defaultInit(ctx context.Context, newNode model.NodeConstructor, cfg model.NodeConfig) (iface.CoreAPI, error) {
	return newNode(ctx, cfg)
}
