package provider

import (
	"context"

	"github.com/singnet/ipfs-provider-go/pkg/connectivity"
	"github.com/singnet/ipfs-provider-go/pkg/model"
	"go.uber.org/zap"
)

// probeHostExtension uses the handle exposed by an extension's background
// context. An unreachable background context counts as absence.
func probeHostExtension(ctx context.Context, opts Options) (*model.Result, error) {
	zap.L().Debug("trying extension background context")
	ext, ok := opts.environment().Extension()
	if !ok {
		return nil, nil
	}

	page, err := ext.BackgroundPage(ctx)
	if err != nil {
		zap.L().Info("extension background context unavailable", zap.Error(err))
		return nil, nil
	}
	if page == nil {
		return nil, nil
	}

	api, ok := page.IPFS()
	if !ok {
		return nil, nil
	}

	if err := connectivity.Run(ctx, opts.ConnectivityTest, api); err != nil {
		zap.L().Warn("extension ipfs handle detected but connection failed, ignoring", zap.Error(err))
		return nil, nil
	}

	return &model.Result{IPFS: api, Provider: model.KindHostExtension}, nil
}
