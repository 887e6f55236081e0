package provider

import (
	"context"
	"fmt"

	"github.com/singnet/ipfs-provider-go/pkg/connectivity"
	"github.com/singnet/ipfs-provider-go/pkg/model"
	"go.uber.org/zap"
)

// probeInjectedGlobal uses a handle the host injected into the environment.
// When the slot offers permission negotiation the requested commands always
// include connectivity.RequiredCommand.
func probeInjectedGlobal(ctx context.Context, opts Options) (*model.Result, error) {
	zap.L().Debug("trying injected ipfs handle")
	injected, ok := opts.environment().Injected()
	if !ok {
		zap.L().Info("injected ipfs handle not found")
		return nil, nil
	}

	api := injected.IPFS
	if injected.Enable != nil {
		perms := opts.Permissions.WithCommands(connectivity.RequiredCommand)
		enabled, err := injected.Enable(ctx, perms)
		if err != nil {
			return nil, fmt.Errorf("injected ipfs handle refused permissions %v: %w", perms.Commands, err)
		}
		if enabled != nil {
			api = enabled
		}
	}

	if err := connectivity.Run(ctx, opts.ConnectivityTest, api); err != nil {
		zap.L().Warn("failed to connect via injected ipfs handle", zap.Error(err))
		return nil, nil
	}

	zap.L().Info("found injected ipfs handle")
	return &model.Result{IPFS: api, Provider: model.KindInjectedGlobal}, nil
}
