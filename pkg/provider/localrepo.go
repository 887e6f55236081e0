package provider

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ipfs/kubo/client/rpc"
	"github.com/singnet/ipfs-provider-go/pkg/model"
	"go.uber.org/zap"
)

// probeLocalRepo reads the API address a running daemon advertises in its
// repository's api file and connects to it.
func probeLocalRepo(ctx context.Context, opts Options) (*model.Result, error) {
	repoPath := opts.RepoPath
	if repoPath == "" {
		repoPath = os.Getenv(rpc.EnvDir)
	}
	if repoPath == "" {
		repoPath = rpc.DefaultPathRoot
	}

	addr, err := rpc.ApiAddr(repoPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			zap.L().Info("no api file in local repo", zap.String("repo", repoPath))
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read api address from %s: %w", repoPath, err)
	}

	newClient, err := clientConstructor(opts)
	if err != nil {
		return nil, err
	}

	zap.L().Info("trying ipfs rpc api from local repo", zap.String("repo", repoPath), zap.Stringer("addr", addr))
	return maybeAPI(ctx, model.KindLocalRepo, newClient, addr, opts.ConnectivityTest), nil
}
