// Package embedded runs a Kubo node inside the current process. Loader is a
// model.Loader for the embedded-node provider; importing this package is
// what links the node implementation into a binary.
package embedded

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/ipfs/boxo/files"
	"github.com/ipfs/kubo/config"
	"github.com/ipfs/kubo/core"
	"github.com/ipfs/kubo/core/coreapi"
	iface "github.com/ipfs/kubo/core/coreiface"
	"github.com/ipfs/kubo/plugin/loader"
	"github.com/ipfs/kubo/repo/fsrepo"
	"github.com/singnet/ipfs-provider-go/pkg/model"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const keypairSize = 2048

var (
	pluginOnce sync.Once
	pluginErr  error
)

// Loader loads the Kubo plugins once per process and returns NewNode.
func Loader(_ context.Context) (model.NodeConstructor, error) {
	pluginOnce.Do(func() {
		pluginErr = setupPlugins()
	})
	if pluginErr != nil {
		return nil, pluginErr
	}
	return NewNode, nil
}

func setupPlugins() error {
	plugins, err := loader.NewPluginLoader("")
	if err != nil {
		return fmt.Errorf("error loading plugins: %w", err)
	}
	if err := plugins.Initialize(); err != nil {
		return fmt.Errorf("error initializing plugins: %w", err)
	}
	if err := plugins.Inject(); err != nil {
		return fmt.Errorf("error injecting plugins: %w", err)
	}
	return nil
}

// Node is a running in-process node. It must be closed by its owner.
type Node struct {
	iface.CoreAPI

	node     *core.IpfsNode
	cancel   context.CancelFunc
	repoPath string
	temp     bool
}

var _ io.Closer = (*Node)(nil)

// RepoPath returns the repository the node runs on.
func (n *Node) RepoPath() string {
	return n.repoPath
}

// Close stops the node and removes its repository if it was temporary.
func (n *Node) Close() error {
	err := n.node.Close()
	n.cancel()
	if n.temp {
		err = multierr.Append(err, os.RemoveAll(n.repoPath))
	}
	return err
}

// NewNode starts a node on cfg.RepoPath, initializing the repository with
// cfg.Profiles when it does not exist yet. An empty RepoPath runs the node
// on a temporary repository removed by Close. The node is not bound to ctx
// beyond construction; it runs until closed.
func NewNode(ctx context.Context, cfg model.NodeConfig) (iface.CoreAPI, error) {
	repoPath, temp, err := prepareRepo(cfg)
	if err != nil {
		return nil, err
	}
	cleanup := func() {
		if temp {
			_ = os.RemoveAll(repoPath)
		}
	}

	repo, err := fsrepo.Open(repoPath)
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("failed to open repo %s: %w", repoPath, err)
	}

	nodeCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	node, err := core.NewNode(nodeCtx, &core.BuildCfg{
		Online: !cfg.Offline,
		Repo:   repo,
	})
	if err != nil {
		cancel()
		_ = repo.Close()
		cleanup()
		return nil, fmt.Errorf("failed to create node: %w", err)
	}

	n := &Node{node: node, cancel: cancel, repoPath: repoPath, temp: temp}
	api, err := coreapi.NewCoreAPI(node)
	if err != nil {
		_ = n.Close()
		return nil, fmt.Errorf("failed to create core api: %w", err)
	}
	n.CoreAPI = api

	// A fresh node answers reads for the empty directory only if it holds it.
	if _, err := api.Unixfs().Add(ctx, files.NewMapDirectory(map[string]files.Node{})); err != nil {
		zap.L().Warn("failed to seed empty directory", zap.Error(err))
	}

	zap.L().Info("embedded ipfs node started",
		zap.String("peer", node.Identity.String()),
		zap.String("repo", repoPath),
		zap.Bool("online", !cfg.Offline),
	)
	return n, nil
}

// prepareRepo returns the repository path to open, creating and
// initializing it when needed.
func prepareRepo(cfg model.NodeConfig) (path string, temp bool, err error) {
	path = cfg.RepoPath
	if path == "" {
		path, err = os.MkdirTemp("", "ipfs-provider-")
		if err != nil {
			return "", false, fmt.Errorf("failed to create repo dir: %w", err)
		}
		temp = true
	}

	if fsrepo.IsInitialized(path) {
		return path, temp, nil
	}

	conf, err := repoConfig(cfg.Profiles)
	if err == nil {
		err = fsrepo.Init(path, conf)
	}
	if err != nil {
		if temp {
			_ = os.RemoveAll(path)
		}
		return "", false, fmt.Errorf("failed to initialize repo %s: %w", path, err)
	}
	return path, temp, nil
}

// repoConfig builds a fresh node configuration with profiles applied in order.
func repoConfig(profiles []string) (*config.Config, error) {
	conf, err := config.Init(io.Discard, keypairSize)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize config: %w", err)
	}
	for _, name := range profiles {
		p, ok := config.Profiles[name]
		if !ok {
			return nil, fmt.Errorf("invalid configuration profile: %s", name)
		}
		if err := p.Transform(conf); err != nil {
			return nil, fmt.Errorf("failed to apply profile %s: %w", name, err)
		}
	}
	return conf, nil
}
