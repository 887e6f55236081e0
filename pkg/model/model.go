// Package model defines the data structures shared by the discovery layer:
// provider kinds, resolution results, permission sets, embedded-node settings
// and the constructor/loader signatures consumed from external collaborators.
package model

import (
	"context"

	iface "github.com/ipfs/kubo/core/coreiface"
	ma "github.com/multiformats/go-multiaddr"
)

// Kind identifies which provider produced a Result.
type Kind string

const (
	// KindInjectedGlobal is a handle injected into the host environment.
	KindInjectedGlobal Kind = "injected-global"
	// KindHostExtension is a handle exposed by an extension background context.
	KindHostExtension Kind = "host-extension"
	// KindNetworkAPI is a remote HTTP RPC client.
	KindNetworkAPI Kind = "network-api"
	// KindEmbeddedNode is an in-process node.
	KindEmbeddedNode Kind = "embedded-node"
	// KindLocalRepo is an RPC client pointed at the address advertised by a
	// local repository's api file.
	KindLocalRepo Kind = "local-repo"
	// KindCustom is any caller-registered provider.
	KindCustom Kind = "custom"
)

// String returns the kind name, or "none" for the zero value.
func (k Kind) String() string {
	if k == "" {
		return "none"
	}
	return string(k)
}

// Result describes a working IPFS interface and how it was found. A nil
// *Result means no provider had anything to offer.
type Result struct {
	// IPFS is the working handle. Its lifecycle belongs to the caller.
	IPFS iface.CoreAPI
	// Provider is the kind of provider that produced IPFS.
	Provider Kind
	// APIAddress is the endpoint that was reached. Only set for network-backed
	// kinds (network-api, local-repo).
	APIAddress ma.Multiaddr
}

// Permissions is the set of commands requested from an injected handle that
// supports permission negotiation.
type Permissions struct {
	Commands []string `json:"commands" yaml:"commands"`
}

// WithCommands returns a new Permissions holding the union of p's commands and
// cmds, in first-seen order, without duplicates. p is not modified.
func (p *Permissions) WithCommands(cmds ...string) *Permissions {
	var existing []string
	if p != nil {
		existing = p.Commands
	}
	seen := make(map[string]struct{}, len(existing)+len(cmds))
	out := make([]string, 0, len(existing)+len(cmds))
	for _, c := range append(append([]string(nil), existing...), cmds...) {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return &Permissions{Commands: out}
}

// NodeConfig carries the settings handed to an embedded-node constructor.
type NodeConfig struct {
	// RepoPath is the node repository. Empty means a temporary repository.
	RepoPath string `json:"repo_path" yaml:"repo_path"`
	// Offline keeps the node off the public network.
	Offline bool `json:"offline" yaml:"offline"`
	// Profiles are config profiles applied when the repository is created.
	Profiles []string `json:"profiles" yaml:"profiles"`
}

// ClientConstructor builds an RPC client for the given API address. It must
// not perform network I/O beyond what is needed to set the client up.
type ClientConstructor func(ctx context.Context, apiAddress ma.Multiaddr) (iface.CoreAPI, error)

// NodeConstructor instantiates an embedded node and returns its API once the
// node is ready.
type NodeConstructor func(ctx context.Context, cfg NodeConfig) (iface.CoreAPI, error)

// Loader lazily provides a NodeConstructor so the embedded implementation is
// only initialized when a probe actually needs it.
type Loader func(ctx context.Context) (NodeConstructor, error)
