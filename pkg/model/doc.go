// Package model defines data structures returned and consumed by the IPFS
// provider discovery layer.
//
// # Results
//
// A resolution produces a *Result:
//
//	type Result struct {
//		IPFS       iface.CoreAPI // working handle, owned by the caller
//		Provider   Kind          // which provider produced it
//		APIAddress ma.Multiaddr  // endpoint reached (network kinds only)
//	}
//
// A nil *Result is not an error: it means that every configured provider was
// absent or failed.
//
// # Provider Kinds
//
//	KindInjectedGlobal - handle injected into the host environment
//	KindHostExtension  - handle exposed by an extension background context
//	KindNetworkAPI     - HTTP RPC client (explicit address, origin, or default)
//	KindEmbeddedNode   - in-process node built on demand
//	KindLocalRepo      - RPC client for the address in $IPFS_PATH/api
//	KindCustom         - caller-registered provider
//
// # Collaborator Signatures
//
// ClientConstructor, NodeConstructor and Loader describe how the discovery
// layer obtains clients and nodes without importing their implementations.
// The defaults live in the httpapi and embedded packages.
package model
