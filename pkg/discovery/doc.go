// Package discovery locates one working IPFS interface by running providers
// in order until one of them succeeds.
//
// # Quick Start
//
// Resolve with the default providers (an injected handle, then the RPC API
// at the origin or at /ip4/127.0.0.1/tcp/5001):
//
//	import (
//		"github.com/singnet/ipfs-provider-go/pkg/discovery"
//	)
//
//	func main() {
//		res, err := discovery.GetIpfs(ctx, nil)
//		if err != nil {
//			log.Fatal(err)
//		}
//		if res == nil {
//			log.Fatal("no ipfs node found")
//		}
//		fmt.Println(res.Provider, res.APIAddress)
//	}
//
// # Choosing providers
//
// Providers are tried in the order given. Options on the Config apply to
// every provider; options passed to a factory apply to that provider only
// and take precedence:
//
//	res, err := discovery.GetIpfs(ctx, &discovery.Config{
//		Providers: []provider.Provider{
//			provider.LocalRepo(),
//			provider.NetworkAPI(provider.Options{APIAddress: "/dns4/ipfs.example.org/tcp/443/https"}),
//			provider.EmbeddedNode(provider.Options{LoadNode: embedded.Loader}),
//		},
//		Options: provider.Options{ConnectivityTest: httpapi.IDTest},
//	})
//
// An empty non-nil Providers slice tries nothing and yields a nil result.
//
// # Errors
//
// Provider errors are logged and skipped. GetIpfs returns an error only when
// ctx is done before a provider succeeds. A nil result with a nil error
// means no provider found a working node.
//
// # Logging
//
// The package installs a console zap logger at info level as the global
// logger. Applications may replace it with zap.ReplaceGlobals; diagnostics
// are written through zap.L().Named(LoggerName).
package discovery
