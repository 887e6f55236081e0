package provider

import (
	"sort"

	"github.com/singnet/ipfs-provider-go/pkg/model"
)

// Built-in providers.
var (
	InjectedGlobal = MakeProvider(model.KindInjectedGlobal, probeInjectedGlobal, Options{})
	HostExtension  = MakeProvider(model.KindHostExtension, probeHostExtension, Options{})
	NetworkAPI     = MakeProvider(model.KindNetworkAPI, probeNetworkAPI, Options{})
	EmbeddedNode   = MakeProvider(model.KindEmbeddedNode, probeEmbeddedNode, Options{})
	LocalRepo      = MakeProvider(model.KindLocalRepo, probeLocalRepo, Options{})
)

var factoriesByName = map[string]Factory{
	model.KindInjectedGlobal.String(): InjectedGlobal,
	model.KindHostExtension.String():  HostExtension,
	model.KindNetworkAPI.String():     NetworkAPI,
	model.KindEmbeddedNode.String():   EmbeddedNode,
	model.KindLocalRepo.String():      LocalRepo,
}

// Lookup returns the built-in factory registered under name.
func Lookup(name string) (Factory, bool) {
	f, ok := factoriesByName[name]
	return f, ok
}

// Names lists the built-in provider names in sorted order.
func Names() []string {
	names := make([]string, 0, len(factoriesByName))
	for n := range factoriesByName {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Defaults returns the canonical provider order: the injected handle first,
// then the network API.
func Defaults() []Provider {
	return []Provider{InjectedGlobal(), NetworkAPI()}
}
