package provider

import (
	"context"
	"errors"
	"testing"

	iface "github.com/ipfs/kubo/core/coreiface"
	"github.com/singnet/ipfs-provider-go/internal/testutil/fakeapi"
	"github.com/singnet/ipfs-provider-go/pkg/env"
	"github.com/singnet/ipfs-provider-go/pkg/model"
)

// closableAPI records whether the probe released it.
type closableAPI struct {
	*fakeapi.API
	closed bool
}

func (c *closableAPI) Close() error {
	c.closed = true
	return nil
}

func TestEmbeddedNode_RequiresLoader(t *testing.T) {
	_, err := EmbeddedNode().Resolve(context.Background(), Options{Environment: &env.Static{}})
	var cerr *ConfigurationError
	if !errors.As(err, &cerr) || cerr.Missing != "LoadNode" {
		t.Fatalf("expected LoadNode configuration error, got %v", err)
	}
}

func TestEmbeddedNode_LoadsLazily(t *testing.T) {
	loads := 0
	var gotCfg model.NodeConfig
	api := fakeapi.NewEmptyDir("embedded")
	loader := func(context.Context) (model.NodeConstructor, error) {
		loads++
		return func(_ context.Context, cfg model.NodeConfig) (iface.CoreAPI, error) {
			gotCfg = cfg
			return api, nil
		}, nil
	}

	p := EmbeddedNode(Options{LoadNode: loader, NodeConfig: &model.NodeConfig{RepoPath: "/tmp/repo", Offline: true}})
	if loads != 0 {
		t.Fatal("loader ran before the provider was resolved")
	}

	res, err := p.Resolve(context.Background(), Options{Environment: &env.Static{}})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if loads != 1 {
		t.Fatalf("loads = %d", loads)
	}
	if res == nil || res.IPFS != api || res.Provider != model.KindEmbeddedNode {
		t.Fatalf("unexpected result %+v", res)
	}
	if gotCfg.RepoPath != "/tmp/repo" || !gotCfg.Offline {
		t.Fatalf("node config not forwarded: %+v", gotCfg)
	}
}

func TestEmbeddedNode_CustomInit(t *testing.T) {
	api := fakeapi.NewEmptyDir("custom")
	initCalled := false
	opts := Options{
		Environment: &env.Static{},
		LoadNode: func(context.Context) (model.NodeConstructor, error) {
			return func(context.Context, model.NodeConfig) (iface.CoreAPI, error) {
				t.Fatal("constructor should be bypassed by Init")
				return nil, nil
			}, nil
		},
		Init: func(context.Context, model.NodeConstructor, model.NodeConfig) (iface.CoreAPI, error) {
			initCalled = true
			return api, nil
		},
	}

	res, err := EmbeddedNode().Resolve(context.Background(), opts)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !initCalled || res == nil || res.IPFS != api {
		t.Fatalf("custom init not used: %+v", res)
	}
}

func TestEmbeddedNode_FailuresAreAbsence(t *testing.T) {
	tests := []struct {
		name   string
		loader model.Loader
	}{
		{
			name: "load fails",
			loader: func(context.Context) (model.NodeConstructor, error) {
				return nil, errNope
			},
		},
		{
			name: "loader returns nothing",
			loader: func(context.Context) (model.NodeConstructor, error) {
				return nil, nil
			},
		},
		{
			name: "construction fails",
			loader: func(context.Context) (model.NodeConstructor, error) {
				return func(context.Context, model.NodeConfig) (iface.CoreAPI, error) {
					return nil, errNope
				}, nil
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := EmbeddedNode().Resolve(context.Background(), Options{Environment: &env.Static{}, LoadNode: tt.loader})
			if err != nil || res != nil {
				t.Fatalf("expected absence, got %v, %v", res, err)
			}
		})
	}
}

func TestEmbeddedNode_ClosesNodeThatFailsTest(t *testing.T) {
	node := &closableAPI{API: fakeapi.NewFailing("embedded", errNope)}
	opts := Options{
		Environment: &env.Static{},
		LoadNode: func(context.Context) (model.NodeConstructor, error) {
			return func(context.Context, model.NodeConfig) (iface.CoreAPI, error) {
				return node, nil
			}, nil
		},
	}

	res, err := EmbeddedNode().Resolve(context.Background(), opts)
	if err != nil || res != nil {
		t.Fatalf("expected absence, got %v, %v", res, err)
	}
	if !node.closed {
		t.Fatal("node that failed the connectivity test was not closed")
	}
}
