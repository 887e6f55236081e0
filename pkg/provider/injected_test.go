package provider

import (
	"context"
	"errors"
	"reflect"
	"testing"

	iface "github.com/ipfs/kubo/core/coreiface"
	"github.com/singnet/ipfs-provider-go/internal/testutil/fakeapi"
	"github.com/singnet/ipfs-provider-go/pkg/env"
	"github.com/singnet/ipfs-provider-go/pkg/model"
)

func TestInjectedGlobal_Absent(t *testing.T) {
	res, err := InjectedGlobal().Resolve(context.Background(), Options{Environment: &env.Static{}})
	if err != nil || res != nil {
		t.Fatalf("expected absence, got %v, %v", res, err)
	}
}

func TestInjectedGlobal_Found(t *testing.T) {
	api := fakeapi.NewEmptyDir("injected")
	e := &env.Static{InjectedIPFS: &env.Injected{IPFS: api}}

	res, err := InjectedGlobal().Resolve(context.Background(), Options{Environment: e})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if res == nil || res.IPFS != api || res.Provider != model.KindInjectedGlobal {
		t.Fatalf("unexpected result %+v", res)
	}
	if res.APIAddress != nil {
		t.Fatalf("injected handles carry no api address, got %s", res.APIAddress)
	}
	if api.GetCalls() != 1 {
		t.Fatalf("default connectivity test should issue one get, got %d", api.GetCalls())
	}
}

func TestInjectedGlobal_EnableRequestsGet(t *testing.T) {
	tests := []struct {
		name      string
		requested *model.Permissions
		want      []string
	}{
		{name: "no permissions", requested: nil, want: []string{"get"}},
		{name: "extra commands", requested: &model.Permissions{Commands: []string{"add", "cat"}}, want: []string{"add", "cat", "get"}},
		{name: "get already present", requested: &model.Permissions{Commands: []string{"get", "add"}}, want: []string{"get", "add"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			var before []string
			if tt.requested != nil {
				before = append(before, tt.requested.Commands...)
			}
			enabled := fakeapi.NewEmptyDir("enabled")
			e := &env.Static{InjectedIPFS: &env.Injected{
				IPFS: fakeapi.NewEmptyDir("raw"),
				Enable: func(_ context.Context, perms *model.Permissions) (iface.CoreAPI, error) {
					got = perms.Commands
					return enabled, nil
				},
			}}

			res, err := InjectedGlobal().Resolve(context.Background(), Options{Environment: e, Permissions: tt.requested})
			if err != nil {
				t.Fatalf("Resolve: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Enable got %v, want %v", got, tt.want)
			}
			if res == nil || res.IPFS != enabled {
				t.Fatalf("expected the enabled handle, got %+v", res)
			}
			if tt.requested != nil && !reflect.DeepEqual(tt.requested.Commands, before) {
				t.Fatalf("caller permissions mutated: %v", tt.requested.Commands)
			}
		})
	}
}

func TestInjectedGlobal_EnableError(t *testing.T) {
	e := &env.Static{InjectedIPFS: &env.Injected{
		IPFS: fakeapi.NewEmptyDir("raw"),
		Enable: func(context.Context, *model.Permissions) (iface.CoreAPI, error) {
			return nil, errNope
		},
	}}

	res, err := InjectedGlobal().Resolve(context.Background(), Options{Environment: e})
	if !errors.Is(err, errNope) {
		t.Fatalf("expected enable error, got %v", err)
	}
	if res != nil {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestInjectedGlobal_ConnectivityFailureIsAbsence(t *testing.T) {
	e := &env.Static{InjectedIPFS: &env.Injected{IPFS: fakeapi.NewFailing("broken", errNope)}}

	res, err := InjectedGlobal().Resolve(context.Background(), Options{Environment: e})
	if err != nil || res != nil {
		t.Fatalf("expected absence, got %v, %v", res, err)
	}
}
