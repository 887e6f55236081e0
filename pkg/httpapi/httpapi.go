// Package httpapi constructs Kubo HTTP RPC clients for the network-backed
// providers and records the endpoint each client talks to.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ipfs/kubo/client/rpc"
	iface "github.com/ipfs/kubo/core/coreiface"
	ma "github.com/multiformats/go-multiaddr"
	manet "github.com/multiformats/go-multiaddr/net"
	"github.com/singnet/ipfs-provider-go/pkg/address"
	"github.com/singnet/ipfs-provider-go/pkg/connectivity"
	"go.uber.org/zap"
)

// DefaultTimeout bounds every HTTP request issued by clients built with New.
const DefaultTimeout = 5 * time.Second

// Client is a Kubo HTTP RPC client that remembers the address it was built
// for and the effective endpoint derived from it.
type Client struct {
	*rpc.HttpApi

	address  ma.Multiaddr
	endpoint address.Endpoint
}

var _ iface.CoreAPI = (*Client)(nil)

// Address returns the multiaddr the client was constructed with.
func (c *Client) Address() ma.Multiaddr {
	return c.address
}

// Endpoint returns the protocol, host and port requests are sent to.
func (c *Client) Endpoint() address.Endpoint {
	return c.endpoint
}

// New builds a client for a with an HTTP timeout of DefaultTimeout. It matches
// model.ClientConstructor and performs no network I/O.
func New(_ context.Context, a ma.Multiaddr) (iface.CoreAPI, error) {
	return NewClient(a, &http.Client{Timeout: DefaultTimeout})
}

// NewClient builds a client for a using httpClient. Unix socket multiaddrs
// are delegated to rpc.NewApi, which installs its own socket transport.
func NewClient(a ma.Multiaddr, httpClient *http.Client) (*Client, error) {
	if a == nil {
		return nil, errors.New("httpapi: nil api address")
	}

	network, _, err := manet.DialArgs(a)
	if err != nil {
		return nil, fmt.Errorf("httpapi: unsupported api address %s: %w", a, err)
	}
	if network == "unix" {
		api, err := rpc.NewApi(a)
		if err != nil {
			return nil, fmt.Errorf("httpapi: failed to create client for %s: %w", a, err)
		}
		return &Client{
			HttpApi:  api,
			address:  a,
			endpoint: address.Endpoint{Protocol: "http", Host: "unix"},
		}, nil
	}

	endpoint, err := address.ToEndpoint(a)
	if err != nil {
		return nil, fmt.Errorf("httpapi: unsupported api address %s: %w", a, err)
	}

	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	api, err := rpc.NewApiWithClient(a, httpClient)
	if err != nil {
		zap.L().Error("failed to create ipfs rpc client", zap.Stringer("addr", a), zap.Error(err))
		return nil, fmt.Errorf("httpapi: failed to create client for %s: %w", a, err)
	}

	zap.L().Debug("created ipfs rpc client", zap.Stringer("addr", a), zap.String("url", endpoint.URL()))
	return &Client{HttpApi: api, address: a, endpoint: endpoint}, nil
}

// IDTest is a connectivity.Test for RPC clients that issues the lightweight
// "id" command. Handles that are not *Client fall back to connectivity.Default.
func IDTest(ctx context.Context, api iface.CoreAPI) error {
	c, ok := api.(*Client)
	if !ok {
		return connectivity.Default(ctx, api)
	}

	var out struct {
		ID string `json:"ID"`
	}
	if err := c.Request("id").Exec(ctx, &out); err != nil {
		return &connectivity.ConnectivityError{Err: err}
	}
	if out.ID == "" {
		return &connectivity.ConnectivityError{Err: errors.New("node returned an empty peer id")}
	}
	zap.L().Debug("ipfs rpc node identified", zap.String("peer", out.ID), zap.String("url", c.endpoint.URL()))
	return nil
}
