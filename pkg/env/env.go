// Package env abstracts the host execution context the probes inspect: an
// injected IPFS handle, an extension background context, a fallback RPC
// client constructor and the location the caller is served from. Probes
// receive an Environment explicitly instead of reading ambient globals.
package env

import (
	"context"
	"net/url"
	"os"
	"strings"

	iface "github.com/ipfs/kubo/core/coreiface"
	"github.com/singnet/ipfs-provider-go/pkg/httpapi"
	"github.com/singnet/ipfs-provider-go/pkg/model"
	"go.uber.org/zap"
)

// EnvOrigin names the process environment variable Process reads the caller's
// origin from.
const EnvOrigin = "IPFS_PROVIDER_ORIGIN"

// Environment exposes the optional slots of the host context. Each accessor
// reports false when the slot is empty.
type Environment interface {
	// Injected returns a handle placed into the host context by its embedder.
	Injected() (*Injected, bool)
	// Extension returns the bridge to an extension background context.
	Extension() (Extension, bool)
	// ClientConstructor returns a fallback RPC client constructor.
	ClientConstructor() (model.ClientConstructor, bool)
	// Location returns the origin the caller is served from.
	Location() (*url.URL, bool)
}

// Injected is a handle published by the host. Enable, when set, negotiates
// permissions and returns the handle to use.
type Injected struct {
	IPFS   iface.CoreAPI
	Enable func(ctx context.Context, perms *model.Permissions) (iface.CoreAPI, error)
}

// Extension reaches an extension's background context. BackgroundPage may
// fail, for example when the host restricts access in private mode.
type Extension interface {
	BackgroundPage(ctx context.Context) (BackgroundPage, error)
}

// BackgroundPage is the background context of an extension.
type BackgroundPage interface {
	// IPFS returns the handle the background context exposes, if any.
	IPFS() (iface.CoreAPI, bool)
}

// Static is an Environment backed by plain fields. The zero value is an
// empty environment.
type Static struct {
	InjectedIPFS *Injected
	Ext          Extension
	Client       model.ClientConstructor
	Origin       *url.URL
}

var _ Environment = (*Static)(nil)

func (s *Static) Injected() (*Injected, bool) {
	if s == nil || s.InjectedIPFS == nil || s.InjectedIPFS.IPFS == nil {
		return nil, false
	}
	return s.InjectedIPFS, true
}

func (s *Static) Extension() (Extension, bool) {
	if s == nil || s.Ext == nil {
		return nil, false
	}
	return s.Ext, true
}

func (s *Static) ClientConstructor() (model.ClientConstructor, bool) {
	if s == nil || s.Client == nil {
		return nil, false
	}
	return s.Client, true
}

func (s *Static) Location() (*url.URL, bool) {
	if s == nil || s.Origin == nil {
		return nil, false
	}
	u := *s.Origin
	return &u, true
}

// Process returns the environment of a regular Go process: no injected
// handle, no extension, httpapi.New as the client constructor, and the origin
// taken from $IPFS_PROVIDER_ORIGIN when it holds a valid absolute URL.
func Process() *Static {
	s := &Static{Client: httpapi.New}
	raw := strings.TrimSpace(os.Getenv(EnvOrigin))
	if raw == "" {
		return s
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		zap.L().Warn("ignoring invalid origin", zap.String("env", EnvOrigin), zap.String("value", raw))
		return s
	}
	s.Origin = u
	return s
}

// BackgroundPageFunc adapts a function to Extension.
type BackgroundPageFunc func(ctx context.Context) (BackgroundPage, error)

func (f BackgroundPageFunc) BackgroundPage(ctx context.Context) (BackgroundPage, error) {
	return f(ctx)
}

// Page is a BackgroundPage exposing a fixed handle. A nil IPFS means the
// background context has no handle.
type Page struct {
	Handle iface.CoreAPI
}

func (p Page) IPFS() (iface.CoreAPI, bool) {
	return p.Handle, p.Handle != nil
}
