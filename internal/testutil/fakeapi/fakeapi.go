// Package fakeapi provides an in-memory stand-in for iface.CoreAPI that only
// implements the UnixFS read path used by connectivity tests.
package fakeapi

import (
	"context"
	"sync/atomic"

	"github.com/ipfs/boxo/files"
	"github.com/ipfs/boxo/path"
	iface "github.com/ipfs/kubo/core/coreiface"
)

// API embeds iface.CoreAPI so it satisfies the interface; any method other
// than Unixfs panics if called.
type API struct {
	iface.CoreAPI

	// Label identifies the fake in test failures. It cannot be called Name:
	// a field would hide the embedded CoreAPI.Name method.
	Label string

	unixfs *Unixfs
}

// Unixfs serves Get from a fixed node or error and records the last path.
type Unixfs struct {
	iface.UnixfsAPI

	Node files.Node
	Err  error

	calls atomic.Int64
	last  atomic.Value // stores string
}

// NewEmptyDir returns a fake whose Get yields an empty directory.
func NewEmptyDir(name string) *API {
	return New(name, files.NewMapDirectory(map[string]files.Node{}), nil)
}

// NewFailing returns a fake whose Get fails with err.
func NewFailing(name string, err error) *API {
	return New(name, nil, err)
}

// New returns a fake that answers Get with node and err.
func New(name string, node files.Node, err error) *API {
	return &API{
		Label:  name,
		unixfs: &Unixfs{Node: node, Err: err},
	}
}

func (a *API) Unixfs() iface.UnixfsAPI {
	return a.unixfs
}

// GetCalls reports how many times Get was invoked.
func (a *API) GetCalls() int64 {
	return a.unixfs.calls.Load()
}

// LastPath returns the path of the most recent Get, or "".
func (a *API) LastPath() string {
	if v := a.unixfs.last.Load(); v != nil {
		return v.(string)
	}
	return ""
}

func (u *Unixfs) Get(_ context.Context, p path.Path) (files.Node, error) {
	u.calls.Add(1)
	u.last.Store(p.String())
	if u.Err != nil {
		return nil, u.Err
	}
	return u.Node, nil
}
