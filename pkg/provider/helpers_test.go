package provider

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"testing"

	iface "github.com/ipfs/kubo/core/coreiface"
	ma "github.com/multiformats/go-multiaddr"
	"github.com/singnet/ipfs-provider-go/internal/testutil/fakeapi"
)

// scriptedTest is a connectivity test that answers from a queue of results
// and records every handle it was given. An exhausted queue means success.
type scriptedTest struct {
	mu      sync.Mutex
	results []error
	handles []iface.CoreAPI
}

func (s *scriptedTest) Test(_ context.Context, api iface.CoreAPI) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handles = append(s.handles, api)
	if len(s.results) == 0 {
		return nil
	}
	err := s.results[0]
	s.results = s.results[1:]
	return err
}

func (s *scriptedTest) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.handles)
}

// recordingConstructor builds fake handles and remembers requested addresses.
type recordingConstructor struct {
	mu    sync.Mutex
	addrs []string
	err   error
}

func (r *recordingConstructor) New(_ context.Context, a ma.Multiaddr) (iface.CoreAPI, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.addrs = append(r.addrs, a.String())
	if r.err != nil {
		return nil, r.err
	}
	return fakeapi.NewEmptyDir(a.String()), nil
}

func (r *recordingConstructor) Addrs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.addrs...)
}

var errNope = errors.New("nope")

func mustURL(t *testing.T, s string) *url.URL {
	t.Helper()
	u, err := url.Parse(s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return u
}
