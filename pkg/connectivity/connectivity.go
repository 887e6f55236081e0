// Package connectivity decides whether a candidate handle actually works.
// Finding a handle only proves it exists; a Test proves it can serve reads.
package connectivity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ipfs/boxo/files"
	"github.com/ipfs/boxo/path"
	"github.com/ipfs/go-cid"
	iface "github.com/ipfs/kubo/core/coreiface"
	"go.uber.org/zap"
)

const (
	// EmptyDirCID is the well-known identifier of the empty UnixFS directory.
	// Every node can serve it without touching the network.
	EmptyDirCID = "QmUNLLsPACCz1vLxQVkXqqLX5R1X345qqfHbsf67hvA3Nn"
	// RequiredCommand is the command the Default test issues. Providers that
	// negotiate permissions always request it.
	RequiredCommand = "get"
)

// Test confirms that api behaves like a working IPFS interface. A nil error
// means the handle is usable.
type Test func(ctx context.Context, api iface.CoreAPI) error

// ConnectivityError reports that a constructed handle failed its Test.
type ConnectivityError struct {
	Err error
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("connectivity test failed: %v", e.Err)
}

func (e *ConnectivityError) Unwrap() error {
	return e.Err
}

// IsConnectivityError reports whether err is, or wraps, a *ConnectivityError.
func IsConnectivityError(err error) bool {
	var ce *ConnectivityError
	return errors.As(err, &ce)
}

var emptyDir = cid.MustParse(EmptyDirCID)

// Default fetches EmptyDirCID through the UnixFS API and checks that the
// result is an empty directory.
func Default(ctx context.Context, api iface.CoreAPI) error {
	if api == nil {
		return &ConnectivityError{Err: errors.New("nil ipfs handle")}
	}

	node, err := api.Unixfs().Get(ctx, path.FromCid(emptyDir))
	if err != nil {
		return &ConnectivityError{Err: err}
	}
	defer func() {
		if cerr := node.Close(); cerr != nil {
			zap.L().Debug("failed to close connectivity probe node", zap.Error(cerr))
		}
	}()

	dir, ok := node.(files.Directory)
	if !ok {
		return &ConnectivityError{Err: fmt.Errorf("%s is not a directory", EmptyDirCID)}
	}
	it := dir.Entries()
	if it.Next() {
		return &ConnectivityError{Err: fmt.Errorf("%s is not empty: found %q", EmptyDirCID, it.Name())}
	}
	if err := it.Err(); err != nil {
		return &ConnectivityError{Err: err}
	}
	return nil
}

// WithTimeout bounds t with a per-call deadline of d. The discovery layer
// never imposes one itself; callers that need bounded latency wrap their Test.
func WithTimeout(t Test, d time.Duration) Test {
	if t == nil {
		t = Default
	}
	if d <= 0 {
		return t
	}
	return func(ctx context.Context, api iface.CoreAPI) error {
		ctx, cancel := context.WithTimeout(ctx, d)
		defer cancel()
		return t(ctx, api)
	}
}

// Run executes t against api and normalizes any failure into a
// *ConnectivityError. A nil t means Default.
func Run(ctx context.Context, t Test, api iface.CoreAPI) error {
	if t == nil {
		t = Default
	}
	err := t(ctx, api)
	if err == nil || IsConnectivityError(err) {
		return err
	}
	return &ConnectivityError{Err: err}
}
