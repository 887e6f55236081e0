// Package storage reads content addressed by CID through a discovered IPFS
// handle, whichever provider produced it.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ipfs/boxo/files"
	"github.com/ipfs/boxo/path"
	"github.com/ipfs/go-cid"
	iface "github.com/ipfs/kubo/core/coreiface"
	"go.uber.org/zap"
)

// IpfsPrefix is the URI scheme prefix recognized for IPFS content.
const IpfsPrefix = "ipfs://"

// ErrNotFile is returned when a reference resolves to a directory or symlink.
var ErrNotFile = errors.New("not a regular file")

// ReadFile fetches the file ref points to. ref may be a bare CID, an
// ipfs:// URI or a content path such as /ipfs/<cid>/readme.
func ReadFile(ctx context.Context, api iface.CoreAPI, ref string) ([]byte, error) {
	p, err := ParseRef(ref)
	if err != nil {
		return nil, err
	}

	zap.L().Debug("reading from ipfs", zap.String("path", p.String()))
	node, err := api.Unixfs().Get(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", p, err)
	}
	defer func() {
		if cerr := node.Close(); cerr != nil {
			zap.L().Debug("failed to close ipfs node", zap.String("path", p.String()), zap.Error(cerr))
		}
	}()

	f, ok := node.(files.File)
	if !ok {
		return nil, fmt.Errorf("%s: %w", p, ErrNotFile)
	}
	content, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", p, err)
	}
	return content, nil
}

// ParseRef normalizes ref into a content path.
func ParseRef(ref string) (path.Path, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, errors.New("empty reference")
	}
	if rest, ok := strings.CutPrefix(ref, IpfsPrefix); ok {
		ref = "/ipfs/" + rest
	}
	if !strings.HasPrefix(ref, "/") {
		c, err := cid.Parse(ref)
		if err != nil {
			return nil, fmt.Errorf("invalid cid %q: %w", ref, err)
		}
		return path.FromCid(c), nil
	}
	p, err := path.NewPath(ref)
	if err != nil {
		return nil, fmt.Errorf("invalid path %q: %w", ref, err)
	}
	return p, nil
}
