// Package rpcfake serves a minimal Kubo RPC endpoint over httptest for tests
// that exercise real HTTP clients.
package rpcfake

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	ma "github.com/multiformats/go-multiaddr"
)

const (
	// DefaultPeerID is returned by the id command unless overridden.
	DefaultPeerID = "12D3KooWDefaultFakePeer"
	// EmptyDirCID is the only object the fake stores: the empty UnixFS
	// directory that connectivity checks fetch.
	EmptyDirCID = "QmUNLLsPACCz1vLxQVkXqqLX5R1X345qqfHbsf67hvA3Nn"
)

// Server is a running fake RPC endpoint.
type Server struct {
	*httptest.Server

	// Addr is the server address as a multiaddr.
	Addr ma.Multiaddr

	mu     sync.Mutex
	hits   map[string]int
	peerID string
	status int
}

// Options configure the fake.
type Options struct {
	// PeerID answered by the id command. Empty means DefaultPeerID.
	PeerID string
	// Status forces every response to this HTTP status when non-zero.
	Status int
}

// Start launches a server that is closed when t finishes.
func Start(t testing.TB, opts Options) *Server {
	t.Helper()

	s := &Server{hits: make(map[string]int), peerID: opts.PeerID, status: opts.Status}
	if s.peerID == "" {
		s.peerID = DefaultPeerID
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Close)

	hostport := strings.TrimPrefix(s.URL, "http://")
	host, port, _ := strings.Cut(hostport, ":")
	addr, err := ma.NewMultiaddr("/ip4/" + host + "/tcp/" + port)
	if err != nil {
		t.Fatalf("rpcfake: build multiaddr for %s: %v", s.URL, err)
	}
	s.Addr = addr
	return s
}

// Hits reports how many requests reached command (e.g. "id").
func (s *Server) Hits(command string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[command]
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	command := strings.TrimPrefix(r.URL.Path, "/api/v0/")
	s.mu.Lock()
	s.hits[command]++
	s.mu.Unlock()

	if s.status != 0 && s.status != http.StatusOK {
		writeError(w, s.status, "forced failure")
		return
	}

	switch command {
	case "id":
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"ID":        s.peerID,
			"Addresses": []string{},
		})
	case "files/stat":
		if !isEmptyDir(r) {
			writeError(w, http.StatusInternalServerError, "object not found: "+r.URL.Query().Get("arg"))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"Hash": EmptyDirCID,
			"Type": "directory",
			"Size": 0,
		})
	case "ls":
		if !isEmptyDir(r) {
			writeError(w, http.StatusInternalServerError, "object not found: "+r.URL.Query().Get("arg"))
			return
		}
		// A streamed listing of an empty directory has no entries.
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
	default:
		writeError(w, http.StatusNotFound, "command not found: "+command)
	}
}

func isEmptyDir(r *http.Request) bool {
	arg := strings.TrimPrefix(r.URL.Query().Get("arg"), "/ipfs/")
	return arg == EmptyDirCID
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"Message": msg,
		"Code":    0,
		"Type":    "error",
	})
}
