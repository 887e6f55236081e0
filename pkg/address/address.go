// Package address validates and converts the network addresses used to reach
// an IPFS HTTP RPC endpoint. Addresses are multiaddrs such as
// /ip4/127.0.0.1/tcp/5001 or /dns4/example.com/tcp/443/https; plain http(s)
// URLs are accepted and converted.
package address

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"

	ma "github.com/multiformats/go-multiaddr"
	manet "github.com/multiformats/go-multiaddr/net"
)

const (
	// DefaultAPIAddress is the loopback address a local daemon listens on.
	DefaultAPIAddress = "/ip4/127.0.0.1/tcp/5001"
	// DefaultAPIPort is the port of DefaultAPIAddress.
	DefaultAPIPort = "5001"
)

// Validate normalizes v into a multiaddr. It accepts nil, strings (multiaddr
// or http/https URL), ma.Multiaddr and *url.URL. Anything that does not parse
// yields nil so that callers can treat it as "no address supplied".
func Validate(v any) ma.Multiaddr {
	switch a := v.(type) {
	case nil:
		return nil
	case ma.Multiaddr:
		if a == nil {
			return nil
		}
		return parse(a.String())
	case string:
		return parse(a)
	case *url.URL:
		if a == nil {
			return nil
		}
		addr, err := FromURL(a)
		if err != nil {
			return nil
		}
		return addr
	default:
		return nil
	}
}

func parse(s string) ma.Multiaddr {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if strings.HasPrefix(s, "/") {
		addr, err := ma.NewMultiaddr(s)
		if err != nil {
			return nil
		}
		return addr
	}
	u, err := url.Parse(s)
	if err != nil {
		return nil
	}
	addr, err := FromURL(u)
	if err != nil {
		return nil
	}
	return addr
}

// FromURL converts an http or https URL into the equivalent multiaddr,
// for example http://dev.local:5001/x becomes /dns4/dev.local/tcp/5001/http.
// Path, query and fragment are ignored. A missing port defaults to the
// scheme's well-known port.
func FromURL(u *url.URL) (ma.Multiaddr, error) {
	if u == nil {
		return nil, errors.New("nil url")
	}

	var proto, port string
	switch strings.ToLower(u.Scheme) {
	case "http":
		proto, port = "http", "80"
	case "https":
		proto, port = "https", "443"
	default:
		return nil, fmt.Errorf("unsupported url scheme %q", u.Scheme)
	}

	host := u.Hostname()
	if host == "" {
		return nil, fmt.Errorf("url %q has no host", u.String())
	}
	if p := u.Port(); p != "" {
		port = p
	}

	hostPart := "/dns4/" + host
	if ip := net.ParseIP(host); ip != nil {
		if ip.To4() != nil {
			hostPart = "/ip4/" + ip.String()
		} else {
			hostPart = "/ip6/" + ip.String()
		}
	}

	addr, err := ma.NewMultiaddr(hostPart + "/tcp/" + port + "/" + proto)
	if err != nil {
		return nil, fmt.Errorf("failed to convert %q to a multiaddr: %w", u.String(), err)
	}
	return addr, nil
}

// IsDefaultOrigin reports whether u already points at the default local API
// (localhost or 127.0.0.1 on port 5001).
func IsDefaultOrigin(u *url.URL) bool {
	if u == nil {
		return false
	}
	host := u.Hostname()
	return u.Port() == DefaultAPIPort && (host == "localhost" || host == "127.0.0.1")
}

// Endpoint is the effective HTTP endpoint described by a multiaddr.
type Endpoint struct {
	Protocol string
	Host     string
	Port     string
}

// URL returns the endpoint as a base URL, e.g. http://127.0.0.1:5001.
func (e Endpoint) URL() string {
	return e.Protocol + "://" + net.JoinHostPort(e.Host, e.Port)
}

// ToEndpoint resolves a multiaddr into the endpoint an HTTP client would dial.
// Multiaddrs carrying /https or /tls select https; everything else is http.
func ToEndpoint(a ma.Multiaddr) (Endpoint, error) {
	if a == nil {
		return Endpoint{}, errors.New("nil multiaddr")
	}
	_, hostport, err := manet.DialArgs(a)
	if err != nil {
		return Endpoint{}, err
	}
	host, port, err := net.SplitHostPort(hostport)
	if err != nil {
		return Endpoint{}, fmt.Errorf("unexpected dial address %q: %w", hostport, err)
	}

	proto := "http"
	for _, p := range a.Protocols() {
		if p.Code == ma.P_HTTPS || p.Code == ma.P_TLS {
			proto = "https"
			break
		}
	}

	return Endpoint{Protocol: proto, Host: host, Port: port}, nil
}
