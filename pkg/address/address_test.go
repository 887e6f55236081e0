package address

import (
	"net/url"
	"testing"

	ma "github.com/multiformats/go-multiaddr"
)

func mustURL(t *testing.T, s string) *url.URL {
	t.Helper()
	u, err := url.Parse(s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return u
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{name: "nil", in: nil, want: ""},
		{name: "empty string", in: "   ", want: ""},
		{name: "multiaddr string", in: "/ip4/1.1.1.1/tcp/1111", want: "/ip4/1.1.1.1/tcp/1111"},
		{name: "multiaddr https", in: "/ip4/1.1.1.1/tcp/1111/https", want: "/ip4/1.1.1.1/tcp/1111/https"},
		{name: "malformed multiaddr", in: "/ip4/not-an-ip/tcp/1", want: ""},
		{name: "garbage", in: "definitely not an address", want: ""},
		{name: "http url", in: "http://dev.local:5001", want: "/dns4/dev.local/tcp/5001/http"},
		{name: "unsupported scheme", in: "ftp://dev.local:21", want: ""},
		{name: "url value", in: mustURL(t, "https://10.0.0.1:8443/api"), want: "/ip4/10.0.0.1/tcp/8443/https"},
		{name: "unsupported type", in: 5001, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Validate(tt.in)
			if tt.want == "" {
				if got != nil {
					t.Fatalf("Validate(%v) = %s, want nil", tt.in, got)
				}
				return
			}
			if got == nil {
				t.Fatalf("Validate(%v) = nil, want %s", tt.in, tt.want)
			}
			if got.String() != tt.want {
				t.Fatalf("Validate(%v) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestValidate_Idempotent(t *testing.T) {
	inputs := []any{
		nil,
		"",
		"/ip4/127.0.0.1/tcp/5001",
		"/dns4/example.com/tcp/443/https",
		"http://localhost:9999",
		"/bogus",
		42,
	}

	for _, in := range inputs {
		once := Validate(in)
		twice := Validate(once)
		if once == nil {
			if twice != nil {
				t.Fatalf("Validate(Validate(%v)) = %s, want nil", in, twice)
			}
			continue
		}
		if twice == nil || once.String() != twice.String() {
			t.Fatalf("Validate not idempotent for %v: %v then %v", in, once, twice)
		}
	}
}

func TestValidate_MultiaddrValue(t *testing.T) {
	a, err := ma.NewMultiaddr("/ip4/1.1.1.1/tcp/1111")
	if err != nil {
		t.Fatalf("NewMultiaddr: %v", err)
	}
	got := Validate(a)
	if got == nil || got.String() != a.String() {
		t.Fatalf("Validate(%s) = %v", a, got)
	}
}

func TestFromURL(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "http://dev.local:5001/x", want: "/dns4/dev.local/tcp/5001/http"},
		{in: "https://dev.local:5001/x", want: "/dns4/dev.local/tcp/5001/https"},
		{in: "http://localhost:9999", want: "/dns4/localhost/tcp/9999/http"},
		{in: "http://astro.cat", want: "/dns4/astro.cat/tcp/80/http"},
		{in: "https://astro.cat", want: "/dns4/astro.cat/tcp/443/https"},
		{in: "http://127.0.0.1:8080", want: "/ip4/127.0.0.1/tcp/8080/http"},
		{in: "http://[::1]:5001", want: "/ip6/::1/tcp/5001/http"},
		{in: "ws://dev.local:5001", wantErr: true},
		{in: "file:///tmp/x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := FromURL(mustURL(t, tt.in))
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %s", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("FromURL(%q) error: %v", tt.in, err)
			}
			if got.String() != tt.want {
				t.Fatalf("FromURL(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestIsDefaultOrigin(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{in: "http://localhost:5001", want: true},
		{in: "http://127.0.0.1:5001/webui", want: true},
		{in: "http://localhost:9999", want: false},
		{in: "http://dev.local:5001", want: false},
		{in: "http://localhost", want: false},
	}

	for _, tt := range tests {
		if got := IsDefaultOrigin(mustURL(t, tt.in)); got != tt.want {
			t.Fatalf("IsDefaultOrigin(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if IsDefaultOrigin(nil) {
		t.Fatal("IsDefaultOrigin(nil) = true")
	}
}

func TestToEndpoint(t *testing.T) {
	tests := []struct {
		in   string
		want Endpoint
	}{
		{in: "/ip4/1.1.1.1/tcp/1111", want: Endpoint{Protocol: "http", Host: "1.1.1.1", Port: "1111"}},
		{in: "/ip4/1.1.1.1/tcp/1111/https", want: Endpoint{Protocol: "https", Host: "1.1.1.1", Port: "1111"}},
		{in: "/dns4/dev.local/tcp/5001/http", want: Endpoint{Protocol: "http", Host: "dev.local", Port: "5001"}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			a, err := ma.NewMultiaddr(tt.in)
			if err != nil {
				t.Fatalf("NewMultiaddr: %v", err)
			}
			got, err := ToEndpoint(a)
			if err != nil {
				t.Fatalf("ToEndpoint error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("ToEndpoint(%s) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}

	if got := (Endpoint{Protocol: "https", Host: "dev.local", Port: "5001"}).URL(); got != "https://dev.local:5001" {
		t.Fatalf("URL() = %q", got)
	}
}
