package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"
)

const (
	fetchDialTimeout = 10 * time.Second
	fetchTimeout     = 30 * time.Second
	maxRedirects     = 10
)

var errNoAddress = errors.New("host has no addresses")

// ipResolver is the part of *net.Resolver the address guard needs.
type ipResolver interface {
	LookupIPAddr(ctx context.Context, host string) ([]net.IPAddr, error)
}

// addressGuard refuses hosts that resolve to internal addresses, so a
// document URL cannot be used to reach services next to the server.
type addressGuard struct {
	resolver ipResolver
}

// internalIP reports whether ip is private, loopback, link-local, or
// unspecified.
func internalIP(ip net.IP) bool {
	return ip.IsPrivate() || ip.IsLoopback() || ip.IsLinkLocalUnicast() || ip.IsUnspecified()
}

// resolve returns the addresses of host, failing if any of them is internal.
func (g addressGuard) resolve(ctx context.Context, host string) ([]net.IPAddr, error) {
	addrs, err := g.resolver.LookupIPAddr(ctx, host)
	if err != nil {
		return nil, err
	}
	if len(addrs) == 0 {
		return nil, fmt.Errorf("%w: %s", errNoAddress, host)
	}
	for _, a := range addrs {
		if internalIP(a.IP) {
			return nil, fmt.Errorf("refusing internal address %s for %s", a.IP, host)
		}
	}
	return addrs, nil
}

func (g addressGuard) dial(dialer *net.Dialer) func(ctx context.Context, network, addr string) (net.Conn, error) {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		host, port, err := net.SplitHostPort(addr)
		if err != nil {
			return nil, err
		}
		addrs, err := g.resolve(ctx, host)
		if err != nil {
			return nil, err
		}
		return dialer.DialContext(ctx, network, net.JoinHostPort(addrs[0].IP.String(), port))
	}
}

func (g addressGuard) checkRedirect(req *http.Request, via []*http.Request) error {
	if len(via) >= maxRedirects {
		return fmt.Errorf("stopped after %d redirects", maxRedirects)
	}
	_, err := g.resolve(req.Context(), req.URL.Hostname())
	return err
}

// fetchClient returns the client used to download RAML documents. Unless
// allowPrivate is set, connections and redirects to internal addresses
// are refused.
func fetchClient(allowPrivate bool) *http.Client {
	if allowPrivate {
		return &http.Client{Timeout: fetchTimeout}
	}
	return guardedClient(addressGuard{resolver: net.DefaultResolver})
}

func guardedClient(g addressGuard) *http.Client {
	return &http.Client{
		Timeout:       fetchTimeout,
		Transport:     &http.Transport{DialContext: g.dial(&net.Dialer{Timeout: fetchDialTimeout})},
		CheckRedirect: g.checkRedirect,
	}
}
