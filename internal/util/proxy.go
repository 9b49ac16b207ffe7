// Package util holds small helpers shared by the HTTP-speaking packages.
package util

import (
	"net/http"
	"net/url"
	"strings"
)

// NewProxyFunc builds a transport proxy callback. With no explicit proxy
// configured it defers to the standard environment variables. Hosts in
// noProxy (comma-separated; a leading dot matches subdomains) connect
// directly.
func NewProxyFunc(httpProxy, httpsProxy, noProxy string) func(*http.Request) (*url.URL, error) {
	if httpProxy == "" && httpsProxy == "" {
		return http.ProxyFromEnvironment
	}

	exempt := splitHostList(noProxy)

	return func(req *http.Request) (*url.URL, error) {
		if hostExempt(req.URL.Hostname(), exempt) {
			return nil, nil
		}
		if req.URL.Scheme == "https" && httpsProxy != "" {
			return url.Parse(httpsProxy)
		}
		if httpProxy != "" {
			return url.Parse(httpProxy)
		}
		return http.ProxyFromEnvironment(req)
	}
}

func splitHostList(list string) []string {
	var hosts []string
	for _, h := range strings.Split(list, ",") {
		h = strings.ToLower(strings.TrimSpace(h))
		if h != "" {
			hosts = append(hosts, h)
		}
	}
	return hosts
}

func hostExempt(host string, exempt []string) bool {
	host = strings.ToLower(host)
	for _, e := range exempt {
		base := strings.TrimPrefix(e, ".")
		if host == base || strings.HasSuffix(host, "."+base) {
			return true
		}
	}
	return false
}
