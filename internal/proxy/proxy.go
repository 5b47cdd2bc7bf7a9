// Package proxy forwards builder requests to the external backend
package proxy

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"

	"go.uber.org/zap"
)

// Prefix is where the proxy is mounted
const Prefix = "/api/proxy"

const (
	allowOrigin  = "*"
	allowMethods = "GET, POST, PUT, PATCH, DELETE, OPTIONS"
	allowHeaders = "Content-Type, Authorization"
)

var forwarded = map[string]bool{
	http.MethodGet:    true,
	http.MethodPost:   true,
	http.MethodPut:    true,
	http.MethodPatch:  true,
	http.MethodDelete: true,
}

// ErrorResponse is the body sent when forwarding fails
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}

// Handler relays requests under Prefix to the target origin without retrying
type Handler struct {
	target *url.URL
	proxy  *httputil.ReverseProxy
	logger *zap.Logger
}

// New creates a proxy to target, an absolute http(s) URL
func New(target string, logger *zap.Logger) (*Handler, error) {
	u, err := url.Parse(target)
	if err != nil {
		return nil, fmt.Errorf("invalid proxy target %q: %w", target, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("invalid proxy target %q: must be an absolute http(s) URL", target)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	h := &Handler{target: u, logger: logger}
	h.proxy = &httputil.ReverseProxy{
		Rewrite: func(r *httputil.ProxyRequest) {
			r.Out.URL.Path = strings.TrimPrefix(r.In.URL.Path, Prefix)
			r.Out.URL.RawPath = ""
			r.SetURL(u)
		},
		ModifyResponse: func(resp *http.Response) error {
			setCORS(resp.Header)
			return nil
		},
		ErrorHandler: h.fail,
	}
	return h, nil
}

// Target returns the configured origin
func (h *Handler) Target() string {
	return h.target.String()
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.Method == http.MethodOptions:
		setCORS(w.Header())
		w.WriteHeader(http.StatusOK)
	case forwarded[r.Method]:
		h.proxy.ServeHTTP(w, r)
	default:
		setCORS(w.Header())
		w.Header().Set("Allow", allowMethods)
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	}
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error("proxy request failed",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.String("target", h.target.String()),
		zap.Error(err))

	setCORS(w.Header())
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: "Proxy request failed", Details: err.Error()})
}

func setCORS(h http.Header) {
	h.Set("Access-Control-Allow-Origin", allowOrigin)
	h.Set("Access-Control-Allow-Methods", allowMethods)
	h.Set("Access-Control-Allow-Headers", allowHeaders)
}
