package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

var (
	ErrUnsupportedMethod = errors.New("unsupported http method")
	ErrQueryConflict     = errors.New("path already carries a query string")
)

// Request is the logical description of one backend call.
type Request struct {
	Path    string
	Method  string
	Headers map[string]string
	Query   map[string]string
	// Body is serialized as JSON when not nil.
	Body any
}

func Get(path string, query map[string]string) Request {
	return Request{Path: path, Method: http.MethodGet, Query: query}
}

func Post(path string, body any) Request {
	return Request{Path: path, Method: http.MethodPost, Body: body}
}

func Put(path string, body any) Request {
	return Request{Path: path, Method: http.MethodPut, Body: body}
}

func Patch(path string, body any) Request {
	return Request{Path: path, Method: http.MethodPatch, Body: body}
}

func Delete(path string) Request {
	return Request{Path: path, Method: http.MethodDelete}
}

func (r Request) method() (string, error) {
	if r.Method == "" {
		return http.MethodGet, nil
	}
	m := strings.ToUpper(r.Method)
	switch m {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedMethod, r.Method)
	}
}

// ResolveURL joins base and path with exactly one separator and appends the
// query as a canonical (key sorted) query string.
func ResolveURL(base *url.URL, path string, query map[string]string) (*url.URL, error) {
	if base == nil || base.Scheme == "" || base.Host == "" {
		return nil, newURLError(errors.New("base url must be absolute"))
	}

	rel, err := url.Parse(strings.TrimLeft(path, "/"))
	if err != nil {
		return nil, newURLError(err)
	}
	if rel.IsAbs() || rel.Host != "" {
		return nil, newURLError(fmt.Errorf("path must be relative: %s", path))
	}
	if len(query) > 0 && (rel.RawQuery != "" || strings.HasSuffix(path, "?")) {
		return nil, newURLError(ErrQueryConflict)
	}

	resolved := *base
	resolved.RawQuery = ""
	resolved.Fragment = ""
	resolved.Path = strings.TrimRight(base.Path, "/") + "/" + rel.Path
	resolved.RawPath = ""
	if rel.RawPath != "" {
		resolved.RawPath = strings.TrimRight(base.EscapedPath(), "/") + "/" + rel.RawPath
	}

	if len(query) > 0 {
		values := url.Values{}
		for k, v := range query {
			values.Set(k, v)
		}
		resolved.RawQuery = values.Encode()
	} else {
		resolved.RawQuery = rel.RawQuery
	}

	return &resolved, nil
}

// BuildHTTPRequest turns r into a transport request. Authentication is not
// attached here.
func BuildHTTPRequest(ctx context.Context, base *url.URL, r Request) (*http.Request, error) {
	method, err := r.method()
	if err != nil {
		return nil, newURLError(err)
	}

	u, err := ResolveURL(base, r.Path, r.Query)
	if err != nil {
		return nil, err
	}

	var body io.Reader
	if r.Body != nil {
		payload, err := json.Marshal(r.Body)
		if err != nil {
			return nil, newEncodingError(err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, newURLError(err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for k, v := range r.Headers {
		req.Header.Set(k, v)
	}

	return req, nil
}
