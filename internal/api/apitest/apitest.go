// Package apitest provides a scripted backend for testing the domain
// services against a real api.Client.
package apitest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/2beens/fitpro/internal/api"
	"github.com/2beens/fitpro/pkg"

	"github.com/stretchr/testify/require"
)

// Call is one request received by the Server.
type Call struct {
	Method string
	Path   string
	Query  map[string]string
	Header http.Header
	Body   []byte
}

func (c Call) DecodeBody(t *testing.T, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(c.Body, v))
}

type Reply struct {
	Status int
	Body   any
	Raw    string
}

// OK wraps data in a successful envelope.
func OK(data any) Reply {
	return Reply{Status: http.StatusOK, Body: map[string]any{"success": true, "data": data}}
}

func Fail(status int, message string) Reply {
	return Reply{Status: status, Body: map[string]any{"success": false, "message": message}}
}

func RawJSON(status int, raw string) Reply {
	return Reply{Status: status, Raw: raw}
}

type Server struct {
	t       *testing.T
	srv     *httptest.Server
	mutex   sync.Mutex
	replies map[string]Reply
	calls   []Call
}

// NewServer starts a server that answers "METHOD /path" keys with the
// registered replies and 404 otherwise.
func NewServer(t *testing.T) *Server {
	t.Helper()
	s := &Server{
		t:       t,
		replies: map[string]Reply{},
	}
	s.srv = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.srv.Close)
	return s
}

func (s *Server) On(method, path string, reply Reply) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.replies[method+" "+path] = reply
}

func (s *Server) Calls() []Call {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return append([]Call(nil), s.calls...)
}

func (s *Server) LastCall() Call {
	calls := s.Calls()
	require.NotEmpty(s.t, calls, "no calls received")
	return calls[len(calls)-1]
}

// Client returns an api.Client pointed at the server.
func (s *Server) Client(opts ...api.ClientOption) *api.Client {
	opts = append([]api.ClientOption{api.WithHTTPClient(s.srv.Client())}, opts...)
	c, err := api.NewClient(s.srv.URL, opts...)
	require.NoError(s.t, err)
	return c
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	query := map[string]string{}
	for k, v := range r.URL.Query() {
		query[k] = v[0]
	}

	s.mutex.Lock()
	s.calls = append(s.calls, Call{
		Method: r.Method,
		Path:   r.URL.EscapedPath(),
		Query:  query,
		Header: r.Header.Clone(),
		Body:   body,
	})
	reply, ok := s.replies[r.Method+" "+r.URL.EscapedPath()]
	s.mutex.Unlock()

	if !ok {
		pkg.WriteJSON(w, http.StatusNotFound, map[string]any{"success": false, "message": "Not found"})
		return
	}
	if reply.Raw != "" {
		pkg.WriteResponseBytes(w, pkg.ContentType.JSON, []byte(reply.Raw), reply.Status)
		return
	}
	pkg.WriteJSON(w, reply.Status, reply.Body)
}
