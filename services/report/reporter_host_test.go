//go:build !tinygo

package report

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/require"

	"thermometer-go/errcode"
)

type captured struct {
	method, path, query, accept, ctype, body string
}

func newInflux(t *testing.T, code int) (*httptest.Server, *[]captured) {
	t.Helper()
	var mu sync.Mutex
	var got []captured
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		mu.Lock()
		got = append(got, captured{
			method: r.Method,
			path:   r.URL.Path,
			query:  r.URL.RawQuery,
			accept: r.Header.Get("Accept"),
			ctype:  r.Header.Get("Content-Type"),
			body:   string(b),
		})
		mu.Unlock()
		w.WriteHeader(code)
	}))
	t.Cleanup(srv.Close)
	return srv, &got
}

func reporters(url string) map[string]Reporter {
	o := Options{URL: url, Timeout: 2 * time.Second, Log: logr.Discard()}
	return map[string]Reporter{
		"resty":   NewResty(o),
		"nethttp": NewHTTP(o),
	}
}

func TestReporters_PostLineProtocol(t *testing.T) {
	const line = "temperature,device_id=0,device_address=0x0011223344556677 value=98.6"
	for name, code := range map[string]int{"resty": http.StatusNoContent, "nethttp": http.StatusOK} {
		t.Run(name, func(t *testing.T) {
			srv, got := newInflux(t, code)
			r := reporters(srv.URL + "/write?db=thermometer")[name]
			defer r.Close()

			status, err := r.Post(context.Background(), line)
			require.NoError(t, err)
			require.Equal(t, code, status)
			require.Len(t, *got, 1)

			c := (*got)[0]
			require.Equal(t, http.MethodPost, c.method)
			require.Equal(t, "/write", c.path)
			require.Equal(t, "db=thermometer", c.query)
			require.Equal(t, "*/*", c.accept)
			require.Equal(t, "application/json", c.ctype)
			require.Equal(t, line, c.body)
		})
	}
}

func TestReporters_ServerErrorIsAStatusNotAnError(t *testing.T) {
	srv, _ := newInflux(t, http.StatusInternalServerError)
	for name, r := range reporters(srv.URL + "/write?db=thermometer") {
		status, err := r.Post(context.Background(), "x value=1")
		require.NoError(t, err, name)
		require.Equal(t, http.StatusInternalServerError, status, name)
	}
}

func TestReporters_TransportFailure(t *testing.T) {
	srv, _ := newInflux(t, http.StatusOK)
	url := srv.URL + "/write?db=thermometer"
	srv.Close()

	for name, r := range reporters(url) {
		status, err := r.Post(context.Background(), "x value=1")
		require.Error(t, err, name)
		require.Less(t, status, 0, name)
		require.Equal(t, errcode.PostFailed, errcode.Of(err), name)
	}
}
