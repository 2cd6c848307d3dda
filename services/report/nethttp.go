package report

import (
	"context"
	"io"
	"net/http"
	"strings"

	"thermometer-go/errcode"
)

// HTTP is a Reporter on net/http. TinyGo builds use it over the netdev the
// WiFi probe registers.
type HTTP struct {
	c   *http.Client
	url string
	o   Options
}

func NewHTTP(o Options) *HTTP {
	return &HTTP{
		c:   &http.Client{Timeout: o.Timeout},
		url: o.URL,
		o:   o,
	}
}

func (h *HTTP) Post(ctx context.Context, body string) (int, error) {
	h.o.Log.V(1).Info("[HTTP] begin...", "url", h.url)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.url, strings.NewReader(body))
	if err != nil {
		return -1, &errcode.E{C: errcode.PostFailed, Op: "post", Err: err}
	}
	req.Header.Set("Accept", HeaderAccept)
	req.Header.Set("Content-Type", HeaderContentType)

	h.o.Log.V(1).Info("[HTTP] POST...")
	resp, err := h.c.Do(req)
	if err != nil {
		return -1, &errcode.E{C: errcode.PostFailed, Op: "post", Err: err}
	}
	defer resp.Body.Close()

	b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
	logReply(h.o.Log, resp.StatusCode, b)
	return resp.StatusCode, nil
}

func (h *HTTP) Close() error {
	h.c.CloseIdleConnections()
	return nil
}
