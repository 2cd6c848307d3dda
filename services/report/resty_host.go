//go:build !tinygo

package report

import (
	"context"

	"github.com/go-resty/resty/v2"

	"thermometer-go/errcode"
)

// Resty is the host Reporter.
type Resty struct {
	c *resty.Client
	o Options
}

func NewResty(o Options) *Resty {
	c := resty.New().
		SetHeader("Accept", HeaderAccept).
		SetHeader("Content-Type", HeaderContentType)
	if o.Timeout > 0 {
		c.SetTimeout(o.Timeout)
	}
	return &Resty{c: c, o: o}
}

func (r *Resty) Post(ctx context.Context, body string) (int, error) {
	r.o.Log.V(1).Info("[HTTP] POST...", "url", r.o.URL)
	resp, err := r.c.R().
		SetContext(ctx).
		SetBody(body).
		Post(r.o.URL)
	if err != nil {
		return -1, &errcode.E{C: errcode.PostFailed, Op: "post", Err: err}
	}
	logReply(r.o.Log, resp.StatusCode(), resp.Body())
	return resp.StatusCode(), nil
}

func (r *Resty) Close() error {
	r.c.GetClient().CloseIdleConnections()
	return nil
}
