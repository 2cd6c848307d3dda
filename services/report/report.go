// Package report ships line-protocol records to the time-series database.
package report

import (
	"context"
	"time"

	"github.com/go-logr/logr"
)

// Headers sent with every POST. The content type does not match the
// line-protocol body; InfluxDB ignores it and the firmware always sent it.
const (
	HeaderAccept      = "*/*"
	HeaderContentType = "application/json"
)

// Reporter transmits one payload and returns the HTTP status code. A
// transport failure returns a negative code and an errcode.PostFailed error.
type Reporter interface {
	Post(ctx context.Context, body string) (int, error)
	Close() error
}

// Options configure a Reporter.
type Options struct {
	// URL is the full write endpoint, e.g. http://carbon.local:8086/write?db=thermometer.
	URL string
	// Timeout bounds one POST; zero leaves it to the transport.
	Timeout time.Duration
	Log     logr.Logger
}

func logReply(log logr.Logger, code int, body []byte) {
	log.V(1).Info("[HTTP] POST... code", "code", code)
	if code == 200 {
		log.Info("received payload", "body", string(body))
	}
}
