// Package gscript is the client for the Google Apps Script endpoint that owns
// every booking record, computes free slots and detects double bookings. The
// upstream reports failures in three different shapes (transport status, a
// numeric _status embedded in a 200 envelope, or a non-JSON body); Send folds
// all of them into one tagged Result so handlers never branch on the shape.
package gscript

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/bottegasoft/prenota-api/internal/observability/metrics"
	"github.com/bottegasoft/prenota-api/pkg/logging"
)

const (
	defaultTimeout = 15 * time.Second

	// Upstream details are echoed to the browser; cap them like the panel does.
	maxDetailsLen = 800
)

// ResultKind tags the variant a Send call produced.
type ResultKind int

const (
	KindOK ResultKind = iota
	KindConfigError
	KindTransportError
	KindParseError
	KindAppError
)

// Result is the uniform envelope for every upstream interaction.
type Result struct {
	Kind       ResultKind
	HTTPStatus int
	Data       map[string]any // decoded body for KindOK and KindAppError
	Err        string         // user-facing Italian message
	Details    string         // raw body on parse errors, upstream details otherwise
	Conflict   bool           // upstream says the slot is no longer free
	Timeout    bool           // transport error was the client-side deadline
}

// OK reports whether the upstream accepted the call.
func (r Result) OK() bool {
	return r.Kind == KindOK
}

// Outcome is the metrics label for this result.
func (r Result) Outcome() string {
	switch r.Kind {
	case KindOK:
		return "ok"
	case KindConfigError:
		return "config_error"
	case KindTransportError:
		if r.Timeout {
			return "timeout"
		}
		return "network_error"
	case KindParseError:
		return "parse_error"
	default:
		if r.Conflict {
			return "conflict"
		}
		return "app_error"
	}
}

// Config holds client configuration.
type Config struct {
	URL     string
	Secret  string
	Timeout time.Duration
	Logger  *logging.Logger
	Metrics *metrics.BookingMetrics
}

// Client talks to the Apps Script web app.
type Client struct {
	url        string
	secret     string
	httpClient *http.Client
	logger     *logging.Logger
	metrics    *metrics.BookingMetrics
}

// NewClient creates a new Apps Script client.
func NewClient(cfg Config) *Client {
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		url:    strings.TrimSpace(cfg.URL),
		secret: strings.TrimSpace(cfg.Secret),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger:  cfg.Logger,
		metrics: cfg.Metrics,
	}
}

// Send posts {action, ...payload, secret} to the script endpoint and folds the
// response into a Result. It makes exactly one outbound call and never retries.
func (c *Client) Send(ctx context.Context, action string, payload map[string]any) Result {
	start := time.Now()
	res := c.send(ctx, action, payload)
	c.metrics.ObserveScriptCall(action, res.Outcome(), time.Since(start).Seconds())
	return res
}

func (c *Client) send(ctx context.Context, action string, payload map[string]any) Result {
	if c.url == "" {
		return Result{Kind: KindConfigError, HTTPStatus: http.StatusInternalServerError,
			Err: "GOOGLE_SCRIPT_URL mancante in env."}
	}
	if c.secret == "" {
		return Result{Kind: KindConfigError, HTTPStatus: http.StatusInternalServerError,
			Err: "GOOGLE_SCRIPT_SECRET mancante in env."}
	}

	body := make(map[string]any, len(payload)+2)
	for k, v := range payload {
		body[k] = v
	}
	body["action"] = action
	body["secret"] = c.secret

	encoded, err := json.Marshal(body)
	if err != nil {
		return Result{Kind: KindTransportError, HTTPStatus: http.StatusInternalServerError,
			Err: fmt.Sprintf("Errore chiamata Google Script: %v", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(encoded))
	if err != nil {
		return Result{Kind: KindTransportError, HTTPStatus: http.StatusInternalServerError,
			Err: fmt.Sprintf("Errore chiamata Google Script: %v", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			c.logger.Warn("gscript: call timed out", "action", action)
			return Result{Kind: KindTransportError, HTTPStatus: http.StatusInternalServerError,
				Err: "Timeout chiamata Google Script.", Timeout: true}
		}
		c.logger.Error("gscript: call failed", "action", action, "error", err)
		return Result{Kind: KindTransportError, HTTPStatus: http.StatusInternalServerError,
			Err: fmt.Sprintf("Errore chiamata Google Script: %v", err)}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Error("gscript: read response failed", "action", action, "error", err)
		return Result{Kind: KindTransportError, HTTPStatus: http.StatusInternalServerError,
			Err: fmt.Sprintf("Errore chiamata Google Script: %v", err)}
	}

	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil || data == nil {
		st := resp.StatusCode
		if st == http.StatusOK {
			st = http.StatusBadGateway
		}
		return Result{Kind: KindParseError, HTTPStatus: st,
			Err:     "Risposta non valida dal Google Script (non JSON).",
			Details: truncate(string(raw), maxDetailsLen)}
	}

	// A numeric _status inside the body wins over the transport status: the
	// script reports semantic failures inside a 200 envelope.
	httpStatus := resp.StatusCode
	if st, ok := numericField(data, "_status"); ok {
		httpStatus = st
	}

	if ok, _ := data["ok"].(bool); !ok {
		msg, _ := data["error"].(string)
		if strings.TrimSpace(msg) == "" {
			msg = fmt.Sprintf("Errore Google Script (%s).", action)
		}
		conflict, _ := data["conflict"].(bool)
		if httpStatus == 0 || httpStatus == http.StatusOK {
			if conflict {
				httpStatus = http.StatusConflict
			} else {
				httpStatus = http.StatusInternalServerError
			}
		}
		return Result{Kind: KindAppError, HTTPStatus: httpStatus, Data: data,
			Err: msg, Details: detailsField(data), Conflict: conflict}
	}

	if httpStatus == 0 {
		httpStatus = http.StatusOK
	}
	return Result{Kind: KindOK, HTTPStatus: httpStatus, Data: data}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}

func numericField(data map[string]any, key string) (int, bool) {
	switch v := data[key].(type) {
	case float64:
		return int(v), true
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n, true
		}
	}
	return 0, false
}

func detailsField(data map[string]any) string {
	switch v := data["details"].(type) {
	case nil:
		return ""
	case string:
		return truncate(v, maxDetailsLen)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return truncate(string(b), maxDetailsLen)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
