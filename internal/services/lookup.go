package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Pawel-dev5/character-map-app/internal/logger"
	"github.com/Pawel-dev5/character-map-app/pkg/lookup"
)

const (
	DefaultLookupTimeout = 5 * time.Second
	DefaultUserAgent     = "character-map-app/1.0"

	maxBodyBytes = 1 << 20
)

// ColorNamer resolves a hex color to a human readable name
type ColorNamer interface {
	FetchColorName(ctx context.Context, hexColor string) lookup.Result[string]
}

// Geocoder resolves free-text addresses
type Geocoder interface {
	GeocodeAddress(ctx context.Context, query string) lookup.Result[lookup.GeoCoordinates]
	SuggestAddresses(ctx context.Context, query string) lookup.Result[[]lookup.AddressSuggestion]
}

// LookupOptions configures an HTTP lookup service
type LookupOptions struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
	Localizer *lookup.Localizer
	Logger    *slog.Logger
}

// httpLookup is the shared GET-and-classify plumbing for the lookup services
type httpLookup struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	text       *lookup.Localizer
	logger     *slog.Logger
}

// failure is a classified lookup failure, before it is wrapped into a Result
type failure struct {
	kind lookup.ErrorKind
	err  lookup.Error
}

func failed[T any](f *failure) lookup.Result[T] {
	return lookup.Fail[T](f.kind, f.err)
}

func newHTTPLookup(opts LookupOptions) httpLookup {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultLookupTimeout
	}
	ua := opts.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	text := opts.Localizer
	if text == nil {
		text = lookup.NewLocalizer("en")
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return httpLookup{
		baseURL:   strings.TrimRight(opts.BaseURL, "/"),
		userAgent: ua,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		text:   text,
		logger: log,
	}
}

// get issues a single bounded GET and returns the body of a 2xx response.
// Any other outcome comes back as a classified failure; invalid is the message
// used when the remote side rejects the input with a 4xx.
func (h *httpLookup) get(ctx context.Context, path string, params url.Values, invalid lookup.Key) ([]byte, *failure) {
	log := logger.WithRequestID(h.logger, uuid.NewString())
	endpoint := h.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		log.Error("Failed to build lookup request", "url", endpoint, "error", err)
		return nil, &failure{
			kind: lookup.ErrUnknown,
			err:  lookup.Error{Message: h.text.Text(lookup.MsgUnknown), Code: lookup.CodeUnknown},
		}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", h.userAgent)

	start := time.Now()
	resp, err := h.httpClient.Do(req)
	if err != nil {
		return nil, h.transportFailure(log, endpoint, err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, h.transportFailure(log, endpoint, err)
	}

	log.Debug("Lookup response received",
		"url", endpoint,
		"status", resp.StatusCode,
		"duration", time.Since(start),
		"body_length", len(body))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		kind := lookup.ClassifyStatus(resp.StatusCode)
		log.Warn("Lookup returned error status", "url", endpoint, "status", resp.StatusCode, "error_type", kind)
		return nil, &failure{
			kind: kind,
			err: lookup.Error{
				Message: h.text.TransportMessage(kind, resp.StatusCode, invalid),
				Code:    fmt.Sprintf("%s_%d", lookup.CodeHTTPStatus, resp.StatusCode),
				Status:  resp.StatusCode,
			},
		}
	}
	return body, nil
}

func (h *httpLookup) transportFailure(log *slog.Logger, endpoint string, err error) *failure {
	kind := lookup.ClassifyTransportError(err)
	log.Warn("Lookup request failed", "url", endpoint, "error_type", kind, "error", err)
	return &failure{
		kind: kind,
		err: lookup.Error{
			Message: h.text.TransportMessage(kind, 0, lookup.MsgUnknown),
			Code:    lookup.TransportCode(kind),
		},
	}
}

// invalidResponse is the failure for a 2xx body we cannot use
func (h *httpLookup) invalidResponse() *failure {
	return &failure{
		kind: lookup.ErrRemote,
		err:  lookup.Error{Message: h.text.Text(lookup.MsgInvalidResponse), Code: lookup.CodeInvalidResponse},
	}
}
