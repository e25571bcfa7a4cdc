package source

import (
	"context"
	crand "crypto/rand"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"monopoly_report/internal/adapters/observability"
	"monopoly_report/internal/domain"
)

const maxDocumentBytes = 4 << 20

// HTTPSource fetches the properties document over HTTP.
type HTTPSource struct {
	url  string
	host string
	hc   *http.Client
	rl   *rate.Limiter
}

func NewHTTP(rawURL string, rps int) (*HTTPSource, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid properties URL %q", rawURL)
	}
	if rps <= 0 {
		rps = 5
	}
	return &HTTPSource{
		url:  rawURL,
		host: u.Host,
		hc:   &http.Client{Timeout: 20 * time.Second},
		rl:   rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

func (s *HTTPSource) LoadRecords(ctx context.Context) ([]domain.PropertyRecord, error) {
	body, ctype, err := s.get(ctx)
	if err != nil {
		return nil, domain.SourceError("fetch "+s.url, err)
	}
	f := FormatFor(ctype)
	if ctype == "" || strings.Contains(ctype, "text/plain") || strings.Contains(ctype, "octet-stream") {
		f = FormatFor(s.url)
	}
	return DecodeRecords(body, f)
}

// ---- Internals ----

var ErrNotFound = errors.New("properties document not found")

// get performs a GET with client-side rate limiting and retries.
// Retries on 429 and transient 5xx, honoring Retry-After when provided.
func (s *HTTPSource) get(ctx context.Context) ([]byte, string, error) {
	if err := s.rl.Wait(ctx); err != nil {
		return nil, "", err
	}

	var lastErr error
	for i := 0; i < 4; i++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
		if err != nil {
			return nil, "", err
		}
		req.Header.Set("Accept", "application/json, application/yaml;q=0.9")
		req.Header.Set("User-Agent", "monopoly-report/1.0")

		start := time.Now()
		resp, err := s.hc.Do(req)
		if err != nil {
			observability.ObserveExternal("properties", s.host, 0, time.Since(start))
			if ctx.Err() != nil {
				return nil, "", ctx.Err()
			}
			lastErr = err
			if i < 3 && sleepCtx(ctx, backoff(i)) {
				continue
			}
			if ctx.Err() != nil {
				return nil, "", ctx.Err()
			}
			return nil, "", lastErr
		}
		observability.ObserveExternal("properties", s.host, resp.StatusCode, time.Since(start))

		switch resp.StatusCode {
		case http.StatusOK:
			b, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentBytes))
			resp.Body.Close()
			if err != nil {
				return nil, "", err
			}
			return b, resp.Header.Get("Content-Type"), nil

		case http.StatusNotFound:
			resp.Body.Close()
			return nil, "", ErrNotFound

		case http.StatusTooManyRequests, http.StatusInternalServerError,
			http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			wait := retryAfter(resp)
			resp.Body.Close()
			if wait == 0 {
				wait = backoff(i)
			}
			lastErr = fmt.Errorf("remote %d", resp.StatusCode)
			if i < 3 && sleepCtx(ctx, wait) {
				continue
			}
			if ctx.Err() != nil {
				return nil, "", ctx.Err()
			}
			return nil, "", lastErr

		default:
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			resp.Body.Close()
			return nil, "", fmt.Errorf("bad status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
		}
	}

	return nil, "", lastErr
}

// sleepCtx waits for d or returns early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// retryAfter parses Retry-After (seconds or HTTP-date). Returns 0 if absent/invalid.
func retryAfter(resp *http.Response) time.Duration {
	h := resp.Header.Get("Retry-After")
	if h == "" {
		return 0
	}
	if secs, err := strconv.Atoi(strings.TrimSpace(h)); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(h); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

// backoff: 200ms doubling per attempt, plus up to 50% jitter.
func backoff(i int) time.Duration {
	base := time.Duration(1<<i) * 200 * time.Millisecond
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return base
	}
	f := float64(b[0]) / 255.0
	return base + time.Duration(0.5*f*float64(base))
}
