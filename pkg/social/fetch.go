package social

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
)

const maxResponseSize = 1 << 20

// fetch sends params to rawURL as a form POST or as a GET query string and returns
// the response body regardless of status code. Any transport failure reports false.
func (b *Base) fetch(ctx context.Context, rawURL string, post bool, params url.Values, header map[string]string) ([]byte, bool) {
	if rawURL == "" {
		return nil, false
	}

	var (
		req *http.Request
		err error
	)
	if post {
		req, err = http.NewRequestWithContext(ctx, http.MethodPost, rawURL, strings.NewReader(params.Encode()))
		if err == nil {
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			req.Header.Set("Accept", "application/json")
		}
	} else {
		req, err = http.NewRequestWithContext(ctx, http.MethodGet, appendQuery(rawURL, params), nil)
	}
	if err != nil {
		b.fetchError(ctx, rawURL, err)
		return nil, false
	}

	req.Header.Set("User-Agent", b.host.userAgent(ctx))
	for k, v := range header {
		req.Header.Set(k, v)
	}

	resp, err := b.host.client.Do(req)
	if err != nil {
		b.fetchError(ctx, rawURL, err)
		return nil, false
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		b.fetchError(ctx, rawURL, err)
		return nil, false
	}
	return body, true
}

func (b *Base) fetchError(ctx context.Context, rawURL string, err error) {
	b.host.logger.WarnContext(ctx, "social request failed",
		slog.String("service", b.name),
		slog.String("url", rawURL),
		slog.String("error", err.Error()),
	)
}

// appendQuery adds params to rawURL with "?" or "&" depending on whether it
// already has a query.
func appendQuery(rawURL string, params url.Values) string {
	if len(params) == 0 {
		return rawURL
	}
	sep := "?"
	if strings.Contains(rawURL, "?") {
		sep = "&"
	}
	return rawURL + sep + params.Encode()
}
