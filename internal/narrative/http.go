package narrative

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// maxBody bounds how much of a response is read.
const maxBody = 64 << 10

// HTTPFetcher posts requests as JSON to a lore service and expects a
// {"title", "content"} object back.
type HTTPFetcher struct {
	Endpoint string
	Client   *http.Client
}

// NewHTTPFetcher creates a fetcher for the given endpoint.
func NewHTTPFetcher(endpoint string) *HTTPFetcher {
	return &HTTPFetcher{Endpoint: endpoint, Client: http.DefaultClient}
}

// Fetch implements Fetcher.
func (f *HTTPFetcher) Fetch(ctx context.Context, req Request) (Lore, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return Lore{}, fmt.Errorf("narrative: encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, f.Endpoint, bytes.NewReader(body))
	if err != nil {
		return Lore{}, fmt.Errorf("narrative: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(httpReq)
	if err != nil {
		return Lore{}, fmt.Errorf("narrative: request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Lore{}, fmt.Errorf("narrative: unexpected status %s", resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return Lore{}, fmt.Errorf("narrative: read response: %w", err)
	}
	var lore Lore
	if err := json.Unmarshal(bytes.TrimSpace(data), &lore); err != nil {
		return Lore{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if !lore.Valid() {
		return Lore{}, ErrMalformed
	}
	return lore, nil
}
