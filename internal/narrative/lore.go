// Package narrative fetches lore text for collected treasures. Requests run
// off the simulation goroutine and always resolve, falling back to a stock
// pair when the source fails, times out, or returns nothing usable.
package narrative

import (
	"context"
	"errors"
	"strings"
)

// Lore is a title and body pair shown after a collection.
type Lore struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Fallback is substituted whenever a fetch does not produce valid lore.
var Fallback = Lore{
	Title:   "Unknown Echo",
	Content: "The whispers of this island are too faint to translate...",
}

// Valid reports whether both fields carry text.
func (l Lore) Valid() bool {
	return strings.TrimSpace(l.Title) != "" && strings.TrimSpace(l.Content) != ""
}

// Request identifies what to write about.
type Request struct {
	Island   string `json:"island"`
	Category string `json:"category"`
}

// ErrMalformed is returned for a response that decodes but is not usable lore.
var ErrMalformed = errors.New("narrative: malformed lore payload")

// Fetcher produces lore for a request. Implementations must honor ctx.
type Fetcher interface {
	Fetch(ctx context.Context, req Request) (Lore, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, req Request) (Lore, error)

// Fetch calls f.
func (f FetcherFunc) Fetch(ctx context.Context, req Request) (Lore, error) {
	return f(ctx, req)
}

// ForEndpoint picks the lore source for a configured endpoint: the HTTP
// service when one is set, local fragments otherwise.
func ForEndpoint(endpoint string, seed int64) Fetcher {
	if endpoint == "" {
		return NewOffline(seed, 0)
	}
	return NewHTTPFetcher(endpoint)
}
