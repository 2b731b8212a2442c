// internal/oeis/client.go
//
// Client for the OEIS sequence database (https://oeis.org).
// Fetches one sequence by identifier and validates it into a Sequence
// record the game engine can use.
//
// Validation chain (each failure is distinct and human-readable):
//   1. transport/status failure        → wrapped transport error
//   2. `results` absent or empty       → ErrNotFound
//   3. result has no `data` payload    → ErrMissingData
//   4. fewer parsed terms than needed  → ErrTooShort

package oeis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

// Sentinel errors for the provider validation chain.
// Callers distinguish them with errors.Is.
var (
	ErrNotFound    = errors.New("sequence not found")
	ErrMissingData = errors.New("sequence data not found")
	ErrTooShort    = errors.New("sequence too short")
)

// Sequence is one fetched puzzle. Immutable for the lifetime of a question.
type Sequence struct {
	ID    string  // A-number, e.g. "A000045"
	Name  string  // human-readable description
	Terms []int64 // parsed terms, length >= the client's minimum
}

// SiteURL returns the user-facing reference link for an identifier.
func SiteURL(id string) string {
	return "https://oeis.org/" + id
}

// Client fetches sequences from an OEIS-compatible endpoint.
type Client struct {
	baseURL  string
	minTerms int
	http     *http.Client
}

// NewClient constructs a Client. minTerms is the minimum number of parsed
// terms a sequence must have to be playable (displayed prefix + held-out term).
// No request timeout is set here; callers bound the call via context.
func NewClient(baseURL string, minTerms int) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		minTerms: minTerms,
		http:     &http.Client{},
	}
}

// searchResponse mirrors the JSON shape of /search?fmt=json.
type searchResponse struct {
	Results []struct {
		Name string `json:"name"`
		Data string `json:"data"`
	} `json:"results"`
}

// Fetch retrieves and validates the sequence with the given identifier.
func (c *Client) Fetch(ctx context.Context, id string) (*Sequence, error) {
	if id == "" {
		return nil, errors.New("oeis: empty sequence identifier")
	}

	u := c.baseURL + "/search?q=" + url.QueryEscape("id:"+id) + "&fmt=json"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("oeis: build request for %s: %w", id, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("oeis: fetch %s: %w", id, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("oeis: fetch %s: unexpected status %d", id, resp.StatusCode)
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("oeis: decode response for %s: %w", id, err)
	}
	if len(body.Results) == 0 {
		return nil, fmt.Errorf("oeis: %s: %w", id, ErrNotFound)
	}

	res := body.Results[0]
	data := strings.TrimSpace(res.Data)
	if data == "" {
		return nil, fmt.Errorf("oeis: %s: %w", id, ErrMissingData)
	}

	terms := parseTerms(data)
	if len(terms) < c.minTerms {
		return nil, fmt.Errorf("oeis: %s has %d terms, need %d: %w",
			id, len(terms), c.minTerms, ErrTooShort)
	}

	name := strings.TrimSpace(res.Name)
	if name == "" {
		name = "Sequence " + id
	}

	log.Debug().Str("id", id).Int("terms", len(terms)).Msg("fetched sequence")
	return &Sequence{ID: id, Name: name, Terms: terms}, nil
}

// parseTerms splits a comma-separated list of base-10 integers.
// Parsing stops at the first token that is not an integer; trailing terms
// are never displayed, so a truncated tail is harmless.
func parseTerms(data string) []int64 {
	parts := strings.Split(data, ",")
	out := make([]int64, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil {
			break
		}
		out = append(out, n)
	}
	return out
}
