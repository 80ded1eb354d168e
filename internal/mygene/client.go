// Package mygene is a minimal client for the mygene.info batch query API.
package mygene

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultBaseURL = "https://mygene.info/v3"

	// The service caps batch queries at 1000 terms per request.
	defaultBatchSize = 1000
)

// Query scopes understood by the identifier service.
const (
	ScopeSymbol  = "symbol"
	ScopeUniprot = "uniprot"
)

type Client struct {
	client    *http.Client
	baseURL   string
	batchSize int
}

// Hit is one element of a batch query response. Entrezgene is left untyped:
// the service has returned it both as a number and as a string across API
// versions, and the value is passed through to output documents verbatim.
type Hit struct {
	Query      string `json:"query"`
	Entrezgene any    `json:"entrezgene"`
	NotFound   bool   `json:"notfound"`
}

// Result collects every hit of a batch query plus the terms the service
// reported as unmatched.
type Result struct {
	Hits    []Hit
	Missing []string
}

type errorBody struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func NewClient(baseURL string, batchSize int, timeout time.Duration) *Client {
	base := strings.TrimSpace(baseURL)
	if base == "" {
		base = DefaultBaseURL
	}
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	return &Client{
		client: &http.Client{
			Timeout: timeout,
		},
		baseURL:   strings.TrimRight(base, "/"),
		batchSize: batchSize,
	}
}

// QueryMany resolves terms to Entrez gene IDs, querying in batches. Scopes
// selects the identifier namespace searched and species restricts matches to
// one taxon. Terms without a match are collected in Result.Missing.
func (c *Client) QueryMany(ctx context.Context, terms []string, scopes, species string) (*Result, error) {
	result := &Result{}
	if len(terms) == 0 {
		return result, nil
	}

	for i := 0; i < len(terms); i += c.batchSize {
		end := i + c.batchSize
		if end > len(terms) {
			end = len(terms)
		}
		hits, err := c.queryBatch(ctx, terms[i:end], scopes, species)
		if err != nil {
			return nil, err
		}
		for _, hit := range hits {
			if hit.NotFound {
				result.Missing = append(result.Missing, hit.Query)
				continue
			}
			result.Hits = append(result.Hits, hit)
		}
	}
	return result, nil
}

func (c *Client) queryBatch(ctx context.Context, terms []string, scopes, species string) ([]Hit, error) {
	form := url.Values{}
	form.Set("q", strings.Join(terms, ","))
	form.Set("scopes", scopes)
	form.Set("species", species)
	form.Set("fields", "entrezgene")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/query", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("mygene: query failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		var eb errorBody
		if json.Unmarshal(body, &eb) == nil && eb.Error != "" {
			return nil, fmt.Errorf("mygene: query returned %d: %s", resp.StatusCode, eb.Error)
		}
		return nil, fmt.Errorf("mygene: query returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var hits []Hit
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber() // keep entrezgene values as written
	if err := dec.Decode(&hits); err != nil {
		return nil, fmt.Errorf("mygene: decoding response: %w", err)
	}
	return hits, nil
}
