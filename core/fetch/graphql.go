package fetch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// GraphQLConfig describes a cursor-paginated GraphQL connection.
type GraphQLConfig struct {
	// Endpoint is the GraphQL URL.
	Endpoint string

	// AccessToken is sent as a bearer token when set.
	AccessToken string

	// Query is the GraphQL document. It must accept the page size and cursor variables.
	Query string

	// Variables are sent with every request; the paging variables are added per page.
	Variables map[string]any

	// ConnectionPath locates the connection object in the response,
	// e.g. "data.term.coursesConnection".
	ConnectionPath string

	// PageSizeVariable names the page size variable. Defaults to "pageSize".
	PageSizeVariable string

	// CursorVariable names the cursor variable. Defaults to "pageCursor".
	CursorVariable string

	// Timeout bounds a single request. Defaults to 30 seconds.
	Timeout time.Duration
}

// GraphQLSource fetches pages from a Relay-style connection that exposes
// `nodes` and `pageInfo { hasNextPage endCursor }`.
type GraphQLSource struct {
	cfg    GraphQLConfig
	client *http.Client
}

// NewGraphQLSource creates a source. A nil client gets one with cfg.Timeout.
func NewGraphQLSource(cfg GraphQLConfig, client *http.Client) *GraphQLSource {
	if cfg.PageSizeVariable == "" {
		cfg.PageSizeVariable = "pageSize"
	}
	if cfg.CursorVariable == "" {
		cfg.CursorVariable = "pageCursor"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	return &GraphQLSource{cfg: cfg, client: client}
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type graphQLResponse struct {
	Data   map[string]any `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

type pageInfo struct {
	HasNextPage bool   `json:"hasNextPage"`
	EndCursor   string `json:"endCursor"`
}

// FetchPage performs one POST request and decodes one page.
func (s *GraphQLSource) FetchPage(ctx context.Context, cursor string, pageSize int) (*Page, error) {
	vars := make(map[string]any, len(s.cfg.Variables)+2)
	for k, v := range s.cfg.Variables {
		vars[k] = v
	}
	vars[s.cfg.PageSizeVariable] = pageSize
	vars[s.cfg.CursorVariable] = cursor

	body, err := json.Marshal(graphQLRequest{Query: s.cfg.Query, Variables: vars})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.cfg.AccessToken != "" {
		req.Header.Set("Authorization", "Bearer "+s.cfg.AccessToken)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Code: resp.StatusCode, Body: truncate(string(data), 200)}
	}

	return s.decode(data)
}

func (s *GraphQLSource) decode(data []byte) (*Page, error) {
	var gr graphQLResponse
	if err := json.Unmarshal(data, &gr); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if len(gr.Errors) > 0 {
		msgs := make([]string, 0, len(gr.Errors))
		for _, e := range gr.Errors {
			msgs = append(msgs, e.Message)
		}
		return nil, fmt.Errorf("graphql errors: %s", strings.Join(msgs, "; "))
	}

	var cur any = map[string]any{"data": gr.Data}
	for _, seg := range strings.Split(s.cfg.ConnectionPath, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("connection path %q not found in response", s.cfg.ConnectionPath)
		}
		if cur, ok = m[seg]; !ok {
			return nil, fmt.Errorf("connection path %q not found in response", s.cfg.ConnectionPath)
		}
	}
	conn, ok := cur.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("connection %q is not an object", s.cfg.ConnectionPath)
	}

	nodes, _ := conn["nodes"].([]any)
	page := &Page{Records: make([]RawRecord, 0, len(nodes))}
	for i, n := range nodes {
		rec, ok := n.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("node %d is not an object", i)
		}
		page.Records = append(page.Records, rec)
	}

	// Re-decode pageInfo into its typed form.
	raw, err := json.Marshal(conn["pageInfo"])
	if err != nil {
		return nil, fmt.Errorf("failed to read pageInfo: %w", err)
	}
	var info pageInfo
	if err := json.Unmarshal(raw, &info); err != nil {
		return nil, fmt.Errorf("failed to parse pageInfo: %w", err)
	}
	page.HasMore = info.HasNextPage
	page.NextCursor = info.EndCursor

	return page, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
