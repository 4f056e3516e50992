package confluence

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/kognita-labs/kognita-cli/internal/core/domain"
)

type searchResponse struct {
	Results []struct {
		Content wireContent `json:"content"`
	} `json:"results"`
}

// SearchPages runs a CQL text search, optionally scoped to a space,
// ordered by last modification.
func (c *Client) SearchPages(ctx context.Context, query, spaceKey string) ([]domain.PageSummary, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("search pages: %w: query is required", domain.ErrInvalidInput)
	}

	clauses := []string{
		`text ~ "` + escapeCQL(query) + `"`,
		"type = page",
	}
	if spaceKey != "" {
		clauses = append(clauses, `space = "`+escapeCQL(spaceKey)+`"`)
	}
	cql := strings.Join(clauses, " AND ") + " ORDER BY lastmodified DESC"

	return c.searchCQL(ctx, cql, SearchLimit)
}

// RecentlyModified returns pages modified since the given time, newest
// first.
func (c *Client) RecentlyModified(ctx context.Context, since time.Time, limit int) ([]domain.PageSummary, error) {
	if limit <= 0 || limit > PageSize {
		limit = SearchLimit
	}

	// CQL dates use minute precision in the site's timezone.
	cql := fmt.Sprintf(`type = page AND lastmodified >= "%s" ORDER BY lastmodified DESC`,
		since.Format("2006-01-02 15:04"))

	return c.searchCQL(ctx, cql, limit)
}

// searchCQL executes a CQL query against the search endpoint.
func (c *Client) searchCQL(ctx context.Context, cql string, limit int) ([]domain.PageSummary, error) {
	params := url.Values{}
	params.Set("cql", cql)
	params.Set("limit", strconv.Itoa(limit))
	params.Set("expand", "content.version,content.space")

	var resp searchResponse
	if err := c.get(ctx, "/content/search", params, &resp); err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	pages := make([]domain.PageSummary, 0, len(resp.Results))
	for _, result := range resp.Results {
		if result.Content.ID == "" {
			continue
		}
		pages = append(pages, c.summaryFromContent(result.Content, ""))
	}
	return pages, nil
}

// escapeCQL escapes quotes and backslashes inside a CQL string literal.
func escapeCQL(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}
