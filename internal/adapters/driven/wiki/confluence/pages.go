package confluence

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/kognita-labs/kognita-cli/internal/core/domain"
)

// Wire formats for the content API.

type wireSpace struct {
	Key  string `json:"key"`
	Name string `json:"name"`
	Type string `json:"type"`
}

type wireVersion struct {
	Number int    `json:"number"`
	When   string `json:"when"`
}

type wireLinks struct {
	WebUI string `json:"webui"`
}

type wireContent struct {
	ID      string      `json:"id"`
	Title   string      `json:"title"`
	Space   wireSpace   `json:"space"`
	Version wireVersion `json:"version"`
	Links   wireLinks   `json:"_links"`
	Body    struct {
		Storage struct {
			Value string `json:"value"`
		} `json:"storage"`
	} `json:"body"`
}

type spaceListResponse struct {
	Results []wireSpace `json:"results"`
}

type contentListResponse struct {
	Results []wireContent `json:"results"`
}

// ListSpaces returns all spaces visible to the configured identity,
// paging at PageSize until a short page signals the end.
func (c *Client) ListSpaces(ctx context.Context) ([]domain.Space, error) {
	var spaces []domain.Space

	for start := 0; ; start += PageSize {
		params := url.Values{}
		params.Set("start", strconv.Itoa(start))
		params.Set("limit", strconv.Itoa(PageSize))

		var resp spaceListResponse
		if err := c.get(ctx, "/space", params, &resp); err != nil {
			return nil, fmt.Errorf("list spaces: %w", err)
		}

		for _, s := range resp.Results {
			if s.Key == "" {
				continue
			}
			spaceType := s.Type
			if spaceType == "" {
				spaceType = "global"
			}
			spaces = append(spaces, domain.Space{Key: s.Key, Name: s.Name, Type: spaceType})
		}

		if len(resp.Results) < PageSize {
			break
		}
	}

	return spaces, nil
}

// ListPages returns summaries for every page in a space. The upstream API
// does not reliably report totals, so a page shorter than PageSize is the
// termination signal.
func (c *Client) ListPages(ctx context.Context, spaceKey string) ([]domain.PageSummary, error) {
	if spaceKey == "" {
		return nil, fmt.Errorf("list pages: %w: space key is required", domain.ErrInvalidInput)
	}

	var pages []domain.PageSummary

	for start := 0; ; start += PageSize {
		params := url.Values{}
		params.Set("start", strconv.Itoa(start))
		params.Set("limit", strconv.Itoa(PageSize))
		params.Set("expand", "version,space")

		var resp contentListResponse
		endpoint := "/space/" + url.PathEscape(spaceKey) + "/content/page"
		if err := c.get(ctx, endpoint, params, &resp); err != nil {
			return nil, fmt.Errorf("list pages: %w", err)
		}

		for _, item := range resp.Results {
			pages = append(pages, c.summaryFromContent(item, spaceKey))
		}

		if len(resp.Results) < PageSize {
			break
		}
	}

	return pages, nil
}

// GetPage fetches a page's full content and revision metadata.
func (c *Client) GetPage(ctx context.Context, id string) (*domain.Page, error) {
	if id == "" {
		return nil, fmt.Errorf("get page: %w: id is required", domain.ErrInvalidInput)
	}

	params := url.Values{}
	params.Set("expand", "body.storage,version,space")

	var content wireContent
	if err := c.get(ctx, "/content/"+url.PathEscape(id), params, &content); err != nil {
		return nil, fmt.Errorf("get page %s: %w", id, err)
	}

	page := &domain.Page{
		ID:        content.ID,
		Title:     content.Title,
		RawBody:   content.Body.Storage.Value,
		SpaceKey:  content.Space.Key,
		URL:       c.webURL(content.Links.WebUI),
		Version:   content.Version.Number,
		UpdatedAt: parseWhen(content.Version.When),
	}
	return page, nil
}

// PageChildren returns direct child pages.
func (c *Client) PageChildren(ctx context.Context, id string) ([]domain.PageSummary, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(PageSize))
	params.Set("expand", "version,space")

	var resp contentListResponse
	if err := c.get(ctx, "/content/"+url.PathEscape(id)+"/child/page", params, &resp); err != nil {
		return nil, fmt.Errorf("page children %s: %w", id, err)
	}

	children := make([]domain.PageSummary, 0, len(resp.Results))
	for _, item := range resp.Results {
		children = append(children, c.summaryFromContent(item, ""))
	}
	return children, nil
}

// PageAncestors returns the ancestor path from root to parent.
func (c *Client) PageAncestors(ctx context.Context, id string) ([]domain.PageSummary, error) {
	var resp contentListResponse
	if err := c.get(ctx, "/content/"+url.PathEscape(id)+"/ancestor", nil, &resp); err != nil {
		return nil, fmt.Errorf("page ancestors %s: %w", id, err)
	}

	ancestors := make([]domain.PageSummary, 0, len(resp.Results))
	for _, item := range resp.Results {
		ancestors = append(ancestors, c.summaryFromContent(item, ""))
	}
	return ancestors, nil
}

// Attachment describes a file attached to a page. Attachments are
// surfaced as-is; their content is not ingested.
type Attachment struct {
	ID        string
	Title     string
	MediaType string
	Download  string
}

// PageAttachments lists a page's attachments.
func (c *Client) PageAttachments(ctx context.Context, id string) ([]Attachment, error) {
	var resp struct {
		Results []struct {
			ID       string `json:"id"`
			Title    string `json:"title"`
			Metadata struct {
				MediaType string `json:"mediaType"`
			} `json:"metadata"`
			Links struct {
				Download string `json:"download"`
			} `json:"_links"`
		} `json:"results"`
	}
	if err := c.get(ctx, "/content/"+url.PathEscape(id)+"/child/attachment", nil, &resp); err != nil {
		return nil, fmt.Errorf("page attachments %s: %w", id, err)
	}

	attachments := make([]Attachment, 0, len(resp.Results))
	for _, a := range resp.Results {
		attachments = append(attachments, Attachment{
			ID:        a.ID,
			Title:     a.Title,
			MediaType: a.Metadata.MediaType,
			Download:  c.webURL(a.Links.Download),
		})
	}
	return attachments, nil
}

// PageLabels lists a page's label names.
func (c *Client) PageLabels(ctx context.Context, id string) ([]string, error) {
	var resp struct {
		Results []struct {
			Name string `json:"name"`
		} `json:"results"`
	}
	if err := c.get(ctx, "/content/"+url.PathEscape(id)+"/label", nil, &resp); err != nil {
		return nil, fmt.Errorf("page labels %s: %w", id, err)
	}

	labels := make([]string, 0, len(resp.Results))
	for _, l := range resp.Results {
		labels = append(labels, l.Name)
	}
	return labels, nil
}

// AncestryPath joins ancestor titles into a breadcrumb string.
func AncestryPath(ancestors []domain.PageSummary) string {
	if len(ancestors) == 0 {
		return ""
	}
	path := ancestors[0].Title
	for _, a := range ancestors[1:] {
		path += " > " + a.Title
	}
	return path
}

// summaryFromContent maps a content item to a page summary, falling back
// to the listing's space key when the item omits its space.
func (c *Client) summaryFromContent(item wireContent, spaceKey string) domain.PageSummary {
	key := item.Space.Key
	if key == "" {
		key = spaceKey
	}
	return domain.PageSummary{
		ID:        item.ID,
		Title:     item.Title,
		SpaceKey:  key,
		URL:       c.webURL(item.Links.WebUI),
		UpdatedAt: parseWhen(item.Version.When),
	}
}

// webURL resolves a relative webui link against the site base URL.
func (c *Client) webURL(webui string) string {
	if webui == "" {
		return ""
	}
	return c.baseURL + "/wiki" + webui
}

// parseWhen parses the API's RFC 3339 timestamps, zero time on failure.
func parseWhen(when string) time.Time {
	if when == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, when)
	if err != nil {
		return time.Time{}
	}
	return t
}
