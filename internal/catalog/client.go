package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/EnzoDelpy/tunerate-api/internal/apperr"
	"github.com/charmbracelet/log"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/time/rate"
)

// Client talks to the external music catalog. The token source handles
// the client-credentials exchange and refreshes lazily on expiry; the
// limiter keeps us under the catalog's rate limit.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     oauth2.TokenSource
	limiter    *rate.Limiter
}

func NewClient(cfg *Config) *Client {
	var tokens oauth2.TokenSource
	if cfg.ClientID != "" && cfg.ClientSecret != "" {
		cc := &clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     cfg.TokenURL,
		}
		tokens = cc.TokenSource(context.Background())
	}
	return newClient(cfg.BaseURL, tokens, nil)
}

func newClient(baseURL string, tokens oauth2.TokenSource, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		tokens:     tokens,
		limiter:    rate.NewLimiter(rate.Limit(10), 10),
	}
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	if c.tokens == nil {
		return nil, fmt.Errorf("%w: missing credentials", apperr.ErrCatalogUnavailable)
	}

	tok, err := c.tokens.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: token: %v", apperr.ErrCatalogUnavailable, err)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	fullURL := c.baseURL + endpoint
	if len(params) > 0 {
		fullURL += "?" + params.Encode()
	}

	log.Debug("catalog request", "endpoint", endpoint)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	tok.SetAuthHeader(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrCatalogUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return body, nil
	case resp.StatusCode == http.StatusNotFound, resp.StatusCode == http.StatusBadRequest:
		// the catalog answers 400 for malformed ids; treat both as no match
		return nil, fmt.Errorf("%w: %s", apperr.ErrCatalogNotFound, endpoint)
	default:
		log.Warn("catalog error", "endpoint", endpoint, "status", resp.StatusCode)
		return nil, fmt.Errorf("%w: status %d", apperr.ErrCatalogUnavailable, resp.StatusCode)
	}
}

func (c *Client) SearchArtists(ctx context.Context, query string) ([]Artist, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("type", "artist")

	body, err := c.get(ctx, "/search", params)
	if err != nil {
		return nil, err
	}

	var result searchResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}
	if result.Artists == nil {
		return nil, nil
	}
	return result.Artists.Items, nil
}

// SearchAlbums searches the catalog and filters the results: albums and
// EPs pass through, singles with two or more tracks (or an unknown track
// count) are reclassified as EPs, and true one-track singles are dropped.
func (c *Client) SearchAlbums(ctx context.Context, query string, limit, offset int) ([]Album, error) {
	items, err := c.searchAlbumsRaw(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	return filterAlbums(items), nil
}

func (c *Client) searchAlbumsRaw(ctx context.Context, query string, limit, offset int) ([]Album, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("type", "album")
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		params.Set("offset", strconv.Itoa(offset))
	}

	body, err := c.get(ctx, "/search", params)
	if err != nil {
		return nil, err
	}

	var result searchResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}
	if result.Albums == nil {
		return nil, nil
	}
	return result.Albums.Items, nil
}

func filterAlbums(in []Album) []Album {
	out := make([]Album, 0, len(in))
	for _, a := range in {
		switch a.AlbumType {
		case "album", "ep":
			out = append(out, a)
		case "single":
			if a.TotalTracks == 1 {
				continue
			}
			a.AlbumType = "ep"
			out = append(out, a)
		}
	}
	return out
}

func (c *Client) GetArtistDetails(ctx context.Context, externalID string) (*Artist, error) {
	body, err := c.get(ctx, "/artists/"+externalID, nil)
	if err != nil {
		return nil, err
	}

	var artist Artist
	if err := json.Unmarshal(body, &artist); err != nil {
		return nil, fmt.Errorf("unmarshal artist: %w", err)
	}
	return &artist, nil
}

// GetAlbumDetails looks an album up by external id. The catalog's direct
// lookup endpoint is occasionally inconsistent with its search endpoint
// for the same id, so a not-found answer falls back to a search-based
// exact-id match, then a URL-encoded retry, before the original
// not-found error is surfaced.
func (c *Client) GetAlbumDetails(ctx context.Context, externalID string) (*Album, error) {
	album, err := c.getAlbum(ctx, externalID)
	if err == nil {
		return album, nil
	}
	if !errors.Is(err, apperr.ErrCatalogNotFound) {
		return nil, err
	}

	if found, serr := c.searchAlbumsRaw(ctx, externalID, 50, 0); serr == nil {
		for i := range found {
			if found[i].ID == externalID {
				return &found[i], nil
			}
		}
	}

	if escaped := url.QueryEscape(externalID); escaped != externalID {
		if album, rerr := c.getAlbum(ctx, escaped); rerr == nil {
			return album, nil
		}
	}

	return nil, err
}

func (c *Client) getAlbum(ctx context.Context, externalID string) (*Album, error) {
	body, err := c.get(ctx, "/albums/"+externalID, nil)
	if err != nil {
		return nil, err
	}

	var album Album
	if err := json.Unmarshal(body, &album); err != nil {
		return nil, fmt.Errorf("unmarshal album: %w", err)
	}
	return &album, nil
}

func (c *Client) GetArtistAlbums(ctx context.Context, externalArtistID string) ([]Album, error) {
	params := url.Values{}
	params.Set("include_groups", "album,single")
	params.Set("limit", "50")

	body, err := c.get(ctx, "/artists/"+externalArtistID+"/albums", params)
	if err != nil {
		return nil, err
	}

	var page albumPage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("unmarshal albums: %w", err)
	}
	return filterAlbums(page.Items), nil
}

// TestExternalID reports whether the catalog knows the given album id.
func (c *Client) TestExternalID(ctx context.Context, externalID string) bool {
	_, err := c.getAlbum(ctx, externalID)
	return err == nil
}
