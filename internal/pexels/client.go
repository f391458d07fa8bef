package pexels

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
	searchURL      = "https://api.pexels.com/v1/search"
	defaultTimeout = 30 * time.Second
	resultsPerPage = 5
)

// Orientation constrains the shape of returned photos.
type Orientation string

const (
	Landscape Orientation = "landscape"
	Portrait  Orientation = "portrait"
	Square    Orientation = "square"
)

type Config struct {
	APIKey  string
	Timeout time.Duration
}

// Client is a thin wrapper around the Pexels photo search API.
type Client struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
}

type Photo struct {
	ID     int
	Width  int
	Height int
	Alt    string
	URL    string
}

type searchResponse struct {
	Photos []photoItem `json:"photos"`
}

type photoItem struct {
	ID     int       `json:"id"`
	Width  int       `json:"width"`
	Height int       `json:"height"`
	Alt    string    `json:"alt"`
	Src    photoSrcs `json:"src"`
}

type photoSrcs struct {
	Original string `json:"original"`
	Large    string `json:"large"`
	Medium   string `json:"medium"`
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	return &Client{
		apiKey: cfg.APIKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: searchURL,
	}
}

// Search returns landscape (or otherwise oriented) photos matching the
// query, best match first.
func (c *Client) Search(ctx context.Context, query string, orientation Orientation) ([]Photo, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("per_page", fmt.Sprintf("%d", resultsPerPage))
	params.Set("orientation", string(orientation))
	params.Set("size", "medium")

	reqURL := fmt.Sprintf("%s?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("search api error: %s, body: %s", resp.Status, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var searchResp searchResponse
	if err := json.Unmarshal(body, &searchResp); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	photos := make([]Photo, 0, len(searchResp.Photos))
	for _, item := range searchResp.Photos {
		photos = append(photos, Photo{
			ID:     item.ID,
			Width:  item.Width,
			Height: item.Height,
			Alt:    item.Alt,
			URL:    bestSrc(item.Src),
		})
	}

	return photos, nil
}

// Download fetches the photo bytes at the given URL.
func (c *Client) Download(ctx context.Context, photoURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, photoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download photo: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download photo: %s", resp.Status)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType != "" && !strings.HasPrefix(strings.ToLower(contentType), "image/") {
		return nil, fmt.Errorf("invalid content type: %s", contentType)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read photo data: %w", err)
	}

	return data, nil
}

// bestSrc prefers the large rendition, falling back to medium and original.
func bestSrc(src photoSrcs) string {
	if src.Large != "" {
		return src.Large
	}
	if src.Medium != "" {
		return src.Medium
	}
	return src.Original
}
