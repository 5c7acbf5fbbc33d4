package storage

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// bucket holds private injury photos. Paths stored on injury_images rows are
// relative to this bucket.
const bucket = "injury-images"

// Client downloads objects from the private storage service using the
// service key.
type Client struct {
	baseURL    string
	serviceKey string
	httpClient *http.Client
}

// NewClient creates a storage client. baseURL is the storage service root,
// serviceKey authorizes access to private buckets.
func NewClient(baseURL, serviceKey string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		serviceKey: serviceKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// DownloadBase64 fetches an object from the injury images bucket and returns
// it base64-encoded with no data-URI prefix, ready to send to the analysis
// endpoint.
func (c *Client) DownloadBase64(ctx context.Context, objectPath string) (string, error) {
	if c.baseURL == "" {
		return "", fmt.Errorf("storage service is not configured")
	}

	url := fmt.Sprintf("%s/object/%s/%s", c.baseURL, bucket, strings.TrimLeft(objectPath, "/"))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build storage request: %w", err)
	}
	if c.serviceKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("download %s: %w", objectPath, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("storage returned %d for %s", res.StatusCode, objectPath)
	}

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return "", fmt.Errorf("read object %s: %w", objectPath, err)
	}

	return base64.StdEncoding.EncodeToString(data), nil
}
