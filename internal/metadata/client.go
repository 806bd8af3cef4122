// Package metadata reads off-chain presale descriptions from the hosted
// table store. It is read-only.
package metadata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"go-reactpad-cache/internal/interfaces"
	"go-reactpad-cache/internal/models"
)

// ErrMetadataNotFound means the table has no row for the presale
var ErrMetadataNotFound = errors.New("presale metadata not found")

const presalesPath = "/rest/v1/presales"

// maxBodyBytes caps how much of a response is read
const maxBodyBytes = 1 << 20

var _ interfaces.MetadataSource = (*Client)(nil)

// Client queries the presales table over HTTPS
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a metadata client. timeout bounds each request.
func NewClient(baseURL, apiKey string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// PresaleMetadata returns the row for a presale address
func (c *Client) PresaleMetadata(ctx context.Context, address string) (*models.PresaleMetadata, error) {
	address = models.NormalizeAddress(address)

	query := url.Values{}
	query.Set("address", "eq."+address)
	query.Set("select", "*")
	query.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+presalesPath+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build metadata request: %w", err)
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("metadata request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read metadata response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("Metadata service returned error status",
			zap.Int("status", resp.StatusCode),
			zap.String("address", address))
		return nil, fmt.Errorf("metadata service returned status %d", resp.StatusCode)
	}

	var rows []models.PresaleMetadata
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode metadata response: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrMetadataNotFound
	}

	row := rows[0]
	row.Address = models.NormalizeAddress(row.Address)
	return &row, nil
}
