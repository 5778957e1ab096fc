package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/cropcare/internal/client/models"
)

// maxErrorBody bounds how much of an error response is read.
const maxErrorBody = 64 << 10

// HTTPClient talks JSON over HTTP to the recommendation backend.
type HTTPClient struct {
	endpointURL string
	http        *http.Client
}

// NewHTTPClient returns a client for endpointURL (e.g. "http://localhost:5000").
// timeout bounds every request; zero means no client-side limit.
func NewHTTPClient(endpointURL string, timeout time.Duration) (*HTTPClient, error) {
	endpointURL = strings.TrimRight(strings.TrimSpace(endpointURL), "/")
	if endpointURL == "" {
		return nil, errors.New("empty endpoint url")
	}
	return &HTTPClient{
		endpointURL: endpointURL,
		http:        &http.Client{Timeout: timeout},
	}, nil
}

// Ping checks GET /health.
func (c *HTTPClient) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpointURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return c.mapError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return readAPIError(resp)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// Recommend posts sample to /predict. Confidences in the answer are clamped
// to [0,1].
func (c *HTTPClient) Recommend(ctx context.Context, sample models.SoilSample) (*models.Recommendation, error) {
	body, err := json.Marshal(sample)
	if err != nil {
		return nil, fmt.Errorf("encode sample: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpointURL+"/predict", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, c.mapError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, readAPIError(resp)
	}

	var rec models.Recommendation
	if err := json.NewDecoder(resp.Body).Decode(&rec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	if rec.Primary.Crop == "" {
		return nil, fmt.Errorf("%w: no primary recommendation", ErrBadResponse)
	}
	rec.Normalize()
	return &rec, nil
}

// Close releases idle connections.
func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

// mapError turns transport failures into ErrUnavailable, keeping context
// cancellation visible to the caller.
func (c *HTTPClient) mapError(err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}

func readAPIError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}

	b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var payload struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(b, &payload) == nil && payload.Error != "" {
		apiErr.Message = payload.Error
	} else {
		apiErr.Message = strings.TrimSpace(string(b))
	}
	return apiErr
}
