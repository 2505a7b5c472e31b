package enhance

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jonathan/resume-builder/internal/types"
)

// Network failure response fields.
const (
	MsgNetwork   = "Network error occurred"
	ErrNetworkUI = "Failed to connect to server"
)

// Client calls a remote text-enhancer API.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient returns a client for the API at baseURL, e.g. "http://localhost:8080".
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

// Enhance posts text to the general or section endpoint. Transport and decode
// failures come back as a Success=false response, never as an error.
func (c *Client) Enhance(ctx context.Context, text, sectionType string) (*types.EnhanceResponse, error) {
	endpoint := "/api/text-enhancer/enhance"
	if SectionType(sectionType).IsResumeSection() {
		endpoint = "/api/text-enhancer/enhance-resume-section"
	}

	body, err := json.Marshal(types.EnhanceRequest{Text: text, SectionType: sectionType})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return networkError(), nil
	}
	defer resp.Body.Close()

	var out types.EnhanceResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return networkError(), nil
	}
	if resp.StatusCode >= 300 {
		out.Success = false
	}
	return &out, nil
}

func networkError() *types.EnhanceResponse {
	return &types.EnhanceResponse{Success: false, Message: MsgNetwork, Error: ErrNetworkUI}
}
