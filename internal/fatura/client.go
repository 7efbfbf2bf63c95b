package fatura

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

// Client handles API requests
type Client struct {
	Config     *Config
	HTTPClient *http.Client
}

// apiError is the backend's error envelope.
type apiError struct {
	Message string `json:"message"`
}

// NewClient creates a new API client
func NewClient(config *Config) *Client {
	return &Client{
		Config: config,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Request makes an API request and decodes the response into out (which may
// be nil when the caller does not need the body).
func (c *Client) Request(method, endpoint string, body interface{}, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	fullURL := fmt.Sprintf("%s/api/%s", c.Config.APIURL, endpoint)
	req, err := http.NewRequest(method, fullURL, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.Config.APIToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var apiErr apiError
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Message != "" {
			return fmt.Errorf("API error: %s", apiErr.Message)
		}
		return fmt.Errorf("API error: %s", resp.Status)
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to parse response: %s", string(respBody))
		}
	}

	return nil
}

// CmdPing tests the connection
func (c *Client) CmdPing() error {
	fmt.Printf("%sTesting connection to backend...%s\n", Blue, Reset)

	var me struct {
		Username string `json:"username"`
	}
	if err := c.Request("GET", "auth/me", nil, &me); err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}

	fmt.Printf("%s✓ Connection successful%s\n", Green, Reset)
	if me.Username != "" {
		fmt.Printf("  Authenticated as: %s%s%s\n", Yellow, me.Username, Reset)
	}
	fmt.Printf("  URL: %s\n", c.Config.APIURL)
	return nil
}

// CmdConfig shows current configuration
func (c *Client) CmdConfig() error {
	fmt.Printf("%sCurrent configuration:%s\n", Blue, Reset)
	fmt.Printf("  API URL: %s\n", c.Config.APIURL)
	if len(c.Config.APIToken) > 8 {
		fmt.Printf("  API Token: %s...\n", c.Config.APIToken[:8])
	} else {
		fmt.Printf("  API Token: ****\n")
	}
	fmt.Printf("  Layout DB: %s\n", c.Config.LayoutDB)
	fmt.Printf("  Brand: %s\n", c.Config.Brand)
	return nil
}

// FormatCurrency renders an amount for list rows and footers.
func FormatCurrency(amount decimal.Decimal) string {
	return amount.StringFixed(2) + " ₼"
}
