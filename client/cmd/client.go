package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/jbvmio/scripthub/catalog"
)

// ScriptClient calls the scripthub HTTP API.
type ScriptClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewScriptClient returns a client for baseURL. Runs have no deadline, so the
// HTTP client has no timeout either.
func NewScriptClient(baseURL string) *ScriptClient {
	return &ScriptClient{
		BaseURL:    strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{},
	}
}

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Message    string
	Details    string
	Output     string
}

func (e *APIError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("API error (%d): %s: %s", e.StatusCode, e.Message, e.Details)
	}
	return fmt.Sprintf("API error (%d): %s", e.StatusCode, e.Message)
}

type runRequest struct {
	ScriptPath string   `json:"scriptPath"`
	Args       []string `json:"args"`
}

type runResponse struct {
	Success bool   `json:"success"`
	Output  string `json:"output"`
	Error   string `json:"error"`
	Details string `json:"details"`
}

// ListScripts sends GET /api/scripts.
func (c *ScriptClient) ListScripts() ([]catalog.Descriptor, error) {
	resp, err := c.HTTPClient.Get(c.BaseURL + "/api/scripts")
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, decodeAPIError(resp.StatusCode, body)
	}

	var scripts []catalog.Descriptor
	if err := json.Unmarshal(body, &scripts); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return scripts, nil
}

// RunScript sends POST /api/run-script and returns the script's stdout. A
// failed run is returned as an *APIError carrying the script's stderr in Output.
func (c *ScriptClient) RunScript(scriptPath string, args []string) (string, error) {
	if args == nil {
		args = []string{}
	}
	b, err := json.Marshal(runRequest{ScriptPath: scriptPath, Args: args})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := c.HTTPClient.Post(c.BaseURL+"/api/run-script", "application/json", bytes.NewReader(b))
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", decodeAPIError(resp.StatusCode, body)
	}

	var result runResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	return result.Output, nil
}

func decodeAPIError(status int, body []byte) error {
	var result runResponse
	if err := json.Unmarshal(body, &result); err != nil || result.Error == "" {
		return &APIError{StatusCode: status, Message: strings.TrimSpace(string(body))}
	}
	return &APIError{
		StatusCode: status,
		Message:    result.Error,
		Details:    result.Details,
		Output:     result.Output,
	}
}
