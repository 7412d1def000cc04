package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/addlab/issuetrack/internal/daemon"
	"github.com/addlab/issuetrack/internal/model"
	"github.com/addlab/issuetrack/internal/report"
)

// Client is an HTTP client wrapper for communicating with the daemon.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a new Client targeting the given daemon host.
func NewClient(host string) *Client {
	return &Client{
		baseURL: host,
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Do executes an HTTP request to the daemon and returns the response.
// If body is non-nil it is JSON-encoded.
func (c *Client) Do(method, path string, body interface{}) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	url := c.baseURL + path
	req, err := http.NewRequest(method, url, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if strings.Contains(err.Error(), "connection refused") {
			return nil, fmt.Errorf("daemon not running at %s; start with: issuetrack serve", c.baseURL)
		}
		return nil, fmt.Errorf("request failed (is the daemon running?): %w", err)
	}
	return resp, nil
}

// decodeOrError reads the response body. If the status is not in the 2xx range
// it tries to parse an error message from the JSON body.
func decodeOrError(resp *http.Response, v interface{}) error {
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 300 {
		var errResp struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &errResp) == nil && errResp.Error != "" {
			return fmt.Errorf("daemon error (%d): %s", resp.StatusCode, errResp.Error)
		}
		return fmt.Errorf("daemon error (%d): %s", resp.StatusCode, string(data))
	}

	if v != nil {
		if err := json.Unmarshal(data, v); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// Health returns the daemon health payload.
func (c *Client) Health() (map[string]interface{}, error) {
	resp, err := c.Do("GET", "/health", nil)
	if err != nil {
		return nil, err
	}
	var health map[string]interface{}
	if err := decodeOrError(resp, &health); err != nil {
		return nil, err
	}
	return health, nil
}

// CreateIssue reports a new issue.
func (c *Client) CreateIssue(req daemon.CreateIssueRequest) (*model.Issue, error) {
	resp, err := c.Do("POST", "/issues", req)
	if err != nil {
		return nil, err
	}
	var iss model.Issue
	if err := decodeOrError(resp, &iss); err != nil {
		return nil, err
	}
	return &iss, nil
}

// ListIssues returns the issue table, filtered by the optional keyword.
func (c *Client) ListIssues(keyword string) (*daemon.IssueList, error) {
	path := "/issues"
	if keyword != "" {
		path += "?q=" + url.QueryEscape(keyword)
	}
	resp, err := c.Do("GET", path, nil)
	if err != nil {
		return nil, err
	}
	var list daemon.IssueList
	if err := decodeOrError(resp, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// Dashboard returns the analytics summary.
func (c *Client) Dashboard() (*report.Dashboard, error) {
	resp, err := c.Do("GET", "/dashboard", nil)
	if err != nil {
		return nil, err
	}
	var dash report.Dashboard
	if err := decodeOrError(resp, &dash); err != nil {
		return nil, err
	}
	return &dash, nil
}

// Vocab holds the fixed form vocabularies served by the daemon.
type Vocab struct {
	Categories    []string            `json:"categories"`
	Subcategories map[string][]string `json:"subcategories"`
	LabSections   []string            `json:"lab_sections"`
	Species       []string            `json:"species"`
}

// GetVocab returns the form vocabularies.
func (c *Client) GetVocab() (*Vocab, error) {
	resp, err := c.Do("GET", "/vocab", nil)
	if err != nil {
		return nil, err
	}
	var v Vocab
	if err := decodeOrError(resp, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// Export downloads the xlsx export. It returns the workbook bytes and
// the server-suggested filename.
func (c *Client) Export() ([]byte, string, error) {
	resp, err := c.Do("GET", "/issues/export", nil)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		data, _ := io.ReadAll(resp.Body)
		return nil, "", fmt.Errorf("daemon error (%d): %s", resp.StatusCode, string(data))
	}

	blob, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("read export: %w", err)
	}

	filename := "issues_backup.xlsx"
	if cd := resp.Header.Get("Content-Disposition"); cd != "" {
		if _, params, err := mime.ParseMediaType(cd); err == nil && params["filename"] != "" {
			filename = params["filename"]
		}
	}
	return blob, filename, nil
}
