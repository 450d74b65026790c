package indexnow

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/Sriram-PR/index-now/pkg/models"
	"github.com/Sriram-PR/index-now/pkg/utils"
)

// MaxURLsPerRequest is the protocol limit on urlList entries in a single POST
const MaxURLsPerRequest = 10000

// maxResponseSnippet bounds how much of an error response body is logged
const maxResponseSnippet = 4 << 10

// Payload is the JSON body of an IndexNow submission
type Payload struct {
	Host        string   `json:"host"`
	Key         string   `json:"key"`
	KeyLocation string   `json:"keyLocation,omitempty"`
	URLList     []string `json:"urlList"`
}

// Client submits URLs to IndexNow endpoints
type Client struct {
	httpClient *http.Client
	userAgent  string
	log        *logrus.Entry
}

// NewClient creates a new Client using the shared HTTP client
func NewClient(httpClient *http.Client, userAgent string, log logrus.FieldLogger) *Client {
	return &Client{
		httpClient: httpClient,
		userAgent:  userAgent,
		log:        log.WithField("component", "indexnow_client"),
	}
}

// SubmitURL submits a single URL
func (c *Client) SubmitURL(ctx context.Context, auth models.Authentication, pageURL string, endpoint string) (int, error) {
	return c.SubmitURLs(ctx, auth, []string{pageURL}, endpoint)
}

// SubmitURLs posts urls to the endpoint (a search engine name or URL, see ResolveEndpoint)
// Lists longer than MaxURLsPerRequest are sent in consecutive batches; the first failing batch stops the submission
// Returns the status code of the last response. Invalid credentials or endpoint are returned before any request is made
func (c *Client) SubmitURLs(ctx context.Context, auth models.Authentication, urls []string, endpoint string) (int, error) {
	if err := auth.Validate(); err != nil {
		return 0, err
	}
	endpointURL, err := ResolveEndpoint(endpoint)
	if err != nil {
		return 0, err
	}
	submitLog := c.log.WithFields(logrus.Fields{"endpoint": endpointURL, "host": auth.Host})

	if len(urls) == 0 {
		submitLog.Warn("No URLs to submit")
		return http.StatusNoContent, nil
	}

	status := 0
	for start := 0; start < len(urls); start += MaxURLsPerRequest {
		end := start + MaxURLsPerRequest
		if end > len(urls) {
			end = len(urls)
		}
		status, err = c.post(ctx, submitLog, endpointURL, Payload{
			Host:        auth.Host,
			Key:         auth.APIKey,
			KeyLocation: auth.APIKeyLocation,
			URLList:     urls[start:end],
		})
		if err != nil {
			return status, err
		}
	}
	return status, nil
}

func (c *Client) post(ctx context.Context, submitLog *logrus.Entry, endpointURL string, payload Payload) (int, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return 0, fmt.Errorf("encoding IndexNow payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpointURL, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", utils.ErrRequestCreation, err)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		submitLog.WithField("error_category", utils.CategorizeError(err)).Errorf("IndexNow request failed: %v", err)
		return 0, err
	}
	defer resp.Body.Close()
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseSnippet))

	resLog := submitLog.WithFields(logrus.Fields{
		"status_code": resp.StatusCode,
		"url_count":   len(payload.URLList),
	})

	if IsSuccess(resp.StatusCode) {
		resLog.Infof("%d URL(s) were submitted successfully to this IndexNow API endpoint: %s", len(payload.URLList), endpointURL)
		resLog.Infof("Status code: %s", DescribeStatus(resp.StatusCode))
		return resp.StatusCode, nil
	}

	resLog.Warnf("Failure. No URL(s) were submitted to this IndexNow API endpoint: %s", endpointURL)
	resLog.Warnf("Status code: %s. Response: %s", DescribeStatus(resp.StatusCode), bytes.TrimSpace(snippet))

	switch {
	case resp.StatusCode >= 500:
		return resp.StatusCode, fmt.Errorf("%w: status %d %s", utils.ErrServerHTTPError, resp.StatusCode, resp.Status)
	case resp.StatusCode >= 400:
		return resp.StatusCode, fmt.Errorf("%w: status %d %s", utils.ErrClientHTTPError, resp.StatusCode, resp.Status)
	default:
		return resp.StatusCode, fmt.Errorf("%w: status %d %s", utils.ErrOtherHTTPError, resp.StatusCode, resp.Status)
	}
}
