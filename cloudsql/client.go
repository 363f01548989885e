package cloudsql

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"runtime"

	"code.cloudfoundry.org/lager/v3"
	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	ProductName        = "replica-autoscaler"
	ScopeCloudPlatform = "https://www.googleapis.com/auth/cloud-platform"
)

// Version is set at build time.
var Version = "dev"

func GetUserAgent() string {
	return fmt.Sprintf("%s/%s Go/%s %s/%s", ProductName, Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// Client is the authenticated, retrying transport shared by the Admin and
// Monitoring API clients.
type Client struct {
	logger     lager.Logger
	conf       Config
	httpClient *http.Client
	userAgent  string
}

func NewClient(ctx context.Context, conf Config, logger lager.Logger) (*Client, error) {
	var transport http.RoundTripper = http.DefaultTransport.(*http.Transport).Clone()
	if !conf.SkipAuth {
		tokenSource, err := google.DefaultTokenSource(ctx, ScopeCloudPlatform)
		if err != nil {
			return nil, fmt.Errorf("failed to find application default credentials: %w", err)
		}
		transport = &oauth2.Transport{Source: tokenSource, Base: transport}
	} else {
		logger.Info("skipping-google-authentication")
	}

	return &Client{
		logger:     logger,
		conf:       conf,
		httpClient: RetryClient(conf, &http.Client{Transport: DrainingTransport{transport}, Timeout: conf.RequestTimeout}, logger),
		userAgent:  GetUserAgent(),
	}, nil
}

func RetryClient(conf Config, client *http.Client, logger lager.Logger) *http.Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = conf.MaxRetries
	if conf.MaxRetryWait != 0 {
		retryClient.RetryWaitMax = conf.MaxRetryWait
	}
	retryClient.Logger = RetryLogger{logger.Session("cloudsql-api-retry")}
	retryClient.HTTPClient = client
	retryClient.ErrorHandler = func(resp *http.Response, err error, numTries int) (*http.Response, error) {
		return resp, err
	}
	return retryClient.StandardClient()
}

func (c *Client) get(ctx context.Context, url string, out any) error {
	return c.send(ctx, http.MethodGet, url, nil, out)
}

func (c *Client) post(ctx context.Context, url string, body any, out any) error {
	return c.send(ctx, http.MethodPost, url, body, out)
}

func (c *Client) delete(ctx context.Context, url string, out any) error {
	return c.send(ctx, http.MethodDelete, url, nil, out)
}

func (c *Client) send(ctx context.Context, method string, url string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal %s body: %w", method, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("%s %s failed: %w", method, url, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s failed: %w", method, url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 300 {
		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("failed to read response[%d]: %w", resp.StatusCode, err)
		}
		return NewAPIError(method, url, resp.StatusCode, respBody)
	}

	if out == nil {
		return nil
	}
	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed unmarshalling %T: %w", out, err)
	}
	return nil
}
