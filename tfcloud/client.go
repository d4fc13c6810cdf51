package tfcloud

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"

	cleanhttp "github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-hclog"
)

const apiPrefix = "/api/v2"

// Client talks to the Terraform Cloud v2 API. Every method issues exactly one
// synchronous request and either unwraps the response envelope's data member
// or, for deletes, returns the body untouched.
type Client struct {
	config *Config
	http   *http.Client
	log    hclog.Logger
}

// NewClient validates the configuration and returns a ready client.
func NewClient(config *Config) (*Client, error) {
	if config.Token == "" {
		return nil, ErrMissingToken
	}

	if config.Address == "" {
		config.Address = DefaultAddress
	}

	return &Client{
		config: config,
		http:   cleanhttp.DefaultClient(),
		log:    hclog.Default().Named("tfcloud"),
	}, nil
}

func (c *Client) newRequest(ctx context.Context, method string, path string, body interface{}) (*http.Request, error) {
	var buf io.Reader

	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}

		buf = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.config.Address+apiPrefix+path, buf)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+c.config.Token)
	req.Header.Set("Content-Type", ContentType)

	return req, nil
}

// do sends the request. When out is non-nil the 2xx response body is decoded
// into it; the raw body is returned either way. The token never reaches the
// logs.
func (c *Client) do(req *http.Request, out interface{}) ([]byte, error) {
	c.log.Debug("sending request", "method", req.Method, "url", req.URL.String())

	res, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}

	defer res.Body.Close()

	b, err := ioutil.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, &RequestError{
			Method:     req.Method,
			URL:        req.URL.String(),
			StatusCode: res.StatusCode,
			Body:       string(b),
		}
	}

	if out != nil {
		if err := json.Unmarshal(b, out); err != nil {
			return nil, fmt.Errorf("failed to decode response body: %w", err)
		}
	}

	return b, nil
}

// delete issues a DELETE and returns whatever the transport returned,
// unprocessed.
func (c *Client) delete(ctx context.Context, path string) ([]byte, error) {
	req, err := c.newRequest(ctx, http.MethodDelete, path, nil)
	if err != nil {
		return nil, err
	}

	return c.do(req, nil)
}

// requireNonEmpty guards identifier arguments before a URL is built from them.
func requireNonEmpty(name string, value string) error {
	if value == "" {
		return &ValidationError{Err: errors.New(name + " must not be empty")}
	}

	return nil
}
