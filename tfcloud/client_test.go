package tfcloud

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewClient(t *testing.T) {
	t.Run("reject a missing token", func(t *testing.T) {
		_, err := NewClient(&Config{})

		assert.ErrorIs(t, err, ErrMissingToken)
	})

	t.Run("default the address", func(t *testing.T) {
		client, err := NewClient(&Config{Token: "12345"})
		if err != nil {
			t.Fatal(err)
		}

		assert.Equal(t, DefaultAddress, client.config.Address)
	})
}

func TestRequestError(t *testing.T) {
	ctx := context.Background()

	mux := http.NewServeMux()
	server := httptest.NewServer(mux)

	t.Cleanup(server.Close)

	mux.HandleFunc("/api/v2/organizations/missing/workspaces", testServerResHandler(t, 404, `{"errors":[{"status":"404","title":"not found"}]}`))

	client := newTestClient(t, server.URL)

	_, err := client.ListWorkspaces(ctx, "missing")

	var reqErr *RequestError

	assert.True(t, errors.As(err, &reqErr))
	assert.Equal(t, 404, reqErr.StatusCode)
	assert.Equal(t, http.MethodGet, reqErr.Method)
	assert.Contains(t, reqErr.Body, "not found")
}

func TestRequestHeaders(t *testing.T) {
	ctx := context.Background()

	var gotAuth, gotContentType string

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v2/organizations/org/workspaces", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")

		testServerResHandler(t, 200, `{"data":[]}`)(w, r)
	})

	server := httptest.NewServer(mux)

	t.Cleanup(server.Close)

	client := newTestClient(t, server.URL)

	if _, err := client.ListWorkspaces(ctx, "org"); err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, "Bearer 12345", gotAuth)
	assert.Equal(t, ContentType, gotContentType)
}
