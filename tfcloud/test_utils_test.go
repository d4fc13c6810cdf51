package tfcloud

import (
	"fmt"
	"io/ioutil"
	"net/http"
	"testing"
)

type capturedRequest struct {
	Method string
	Path   string
	Body   []byte
}

func testServerResHandler(t *testing.T, code int, resBody string) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(code)

		_, err := fmt.Fprint(w, resBody)
		if err != nil {
			t.Fatal(err)
		}
	}
}

func testServerCaptureHandler(t *testing.T, code int, resBody string, captured *[]capturedRequest) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		b, err := ioutil.ReadAll(r.Body)
		if err != nil {
			t.Fatal(err)
		}

		*captured = append(*captured, capturedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Body:   b,
		})

		w.WriteHeader(code)

		if _, err := fmt.Fprint(w, resBody); err != nil {
			t.Fatal(err)
		}
	}
}

func newTestClient(t *testing.T, serverURL string) *Client {
	client, err := NewClient(&Config{
		Address: serverURL,
		Token:   "12345",
	})
	if err != nil {
		t.Fatal(err)
	}

	return client
}
