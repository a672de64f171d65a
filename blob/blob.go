// Package blob talks to the media blob store: bytes and a content type
// in, a public URL out. The store itself is an external collaborator.
package blob

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"cineapp/utils"
)

type Uploader interface {
	Upload(ctx context.Context, name, contentType string, data []byte) (string, error)
}

// HTTPStore uploads objects with a PUT to endpoint/name. The store
// answers with {"url": "..."}; an empty body means the object URL is
// the upload URL itself. Calls run through a circuit breaker so a dead
// blob store fails fast instead of stalling review submissions.
type HTTPStore struct {
	endpoint string
	client   *http.Client
	breaker  *utils.CircuitBreaker
}

func NewHTTPStore(endpoint string, timeout time.Duration) *HTTPStore {
	return &HTTPStore{
		endpoint: strings.TrimRight(endpoint, "/"),
		client:   &http.Client{Timeout: timeout},
		breaker:  utils.NewCircuitBreaker("blob-store"),
	}
}

func (s *HTTPStore) Upload(ctx context.Context, name, contentType string, data []byte) (string, error) {
	objectURL := s.endpoint + "/" + strings.TrimLeft(name, "/")

	var resultURL string
	err := s.breaker.Execute(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPut, objectURL, bytes.NewReader(data))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", contentType)

		resp, err := s.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			return fmt.Errorf("blob store returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
		}

		var reply struct {
			URL string `json:"url"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&reply); err == nil && reply.URL != "" {
			resultURL = reply.URL
		} else {
			resultURL = objectURL
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return resultURL, nil
}
