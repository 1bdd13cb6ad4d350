// Package netx fetches objects through presigned storage URLs.
package netx

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
)

var ErrUnexpectedStatus = errors.New("unexpected status")

// MaxObjectSize caps how much Download reads from a response body.
const MaxObjectSize = 4 << 20

// Download GETs url with client (http.DefaultClient when nil) and returns
// the body. Any status other than 200 is an error wrapping
// ErrUnexpectedStatus.
func Download(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: %s; body: %s", ErrUnexpectedStatus, resp.Status, string(b))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxObjectSize+1))
	if err != nil {
		return nil, err
	}
	if len(body) > MaxObjectSize {
		return nil, fmt.Errorf("object larger than %d bytes", MaxObjectSize)
	}
	return body, nil
}
