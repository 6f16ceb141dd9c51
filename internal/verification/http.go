package verification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
)

// maxBodyBytes caps how much of the registry response is read.
const maxBodyBytes = 1 << 20

// HTTPVerifier queries a registry exposing GET {baseURL}?cpf={digits}.
//
// A 2xx JSON object without an "error" member means the CPF exists. A 2xx
// object carrying a top-level "error" member is the registry's way of saying
// it does not. "error" keys nested deeper, or appearing inside string
// values, are data and do not deny the CPF.
type HTTPVerifier struct {
	baseURL string
	client  *http.Client
}

// NewHTTPVerifier builds a verifier on top of client. The client's Timeout
// is the bound on every call.
func NewHTTPVerifier(baseURL string, client *http.Client) *HTTPVerifier {
	return &HTTPVerifier{baseURL: baseURL, client: client}
}

func (v *HTTPVerifier) Verify(ctx context.Context, cpf string) (bool, error) {
	u, err := url.Parse(v.baseURL)
	if err != nil {
		return false, &Error{Category: CategoryUnavailable, Underlying: fmt.Errorf("parse base url: %w", err)}
	}
	q := u.Query()
	q.Set("cpf", cpf)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return false, &Error{Category: CategoryUnavailable, Underlying: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := v.client.Do(req)
	if err != nil {
		return false, &Error{Category: transportCategory(err), Underlying: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return false, &Error{Category: CategoryUnavailable, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return false, &Error{Category: transportCategory(err), StatusCode: resp.StatusCode, Underlying: err}
	}

	return parseRegistryResponse(resp.StatusCode, body)
}

func parseRegistryResponse(status int, body []byte) (bool, error) {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return false, &Error{Category: CategoryBadResponse, StatusCode: status, Underlying: err}
	}
	if payload == nil {
		return false, &Error{Category: CategoryBadResponse, StatusCode: status, Underlying: errors.New("empty registry payload")}
	}

	if _, denied := payload["error"]; denied {
		return false, nil
	}
	return true, nil
}

func transportCategory(err error) Category {
	if errors.Is(err, context.DeadlineExceeded) {
		return CategoryTimeout
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return CategoryTimeout
	}
	return CategoryUnavailable
}
