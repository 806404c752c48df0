package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/docspace/internal/common"
	"github.com/dmitrijs2005/docspace/internal/logging"
	"github.com/google/uuid"
)

// CredentialSource yields the stored bearer credential, if any.
type CredentialSource interface {
	Get(ctx context.Context) (string, bool)
}

// Request describes one call to the service. Path is relative to the base URL.
type Request struct {
	Method        string
	Path          string
	Body          io.Reader
	ContentType   string
	Authenticated bool
}

// Response is a successful (2xx) reply with its body fully read.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// DecodeJSON unmarshals the body into v. A decode failure is a
// KindMalformed NetworkError.
func (r *Response) DecodeJSON(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return &NetworkError{Kind: KindMalformed, Status: r.Status, Message: "cannot decode response body", Err: err}
	}
	return nil
}

type Gateway struct {
	baseURL string
	http    *http.Client
	creds   CredentialSource
	log     logging.Logger
}

// NewGateway builds a Gateway. A nil httpClient means http.DefaultClient.
func NewGateway(baseURL string, httpClient *http.Client, creds CredentialSource, log logging.Logger) *Gateway {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if log == nil {
		log = logging.Discard()
	}
	return &Gateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		creds:   creds,
		log:     log,
	}
}

// Do performs r. Non-2xx statuses, transport failures and unreadable bodies
// come back as *NetworkError.
func (g *Gateway) Do(ctx context.Context, r Request) (*Response, error) {
	url := g.baseURL + "/" + strings.TrimLeft(r.Path, "/")

	req, err := http.NewRequestWithContext(ctx, r.Method, url, r.Body)
	if err != nil {
		return nil, &NetworkError{Kind: KindTransport, Message: err.Error(), Err: err}
	}

	requestID := uuid.NewString()
	req.Header.Set(common.RequestIDHeader, requestID)
	req.Header.Set("Accept", "application/json")
	if r.ContentType != "" {
		req.Header.Set("Content-Type", r.ContentType)
	}

	bearer := false
	if r.Authenticated && g.creds != nil {
		if token, ok := g.creds.Get(ctx); ok {
			req.Header.Set(common.AuthorizationHeader, common.BearerScheme+" "+token)
			bearer = true
		}
	}

	log := g.log.With("method", r.Method, "path", r.Path, "request_id", requestID)
	log.Debug(ctx, "sending request", "bearer", bearer)

	resp, err := g.http.Do(req)
	if err != nil {
		log.Warn(ctx, "request failed", "error", err)
		return nil, &NetworkError{Kind: KindTransport, Message: transportMessage(err), Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Warn(ctx, "reading response failed", "status", resp.StatusCode, "error", err)
		return nil, &NetworkError{Kind: KindTransport, Status: resp.StatusCode, Message: "reading response body: " + err.Error(), Err: err}
	}

	log.Debug(ctx, "response received", "status", resp.StatusCode, "bytes", len(body))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &NetworkError{
			Kind:    kindForStatus(resp.StatusCode),
			Status:  resp.StatusCode,
			Message: errorMessage(resp.StatusCode, body),
		}
	}

	return &Response{Status: resp.StatusCode, Header: resp.Header, Body: body}, nil
}

// errorMessage pulls the human-readable message out of an error body. The
// service uses {"error": ...}; its auth layer uses {"msg": ...}.
func errorMessage(status int, body []byte) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
		Msg     string `json:"msg"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		for _, m := range []string{payload.Error, payload.Message, payload.Msg} {
			if m != "" {
				return m
			}
		}
	}

	if text := strings.TrimSpace(string(body)); text != "" && len(text) <= 200 && !strings.HasPrefix(text, "<") {
		return text
	}
	return http.StatusText(status)
}

func transportMessage(err error) string {
	switch {
	case errors.Is(err, context.Canceled):
		return "request canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return "request timed out"
	default:
		return fmt.Sprintf("cannot reach server: %v", err)
	}
}
