package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/docspace/internal/client/models"
)

const (
	pathRegister      = "/auth/register"
	pathLogin         = "/auth/login"
	pathProfile       = "/auth/profile"
	pathDeleteAccount = "/auth/delete_account"
	pathDocuments     = "/documents"
	pathUpload        = "/upload"
	pathDocument      = "/document/"
	pathExport        = "/export/"
)

// HTTPClient implements Client over a Gateway.
type HTTPClient struct {
	gw *Gateway
}

func NewHTTPClient(gw *Gateway) *HTTPClient {
	return &HTTPClient{gw: gw}
}

func (c *HTTPClient) doJSON(ctx context.Context, method, path string, in any, authenticated bool) (*Response, error) {
	req := Request{Method: method, Path: path, Authenticated: authenticated}
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		req.Body = bytes.NewReader(b)
		req.ContentType = "application/json"
	}
	return c.gw.Do(ctx, req)
}

func (c *HTTPClient) Register(ctx context.Context, username, email, password string) error {
	body := map[string]string{"username": username, "password": password, "email": email}
	_, err := c.doJSON(ctx, http.MethodPost, pathRegister, body, false)
	return err
}

func (c *HTTPClient) Login(ctx context.Context, username, password string) (*models.LoginResult, error) {
	body := map[string]string{"username": username, "password": password}
	resp, err := c.doJSON(ctx, http.MethodPost, pathLogin, body, false)
	if err != nil {
		return nil, err
	}

	var out models.LoginResult
	if err := resp.DecodeJSON(&out); err != nil {
		return nil, err
	}
	if out.AccessToken == "" {
		return nil, &NetworkError{Kind: KindMalformed, Status: resp.Status, Message: "login response has no access token"}
	}
	return &out, nil
}

func (c *HTTPClient) Profile(ctx context.Context) (*models.UserProfile, error) {
	resp, err := c.doJSON(ctx, http.MethodGet, pathProfile, nil, true)
	if err != nil {
		return nil, err
	}

	var p models.UserProfile
	if err := resp.DecodeJSON(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) ListDocuments(ctx context.Context) ([]models.Document, error) {
	resp, err := c.doJSON(ctx, http.MethodGet, pathDocuments, nil, true)
	if err != nil {
		return nil, err
	}

	docs := make([]models.Document, 0)
	if err := resp.DecodeJSON(&docs); err != nil {
		return nil, err
	}
	return docs, nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// Upload sends the image as multipart/form-data with fields "title" and
// "file" and returns the id the service assigned.
func (c *HTTPClient) Upload(ctx context.Context, title, fileName, mimeType string, data []byte) (models.ID, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	if err := mw.WriteField("title", title); err != nil {
		return "", fmt.Errorf("encode upload: %w", err)
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, quoteEscaper.Replace(fileName)))
	h.Set("Content-Type", mimeType)
	part, err := mw.CreatePart(h)
	if err != nil {
		return "", fmt.Errorf("encode upload: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("encode upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("encode upload: %w", err)
	}

	resp, err := c.gw.Do(ctx, Request{
		Method:        http.MethodPost,
		Path:          pathUpload,
		Body:          &buf,
		ContentType:   mw.FormDataContentType(),
		Authenticated: true,
	})
	if err != nil {
		return "", err
	}

	if len(bytes.TrimSpace(resp.Body)) == 0 {
		return "", nil
	}

	var created struct {
		DocID models.ID `json:"doc_id"`
		ID    models.ID `json:"id"`
	}
	if err := resp.DecodeJSON(&created); err != nil {
		return "", err
	}
	if created.DocID != "" {
		return created.DocID, nil
	}
	return created.ID, nil
}

func (c *HTTPClient) GetDocument(ctx context.Context, id models.ID) (*models.Document, error) {
	resp, err := c.doJSON(ctx, http.MethodGet, pathDocument+url.PathEscape(id.String()), nil, true)
	if err != nil {
		return nil, err
	}

	var d models.Document
	if err := resp.DecodeJSON(&d); err != nil {
		return nil, err
	}
	return &d, nil
}

// Export returns the document's extracted text as the raw attachment bytes.
func (c *HTTPClient) Export(ctx context.Context, id models.ID) ([]byte, error) {
	resp, err := c.doJSON(ctx, http.MethodGet, pathExport+url.PathEscape(id.String()), nil, true)
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

func (c *HTTPClient) DeleteDocument(ctx context.Context, id models.ID) error {
	_, err := c.doJSON(ctx, http.MethodDelete, pathDocument+url.PathEscape(id.String()), nil, true)
	return err
}

func (c *HTTPClient) DeleteAccount(ctx context.Context) error {
	_, err := c.doJSON(ctx, http.MethodDelete, pathDeleteAccount, nil, true)
	return err
}
