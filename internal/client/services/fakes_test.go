package services

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/docspace/internal/client/client"
	"github.com/dmitrijs2005/docspace/internal/client/models"
)

var _ client.Client = (*fakeClient)(nil)

// fakeClient records calls in order. Unset funcs panic, which flags
// unexpected calls.
type fakeClient struct {
	mu    sync.Mutex
	calls []string

	registerFn func(username, email, password string) error
	loginFn    func(username, password string) (*models.LoginResult, error)
	profileFn  func() (*models.UserProfile, error)
	listFn     func() ([]models.Document, error)
	listCtxFn  func(ctx context.Context) ([]models.Document, error)
	uploadFn   func(title, fileName, mimeType string, data []byte) (models.ID, error)
	getFn      func(id models.ID) (*models.Document, error)
	exportFn   func(id models.ID) ([]byte, error)
	deleteFn   func(id models.ID) error
	deleteAcct func() error
}

func (f *fakeClient) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
}

func (f *fakeClient) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeClient) Register(ctx context.Context, username, email, password string) error {
	f.record("register")
	return f.registerFn(username, email, password)
}

func (f *fakeClient) Login(ctx context.Context, username, password string) (*models.LoginResult, error) {
	f.record("login")
	return f.loginFn(username, password)
}

func (f *fakeClient) Profile(ctx context.Context) (*models.UserProfile, error) {
	f.record("profile")
	return f.profileFn()
}

func (f *fakeClient) ListDocuments(ctx context.Context) ([]models.Document, error) {
	f.record("list")
	if f.listCtxFn != nil {
		return f.listCtxFn(ctx)
	}
	return f.listFn()
}

func (f *fakeClient) Upload(ctx context.Context, title, fileName, mimeType string, data []byte) (models.ID, error) {
	f.record("upload")
	return f.uploadFn(title, fileName, mimeType, data)
}

func (f *fakeClient) GetDocument(ctx context.Context, id models.ID) (*models.Document, error) {
	f.record("get")
	return f.getFn(id)
}

func (f *fakeClient) Export(ctx context.Context, id models.ID) ([]byte, error) {
	f.record("export")
	return f.exportFn(id)
}

func (f *fakeClient) DeleteDocument(ctx context.Context, id models.ID) error {
	f.record("delete")
	return f.deleteFn(id)
}

func (f *fakeClient) DeleteAccount(ctx context.Context) error {
	f.record("delete_account")
	return f.deleteAcct()
}

// sinkFunc adapts a func to export.Sink.
type sinkFunc func(ctx context.Context, name string, data []byte) (string, error)

func (f sinkFunc) Save(ctx context.Context, name string, data []byte) (string, error) {
	return f(ctx, name, data)
}
