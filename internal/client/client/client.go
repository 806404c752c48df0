package client

import (
	"context"

	"github.com/dmitrijs2005/docspace/internal/client/models"
)

// Client is the typed API of the document analysis service.
type Client interface {
	Register(ctx context.Context, username, email, password string) error
	Login(ctx context.Context, username, password string) (*models.LoginResult, error)
	Profile(ctx context.Context) (*models.UserProfile, error)
	ListDocuments(ctx context.Context) ([]models.Document, error)
	Upload(ctx context.Context, title, fileName, mimeType string, data []byte) (models.ID, error)
	GetDocument(ctx context.Context, id models.ID) (*models.Document, error)
	Export(ctx context.Context, id models.ID) ([]byte, error)
	DeleteDocument(ctx context.Context, id models.ID) error
	DeleteAccount(ctx context.Context) error
}
