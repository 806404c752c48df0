package validation

import (
	"bytes"
	"testing"

	"github.com/dmitrijs2005/docspace/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	pngHeader  = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")
	jpegHeader = []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00\x01\x01\x00\x00\x01\x00\x01\x00\x00")
)

func validForm() models.RegisterForm {
	return models.RegisterForm{
		Username:        "alice",
		Email:           "alice@example.com",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	}
}

func TestRegister(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(f *models.RegisterForm)
		field  string
	}{
		{name: "valid", mutate: func(f *models.RegisterForm) {}},
		{name: "short password", mutate: func(f *models.RegisterForm) { f.Password, f.ConfirmPassword = "ab", "ab" }, field: "Password"},
		{name: "mismatch", mutate: func(f *models.RegisterForm) { f.ConfirmPassword = "secret2" }, field: "ConfirmPassword"},
		{name: "short username", mutate: func(f *models.RegisterForm) { f.Username = "al" }, field: "Username"},
		{name: "long username", mutate: func(f *models.RegisterForm) { f.Username = "abcdefghijklmnopqrstu" }, field: "Username"},
		{name: "username symbols", mutate: func(f *models.RegisterForm) { f.Username = "al ice!" }, field: "Username"},
		{name: "unicode username", mutate: func(f *models.RegisterForm) { f.Username = "Jürgen2" }},
		{name: "cyrillic username", mutate: func(f *models.RegisterForm) { f.Username = "дмитрий" }},
		{name: "long unicode username", mutate: func(f *models.RegisterForm) { f.Username = "ääääääääääääääääääääa" }, field: "Username"},
		{name: "minimal email", mutate: func(f *models.RegisterForm) { f.Email = "a@b" }},
		{name: "bad email", mutate: func(f *models.RegisterForm) { f.Email = "not-an-email" }, field: "Email"},
		{name: "missing email", mutate: func(f *models.RegisterForm) { f.Email = "" }, field: "Email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validForm()
			tt.mutate(&f)

			err := Register(f)
			if tt.field == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrValidation)
			var verr *Error
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestLogin(t *testing.T) {
	require.NoError(t, Login("alice", "secret1"))
	require.ErrorIs(t, Login("  ", "secret1"), ErrValidation)
	require.ErrorIs(t, Login("alice", ""), ErrValidation)
}

func TestUpload_AcceptsPNGAndJPEG(t *testing.T) {
	mt, err := Upload(models.UploadRequest{Data: pngHeader})
	require.NoError(t, err)
	assert.Equal(t, "image/png", mt)

	mt, err = Upload(models.UploadRequest{Data: jpegHeader, MimeType: "image/jpeg"})
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", mt)
}

func TestUpload_Rejections(t *testing.T) {
	tooBig := append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{0}, MaxUploadBytes)...)

	tests := []struct {
		name string
		req  models.UploadRequest
	}{
		{name: "empty", req: models.UploadRequest{}},
		{name: "over limit", req: models.UploadRequest{Data: tooBig}},
		{name: "gif", req: models.UploadRequest{Data: []byte("GIF89a\x01\x00\x01\x00\x00\x00\x00")}},
		{name: "text", req: models.UploadRequest{Data: []byte("hello world")}},
		{name: "declared mismatch", req: models.UploadRequest{Data: pngHeader, MimeType: "image/jpeg"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Upload(tt.req)
			require.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestCheckSize_Boundary(t *testing.T) {
	require.NoError(t, CheckSize(MaxUploadBytes))
	err := CheckSize(MaxUploadBytes + 1)
	require.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "5.0 MiB")
}
