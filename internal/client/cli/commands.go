package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/docspace/internal/client/client"
	"github.com/dmitrijs2005/docspace/internal/client/models"
	"github.com/dmitrijs2005/docspace/internal/client/validation"
	"github.com/dmitrijs2005/docspace/internal/common"
)

// Register prompts for username, email, password and confirmation and
// creates an account. It does not log in.
func (a *App) Register(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.reader, "Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	confirmation, err := getPassword(a.reader, "Confirm password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirmation)

	form := models.RegisterForm{
		Username:        username,
		Email:           email,
		Password:        string(password),
		ConfirmPassword: string(confirmation),
	}
	if err := a.session.Register(ctx, form); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Registration successful, you can log in now.")
	return nil
}

// Login prompts for credentials, logs in and loads the document list.
func (a *App) Login(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.reader, "Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	profile, err := a.session.Login(ctx, username, string(password))
	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			return errors.New("invalid username or password")
		}
		return err
	}

	fmt.Fprintf(a.out, "Welcome, %s!\n", profile.Username)
	if err := a.docs.Refresh(ctx); err != nil {
		return fmt.Errorf("logged in, but loading documents failed: %w", err)
	}
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	s := a.session.Session()
	if !s.IsAuthenticated() {
		fmt.Fprintln(a.out, "Not logged in.")
		return nil
	}
	printProfile(a.out, *s.Profile)
	return nil
}

// List prints the cached documents without contacting the service.
func (a *App) List(ctx context.Context) error {
	printDocuments(a.out, a.docs.Documents())
	return nil
}

func (a *App) Refresh(ctx context.Context) error {
	if err := a.docs.Refresh(ctx); err != nil {
		return err
	}
	printDocuments(a.out, a.docs.Documents())
	return nil
}

func (a *App) Search(ctx context.Context, query string) error {
	printDocuments(a.out, a.docs.Search(query))
	return nil
}

// Upload reads the image at path and uploads it. The size is checked before
// the file is read.
func (a *App) Upload(ctx context.Context, path, title string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	if err := validation.CheckSize(info.Size()); err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Uploading and analysing, this can take a while...")
	id, err := a.docs.Upload(ctx, models.UploadRequest{
		Title:    title,
		FileName: filepath.Base(path),
		Data:     data,
	})
	if id != "" {
		fmt.Fprintf(a.out, "Uploaded document %s.\n", id)
	}
	if err != nil {
		return err
	}

	printDocuments(a.out, a.docs.Documents())
	return nil
}

func (a *App) Show(ctx context.Context, id string) error {
	doc, err := a.docs.Get(ctx, models.ID(id))
	if err != nil {
		return err
	}
	printDocument(a.out, *doc)
	return nil
}

// Export saves the text export of a document to the export directory, or to
// the configured S3 bucket when target is "s3".
func (a *App) Export(ctx context.Context, id, target string) error {
	sink, err := a.sink(ctx, target)
	if err != nil {
		return err
	}

	loc, err := a.docs.Export(ctx, models.ID(id), sink)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Exported to", loc)
	return nil
}

func (a *App) Delete(ctx context.Context, id string) error {
	ok, err := confirm(a.reader, fmt.Sprintf("Delete document %s?", id), a.out)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(a.out, "Cancelled.")
		return nil
	}

	if err := a.docs.Remove(ctx, models.ID(id)); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Deleted.")
	return nil
}

// DeleteAccount asks twice before deleting the account and all documents.
func (a *App) DeleteAccount(ctx context.Context) error {
	prompts := []string{
		"Delete your account and all documents?",
		"This cannot be undone. Are you absolutely sure?",
	}
	for _, p := range prompts {
		ok, err := confirm(a.reader, p, a.out)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(a.out, "Cancelled.")
			return nil
		}
	}

	if err := a.session.DeleteAccount(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Account deleted.")
	return nil
}
