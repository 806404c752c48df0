package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/docspace/internal/client/client"
	"github.com/dmitrijs2005/docspace/internal/client/config"
	"github.com/dmitrijs2005/docspace/internal/client/credstore"
	"github.com/dmitrijs2005/docspace/internal/client/export"
	"github.com/dmitrijs2005/docspace/internal/client/models"
	"github.com/dmitrijs2005/docspace/internal/client/services"
	"github.com/dmitrijs2005/docspace/internal/client/storage"
	"github.com/dmitrijs2005/docspace/internal/logging"
	"github.com/dmitrijs2005/docspace/internal/netx"
)

// getSimpleText, getPassword and confirm are indirections used to facilitate
// testing. They point to interactive input helpers and can be swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	confirm       = Confirm
)

// newS3Sink is a seam so tests do not need AWS configuration.
var newS3Sink = func(ctx context.Context, cfg *config.Config) (export.Sink, error) {
	return export.NewS3Sink(ctx, export.S3Options{
		Bucket:    cfg.S3Bucket,
		Region:    cfg.S3Region,
		Endpoint:  cfg.S3Endpoint,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
	})
}

// App is the interactive client: the services plus the terminal they talk to.
type App struct {
	config  *config.Config
	session services.SessionService
	docs    services.DocumentService
	dirSink export.Sink
	s3Sink  export.Sink
	log     logging.Logger
	reader  *bufio.Reader
	out     io.Writer
	db      *sql.DB
}

// NewApp wires the client from c. The caller must call Close.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	log := logging.NewTextLogger(os.Stderr, logging.ParseLevel(c.LogLevel))

	var (
		store credstore.Store
		db    *sql.DB
	)
	if c.Ephemeral {
		store = credstore.NewMemoryStore()
	} else {
		var err error
		db, err = storage.Open(ctx, c.DBPath)
		if err != nil {
			log.Error(ctx, "error initializing database", "path", c.DBPath, "error", err)
			return nil, err
		}
		store = credstore.NewSQLiteStore(db, log)
	}

	gw := client.NewGateway(c.ServerURL, netx.NewHTTPClient(c.RequestTimeout), store, log)
	api := client.NewHTTPClient(gw)

	docs := services.NewDocumentService(api, log)
	session := services.NewSessionService(api, store, log,
		services.WithListener(func(s models.Session) {
			if s.State == models.StateUnauthenticated {
				docs.Reset()
			}
		}),
	)

	return &App{
		config:  c,
		session: session,
		docs:    docs,
		dirSink: export.NewDirSink(c.ExportDir),
		log:     log,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
		db:      db,
	}, nil
}

// Run verifies the stored credential, loads the document list when logged
// in and runs the REPL until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to docspace CLI (type 'help' for commands)")

	if err := a.session.Start(ctx); err != nil {
		switch {
		case errors.Is(err, client.ErrUnauthorized), errors.Is(err, client.ErrNotFound):
			fmt.Fprintln(a.out, "Your saved session has expired, please log in again.")
		default:
			fmt.Fprintln(a.out, "Could not verify your saved session:", describe(err))
		}
	}
	if a.session.Session().IsAuthenticated() {
		if err := a.docs.Refresh(ctx); err != nil {
			fmt.Fprintln(a.out, "Could not load documents:", describe(err))
		}
	}

	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

func (a *App) Session() models.Session {
	return a.session.Session()
}

func (a *App) getStatus() string {
	s := a.session.Session()
	if s.IsAuthenticated() {
		return fmt.Sprintf("(%s)", s.Profile.Username)
	}
	return fmt.Sprintf("(%s)", s.State)
}

func (a *App) sink(ctx context.Context, name string) (export.Sink, error) {
	switch name {
	case "", "local":
		return a.dirSink, nil
	case "s3":
		if a.s3Sink != nil {
			return a.s3Sink, nil
		}
		if a.config == nil || !a.config.S3Enabled() {
			return nil, export.ErrNoBucket
		}
		s, err := newS3Sink(ctx, a.config)
		if err != nil {
			return nil, err
		}
		a.s3Sink = s
		return s, nil
	}
	return nil, fmt.Errorf("unknown export target %q (use local or s3)", name)
}
