package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/docspace/internal/client/client"
	"github.com/dmitrijs2005/docspace/internal/client/gate"
	"github.com/dmitrijs2005/docspace/internal/client/models"
	"github.com/dmitrijs2005/docspace/internal/client/services"
	"github.com/dmitrijs2005/docspace/internal/client/validation"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	Session() models.Session
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	List(ctx context.Context) error
	Refresh(ctx context.Context) error
	Search(ctx context.Context, query string) error
	Upload(ctx context.Context, path, title string) error
	Show(ctx context.Context, id string) error
	Export(ctx context.Context, id, target string) error
	Delete(ctx context.Context, id string) error
	DeleteAccount(ctx context.Context) error
}

// commandRoutes maps commands to the screen they belong to. Commands not
// listed here (help, exit) are always allowed.
var commandRoutes = map[string]string{
	"register":      gate.RouteRegister,
	"login":         gate.RouteLogin,
	"logout":        gate.RouteDashboard,
	"whoami":        gate.RouteDashboard,
	"list":          gate.RouteDashboard,
	"l":             gate.RouteDashboard,
	"refresh":       gate.RouteDashboard,
	"search":        gate.RouteDashboard,
	"upload":        gate.RouteDashboard,
	"show":          gate.RouteDashboard,
	"export":        gate.RouteDashboard,
	"delete":        gate.RouteDashboard,
	"deleteaccount": gate.RouteDashboard,
}

// runREPL starts a simple read–eval–print loop for the docspace CLI.
//
// It reads a line from reader, parses the first token as the command, asks
// the access gate whether the command's screen is reachable in the current
// session and dispatches to methods on 'a'. The loop exits on EOF or when the
// user types "exit" or "quit".
//
// Errors returned by command handlers are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("docs %s > ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if route, ok := commandRoutes[cmd]; ok {
			if !allowed(a.Session(), route) {
				continue
			}
		}

		var cmdErr error
		switch cmd {
		case "help":
			if a.Session().IsAuthenticated() {
				printlnFn("Available commands: (l)ist, refresh, search <q>, upload <path> [title], show <id>, export <id> [s3], delete <id>, whoami, logout, deleteaccount, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			cmdErr = a.Register(ctx)

		case "login":
			cmdErr = a.Login(ctx)

		case "logout":
			cmdErr = a.Logout(ctx)

		case "whoami":
			cmdErr = a.WhoAmI(ctx)

		case "l", "list":
			cmdErr = a.List(ctx)

		case "refresh":
			cmdErr = a.Refresh(ctx)

		case "search":
			cmdErr = a.Search(ctx, strings.Join(args, " "))

		case "upload":
			if len(args) == 0 {
				printlnFn("Usage: upload <path> [title]")
				continue
			}
			cmdErr = a.Upload(ctx, args[0], strings.Join(args[1:], " "))

		case "show", "delete", "export":
			if len(args) == 0 {
				printlnFn(fmt.Sprintf("Usage: %s <id>", cmd))
				continue
			}
			switch cmd {
			case "show":
				cmdErr = a.Show(ctx, args[0])
			case "delete":
				cmdErr = a.Delete(ctx, args[0])
			default:
				target := ""
				if len(args) > 1 {
					target = args[1]
				}
				cmdErr = a.Export(ctx, args[0], target)
			}

		case "deleteaccount":
			cmdErr = a.DeleteAccount(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", describe(cmdErr))
		}
	}
}

// allowed applies the access gate and explains a refusal.
func allowed(s models.Session, route string) bool {
	d := gate.Decide(s, route)
	switch d.Kind {
	case gate.Allow:
		return true
	case gate.Loading:
		printlnFn("Checking your session, please wait...")
	case gate.Redirect:
		if d.Target == gate.RouteLogin {
			printlnFn("Please log in first (login or register).")
		} else {
			printlnFn("You are already logged in.")
		}
	}
	return false
}

// describe turns an error into a message for the user.
func describe(err error) string {
	var nerr *client.NetworkError
	switch {
	case errors.Is(err, validation.ErrValidation):
		var verr *validation.Error
		if errors.As(err, &verr) {
			return verr.Error()
		}
		return err.Error()
	case errors.Is(err, services.ErrNotAuthenticated):
		return "you are not logged in"
	case errors.Is(err, client.ErrUnavailable):
		return "server unavailable, check your connection"
	case errors.As(err, &nerr) && nerr.Message != "":
		return nerr.Message
	}
	return err.Error()
}
