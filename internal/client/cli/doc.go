// Package cli provides the interactive docspace command-line client.
//
// It wires configuration, the stored credential, the service client and the
// two application services, then runs a REPL. Before the first prompt the
// stored credential (if any) is verified; every command is then checked
// against the session state by the access gate before it runs.
//
// Commands:
//   - register, login, logout, whoami
//   - list, refresh, search <query>
//   - upload <path> [title], show <id>, delete <id>
//   - export <id> [s3]
//   - deleteaccount (asks twice)
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
