// Package cli provides the interactive OTPKeeper command-line client.
//
// It wires configuration, the record store (a server over gRPC, or a local
// SQLite file), the account session and an interactive REPL. Typical flow:
// register once, log in, then list or watch live codes and manage accounts.
//
// Accounts whose envelope cannot be opened are listed with the code ERROR.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
