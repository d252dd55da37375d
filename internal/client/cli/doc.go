// Package cli provides the interactive LawLink command-line client.
//
// It wires configuration, the local session store, the REST API client, the
// realtime hub connection, and an interactive REPL whose command set depends
// on the role of the signed-in account. Typical flow: restore the persisted
// session, then execute user commands until exit.
//
// Key features:
//   - Register / Login / OTP verification / Logout
//   - Clients: browse lawyers, send enquiries, book consultations, rate
//   - Lawyers: review and accept or reject incoming enquiries
//   - Admins: moderate lawyers and clients, inspect activity logs
//   - Live chat and notifications over the realtime hub
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
