package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/lawlink/internal/client/models"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	can(required models.Role) bool

	Register(ctx context.Context) error
	Login(ctx context.Context) error
	VerifyOTP(ctx context.Context) error
	ResendOTP(ctx context.Context) error
	Logout(ctx context.Context) error

	ShowLawyer(ctx context.Context) error
	Enquire(ctx context.Context) error
	Book(ctx context.Context) error
	Rate(ctx context.Context) error

	Enquiries(ctx context.Context) error
	UpdateEnquiry(ctx context.Context) error

	Chat(ctx context.Context) error
	Notifications(ctx context.Context) error
	Watch(ctx context.Context) error
	MarkRead(ctx context.Context) error
	MarkAllRead(ctx context.Context) error

	AdminLawyers(ctx context.Context) error
	AdminClients(ctx context.Context) error
	VerifyLawyer(ctx context.Context) error
	EditLawyer(ctx context.Context) error
	SetClientStatus(ctx context.Context) error
	FlagClient(ctx context.Context) error
	AdminInspect(ctx context.Context) error
	ActivityLogs(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the LawLink CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn). The command set
// depends on the signed-in role:
//
//	Not logged in:
//	  - help           — show available commands
//	  - register       — create an account (client or lawyer)
//	  - login          — authenticate
//	  - verify         — confirm an account with a one-time code
//	  - resend         — request a new one-time code
//	  - exit | quit    — leave the program
//
//	Client:
//	  - lawyer         — show a lawyer's profile
//	  - enquire        — send an enquiry to a lawyer
//	  - book           — book a consultation
//	  - rate           — rate a lawyer
//
//	Lawyer:
//	  - enquiries      — list incoming enquiries
//	  - decide         — accept or reject an enquiry
//
//	Admin:
//	  - lawyers        — list lawyer accounts
//	  - clients        — list client accounts
//	  - verifylawyer   — change a lawyer's verification status
//	  - editlawyer     — update a lawyer's profile
//	  - clientstatus   — activate or deactivate a client
//	  - flag           — flag or unflag a client
//	  - inspect        — list an account's enquiries and consultations
//	  - logs           — inspect the moderation activity log
//
//	Any signed-in role:
//	  - chat           — live conversation with another user
//	  - notifications  — list notifications
//	  - watch          — follow notifications live
//	  - read           — mark one notification read
//	  - readall        — mark all notifications read
//	  - logout         — log out
//
// Any errors returned by command handlers are ignored here; handlers should
// log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("lawlink %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			printHelp(a)

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "verify":
			_ = a.VerifyOTP(ctx)

		case "resend":
			_ = a.ResendOTP(ctx)

		case "lawyer":
			if !requireRole(a, models.RoleClient) {
				continue
			}
			_ = a.ShowLawyer(ctx)

		case "enquire":
			if !requireRole(a, models.RoleClient) {
				continue
			}
			_ = a.Enquire(ctx)

		case "book":
			if !requireRole(a, models.RoleClient) {
				continue
			}
			_ = a.Book(ctx)

		case "rate":
			if !requireRole(a, models.RoleClient) {
				continue
			}
			_ = a.Rate(ctx)

		case "enquiries":
			if !requireRole(a, models.RoleLawyer) {
				continue
			}
			_ = a.Enquiries(ctx)

		case "decide":
			if !requireRole(a, models.RoleLawyer) {
				continue
			}
			_ = a.UpdateEnquiry(ctx)

		case "lawyers":
			if !requireRole(a, models.RoleAdmin) {
				continue
			}
			_ = a.AdminLawyers(ctx)

		case "clients":
			if !requireRole(a, models.RoleAdmin) {
				continue
			}
			_ = a.AdminClients(ctx)

		case "verifylawyer":
			if !requireRole(a, models.RoleAdmin) {
				continue
			}
			_ = a.VerifyLawyer(ctx)

		case "editlawyer":
			if !requireRole(a, models.RoleAdmin) {
				continue
			}
			_ = a.EditLawyer(ctx)

		case "inspect":
			if !requireRole(a, models.RoleAdmin) {
				continue
			}
			_ = a.AdminInspect(ctx)

		case "clientstatus":
			if !requireRole(a, models.RoleAdmin) {
				continue
			}
			_ = a.SetClientStatus(ctx)

		case "flag":
			if !requireRole(a, models.RoleAdmin) {
				continue
			}
			_ = a.FlagClient(ctx)

		case "logs":
			if !requireRole(a, models.RoleAdmin) {
				continue
			}
			_ = a.ActivityLogs(ctx)

		case "chat":
			if !requireRole(a, "") {
				continue
			}
			_ = a.Chat(ctx)

		case "notifications":
			if !requireRole(a, "") {
				continue
			}
			_ = a.Notifications(ctx)

		case "watch":
			if !requireRole(a, "") {
				continue
			}
			_ = a.Watch(ctx)

		case "read":
			if !requireRole(a, "") {
				continue
			}
			_ = a.MarkRead(ctx)

		case "readall":
			if !requireRole(a, "") {
				continue
			}
			_ = a.MarkAllRead(ctx)

		case "logout":
			if !requireRole(a, "") {
				continue
			}
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

// requireRole rejects the command with a message when the session lacks the
// required role. An empty role admits any authenticated session.
func requireRole(a execIface, required models.Role) bool {
	if a.can(required) {
		return true
	}
	if !a.isLoggedIn() {
		printlnFn("Please login first")
	} else {
		printlnFn("This command is not available for your account")
	}
	return false
}

func printHelp(a execIface) {
	if !a.isLoggedIn() {
		printlnFn("Available commands: register, login, verify, resend, exit")
		return
	}
	common := "chat, notifications, watch, read, readall, logout, exit"
	switch {
	case a.can(models.RoleAdmin):
		printlnFn("Available commands: lawyers, clients, verifylawyer, editlawyer, clientstatus, flag, inspect, logs, " + common)
	case a.can(models.RoleLawyer):
		printlnFn("Available commands: enquiries, decide, " + common)
	default:
		printlnFn("Available commands: lawyer, enquire, book, rate, " + common)
	}
}
