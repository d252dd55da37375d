package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"

	"github.com/dmitrijs2005/lawlink/internal/client/models"
)

type fakeExec struct {
	loggedIn bool
	role     models.Role

	calls []string
}

func (f *fakeExec) record(name string) error {
	f.calls = append(f.calls, name)
	return nil
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) can(required models.Role) bool {
	if !f.loggedIn {
		return false
	}
	return required == "" || required == f.role
}

func (f *fakeExec) Register(ctx context.Context) error { return f.record("register") }
func (f *fakeExec) Login(ctx context.Context) error {
	f.loggedIn = true
	return f.record("login")
}
func (f *fakeExec) VerifyOTP(ctx context.Context) error { return f.record("verify") }
func (f *fakeExec) ResendOTP(ctx context.Context) error { return f.record("resend") }
func (f *fakeExec) Logout(ctx context.Context) error {
	f.loggedIn = false
	return f.record("logout")
}

func (f *fakeExec) ShowLawyer(ctx context.Context) error { return f.record("lawyer") }
func (f *fakeExec) Enquire(ctx context.Context) error    { return f.record("enquire") }
func (f *fakeExec) Book(ctx context.Context) error       { return f.record("book") }
func (f *fakeExec) Rate(ctx context.Context) error       { return f.record("rate") }

func (f *fakeExec) Enquiries(ctx context.Context) error     { return f.record("enquiries") }
func (f *fakeExec) UpdateEnquiry(ctx context.Context) error { return f.record("decide") }

func (f *fakeExec) Chat(ctx context.Context) error          { return f.record("chat") }
func (f *fakeExec) Notifications(ctx context.Context) error { return f.record("notifications") }
func (f *fakeExec) Watch(ctx context.Context) error         { return f.record("watch") }
func (f *fakeExec) MarkRead(ctx context.Context) error      { return f.record("read") }
func (f *fakeExec) MarkAllRead(ctx context.Context) error   { return f.record("readall") }

func (f *fakeExec) AdminLawyers(ctx context.Context) error    { return f.record("lawyers") }
func (f *fakeExec) AdminClients(ctx context.Context) error    { return f.record("clients") }
func (f *fakeExec) VerifyLawyer(ctx context.Context) error    { return f.record("verifylawyer") }
func (f *fakeExec) EditLawyer(ctx context.Context) error      { return f.record("editlawyer") }
func (f *fakeExec) SetClientStatus(ctx context.Context) error { return f.record("clientstatus") }
func (f *fakeExec) FlagClient(ctx context.Context) error      { return f.record("flag") }
func (f *fakeExec) AdminInspect(ctx context.Context) error    { return f.record("inspect") }
func (f *fakeExec) ActivityLogs(ctx context.Context) error    { return f.record("logs") }

func silencePrintln(t *testing.T) {
	t.Helper()
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })
}

func TestRunREPL_LoginFlowAndClientCommands(t *testing.T) {
	silencePrintln(t)

	input := strings.NewReader(strings.Join([]string{
		"help",
		"login",
		"help",
		"lawyer",
		"enquire",
		"book",
		"rate",
		"notifications",
		"watch",
		"foobar",
		"exit",
	}, "\n"))

	exec := &fakeExec{loggedIn: false, role: models.RoleClient}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "status" }, sc)

	wantOrder := []string{"login", "lawyer", "enquire", "book", "rate", "notifications", "watch"}
	if len(exec.calls) < len(wantOrder) {
		t.Fatalf("few calls: %+v", exec.calls)
	}
	idx := 0
	for _, c := range exec.calls {
		if idx < len(wantOrder) && c == wantOrder[idx] {
			idx++
		}
	}
	if idx != len(wantOrder) {
		t.Fatalf("commands order mismatch: got %v, want subseq %v", exec.calls, wantOrder)
	}
}

func TestRunREPL_RoleGating(t *testing.T) {
	silencePrintln(t)

	tests := []struct {
		name     string
		role     models.Role
		loggedIn bool
		input    string
		blocked  []string
	}{
		{
			name:     "anonymous cannot reach protected commands",
			loggedIn: false,
			input:    "lawyer\nenquiries\nlawyers\nchat\nwatch\nlogout\nexit\n",
			blocked:  []string{"lawyer", "enquiries", "lawyers", "chat", "watch", "logout"},
		},
		{
			name:     "client cannot run lawyer or admin commands",
			role:     models.RoleClient,
			loggedIn: true,
			input:    "enquiries\ndecide\nlawyers\nflag\nexit\n",
			blocked:  []string{"enquiries", "decide", "lawyers", "flag"},
		},
		{
			name:     "lawyer cannot run client or admin commands",
			role:     models.RoleLawyer,
			loggedIn: true,
			input:    "enquire\nbook\nrate\nclients\nexit\n",
			blocked:  []string{"enquire", "book", "rate", "clients"},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			exec := &fakeExec{loggedIn: tc.loggedIn, role: tc.role}
			sc := bufio.NewScanner(strings.NewReader(tc.input))

			runREPL(context.Background(), exec, func() string { return "" }, sc)

			for _, blocked := range tc.blocked {
				for _, c := range exec.calls {
					if c == blocked {
						t.Fatalf("command %q should have been gated, calls: %v", blocked, exec.calls)
					}
				}
			}
		})
	}
}

func TestRunREPL_AdminCommands(t *testing.T) {
	silencePrintln(t)

	input := strings.NewReader("lawyers\nclients\nverifylawyer\neditlawyer\nclientstatus\nflag\ninspect\nlogs\nquit\n")
	exec := &fakeExec{loggedIn: true, role: models.RoleAdmin}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "" }, sc)

	want := []string{"lawyers", "clients", "verifylawyer", "editlawyer", "clientstatus", "flag", "inspect", "logs"}
	if len(exec.calls) != len(want) {
		t.Fatalf("calls mismatch: got %v, want %v", exec.calls, want)
	}
	for i := range want {
		if exec.calls[i] != want[i] {
			t.Fatalf("calls mismatch at %d: got %v, want %v", i, exec.calls, want)
		}
	}
}
