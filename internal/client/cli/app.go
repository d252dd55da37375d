package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/dmitrijs2005/lawlink/internal/client/api"
	"github.com/dmitrijs2005/lawlink/internal/client/config"
	"github.com/dmitrijs2005/lawlink/internal/client/models"
	"github.com/dmitrijs2005/lawlink/internal/client/realtime"
	sessionrepo "github.com/dmitrijs2005/lawlink/internal/client/repositories/session"
	"github.com/dmitrijs2005/lawlink/internal/client/services"
	"github.com/dmitrijs2005/lawlink/internal/logging"

	_ "modernc.org/sqlite"
)

// App carries the wired application graph consumed by the REPL command
// handlers.
type App struct {
	config   *config.Config
	client   api.Client
	sessions *services.SessionManager
	guard    *services.Guard
	log      logging.Logger
	db       *sql.DB
	dialer   realtime.Dialer
	reader   *bufio.Reader
}

func NewApp(c *config.Config, log logging.Logger) (*App, error) {
	ctx := context.Background()

	db, err := sessionrepo.InitDatabase(ctx, c.DatabaseDSN)
	if err != nil {
		log.Error(ctx, "error initializing database", "err", err)
		return nil, err
	}

	apiClient := api.NewHTTPClient(c.APIBaseURL, c.RequestTimeout, log)
	sessions := services.NewSessionManager(apiClient, db, log)

	return &App{
		config:   c,
		client:   apiClient,
		sessions: sessions,
		guard:    services.NewGuard(sessions),
		log:      log,
		db:       db,
		dialer:   realtime.WSDialer{},
		reader:   bufio.NewReader(os.Stdin),
	}, nil
}

// getStatus renders the prompt suffix: the signed-in user and role, or
// nothing when unauthenticated.
func (a *App) getStatus() string {
	s := a.sessions.Current()
	if s == nil {
		return ""
	}
	return fmt.Sprintf("(%s %s)", s.Identity.Username, s.Identity.Role)
}

func (a *App) isLoggedIn() bool {
	return a.sessions.Current() != nil
}

// can reports whether the current session may run a command restricted to
// the given role.
func (a *App) can(required models.Role) bool {
	return a.guard.Check(required) == services.DecisionAllow
}

// Run restores the persisted session and enters the REPL. It blocks until
// the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	if err := a.sessions.Restore(ctx); err != nil {
		a.log.Warn(ctx, "session restore failed, continuing unauthenticated", "err", err)
	}

	fmt.Println("Welcome to LawLink CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, bufio.NewScanner(os.Stdin))
}

func (a *App) Close() {
	_ = a.client.Close()
	_ = a.db.Close()
}
