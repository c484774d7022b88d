package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bookgenie/bookgenie-cli/internal/client/api"
	"github.com/bookgenie/bookgenie-cli/internal/client/config"
	"github.com/bookgenie/bookgenie-cli/internal/client/models"
	"github.com/bookgenie/bookgenie-cli/internal/client/nav"
	"github.com/bookgenie/bookgenie-cli/internal/client/resources"
	"github.com/bookgenie/bookgenie-cli/internal/client/session"
	"github.com/bookgenie/bookgenie-cli/internal/client/state"
	"github.com/bookgenie/bookgenie-cli/internal/logging"

	_ "modernc.org/sqlite"
)

const (
	defaultPerPage = 10
	defaultTopK    = 10
)

// pager tracks list position for one tab's collection. lastCount remembers
// how many items the latest fetch returned so a delete can decide whether
// the page just emptied out.
type pager struct {
	page       int
	lastCount  int
	totalPages int
}

// App holds the wired client components plus the per-tab list state.
type App struct {
	config *config.Config
	log    logging.Logger

	state   *state.Store
	session *session.Manager
	router  *nav.Router
	locator *nav.URLLocator

	api        resources.Doer
	books      *resources.Books
	users      *resources.Users
	categories *resources.Categories
	requests   *resources.SubscriptionRequests
	searcher   *resources.Searcher
	profile    *resources.Profile

	reader     *bufio.Reader
	out        io.Writer
	bookFilter resources.BookFilter
	pagers     map[nav.Tab]*pager
}

// NewApp opens the local state database and wires the API client, session
// manager and resource collections. The tab router is created later, in Run,
// once the restored session has told us the user's role.
func NewApp(cfg *config.Config) (*App, error) {
	ctx := context.Background()

	log := logging.NewDefault(os.Stderr, cfg.LogLevel)

	st, err := state.Open(ctx, cfg.StateDBPath)
	if err != nil {
		log.Error(ctx, "error opening state database", "error", err)
		return nil, err
	}

	apiClient := api.New(cfg.APIBaseURL, cfg.RequestTimeout, log)

	return &App{
		config:     cfg,
		log:        log,
		state:      st,
		session:    session.NewManager(apiClient, st, log),
		locator:    nav.ParseLocator(cfg.Locator),
		api:        apiClient,
		books:      resources.NewBooks(apiClient),
		users:      resources.NewUsers(apiClient),
		categories: resources.NewCategories(apiClient),
		requests:   resources.NewSubscriptionRequests(apiClient),
		searcher:   resources.NewSearcher(apiClient),
		profile:    resources.NewProfile(apiClient),
		reader:     bufio.NewReader(os.Stdin),
		out:        os.Stdout,
		pagers:     make(map[nav.Tab]*pager),
	}, nil
}

// Run restores the persisted session, resolves the initial tab and hands
// control to the REPL. It blocks until the user exits or stdin closes.
func (a *App) Run(ctx context.Context) {
	defer a.state.Close()

	fmt.Fprintln(a.out, "Welcome to BookGenie CLI (type 'help' for commands)")
	fmt.Fprintln(a.out, "Restoring session...")

	if _, err := a.session.Verify(ctx); err != nil {
		a.log.Error(ctx, "session verification", "error", err)
	}
	if u := a.session.User(); u != nil {
		fmt.Fprintf(a.out, "Welcome back, %s!\n", u.DisplayName())
	} else {
		fmt.Fprintln(a.out, "Not signed in. Use 'login' or 'register'.")
	}

	a.router = nav.NewRouter(ctx, a.currentRole(), a.locator, a.state, a.log)

	runREPL(ctx, a, a.status, bufio.NewScanner(os.Stdin))
}

func (a *App) isLoggedIn() bool {
	return a.session.Status() == session.StatusAuthenticated
}

func (a *App) isAdmin() bool {
	return a.session.User().IsAdmin()
}

func (a *App) currentRole() models.Role {
	if a.isAdmin() {
		return models.RoleAdmin
	}
	return models.RoleStudent
}

func (a *App) token() string {
	return a.session.Token()
}

// status builds the prompt decoration, e.g. "(Alice books)".
func (a *App) status() string {
	s := ""
	if u := a.session.User(); u != nil {
		s = u.DisplayName() + " "
	}
	if a.router != nil {
		s += string(a.router.Active())
	}
	if s = strings.TrimSpace(s); s != "" {
		s = "(" + s + ")"
	}
	return s
}

// fail reports a command error. A 401 gets a re-authentication hint, since
// the token may simply have expired since startup.
func (a *App) fail(what string, err error) {
	fmt.Fprintf(a.out, "%s: %v\n", what, err)
	if api.IsUnauthorized(err) {
		fmt.Fprintln(a.out, "Your session may have expired, try 'login'.")
	}
}

// pagerFor returns the list state for tab, creating it on first use.
func (a *App) pagerFor(tab nav.Tab) *pager {
	p, ok := a.pagers[tab]
	if !ok {
		p = &pager{page: 1}
		a.pagers[tab] = p
	}
	return p
}
