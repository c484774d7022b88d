// Package nav implements the dashboard view-state router: one source of
// truth for the active tab, with one-way sync effects to a shareable locator
// (the CLI analog of the URL query string) and to persisted storage.
package nav

import (
	"context"
	"sync"

	"github.com/bookgenie/bookgenie-cli/internal/client/models"
	"github.com/bookgenie/bookgenie-cli/internal/logging"
)

type Tab string

const (
	TabDashboard    Tab = "dashboard"
	TabSearch       Tab = "search"
	TabCategories   Tab = "categories"
	TabSubscription Tab = "subscription"
	TabUsers        Tab = "users"
	TabAnalytics    Tab = "analytics"
	TabBooks        Tab = "books"
	TabProfile      Tab = "profile"
)

// DefaultTab is where disallowed or unknown selections land.
const DefaultTab = TabDashboard

// tabOrder fixes the display order of the full tab set.
var tabOrder = []Tab{
	TabDashboard, TabSearch, TabCategories, TabSubscription,
	TabUsers, TabAnalytics, TabBooks, TabProfile,
}

// Allowed reports whether role may view tab. Users, analytics and books are
// admin-only; the subscription tab is for non-admins only.
func Allowed(tab Tab, role models.Role) bool {
	switch tab {
	case TabUsers, TabAnalytics, TabBooks:
		return role == models.RoleAdmin
	case TabSubscription:
		return role != models.RoleAdmin
	case TabDashboard, TabSearch, TabCategories, TabProfile:
		return true
	default:
		return false
	}
}

// TabsFor lists the tabs visible to role, in display order.
func TabsFor(role models.Role) []Tab {
	tabs := make([]Tab, 0, len(tabOrder))
	for _, t := range tabOrder {
		if Allowed(t, role) {
			tabs = append(tabs, t)
		}
	}
	return tabs
}

// Locator is the shareable-location sink, keyed like a URL query parameter.
type Locator interface {
	Get(key string) string
	Set(key, value string)
}

// Store persists the last-selected tab across sessions.
type Store interface {
	LastTab(ctx context.Context) (string, error)
	SetLastTab(ctx context.Context, tab string) error
}

const locatorKey = "tab"

// Router owns the active tab. It is the only writer of the locator's tab
// parameter and the persisted last-tab key.
type Router struct {
	loc   Locator
	store Store
	log   logging.Logger

	mu     sync.Mutex
	role   models.Role
	active Tab
}

// NewRouter resolves the initial tab (locator value, then persisted tab,
// then the default), gated by role, and syncs the outcome back out.
func NewRouter(ctx context.Context, role models.Role, loc Locator, store Store, log logging.Logger) *Router {
	r := &Router{loc: loc, store: store, log: log.With("component", "nav"), role: role}

	initial := Tab(loc.Get(locatorKey))
	if !Allowed(initial, role) {
		if saved, err := store.LastTab(ctx); err == nil {
			initial = Tab(saved)
		}
	}
	if !Allowed(initial, role) {
		initial = DefaultTab
	}

	r.active = initial
	r.sync(ctx, initial)
	return r
}

// Active returns the current tab.
func (r *Router) Active() Tab {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active
}

// Set activates tab, falling back to the default when the role may not view
// it, and returns the tab that actually became active. Memory, locator and
// storage are updated together.
func (r *Router) Set(ctx context.Context, tab Tab) Tab {
	if !Allowed(tab, r.roleNow()) {
		r.log.Warn(ctx, "tab not permitted for role", "tab", tab, "role", r.roleNow())
		tab = DefaultTab
	}

	r.mu.Lock()
	r.active = tab
	r.mu.Unlock()

	r.sync(ctx, tab)
	return tab
}

// SetRole re-gates the active tab after the signed-in role changes (login,
// logout, promotion).
func (r *Router) SetRole(ctx context.Context, role models.Role) {
	r.mu.Lock()
	r.role = role
	active := r.active
	r.mu.Unlock()

	if !Allowed(active, role) {
		r.Set(ctx, DefaultTab)
	}
}

func (r *Router) roleNow() models.Role {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.role
}

func (r *Router) sync(ctx context.Context, tab Tab) {
	r.loc.Set(locatorKey, string(tab))
	if err := r.store.SetLastTab(ctx, string(tab)); err != nil {
		r.log.Warn(ctx, "persisting last tab", "err", err)
	}
}
