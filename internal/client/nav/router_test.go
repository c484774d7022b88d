package nav

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bookgenie/bookgenie-cli/internal/client/models"
	"github.com/bookgenie/bookgenie-cli/internal/logging"
)

type memStore struct {
	tab string
}

func (m *memStore) LastTab(ctx context.Context) (string, error) { return m.tab, nil }
func (m *memStore) SetLastTab(ctx context.Context, tab string) error {
	m.tab = tab
	return nil
}

func testLogger() logging.Logger {
	return logging.NewDefault(io.Discard, "error")
}

func TestAllowed(t *testing.T) {
	require.True(t, Allowed(TabUsers, models.RoleAdmin))
	require.False(t, Allowed(TabUsers, models.RoleStudent))
	require.True(t, Allowed(TabSubscription, models.RoleStudent))
	require.False(t, Allowed(TabSubscription, models.RoleAdmin))
	require.True(t, Allowed(TabSearch, models.RoleStudent))
	require.False(t, Allowed(Tab("bogus"), models.RoleAdmin))
}

func TestTabsFor(t *testing.T) {
	student := TabsFor(models.RoleStudent)
	require.Equal(t, []Tab{TabDashboard, TabSearch, TabCategories, TabSubscription, TabProfile}, student)

	admin := TabsFor(models.RoleAdmin)
	require.Equal(t, []Tab{TabDashboard, TabSearch, TabCategories, TabUsers, TabAnalytics, TabBooks, TabProfile}, admin)
}

func TestInitialTabFromLocator(t *testing.T) {
	ctx := context.Background()
	loc := ParseLocator("tab=search")
	store := &memStore{tab: "categories"}

	r := NewRouter(ctx, models.RoleStudent, loc, store, testLogger())
	require.Equal(t, TabSearch, r.Active(), "locator wins over persisted tab")
}

func TestInitialTabFallsBackToPersisted(t *testing.T) {
	ctx := context.Background()
	loc := ParseLocator("")
	store := &memStore{tab: "categories"}

	r := NewRouter(ctx, models.RoleStudent, loc, store, testLogger())
	require.Equal(t, TabCategories, r.Active())
}

func TestInitialTabDefaultsWhenNothingSaved(t *testing.T) {
	ctx := context.Background()
	r := NewRouter(ctx, models.RoleStudent, ParseLocator(""), &memStore{}, testLogger())
	require.Equal(t, DefaultTab, r.Active())
}

func TestInitialAdminTabDeniedToStudent(t *testing.T) {
	ctx := context.Background()
	loc := ParseLocator("tab=users")
	store := &memStore{tab: "analytics"}

	r := NewRouter(ctx, models.RoleStudent, loc, store, testLogger())
	require.Equal(t, DefaultTab, r.Active(), "role-gated tab must resolve to the default")
}

func TestSetSyncsLocatorAndStore(t *testing.T) {
	ctx := context.Background()
	loc := ParseLocator("")
	store := &memStore{}
	r := NewRouter(ctx, models.RoleAdmin, loc, store, testLogger())

	got := r.Set(ctx, TabBooks)
	require.Equal(t, TabBooks, got)
	require.Equal(t, TabBooks, r.Active())
	require.Equal(t, "books", loc.Get("tab"))
	require.Equal(t, "books", store.tab)
}

func TestSetDisallowedTabResolvesToDefault(t *testing.T) {
	ctx := context.Background()
	loc := ParseLocator("")
	store := &memStore{}
	r := NewRouter(ctx, models.RoleStudent, loc, store, testLogger())

	got := r.Set(ctx, TabAnalytics)
	require.Equal(t, DefaultTab, got)
	require.Equal(t, string(DefaultTab), loc.Get("tab"))
	require.Equal(t, string(DefaultTab), store.tab)
}

func TestSetRoleRegatesActiveTab(t *testing.T) {
	ctx := context.Background()
	loc := ParseLocator("tab=users")
	store := &memStore{}
	r := NewRouter(ctx, models.RoleAdmin, loc, store, testLogger())
	require.Equal(t, TabUsers, r.Active())

	r.SetRole(ctx, models.RoleStudent)
	require.Equal(t, DefaultTab, r.Active())
}

func TestLocatorRoundTrip(t *testing.T) {
	loc := ParseLocator("")
	loc.Set("tab", "profile")
	require.Equal(t, "tab=profile", loc.Encode())

	back := ParseLocator(loc.Encode())
	require.Equal(t, "profile", back.Get("tab"))
}
