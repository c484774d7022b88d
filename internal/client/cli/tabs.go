package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/bookgenie/bookgenie-cli/internal/client/nav"
)

// Tabs prints the tab set visible to the current role.
func (a *App) Tabs(ctx context.Context) error {
	names := make([]string, 0, 8)
	for _, t := range nav.TabsFor(a.currentRole()) {
		names = append(names, string(t))
	}
	fmt.Fprintf(a.out, "Tabs: %s\n", strings.Join(names, ", "))
	return nil
}

// SwitchTab activates the named tab. A tab the current role may not view
// falls through to the default; the user is told where they landed.
func (a *App) SwitchTab(ctx context.Context, name string) error {
	got := a.router.Set(ctx, nav.Tab(name))
	if string(got) != name {
		fmt.Fprintf(a.out, "Tab %q is not available, showing %s\n", name, got)
		return nil
	}
	fmt.Fprintf(a.out, "Switched to %s\n", got)
	return nil
}

// List renders the active tab's content. Collection tabs show the current
// page of their pager; next/prev move through pages.
func (a *App) List(ctx context.Context) error {
	switch a.router.Active() {
	case nav.TabBooks:
		return a.listBooks(ctx)
	case nav.TabUsers:
		return a.listUsers(ctx)
	case nav.TabCategories:
		return a.listCategories(ctx)
	case nav.TabAnalytics:
		return a.Analytics(ctx)
	case nav.TabProfile:
		return a.Profile(ctx)
	case nav.TabSubscription:
		return a.showSubscription(ctx)
	case nav.TabSearch:
		fmt.Fprintln(a.out, "Type: search <query>")
		return nil
	default:
		return a.showDashboard(ctx)
	}
}

// NextPage advances the active tab's pager and re-renders, staying put when
// the server already reported this as the last page.
func (a *App) NextPage(ctx context.Context) error {
	p := a.pagerFor(a.router.Active())
	if p.totalPages > 0 && p.page >= p.totalPages {
		fmt.Fprintln(a.out, "Already on the last page.")
		return nil
	}
	p.page++
	return a.List(ctx)
}

// PrevPage moves the active tab's pager back one page and re-renders.
func (a *App) PrevPage(ctx context.Context) error {
	p := a.pagerFor(a.router.Active())
	if p.page <= 1 {
		fmt.Fprintln(a.out, "Already on the first page.")
		return nil
	}
	p.page--
	return a.List(ctx)
}

// Show displays a single record of the active tab's collection.
func (a *App) Show(ctx context.Context, id string) error {
	switch a.router.Active() {
	case nav.TabUsers:
		return a.showUser(ctx, id)
	default:
		return a.showBook(ctx, id)
	}
}

func (a *App) showDashboard(ctx context.Context) error {
	u := a.session.User()
	if u == nil {
		fmt.Fprintln(a.out, "Sign in to see your dashboard.")
		return nil
	}
	fmt.Fprintf(a.out, "Hello, %s! Subscription: %s\n", u.DisplayName(), u.SubscriptionLevel)
	fmt.Fprintln(a.out, "Try 'search <query>' to find books, or 'tabs' to look around.")
	return nil
}

func (a *App) showSubscription(ctx context.Context) error {
	u := a.session.User()
	if u == nil {
		fmt.Fprintln(a.out, "Sign in to manage your subscription.")
		return nil
	}
	fmt.Fprintf(a.out, "Current subscription: %s\n", u.SubscriptionLevel)
	fmt.Fprintln(a.out, "Request an upgrade with: upgrade <basic|premium>")
	return nil
}
