package cli

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/bookgenie/bookgenie-cli/internal/client/models"
	"github.com/bookgenie/bookgenie-cli/internal/client/nav"
	"github.com/bookgenie/bookgenie-cli/internal/client/resources"
)

func (a *App) listUsers(ctx context.Context) error {
	p := a.pagerFor(nav.TabUsers)

	page, err := a.users.List(ctx, a.token(), p.page, defaultPerPage)
	if err != nil {
		a.fail("Listing users failed", err)
		return err
	}

	p.lastCount = len(page.Items)
	if page.Pagination != nil {
		p.totalPages = page.Pagination.TotalPages
	}

	for _, u := range page.Items {
		fmt.Fprintf(a.out, "%4d  %-30s %-8s %s\n", u.ID, u.Email, u.Role, u.SubscriptionLevel)
	}
	if page.Pagination != nil {
		fmt.Fprintf(a.out, "Page %d of %d (%d users)\n",
			page.Pagination.Page, page.Pagination.TotalPages, page.Pagination.Total)
	}
	return nil
}

func (a *App) showUser(ctx context.Context, idArg string) error {
	id, err := parseID(idArg)
	if err != nil {
		fmt.Fprintln(a.out, err)
		return err
	}

	u, err := a.users.Get(ctx, id, a.token())
	if err != nil {
		a.fail("Fetching user failed", err)
		return err
	}

	fmt.Fprintf(a.out, "%s %s <%s>\n", u.FirstName, u.LastName, u.Email)
	fmt.Fprintf(a.out, "Role: %s, subscription: %s\n", u.Role, u.SubscriptionLevel)
	if u.Department != "" {
		fmt.Fprintf(a.out, "Department: %s\n", u.Department)
	}
	if u.AcademicLevel != "" {
		fmt.Fprintf(a.out, "Academic level: %s\n", u.AcademicLevel)
	}
	return nil
}

// EditUser updates the named account, blank prompts keeping current values.
func (a *App) EditUser(ctx context.Context, idArg string) error {
	id, err := parseID(idArg)
	if err != nil {
		fmt.Fprintln(a.out, err)
		return err
	}

	u, err := a.users.Get(ctx, id, a.token())
	if err != nil {
		a.fail("Fetching user failed", err)
		return err
	}

	firstName, err := GetSimpleText(a.reader, prompt("Enter first name", u.FirstName), a.out)
	if err != nil {
		return err
	}
	lastName, err := GetSimpleText(a.reader, prompt("Enter last name", u.LastName), a.out)
	if err != nil {
		return err
	}
	department, err := GetSimpleText(a.reader, prompt("Enter department", u.Department), a.out)
	if err != nil {
		return err
	}
	role, err := GetSimpleText(a.reader, prompt("Enter role (student/admin)", string(u.Role)), a.out)
	if err != nil {
		return err
	}

	form := resources.UserForm{
		FirstName:  orKeep(firstName, u.FirstName),
		LastName:   orKeep(lastName, u.LastName),
		Department: orKeep(department, u.Department),
		Role:       orKeep(role, string(u.Role)),
	}

	if _, err := a.users.Update(ctx, id, form, a.token()); err != nil {
		a.fail("Updating user failed", err)
		return err
	}
	fmt.Fprintf(a.out, "Updated user %d\n", id)

	return a.listUsers(ctx)
}

// DeleteUser removes an account and re-fetches the list, stepping the pager
// back when the delete emptied the current page.
func (a *App) DeleteUser(ctx context.Context, idArg string) error {
	id, err := parseID(idArg)
	if err != nil {
		fmt.Fprintln(a.out, err)
		return err
	}

	if _, err := a.users.Delete(ctx, id, a.token()); err != nil {
		a.fail("Deleting user failed", err)
		return err
	}
	fmt.Fprintf(a.out, "Deleted user %d\n", id)

	p := a.pagerFor(nav.TabUsers)
	p.page = resources.PageAfterDelete(p.page, p.lastCount)

	return a.listUsers(ctx)
}

// SetSubscription changes a user's subscription level directly.
func (a *App) SetSubscription(ctx context.Context, idArg, level string) error {
	id, err := parseID(idArg)
	if err != nil {
		fmt.Fprintln(a.out, err)
		return err
	}

	if _, err := a.users.UpdateSubscription(ctx, id, models.SubscriptionLevel(level), a.token()); err != nil {
		a.fail("Updating subscription failed", err)
		return err
	}
	fmt.Fprintf(a.out, "User %d subscription set to %s\n", id, level)
	return nil
}

// Traffic prints a user's activity counters (searches, reading sessions,
// downloads) as reported by the backend.
func (a *App) Traffic(ctx context.Context, idArg string) error {
	id, err := parseID(idArg)
	if err != nil {
		fmt.Fprintln(a.out, err)
		return err
	}

	stats, err := a.users.Traffic(ctx, id, a.token())
	if err != nil {
		a.fail("Fetching traffic failed", err)
		return err
	}

	keys := make([]string, 0, len(stats))
	for k := range stats {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(a.out, "  %s: %v\n", k, stats[k])
	}
	return nil
}

// Requests lists the pending subscription upgrade requests.
func (a *App) Requests(ctx context.Context) error {
	page, err := a.requests.List(ctx, a.token())
	if err != nil {
		a.fail("Listing requests failed", err)
		return err
	}

	for _, r := range page.Items {
		fmt.Fprintf(a.out, "%4d  %-30s %s -> %s (%s)\n",
			r.ID, r.UserEmail, r.CurrentLevel, r.RequestedLevel, r.Status)
	}
	fmt.Fprintf(a.out, "%d requests\n", len(page.Items))
	return nil
}

// Approve grants a pending upgrade request and re-fetches the queue.
func (a *App) Approve(ctx context.Context, idArg string) error {
	id, err := parseID(idArg)
	if err != nil {
		fmt.Fprintln(a.out, err)
		return err
	}

	if _, err := a.requests.Approve(ctx, id, a.token()); err != nil {
		a.fail("Approving request failed", err)
		return err
	}
	fmt.Fprintf(a.out, "Request %d approved\n", id)

	return a.Requests(ctx)
}

// Reject declines a pending upgrade request. The message is mandatory and
// is shown to the requesting user.
func (a *App) Reject(ctx context.Context, idArg, message string) error {
	id, err := parseID(idArg)
	if err != nil {
		fmt.Fprintln(a.out, err)
		return err
	}

	if _, err := a.requests.Reject(ctx, id, message, a.token()); err != nil {
		if errors.Is(err, resources.ErrRejectionMessageRequired) {
			fmt.Fprintln(a.out, "A rejection message is required.")
		} else {
			a.fail("Rejecting request failed", err)
		}
		return err
	}
	fmt.Fprintf(a.out, "Request %d rejected\n", id)

	return a.Requests(ctx)
}

// Analytics prints the admin analytics headline numbers.
func (a *App) Analytics(ctx context.Context) error {
	stats, err := resources.Analytics(ctx, a.api, a.token())
	if err != nil {
		a.fail("Fetching analytics failed", err)
		return err
	}

	fmt.Fprintf(a.out, "Users: %d, books: %d, searches: %d, reading sessions: %d\n",
		stats.TotalStats.TotalUsers, stats.TotalStats.TotalBooks,
		stats.TotalStats.TotalSearches, stats.TotalStats.TotalReadingSessions)
	fmt.Fprintf(a.out, "Today: %d new users, %d searches, %d sessions, %d pending requests\n",
		stats.DailyStats.NewUsers, stats.DailyStats.Searches,
		stats.DailyStats.ReadingSessions, stats.DailyStats.PendingRequests)

	for level, count := range stats.SubscriptionStats {
		fmt.Fprintf(a.out, "  %s: %d\n", level, count)
	}
	for _, s := range stats.PopularSearches {
		fmt.Fprintf(a.out, "  %q searched %d times\n", s.Query, s.Count)
	}
	for _, b := range stats.TopBooks {
		fmt.Fprintf(a.out, "  %s by %s: %d downloads\n", b.Title, b.Author, b.DownloadCount)
	}
	return nil
}
