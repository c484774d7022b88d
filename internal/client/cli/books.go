package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bookgenie/bookgenie-cli/internal/client/nav"
	"github.com/bookgenie/bookgenie-cli/internal/client/resources"
)

// listBooks renders the current page of the catalog and remembers how many
// items it holds so a later delete can tell when the page emptied out.
func (a *App) listBooks(ctx context.Context) error {
	p := a.pagerFor(nav.TabBooks)

	page, err := a.books.List(ctx, a.token(), p.page, defaultPerPage, a.bookFilter)
	if err != nil {
		a.fail("Listing books failed", err)
		return err
	}

	p.lastCount = len(page.Items)
	if page.Pagination != nil {
		p.totalPages = page.Pagination.TotalPages
	}

	for _, b := range page.Items {
		fmt.Fprintf(a.out, "%4d  %-40s %s\n", b.ID, b.Title, b.Author)
	}
	if page.Pagination != nil {
		fmt.Fprintf(a.out, "Page %d of %d (%d books)\n",
			page.Pagination.Page, page.Pagination.TotalPages, page.Pagination.Total)
	} else {
		fmt.Fprintf(a.out, "%d books\n", len(page.Items))
	}
	return nil
}

func (a *App) showBook(ctx context.Context, idArg string) error {
	id, err := parseID(idArg)
	if err != nil {
		fmt.Fprintln(a.out, err)
		return err
	}

	book, err := a.books.Get(ctx, id, a.token())
	if err != nil {
		a.fail("Fetching book failed", err)
		return err
	}

	fmt.Fprintf(a.out, "%s by %s\n", book.Title, book.Author)
	if book.Abstract != "" {
		fmt.Fprintln(a.out, book.Abstract)
	}
	if book.Genre != "" {
		fmt.Fprintf(a.out, "Genre: %s\n", book.Genre)
	}
	if book.Pages > 0 {
		fmt.Fprintf(a.out, "Pages: %d\n", book.Pages)
	}
	if len(book.Tags) > 0 {
		fmt.Fprintf(a.out, "Tags: %s\n", strings.Join(book.Tags, ", "))
	}
	fmt.Fprintf(a.out, "Subscription: %s\n", book.SubscriptionLevel)

	// Viewing a detail page counts as an interaction; failures are not
	// worth interrupting the user for.
	_ = a.books.RecordInteraction(ctx, id, "view", a.token())
	return nil
}

// ReadBook records a reading session for the given book.
func (a *App) ReadBook(ctx context.Context, idArg string) error {
	id, err := parseID(idArg)
	if err != nil {
		fmt.Fprintln(a.out, err)
		return err
	}

	book, err := a.books.Get(ctx, id, a.token())
	if err != nil {
		a.fail("Fetching book failed", err)
		return err
	}

	if err := a.books.RecordRead(ctx, id, a.token()); err != nil {
		a.fail("Recording reading session failed", err)
		return err
	}
	fmt.Fprintf(a.out, "Opening %q...\n", book.Title)
	if book.FileURL != "" {
		fmt.Fprintf(a.out, "File: %s\n", book.FileURL)
	}
	return nil
}

// SetFilter adjusts the book list filters. "filter clear" resets them;
// otherwise arguments are genre=<g> and level=<l> pairs.
func (a *App) SetFilter(ctx context.Context, args []string) error {
	if len(args) == 1 && args[0] == "clear" {
		a.bookFilter = resources.BookFilter{}
		fmt.Fprintln(a.out, "Filters cleared.")
		return a.listBooks(ctx)
	}
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: filter genre=<genre> level=<academic level> | filter clear")
		return nil
	}
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			fmt.Fprintf(a.out, "Ignoring %q, expected key=value\n", arg)
			continue
		}
		switch key {
		case "genre":
			a.bookFilter.Genre = value
		case "level":
			a.bookFilter.AcademicLevel = value
		default:
			fmt.Fprintf(a.out, "Unknown filter %q\n", key)
		}
	}
	a.pagerFor(nav.TabBooks).page = 1
	return a.listBooks(ctx)
}

// bookDetails prompts for the form fields. Current values are used when the
// user leaves a prompt blank, which makes the same flow serve create (zero
// current) and edit (prefilled current).
func (a *App) bookDetails(current resources.BookForm) (resources.BookForm, error) {
	form := current

	title, err := GetSimpleText(a.reader, prompt("Enter title", current.Title), a.out)
	if err != nil {
		return form, err
	}
	form.Title = orKeep(title, current.Title)

	author, err := GetSimpleText(a.reader, prompt("Enter author", current.Author), a.out)
	if err != nil {
		return form, err
	}
	form.Author = orKeep(author, current.Author)

	abstract, err := GetMultiline(a.reader, "Enter abstract", a.out)
	if err != nil {
		return form, err
	}
	form.Abstract = orKeep(abstract, current.Abstract)

	genre, err := GetSimpleText(a.reader, prompt("Enter genre", current.Genre), a.out)
	if err != nil {
		return form, err
	}
	form.Genre = orKeep(genre, current.Genre)

	level, err := GetSimpleText(a.reader, prompt("Enter academic level", current.AcademicLevel), a.out)
	if err != nil {
		return form, err
	}
	form.AcademicLevel = orKeep(level, current.AcademicLevel)

	sub, err := GetSimpleText(a.reader, prompt("Enter subscription level (free/basic/premium)", current.SubscriptionLevel), a.out)
	if err != nil {
		return form, err
	}
	form.SubscriptionLevel = orKeep(sub, current.SubscriptionLevel)

	pages, err := GetSimpleText(a.reader, "Enter page count", a.out)
	if err != nil {
		return form, err
	}
	if pages != "" {
		n, err := strconv.Atoi(pages)
		if err != nil {
			return form, fmt.Errorf("invalid page count %q", pages)
		}
		form.Pages = n
	}

	tags, err := GetSimpleText(a.reader, "Enter tags (comma separated)", a.out)
	if err != nil {
		return form, err
	}
	if tags != "" {
		form.Tags = nil
		for _, t := range strings.Split(tags, ",") {
			if t = strings.TrimSpace(t); t != "" {
				form.Tags = append(form.Tags, t)
			}
		}
	}

	return form, nil
}

func prompt(label, current string) string {
	if current == "" {
		return label
	}
	return fmt.Sprintf("%s [%s]", label, current)
}

// AddBook creates a catalog entry, then offers to attach the book file and
// cover image. Attachments need the id the create handed back, so they only
// run once the create has succeeded. The list is re-fetched afterwards.
func (a *App) AddBook(ctx context.Context) error {
	form, err := a.bookDetails(resources.BookForm{})
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return err
	}

	book, err := a.books.Create(ctx, form, a.token())
	if err != nil {
		a.fail("Creating book failed", err)
		return err
	}
	fmt.Fprintf(a.out, "Created book %d: %s\n", book.ID, book.Title)

	// The book exists from here on. A failed attachment does not undo the
	// create; the user can retry it with the upload/cover commands.
	filePath, err := GetSimpleText(a.reader, "Enter book file path (blank to skip)", a.out)
	if err != nil {
		return err
	}
	if filePath != "" {
		if err := a.attachBookFile(ctx, book.ID, filePath, false); err != nil {
			fmt.Fprintf(a.out, "Retry with: upload %d <path>\n", book.ID)
		}
	}

	coverPath, err := GetSimpleText(a.reader, "Enter cover image path (blank to skip)", a.out)
	if err != nil {
		return err
	}
	if coverPath != "" {
		if err := a.attachBookFile(ctx, book.ID, coverPath, true); err != nil {
			fmt.Fprintf(a.out, "Retry with: cover %d <path>\n", book.ID)
		}
	}

	return a.listBooks(ctx)
}

// EditBook updates a book, prompting field by field with blank meaning keep.
func (a *App) EditBook(ctx context.Context, idArg string) error {
	id, err := parseID(idArg)
	if err != nil {
		fmt.Fprintln(a.out, err)
		return err
	}

	book, err := a.books.Get(ctx, id, a.token())
	if err != nil {
		a.fail("Fetching book failed", err)
		return err
	}

	form, err := a.bookDetails(resources.BookForm{
		Title:             book.Title,
		Author:            book.Author,
		Abstract:          book.Abstract,
		Genre:             book.Genre,
		AcademicLevel:     book.AcademicLevel,
		SubscriptionLevel: string(book.SubscriptionLevel),
		Tags:              book.Tags,
		Pages:             book.Pages,
	})
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return err
	}

	if _, err := a.books.Update(ctx, id, form, a.token()); err != nil {
		a.fail("Updating book failed", err)
		return err
	}
	fmt.Fprintf(a.out, "Updated book %d\n", id)

	return a.listBooks(ctx)
}

// DeleteBook removes a book and re-fetches the list. Deleting the last item
// of a page beyond the first steps the pager back so the view never lands
// on an empty page.
func (a *App) DeleteBook(ctx context.Context, idArg string) error {
	id, err := parseID(idArg)
	if err != nil {
		fmt.Fprintln(a.out, err)
		return err
	}

	if _, err := a.books.Delete(ctx, id, a.token()); err != nil {
		a.fail("Deleting book failed", err)
		return err
	}
	fmt.Fprintf(a.out, "Deleted book %d\n", id)

	p := a.pagerFor(nav.TabBooks)
	p.page = resources.PageAfterDelete(p.page, p.lastCount)

	return a.listBooks(ctx)
}

// UploadBookFile attaches the readable book content to an existing book.
func (a *App) UploadBookFile(ctx context.Context, idArg, path string) error {
	id, err := parseID(idArg)
	if err != nil {
		fmt.Fprintln(a.out, err)
		return err
	}
	return a.attachBookFile(ctx, id, path, false)
}

// UploadBookCover attaches a cover image to an existing book.
func (a *App) UploadBookCover(ctx context.Context, idArg, path string) error {
	id, err := parseID(idArg)
	if err != nil {
		fmt.Fprintln(a.out, err)
		return err
	}
	return a.attachBookFile(ctx, id, path, true)
}

func (a *App) attachBookFile(ctx context.Context, id int64, path string, cover bool) error {
	f, err := os.Open(path)
	if err != nil {
		a.fail("Opening file failed", err)
		return err
	}
	defer f.Close()

	name := filepath.Base(path)
	if cover {
		_, err = a.books.UploadCover(ctx, id, name, f, a.token())
	} else {
		_, err = a.books.UploadFile(ctx, id, name, f, a.token())
	}
	if err != nil {
		a.fail("Upload failed", err)
		return err
	}
	fmt.Fprintf(a.out, "Uploaded %s\n", name)
	return nil
}
