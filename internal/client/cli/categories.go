package cli

import (
	"context"
	"fmt"

	"github.com/bookgenie/bookgenie-cli/internal/client/resources"
)

func (a *App) listCategories(ctx context.Context) error {
	page, err := a.categories.List(ctx, a.token())
	if err != nil {
		a.fail("Listing categories failed", err)
		return err
	}

	for _, c := range page.Items {
		fmt.Fprintf(a.out, "%4d  %-30s %d books\n", c.ID, c.Name, c.BookCount)
	}
	fmt.Fprintf(a.out, "%d categories\n", len(page.Items))
	return nil
}

func (a *App) categoryDetails(current resources.CategoryForm) (resources.CategoryForm, error) {
	form := current

	name, err := GetSimpleText(a.reader, prompt("Enter name", current.Name), a.out)
	if err != nil {
		return form, err
	}
	form.Name = orKeep(name, current.Name)

	description, err := GetSimpleText(a.reader, prompt("Enter description", current.Description), a.out)
	if err != nil {
		return form, err
	}
	form.Description = orKeep(description, current.Description)

	color, err := GetSimpleText(a.reader, prompt("Enter color (#RRGGBB)", current.Color), a.out)
	if err != nil {
		return form, err
	}
	form.Color = orKeep(color, current.Color)

	icon, err := GetSimpleText(a.reader, prompt("Enter icon", current.Icon), a.out)
	if err != nil {
		return form, err
	}
	form.Icon = orKeep(icon, current.Icon)

	return form, nil
}

// AddCategory creates a category and re-fetches the list.
func (a *App) AddCategory(ctx context.Context) error {
	form, err := a.categoryDetails(resources.CategoryForm{})
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return err
	}

	category, err := a.categories.Create(ctx, form, a.token())
	if err != nil {
		a.fail("Creating category failed", err)
		return err
	}
	fmt.Fprintf(a.out, "Created category %d: %s\n", category.ID, category.Name)

	return a.listCategories(ctx)
}

// EditCategory updates a category, blank prompts keeping current values.
func (a *App) EditCategory(ctx context.Context, idArg string) error {
	id, err := parseID(idArg)
	if err != nil {
		fmt.Fprintln(a.out, err)
		return err
	}

	// The categories endpoint has no detail route, so the current values
	// come from the list.
	page, err := a.categories.List(ctx, a.token())
	if err != nil {
		a.fail("Listing categories failed", err)
		return err
	}
	var current resources.CategoryForm
	for _, c := range page.Items {
		if c.ID == id {
			current = resources.CategoryForm{
				Name:        c.Name,
				Description: c.Description,
				Color:       c.Color,
				Icon:        c.Icon,
			}
			break
		}
	}

	form, err := a.categoryDetails(current)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return err
	}

	if _, err := a.categories.Update(ctx, id, form, a.token()); err != nil {
		a.fail("Updating category failed", err)
		return err
	}
	fmt.Fprintf(a.out, "Updated category %d\n", id)

	return a.listCategories(ctx)
}

// DeleteCategory removes a category and re-fetches the list.
func (a *App) DeleteCategory(ctx context.Context, idArg string) error {
	id, err := parseID(idArg)
	if err != nil {
		fmt.Fprintln(a.out, err)
		return err
	}

	if _, err := a.categories.Delete(ctx, id, a.token()); err != nil {
		a.fail("Deleting category failed", err)
		return err
	}
	fmt.Fprintf(a.out, "Deleted category %d\n", id)

	return a.listCategories(ctx)
}
