package resources

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCategoriesListBareArray(t *testing.T) {
	ctx := context.Background()
	doer := &fakeDoer{responses: map[string]json.RawMessage{
		"/categories": json.RawMessage(`[
			{"id": 1, "name": "Physics", "color": "#667eea", "icon": "BookOpen", "book_count": 12},
			{"id": 2, "name": "Biology", "color": "#48bb78", "icon": "Leaf", "book_count": 0}
		]`),
	}}

	page, err := NewCategories(doer).List(ctx, "t1")
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	require.Equal(t, 12, page.Items[0].BookCount)
	require.Nil(t, page.Pagination)
}

func TestCategoriesCreateValidation(t *testing.T) {
	ctx := context.Background()
	doer := &fakeDoer{}
	categories := NewCategories(doer)

	_, err := categories.Create(ctx, CategoryForm{Description: "no name"}, "t1")
	require.Error(t, err)

	_, err = categories.Create(ctx, CategoryForm{Name: "Physics", Color: "purple"}, "t1")
	require.Error(t, err, "color must be a hex value")

	require.Empty(t, doer.calls)
}

func TestCategoriesCreateReturnsRecord(t *testing.T) {
	ctx := context.Background()
	doer := &fakeDoer{responses: map[string]json.RawMessage{
		"/admin/categories": json.RawMessage(`{"success": true, "category": {"id": 3, "name": "Chemistry", "color": "#ed8936", "icon": "Flask", "book_count": 0}}`),
	}}

	created, err := NewCategories(doer).Create(ctx, CategoryForm{Name: "Chemistry", Color: "#ed8936"}, "t1")
	require.NoError(t, err)
	require.Equal(t, int64(3), created.ID)
}

func TestCategoriesUpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	doer := &fakeDoer{responses: map[string]json.RawMessage{
		"/admin/categories/3": json.RawMessage(`{"success": true}`),
	}}
	categories := NewCategories(doer)

	_, err := categories.Update(ctx, 3, CategoryForm{Name: "Chem"}, "t1")
	require.NoError(t, err)

	_, err = categories.Delete(ctx, 3, "t1")
	require.NoError(t, err)
}
