package memstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/platewise/rts/pkg/rts/ingredient"
	"github.com/platewise/rts/pkg/rts/internalerr"
	"github.com/platewise/rts/pkg/rts/store"
)

func TestRecipeRoundTrip(t *testing.T) {
	ctx := context.Background()
	st := New()
	defer st.Close()

	r := store.Recipe{Name: "pancakes", Head: "rev-1", UpdatedAt: time.Now()}
	if err := st.UpsertRecipe(ctx, r); err != nil {
		t.Fatalf("UpsertRecipe: %v", err)
	}

	got, found, err := st.GetRecipe(ctx, "pancakes")
	if err != nil {
		t.Fatalf("GetRecipe: %v", err)
	}
	if !found {
		t.Fatal("recipe should be found")
	}
	if got.Head != "rev-1" {
		t.Errorf("head = %q, want %q", got.Head, "rev-1")
	}

	// Head advances on upsert.
	r.Head = "rev-2"
	if err := st.UpsertRecipe(ctx, r); err != nil {
		t.Fatalf("UpsertRecipe: %v", err)
	}
	got, _, _ = st.GetRecipe(ctx, "pancakes")
	if got.Head != "rev-2" {
		t.Errorf("head = %q, want %q", got.Head, "rev-2")
	}
}

func TestUpsertRecipeRejectsEmptyName(t *testing.T) {
	st := New()
	err := st.UpsertRecipe(context.Background(), store.Recipe{})
	if !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestRevisionAppendAndList(t *testing.T) {
	ctx := context.Background()
	st := New()

	for i, id := range []string{"rev-a", "rev-b", "rev-c"} {
		rev := store.Revision{
			ID:        id,
			Recipe:    "pancakes",
			Session:   "main",
			RawText:   "1 cup flour",
			CreatedAt: time.Now().Add(time.Duration(i) * time.Second),
			Ingredients: []ingredient.Ingredient{
				{Quantity: "1", Unit: "cup", Name: "flour"},
			},
		}
		if err := st.AppendRevision(ctx, rev); err != nil {
			t.Fatalf("AppendRevision(%s): %v", id, err)
		}
	}

	revs, err := st.ListRevisions(ctx, "pancakes", 0)
	if err != nil {
		t.Fatalf("ListRevisions: %v", err)
	}
	if len(revs) != 3 {
		t.Fatalf("got %d revisions, want 3", len(revs))
	}
	// Newest first.
	if revs[0].ID != "rev-c" || revs[2].ID != "rev-a" {
		t.Errorf("unexpected order: %s ... %s", revs[0].ID, revs[2].ID)
	}

	revs, err = st.ListRevisions(ctx, "pancakes", 2)
	if err != nil {
		t.Fatalf("ListRevisions: %v", err)
	}
	if len(revs) != 2 {
		t.Errorf("limit 2: got %d revisions", len(revs))
	}
}

func TestRevisionDuplicateID(t *testing.T) {
	ctx := context.Background()
	st := New()

	rev := store.Revision{ID: "rev-a", Recipe: "pancakes"}
	if err := st.AppendRevision(ctx, rev); err != nil {
		t.Fatalf("AppendRevision: %v", err)
	}
	err := st.AppendRevision(ctx, rev)
	if !errors.Is(err, internalerr.ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}
}

func TestRevisionCopyOnRead(t *testing.T) {
	ctx := context.Background()
	st := New()

	rev := store.Revision{
		ID:     "rev-a",
		Recipe: "pancakes",
		Ingredients: []ingredient.Ingredient{
			{Quantity: "1", Unit: "cup", Name: "flour"},
		},
	}
	if err := st.AppendRevision(ctx, rev); err != nil {
		t.Fatalf("AppendRevision: %v", err)
	}

	got, _, _ := st.GetRevision(ctx, "rev-a")
	got.Ingredients[0].Name = "mutated"

	again, _, _ := st.GetRevision(ctx, "rev-a")
	if again.Ingredients[0].Name != "flour" {
		t.Error("stored revision should not observe caller mutations")
	}
}

func TestSessions(t *testing.T) {
	ctx := context.Background()
	st := New()

	if err := st.UpsertSession(ctx, store.Session{Name: "main", CreatedAt: time.Now()}); err != nil {
		t.Fatalf("UpsertSession: %v", err)
	}
	if err := st.UpsertSession(ctx, store.Session{Name: "low-sugar", CreatedAt: time.Now()}); err != nil {
		t.Fatalf("UpsertSession: %v", err)
	}

	// Advancing a head keeps the original creation time.
	if err := st.UpsertSession(ctx, store.Session{Name: "main", Head: "rev-z"}); err != nil {
		t.Fatalf("UpsertSession: %v", err)
	}
	sess, found, _ := st.GetSession(ctx, "main")
	if !found || sess.Head != "rev-z" {
		t.Errorf("session = %+v, want head rev-z", sess)
	}
	if sess.CreatedAt.IsZero() {
		t.Error("creation time should survive head updates")
	}

	sessions, err := st.ListSessions(ctx)
	if err != nil {
		t.Fatalf("ListSessions: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("got %d sessions, want 2", len(sessions))
	}
	if sessions[0].Name != "low-sugar" {
		t.Errorf("sessions should be ordered by name, got %v", sessions[0].Name)
	}
}
