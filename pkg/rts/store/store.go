package store

import (
	"context"
	"time"

	"github.com/platewise/rts/pkg/rts/ingredient"
)

// Store is the main interface for persisting and querying recipe history
type Store interface {
	Close() error

	// Recipes
	UpsertRecipe(ctx context.Context, r Recipe) error
	GetRecipe(ctx context.Context, name string) (Recipe, bool, error)
	ListRecipes(ctx context.Context) ([]Recipe, error)

	// Revisions
	AppendRevision(ctx context.Context, rev Revision) error
	GetRevision(ctx context.Context, id string) (Revision, bool, error)
	ListRevisions(ctx context.Context, recipe string, limit int) ([]Revision, error)

	// Sessions
	UpsertSession(ctx context.Context, s Session) error
	GetSession(ctx context.Context, name string) (Session, bool, error)
	ListSessions(ctx context.Context) ([]Session, error)
}

// Recipe is a tracked recipe with a pointer to its latest revision
type Recipe struct {
	Name      string
	Head      string
	UpdatedAt time.Time
}

// Revision is one recorded state of a recipe. Ingredients hold the parsed
// form of RawText at the time the revision was taken.
type Revision struct {
	ID          string
	Recipe      string
	Session     string
	Parent      string
	Note        string
	RawText     string
	Ingredients []ingredient.Ingredient
	CreatedAt   time.Time
}

// Session is a named line of work with its own head revision
type Session struct {
	Name      string
	Head      string
	CreatedAt time.Time
}
