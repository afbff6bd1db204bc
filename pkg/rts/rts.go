package rts

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/platewise/rts/pkg/rts/ingredient"
	"github.com/platewise/rts/pkg/rts/internalerr"
	"github.com/platewise/rts/pkg/rts/store"
)

// RTS is the recipe track engine facade: it parses ingredient lines and
// records recipe revisions against a store.
type RTS struct {
	store   store.Store
	parser  *ingredient.Parser
	entropy *ulid.MonotonicEntropy
}

// Options configures an RTS instance
type Options struct {
	Store  store.Store
	Parser *ingredient.Parser
}

// New creates an RTS instance with the given dependencies
func New(opts Options) *RTS {
	parser := opts.Parser
	if parser == nil {
		parser = ingredient.NewParser()
	}
	return &RTS{
		store:   opts.Store,
		parser:  parser,
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
}

// Close cleanly shuts down the RTS instance
func (r *RTS) Close() error {
	return r.store.Close()
}

// Parse runs raw ingredient text through the parser without touching the
// store. Per-group malformed-line errors come back joined.
func (r *RTS) Parse(raw string) ([]ingredient.Ingredient, error) {
	return r.parser.ParseAll(raw)
}

// TrackRequest describes one recipe state to record
type TrackRequest struct {
	Recipe  string
	Session string
	RawText string
	Note    string
	Now     time.Time
}

// TrackResult is the recorded revision plus any non-fatal parse errors.
// ParseErr collects the malformed groups that were skipped; the revision is
// still recorded with whatever parsed cleanly.
type TrackResult struct {
	Revision store.Revision
	ParseErr error
}

// Track parses the raw text and appends a new revision for the recipe,
// advancing the recipe head and the session head. The previous recipe head
// becomes the revision's parent.
func (r *RTS) Track(ctx context.Context, req TrackRequest) (TrackResult, error) {
	if req.Recipe == "" {
		return TrackResult{}, fmt.Errorf("%w: recipe name required", internalerr.ErrInvalidInput)
	}
	session := req.Session
	if session == "" {
		session = "main"
	}
	now := req.Now
	if now.IsZero() {
		now = time.Now()
	}

	ings, parseErr := r.parser.ParseAll(req.RawText)

	existing, found, err := r.store.GetRecipe(ctx, req.Recipe)
	if err != nil {
		return TrackResult{}, err
	}
	parent := ""
	if found {
		parent = existing.Head
	} else {
		// The recipe row must exist before a revision references it; the
		// sqlite store enforces this with a foreign key.
		if err := r.store.UpsertRecipe(ctx, store.Recipe{Name: req.Recipe, UpdatedAt: now}); err != nil {
			return TrackResult{}, err
		}
	}

	rev := store.Revision{
		ID:          ulid.MustNew(ulid.Timestamp(now), r.entropy).String(),
		Recipe:      req.Recipe,
		Session:     session,
		Parent:      parent,
		Note:        req.Note,
		RawText:     req.RawText,
		Ingredients: ings,
		CreatedAt:   now,
	}

	if err := r.store.AppendRevision(ctx, rev); err != nil {
		return TrackResult{}, err
	}
	if err := r.store.UpsertRecipe(ctx, store.Recipe{
		Name:      req.Recipe,
		Head:      rev.ID,
		UpdatedAt: now,
	}); err != nil {
		return TrackResult{}, err
	}

	sess, found, err := r.store.GetSession(ctx, session)
	if err != nil {
		return TrackResult{}, err
	}
	if !found {
		sess = store.Session{Name: session, CreatedAt: now}
	}
	sess.Head = rev.ID
	if err := r.store.UpsertSession(ctx, sess); err != nil {
		return TrackResult{}, err
	}

	return TrackResult{Revision: rev, ParseErr: parseErr}, nil
}

// Log returns a recipe's revisions, newest first.
func (r *RTS) Log(ctx context.Context, recipe string, limit int) ([]store.Revision, error) {
	return r.store.ListRevisions(ctx, recipe, limit)
}

// Show returns a single revision by ID.
func (r *RTS) Show(ctx context.Context, id string) (store.Revision, error) {
	rev, found, err := r.store.GetRevision(ctx, id)
	if err != nil {
		return store.Revision{}, err
	}
	if !found {
		return store.Revision{}, fmt.Errorf("revision %s: %w", id, internalerr.ErrNotFound)
	}
	return rev, nil
}

// Recipes returns all tracked recipes.
func (r *RTS) Recipes(ctx context.Context) ([]store.Recipe, error) {
	return r.store.ListRecipes(ctx)
}

// Sessions returns all sessions.
func (r *RTS) Sessions(ctx context.Context) ([]store.Session, error) {
	return r.store.ListSessions(ctx)
}

// CreateSession registers a new named line of work.
func (r *RTS) CreateSession(ctx context.Context, name string) error {
	if name == "" {
		return fmt.Errorf("%w: session name required", internalerr.ErrInvalidInput)
	}
	_, found, err := r.store.GetSession(ctx, name)
	if err != nil {
		return err
	}
	if found {
		return fmt.Errorf("session %s: %w", name, internalerr.ErrDuplicate)
	}
	return r.store.UpsertSession(ctx, store.Session{Name: name, CreatedAt: time.Now()})
}

// Diff is the ingredient-level difference between two revisions
type Diff struct {
	Added   []ingredient.Ingredient
	Removed []ingredient.Ingredient
}

// DiffRevisions compares the parsed ingredients of two revisions.
func (r *RTS) DiffRevisions(ctx context.Context, fromID, toID string) (Diff, error) {
	from, err := r.Show(ctx, fromID)
	if err != nil {
		return Diff{}, err
	}
	to, err := r.Show(ctx, toID)
	if err != nil {
		return Diff{}, err
	}

	fromSet := make(map[ingredient.Ingredient]int, len(from.Ingredients))
	for _, ing := range from.Ingredients {
		fromSet[ing]++
	}

	var diff Diff
	for _, ing := range to.Ingredients {
		if fromSet[ing] > 0 {
			fromSet[ing]--
			continue
		}
		diff.Added = append(diff.Added, ing)
	}
	for _, ing := range from.Ingredients {
		if fromSet[ing] > 0 {
			fromSet[ing]--
			diff.Removed = append(diff.Removed, ing)
		}
	}
	return diff, nil
}
