package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/platewise/rts/pkg/rts/ingredient"
	"github.com/platewise/rts/pkg/rts/internalerr"
	"github.com/platewise/rts/pkg/rts/store"
)

// Store is an in-memory implementation of store.Store for tests and
// ephemeral repositories.
type Store struct {
	mu        sync.RWMutex
	recipes   map[string]store.Recipe
	revisions map[string]store.Revision
	byRecipe  map[string][]string // recipe name → revision IDs in append order
	sessions  map[string]store.Session
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		recipes:   make(map[string]store.Recipe),
		revisions: make(map[string]store.Revision),
		byRecipe:  make(map[string][]string),
		sessions:  make(map[string]store.Session),
	}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// UpsertRecipe inserts or updates a recipe head.
func (s *Store) UpsertRecipe(ctx context.Context, r store.Recipe) error {
	if r.Name == "" {
		return internalerr.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recipes[r.Name] = r
	return nil
}

// GetRecipe returns a recipe by name.
func (s *Store) GetRecipe(ctx context.Context, name string) (store.Recipe, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.recipes[name]
	return r, ok, nil
}

// ListRecipes returns all tracked recipes ordered by name.
func (s *Store) ListRecipes(ctx context.Context) ([]store.Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	recipes := make([]store.Recipe, 0, len(s.recipes))
	for _, r := range s.recipes {
		recipes = append(recipes, r)
	}
	sort.Slice(recipes, func(i, j int) bool { return recipes[i].Name < recipes[j].Name })
	return recipes, nil
}

// AppendRevision records a revision and its parsed ingredients.
func (s *Store) AppendRevision(ctx context.Context, rev store.Revision) error {
	if rev.ID == "" || rev.Recipe == "" {
		return internalerr.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.revisions[rev.ID]; exists {
		return internalerr.ErrDuplicate
	}
	s.revisions[rev.ID] = copyRevision(rev)
	s.byRecipe[rev.Recipe] = append(s.byRecipe[rev.Recipe], rev.ID)
	return nil
}

// GetRevision returns a revision by ID.
func (s *Store) GetRevision(ctx context.Context, id string) (store.Revision, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rev, ok := s.revisions[id]
	if !ok {
		return store.Revision{}, false, nil
	}
	return copyRevision(rev), true, nil
}

// ListRevisions returns a recipe's revisions, newest first.
func (s *Store) ListRevisions(ctx context.Context, recipe string, limit int) ([]store.Revision, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 20
	}

	ids := s.byRecipe[recipe]
	revs := make([]store.Revision, 0, len(ids))
	for i := len(ids) - 1; i >= 0 && len(revs) < limit; i-- {
		revs = append(revs, copyRevision(s.revisions[ids[i]]))
	}
	return revs, nil
}

// UpsertSession inserts or updates a session head.
func (s *Store) UpsertSession(ctx context.Context, sess store.Session) error {
	if sess.Name == "" {
		return internalerr.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.sessions[sess.Name]; ok {
		existing.Head = sess.Head
		s.sessions[sess.Name] = existing
		return nil
	}
	s.sessions[sess.Name] = sess
	return nil
}

// GetSession returns a session by name.
func (s *Store) GetSession(ctx context.Context, name string) (store.Session, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[name]
	return sess, ok, nil
}

// ListSessions returns all sessions ordered by name.
func (s *Store) ListSessions(ctx context.Context) ([]store.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := make([]store.Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		sessions = append(sessions, sess)
	}
	sort.Slice(sessions, func(i, j int) bool { return sessions[i].Name < sessions[j].Name })
	return sessions, nil
}

func copyRevision(rev store.Revision) store.Revision {
	out := rev
	out.Ingredients = make([]ingredient.Ingredient, len(rev.Ingredients))
	copy(out.Ingredients, rev.Ingredients)
	return out
}
