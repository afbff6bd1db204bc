// Package ingredient parses free-text recipe lines such as
// "1 1/2 teaspoon water" or "1 (14.5 oz) can tomatoes" into structured
// (quantity, unit, name) records.
//
// The pipeline is one forward pass: whitespace tokenization, two merge
// rewrites (parenthesized spans, then adjacent quantity pairs), and group
// assembly at quantity boundaries.
package ingredient

import (
	"errors"
	"fmt"
	"iter"
	"strings"

	"github.com/platewise/rts/pkg/rts/internalerr"
)

// Ingredient is one structured record parsed from a recipe line. Records are
// plain values; equality is structural.
type Ingredient struct {
	Quantity string
	Unit     string
	Name     string
}

// MalformedLineError reports a token group too short to fill the
// quantity/unit/name slots.
type MalformedLineError struct {
	Tokens []string
}

func (e *MalformedLineError) Error() string {
	return fmt.Sprintf("malformed ingredient line %q: need at least quantity and unit", strings.Join(e.Tokens, " "))
}

func (e *MalformedLineError) Unwrap() error { return internalerr.ErrMalformedLine }

// Parser segments free-text recipe lines into Ingredient records. A Parser
// may be reused across calls; its classifier cache carries over.
type Parser struct {
	classifier *Classifier
}

// NewParser creates a parser with a fresh classifier.
func NewParser() *Parser {
	return &Parser{classifier: NewClassifier()}
}

// Classify exposes the parser's quantity classifier.
func (p *Parser) Classify(token string) (Value, bool) {
	return p.classifier.Classify(token)
}

// Parse segments raw into ingredient groups and yields one record per group,
// in input order. Multiple lines may be passed newline-joined; they collapse
// into one token stream. The merge passes run eagerly up front; assembly is
// lazy and the returned sequence is single-use.
//
// A new group starts whenever a token classifies as a quantity and the
// current group is non-empty; the very first token always starts the first
// group, and the final group is always flushed. A group with fewer than two
// tokens yields a *MalformedLineError and parsing continues with the rest.
func (p *Parser) Parse(raw string) iter.Seq2[Ingredient, error] {
	tokens := strings.Fields(raw)
	tokens = foldParens(tokens)
	tokens = coalesceQuantities(tokens, p.classifier)

	return func(yield func(Ingredient, error) bool) {
		var group []string
		flush := func() bool {
			ing, err := assemble(group)
			group = nil
			return yield(ing, err)
		}
		for _, tok := range tokens {
			if len(group) > 0 && p.classifier.IsQuantity(tok) {
				if !flush() {
					return
				}
			}
			group = append(group, tok)
		}
		if len(group) > 0 {
			flush()
		}
	}
}

// ParseAll drains Parse, returning the well-formed ingredients and any
// per-group errors joined together.
func (p *Parser) ParseAll(raw string) ([]Ingredient, error) {
	var (
		ings []Ingredient
		errs []error
	)
	for ing, err := range p.Parse(raw) {
		if err != nil {
			errs = append(errs, err)
			continue
		}
		ings = append(ings, ing)
	}
	return ings, errors.Join(errs...)
}

// assemble maps a token group onto the three ingredient slots: token 0 is
// the quantity, token 1 the unit, and the rest the name.
func assemble(group []string) (Ingredient, error) {
	if len(group) < 2 {
		return Ingredient{}, &MalformedLineError{Tokens: group}
	}
	return Ingredient{
		Quantity: group[0],
		Unit:     group[1],
		Name:     strings.Join(group[2:], " "),
	}, nil
}
