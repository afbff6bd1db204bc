package ingredient

import (
	"strconv"
	"unicode/utf8"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Kind discriminates the two renderings of a classified quantity.
type Kind int

const (
	// KindNumber is a plain decimal value ("1", "1.5", quotients like "1/3").
	KindNumber Kind = iota
	// KindText is a formatted string (ranges "10-20", tuples "(1, 1/2)").
	KindText
)

// Value is the normalized result of classifying a token as a quantity.
type Value struct {
	Kind   Kind
	Number float64
	Text   string
}

// String renders the value the way the classifier quotes it.
func (v Value) String() string {
	if v.Kind == KindText {
		return v.Text
	}
	return formatNum(v.Number)
}

const cacheSize = 4096

// Classifier decides whether a whitespace-delimited token denotes a numeric
// quantity. Classification is a pure function of the token text, so results
// are memoized; the merge passes re-classify the same tokens many times.
// Negative results are cached too, so a miss is distinct from "not a
// quantity".
type Classifier struct {
	cache *lru.Cache[string, classified]
}

type classified struct {
	val Value
	ok  bool
}

// NewClassifier creates a classifier with an empty memo cache. A single
// classifier may be shared across parses; the cache is safe for concurrent
// use.
func NewClassifier() *Classifier {
	cache, _ := lru.New[string, classified](cacheSize)
	return &Classifier{cache: cache}
}

// strategies are tried in order; the first to parse wins.
var strategies = []func(string) (Value, bool){
	parseLiteral,
	parseNumeral,
	evalExpr,
}

// Classify reports whether token denotes a quantity and, if so, its
// normalized value. Repeated calls with the same token return identical
// results.
func (c *Classifier) Classify(token string) (Value, bool) {
	if r, ok := c.cache.Get(token); ok {
		return r.val, r.ok
	}
	var r classified
	for _, parse := range strategies {
		if v, ok := parse(token); ok {
			r = classified{val: v, ok: true}
			break
		}
	}
	c.cache.Add(token, r)
	return r.val, r.ok
}

// IsQuantity reports whether token classifies as a quantity.
func (c *Classifier) IsQuantity(token string) bool {
	_, ok := c.Classify(token)
	return ok
}

// parseLiteral handles plain integers and decimals. Exponents, hex forms and
// digit separators are deliberately out: anything fancier falls through to
// the later strategies.
func parseLiteral(token string) (Value, bool) {
	if !literalShape(token) {
		return Value{}, false
	}
	f, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return Value{}, false
	}
	return Value{Kind: KindNumber, Number: f}, true
}

// literalShape: optional sign, digits, at most one dot, at least one digit.
func literalShape(s string) bool {
	if s == "" {
		return false
	}
	i := 0
	if s[0] == '+' || s[0] == '-' {
		i++
	}
	digits, dots := 0, 0
	for ; i < len(s); i++ {
		switch {
		case s[i] >= '0' && s[i] <= '9':
			digits++
		case s[i] == '.':
			dots++
		default:
			return false
		}
	}
	return digits > 0 && dots <= 1
}

// vulgarFractions maps the Unicode fraction glyphs to their numeric values.
var vulgarFractions = map[rune]float64{
	'¼': 0.25, '½': 0.5, '¾': 0.75,
	'⅐': 1.0 / 7, '⅑': 1.0 / 9, '⅒': 0.1,
	'⅓': 1.0 / 3, '⅔': 2.0 / 3,
	'⅕': 0.2, '⅖': 0.4, '⅗': 0.6, '⅘': 0.8,
	'⅙': 1.0 / 6, '⅚': 5.0 / 6,
	'⅛': 0.125, '⅜': 0.375, '⅝': 0.625, '⅞': 0.875,
	'↉': 0,
}

// parseNumeral decodes tokens that are exactly one rune carrying an
// intrinsic numeric value, such as the vulgar fraction glyphs. Single ASCII
// digits never reach this strategy; the literal parse claims them first.
func parseNumeral(token string) (Value, bool) {
	r, size := utf8.DecodeRuneInString(token)
	if size == 0 || size != len(token) {
		return Value{}, false
	}
	f, ok := vulgarFractions[r]
	if !ok {
		return Value{}, false
	}
	return Value{Kind: KindNumber, Number: f}, true
}
