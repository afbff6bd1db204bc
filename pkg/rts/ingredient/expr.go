package ingredient

import (
	"strconv"
	"strings"
)

// The constant-expression strategy accepts a closed grammar and nothing else:
//
//	expr  := NUMBER (('/'|'-'|'+') NUMBER)? | '(' elem (',' elem)* ')'
//	elem  := NUMBER ('/' NUMBER)?
//
// Division renders the numeric quotient. Subtraction is how ranges are
// written, so "10-20" renders back to the string "10-20" rather than being
// evaluated. Addition is parsed but has no rendering; it is rejected as
// malformed. Tuple elements admit fractions so that coalesced composites like
// "(1, 1/2)" still classify as quantities.

type itemKind int

const (
	itemEOF itemKind = iota
	itemNumber
	itemSlash
	itemMinus
	itemPlus
	itemLParen
	itemRParen
	itemComma
)

type exprItem struct {
	kind itemKind
	text string
}

// lexExpr scans src into grammar items. Any rune outside the grammar
// alphabet fails the whole scan.
func lexExpr(src string) ([]exprItem, bool) {
	var items []exprItem
	rs := []rune(src)
	for i := 0; i < len(rs); {
		r := rs[i]
		switch {
		case r == ' ' || r == '\t':
			i++
		case (r >= '0' && r <= '9') || r == '.':
			j := i
			dots := 0
			for j < len(rs) && ((rs[j] >= '0' && rs[j] <= '9') || rs[j] == '.') {
				if rs[j] == '.' {
					dots++
				}
				j++
			}
			if dots > 1 || dots == j-i {
				return nil, false
			}
			items = append(items, exprItem{itemNumber, string(rs[i:j])})
			i = j
		case r == '/':
			items = append(items, exprItem{kind: itemSlash})
			i++
		case r == '-':
			items = append(items, exprItem{kind: itemMinus})
			i++
		case r == '+':
			items = append(items, exprItem{kind: itemPlus})
			i++
		case r == '(':
			items = append(items, exprItem{kind: itemLParen})
			i++
		case r == ')':
			items = append(items, exprItem{kind: itemRParen})
			i++
		case r == ',':
			items = append(items, exprItem{kind: itemComma})
			i++
		default:
			return nil, false
		}
	}
	return items, true
}

// evalExpr parses src against the quantity grammar and renders its value.
// Malformed input, including division by zero, reports not-parsed.
func evalExpr(src string) (Value, bool) {
	items, ok := lexExpr(src)
	if !ok || len(items) == 0 {
		return Value{}, false
	}
	p := &exprParser{items: items}
	var v Value
	if p.peek().kind == itemLParen {
		v, ok = p.tuple()
	} else {
		v, ok = p.binary()
	}
	if !ok || !p.eof() {
		return Value{}, false
	}
	return v, true
}

type exprParser struct {
	items []exprItem
	pos   int
}

func (p *exprParser) peek() exprItem {
	if p.pos >= len(p.items) {
		return exprItem{kind: itemEOF}
	}
	return p.items[p.pos]
}

func (p *exprParser) next() exprItem {
	it := p.peek()
	p.pos++
	return it
}

func (p *exprParser) eof() bool { return p.pos >= len(p.items) }

// binary := NUMBER (('/'|'-'|'+') NUMBER)?
func (p *exprParser) binary() (Value, bool) {
	left, ok := p.number()
	if !ok {
		return Value{}, false
	}
	switch p.peek().kind {
	case itemSlash:
		p.next()
		right, ok := p.number()
		if !ok || right == 0 {
			return Value{}, false
		}
		return Value{Kind: KindNumber, Number: left / right}, true
	case itemMinus:
		p.next()
		right, ok := p.number()
		if !ok {
			return Value{}, false
		}
		// Ranges keep their textual form.
		return Value{Kind: KindText, Text: formatNum(left) + "-" + formatNum(right)}, true
	case itemPlus:
		return Value{}, false
	}
	return Value{Kind: KindNumber, Number: left}, true
}

// tuple := '(' elem (',' elem)* ')'
func (p *exprParser) tuple() (Value, bool) {
	if p.next().kind != itemLParen {
		return Value{}, false
	}
	var elems []string
	for {
		lex, ok := p.elem()
		if !ok {
			return Value{}, false
		}
		elems = append(elems, lex)
		switch p.next().kind {
		case itemComma:
		case itemRParen:
			return Value{Kind: KindText, Text: "(" + strings.Join(elems, ", ") + ")"}, true
		default:
			return Value{}, false
		}
	}
}

// elem := NUMBER ('/' NUMBER)?  The element's own lexeme is preserved in the
// tuple rendering.
func (p *exprParser) elem() (string, bool) {
	it := p.peek()
	if it.kind != itemNumber {
		return "", false
	}
	p.next()
	if p.peek().kind != itemSlash {
		return it.text, true
	}
	p.next()
	den := p.peek()
	if den.kind != itemNumber {
		return "", false
	}
	p.next()
	f, err := strconv.ParseFloat(den.text, 64)
	if err != nil || f == 0 {
		return "", false
	}
	return it.text + "/" + den.text, true
}

func (p *exprParser) number() (float64, bool) {
	it := p.peek()
	if it.kind != itemNumber {
		return 0, false
	}
	p.next()
	f, err := strconv.ParseFloat(it.text, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func formatNum(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
