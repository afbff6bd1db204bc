package ingredient

import "testing"

func TestFoldParensBasic(t *testing.T) {
	got := foldParens([]string{"1", "(14.5", "oz)", "can", "tomatoes"})
	want := []string{"1", "(14.5 oz)", "can", "tomatoes"}
	if !equalTokens(got, want) {
		t.Errorf("foldParens = %v, want %v", got, want)
	}
}

func TestFoldParensLongSpan(t *testing.T) {
	got := foldParens([]string{"(about", "two", "cups)", "flour"})
	want := []string{"(about two cups)", "flour"}
	if !equalTokens(got, want) {
		t.Errorf("foldParens = %v, want %v", got, want)
	}
}

func TestFoldParensSingleToken(t *testing.T) {
	// A token that opens and closes in one piece is its own span.
	got := foldParens([]string{"1", "(16oz)", "box"})
	want := []string{"1", "(16oz)", "box"}
	if !equalTokens(got, want) {
		t.Errorf("foldParens = %v, want %v", got, want)
	}
}

func TestFoldParensUnbalanced(t *testing.T) {
	// An open span with no close degrades silently: tokens flow through.
	got := foldParens([]string{"1", "(14.5", "oz", "can"})
	want := []string{"1", "(14.5", "oz", "can"}
	if !equalTokens(got, want) {
		t.Errorf("foldParens = %v, want %v", got, want)
	}
}

func TestFoldParensNoNesting(t *testing.T) {
	// A second "(" inside an open span does not start a new span; the first
	// token ending in ")" closes the whole run.
	got := foldParens([]string{"(a", "(b", "c)", "d"})
	want := []string{"(a (b c)", "d"}
	if !equalTokens(got, want) {
		t.Errorf("foldParens = %v, want %v", got, want)
	}
}

func TestFoldParensMultipleSpans(t *testing.T) {
	got := foldParens([]string{"(14.5", "oz)", "x", "(16", "oz)"})
	want := []string{"(14.5 oz)", "x", "(16 oz)"}
	if !equalTokens(got, want) {
		t.Errorf("foldParens = %v, want %v", got, want)
	}
}

func TestCoalesceMixedNumber(t *testing.T) {
	c := NewClassifier()
	got := coalesceQuantities([]string{"1", "1/2", "teaspoon", "water"}, c)
	want := []string{"(1, 1/2)", "teaspoon", "water"}
	if !equalTokens(got, want) {
		t.Errorf("coalesceQuantities = %v, want %v", got, want)
	}
}

func TestCoalesceUsesOriginalTexts(t *testing.T) {
	c := NewClassifier()
	got := coalesceQuantities([]string{"10", "1/2", "cup"}, c)
	want := []string{"(10, 1/2)", "cup"}
	if !equalTokens(got, want) {
		t.Errorf("coalesceQuantities = %v, want %v", got, want)
	}
}

func TestCoalesceNonAdjacent(t *testing.T) {
	c := NewClassifier()
	got := coalesceQuantities([]string{"1", "cup", "2"}, c)
	want := []string{"1", "cup", "2"}
	if !equalTokens(got, want) {
		t.Errorf("coalesceQuantities = %v, want %v", got, want)
	}
}

func TestCoalesceOnlyOncePerPair(t *testing.T) {
	// Three quantities in a row: the composite is not merged again.
	c := NewClassifier()
	got := coalesceQuantities([]string{"1", "1/2", "3/4", "cup"}, c)
	want := []string{"(1, 1/2)", "3/4", "cup"}
	if !equalTokens(got, want) {
		t.Errorf("coalesceQuantities = %v, want %v", got, want)
	}
}

func TestCoalesceSkipsFoldedAside(t *testing.T) {
	// After folding, "(14.5 oz)" is one token and must not count as a bare
	// quantity next to "1".
	c := NewClassifier()
	got := coalesceQuantities([]string{"1", "(14.5 oz)", "can"}, c)
	want := []string{"1", "(14.5 oz)", "can"}
	if !equalTokens(got, want) {
		t.Errorf("coalesceQuantities = %v, want %v", got, want)
	}
}

func TestMergeOrderMatters(t *testing.T) {
	// Fold before coalesce: the aside's numbers never see the coalescer.
	c := NewClassifier()
	tokens := []string{"1", "(14.5", "oz)", "can", "tomatoes"}
	got := coalesceQuantities(foldParens(tokens), c)
	want := []string{"1", "(14.5 oz)", "can", "tomatoes"}
	if !equalTokens(got, want) {
		t.Errorf("merged = %v, want %v", got, want)
	}
}

func equalTokens(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
