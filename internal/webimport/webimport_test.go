package webimport

import (
	"strings"
	"testing"
)

func TestExtractLines(t *testing.T) {
	page := `<html><body>
<h1>Pancakes</h1>
<ul>
  <li>2 cup flour</li>
  <li><span>1 1/2</span> teaspoon sugar</li>
  <li>1 (14.5 oz) can   milk</li>
</ul>
<p>Mix everything.</p>
</body></html>`

	lines, err := ExtractLines(strings.NewReader(page))
	if err != nil {
		t.Fatalf("ExtractLines: %v", err)
	}

	want := []string{
		"2 cup flour",
		"1 1/2 teaspoon sugar",
		"1 (14.5 oz) can milk",
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d: %v", len(lines), len(want), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestExtractLinesSkipsEmptyAndScripts(t *testing.T) {
	page := `<ul><li>  </li><li>1 cup rice<script>var x = 1;</script></li></ul>`

	lines, err := ExtractLines(strings.NewReader(page))
	if err != nil {
		t.Fatalf("ExtractLines: %v", err)
	}
	if len(lines) != 1 || lines[0] != "1 cup rice" {
		t.Errorf("got %v, want [\"1 cup rice\"]", lines)
	}
}

func TestExtractLinesNoLists(t *testing.T) {
	lines, err := ExtractLines(strings.NewReader("<p>just prose</p>"))
	if err != nil {
		t.Fatalf("ExtractLines: %v", err)
	}
	if len(lines) != 0 {
		t.Errorf("expected no lines, got %v", lines)
	}
}
