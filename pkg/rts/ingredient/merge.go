package ingredient

import "strings"

// Two rewriting passes run over the token sequence before segmentation, in
// this order: parenthesis folding, then quantity coalescing. Folding must run
// first so that an aside like "(14.5 oz)" is one token by the time
// coalescing looks for bare quantities. Both passes build a fresh slice
// instead of mutating in place.

// foldParens rewrites each parenthesized span into a single space-joined
// token: ["(16", "oz)"] → ["(16 oz)"]. Spans do not nest; a "(" seen inside
// an open span does not start a new one. An open span with no closing token
// is left as-is and its tokens flow through unmerged.
func foldParens(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for i := 0; i < len(tokens); {
		if !strings.HasPrefix(tokens[i], "(") {
			out = append(out, tokens[i])
			i++
			continue
		}
		end := -1
		for j := i; j < len(tokens); j++ {
			if strings.HasSuffix(tokens[j], ")") {
				end = j
				break
			}
		}
		if end < 0 {
			out = append(out, tokens[i:]...)
			break
		}
		out = append(out, strings.Join(tokens[i:end+1], " "))
		i = end + 1
	}
	return out
}

// coalesceQuantities merges each adjacent pair of quantity tokens into one
// composite token "(A, B)" built from the original texts, turning mixed
// numbers like "1 1/2" into "(1, 1/2)". A freshly merged composite is not
// merged again with its right neighbor, and quantities separated by a
// non-quantity token are never merged.
func coalesceQuantities(tokens []string, c *Classifier) []string {
	out := make([]string, 0, len(tokens))
	for i := 0; i < len(tokens); {
		if i+1 < len(tokens) && c.IsQuantity(tokens[i]) && c.IsQuantity(tokens[i+1]) {
			out = append(out, "("+tokens[i]+", "+tokens[i+1]+")")
			i += 2
			continue
		}
		out = append(out, tokens[i])
		i++
	}
	return out
}
