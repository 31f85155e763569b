package datemath

const (
	classSymbol = iota
	classDigit
	classLetter
)

func classOf(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return classDigit
	case (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z'):
		return classLetter
	default:
		return classSymbol
	}
}

// tokenize splits an expression into single-symbol tokens, maximal digit runs
// and maximal letter runs. A token never spans a digit/letter boundary, and
// every non-alphanumeric byte is its own token. An empty expression yields no
// tokens.
func tokenize(expr string) []string {
	var toks []string
	start := 0
	for i := 0; i < len(expr); i++ {
		cls := classOf(expr[i])
		if cls == classSymbol {
			if i > start {
				toks = append(toks, expr[start:i])
			}
			toks = append(toks, expr[i:i+1])
			start = i + 1
			continue
		}
		if i > start && classOf(expr[i-1]) != cls {
			toks = append(toks, expr[start:i])
			start = i
		}
	}
	if start < len(expr) {
		toks = append(toks, expr[start:])
	}
	return toks
}
