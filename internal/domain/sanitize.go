package domain

import (
	"strings"
)

// Replacements for characters commonly found in customer-supplied names that
// fall outside the SEPA basic latin character set (EPC217-08).
var sepaReplacements = map[rune]string{
	'ä': "ae", 'ö': "oe", 'ü': "ue", 'ß': "ss",
	'Ä': "Ae", 'Ö': "Oe", 'Ü': "Ue",
	'á': "a", 'à': "a", 'â': "a", 'ã': "a", 'å': "a",
	'é': "e", 'è': "e", 'ê': "e", 'ë': "e",
	'í': "i", 'ì': "i", 'î': "i", 'ï': "i",
	'ó': "o", 'ò': "o", 'ô': "o", 'õ': "o",
	'ú': "u", 'ù': "u", 'û': "u",
	'ç': "c", 'ñ': "n",
	'Á': "A", 'À': "A", 'Â': "A", 'Ã': "A", 'Å': "A",
	'É': "E", 'È': "E", 'Ê': "E", 'Ë': "E",
	'Í': "I", 'Ì': "I", 'Î': "I", 'Ï': "I",
	'Ó': "O", 'Ò': "O", 'Ô': "O", 'Õ': "O",
	'Ú': "U", 'Ù': "U", 'Û': "U",
	'Ç': "C", 'Ñ': "N",
	'&': "+", '@': "(at)",
}

// Sanitize trims a free-text field and maps it onto the SEPA basic character
// set. Characters with no sensible replacement are dropped. Deterministic and
// side-effect free; applied to every free-text identity field before storage.
func Sanitize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))

	for _, r := range strings.TrimSpace(raw) {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case strings.ContainsRune(" /-?:().,'+", r):
			b.WriteRune(r)
		default:
			if repl, ok := sepaReplacements[r]; ok {
				b.WriteString(repl)
			}
		}
	}

	return b.String()
}
