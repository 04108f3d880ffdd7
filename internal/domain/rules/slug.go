package rules

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/CellStock-api/internal/domain"
)

// Slugify deriva el handle de una tienda a partir de su nombre:
// minúsculas, sin acentos, solo [a-z0-9-] y sin espacios ni guiones bajos.
// "Isaac Imports" → "isaacimports".
func Slugify(name string) (string, error) {
	folded, _, err := transform.String(
		transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC),
		strings.ToLower(strings.TrimSpace(name)),
	)
	if err != nil {
		return "", domain.InvalidInput("nombre de tienda inválido")
	}
	var b strings.Builder
	for _, r := range folded {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "", domain.InvalidInput("el nombre de la tienda no genera un slug válido")
	}
	return b.String(), nil
}

var folder = cases.Fold()

// FoldKey normaliza un texto para comparaciones sin distinguir mayúsculas.
func FoldKey(s string) string {
	return folder.String(strings.TrimSpace(s))
}
