package rules

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/jhoicas/CellStock-api/internal/domain"
)

// MaxAssetBytes tamaño máximo de un logo.
const MaxAssetBytes int64 = 5 << 20

var assetExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".webp"}

// ValidateAsset revisa extensión y tamaño de una imagen. Devuelve la extensión en minúsculas.
// max <= 0 usa MaxAssetBytes.
func ValidateAsset(filename string, size, max int64) (string, error) {
	if max <= 0 {
		max = MaxAssetBytes
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if !slices.Contains(assetExtensions, ext) {
		return "", domain.InvalidInput(fmt.Sprintf("extensión no permitida %q: use %s", ext, strings.Join(assetExtensions, ", ")))
	}
	if size <= 0 {
		return "", domain.InvalidInput("archivo vacío")
	}
	if size > max {
		return "", domain.InvalidInput(fmt.Sprintf("archivo demasiado grande: máximo %d bytes", max))
	}
	return ext, nil
}
