package assets

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/jhoicas/CellStock-api/internal/application/usecase"
)

var _ usecase.AssetStorage = (*Storage)(nil)

// Storage guarda archivos (logos) en un afero.Fs y devuelve su URL pública.
// En producción fs es un BasePathFs sobre UPLOAD_DIR; en tests un MemMapFs.
type Storage struct {
	fs      afero.Fs
	baseURL string
}

// NewStorage construye el almacenamiento. baseURL es el prefijo servido por /uploads.
func NewStorage(fs afero.Fs, baseURL string) *Storage {
	return &Storage{fs: fs, baseURL: strings.TrimRight(baseURL, "/")}
}

// NewDiskStorage almacenamiento en disco con raíz dir.
func NewDiskStorage(dir, baseURL string) (*Storage, error) {
	osFs := afero.NewOsFs()
	if err := osFs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio de uploads: %w", err)
	}
	return NewStorage(afero.NewBasePathFs(osFs, dir), baseURL), nil
}

// Save escribe data en name (ruta relativa con "/") y devuelve la URL.
func (s *Storage) Save(_ context.Context, name string, data []byte) (string, error) {
	clean := path.Clean("/" + name)
	if clean == "/" {
		return "", fmt.Errorf("assets: nombre vacío")
	}
	if err := s.fs.MkdirAll(filepath.FromSlash(path.Dir(clean)), 0o755); err != nil {
		return "", fmt.Errorf("assets: crear directorio: %w", err)
	}
	if err := afero.WriteFile(s.fs, filepath.FromSlash(clean), data, 0o644); err != nil {
		return "", fmt.Errorf("assets: escribir %s: %w", clean, err)
	}
	return s.baseURL + clean, nil
}
