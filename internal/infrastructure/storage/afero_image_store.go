// Package storage implementa el almacenamiento de imágenes sobre un sistema de archivos afero.
// En producción se usa un OsFs acotado a STORAGE_ROOT; en tests un MemMapFs.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/jhoicas/catalogo-productos/internal/domain"
	"github.com/jhoicas/catalogo-productos/internal/domain/repository"
)

var _ repository.ImageStore = (*AferoImageStore)(nil)

// AferoImageStore guarda cada blob con un nombre aleatorio bajo su prefijo ("products/<uuid>.png").
type AferoImageStore struct {
	fs        afero.Fs
	urlPrefix string
}

// NewAferoImageStore construye el store. urlPrefix es la ruta pública donde se sirven los blobs (ej. "/storage").
func NewAferoImageStore(fs afero.Fs, urlPrefix string) *AferoImageStore {
	return &AferoImageStore{fs: fs, urlPrefix: strings.TrimRight(urlPrefix, "/")}
}

// NewLocalImageStore crea el directorio raíz si no existe y devuelve un store sobre el disco local.
func NewLocalImageStore(root, urlPrefix string) (*AferoImageStore, error) {
	osFs := afero.NewOsFs()
	if err := osFs.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("crear raíz de almacenamiento %s: %w", root, err)
	}
	return NewAferoImageStore(afero.NewBasePathFs(osFs, root), urlPrefix), nil
}

// Store escribe r en prefix/<uuid><ext> y devuelve esa ruta relativa.
func (s *AferoImageStore) Store(_ context.Context, prefix, ext string, r io.Reader) (string, error) {
	prefix, err := cleanRelative(prefix)
	if err != nil {
		return "", err
	}
	if err := s.fs.MkdirAll(prefix, 0o755); err != nil {
		return "", fmt.Errorf("crear directorio %s: %w", prefix, err)
	}
	name := path.Join(prefix, uuid.New().String()+strings.ToLower(ext))
	f, err := s.fs.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("crear archivo %s: %w", name, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = s.fs.Remove(name)
		return "", fmt.Errorf("escribir archivo %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("cerrar archivo %s: %w", name, err)
	}
	return name, nil
}

// Open abre un blob previamente guardado; domain.ErrNotFound si no existe.
func (s *AferoImageStore) Open(_ context.Context, p string) (io.ReadCloser, error) {
	p, err := cleanRelative(p)
	if err != nil {
		return nil, err
	}
	f, err := s.fs.Open(p)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("abrir archivo %s: %w", p, err)
	}
	return f, nil
}

// URL ruta pública del blob.
func (s *AferoImageStore) URL(p string) string {
	return s.urlPrefix + "/" + strings.TrimLeft(p, "/")
}

// cleanRelative rechaza rutas absolutas o que escapen de la raíz.
func cleanRelative(p string) (string, error) {
	c := strings.TrimPrefix(path.Clean("/"+p), "/")
	if c == "" || strings.Contains(p, "..") {
		return "", fmt.Errorf("%w: ruta de almacenamiento inválida %q", domain.ErrInvalidInput, p)
	}
	return c, nil
}
