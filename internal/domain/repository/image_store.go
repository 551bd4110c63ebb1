package repository

import (
	"context"
	"io"
)

// ImageStore guarda blobs subidos y devuelve una ruta estable relativa a la raíz de almacenamiento
// (ej. "products/3f2c...jpg"). ext incluye el punto (".jpg"); URL traduce la ruta a la URL pública.
type ImageStore interface {
	Store(ctx context.Context, prefix, ext string, r io.Reader) (string, error)
	URL(path string) string
	Open(ctx context.Context, path string) (io.ReadCloser, error)
}
