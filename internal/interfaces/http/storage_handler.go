package http

import (
	"io"
	"path"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalogo-productos/internal/domain/repository"
)

// StorageHandler sirve los blobs del ImageStore bajo el prefijo público (GET /storage/*).
type StorageHandler struct {
	images repository.ImageStore
}

// NewStorageHandler construye el handler.
func NewStorageHandler(images repository.ImageStore) *StorageHandler {
	return &StorageHandler{images: images}
}

// Serve GET <prefix>/*
func (h *StorageHandler) Serve(c *fiber.Ctx) error {
	rc, err := h.images.Open(c.UserContext(), path.Clean("/" + c.Params("*"))[1:])
	if err != nil {
		return err
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, mimetype.Detect(data).String())
	c.Set(fiber.HeaderCacheControl, "public, max-age=86400")
	return c.Send(data)
}
