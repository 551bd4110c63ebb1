package http

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/catalogo-productos/internal/application/dto"
	"github.com/jhoicas/catalogo-productos/internal/domain"
)

// productBody cuerpo de un alta/edición ya leído: JSON, multipart o urlencoded.
type productBody struct {
	c         *fiber.Ctx
	json      bool
	multipart *multipart.Form
}

// readProductBody lee el cuerpo una sola vez. Un multipart que no se puede parsear es
// domain.ErrInvalidInput, nunca "formulario vacío".
func readProductBody(c *fiber.Ctx) (*productBody, error) {
	b := &productBody{c: c, json: c.Is("json")}
	if strings.HasPrefix(string(c.Request().Header.ContentType()), fiber.MIMEMultipartForm) {
		form, err := c.MultipartForm()
		if err != nil {
			return nil, fmt.Errorf("%w: formulario inválido", domain.ErrInvalidInput)
		}
		b.multipart = form
	}
	return b, nil
}

// field devuelve el valor de un campo y si vino en la petición.
func (b *productBody) field(key string) (string, bool) {
	if b.multipart != nil {
		if vs, ok := b.multipart.Value[key]; ok && len(vs) > 0 {
			return vs[0], true
		}
		return "", false
	}
	args := b.c.Request().PostArgs()
	if !args.Has(key) {
		return "", false
	}
	return string(args.Peek(key)), true
}

func parsePrice(s string) (*decimal.Decimal, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: price no es un número válido", domain.ErrInvalidInput)
	}
	return &d, nil
}

// createRequest arma un CreateProductRequest desde el cuerpo.
func (b *productBody) createRequest() (dto.CreateProductRequest, error) {
	var in dto.CreateProductRequest
	if b.json {
		if err := b.c.BodyParser(&in); err != nil {
			return in, fmt.Errorf("%w: cuerpo inválido", domain.ErrInvalidInput)
		}
		return in, nil
	}
	in.Name, _ = b.field("name")
	in.CategoryID, _ = b.field("category_id")
	if raw, ok := b.field("price"); ok && strings.TrimSpace(raw) != "" {
		price, err := parsePrice(raw)
		if err != nil {
			return in, err
		}
		in.Price = price
	}
	return in, nil
}

// updateRequest igual que createRequest pero solo llena los campos presentes.
func (b *productBody) updateRequest() (dto.UpdateProductRequest, error) {
	var in dto.UpdateProductRequest
	if b.json {
		if err := b.c.BodyParser(&in); err != nil {
			return in, fmt.Errorf("%w: cuerpo inválido", domain.ErrInvalidInput)
		}
		return in, nil
	}
	if v, ok := b.field("name"); ok {
		in.Name = &v
	}
	if v, ok := b.field("category_id"); ok {
		in.CategoryID = &v
	}
	if v, ok := b.field("price"); ok {
		price, err := parsePrice(v)
		if err != nil {
			return in, err
		}
		in.Price = price
	}
	return in, nil
}

// image devuelve la imagen del campo "image" o nil si no se adjuntó archivo.
// El llamador debe cerrar el io.Closer devuelto.
func (b *productBody) image() (*dto.ImageUpload, io.Closer, error) {
	if b.multipart == nil {
		return nil, nil, nil
	}
	files := b.multipart.File["image"]
	if len(files) == 0 {
		return nil, nil, nil
	}
	fh := files[0]
	if fh.Filename == "" && fh.Size == 0 {
		return nil, nil, nil
	}
	file, err := fh.Open()
	if err != nil {
		return nil, nil, errors.Join(domain.ErrStorage, err)
	}
	return &dto.ImageUpload{Filename: fh.Filename, Size: fh.Size, Content: file}, file, nil
}
