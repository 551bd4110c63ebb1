package http

import (
	"embed"
	"io/fs"
	"net/http"
	"strings"

	"github.com/gofiber/template/html/v2"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

//go:embed all:views
var viewsFS embed.FS

// ViewLayout layout común de todas las páginas.
const ViewLayout = "layouts/main"

// ViewOptions parámetros de presentación de las vistas.
type ViewOptions struct {
	Locale       string
	Currency     string
	DefaultImage string
}

// NewViewEngine construye el motor de plantillas HTML (embebidas) con las funciones de formato.
func NewViewEngine(opts ViewOptions) *html.Engine {
	sub, err := fs.Sub(viewsFS, "views")
	if err != nil {
		panic("views embebidas: " + err.Error())
	}
	engine := html.NewFileSystem(http.FS(sub), ".html")
	engine.AddFunc("price", PriceFormatter(opts.Locale, opts.Currency))
	engine.AddFunc("deref", func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	})
	engine.AddFunc("defaultImage", func() string { return opts.DefaultImage })
	return engine
}

// PriceFormatter devuelve una función que formatea precios con las convenciones del locale
// (separadores de miles y decimales) y dos decimales fijos. El valor nunca pasa por float64:
// la parte entera se agrupa como int64 y los decimales salen de StringFixed.
func PriceFormatter(locale, currency string) func(decimal.Decimal) string {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	p := message.NewPrinter(tag)
	sep := strings.Trim(p.Sprint(number.Decimal(0.5, number.Scale(1))), "05")
	if sep == "" {
		sep = "."
	}
	currency = strings.TrimSpace(currency)
	return func(d decimal.Decimal) string {
		d = d.Round(2)
		abs := d.Abs()
		frac := strings.SplitN(abs.StringFixed(2), ".", 2)
		s := p.Sprint(number.Decimal(abs.IntPart())) + sep + frac[len(frac)-1]
		if d.IsNegative() {
			s = "-" + s
		}
		if currency == "" {
			return s
		}
		return s + " " + currency
	}
}
