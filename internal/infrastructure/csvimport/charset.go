package csvimport

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/daskasas/inventory-tracker/internal/domain"
)

// Charsets soportados para los exports. Si el archivo trae BOM, el BOM manda.
const (
	CharsetUTF8        = "utf-8"
	CharsetLatin1      = "latin1"
	CharsetWindows1252 = "windows-1252"
)

// ParseCharset normaliza el nombre del charset configurado.
func ParseCharset(name string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf8", CharsetUTF8:
		return CharsetUTF8, nil
	case CharsetLatin1, "iso-8859-1", "iso8859-1":
		return CharsetLatin1, nil
	case CharsetWindows1252, "cp1252":
		return CharsetWindows1252, nil
	default:
		return "", fmt.Errorf("charset no soportado %q: %w", name, domain.ErrInvalidInput)
	}
}

// decode envuelve r para entregar UTF-8 sin BOM.
func decode(r io.Reader, charset string) io.Reader {
	var fallback encoding.Encoding = unicode.UTF8
	switch charset {
	case CharsetLatin1:
		fallback = charmap.ISO8859_1
	case CharsetWindows1252:
		fallback = charmap.Windows1252
	}
	return transform.NewReader(r, unicode.BOMOverride(fallback.NewDecoder()))
}
