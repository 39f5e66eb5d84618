package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// removeDiacritics descompone (NFD), elimina marcas combinantes y recompone (NFC).
var removeDiacritics = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// SearchKey normaliza un texto para búsqueda: minúsculas, sin acentos y sin
// espacios redundantes ("Açúcar  Refinado" -> "acucar refinado"). Los nombres
// de producto se comparan siempre por esta clave.
func SearchKey(s string) string {
	out, _, err := transform.String(removeDiacritics, s)
	if err != nil {
		out = s
	}
	return strings.Join(strings.Fields(strings.ToLower(out)), " ")
}
