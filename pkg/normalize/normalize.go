// Package normalize normaliza texto de búsqueda: los nombres de producto y SKU
// llegan con tildes y mayúsculas ("Azúcar Morena") y la búsqueda debe ser
// insensible a ambas.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var foldTransformer = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)), // elimina marcas diacríticas (tildes, diéresis)
	norm.NFC,
)

// Fold devuelve s en minúsculas y sin diacríticos, lista para comparar o
// usar en un LIKE. Si la transformación falla devuelve s en minúsculas.
func Fold(s string) string {
	out, _, err := transform.String(foldTransformer, s)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(s))
	}
	return strings.ToLower(strings.TrimSpace(out))
}
