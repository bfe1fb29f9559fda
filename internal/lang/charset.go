package lang

import "strings"

// Number and Symbol are shared by every model group.
const (
	Number = "0123456789"
	Symbol = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~ " + "€"
)

// EnglishChars is the latin base alphabet present in every model.
const EnglishChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// latinExtra covers the accented characters of the western-European
// languages served by the latin model.
const latinExtra = "àáâãäåæç" +
	"èéêëìíîïðñ" +
	"òóôõöøùúûü" +
	"ýÿÀÁÂÃÄÅÆÇ" +
	"ÈÉÊËÌÍÎÏÐÑ" +
	"ÒÓÔÕÖØÙÚÛÜ" +
	"ÝœŒßşŞğĞıİ"

// runeRange builds the string of all runes in [lo, hi].
func runeRange(lo, hi rune) string {
	var b strings.Builder
	b.Grow(int(hi-lo+1) * 3)
	for r := lo; r <= hi; r++ {
		b.WriteRune(r)
	}
	return b.String()
}

// Script blocks. Model charsets are assembled from these in the group table.
var (
	arabicChars     = runeRange(0x0600, 0x06FF) + runeRange(0x0750, 0x077F)
	cyrillicChars   = runeRange(0x0400, 0x04FF)
	devanagariChars = runeRange(0x0900, 0x097F)
	bengaliChars    = runeRange(0x0980, 0x09FF)
	tamilChars      = runeRange(0x0B80, 0x0BFF)
	teluguChars     = runeRange(0x0C00, 0x0C7F)
	kannadaChars    = runeRange(0x0C80, 0x0CFF)
	thaiChars       = runeRange(0x0E00, 0x0E7F)
	hangulChars     = runeRange(0xAC00, 0xD7A3)
	kanaChars       = runeRange(0x3040, 0x309F) + runeRange(0x30A0, 0x30FF)
	hanChars        = runeRange(0x4E00, 0x9FFF)
)
