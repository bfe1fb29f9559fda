package lang

import (
	"fmt"
	"sort"
	"strings"
)

// Group describes one recognition model: the script group it was trained
// for, the languages it covers, and its full character set.
type Group struct {
	// Key identifies the script group ("latin", "arabic", ...).
	Key string

	// Model is the identifier of the recognition model asset.
	Model string

	// Languages are the codes this model can recognize. English is always
	// included.
	Languages []string

	// Charset is every character the model can emit.
	Charset string

	// RTL marks groups whose scripts read right to left; their recognized
	// text gets a bidirectional display pass.
	RTL bool

	// GreedyOnly forces the greedy decoder regardless of caller options.
	// The CTC beam decoders are unusable on the very large CJK alphabets.
	GreedyOnly bool

	// Separators lists reserved word-boundary marker characters per
	// language, for scripts written without spaces.
	Separators map[string][]string
}

var (
	latinLangs      = []string{"en", "fr", "de", "es", "pt", "it", "nl", "pl", "tr", "id", "ms", "vi"}
	arabicLangs     = []string{"ar", "fa", "ur", "ug"}
	cyrillicLangs   = []string{"ru", "rs_cyrillic", "be", "bg", "uk", "mn"}
	devanagariLangs = []string{"hi", "mr", "ne"}
	bengaliLangs    = []string{"bn", "as"}
)

// groups is the model registry in priority order: the first group triggered
// by any requested language wins. Latin is the fallback.
var groups = []Group{
	{
		Key:       "thai",
		Model:     "thai",
		Languages: []string{"th", "en"},
		Charset:   "¢£¤¥" + Symbol + EnglishChars + thaiChars,
		Separators: map[string][]string{
			"th": {"¢", "£"},
			"en": {"¤", "¥"},
		},
	},
	{
		Key:        "chinese_tra",
		Model:      "chinese_tra",
		Languages:  []string{"ch_tra", "en"},
		Charset:    Number + Symbol + EnglishChars + hanChars,
		GreedyOnly: true,
	},
	{
		Key:        "chinese_sim",
		Model:      "chinese_sim",
		Languages:  []string{"ch_sim", "en"},
		Charset:    Number + Symbol + EnglishChars + hanChars,
		GreedyOnly: true,
	},
	{
		Key:        "japanese",
		Model:      "japanese",
		Languages:  []string{"ja", "en"},
		Charset:    Number + Symbol + EnglishChars + kanaChars + hanChars,
		GreedyOnly: true,
	},
	{
		Key:        "korean",
		Model:      "korean",
		Languages:  []string{"ko", "en"},
		Charset:    Number + Symbol + EnglishChars + hangulChars,
		GreedyOnly: true,
	},
	{
		Key:       "tamil",
		Model:     "tamil",
		Languages: []string{"ta", "en"},
		Charset:   Number + Symbol + EnglishChars + tamilChars,
	},
	{
		Key:       "telugu",
		Model:     "telugu",
		Languages: []string{"te", "en"},
		Charset:   Number + Symbol + EnglishChars + teluguChars,
	},
	{
		Key:       "kannada",
		Model:     "kannada",
		Languages: []string{"kn", "en"},
		Charset:   Number + Symbol + EnglishChars + kannadaChars,
	},
	{
		Key:       "bengali",
		Model:     "bengali",
		Languages: append(bengaliLangs, "en"),
		Charset:   Number + Symbol + EnglishChars + bengaliChars,
	},
	{
		Key:       "arabic",
		Model:     "arabic",
		Languages: append(arabicLangs, "en"),
		Charset:   Number + Symbol + EnglishChars + arabicChars,
		RTL:       true,
	},
	{
		Key:       "devanagari",
		Model:     "devanagari",
		Languages: append(devanagariLangs, "en"),
		Charset:   Number + Symbol + EnglishChars + devanagariChars,
	},
	{
		Key:       "cyrillic",
		Model:     "cyrillic",
		Languages: append(cyrillicLangs, "en"),
		Charset:   Number + Symbol + EnglishChars + cyrillicChars,
	},
	{
		Key:       "latin",
		Model:     "latin",
		Languages: latinLangs,
		Charset:   Number + Symbol + EnglishChars + latinExtra,
	},
}

// nativeChars maps each language code to the characters native to it, used
// to derive the default ignore list (model charset minus requested
// languages' characters).
var nativeChars = func() map[string]string {
	m := make(map[string]string)
	for _, l := range latinLangs {
		m[l] = EnglishChars + latinExtra
	}
	for _, l := range arabicLangs {
		m[l] = EnglishChars + arabicChars
	}
	for _, l := range cyrillicLangs {
		m[l] = EnglishChars + cyrillicChars
	}
	for _, l := range devanagariLangs {
		m[l] = EnglishChars + devanagariChars
	}
	for _, l := range bengaliLangs {
		m[l] = EnglishChars + bengaliChars
	}
	m["th"] = EnglishChars + thaiChars
	m["ta"] = EnglishChars + tamilChars
	m["te"] = EnglishChars + teluguChars
	m["kn"] = EnglishChars + kannadaChars
	m["ko"] = EnglishChars + hangulChars
	m["ja"] = EnglishChars + kanaChars + hanChars
	m["ch_sim"] = EnglishChars + hanChars
	m["ch_tra"] = EnglishChars + hanChars
	return m
}()

// Supported reports whether a language code is known to the registry.
func Supported(code string) bool {
	_, ok := nativeChars[code]
	return ok
}

// Resolve picks the model group for a requested language list. It returns an
// error when a language is unknown or when the list mixes languages that no
// single model covers.
func Resolve(langs []string) (*Group, error) {
	if len(langs) == 0 {
		return nil, fmt.Errorf("no languages requested")
	}
	for _, l := range langs {
		if !Supported(l) {
			return nil, fmt.Errorf("language %q is not supported", l)
		}
	}

	for i := range groups {
		g := &groups[i]
		if g.Key == "latin" {
			continue
		}
		if !intersects(langs, g.Languages) {
			continue
		}
		if extra := subtract(langs, g.Languages); len(extra) > 0 {
			return nil, fmt.Errorf("%s model is only compatible with %s; cannot add %s",
				g.Key, strings.Join(g.Languages, ","), strings.Join(extra, ","))
		}
		return g, nil
	}

	latin := &groups[len(groups)-1]
	if extra := subtract(langs, latin.Languages); len(extra) > 0 {
		return nil, fmt.Errorf("languages %s have no shared model", strings.Join(extra, ","))
	}
	return latin, nil
}

// NativeChars returns the union of the native character sets of the given
// languages, plus digits and punctuation.
func NativeChars(langs []string) string {
	set := make(map[rune]struct{})
	for _, l := range langs {
		for _, r := range nativeChars[l] {
			set[r] = struct{}{}
		}
	}
	for _, r := range Number + Symbol {
		set[r] = struct{}{}
	}

	runes := make([]rune, 0, len(set))
	for r := range set {
		runes = append(runes, r)
	}
	sort.Slice(runes, func(i, j int) bool { return runes[i] < runes[j] })
	return string(runes)
}

func intersects(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}

func subtract(a, b []string) []string {
	var out []string
	for _, x := range a {
		found := false
		for _, y := range b {
			if x == y {
				found = true
				break
			}
		}
		if !found {
			out = append(out, x)
		}
	}
	return out
}
