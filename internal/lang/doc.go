// Package lang maps requested language codes to a recognition model group
// and its character set.
//
// Each recognition model is trained for one script group (latin, arabic,
// cyrillic, ...) and covers a fixed set of languages plus English. The
// registry here is a data-driven table validated once against the requested
// language list at reader construction, so unsupported or mutually
// incompatible language combinations fail before any image work starts.
//
// Custom recognition networks trained by the user are described by a small
// YAML file carrying the model input height, the language list, and the full
// character list.
package lang
