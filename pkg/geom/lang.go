package geom

import (
	"golang.org/x/text/language"

	"github.com/neunenak/typst/pkg/errors"
)

// rtlScripts lists ISO 15924 codes of scripts written right to left.
var rtlScripts = map[string]bool{
	"Adlm": true,
	"Arab": true,
	"Hebr": true,
	"Mand": true,
	"Nkoo": true,
	"Rohg": true,
	"Samr": true,
	"Syrc": true,
	"Thaa": true,
}

// SystemForLanguage derives the writing system from a language tag. The
// script is inferred when the tag does not name one, so "ar" and "he" give
// right-to-left text while "az-Arab" and "az-Latn" differ.
func SystemForLanguage(tag language.Tag) LayoutSystem {
	script, _ := tag.Script()
	if rtlScripts[script.String()] {
		return LayoutSystem{Primary: RTL, Secondary: TTB}
	}
	return DefaultSystem
}

// ParseLanguage parses a BCP 47 tag and returns its writing system.
func ParseLanguage(s string) (language.Tag, LayoutSystem, error) {
	tag, err := language.Parse(s)
	if err != nil {
		return language.Und, DefaultSystem, errors.Wrap(errors.ErrCodeInvalidLanguage, err, "parse language %q", s)
	}
	return tag, SystemForLanguage(tag), nil
}
