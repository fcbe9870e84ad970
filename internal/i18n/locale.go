// Package i18n renders analytics results as pt-BR or en-US text.
package i18n

import (
	"fmt"
	"strings"
)

type Locale string

const (
	PtBR Locale = "pt-BR"
	EnUS Locale = "en-US"

	DefaultLocale = PtBR
)

var Locales = []Locale{PtBR, EnUS}

// ParseLocale accepts pt-BR and en-US in any case, with - or _ as separator.
// An empty value yields the default locale.
func ParseLocale(value string) (Locale, error) {
	v := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(value), "_", "-"))
	switch v {
	case "":
		return DefaultLocale, nil
	case "pt-br", "pt":
		return PtBR, nil
	case "en-us", "en":
		return EnUS, nil
	}
	return "", fmt.Errorf("unsupported locale %q (use pt-BR|en-US)", value)
}

// pick returns the text for l, falling back to the default locale.
func pick(l Locale, pt, en string) string {
	if l == EnUS {
		return en
	}
	return pt
}
