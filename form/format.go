package form

import (
	"fmt"
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formatter renders measurement numbers for display in a given locale.
// Values written back into input controls always use FormatInput instead.
type Formatter struct {
	tag     language.Tag
	printer *message.Printer
}

func NewFormatter(locale string) (*Formatter, error) {
	if locale == "" {
		locale = "en"
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("parse locale %q: %w", locale, err)
	}
	return &Formatter{tag: tag, printer: message.NewPrinter(tag)}, nil
}

func (f *Formatter) Locale() string {
	return f.tag.String()
}

// Number formats v with the given number of fractional digits.
func (f *Formatter) Number(v float64, decimals int) string {
	if decimals <= 0 {
		return f.printer.Sprintf("%d", int64(math.Round(v)))
	}
	return f.printer.Sprintf(fmt.Sprintf("%%.%df", decimals), v)
}

// Range describes the field bounds, e.g. "0 – 50,000".
func (f *Formatter) Range(field Field) string {
	d := field.Decimals()
	if field.Min == math.Trunc(field.Min) && field.Max == math.Trunc(field.Max) {
		d = 0
	}
	return f.Number(field.Min, d) + " – " + f.Number(field.Max, d)
}

// FormatInput renders v for an HTML input value attribute.
func FormatInput(v float64, decimals int) string {
	return strconv.FormatFloat(v, 'f', decimals, 64)
}
