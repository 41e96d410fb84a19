package report

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	dateLayout     = "2/1/2006"
	dateTimeLayout = "2/1/2006, 15.04.05"
	fileDateLayout = "2006-01-02"
)

// Formatter renders amounts and times for one locale and time zone.
type Formatter struct {
	printer *message.Printer
	loc     *time.Location
}

// NewFormatter builds a formatter. Unknown locales fall back to Indonesian.
func NewFormatter(locale string, loc *time.Location) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.Indonesian
	}
	if loc == nil {
		loc = time.Local
	}
	return &Formatter{printer: message.NewPrinter(tag), loc: loc}
}

// Currency renders minor units as rupiah with locale digit grouping.
func (f *Formatter) Currency(amount int64) string {
	return f.printer.Sprintf("Rp %d", amount)
}

func (f *Formatter) Date(t time.Time) string {
	return t.In(f.loc).Format(dateLayout)
}

func (f *Formatter) DateTime(t time.Time) string {
	return t.In(f.loc).Format(dateTimeLayout)
}

// FileName returns the export file name for the local day of t.
func (f *Formatter) FileName(t time.Time) string {
	return "laporan-" + t.In(f.loc).Format(fileDateLayout) + ".txt"
}
