package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/rgehrsitz/finplan/internal/domain"
)

// Formatter renders a tax decision in one output format.
type Formatter interface {
	Name() string
	Format(d *domain.TaxDecision) ([]byte, error)
}

// AvailableFormats lists the names GetFormatterByName accepts
func AvailableFormats() []string {
	return []string{"console", "markdown", "json", "csv", "html"}
}

// GetFormatterByName returns the formatter for name, or nil if unknown.
// "markdown" is an alias for "console".
func GetFormatterByName(name, currency string) Formatter {
	if currency == "" {
		currency = domain.DefaultTaxRules().Currency
	}
	switch strings.ToLower(name) {
	case "console", "markdown", "md", "":
		return ConsoleFormatter{Currency: currency}
	case "json":
		return JSONFormatter{Currency: currency, Indent: true}
	case "csv":
		return CSVFormatter{}
	case "html":
		return HTMLFormatter{Currency: currency}
	default:
		return nil
	}
}

// GenerateReport writes d to w in the named format
func GenerateReport(w io.Writer, d *domain.TaxDecision, format, currency string) error {
	f := GetFormatterByName(format, currency)
	if f == nil {
		return fmt.Errorf("unsupported format: %s (available: %s)", format, strings.Join(AvailableFormats(), ", "))
	}

	data, err := f.Format(d)
	if err != nil {
		return fmt.Errorf("%s formatting failed: %w", f.Name(), err)
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// FormatterFunc adapts a function to Formatter
type FormatterFunc struct {
	ID string
	F  func(d *domain.TaxDecision) ([]byte, error)
}

func (f FormatterFunc) Name() string { return f.ID }

func (f FormatterFunc) Format(d *domain.TaxDecision) ([]byte, error) {
	return f.F(d)
}
