package expense

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrEmptyStatement is returned for a statement without a header row
var ErrEmptyStatement = errors.New("statement is empty")

// Transaction is one classified statement row
type Transaction struct {
	Date        string       `json:"date"`
	Description string       `json:"description"`
	Amount      Money        `json:"amount"`
	Category    CategoryType `json:"category"`
}

// Statement is a parsed statement. Rows whose amount is not a number are
// counted in Skipped rather than failing the whole file.
type Statement struct {
	Transactions []Transaction `json:"transactions"`
	Skipped      int           `json:"skipped"`
}

var amountCleaner = strings.NewReplacer(",", "", "₹", "", " ", "")

// ParseCSV reads a statement with Date, Description and Amount columns in
// any order. Header names are matched case-insensitively; Date is optional.
func ParseCSV(r io.Reader, currency string, classifier *Classifier) (*Statement, error) {
	if classifier == nil {
		classifier = NewClassifier()
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyStatement
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	cols := map[string]int{"date": -1, "description": -1, "amount": -1}
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if _, ok := cols[key]; ok && cols[key] < 0 {
			cols[key] = i
		}
	}
	for _, required := range []string{"description", "amount"} {
		if cols[required] < 0 {
			return nil, fmt.Errorf("statement has no %s column", required)
		}
	}

	stmt := &Statement{Transactions: []Transaction{}}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read statement: %w", err)
		}

		amount, ok := parseAmount(field(record, cols["amount"]))
		if !ok {
			stmt.Skipped++
			continue
		}

		description := field(record, cols["description"])
		stmt.Transactions = append(stmt.Transactions, Transaction{
			Date:        field(record, cols["date"]),
			Description: description,
			Amount:      NewMoney(amount, currency),
			Category:    classifier.Classify(description),
		})
	}

	return stmt, nil
}

func field(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func parseAmount(raw string) (decimal.Decimal, bool) {
	cleaned := amountCleaner.Replace(raw)
	if cleaned == "" {
		return decimal.Zero, false
	}
	v, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, false
	}
	return v, true
}
