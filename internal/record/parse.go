package record

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

var datetimeLayouts = []string{
	DatetimeLayout,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// FieldError describes one offending field.
type FieldError struct {
	Row     int
	Field   string
	Message string
	Value   string
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidationError lists every offending field found while parsing.
type ValidationError struct {
	Errors []FieldError
	rows   int
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		if e.rows > 1 {
			parts[i] = fmt.Sprintf("row %d: %s", fe.Row, fe.Error())
		} else {
			parts[i] = fe.Error()
		}
	}
	return "invalid transaction record: " + strings.Join(parts, "; ")
}

// Fields returns the distinct offending field names in order of appearance.
func (e *ValidationError) Fields() []string {
	seen := make(map[string]bool, len(e.Errors))
	var names []string
	for _, fe := range e.Errors {
		if !seen[fe.Field] {
			seen[fe.Field] = true
			names = append(names, fe.Field)
		}
	}
	return names
}

type parser struct {
	form Form
	row  int
	errs []FieldError
}

func (p *parser) fail(field, value, msg string) {
	p.errs = append(p.errs, FieldError{Row: p.row, Field: field, Message: msg, Value: value})
}

func (p *parser) raw(field string) (string, bool) {
	v := strings.TrimSpace(p.form[field])
	if v == "" {
		p.fail(field, "", "is required")
		return "", false
	}
	return v, true
}

func (p *parser) text(field string) string {
	v, _ := p.raw(field)
	return v
}

func (p *parser) datetime(field string) time.Time {
	v, ok := p.raw(field)
	if !ok {
		return time.Time{}
	}
	for _, layout := range datetimeLayouts {
		if ts, err := time.ParseInLocation(layout, v, time.UTC); err == nil {
			return ts.UTC()
		}
	}
	p.fail(field, v, "must be a date-time such as 2018-04-01 00:00:31")
	return time.Time{}
}

func (p *parser) amount(field string) decimal.Decimal {
	v, ok := p.raw(field)
	if !ok {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		p.fail(field, v, "must be a number")
		return decimal.Zero
	}
	if d.IsNegative() {
		p.fail(field, v, "must not be negative")
		return decimal.Zero
	}
	if f := d.InexactFloat64(); math.IsInf(f, 0) {
		p.fail(field, v, "is out of range")
		return decimal.Zero
	}
	return d
}

func (p *parser) number(field string) float64 {
	v, ok := p.raw(field)
	if !ok {
		return 0
	}
	f, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		p.fail(field, v, "must be a number")
		return 0
	}
	if f < 0 {
		p.fail(field, v, "must not be negative")
		return 0
	}
	return f
}

func (p *parser) integer(field string) int {
	v, ok := p.raw(field)
	if !ok {
		return 0
	}
	n, err := decimalInt(v)
	if err != nil {
		p.fail(field, v, "must be an integer")
		return 0
	}
	if n < 0 {
		p.fail(field, v, "must not be negative")
		return 0
	}
	return n
}

func (p *parser) transaction() Transaction {
	return Transaction{
		TransactionID:   p.text(FieldTransactionID),
		TxDatetime:      p.datetime(FieldTxDatetime),
		CustomerID:      p.text(FieldCustomerID),
		TerminalID:      p.text(FieldTerminalID),
		TxAmount:        p.amount(FieldTxAmount),
		TxTimeSeconds:   p.number(FieldTxTimeSeconds),
		TxTimeDays:      p.number(FieldTxTimeDays),
		TxFraudScenario: p.integer(FieldTxFraudScenario),
	}
}

// Parse validates a single form. On failure it returns a *ValidationError
// naming every offending field.
func Parse(form Form) (Transaction, error) {
	p := &parser{form: form}
	tx := p.transaction()
	if len(p.errs) > 0 {
		return Transaction{}, &ValidationError{Errors: p.errs, rows: 1}
	}
	return tx, nil
}

// ParseFrame validates every row of a frame and returns the transactions
// in input order. Errors from all rows are reported together.
func ParseFrame(frame Frame) ([]Transaction, error) {
	txs := make([]Transaction, len(frame))
	var errs []FieldError
	for i, form := range frame {
		p := &parser{form: form, row: i}
		txs[i] = p.transaction()
		errs = append(errs, p.errs...)
	}
	if len(errs) > 0 {
		return nil, &ValidationError{Errors: errs, rows: len(frame)}
	}
	return txs, nil
}

// ParseLabeled validates a training row. When the TX_FRAUD column is
// absent the label is derived from the fraud scenario.
func ParseLabeled(form Form) (Labeled, error) {
	p := &parser{form: form}
	tx := p.transaction()

	label := 0
	if raw, present := form[FieldTxFraud]; present {
		v := strings.TrimSpace(raw)
		n, err := decimalInt(v)
		if err != nil || (n != 0 && n != 1) {
			p.fail(FieldTxFraud, v, "must be 0 or 1")
		}
		label = n
	} else if tx.TxFraudScenario > 0 {
		label = 1
	}

	if len(p.errs) > 0 {
		return Labeled{}, &ValidationError{Errors: p.errs, rows: 1}
	}
	return Labeled{Transaction: tx, Fraud: label}, nil
}

// decimalInt parses base 10 only. cast.ToIntE infers the base from the
// prefix, so "010" would read as octal.
func decimalInt(v string) (int, error) {
	n, err := strconv.ParseInt(v, 10, 0)
	return int(n), err
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func formatInt(n int) string {
	return strconv.Itoa(n)
}
