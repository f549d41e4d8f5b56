package training

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/carson-networks/fraud-detection-server/internal/record"
)

// Dataset is a feature matrix with aligned labels.
type Dataset struct {
	X [][]float64
	Y []int
}

func (d Dataset) Len() int {
	return len(d.Y)
}

var csvHeader = append(append([]string{}, record.Fields...), record.FieldTxFraud)

// readLabeled loads a transaction CSV. Rows that fail to parse are skipped
// and counted; a missing required column fails the whole file.
func readLabeled(path string) ([]record.Labeled, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, 0, fmt.Errorf("%s: empty file", path)
	}
	if err != nil {
		return nil, 0, fmt.Errorf("%s: header: %w", path, err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		columns[name] = i
	}
	var missing []string
	for _, name := range record.Fields {
		if _, ok := columns[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, 0, fmt.Errorf("%s: missing columns %s", path, strings.Join(missing, ", "))
	}
	wanted := record.Fields
	if _, ok := columns[record.FieldTxFraud]; ok {
		wanted = csvHeader
	}

	var rows []record.Labeled
	skipped := 0
	for {
		line, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			skipped++
			continue
		}
		if err != nil {
			return nil, 0, fmt.Errorf("%s: %w", path, err)
		}

		form := make(record.Form, len(wanted))
		for _, name := range wanted {
			if col := columns[name]; col < len(line) {
				form[name] = line[col]
			}
		}
		labeled, err := record.ParseLabeled(form)
		if err != nil {
			skipped++
			continue
		}
		rows = append(rows, labeled)
	}
	return rows, skipped, nil
}

// writeLabeled writes rows in canonical form with the label column.
func writeLabeled(path string, rows []record.Labeled) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		f.Close()
		return err
	}
	line := make([]string, len(csvHeader))
	for _, row := range rows {
		form := row.Form()
		for i, name := range record.Fields {
			line[i] = form[name]
		}
		line[len(line)-1] = strconv.Itoa(row.Fraud)
		if err := w.Write(line); err != nil {
			f.Close()
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
