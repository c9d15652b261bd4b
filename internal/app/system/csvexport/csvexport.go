// Package csvexport writes report rows as CSV downloads.
//
// Every data field is double-quoted with embedded quotes doubled, so values
// containing commas, quotes or newlines survive any CSV reader. The header
// row is the key list of the first record.
package csvexport

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// ErrNoData is returned when there is nothing to export.
var ErrNoData = errors.New("csvexport: no records")

// Field is one named cell of a record.
type Field struct {
	Key   string
	Value string
}

// Record is an ordered list of fields. All records in an export are
// expected to share the first record's keys.
type Record []Field

// Get returns the value stored under key, or "" when absent.
func (r Record) Get(key string) string {
	for _, f := range r {
		if f.Key == key {
			return f.Value
		}
	}
	return ""
}

// Keys returns the field keys in order.
func (r Record) Keys() []string {
	keys := make([]string, len(r))
	for i, f := range r {
		keys[i] = f.Key
	}
	return keys
}

// Quote wraps s in double quotes, doubling any quote inside it.
func Quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// Write serialises records to w. Rows are separated by "\n" with no
// trailing newline. Records missing a header key get an empty cell.
func Write(w io.Writer, records []Record) error {
	if len(records) == 0 {
		return ErrNoData
	}
	headers := records[0].Keys()

	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(strings.Join(headers, ",")); err != nil {
		return err
	}
	cells := make([]string, len(headers))
	for _, rec := range records {
		for i, h := range headers {
			cells[i] = Quote(rec.Get(h))
		}
		if _, err := bw.WriteString("\n" + strings.Join(cells, ",")); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Serve sends records as a CSV attachment named filename (".csv" is added
// when missing). With no records nothing is written to the response: the
// condition is logged and ErrNoData returned so the caller can show an alert.
func Serve(w http.ResponseWriter, logger *zap.Logger, filename string, records []Record) error {
	if len(records) == 0 {
		logger.Error("Nenhum dado para exportar", zap.String("file", filename))
		return ErrNoData
	}
	if filename == "" {
		filename = "export"
	}
	if !strings.HasSuffix(filename, ".csv") {
		filename += ".csv"
	}

	var buf bytes.Buffer
	if err := Write(&buf, records); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, err := w.Write(buf.Bytes())
	return err
}
