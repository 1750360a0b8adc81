// Package fs exports scraped staff records to files.
package fs

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/staffdir"
)

// Format is an export file format.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// Header is the header row of tabular exports.
var Header = []string{"Name", "Job Title", "Email Address", "Scraped URL"}

// ParseFormat parses a format name, ignoring case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatCSV, FormatXLSX:
		return f, nil
	default:
		return "", staffdir.Errorf(staffdir.EINVALID, "Unsupported format %q.", s)
	}
}

// Encode writes records to w in the given format.
func Encode(w io.Writer, format Format, sourceURL string, records []*staffdir.StaffRecord) error {
	if records == nil {
		records = []*staffdir.StaffRecord{}
	}
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	case FormatCSV:
		cw := csv.NewWriter(w)
		if err := cw.Write(Header); err != nil {
			return err
		}
		for _, r := range records {
			if err := cw.Write([]string{r.Name, r.JobTitle, r.Email, sourceURL}); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	case FormatXLSX:
		return encodeXLSX(w, sourceURL, records)
	default:
		return staffdir.Errorf(staffdir.EINVALID, "Unsupported format %q.", format)
	}
}

// Ensure ExportWriter implements staffdir.RecordWriter at compile time.
var _ staffdir.RecordWriter = (*ExportWriter)(nil)

// ExportWriter writes records to a single file.
// The file is written to a temporary sibling first and renamed into place,
// so readers never observe a partial export.
type ExportWriter struct {
	path   string
	format Format
}

// NewExportWriter creates an ExportWriter for path.
func NewExportWriter(path string, format Format) *ExportWriter {
	return &ExportWriter{path: path, format: format}
}

// Path returns the destination file path.
func (w *ExportWriter) Path() string {
	return w.path
}

func (w *ExportWriter) WriteRecords(ctx context.Context, sourceURL string, records []*staffdir.StaffRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if w.path == "" {
		return staffdir.Errorf(staffdir.EINVALID, "Output path is required.")
	}

	dir := filepath.Dir(w.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(w.path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := Encode(tmp, w.format, sourceURL, records); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), w.path)
}
