package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ReadCSV reads a catalog whose first record is a header of column names.
// Extra columns are ignored; the kind is detected from the header.
func ReadCSV(r io.Reader) (*Catalog, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.Comment = '#'

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("empty catalog: missing header")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}

	kind, err := detectKind(func(col string) bool {
		_, ok := index[col]
		return ok
	})
	if err != nil {
		return nil, err
	}

	c := &Catalog{Kind: kind}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		line, _ := reader.FieldPos(0)

		err = c.appendRow(func(col string) (float64, error) {
			cell := strings.TrimSpace(record[index[col]])
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return 0, fmt.Errorf("line %d column %s: invalid number %q", line, col, cell)
			}
			return v, nil
		})
		if err != nil {
			return nil, err
		}
	}

	return c, nil
}

// WriteCSV writes the catalog with a canonical header. Values are formatted
// with the shortest representation that round-trips exactly.
func WriteCSV(c *Catalog, w io.Writer) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(c.Kind.Columns()); err != nil {
		return err
	}

	for i := 0; i < c.Len(); i++ {
		values := c.rowValues(i)
		record := make([]string, len(values))
		for j, v := range values {
			record[j] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// ReadCSVFile reads a CSV catalog from disk.
func ReadCSVFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer func() { _ = f.Close() }()

	c, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// WriteCSVFile writes a CSV catalog to disk, creating parent directories.
func WriteCSVFile(c *Catalog, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create catalog directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create catalog: %w", err)
	}

	if err := WriteCSV(c, f); err != nil {
		_ = f.Close()
		return fmt.Errorf("write catalog: %w", err)
	}
	return f.Close()
}
