package override

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cnucho/gptcatalog/internal/catalog"
	"github.com/cnucho/gptcatalog/internal/naming"
)

// ReadCSV loads a single-sheet override table. An optional lang column
// (en/ko and their aliases) routes a row to one language; rows without it
// apply to both.
func ReadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	t, err := parseCSV(f, path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

func parseCSV(r io.Reader, source string) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	var rows [][]string
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], "\ufeff")
	}

	t := NewTable(source)
	for _, rec := range records(rows) {
		switch naming.NormalizeLanguageCode(rec["lang"]) {
		case naming.CodeEN:
			t.Add(catalog.LangEN, rec)
		case naming.CodeKO:
			t.Add(catalog.LangKO, rec)
		default:
			t.Add(catalog.LangEN, rec)
			t.Add(catalog.LangKO, rec)
		}
	}
	return t, nil
}

// Load reads the override table at path, picking the reader by extension.
// A missing file returns an error wrapping os.ErrNotExist.
func Load(path string) (*Table, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return ReadWorkbook(path)
	case ".csv":
		return ReadCSV(path)
	}
	return nil, errors.New("unsupported override format: " + path)
}
