package override

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/cnucho/gptcatalog/internal/catalog"
)

// Sheet names tried in order per language.
var sheetCandidates = map[catalog.Language][]string{
	catalog.LangEN: {"gpt_index_en", "index_en"},
	catalog.LangKO: {"gpt_index_ko", "index_ko"},
}

// ReadWorkbook loads the override sheets of an .xlsx file. The first row of
// a sheet is the header; rows whose first cell is empty are skipped. A
// workbook with neither sheet yields ErrNoSheet.
func ReadWorkbook(path string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	t := NewTable(path)
	found := 0
	for _, lang := range []catalog.Language{catalog.LangEN, catalog.LangKO} {
		name := firstSheet(f, sheetCandidates[lang])
		if name == "" {
			t.Missing = append(t.Missing, lang)
			continue
		}
		found++
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("%s: read sheet %s: %w", path, name, err)
		}
		for _, rec := range records(rows) {
			t.Add(lang, rec)
		}
	}
	if found == 0 {
		return nil, fmt.Errorf("%s: %w (tried %v, %v)", path, ErrNoSheet,
			sheetCandidates[catalog.LangEN], sheetCandidates[catalog.LangKO])
	}
	return t, nil
}

func firstSheet(f *excelize.File, candidates []string) string {
	for _, name := range candidates {
		if idx, err := f.GetSheetIndex(name); err == nil && idx >= 0 {
			return name
		}
	}
	return ""
}

// records turns a header row plus data rows into Records.
func records(rows [][]string) []Record {
	if len(rows) == 0 {
		return nil
	}
	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.ToLower(strings.TrimSpace(h))
	}
	var out []Record
	for _, row := range rows[1:] {
		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}
		rec := make(Record, len(header))
		for i, h := range header {
			if h == "" {
				continue
			}
			if i < len(row) {
				rec[h] = strings.TrimSpace(row[i])
			}
		}
		out = append(out, rec)
	}
	return out
}
