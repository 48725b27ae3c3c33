package override

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/cnucho/gptcatalog/internal/catalog"
)

// Master workbook sheets.
const (
	SheetKO = "gpt_index_ko"
	SheetEN = "gpt_index_en"
)

// Column groups of the master workbook. Manual columns are seeded once for
// new rows and never overwritten; snapshot and status columns are refreshed
// on every sync.
var (
	koHeaders = []string{
		"gpt_id",
		"display_name_ko", "alias_ko", "keywords_ko", "visibility", "show_url", "url_override",
		"name_ko__catalog", "name_en__catalog", "url__catalog", "version__catalog", "last_updated__catalog",
		"present_in_catalog", "last_seen", "changed", "changed_fields",
	}
	enHeaders = []string{
		"gpt_id",
		"display_name_en", "keywords_en", "visibility", "show_url", "url_override",
		"name_en__catalog", "name_ko__catalog", "url__catalog", "version__catalog", "last_updated__catalog",
		"present_in_catalog", "last_seen", "changed", "changed_fields",
	}
	snapshotFields = []string{
		"name_ko__catalog", "name_en__catalog", "url__catalog", "version__catalog", "last_updated__catalog",
	}
)

// SheetReport counts what a sync did to one sheet.
type SheetReport struct {
	Added   int
	Updated int
	Changed int
	Missing int
}

// SyncReport covers both sheets.
type SyncReport struct {
	KO, EN SheetReport
	Path   string
}

// SyncWorkbook upserts the Korean partition into the KO sheet and the
// English partition into the EN sheet of the master workbook at path,
// creating the file when absent. Rows are keyed by gpt_id (the assigned id
// when an entry has none). Rows whose id is no longer in the catalog are
// marked present_in_catalog=N and kept.
func SyncWorkbook(path string, ko, en []*catalog.Entry, now time.Time) (SyncReport, error) {
	rep := SyncReport{Path: path}

	var f *excelize.File
	fresh := false
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		f = excelize.NewFile()
		fresh = true
	} else {
		var err error
		if f, err = excelize.OpenFile(path); err != nil {
			return rep, fmt.Errorf("open %s: %w", path, err)
		}
	}
	defer f.Close()

	today := now.Format("2006-01-02")
	for _, part := range []struct {
		name    string
		headers []string
		entries []*catalog.Entry
		rep     *SheetReport
	}{
		{SheetKO, koHeaders, ko, &rep.KO},
		{SheetEN, enHeaders, en, &rep.EN},
	} {
		sh, err := loadSheet(f, part.name, part.headers)
		if err != nil {
			return rep, err
		}
		*part.rep = sh.upsert(part.entries, today)
		if err := sh.save(f); err != nil {
			return rep, err
		}
	}

	if fresh {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return rep, err
		}
	}
	if err := f.SaveAs(path); err != nil {
		return rep, fmt.Errorf("save %s: %w", path, err)
	}
	return rep, nil
}

// sheet is an in-memory copy of one worksheet.
type sheet struct {
	name   string
	exists bool
	header []string
	col    map[string]int
	rows   [][]string
}

func loadSheet(f *excelize.File, name string, required []string) (*sheet, error) {
	sh := &sheet{name: name}
	if idx, err := f.GetSheetIndex(name); err == nil && idx >= 0 {
		sh.exists = true
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("read sheet %s: %w", name, err)
		}
		if len(rows) > 0 {
			for _, h := range rows[0] {
				sh.header = append(sh.header, strings.TrimSpace(h))
			}
			sh.rows = rows[1:]
		}
	}
	sh.col = map[string]int{}
	for i, h := range sh.header {
		if h != "" {
			if _, dup := sh.col[h]; !dup {
				sh.col[h] = i
			}
		}
	}
	for _, h := range required {
		if _, ok := sh.col[h]; !ok {
			sh.col[h] = len(sh.header)
			sh.header = append(sh.header, h)
		}
	}
	return sh, nil
}

func (s *sheet) get(r int, key string) string {
	c, ok := s.col[key]
	if !ok || c >= len(s.rows[r]) {
		return ""
	}
	return strings.TrimSpace(s.rows[r][c])
}

func (s *sheet) set(r int, key, value string) {
	c, ok := s.col[key]
	if !ok {
		return
	}
	for len(s.rows[r]) <= c {
		s.rows[r] = append(s.rows[r], "")
	}
	s.rows[r][c] = value
}

func (s *sheet) find(id string) int {
	for r := range s.rows {
		if s.get(r, "gpt_id") == id {
			return r
		}
	}
	return -1
}

func snapshot(e *catalog.Entry) map[string]string {
	nameKO := strings.TrimSpace(e.NameKO)
	if e.NamePolicyKO == catalog.PolicyAuto {
		nameKO = ""
	}
	if nameKO == "" {
		nameKO = strings.TrimSpace(e.Name)
	}
	nameEN := strings.TrimSpace(e.NameEN)
	if nameEN == "" {
		nameEN = strings.TrimSpace(e.Name)
	}
	return map[string]string{
		"name_ko__catalog":      nameKO,
		"name_en__catalog":      nameEN,
		"url__catalog":          strings.TrimSpace(e.URL),
		"version__catalog":      strings.TrimSpace(e.Version),
		"last_updated__catalog": strings.TrimSpace(e.LastUpdated),
	}
}

func (s *sheet) upsert(entries []*catalog.Entry, today string) SheetReport {
	var rep SheetReport
	seen := map[string]bool{}
	for _, e := range entries {
		id := e.AtlasID()
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		snap := snapshot(e)

		r := s.find(id)
		if r < 0 {
			s.rows = append(s.rows, []string{})
			r = len(s.rows) - 1
			s.set(r, "gpt_id", id)
			s.set(r, "display_name_ko", snap["name_ko__catalog"])
			s.set(r, "display_name_en", snap["name_en__catalog"])
			s.set(r, "visibility", string(catalog.VisibilityPublic))
			s.set(r, "show_url", string(catalog.URLShow))
			rep.Added++
		} else {
			rep.Updated++
		}

		var changed []string
		for _, field := range snapshotFields {
			if s.get(r, field) != snap[field] {
				changed = append(changed, field)
			}
			s.set(r, field, snap[field])
		}
		s.set(r, "present_in_catalog", "Y")
		s.set(r, "last_seen", today)
		if len(changed) > 0 {
			s.set(r, "changed", "Y")
			s.set(r, "changed_fields", strings.Join(changed, ","))
			rep.Changed++
		}
	}

	for r := range s.rows {
		id := s.get(r, "gpt_id")
		if id != "" && !seen[id] {
			s.set(r, "present_in_catalog", "N")
			rep.Missing++
		}
	}
	return rep
}

func (s *sheet) save(f *excelize.File) error {
	if !s.exists {
		if _, err := f.NewSheet(s.name); err != nil {
			return fmt.Errorf("create sheet %s: %w", s.name, err)
		}
	}
	if err := writeRow(f, s.name, 1, s.header); err != nil {
		return err
	}
	for i, row := range s.rows {
		if err := writeRow(f, s.name, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, cells []string) error {
	if len(cells) == 0 {
		return nil
	}
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	values := make([]interface{}, len(cells))
	for i, c := range cells {
		values[i] = c
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, row, err)
	}
	return nil
}
