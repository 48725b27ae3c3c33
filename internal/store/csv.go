package store

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cnucho/gptcatalog/internal/catalog"
)

// ErrEmpty is returned when there is nothing to export.
var ErrEmpty = errors.New("no catalog entries to export")

// TidyHeader is the column order of the tidy CSV.
var TidyHeader = []string{
	"id", "language", "gpt_id", "name_en", "name_ko", "name_ko_policy", "url",
	"version", "tags", "intro", "functions", "limitations", "source_file",
}

// WriteTidyCSV writes one row per entry in the given order. List fields are
// joined with "|". intro is the entry's own-language summary, else its
// description.
func WriteTidyCSV(w io.Writer, entries []*catalog.Entry) error {
	if len(entries) == 0 {
		return ErrEmpty
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(TidyHeader); err != nil {
		return err
	}
	for _, e := range entries {
		intro := e.Summary(e.Language)
		if intro == "" {
			intro = strings.TrimSpace(e.Description)
		}
		if err := cw.Write([]string{
			e.ID,
			string(e.Language),
			e.GPTID,
			e.NameEN,
			e.NameKO,
			string(policyOf(e)),
			e.URL,
			e.Version,
			joinList(e.Tags),
			intro,
			joinList(e.Functions),
			joinList(e.Limitations),
			e.SourceFilename,
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportCSV writes the tidy CSV of every entry in c to path.
func ExportCSV(path string, c *catalog.Corpus) error {
	if c.Len() == 0 {
		return ErrEmpty
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteTidyCSV(f, c.All); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
