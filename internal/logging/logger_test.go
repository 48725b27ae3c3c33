package logging

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cnucho/gptcatalog/internal/config"
)

func TestNewLogger_NoFile(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.LogFile = ""
	l, err := NewLogger(&cfg)
	if err != nil {
		t.Fatal(err)
	}
	defer l.Close()
	l.SetOutput(&bytes.Buffer{}, &bytes.Buffer{})
	l.Info("test message")
}

func TestNewLogger_WithFile(t *testing.T) {
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.ColorMode = config.ColorNever
	cfg.LogFile = filepath.Join(dir, "logs", "gptcatalog.log")
	l, err := NewLogger(&cfg)
	require.NoError(t, err)
	l.SetOutput(&bytes.Buffer{}, &bytes.Buffer{})

	l.Info("to file")
	l.Outlier("restored %d names", 2)
	l.Debug(true, "dropped without verbose sink level")
	require.NoError(t, l.Close())

	f, err := os.Open(cfg.LogFile)
	require.NoError(t, err)
	defer f.Close()

	var records []map[string]any
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var rec map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &rec), "line %q", sc.Text())
		records = append(records, rec)
	}
	require.Len(t, records, 2)
	assert.Equal(t, "to file", records[0]["msg"])
	assert.Equal(t, "INFO", records[0]["tag"])
	assert.Equal(t, "info", records[0]["level"])
	assert.Equal(t, "restored 2 names", records[1]["msg"])
	assert.Equal(t, "warn", records[1]["level"])
}

func TestLogger_ConsoleRouting(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.ColorMode = config.ColorNever
	l, err := NewLogger(&cfg)
	require.NoError(t, err)
	defer l.Close()

	var out, errOut bytes.Buffer
	l.SetOutput(&out, &errOut)

	l.Success("built %d pages", 3)
	l.Error("boom")
	l.Debug(false, "hidden")

	assert.Contains(t, out.String(), "[SUCCESS] built 3 pages")
	assert.NotContains(t, out.String(), "boom")
	assert.NotContains(t, out.String(), "hidden")
	assert.True(t, strings.HasSuffix(errOut.String(), "[ERROR] boom\n"), errOut.String())
}

func TestDiscard(t *testing.T) {
	l := Discard()
	l.Info("nothing")
	assert.NoError(t, l.Close())
}
