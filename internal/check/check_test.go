package check

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cnucho/gptcatalog/internal/config"
)

// mockLogger records messages by level.
type mockLogger struct {
	lines map[string][]string
}

func newMockLogger() *mockLogger { return &mockLogger{lines: map[string][]string{}} }

func (m *mockLogger) add(level, format string, args ...interface{}) {
	m.lines[level] = append(m.lines[level], fmt.Sprintf(format, args...))
}

func (m *mockLogger) Info(f string, a ...interface{})    { m.add("info", f, a...) }
func (m *mockLogger) Success(f string, a ...interface{}) { m.add("success", f, a...) }
func (m *mockLogger) Warn(f string, a ...interface{})    { m.add("warn", f, a...) }
func (m *mockLogger) Error(f string, a ...interface{})   { m.add("error", f, a...) }
func (m *mockLogger) Debug(v bool, f string, a ...interface{}) {
	if v {
		m.add("debug", f, a...)
	}
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func newConfig(t *testing.T) *config.Config {
	t.Helper()
	root := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.CatalogDir = filepath.Join(root, "catalog")
	cfg.OutputDir = filepath.Join(root, "docs")
	require.NoError(t, os.MkdirAll(cfg.CatalogDir, 0o755))
	return &cfg
}

func TestCheckPaths(t *testing.T) {
	cfg := newConfig(t)
	assert.NoError(t, CheckPaths(cfg))

	inside := *cfg
	inside.OutputDir = filepath.Join(cfg.CatalogDir, "site")
	assert.ErrorIs(t, CheckPaths(&inside), config.ErrOutputInsideInput)

	missing := *cfg
	missing.CatalogDir = filepath.Join(t.TempDir(), "absent")
	assert.ErrorIs(t, CheckPaths(&missing), ErrCatalogDirMissing)

	file := *cfg
	file.CatalogDir = filepath.Join(t.TempDir(), "entry.yaml")
	writeFile(t, filepath.Dir(file.CatalogDir), "entry.yaml", "name: x\n")
	assert.ErrorIs(t, CheckPaths(&file), ErrNotADirectory)
}

func TestCheckPaths_ResolvesSymlinks(t *testing.T) {
	cfg := newConfig(t)
	link := filepath.Join(t.TempDir(), "link")
	if err := os.Symlink(cfg.CatalogDir, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
	cfg.OutputDir = filepath.Join(link, "docs")
	assert.ErrorIs(t, CheckPaths(cfg), config.ErrOutputInsideInput)
}

func TestRunCheck_Findings(t *testing.T) {
	cfg := newConfig(t)
	writeFile(t, cfg.CatalogDir, "a_en.yaml", "gpt_id: g-a\nname_en: Alpha\nurl: https://x/a\n")
	writeFile(t, cfg.CatalogDir, "b_en.yaml", "gpt_id: g-a\nname_en: Alpha Copy\nurl: https://x/a2\n")
	writeFile(t, cfg.CatalogDir, "c_ko.yaml", "name_en: 한글 이름\nname_ko: 한글 이름\nurl: https://x/a\nname_ko_policy: machine\n")
	writeFile(t, cfg.CatalogDir, "plain.yaml", "name: Plain\n")
	writeFile(t, cfg.CatalogDir, "bad.yaml", "just a string\n")

	log := newMockLogger()
	r, err := RunCheck(context.Background(), cfg, log)
	require.NoError(t, err)

	assert.Equal(t, 5, r.Files)
	assert.Equal(t, 4, r.Entries)
	assert.Equal(t, 1, r.Count(KindParse))
	assert.Equal(t, 1, r.Count(KindDefaultLang))
	assert.Equal(t, 1, r.Count(KindSuffixedID))
	assert.Equal(t, 1, r.Count(KindRestoredName))
	assert.Equal(t, 1, r.Count(KindPolicy))
	assert.Equal(t, 1, r.Count(KindAtlas), "plain.yaml has no url")

	assert.Contains(t, strings.Join(log.lines["warn"], "\n"), `"g-a-2"`)
	assert.Contains(t, strings.Join(log.lines["error"], "\n"), "bad.yaml")
	assert.Contains(t, strings.Join(log.lines["warn"], "\n"), "missing url")
}

func TestRunCheck_Strict(t *testing.T) {
	cfg := newConfig(t)
	cfg.Strict = true
	writeFile(t, cfg.CatalogDir, "plain.yaml", "name: Plain\n")

	_, err := RunCheck(context.Background(), cfg, newMockLogger())
	assert.True(t, errors.Is(err, ErrFindings), "got %v", err)
}

func TestRunCheck_Clean(t *testing.T) {
	cfg := newConfig(t)
	cfg.Strict = true
	writeFile(t, cfg.CatalogDir, "a_en.yaml", "gpt_id: g-a\nname_en: Alpha\nurl: https://x/a\n")
	writeFile(t, cfg.CatalogDir, "a_ko.yaml", "gpt_id: g-a\nname_en: Alpha\nname_ko: 알파\nurl: https://x/a\n")

	log := newMockLogger()
	r, err := RunCheck(context.Background(), cfg, log)
	require.NoError(t, err)
	assert.Empty(t, r.Findings)
	assert.Contains(t, log.lines["success"], "No findings")
}

func TestRunCheck_MissingCatalog(t *testing.T) {
	cfg := newConfig(t)
	cfg.CatalogDir = filepath.Join(t.TempDir(), "absent")
	log := newMockLogger()
	_, err := RunCheck(context.Background(), cfg, log)
	assert.ErrorIs(t, err, ErrCatalogDirMissing)
	assert.NotEmpty(t, log.lines["error"])
}
