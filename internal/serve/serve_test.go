package serve

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/cnucho/gptcatalog/internal/config"
	"github.com/cnucho/gptcatalog/internal/logging"
)

func init() { gin.SetMode(gin.TestMode) }

func writeSite(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	for name, body := range map[string]string{
		"index.html":                "<h1>KO</h1>",
		"en/index.html":             "<h1>EN</h1>",
		"details/survey_ko.html":    "<h1>설문</h1>",
		"atlas.yaml":                "gpt_atlas: {}\n",
		"en/details/survey_en.html": "<h1>Survey</h1>",
	} {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	}
	return root
}

func get(t *testing.T, h http.Handler, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func TestRouter_ServesSite(t *testing.T) {
	r := NewRouter(writeSite(t), logging.Discard())

	cases := []struct {
		path, body string
	}{
		{"/", "<h1>KO</h1>"},
		{"/en/", "<h1>EN</h1>"},
		{"/details/survey_ko.html", "<h1>설문</h1>"},
		{"/en/details/survey_en.html", "<h1>Survey</h1>"},
	}
	for _, tc := range cases {
		rec := get(t, r, http.MethodGet, tc.path)
		assert.Equal(t, http.StatusOK, rec.Code, tc.path)
		assert.Equal(t, tc.body, rec.Body.String(), tc.path)
		assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"), tc.path)
	}
}

func TestRouter_NotFoundAndMethod(t *testing.T) {
	r := NewRouter(writeSite(t), logging.Discard())
	assert.Equal(t, http.StatusNotFound, get(t, r, http.MethodGet, "/details/absent.html").Code)
	assert.Equal(t, http.StatusMethodNotAllowed, get(t, r, http.MethodPost, "/index.html").Code)
	assert.Equal(t, http.StatusOK, get(t, r, http.MethodHead, "/atlas.yaml").Code)
}

func TestRouter_Healthz(t *testing.T) {
	root := writeSite(t)
	rec := get(t, NewRouter(root, logging.Discard()), http.MethodGet, "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, root, body["root"])
}

func TestServe_StopsOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
		goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"))

	cfg := config.DefaultConfig()
	cfg.OutputDir = writeSite(t)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serve(ctx, ln, &cfg, logging.Discard()) }()

	client := &http.Client{Timeout: 2 * time.Second, Transport: &http.Transport{DisableKeepAlives: true}}
	resp, err := client.Get("http://" + ln.Addr().String() + "/en/")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, "<h1>EN</h1>", string(body))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
