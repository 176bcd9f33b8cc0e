package model

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testArtifacts() map[string]string {
	return map[string]string{
		"config.json":    `{"model_type":"distilbert","id2label":{"0":"clean","1":"noise"}}`,
		"tokenizer.json": `{"version":"1.0","model":{"type":"WordPiece"}}`,
		"model.onnx":     "not-a-real-network-but-plenty-of-bytes-to-stream",
	}
}

// artifactServer serves the test artifacts and counts requests per file
// when requests is non-nil.
func artifactServer(t *testing.T, requests map[string]int) *httptest.Server {
	t.Helper()
	content := testArtifacts()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(r.URL.Path, "/")
		if requests != nil {
			requests[name]++
		}
		body, ok := content[name]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestDownload(t *testing.T) {
	server := artifactServer(t, nil)
	dir := t.TempDir()

	var events []Progress
	dl := NewDownloader(WithBaseURL(server.URL))
	require.NoError(t, dl.Download(context.Background(), dir, func(p Progress) {
		events = append(events, p)
	}))

	assert.True(t, Exists(dir))
	assert.NoError(t, Verify(dir))

	got, err := os.ReadFile(filepath.Join(dir, "config.json"))
	require.NoError(t, err)
	assert.Equal(t, testArtifacts()["config.json"], string(got))

	version, err := InstalledVersion(dir)
	require.NoError(t, err)
	assert.Equal(t, ManifestVersion, version)
	assert.False(t, UpdateAvailable(dir))

	// Received never decreases within a file, and the final event
	// reports every file complete.
	require.NotEmpty(t, events)
	last := make(map[string]int64)
	for _, p := range events {
		assert.GreaterOrEqual(t, p.Received, last[p.File], "progress went backwards for %s", p.File)
		last[p.File] = p.Received
		assert.Equal(t, 3, p.Files)
	}
	assert.Equal(t, 3, events[len(events)-1].Done)
}

func TestDownloadSkipsExisting(t *testing.T) {
	requests := make(map[string]int)
	server := artifactServer(t, requests)
	dir := t.TempDir()

	cached := []byte(`{"model_type":"distilbert","id2label":{"0":"clean"}}`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), cached, 0o644))

	dl := NewDownloader(WithBaseURL(server.URL))
	require.NoError(t, dl.Download(context.Background(), dir, nil))

	assert.Zero(t, requests["config.json"])
	assert.Equal(t, 1, requests["tokenizer.json"])
	assert.Equal(t, 1, requests["model.onnx"])

	// The cached copy keeps its content and still gets a checksum entry.
	got, err := os.ReadFile(filepath.Join(dir, "config.json"))
	require.NoError(t, err)
	assert.Equal(t, cached, got)
	assert.NoError(t, Verify(dir))
}

func TestDownloadForceRefetches(t *testing.T) {
	requests := make(map[string]int)
	server := artifactServer(t, requests)
	dir := t.TempDir()

	stale := []byte(`{"model_type":"old"}`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), stale, 0o644))

	dl := NewDownloader(WithBaseURL(server.URL), WithForce())
	require.NoError(t, dl.Download(context.Background(), dir, nil))

	assert.Equal(t, 1, requests["config.json"])
	got, err := os.ReadFile(filepath.Join(dir, "config.json"))
	require.NoError(t, err)
	assert.Equal(t, testArtifacts()["config.json"], string(got))
	assert.NoError(t, Verify(dir))
}

func TestDownloadAuthRequired(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	dl := NewDownloader(WithBaseURL(server.URL))
	err := dl.Download(context.Background(), t.TempDir(), nil)
	assert.ErrorIs(t, err, ErrAuthRequired)
}

func TestDownloadSendsToken(t *testing.T) {
	var header string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header = r.Header.Get("Authorization")
		_, _ = w.Write([]byte("ok"))
	}))
	defer server.Close()

	dl := NewDownloader(WithBaseURL(server.URL), WithToken("secret"), WithFiles("config.json"))
	require.NoError(t, dl.Download(context.Background(), t.TempDir(), nil))
	assert.Equal(t, "Bearer secret", header)
}

func TestDownloadServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	dl := NewDownloader(WithBaseURL(server.URL))
	err := dl.Download(context.Background(), t.TempDir(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 500")
}

func TestVerifyDetectsTamper(t *testing.T) {
	server := artifactServer(t, nil)
	dir := t.TempDir()

	dl := NewDownloader(WithBaseURL(server.URL))
	require.NoError(t, dl.Download(context.Background(), dir, nil))
	require.NoError(t, Verify(dir))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "model.onnx"), []byte("tampered"), 0o644))
	err := Verify(dir)
	assert.ErrorIs(t, err, ErrChecksum)
}

func TestVerifyWithoutChecksums(t *testing.T) {
	err := Verify(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read checksums")
}

func TestParseChecksums(t *testing.T) {
	input := "abc123  config.json\nbadline\nfoo  bar  baz\ndef456  model.onnx\n"
	got := parseChecksums([]byte(input))
	assert.Equal(t, map[string]string{
		"config.json": "abc123",
		"model.onnx":  "def456",
	}, got)
}

func TestUpdateAvailable(t *testing.T) {
	dir := t.TempDir()

	// No stamp at all.
	assert.False(t, UpdateAvailable(dir))

	info := filepath.Join(dir, "model_info.txt")
	require.NoError(t, os.WriteFile(info, []byte("model test\nversion v0.9.0\n"), 0o644))
	assert.True(t, UpdateAvailable(dir))

	require.NoError(t, os.WriteFile(info, []byte("model test\nversion "+ManifestVersion+"\n"), 0o644))
	assert.False(t, UpdateAvailable(dir))
}
