package model

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/mod/semver"
)

// ModelID identifies the published classifier the downloader fetches.
const ModelID = "madhurjindal/autonlp-Gibberish-Detector-492513457"

// DefaultBaseURL resolves artifact files within the published model
// repository.
const DefaultBaseURL = "https://huggingface.co/" + ModelID + "/resolve/main"

// ManifestVersion is the artifact revision this build expects. It is
// written to model_info.txt on download and compared by
// UpdateAvailable.
const ManifestVersion = "v1.0.0"

const (
	checksumsFile = "checksums.txt"
	infoFile      = "model_info.txt"
)

var (
	// ErrAuthRequired means the repository rejected the request. Set
	// HF_TOKEN or HUGGING_FACE_HUB_TOKEN and retry.
	ErrAuthRequired = errors.New("model download requires authentication")

	// ErrChecksum means an installed artifact does not match the hash
	// recorded at download time.
	ErrChecksum = errors.New("checksum verification failed")
)

// Progress reports the state of a running download. Total is -1 when
// the server does not announce a length.
type Progress struct {
	File     string
	Received int64
	Total    int64
	Done     int // files completed so far
	Files    int // files in this download
}

// Downloader fetches model artifacts over HTTP.
type Downloader struct {
	baseURL string
	client  *http.Client
	token   string
	files   []string
	force   bool
}

// DownloadOption configures a Downloader.
type DownloadOption func(*Downloader)

// WithBaseURL overrides the artifact repository URL.
func WithBaseURL(url string) DownloadOption {
	return func(d *Downloader) { d.baseURL = strings.TrimRight(url, "/") }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(c *http.Client) DownloadOption {
	return func(d *Downloader) { d.client = c }
}

// WithToken sets the bearer token sent with every request. By default
// the token is read from HF_TOKEN or HUGGING_FACE_HUB_TOKEN.
func WithToken(tok string) DownloadOption {
	return func(d *Downloader) { d.token = tok }
}

// WithFiles overrides the artifact file list.
func WithFiles(files ...string) DownloadOption {
	return func(d *Downloader) { d.files = files }
}

// WithForce refetches artifacts even when they are already present.
func WithForce() DownloadOption {
	return func(d *Downloader) { d.force = true }
}

// NewDownloader creates a Downloader for the published model.
func NewDownloader(opts ...DownloadOption) *Downloader {
	d := &Downloader{
		baseURL: DefaultBaseURL,
		client:  &http.Client{Timeout: 15 * time.Minute},
		token:   authToken(),
		files:   artifactFiles,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Download fetches every missing artifact into dir, hashing each file
// as it streams to disk. On success it records the hashes in
// checksums.txt and stamps model_info.txt. Files already present are
// kept and only re-hashed. progress may be nil.
func (d *Downloader) Download(ctx context.Context, dir string, progress func(Progress)) error {
	if progress == nil {
		progress = func(Progress) {}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create model directory: %w", err)
	}

	sums := make(map[string]string, len(d.files))
	done := 0
	for _, name := range d.files {
		dest := filepath.Join(dir, name)

		if info, err := os.Stat(dest); err == nil && !d.force {
			sum, err := fileChecksum(dest)
			if err != nil {
				return fmt.Errorf("hash existing %s: %w", name, err)
			}
			sums[name] = sum
			done++
			progress(Progress{File: name, Received: info.Size(), Total: info.Size(), Done: done, Files: len(d.files)})
			continue
		}

		sum, size, err := d.fetchFile(ctx, name, dest, func(received, total int64) {
			progress(Progress{File: name, Received: received, Total: total, Done: done, Files: len(d.files)})
		})
		if err != nil {
			return fmt.Errorf("download %s: %w", name, err)
		}
		sums[name] = sum
		done++
		progress(Progress{File: name, Received: size, Total: size, Done: done, Files: len(d.files)})
	}

	if err := writeChecksums(dir, d.files, sums); err != nil {
		return err
	}
	return writeInfo(dir)
}

// fetchFile streams one artifact to a temporary file, renaming it into
// place only after the body is fully written. It returns the hex
// SHA-256 and the size of the written content.
func (d *Downloader) fetchFile(ctx context.Context, name, dest string, report func(received, total int64)) (string, int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.baseURL+"/"+name, nil)
	if err != nil {
		return "", 0, err
	}
	if d.token != "" {
		req.Header.Set("Authorization", "Bearer "+d.token)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return "", 0, err
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return "", 0, ErrAuthRequired
	default:
		return "", 0, fmt.Errorf("HTTP %d for %s", resp.StatusCode, req.URL)
	}

	tmp := dest + ".part"
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return "", 0, fmt.Errorf("create temp file: %w", err)
	}

	h := sha256.New()
	counter := &countingWriter{total: resp.ContentLength, report: report}
	n, err := io.Copy(io.MultiWriter(f, h, counter), resp.Body)
	if err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return "", 0, fmt.Errorf("write body: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return "", 0, fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp, dest); err != nil {
		return "", 0, fmt.Errorf("rename: %w", err)
	}

	return hex.EncodeToString(h.Sum(nil)), n, nil
}

type countingWriter struct {
	received int64
	total    int64
	report   func(received, total int64)
}

func (w *countingWriter) Write(p []byte) (int, error) {
	w.received += int64(len(p))
	w.report(w.received, w.total)
	return len(p), nil
}

// Verify recomputes the hash of every installed artifact against
// checksums.txt.
func Verify(dir string) error {
	data, err := os.ReadFile(filepath.Join(dir, checksumsFile))
	if err != nil {
		return fmt.Errorf("read checksums: %w", err)
	}

	sums := parseChecksums(data)
	for _, name := range artifactFiles {
		want, ok := sums[name]
		if !ok {
			return fmt.Errorf("no checksum recorded for %s", name)
		}
		got, err := fileChecksum(filepath.Join(dir, name))
		if err != nil {
			return fmt.Errorf("hash %s: %w", name, err)
		}
		if got != want {
			return fmt.Errorf("%w: %s expected %s, got %s", ErrChecksum, name, want, got)
		}
	}
	return nil
}

func fileChecksum(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func parseChecksums(data []byte) map[string]string {
	result := make(map[string]string)
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) != 2 {
			continue
		}
		result[parts[1]] = parts[0]
	}
	return result
}

func writeChecksums(dir string, files []string, sums map[string]string) error {
	var b strings.Builder
	for _, name := range files {
		fmt.Fprintf(&b, "%s  %s\n", sums[name], name)
	}
	if err := os.WriteFile(filepath.Join(dir, checksumsFile), []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write checksums: %w", err)
	}
	return nil
}

func writeInfo(dir string) error {
	var b strings.Builder
	fmt.Fprintf(&b, "model %s\n", ModelID)
	fmt.Fprintf(&b, "version %s\n", ManifestVersion)
	fmt.Fprintf(&b, "downloaded %s\n", time.Now().UTC().Format(time.RFC3339))
	if err := os.WriteFile(filepath.Join(dir, infoFile), []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write model info: %w", err)
	}
	return nil
}

// InstalledVersion reads the artifact revision recorded in
// model_info.txt.
func InstalledVersion(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, infoFile))
	if err != nil {
		return "", fmt.Errorf("read model info: %w", err)
	}
	for _, line := range strings.Split(string(data), "\n") {
		if v, ok := strings.CutPrefix(line, "version "); ok {
			return strings.TrimSpace(v), nil
		}
	}
	return "", fmt.Errorf("no version line in %s", infoFile)
}

// UpdateAvailable reports whether this build expects a newer artifact
// revision than the one installed in dir. An unreadable or unstamped
// installation reports false.
func UpdateAvailable(dir string) bool {
	installed, err := InstalledVersion(dir)
	if err != nil {
		return false
	}
	return semver.Compare(installed, ManifestVersion) < 0
}
