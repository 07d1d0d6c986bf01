package wordfreq

import (
	"archive/zip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const pypiEndpoint = "https://pypi.org/pypi/wordfreq/json"

// Wheel describes a cached wordfreq wheel.
type Wheel struct {
	Version  string
	Path     string
	Filename string
	Cached   bool
}

type pypiFile struct {
	URL         string `json:"url"`
	Filename    string `json:"filename"`
	Packagetype string `json:"packagetype"`
}

type pypiResponse struct {
	Info struct {
		Version string `json:"version"`
	} `json:"info"`
	URLs []pypiFile `json:"urls"`
}

// DownloadLatestWheel fetches the latest wordfreq wheel into cacheDir.
func DownloadLatestWheel(ctx context.Context, cacheDir string) (Wheel, error) {
	return downloadWheel(ctx, pypiEndpoint, cacheDir)
}

func downloadWheel(ctx context.Context, endpoint, cacheDir string) (Wheel, error) {
	if cacheDir == "" {
		return Wheel{}, fmt.Errorf("cache directory is required")
	}
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return Wheel{}, fmt.Errorf("failed to create cache dir: %w", err)
	}

	resp, err := httpRequest(ctx, endpoint)
	if err != nil {
		return Wheel{}, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		return Wheel{}, fmt.Errorf("unexpected pypi status: %s", resp.Status)
	}

	var payload pypiResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Wheel{}, fmt.Errorf("failed to decode pypi response: %w", err)
	}
	if payload.Info.Version == "" {
		return Wheel{}, fmt.Errorf("missing version in pypi response")
	}
	url, filename := pickWheelURL(payload.URLs)
	if url == "" || filename == "" {
		return Wheel{}, fmt.Errorf("no suitable wordfreq wheel found")
	}

	destPath := filepath.Join(cacheDir, filename)
	if _, err := os.Stat(destPath); err == nil {
		return Wheel{Version: payload.Info.Version, Path: destPath, Filename: filename, Cached: true}, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return Wheel{}, fmt.Errorf("failed to stat cached wheel: %w", err)
	}

	tmpFile, err := os.CreateTemp(cacheDir, "wordfreq-*.whl")
	if err != nil {
		return Wheel{}, fmt.Errorf("failed to create temp wheel: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	wheelResp, err := httpRequest(ctx, url)
	if err != nil {
		return Wheel{}, err
	}
	defer func() {
		_ = wheelResp.Body.Close()
	}()
	if wheelResp.StatusCode != http.StatusOK {
		return Wheel{}, fmt.Errorf("unexpected wheel status: %s", wheelResp.Status)
	}
	if _, err := io.Copy(tmpFile, wheelResp.Body); err != nil {
		return Wheel{}, fmt.Errorf("failed to download wheel: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return Wheel{}, fmt.Errorf("failed to close temp wheel: %w", err)
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		return Wheel{}, fmt.Errorf("failed to move wheel into cache: %w", err)
	}
	return Wheel{Version: payload.Info.Version, Path: destPath, Filename: filename}, nil
}

func httpRequest(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	client := &http.Client{Timeout: 60 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	return resp, nil
}

// pickWheelURL prefers the pure-python wheel.
func pickWheelURL(files []pypiFile) (string, string) {
	var fallback pypiFile
	for _, f := range files {
		if f.Packagetype != "bdist_wheel" {
			continue
		}
		if strings.HasSuffix(f.Filename, "py3-none-any.whl") {
			return f.URL, f.Filename
		}
		if fallback.URL == "" {
			fallback = f
		}
	}
	return fallback.URL, fallback.Filename
}

// WriteAttribution writes attribution and license files next to generated
// word lists.
func WriteAttribution(wheelPath, outDir string) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}
	attrText := strings.Join([]string{
		"Word lists generated from the wordfreq dataset.",
		"Source: https://github.com/rspeer/wordfreq",
		"Data license: Creative Commons Attribution-ShareAlike 4.0 International (CC BY-SA 4.0).",
		"Changes were made: filtered to alphabetic words of one length and truncated to the requested size.",
		"",
	}, "\n")
	if err := os.WriteFile(filepath.Join(outDir, "ATTRIBUTION.txt"), []byte(attrText), 0o644); err != nil {
		return fmt.Errorf("failed to write attribution: %w", err)
	}

	licenseText, err := readWheelLicense(wheelPath)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(outDir, "LICENSE.txt"), licenseText, 0o644); err != nil {
		return fmt.Errorf("failed to write license: %w", err)
	}
	return nil
}

func readWheelLicense(wheelPath string) ([]byte, error) {
	reader, err := zip.OpenReader(wheelPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open wheel for license: %w", err)
	}
	defer func() {
		_ = reader.Close()
	}()

	for _, file := range reader.File {
		if !strings.Contains(strings.ToLower(file.Name), "license") {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open license: %w", err)
		}
		data, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read license: %w", err)
		}
		return data, nil
	}
	return nil, fmt.Errorf("license file not found in wheel")
}

// LanguageTypes maps language codes to available list types.
type LanguageTypes map[string]map[string]struct{}

// ListLanguageTypes returns available languages and list types in the wheel.
func ListLanguageTypes(wheelPath string) (LanguageTypes, error) {
	if wheelPath == "" {
		return nil, fmt.Errorf("wheel path is required")
	}
	reader, err := zip.OpenReader(wheelPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open wheel: %w", err)
	}
	defer func() {
		_ = reader.Close()
	}()

	langs := make(LanguageTypes)
	for _, file := range reader.File {
		lang, listType := parseLanguageAndType(file.Name)
		if lang == "" || listType == "" {
			continue
		}
		if _, ok := langs[lang]; !ok {
			langs[lang] = make(map[string]struct{})
		}
		langs[lang][listType] = struct{}{}
	}
	if len(langs) == 0 {
		return nil, fmt.Errorf("no languages found in wordfreq wheel")
	}
	return langs, nil
}

// LanguagesFromTypes returns sorted language codes from the map.
func LanguagesFromTypes(types LanguageTypes) []string {
	out := make([]string, 0, len(types))
	for lang := range types {
		out = append(out, lang)
	}
	sort.Strings(out)
	return out
}

// parseLanguageAndType reads names like "wordfreq/data/large_en.msgpack.gz".
func parseLanguageAndType(name string) (string, string) {
	name = strings.ToLower(name)
	base, ok := strings.CutPrefix(name, "wordfreq/data/")
	if !ok {
		return "", ""
	}
	base, ok = strings.CutSuffix(base, ".msgpack.gz")
	if !ok {
		base, ok = strings.CutSuffix(base, ".msgpack")
	}
	if !ok {
		return "", ""
	}
	for _, listType := range []string{"large", "small"} {
		if lang, found := strings.CutPrefix(base, listType+"_"); found && lang != "" {
			return lang, listType
		}
	}
	return "", ""
}
