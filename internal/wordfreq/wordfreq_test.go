package wordfreq

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/vmihailenco/msgpack/v5"
)

func encodeCBpack(t *testing.T, bins ...[]string) []byte {
	t.Helper()
	items := []any{map[string]any{"format": "cB", "version": 1}}
	for _, bin := range bins {
		items = append(items, bin)
	}
	data, err := msgpack.Marshal(items)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return data
}

func gzipBytes(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		t.Fatalf("gzip write: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("gzip close: %v", err)
	}
	return buf.Bytes()
}

func TestExtractWordlistOrderAndFilter(t *testing.T) {
	data := encodeCBpack(t,
		[]string{"the"},
		[]string{"hello", "a", "go-1"},
		[]string{"world", "go"},
	)
	wheelPath := writeTestWheel(t, map[string][]byte{
		"wordfreq/data/large_en.msgpack.gz": gzipBytes(t, data),
	})

	words, err := ExtractWordlist(wheelPath, "en", "large", Options{Limit: 4})
	if err != nil {
		t.Fatalf("ExtractWordlist failed: %v", err)
	}
	expected := []string{"the", "hello", "world", "go"}
	if !slices.Equal(words, expected) {
		t.Fatalf("expected %v, got %v", expected, words)
	}
}

func TestExtractWordlistLengthAndLimit(t *testing.T) {
	data := encodeCBpack(t,
		[]string{"crane", "the", "slate"},
		[]string{"about", "words", "plumb"},
	)
	wheelPath := writeTestWheel(t, map[string][]byte{
		"wordfreq/data/small_en.msgpack.gz": gzipBytes(t, data),
	})

	words, err := ExtractWordlist(wheelPath, "en", "small", Options{Limit: 4, Length: 5})
	if err != nil {
		t.Fatalf("ExtractWordlist failed: %v", err)
	}
	if !slices.Equal(words, []string{"crane", "slate", "about", "words"}) {
		t.Fatalf("unexpected words %v", words)
	}

	if _, err := ExtractWordlist(wheelPath, "en", "small", Options{Limit: 4, Length: 9}); err == nil {
		t.Fatalf("expected error when no word matches the length")
	}
	if _, err := ExtractWordlist(wheelPath, "en", "large", Options{Limit: 4}); err == nil {
		t.Fatalf("expected error for missing list type")
	}
	if _, err := ExtractWordlist(wheelPath, "en", "small", Options{}); err == nil {
		t.Fatalf("expected error for zero limit")
	}
}

func TestExtractWordlistScoredPairs(t *testing.T) {
	data, err := msgpack.Marshal([]any{
		[]any{4.0, []string{"world"}},
		[]any{5.0, []string{"hello"}},
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	wheelPath := writeTestWheel(t, map[string][]byte{
		"wordfreq/data/large_en.msgpack": data,
	})
	words, err := ExtractWordlist(wheelPath, "en", "large", Options{Limit: 10})
	if err != nil {
		t.Fatalf("ExtractWordlist failed: %v", err)
	}
	if !slices.Equal(words, []string{"hello", "world"}) {
		t.Fatalf("unexpected words %v", words)
	}
}

func TestWriteAttribution(t *testing.T) {
	wheelPath := writeTestWheel(t, map[string][]byte{
		"wordfreq-1.0.0.dist-info/LICENSE": []byte("Apache License"),
	})

	outDir := t.TempDir()
	if err := WriteAttribution(wheelPath, outDir); err != nil {
		t.Fatalf("WriteAttribution failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(outDir, "ATTRIBUTION.txt")); err != nil {
		t.Fatalf("expected ATTRIBUTION.txt: %v", err)
	}
	license, err := os.ReadFile(filepath.Join(outDir, "LICENSE.txt"))
	if err != nil {
		t.Fatalf("expected LICENSE.txt: %v", err)
	}
	if string(license) != "Apache License" {
		t.Fatalf("unexpected license contents: %s", string(license))
	}
}

func TestListLanguages(t *testing.T) {
	files := map[string][]byte{
		"wordfreq/data/large_en.msgpack.gz":         []byte("x"),
		"wordfreq/data/large_pt-br.msgpack.gz":      []byte("x"),
		"wordfreq/data/small_zh-cn.msgpack.gz":      []byte("x"),
		"wordfreq/data/_chinese_mapping.msgpack.gz": []byte("x"),
		"wordfreq/data/jieba_zh.txt":                []byte("x"),
	}
	wheelPath := writeTestWheel(t, files)

	types, err := ListLanguageTypes(wheelPath)
	if err != nil {
		t.Fatalf("ListLanguageTypes failed: %v", err)
	}
	langs := LanguagesFromTypes(types)
	if !slices.Equal(langs, []string{"en", "pt-br", "zh-cn"}) {
		t.Fatalf("unexpected languages %v", langs)
	}
	if _, ok := types["zh-cn"]["small"]; !ok {
		t.Fatalf("expected small list for zh-cn")
	}
}

func TestDownloadWheelUsesCache(t *testing.T) {
	var wheelHits int
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	mux.HandleFunc("/pypi", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintf(w, `{"info":{"version":"3.1.1"},"urls":[
			{"url":"%[1]s/src.tar.gz","filename":"wordfreq-3.1.1.tar.gz","packagetype":"sdist"},
			{"url":"%[1]s/wheel","filename":"wordfreq-3.1.1-py3-none-any.whl","packagetype":"bdist_wheel"}]}`, srv.URL)
	})
	mux.HandleFunc("/wheel", func(w http.ResponseWriter, _ *http.Request) {
		wheelHits++
		_, _ = w.Write([]byte("wheel"))
	})

	cacheDir := t.TempDir()
	ctx := context.Background()
	first, err := downloadWheel(ctx, srv.URL+"/pypi", cacheDir)
	if err != nil {
		t.Fatalf("download failed: %v", err)
	}
	if first.Cached || first.Version != "3.1.1" || first.Filename != "wordfreq-3.1.1-py3-none-any.whl" {
		t.Fatalf("unexpected wheel %+v", first)
	}
	second, err := downloadWheel(ctx, srv.URL+"/pypi", cacheDir)
	if err != nil {
		t.Fatalf("second download failed: %v", err)
	}
	if !second.Cached || second.Path != first.Path {
		t.Fatalf("expected cached wheel, got %+v", second)
	}
	if wheelHits != 1 {
		t.Fatalf("expected one wheel download, got %d", wheelHits)
	}
}

func writeTestWheel(t *testing.T, files map[string][]byte) string {
	t.Helper()

	tmpFile, err := os.CreateTemp(t.TempDir(), "wordfreq-*.whl")
	if err != nil {
		t.Fatalf("failed to create temp wheel: %v", err)
	}
	defer func() {
		_ = tmpFile.Close()
	}()

	zw := zip.NewWriter(tmpFile)
	for name, data := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("failed to create zip entry: %v", err)
		}
		if _, err := w.Write(data); err != nil {
			t.Fatalf("failed to write zip entry: %v", err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("failed to close zip: %v", err)
	}
	return tmpFile.Name()
}
