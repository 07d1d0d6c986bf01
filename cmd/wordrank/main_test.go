package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/verte-zerg/wordrank/internal/config"
	"github.com/verte-zerg/wordrank/internal/output"
)

func setupCLI(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv(config.EnvWordList, "")
	t.Setenv(config.EnvDBPath, "")
	t.Setenv(config.EnvDebug, "")
	path := filepath.Join(dir, "words.txt")
	if err := os.WriteFile(path, []byte("foo\nBar\nbaz\nquux\n"), 0o644); err != nil {
		t.Fatalf("write word list: %v", err)
	}
	return path
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRankCommand(t *testing.T) {
	path := setupCLI(t)
	out, err := runCLI(t, "--wordlist", path, "--length", "3", "--top", "2")
	if err != nil {
		t.Fatalf("rank failed: %v\n%s", err, out)
	}
	want := "1. bar 5\n2. baz 5\n(2 of 3 candidates)\n"
	if out != want {
		t.Fatalf("unexpected output:\n%q", out)
	}
}

func TestRankWithFeedbackAndFilters(t *testing.T) {
	path := setupCLI(t)
	out, err := runCLI(t, "--wordlist", path, "--length", "3", "--guess", "bar:gg.")
	if err != nil {
		t.Fatalf("rank failed: %v", err)
	}
	if out != "1. baz 5\n" {
		t.Fatalf("unexpected output:\n%q", out)
	}

	out, err = runCLI(t, "--wordlist", path, "--length", "0", "--has", "u", "--format", "json")
	if err != nil {
		t.Fatalf("rank json failed: %v", err)
	}
	var report output.Report
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if report.Candidates != 1 || report.Words[0].Word != "quux" {
		t.Fatalf("unexpected report %+v", report)
	}

	if _, err := runCLI(t, "--wordlist", path, "--guess", "bar"); err == nil {
		t.Fatalf("expected error for malformed guess")
	}
	if _, err := runCLI(t, "--wordlist", path, "--weights", "most"); err == nil {
		t.Fatalf("expected error for unknown weights")
	}
}

func TestRankUsesConfigFile(t *testing.T) {
	path := setupCLI(t)
	cfgPath := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(cfgPath), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	body := "[rank]\nlength = 3\ntop = 1\nwordlist = \"" + filepath.ToSlash(path) + "\"\n"
	if err := os.WriteFile(cfgPath, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	out, err := runCLI(t)
	if err != nil {
		t.Fatalf("rank failed: %v", err)
	}
	if out != "1. bar 5\n(1 of 3 candidates)\n" {
		t.Fatalf("unexpected output:\n%q", out)
	}
	out, err = runCLI(t, "--top", "3")
	if err != nil || !strings.HasPrefix(out, "1. bar 5\n2. baz 5\n3. foo 3\n") {
		t.Fatalf("expected flag to win over config, got %q (%v)", out, err)
	}
}

func TestPlayCommand(t *testing.T) {
	path := setupCLI(t)
	out, err := runCLI(t, "play", "--wordlist", path, "--length", "3", "--secret", "baz")
	if err != nil {
		t.Fatalf("play failed: %v", err)
	}
	want := "1. bar gg. (1 left)\n2. baz ggg (1 left)\nsolved \"baz\" in 2\n"
	if out != want {
		t.Fatalf("unexpected output:\n%q", out)
	}

	out, err = runCLI(t, "history", "--source", "play")
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if !strings.Contains(out, "Games      1") || !strings.Contains(out, "bar 1") {
		t.Fatalf("unexpected history:\n%s", out)
	}
}

func TestPlayManyGames(t *testing.T) {
	path := setupCLI(t)
	out, err := runCLI(t, "play", "--wordlist", path, "--length", "3", "--games", "3", "--workers", "2", "--seed", "9", "--no-save")
	if err != nil {
		t.Fatalf("play failed: %v", err)
	}
	for _, want := range []string{"Games: 3", "Solved: 3 (100.0%)", "Guess distribution"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestCheckCommand(t *testing.T) {
	path := setupCLI(t)
	out, err := runCLI(t, "check", "--wordlist", path, "--length", "0", "foo", "bat")
	if err == nil {
		t.Fatalf("expected error for missing word")
	}
	if !strings.Contains(out, "foo: ok") || !strings.Contains(out, "bat: not in word list (try bar, baz)") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestFreqCommand(t *testing.T) {
	path := setupCLI(t)
	out, err := runCLI(t, "freq", "--wordlist", path, "--length", "3", "--chars", "1")
	if err != nil {
		t.Fatalf("freq failed: %v", err)
	}
	if !strings.HasPrefix(out, "Char Count  Share\na        2 22.22%\n") {
		t.Fatalf("unexpected output:\n%q", out)
	}
	out, err = runCLI(t, "freq", "--wordlist", path, "--length", "3", "--positional", "--chars", "1")
	if err != nil {
		t.Fatalf("positional freq failed: %v", err)
	}
	if out != "Char 1 2 3\na    0 2 0\n" {
		t.Fatalf("unexpected output:\n%q", out)
	}
}

func TestResolveWordlistLangs(t *testing.T) {
	available := []string{"de", "en", "fr"}
	langs, all, err := resolveWordlistLangs("", available)
	if err != nil || all || !slices.Equal(langs, []string{"en"}) {
		t.Fatalf("unexpected default: %v %v %v", langs, all, err)
	}
	langs, all, err = resolveWordlistLangs("all", available)
	if err != nil || !all || !slices.Equal(langs, available) {
		t.Fatalf("unexpected all: %v %v %v", langs, all, err)
	}
	langs, _, err = resolveWordlistLangs("FR, de", available)
	if err != nil || !slices.Equal(langs, []string{"fr", "de"}) {
		t.Fatalf("unexpected list: %v %v", langs, err)
	}
	if _, _, err := resolveWordlistLangs("xx", available); err == nil {
		t.Fatalf("expected error for unknown language")
	}
	if got, ok := selectWordlistType(map[string]struct{}{"small": {}}, "large"); !ok || got != "small" {
		t.Fatalf("expected fallback to small, got %q", got)
	}
}

func TestConfigTemplateParses(t *testing.T) {
	setupCLI(t)
	path := config.DefaultConfigPath()
	if err := ensureConfigFile(path); err != nil {
		t.Fatalf("ensure config: %v", err)
	}
	if _, err := config.LoadConfig(path); err != nil {
		t.Fatalf("template does not parse: %v", err)
	}
	names, err := listWordLists(t.TempDir())
	if err != nil || len(names) != 0 {
		t.Fatalf("expected no word lists, got %v (%v)", names, err)
	}
}
