package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/wordrank/internal/config"
	"github.com/verte-zerg/wordrank/internal/corpus"
	"github.com/verte-zerg/wordrank/internal/lexicon"
	"github.com/verte-zerg/wordrank/internal/model"
	"github.com/verte-zerg/wordrank/internal/stats"
	"github.com/verte-zerg/wordrank/internal/store"
	"github.com/verte-zerg/wordrank/internal/wordfreq"
	"github.com/verte-zerg/wordrank/internal/wordlist"
)

const (
	defaultWordlistSz = 20000
	suggestionLimit   = 5
)

var (
	freqSettings rankFlags
	freqChars    int

	checkSettings rankFlags

	historyLang   string
	historySource string
	historySince  string
	historyLast   int

	wordlistLang   string
	wordlistSize   int
	wordlistLength int
	wordlistType   string
	wordlistForce  bool
)

func newFreqCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "freq",
		Short: "Show letter frequencies of the word list",
		Args:  cobra.NoArgs,
		RunE:  runFreqCmd,
	}
	addRankFlags(cmd, &freqSettings)
	cmd.Flags().IntVar(&freqChars, "chars", 0, "number of letters to show, 0 for all")
	return cmd
}

func runFreqCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := freqSettings.resolve(cmd)
	if err != nil {
		return err
	}
	c, err := loadCorpus(cfg)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if !cfg.Positional {
		return stats.RenderFrequencyTable(out, corpus.BuildCharModel(c), freqChars)
	}
	chars := corpus.BuildCharModel(c).Chars()
	if freqChars > 0 && freqChars < len(chars) {
		chars = chars[:freqChars]
	}
	return stats.RenderPositionalTable(out, corpus.BuildPositionalModel(c), chars, cfg.Length)
}

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check WORD...",
		Short: "Check whether words are in the word list",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runCheckCmd,
	}
	addRankFlags(cmd, &checkSettings)
	return cmd
}

func runCheckCmd(cmd *cobra.Command, args []string) error {
	cfg, err := checkSettings.resolve(cmd)
	if err != nil {
		return err
	}
	c, err := loadCorpus(cfg)
	if err != nil {
		return err
	}
	lx := lexicon.New(c)
	out := cmd.OutOrStdout()
	missing := 0
	for _, arg := range args {
		word := strings.ToLower(strings.TrimSpace(arg))
		if lx.Has(word) {
			if _, err := fmt.Fprintf(out, "%s: ok\n", word); err != nil {
				return err
			}
			continue
		}
		missing++
		line := fmt.Sprintf("%s: not in word list", word)
		if similar := closestByPrefix(lx, word); len(similar) > 0 {
			line += " (try " + strings.Join(similar, ", ") + ")"
		}
		if _, err := fmt.Fprintln(out, line); err != nil {
			return err
		}
	}
	if missing > 0 {
		return fmt.Errorf("%d of %d words not found", missing, len(args))
	}
	return nil
}

// closestByPrefix returns words sharing the longest available prefix.
func closestByPrefix(lx *lexicon.Lexicon, word string) []string {
	runes := []rune(word)
	for n := len(runes) - 1; n > 0; n-- {
		if found := lx.WithPrefix(string(runes[:n]), suggestionLimit); len(found) > 0 {
			return found
		}
	}
	return nil
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show stored game history",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().StringVar(&historyLang, "lang", "", "language filter")
	cmd.Flags().StringVar(&historySource, "source", "", "game source filter: play or solve")
	cmd.Flags().StringVar(&historySince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&historyLast, "last", 0, "limit to last N games")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	var sinceTime *time.Time
	if historySince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", historySince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}
	switch historySource {
	case "", model.SourcePlay, model.SourceSolve:
	default:
		return fmt.Errorf("invalid --source %q (use play or solve)", historySource)
	}

	st, err := store.Open(dbPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logg.Error("failed to close db", "err", cerr)
		}
	}()

	report, err := stats.BuildReport(cmd.Context(), st, model.HistoryConfig{
		Lang:   historyLang,
		Source: historySource,
		Since:  sinceTime,
		Last:   historyLast,
	})
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}
	out := cmd.OutOrStdout()
	if err := stats.RenderSummary(out, report); err != nil {
		return err
	}
	dist := stats.Distribution(report.Games)
	if len(dist) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(out); err != nil {
		return err
	}
	return stats.RenderHistogram(out, dist, 0)
}

func newWordlistCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wordlist",
		Short: "Generate word lists from wordfreq",
		Args:  cobra.NoArgs,
		RunE:  runWordlistCmd,
	}
	cmd.Flags().StringVar(&wordlistLang, "lang", "", "language code, comma list or 'all' (default: en)")
	cmd.Flags().IntVar(&wordlistSize, "size", defaultWordlistSz, "maximum number of words")
	cmd.Flags().IntVar(&wordlistLength, "length", defaultLength, "word length, 0 for any")
	cmd.Flags().StringVar(&wordlistType, "type", "large", "wordfreq list type: large or small")
	cmd.Flags().BoolVar(&wordlistForce, "force", false, "overwrite existing files")
	return cmd
}

func runWordlistCmd(cmd *cobra.Command, _ []string) error {
	if wordlistSize <= 0 {
		return fmt.Errorf("--size must be greater than 0")
	}
	if wordlistLength < 0 || wordlistLength > corpus.MaxPosition {
		return fmt.Errorf("--length must be between 0 and %d", corpus.MaxPosition)
	}
	listType := strings.ToLower(wordlistType)
	if listType != "large" && listType != "small" {
		return fmt.Errorf("--type must be large or small")
	}
	outDir := config.DefaultWordListDir()

	logg.Info("fetching wordfreq metadata")
	wheel, err := wordfreq.DownloadLatestWheel(cmd.Context(), config.DefaultWordfreqCacheDir())
	if err != nil {
		return fmt.Errorf("failed to download wordfreq wheel: %w", err)
	}
	logg.Info("using wheel", "file", wheel.Filename, "version", wheel.Version, "cached", wheel.Cached)

	langTypes, err := wordfreq.ListLanguageTypes(wheel.Path)
	if err != nil {
		return fmt.Errorf("failed to list languages: %w", err)
	}
	langs, allRequested, err := resolveWordlistLangs(wordlistLang, wordfreq.LanguagesFromTypes(langTypes))
	if err != nil {
		return err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	for _, langCode := range langs {
		outPath := filepath.Join(outDir, config.WordListName(langCode, wordlistLength))
		if !wordlistForce {
			if _, err := os.Stat(outPath); err == nil {
				return fmt.Errorf("word list already exists: %s (use --force to overwrite)", outPath)
			} else if !os.IsNotExist(err) {
				return fmt.Errorf("failed to stat word list: %w", err)
			}
		}

		selectedType, ok := selectWordlistType(langTypes[langCode], listType)
		if !ok {
			if allRequested {
				logg.Warn("skipping language", "lang", langCode, "reason", "no "+listType+" list")
				continue
			}
			return fmt.Errorf("no %s word list available for %s", listType, langCode)
		}
		if selectedType != listType {
			logg.Warn("falling back to another list type", "lang", langCode, "type", selectedType)
		}
		words, err := wordfreq.ExtractWordlist(wheel.Path, langCode, selectedType, wordfreq.Options{
			Limit:  wordlistSize,
			Length: wordlistLength,
		})
		if err != nil {
			if allRequested {
				logg.Warn("skipping language", "lang", langCode, "err", err)
				continue
			}
			return fmt.Errorf("failed to extract %s word list: %w", langCode, err)
		}
		if err := wordlist.WriteWords(outPath, words); err != nil {
			return fmt.Errorf("failed to write %s: %w", outPath, err)
		}
		logg.Info("wrote word list", "path", outPath, "words", len(words))
	}

	if err := wordfreq.WriteAttribution(wheel.Path, outDir); err != nil {
		return fmt.Errorf("failed to write attribution: %w", err)
	}
	return nil
}

func resolveWordlistLangs(lang string, available []string) ([]string, bool, error) {
	lang = strings.TrimSpace(strings.ToLower(lang))
	if lang == "" {
		return []string{defaultLang}, false, nil
	}
	if lang == "all" {
		return append([]string(nil), available...), true, nil
	}
	availableSet := make(map[string]struct{}, len(available))
	for _, a := range available {
		availableSet[a] = struct{}{}
	}
	var requested []string
	for _, part := range strings.Split(lang, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if _, ok := availableSet[part]; !ok {
			return nil, false, fmt.Errorf("unknown language %q (available: %s)", part, strings.Join(available, ", "))
		}
		requested = append(requested, part)
	}
	if len(requested) == 0 {
		return nil, false, fmt.Errorf("--lang must not be empty")
	}
	return requested, false, nil
}

func selectWordlistType(available map[string]struct{}, desired string) (string, bool) {
	if _, ok := available[desired]; ok {
		return desired, true
	}
	if desired == "large" {
		if _, ok := available["small"]; ok {
			return "small", true
		}
	}
	return "", false
}

func newLangsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "langs",
		Short: "List downloaded word lists",
		Args:  cobra.NoArgs,
		RunE:  runLangsCmd,
	}
}

func runLangsCmd(cmd *cobra.Command, _ []string) error {
	names, err := listWordLists(config.DefaultWordListDir())
	if err != nil {
		return err
	}
	if len(names) == 0 {
		logg.Warn("no word lists found; download with: wordrank wordlist --lang <code>")
		return fmt.Errorf("no word lists found")
	}
	for _, name := range names {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), name); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

// listWordLists returns list names such as "en-5" found in dir.
func listWordLists(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read word list directory: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".txt") {
			continue
		}
		if name == "ATTRIBUTION.txt" || name == "LICENSE.txt" {
			continue
		}
		names = append(names, strings.TrimSuffix(name, ".txt"))
	}
	sort.Strings(names)
	return names, nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(cmd *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := ensureConfigFile(path); err != nil {
		return err
	}
	return openEditor(cmd.Context(), path)
}

func ensureConfigFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat config: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func openEditor(ctx context.Context, path string) error {
	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	c := exec.CommandContext(ctx, parts[0], append(parts[1:], path)...)
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	if err := c.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}
