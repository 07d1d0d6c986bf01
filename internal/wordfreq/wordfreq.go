// Package wordfreq builds word lists from the wordfreq dataset.
package wordfreq

import (
	"archive/zip"
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/verte-zerg/wordrank/internal/wordlist"
)

// Options controls word list extraction.
type Options struct {
	// Limit caps the number of words returned.
	Limit int
	// Length keeps only words with exactly this many characters when positive.
	Length int
}

// ExtractWordlist extracts a word list from the wheel for the given language
// and type, most frequent words first.
func ExtractWordlist(wheelPath, lang, listType string, opts Options) ([]string, error) {
	if wheelPath == "" {
		return nil, fmt.Errorf("wheel path is required")
	}
	lang = strings.ToLower(lang)
	if lang == "" {
		return nil, fmt.Errorf("unsupported language")
	}
	if listType == "" {
		return nil, fmt.Errorf("word list type is required")
	}
	if opts.Limit <= 0 {
		return nil, fmt.Errorf("limit must be greater than 0")
	}
	if opts.Length < 0 {
		return nil, fmt.Errorf("length must not be negative")
	}

	entries, err := readWordEntries(wheelPath, lang, listType)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].score > entries[j].score
	})

	words := make([]string, 0, min(opts.Limit, len(entries)))
	seen := make(map[string]struct{})
	langFilter := wordlist.FilterForLang(lang)
	for _, entry := range entries {
		if _, ok := seen[entry.word]; ok {
			continue
		}
		if !isAlpha(entry.word) || !langFilter(entry.word) {
			continue
		}
		length := utf8.RuneCountInString(entry.word)
		if opts.Length > 0 && length != opts.Length {
			continue
		}
		if length < 2 || length > 20 {
			continue
		}
		seen[entry.word] = struct{}{}
		words = append(words, entry.word)
		if len(words) >= opts.Limit {
			break
		}
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("no words found for %s/%s", lang, listType)
	}
	return words, nil
}

func readWordEntries(wheelPath, lang, listType string) ([]wordEntry, error) {
	reader, err := zip.OpenReader(wheelPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open wheel: %w", err)
	}
	defer func() {
		_ = reader.Close()
	}()

	dataFile := selectDataFile(reader.File, lang, listType)
	if dataFile == nil {
		return nil, fmt.Errorf("no data file found for %s/%s", lang, listType)
	}
	rc, err := dataFile.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open data file: %w", err)
	}
	defer func() {
		_ = rc.Close()
	}()

	entries, err := decodeEntries(dataFile.Name, rc)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("wordfreq data contained no entries")
	}
	return entries, nil
}

func selectDataFile(files []*zip.File, lang, listType string) *zip.File {
	listType = strings.ToLower(listType)
	for _, file := range files {
		fileLang, fileType := parseLanguageAndType(file.Name)
		if fileLang == lang && fileType == listType {
			return file
		}
	}
	return nil
}

func isAlpha(word string) bool {
	for _, r := range word {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return word != ""
}
