package wordfreq

import (
	"compress/gzip"
	"fmt"
	"io"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

type wordEntry struct {
	word  string
	score float64
}

// cBpackHeader is the first element of a wordfreq data file. The remaining
// elements are bins of words; bin i holds words with a frequency of -i
// centibels.
type cBpackHeader struct {
	Format  string `msgpack:"format"`
	Version int    `msgpack:"version"`
}

func decodeEntries(name string, r io.Reader) ([]wordEntry, error) {
	if strings.HasSuffix(name, ".gz") {
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer func() {
			_ = gz.Close()
		}()
		r = gz
	}

	var raw []msgpack.RawMessage
	if err := msgpack.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", name, err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("wordfreq data contained no entries")
	}

	var header cBpackHeader
	if err := msgpack.Unmarshal(raw[0], &header); err == nil && header.Format == "cB" {
		return entriesFromBins(raw[1:])
	}
	return entriesFromPairs(raw)
}

func entriesFromBins(bins []msgpack.RawMessage) ([]wordEntry, error) {
	var entries []wordEntry
	for i, bin := range bins {
		var words []string
		if err := msgpack.Unmarshal(bin, &words); err != nil {
			return nil, fmt.Errorf("failed to decode bin %d: %w", i, err)
		}
		for _, word := range words {
			entries = append(entries, wordEntry{word: word, score: float64(-i)})
		}
	}
	return entries, nil
}

// scoredBin is the older [score, [words...]] layout.
type scoredBin struct {
	_msgpack struct{} `msgpack:",as_array"`
	Score    float64
	Words    []string
}

func entriesFromPairs(items []msgpack.RawMessage) ([]wordEntry, error) {
	var entries []wordEntry
	for i, item := range items {
		var bin scoredBin
		if err := msgpack.Unmarshal(item, &bin); err != nil {
			return nil, fmt.Errorf("unsupported wordfreq entry %d: %w", i, err)
		}
		for _, word := range bin.Words {
			entries = append(entries, wordEntry{word: word, score: bin.Score})
		}
	}
	return entries, nil
}
