package corpus

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// maxLineBytes bounds a single corpus line. FAQ answers are short; a line
// past this size is corrupt input, not data.
const maxLineBytes = 1 << 20

// LoadFile reads a JSONL corpus file. Malformed lines are repaired when
// possible and otherwise skipped with a warning; only I/O failures abort
// the load. A nil logger falls back to slog.Default().
func LoadFile(path string, logger *slog.Logger) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open corpus %s: %w", path, err)
	}
	defer f.Close()
	return Load(f, path, logger)
}

// Load reads JSONL entries from r. The name is used only in warnings.
func Load(r io.Reader, name string, logger *slog.Logger) ([]Entry, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var entries []Entry
	reader := bufio.NewReaderSize(r, 64*1024)
	lineno := 0
	for {
		raw, oversized, err := readLine(reader)
		if err == io.EOF && len(raw) == 0 && !oversized {
			break
		}
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("read corpus %s: %w", name, err)
		}
		lineno++

		if oversized {
			logger.Warn("skipping oversized corpus line",
				"source", name, "line", lineno, "limit_bytes", maxLineBytes)
			continue
		}
		line := strings.TrimSpace(string(raw))
		if line == "" {
			continue
		}

		entry, err := decodeLine(line)
		if err != nil {
			logger.Warn("skipping malformed corpus line",
				"source", name, "line", lineno, "error", err)
			continue
		}
		if strings.TrimSpace(entry.Question) == "" {
			logger.Warn("skipping corpus line without question",
				"source", name, "line", lineno)
			continue
		}
		entries = append(entries, entry)
	}

	logger.Info("loaded corpus entries", "source", name, "count", len(entries))
	return entries, nil
}

// readLine returns the next line from reader. A line past maxLineBytes is
// drained to its newline and reported as oversized instead of buffered, so
// one corrupt line cannot abort the rest of the load.
func readLine(reader *bufio.Reader) (line []byte, oversized bool, err error) {
	for {
		frag, isPrefix, err := reader.ReadLine()
		if err != nil {
			return line, oversized, err
		}
		if !oversized {
			line = append(line, frag...)
			if len(line) > maxLineBytes {
				line = nil
				oversized = true
			}
		}
		if !isPrefix {
			return line, oversized, nil
		}
	}
}

// decodeLine parses one JSONL line, attempting a repair pass before giving
// up on almost-JSON.
func decodeLine(line string) (Entry, error) {
	var entry Entry
	if err := json.Unmarshal([]byte(line), &entry); err == nil {
		return entry, nil
	}

	repaired, repairErr := jsonrepair.JSONRepair(line)
	if repairErr != nil {
		return Entry{}, fmt.Errorf("unparseable JSON: %w", repairErr)
	}
	if err := json.Unmarshal([]byte(repaired), &entry); err != nil {
		return Entry{}, fmt.Errorf("unparseable after repair: %w", err)
	}
	return entry, nil
}
