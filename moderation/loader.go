package moderation

import (
	"bufio"
	"bytes"
	"chat-rooms/errors"
	"embed"
	"io/fs"
	"path"
	"strings"
)

// DefaultDir is the directory holding the embedded dictionaries.
const DefaultDir = "censored"

//go:embed censored/*.txt
var Dictionaries embed.FS

// CensoredData carries the result of the loading process including metadata for logging.
type CensoredData struct {
	Words     []string
	Languages []string
}

// Loader reads blacklisted words from a filesystem, one dictionary per language.
type Loader struct {
	fs fs.FS
}

// NewLoader accepts the embedded dictionaries or any directory, e.g. os.DirFS.
func NewLoader(f fs.FS) *Loader {
	return &Loader{fs: f}
}

// LoadAll reads every .txt file of dir as a language dictionary ("fr.txt" -> "fr")
// and merges their lines into a list of unique words.
// Blank lines and lines starting with '#' are skipped.
func (l *Loader) LoadAll(dir string) (*CensoredData, error) {
	entries, err := fs.ReadDir(l.fs, dir)
	if err != nil {
		return nil, err
	}

	var languages []string
	var words []string
	seen := make(map[string]struct{})

	for _, entry := range entries {
		if entry.IsDir() {
			return nil, errors.ErrOnlyCensoredFiles
		}
		if !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}
		languages = append(languages, strings.TrimSuffix(entry.Name(), ".txt"))

		data, err := fs.ReadFile(l.fs, path.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}

		// A scanner handles both \n and \r\n line endings
		scanner := bufio.NewScanner(bytes.NewReader(data))
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			if _, ok := seen[line]; ok {
				continue
			}
			seen[line] = struct{}{}
			words = append(words, line)
		}
		if err := scanner.Err(); err != nil {
			return nil, err
		}
	}

	if len(words) == 0 {
		return nil, errors.ErrEmptyWords
	}

	return &CensoredData{
		Words:     words,
		Languages: languages,
	}, nil
}
