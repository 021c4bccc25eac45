package moderation

import (
	"chat-rooms/errors"
	"log/slog"
	"unicode"

	"github.com/abadojack/whatlanggo"
	goahocorasick "github.com/anknown/ahocorasick"
)

// Moderator detects censored words with an Aho-Corasick automaton.
// Text is normalized before matching: leet speak is mapped back to letters,
// punctuation, spaces and symbols are skipped, letters are lowered.
// A hit only counts when it covers one whole word of the original text:
// noise may split its letters but whitespace may not.
type Moderator struct {
	matcher      *goahocorasick.Machine
	censoredChar rune
	log          *slog.Logger
}

type TextMapping struct {
	Normalized []rune
	OrigIdx    []int
}

// span is a hit in the original text, in runes, end excluded.
type span struct {
	start, end int
	word       string
}

// NewModerator initializes the Aho-Corasick automaton with a normalized version of the provided censored words list.
// Words made only of noise are ignored.
func NewModerator(censoredWords []string, censoredChar rune, log *slog.Logger) (*Moderator, error) {
	var patterns [][]rune
	for _, word := range censoredWords {
		if p := normalizeRunes([]rune(word)); len(p) > 0 {
			patterns = append(patterns, p)
		}
	}
	if len(patterns) == 0 {
		return nil, errors.ErrEmptyWords
	}

	m := new(goahocorasick.Machine)
	if err := m.Build(patterns); err != nil {
		return nil, err
	}
	return &Moderator{matcher: m, censoredChar: censoredChar, log: log}, nil
}

// IsProfane reports whether the text contains a censored word.
// The detected language and the censored text are logged, never the raw text.
func (m *Moderator) IsProfane(text string) bool {
	censored, words := m.Censor(text)
	if len(words) == 0 {
		return false
	}
	info := whatlanggo.Detect(text)
	m.log.Debug("Profanity detected",
		"lang", info.Lang.Iso6391(),
		"matches", len(words),
		"censored", censored)
	return true
}

// Censor replaces the original characters of every hit while preserving spacing.
// It also returns the normalized words that were hit.
func (m *Moderator) Censor(original string) (string, []string) {
	origRunes := []rune(original)
	spans := m.find(origRunes)
	if len(spans) == 0 {
		return original, nil
	}

	var words []string
	for _, s := range spans {
		words = append(words, s.word)
	}
	return m.mask(origRunes, spans), words
}

func (m *Moderator) mask(origRunes []rune, spans []span) string {
	out := make([]rune, len(origRunes))
	copy(out, origRunes)
	for _, s := range spans {
		for i := s.start; i < s.end; i++ {
			out[i] = m.censoredChar
		}
	}
	return string(out)
}

func (m *Moderator) find(origRunes []rune) []span {
	mapping := m.normalize(origRunes)
	if len(mapping.Normalized) == 0 {
		return nil
	}

	var spans []span
	for _, term := range m.matcher.MultiPatternSearch(mapping.Normalized, false) {
		normStart := term.Pos
		normEnd := normStart + len(term.Word)
		if normStart < 0 || normEnd > len(mapping.OrigIdx) {
			continue
		}

		origStart := mapping.OrigIdx[normStart]
		origEnd := mapping.OrigIdx[normEnd-1] + 1
		if !isBoundary(origRunes, origStart-1) || !isBoundary(origRunes, origEnd) {
			continue
		}
		if spansWords(origRunes[origStart:origEnd]) {
			continue
		}
		spans = append(spans, span{start: origStart, end: origEnd, word: string(term.Word)})
	}
	return spans
}

// normalize transforms the input into a searchable format and tracks original rune positions.
func (m *Moderator) normalize(origRunes []rune) TextMapping {
	norm := make([]rune, 0, len(origRunes))
	origIdx := make([]int, 0, len(origRunes))

	for i, r := range origRunes {
		clean := simplifyRune(r)
		if isNoise(clean) {
			continue
		}
		norm = append(norm, unicode.ToLower(clean))
		origIdx = append(origIdx, i)
	}
	return TextMapping{Normalized: norm, OrigIdx: origIdx}
}

// normalizeRunes applies simplification and noise removal to a slice of runes.
func normalizeRunes(input []rune) []rune {
	out := make([]rune, 0, len(input))
	for _, r := range input {
		clean := simplifyRune(r)
		if isNoise(clean) {
			continue
		}
		out = append(out, unicode.ToLower(clean))
	}
	return out
}

// simplifyRune maps common Leet speak characters back to their standard alphabet counterparts.
func simplifyRune(r rune) rune {
	switch r {
	case '4', '@':
		return 'a'
	case '3', '€':
		return 'e'
	case '1', '!', '|':
		return 'i'
	case '0':
		return 'o'
	case '5', '$':
		return 's'
	default:
		return r
	}
}

// isNoise identifies characters that should be ignored during the pattern matching phase.
func isNoise(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSpace(r) || unicode.IsSymbol(r)
}

// isBoundary is true when position i of the original text cannot continue a word.
func isBoundary(runes []rune, i int) bool {
	if i < 0 || i >= len(runes) {
		return true
	}
	r := runes[i]
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

// spansWords is true when whitespace separates the letters of a hit,
// e.g. "mer de" would otherwise read as "merde".
func spansWords(runes []rune) bool {
	for _, r := range runes {
		if unicode.IsSpace(r) {
			return true
		}
	}
	return false
}
