package ui

import (
	"sync"
	"unicode"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

// SearchState holds the query of the history search
type SearchState struct {
	query     []rune
	cursorPos int
	minScore  int // raw fzf score a match must reach, 0 accepts all
	slab      *util.Slab
}

var initAlgo sync.Once

// NewSearchState creates a new search state
func NewSearchState(minScore int) *SearchState {
	initAlgo.Do(func() { algo.Init("default") })
	return &SearchState{
		minScore: minScore,
		slab:     util.MakeSlab(16384, 1024),
	}
}

// Query returns the current query
func (s *SearchState) Query() string {
	return string(s.query)
}

// CursorPos returns the cursor position in runes
func (s *SearchState) CursorPos() int {
	return s.cursorPos
}

// SetQuery sets the search query and moves the cursor to its end
func (s *SearchState) SetQuery(query string) {
	s.query = []rune(query)
	s.cursorPos = len(s.query)
}

// Clear clears the search state
func (s *SearchState) Clear() {
	s.query = nil
	s.cursorPos = 0
}

// InsertChar inserts a character at the cursor position
func (s *SearchState) InsertChar(ch rune) {
	s.query = append(s.query[:s.cursorPos:s.cursorPos], append([]rune{ch}, s.query[s.cursorPos:]...)...)
	s.cursorPos++
}

// DeleteChar deletes the character before the cursor (backspace)
func (s *SearchState) DeleteChar() {
	if s.cursorPos > 0 {
		s.query = append(s.query[:s.cursorPos-1], s.query[s.cursorPos:]...)
		s.cursorPos--
	}
}

// DeleteCharForward deletes the character at the cursor (delete)
func (s *SearchState) DeleteCharForward() {
	if s.cursorPos < len(s.query) {
		s.query = append(s.query[:s.cursorPos], s.query[s.cursorPos+1:]...)
	}
}

func (s *SearchState) MoveCursorLeft() {
	if s.cursorPos > 0 {
		s.cursorPos--
	}
}

func (s *SearchState) MoveCursorRight() {
	if s.cursorPos < len(s.query) {
		s.cursorPos++
	}
}

// MoveCursorStart moves cursor to start (Ctrl+A)
func (s *SearchState) MoveCursorStart() {
	s.cursorPos = 0
}

// MoveCursorEnd moves cursor to end (Ctrl+E)
func (s *SearchState) MoveCursorEnd() {
	s.cursorPos = len(s.query)
}

// DeleteWord deletes the word before cursor (Ctrl+W)
func (s *SearchState) DeleteWord() {
	if s.cursorPos == 0 {
		return
	}

	start := s.cursorPos - 1
	for start > 0 && s.query[start] == ' ' {
		start--
	}
	for start > 0 && s.query[start-1] != ' ' {
		start--
	}

	s.query = append(s.query[:start], s.query[s.cursorPos:]...)
	s.cursorPos = start
}

// MatchResult contains match score and positions
type MatchResult struct {
	Score     int
	Positions []int
}

// matchWithPositions calculates match score and rune positions for highlighting
func (s *SearchState) matchWithPositions(text string) MatchResult {
	if len(s.query) == 0 {
		return MatchResult{Score: 0, Positions: nil}
	}

	// The matcher folds the text itself; only the pattern is lowered
	pattern := make([]rune, len(s.query))
	for i, r := range s.query {
		pattern[i] = unicode.ToLower(r)
	}

	chars := util.ToChars([]byte(text))
	result, positions := algo.FuzzyMatchV2(false, false, true, &chars, pattern, true, s.slab)
	if result.Start < 0 {
		return MatchResult{Score: -1, Positions: nil}
	}

	var matchPositions []int
	if positions != nil {
		// Positions index the Chars array, which is rune based
		matchPositions = make([]int, len(*positions))
		copy(matchPositions, *positions)
	}

	return MatchResult{Score: result.Score, Positions: matchPositions}
}

// MatchMessage checks whether the displayed text of a message matches the
// query. An empty query matches everything.
func (s *SearchState) MatchMessage(displayed string) (bool, MatchResult) {
	if len(s.query) == 0 {
		return true, MatchResult{Score: 0, Positions: nil}
	}

	res := s.matchWithPositions(displayed)
	if res.Score >= 0 && (s.minScore == 0 || res.Score >= s.minScore) {
		return true, res
	}
	return false, MatchResult{Score: -1, Positions: nil}
}
