package repl

import (
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/splice/lang"
)

// commands are the names accepted after ':'.
var commands = []string{"funcs", "help", "quit", "set", "tokens", "tree", "vars"}

// completion identifies what the word under the cursor names.
type completion int

const (
	completeNone completion = iota
	completeFunction
	completeVariable
	completeCommand
)

// isWordBoundary reports whether r ends a name. Template delimiters and
// whitespace are boundaries.
func isWordBoundary(r rune) bool {
	switch r {
	case '{', '}', '[', ']', '(', ')', ',', '\'', '\\':
		return true
	}

	return unicode.IsSpace(r)
}

// wordBounds returns the word around cursor and its byte offsets in input.
// The leading ':' of a command line is never part of the word.
func wordBounds(input string, cursor int) (word string, start, end int) {
	floor := 0
	if strings.HasPrefix(input, ":") {
		floor = 1
	}

	cursor = min(max(cursor, floor), len(input))

	start = cursor

	for start > floor {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if isWordBoundary(r) {
			break
		}

		start -= size
	}

	end = cursor

	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if isWordBoundary(r) {
			break
		}

		end += size
	}

	return input[start:end], start, end
}

// completionAt classifies the word beginning at start.
func completionAt(input string, start int) completion {
	if start == 0 {
		return completeNone
	}

	if start == 1 && input[0] == ':' {
		return completeCommand
	}

	switch input[start-1] {
	case '[':
		return completeFunction
	case '{':
		return completeVariable
	default:
		return completeNone
	}
}

// candidates returns the names that can complete a word of kind c.
func candidates(reg *lang.Registry, c completion) []string {
	switch c {
	case completeFunction:
		return reg.FunctionNames()
	case completeVariable:
		return reg.VariableNames()
	case completeCommand:
		return slices.Clone(commands)
	default:
		return nil
	}
}

// suffix returns the text inserted after a completed name of kind c, unless
// rest already starts with it.
func suffix(c completion, rest string) string {
	var s string

	switch c {
	case completeFunction:
		s = "("
	case completeVariable:
		s = "}"
	case completeCommand:
		s = " "
	}

	if s == "" || strings.HasPrefix(rest, s) {
		return ""
	}

	return s
}

// match ranks list against word. An empty word matches everything in
// order.
func match(word string, list []string) fuzzy.Matches {
	if word == "" {
		out := make(fuzzy.Matches, len(list))
		for i, s := range list {
			out[i] = fuzzy.Match{Str: s, Index: i}
		}

		return out
	}

	return fuzzy.Find(word, list)
}

// renderCandidateBar renders matches on one line no wider than width,
// highlighting the selected entry while tab-cycling.
func renderCandidateBar(
	matches fuzzy.Matches,
	suggIdx int,
	tabActive bool,
	width int,
) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	ellipsis := hintStyle.Render("...")
	limit := width - lipgloss.Width(ellipsis) - lipgloss.Width(sep)

	var (
		b    strings.Builder
		used int
	)

	for i, m := range matches {
		item := renderCandidate(m, tabActive && i == suggIdx)
		w := lipgloss.Width(item)

		if i > 0 {
			w += lipgloss.Width(sep)
		}

		if i > 0 && used+w > limit {
			b.WriteString(sep)
			b.WriteString(ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(item)

		used += w
	}

	return b.String()
}

// renderCandidate renders one candidate with its matched runes emphasized.
func renderCandidate(m fuzzy.Match, selected bool) string {
	base, hi := suggestionStyle, suggestionStyle.Bold(true).Underline(true)

	if selected {
		base, hi = selectedStyle, selectedStyle.Bold(true)
	}

	matched := make(map[int]bool, len(m.MatchedIndexes))
	for _, i := range m.MatchedIndexes {
		matched[i] = true
	}

	var b strings.Builder

	for i, r := range m.Str {
		if matched[i] {
			b.WriteString(hi.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}

	return b.String()
}
