package repl

// defaultHistoryLimit bounds the number of remembered lines.
const defaultHistoryLimit = 500

// History is the in-memory list of submitted lines, oldest first.
type History struct {
	entries []string
	limit   int
}

// NewHistory returns an empty History holding at most limit lines. A limit
// less than 1 uses the default.
func NewHistory(limit int) *History {
	if limit < 1 {
		limit = defaultHistoryLimit
	}

	return &History{limit: limit}
}

// Add appends line unless it is empty or repeats the most recent entry.
func (h *History) Add(line string) {
	if line == "" {
		return
	}

	if n := len(h.entries); n > 0 && h.entries[n-1] == line {
		return
	}

	h.entries = append(h.entries, line)

	if over := len(h.entries) - h.limit; over > 0 {
		h.entries = h.entries[over:]
	}
}

// Len returns the number of entries.
func (h *History) Len() int { return len(h.entries) }

// At returns entry i, where 0 is the oldest.
func (h *History) At(i int) (string, error) {
	if i < 0 || i >= len(h.entries) {
		return "", ErrOutOfBounds
	}

	return h.entries[i], nil
}
