package lang

import (
	"log/slog"
	"maps"
	"slices"
)

func sortedKeys[T any](m map[string]T) []string {
	if len(m) == 0 {
		return nil
	}

	return slices.Sorted(maps.Keys(m))
}

// nodeAttrs summarizes a tree for trace logging.
func nodeAttrs(root *Node) []slog.Attr {
	var count, depth int

	root.Walk(func(_ *Node, d int) bool {
		count++
		depth = max(depth, d)

		return true
	})

	return []slog.Attr{
		slog.String("root", root.Kind.String()),
		slog.Int("nodes", count),
		slog.Int("height", depth),
	}
}
