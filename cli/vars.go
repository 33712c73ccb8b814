package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/splice/cli/cmd"
	"github.com/ardnew/splice/lang"
)

// ErrVarsFile reports a variables file that cannot be read or decoded.
var ErrVarsFile = cmd.NewError("load variables file")

// loadVarsFile reads the YAML variables file at path.
func loadVarsFile(ctx context.Context, path string) (map[string]lang.Value, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ErrVarsFile.With(slog.String("file", path)).Wrap(err)
	}
	defer f.Close()

	vars, err := loadVars(ctx, f)
	if err != nil {
		return nil, ErrVarsFile.With(slog.String("file", path)).Wrap(err)
	}

	return vars, nil
}

// loadVars decodes a YAML mapping of variables. Scalars keep their type.
// Nested mappings and sequences are flattened into dotted names, so
//
//	user: {name: ardnew, id: 7}
//	paths: [/bin, /usr/bin]
//
// defines user.name, user.id, paths.0 and paths.1. A null value defines an
// empty variable. An empty document defines nothing.
func loadVars(ctx context.Context, r io.Reader) (map[string]lang.Value, error) {
	var raw map[string]any

	if err := yaml.NewDecoder(r).DecodeContext(ctx, &raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	vars := make(map[string]lang.Value, len(raw))

	for name, value := range raw {
		if err := flatten(vars, name, value); err != nil {
			return nil, err
		}
	}

	return vars, nil
}

func flatten(vars map[string]lang.Value, name string, value any) error {
	switch x := value.(type) {
	case map[string]any:
		for k, v := range x {
			if err := flatten(vars, name+"."+k, v); err != nil {
				return err
			}
		}

	case []any:
		for i, v := range x {
			if err := flatten(vars, name+"."+strconv.Itoa(i), v); err != nil {
				return err
			}
		}

	case nil:
		vars[name] = lang.String("")

	default:
		v := lang.ValueOf(x)
		if v.Kind() == lang.KindEmpty {
			return fmt.Errorf("variable %q: unsupported type %T", name, value)
		}

		vars[name] = v
	}

	return nil
}
