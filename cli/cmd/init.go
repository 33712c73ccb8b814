package cmd

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/splice/log"
	"github.com/ardnew/splice/profile"
)

// defaultConfigIndent is the YAML indentation of generated configuration
// files.
const defaultConfigIndent = 2

// Init writes a configuration file holding the current flag values.
type Init struct {
	Force  bool   `help:"Overwrite an existing configuration file." short:"f"`
	Output string `help:"Write to PATH instead of the default location." placeholder:"PATH" short:"o" type:"path"`
}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) error {
	ktx := kongContextFrom(ctx)
	if ktx == nil {
		return ErrWriteConfig.Wrap(errors.New("no command-line context"))
	}

	path := i.Output
	if path == "" {
		path = ktx.Model.Vars()[ConfigIdentifier]
	}

	attr := slogFile(path)

	if _, err := os.Stat(path); err == nil && !i.Force {
		return ErrWriteConfig.With(attr).Wrap(ErrFileExists)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return ErrWriteConfig.With(attr).Wrap(err)
	}

	data, err := yaml.MarshalContext(ctx, flagValues(ktx), yaml.Indent(defaultConfigIndent))
	if err != nil {
		return ErrWriteConfig.With(attr).Wrap(err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return ErrWriteConfig.With(attr).Wrap(err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return ErrWriteConfig.With(attr).Wrap(err)
	}

	log.DebugContext(ctx, "initialized configuration file", attr)

	return nil
}

// flagValues collects the application flags that have a non-empty value,
// keyed by flag name.
func flagValues(ktx *kong.Context) map[string]any {
	skip := []string{"help", "version", profile.Tag}

	values := make(map[string]any)

	for _, flag := range ktx.Model.Flags {
		if flag.Hidden || slices.ContainsFunc(skip, func(s string) bool {
			return strings.HasPrefix(flag.Name, s)
		}) {
			continue
		}

		if v := plain(reflect.ValueOf(ktx.FlagValue(flag))); v != nil {
			values[flag.Name] = v
		}
	}

	return values
}

// plain converts a flag value to YAML-friendly types, or nil if it is
// empty.
func plain(v reflect.Value) any {
	switch v.Kind() {
	case reflect.String:
		if v.Len() == 0 {
			return nil
		}

		return v.String()

	case reflect.Bool:
		return v.Bool()

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int()

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint()

	case reflect.Float32, reflect.Float64:
		return v.Float()

	case reflect.Slice:
		if v.Len() == 0 {
			return nil
		}

		out := make([]any, 0, v.Len())
		for i := range v.Len() {
			if e := plain(v.Index(i)); e != nil {
				out = append(out, e)
			}
		}

		return out

	case reflect.Map:
		if v.Len() == 0 {
			return nil
		}

		out := make(map[string]any, v.Len())
		for it := v.MapRange(); it.Next(); {
			out[it.Key().String()] = plain(it.Value())
		}

		return out

	default:
		return nil
	}
}
