package cli

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/splice/log"
	"github.com/ardnew/splice/pkg"
)

// baseConfig is the base name of the configuration file.
const baseConfig = "config.yaml"

// userDir returns dir/splice, where dir comes from fn, falling back to
// fallback under the home directory and then the working directory.
func userDir(fn func() (string, error), fallback string) string {
	dir, err := fn()
	if err != nil {
		if home, herr := os.UserHomeDir(); herr == nil {
			dir = filepath.Join(home, fallback)
		} else {
			dir = "."
		}
	}

	return filepath.Join(dir, pkg.Name)
}

// configDir returns the configuration directory, $XDG_CONFIG_HOME/splice
// on Linux.
func configDir() string { return userDir(os.UserConfigDir, ".config") }

// cacheDir returns the cache directory, $XDG_CACHE_HOME/splice on Linux.
func cacheDir() string { return userDir(os.UserCacheDir, ".cache") }

// configPath joins elem onto the configuration directory.
func configPath(elem ...string) string {
	return filepath.Join(append([]string{configDir()}, elem...)...)
}

// resolve returns a [kong.ConfigurationLoader] for YAML configuration
// files. The file is a mapping from flag names to values:
//
//	log-level: debug
//	max-depth: 20
//	vars: [~/.config/splice/vars.yaml]
//	var:
//	  user: ardnew
//
// Underscores may stand in for hyphens in keys. Command-line flags override
// file values. A file that fails to parse is logged and ignored.
func resolve(ctx context.Context) kong.ConfigurationLoader {
	return func(r io.Reader) (kong.Resolver, error) {
		var raw map[string]any

		err := yaml.NewDecoder(r).DecodeContext(ctx, &raw)
		if err != nil && !errors.Is(err, io.EOF) {
			log.WarnContext(ctx, "ignoring configuration file", slog.Any("error", err))

			return config{}, nil
		}

		c := make(config, len(raw))
		for key, value := range raw {
			c[strings.ReplaceAll(strings.ToLower(key), "_", "-")] = flagValue(value)
		}

		return c, nil
	}
}

// config implements [kong.Resolver] over a decoded configuration file.
type config map[string]any

func (config) Validate(*kong.Application) error { return nil }

func (c config) Resolve(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
	if v, ok := c[flag.Name]; ok {
		return v, nil
	}

	return nil, nil
}

// flagValue converts a decoded YAML value to the form kong's mappers
// accept. Numbers become strings.
func flagValue(v any) any {
	switch x := v.(type) {
	case int64:
		return strconv.FormatInt(x, 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case int:
		return strconv.Itoa(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = flagValue(e)
		}

		return out
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = flagValue(e)
		}

		return out
	default:
		return v
	}
}
