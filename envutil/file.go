package envutil

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ErrUnknownFileType is returned when the file extension is not recognized.
var ErrUnknownFileType = errors.New("env file doesn't have a known file suffix")

// LoadEnvFile loads environment variables from a file and returns them as a map.
// The file format is detected from the file extension:
//   - .env files are parsed as KEY=VALUE lines (godotenv syntax, comments and quoting allowed)
//   - .json files are expected to have an "env" object of string values
//   - .yml/.yaml files are expected to have an "env" mapping of string values
//
// Example YAML file:
//
//	env:
//	  IFEMPTY_CHECK: "true"
//	  LOG_LEVEL: debug
func LoadEnvFile(path string) (map[string]string, error) {
	name := strings.ToLower(filepath.Base(path))

	switch {
	case strings.HasSuffix(name, ".env"):
		return godotenv.Read(path)
	case strings.HasSuffix(name, ".json"):
		return loadJSONFile(path)
	case strings.HasSuffix(name, ".yml"), strings.HasSuffix(name, ".yaml"):
		return loadYAMLFile(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFileType, filepath.Base(path))
	}
}

// LoadOption configures Load.
type LoadOption func(*loadOptions)

type loadOptions struct {
	override bool
}

// WithOverride lets file values replace variables that are already set,
// including ones set by an earlier file.
func WithOverride(override bool) LoadOption {
	return func(o *loadOptions) {
		o.override = override
	}
}

// Load reads each file with LoadEnvFile and exports its variables into the
// process environment, returning how many variables it set. By default a
// variable that is already set keeps its value, so the real environment wins
// over files and earlier files win over later ones.
func Load(paths []string, opts ...LoadOption) (int, error) {
	cfg := &loadOptions{}

	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}

	set := 0

	for _, path := range paths {
		vars, err := LoadEnvFile(path)
		if err != nil {
			return set, fmt.Errorf("loading %s: %w", path, err)
		}

		for key, value := range vars {
			if old, exists := os.LookupEnv(key); exists && (!cfg.override || old == value) {
				continue
			}

			if err := os.Setenv(key, value); err != nil {
				return set, fmt.Errorf("setting %s from %s: %w", key, path, err)
			}

			set++
		}
	}

	return set, nil
}

type jsonEnvFile struct {
	Env map[string]string `json:"env"`
}

func loadJSONFile(path string) (map[string]string, error) {
	bts, err := os.ReadFile(path) // #nosec G304 -- path is the intended file to load
	if err != nil {
		return nil, err
	}

	out := &jsonEnvFile{}

	if err := json.Unmarshal(bts, out); err != nil {
		return nil, err
	}

	return out.Env, nil
}

type yamlEnvFile struct {
	Env map[string]string `yaml:"env"`
}

func loadYAMLFile(path string) (map[string]string, error) {
	bts, err := os.ReadFile(path) // #nosec G304 -- path is the intended file to load
	if err != nil {
		return nil, err
	}

	env := &yamlEnvFile{}

	if err := yaml.Unmarshal(bts, env); err != nil {
		return nil, err
	}

	return env.Env, nil
}
