// Package startup loads environment files before a command parses its
// configuration, so values from the files feed env-backed flags.
package startup

import (
	"context"
	"fmt"

	"github.com/amp-labs/ifempty/envutil"
	"github.com/amp-labs/ifempty/logger"
	"github.com/samber/lo"
)

// EnvFileKey names the variable holding a comma separated list of env files.
const EnvFileKey = "IFEMPTY_ENV_FILE"

// Option configures environment loading.
type Option func(*options)

type options struct {
	// allowOverride lets file values replace variables already set in the
	// process. Off by default, so the real environment wins.
	allowOverride bool
}

// WithAllowOverride configures whether loaded variables replace existing ones.
func WithAllowOverride(allowOverride bool) Option {
	return func(o *options) {
		o.allowOverride = allowOverride
	}
}

// ConfigureEnvironment loads the files listed in IFEMPTY_ENV_FILE. It does
// nothing when the variable isn't set.
func ConfigureEnvironment(ctx context.Context, opts ...Option) error {
	files := envutil.Strings(ctx, EnvFileKey).ValueOrElse(nil)

	return ConfigureEnvironmentFromFiles(ctx, files, opts...)
}

// ConfigureEnvironmentFromFiles loads the files in order through
// envutil.Load. Without WithAllowOverride(true), a variable that is already
// set (by the environment or by an earlier file) keeps its value.
func ConfigureEnvironmentFromFiles(ctx context.Context, envFiles []string, opts ...Option) error {
	cfg := getOptions(opts)

	envFiles = lo.Compact(envFiles)
	if len(envFiles) == 0 {
		return nil
	}

	set, err := envutil.Load(envFiles, envutil.WithOverride(cfg.allowOverride))
	if err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}

	logger.Get(ctx).Debug("loaded env files", "files", envFiles, "set", set)

	return nil
}

func getOptions(opts []Option) *options {
	cfg := &options{}

	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}

	return cfg
}
