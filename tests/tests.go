// Package tests provides helpers shared by the module's tests: contexts that
// carry test metadata and a per-test logger, and scratch Go packages on disk
// for exercising the generator.
//
// Example usage:
//
//	func TestGenerate(t *testing.T) {
//	    ctx := tests.GetUniqueContext(t)
//	    dir := tests.WritePackage(t, map[string]string{
//	        "model.go": "package model\n\n//ifempty:generate\ntype Name string\n",
//	    })
//	    // ...
//	}
package tests

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/amp-labs/ifempty/envutil"
	"github.com/amp-labs/ifempty/logger"
	"github.com/google/uuid"
	"github.com/neilotoole/slogt"
)

type contextKey string

const (
	testIdKey   contextKey = "testId"
	testNameKey contextKey = "testName"
)

// GetUniqueContext creates a context derived from t.Context() that carries a
// unique test identifier ("test-" followed by a UUID), the test name, and a
// logger that writes through t.Log, so log output is attributed to the test
// that produced it.
func GetUniqueContext(t *testing.T) context.Context {
	t.Helper()

	ctx := context.WithValue(t.Context(), testIdKey, "test-"+uuid.New().String())
	ctx = context.WithValue(ctx, testNameKey, t.Name())

	return logger.WithLogger(ctx, slogt.New(t))
}

// Info is the test metadata stored by GetUniqueContext.
type Info struct {
	Id   string `json:"id"`
	Name string `json:"name"`
}

// GetTestInfo returns the metadata stored by GetUniqueContext. The boolean is
// false when ctx was not produced by GetUniqueContext.
func GetTestInfo(ctx context.Context) (Info, bool) {
	id, idOk := ctx.Value(testIdKey).(string)
	name, nameOk := ctx.Value(testNameKey).(string)

	if !idOk && !nameOk {
		return Info{}, false
	}

	return Info{Id: id, Name: name}, true
}

// CheckSkipped skips the test when the boolean environment variable envKey is
// true. defaultValue (optional) is used when the variable isn't set.
func CheckSkipped(ctx context.Context, t *testing.T, envKey string, defaultValue ...bool) {
	t.Helper()

	defl := false
	if len(defaultValue) > 0 {
		defl = defaultValue[0]
	}

	if envutil.Bool(ctx, envKey, envutil.Default(defl)).ValueOrElse(defl) {
		t.Skipf("Skipping test because of environment variable: %s", envKey)
	}
}

// WritePackage writes files (name to contents) into a fresh temporary
// directory and returns its path. Names may contain slashes; parent
// directories are created as needed. The directory is removed when the test
// ends.
func WritePackage(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()

	for name, contents := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))

		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil { //nolint:gosec
			t.Fatalf("creating directory for %s: %v", name, err)
		}

		if err := os.WriteFile(path, []byte(contents), 0o644); err != nil { //nolint:gosec
			t.Fatalf("writing %s: %v", name, err)
		}
	}

	return dir
}

// ReadFile returns the contents of dir/name, failing the test if it can't be read.
func ReadFile(t *testing.T, dir, name string) string {
	t.Helper()

	bts, err := os.ReadFile(filepath.Join(dir, name)) // #nosec G304
	if err != nil {
		t.Fatalf("reading %s: %v", name, err)
	}

	return string(bts)
}
