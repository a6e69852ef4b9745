// Package testutil carries the shared guards and auth fixtures used by the
// integration and acceptance suites.
package testutil

import (
	"os"
	"strings"
	"testing"
)

// RequireTestEnvironment fails the test unless GO_ENV=test. The suites that
// call it migrate and truncate tables, so they must never reach a real
// database by accident.
func RequireTestEnvironment(t *testing.T) {
	t.Helper()

	if env := os.Getenv("GO_ENV"); env != "test" {
		t.Fatalf("refusing to run with GO_ENV=%q; destructive suites require GO_ENV=test", env)
	}
}

// RequireTestDatabase fails the test when DATABASE_URL names a database that
// does not end in _test. An empty URL passes: suites that open their own
// in-memory store set no URL at all.
func RequireTestDatabase(t *testing.T) {
	t.Helper()

	url := os.Getenv("DATABASE_URL")
	if url == "" {
		return
	}

	name := url
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.Index(name, "?"); i >= 0 {
		name = name[:i]
	}

	if !strings.HasSuffix(name, "_test") {
		t.Fatalf("DATABASE_URL names %q; destructive suites require a *_test database", name)
	}
}
