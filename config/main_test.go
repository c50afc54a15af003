package config

import (
	"fmt"
	"os"
	"testing"
)

// TestMain guards the config package tests: they must never run against a
// developer's real environment, so GO_ENV=test is required up front.
func TestMain(m *testing.M) {
	if env := os.Getenv("GO_ENV"); env != "test" {
		fmt.Fprintf(os.Stderr, "config tests require GO_ENV=test (current: %q); run: GO_ENV=test go test ./...\n", env)
		os.Exit(1)
	}

	os.Exit(m.Run())
}
