package main

import (
	"os"
	"testing"
)

func TestMain_Components(t *testing.T) {
	args := os.Args
	defer func() { os.Args = args }()

	os.Args = []string{"cyclebench", "components", "--no-color"}
	if code := Main(); code != 0 {
		t.Errorf("Main() = %d, want 0", code)
	}

	os.Args = []string{"cyclebench", "run"}
	if code := Main(); code != 1 {
		t.Errorf("Main() without mode = %d, want 1", code)
	}
}
