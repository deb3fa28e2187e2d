package main

import (
	"os"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"
)

func TestMain(m *testing.M) {
	os.Exit(testscript.RunMain(m, map[string]func() int{
		"flashresume": root,
	}))
}

// TestFlashresume tests the command line end-to-end using testscript.
// Check out the package from "import" to learn more.
func TestFlashresume(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir: "testdata/script",
	})
}
