package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/adsb-rx/adsb-launch/internal/interfaces/cli"
)

func main() {
	err := cli.Execute()
	if err == nil {
		return
	}

	// The collector's own exit code passes through untouched; it has already
	// written whatever it wanted to stderr.
	var exitErr *cli.ExitError
	if errors.As(err, &exitErr) {
		os.Exit(exitErr.Code)
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
