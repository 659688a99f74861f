package main

import (
	"fmt"
	"os"

	"github.com/dunamismax/pixlens/internal/codec"
)

func main() {
	if err := codec.Startup(); err != nil {
		fmt.Fprintf(os.Stderr, "pixlens: %v\n", err)
		os.Exit(1)
	}

	err := newRootCmd(os.Stderr).Execute()
	codec.Shutdown()
	if err != nil {
		fmt.Fprintf(os.Stderr, "pixlens: %v\n", err)
		os.Exit(1)
	}
}
