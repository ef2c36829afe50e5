package main

import (
	"fmt"
	"os"

	"github.com/ESPR3SS0/Taggin/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
