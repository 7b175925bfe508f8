package main

import (
	"fmt"
	"os"

	"github.com/MystenLabs/suiup/pkg/errors"
)

func main() {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(errors.ExitCode(err))
	}
}
