package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/gjalla/gjalla/internal/infrastructure/cli"
)

func main() {
	err := cli.Execute()
	if err == nil {
		return
	}

	var cliErr *cli.CLIError
	if errors.As(err, &cliErr) {
		fmt.Fprintln(os.Stderr, "Error:", cliErr.Message)
		if cliErr.Hint != "" {
			fmt.Fprintln(os.Stderr, "Hint:", cliErr.Hint)
		}
		os.Exit(cliErr.ExitCode)
	}

	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(1)
}
