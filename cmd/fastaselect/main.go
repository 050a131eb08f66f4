package main

import (
	"os"

	"github.com/BioUbuntuLab/fastaselect/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		cli.PrintFatal(err)
		os.Exit(cli.GetExitCode(err))
	}
}
