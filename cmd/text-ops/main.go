// Package main is the entry point for the text-ops CLI tool.
package main

import (
	"io"
	"os"

	"github.com/samestrin/text-ops/internal/textops/commands"
	"github.com/samestrin/text-ops/pkg/output"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes one invocation and returns the process exit status.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cmd := commands.NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.Execute(); err != nil {
		w := stderr
		if commands.GlobalJSONOutput {
			w = stdout
		}
		return output.New(commands.GlobalJSONOutput, commands.GlobalMinOutput, w).PrintError(err)
	}
	return 0
}
