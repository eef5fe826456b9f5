/*
File    : atto/cmd/atto/main.go
Author  : akashmaji(@iisc.ac.in)

Package main is atto's entry point. It replaces the teacher's
hand-rolled os.Args switch with github.com/spf13/cobra subcommands,
keeping the same banner/version/author/license display and colored
output: bare invocation enters the REPL, `run <file>` executes a
script as __main__, `server <port>` starts the TCP REPL server, and
`version` prints build info.
*/
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

const (
	version = "v1.0.0"
	author  = "akashmaji(@iisc.ac.in)"
	license = "MIT"
	prompt  = "atto >> "
	line    = "----------------------------------------------------------------"
	banner  = `
   _____  __  __________
  /  _  \/  |_/  |  \  _ \
 /  /_\  \   __\   /  /  /
/    |    \  | |   \_/   /
\____|__  /__| |___|  __/
        \/          \/
`
)

func main() {
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:   "atto",
		Short: "A tiny prefix-notation functional language",
		RunE: func(cmd *cobra.Command, args []string) error {
			runRepl(os.Stdin, os.Stdout, historyFilePath())
			return nil
		},
	}
	root.AddCommand(newRunCommand())
	root.AddCommand(newServerCommand())
	root.AddCommand(newVersionCommand())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func historyFilePath() string {
	if p := os.Getenv("ATTO_HISTORY_FILE"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".atto_history"
	}
	return home + "/.atto_history"
}
