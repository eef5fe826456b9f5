/*
File    : atto/cmd/atto/repl.go
Author  : akashmaji(@iisc.ac.in)
*/
package main

import (
	"io"

	"github.com/akashmaji946/atto/repl"
)

func runRepl(reader io.Reader, writer io.Writer, historyFile string) {
	r := repl.New(banner, version, author, line, license, prompt, historyFile)
	r.Start(reader, writer)
}
