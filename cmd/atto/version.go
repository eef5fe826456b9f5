/*
File    : atto/cmd/atto/version.go
Author  : akashmaji(@iisc.ac.in)
*/
package main

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var cyanColor = color.New(color.FgCyan)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			cyanColor.Println("atto - a tiny prefix-notation functional language")
			cyanColor.Printf("Version: %s\n", version)
			cyanColor.Printf("License: %s\n", license)
			cyanColor.Printf("Author : %s\n", author)
			return nil
		},
	}
}
