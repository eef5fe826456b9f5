/*
File    : atto/cmd/atto/server.go
Author  : akashmaji(@iisc.ac.in)

The `server` subcommand runs atto's REPL over TCP (spec's REPL
component, reused per the teacher's main.go server mode): one
goroutine per connection, each running an isolated Repl session. Every
session gets a google/uuid-tagged ID so concurrent connections are
distinguishable in the structured log.
*/
package main

import (
	"log/slog"
	"net"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/akashmaji946/atto/internal/logging"
)

func newServerCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "server <port>",
		Short: "Run the REPL over TCP, one session per connection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runServer(args[0])
			return nil
		},
	}
}

func runServer(port string) {
	logger := logging.New(os.Stdout, slog.LevelInfo)

	listener, err := net.Listen("tcp", ":"+port)
	if err != nil {
		logger.Error("failed to start server", "port", port, "error", err)
		os.Exit(1)
	}
	defer listener.Close()
	logger.Info("listening", "port", port)

	for {
		conn, err := listener.Accept()
		if err != nil {
			logger.Error("accept failed", "error", err)
			continue
		}
		go handleConnection(conn, logger)
	}
}

func handleConnection(conn net.Conn, logger *slog.Logger) {
	defer conn.Close()
	sessionID := uuid.NewString()
	logger.Info("session started", "session", sessionID, "remote", conn.RemoteAddr().String())

	runRepl(conn, conn, "")

	logger.Info("session ended", "session", sessionID)
}
