package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/peterh/liner"
	"github.com/rs/zerolog"

	"github.com/adderlang/adder/session"
)

const prompt = "> "

// errAborted marks a line cancelled with Ctrl+C.
var errAborted = errors.New("aborted")

// repl runs an interactive session on the terminal.
func repl(cfg config, log zerolog.Logger, stdout, stderr io.Writer) int {
	sess, err := session.New(session.WithLogger(log))
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer sess.Close()

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := historyPath(cfg.CacheDir)
	if err := loadHistory(ln, histPath); err != nil {
		log.Warn().Err(err).Str("path", histPath).Msg("history not loaded")
	}
	defer func() {
		if err := saveHistory(ln, histPath); err != nil {
			log.Warn().Err(err).Str("path", histPath).Msg("history not saved")
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	next := func() (string, error) {
		line, err := ln.Prompt(prompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", errAborted
		}
		if err == nil && line != "" {
			ln.AppendHistory(line)
		}
		return line, err
	}
	loop(sess, next, stdout, stderr)
	return 0
}

// loop feeds lines from next into sess until an exit keyword or end of
// input. Every diagnostic is printed and the loop carries on.
func loop(sess *session.Session, next func() (string, error), stdout, stderr io.Writer) {
	for {
		line, err := next()
		if errors.Is(err, errAborted) {
			continue
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				fmt.Fprintf(stderr, "Error: %v\n", err)
			}
			fmt.Fprintln(stdout)
			return
		}

		reply, err := sess.Turn(line)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			continue
		}
		if reply.Quit {
			return
		}
		if reply.Output != "" {
			fmt.Fprintln(stdout, reply.Output)
		}
	}
}
