package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	aojia "github.com/smnsjas/go-aojia"
)

const (
	historyFile = ".aojia_history"
	promptMain  = "aojia> "
)

func replCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Call methods interactively on one session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(flags, func(c *aojia.Client) error {
				if !term.IsTerminal(int(os.Stdin.Fd())) {
					return runScript(c, cmd.InOrStdin(), cmd.OutOrStdout())
				}
				return runREPL(c, cmd.OutOrStdout())
			})
		},
	}
}

func runREPL(c *aojia.Client, out io.Writer) error {
	fmt.Fprintf(out, "aojia %s, session %s. Type :help for help.\n", aojia.Version, c.ID())

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	ln.SetCompleter(completeMethod)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	for {
		line, err := ln.Prompt(promptMain)
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(out)
			break
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		ln.AppendHistory(line)

		if evalLine(out, c, line) {
			break
		}
	}

	if f, err := os.Create(histPath); err == nil {
		_, _ = ln.WriteHistory(f)
		_ = f.Close()
	}
	return nil
}

// runScript evaluates lines read from a pipe or file, without prompting.
func runScript(c *aojia.Client, in io.Reader, out io.Writer) error {
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if evalLine(out, c, line) {
			break
		}
	}
	return sc.Err()
}

// evalLine runs one REPL line and reports whether the loop should end.
func evalLine(out io.Writer, c *aojia.Client, line string) bool {
	if strings.HasPrefix(line, ":") {
		return replCommand(out, line)
	}

	words, err := splitLine(line)
	if err != nil {
		fmt.Fprintln(out, "error:", err)
		return false
	}
	args := words[1:]
	if _, ok := aojia.LookupSignature(words[0]); ok {
		for i := range args {
			args[i] = unquote(args[i])
		}
	}
	if err := runCall(out, c, words[0], args); err != nil {
		fmt.Fprintln(out, "error:", err)
	}
	return false
}

// replCommand handles :help, :methods and :quit. It reports whether the
// loop should end.
func replCommand(out io.Writer, line string) bool {
	switch strings.Fields(line)[0] {
	case ":q", ":quit", ":exit":
		return true
	case ":methods":
		for _, s := range aojia.Signatures() {
			fmt.Fprintln(out, s)
		}
	case ":help":
		fmt.Fprintln(out, `METHOD [ARG...]   call a method, see "aojia call --help" for ARG syntax
:methods          list declared methods
:quit             leave`)
	default:
		fmt.Fprintf(out, "unknown command %s\n", line)
	}
	return false
}

func completeMethod(line string) []string {
	if strings.ContainsAny(line, " \t") {
		return nil
	}
	var c []string
	for _, s := range aojia.Signatures() {
		if strings.HasPrefix(strings.ToLower(s.Name), strings.ToLower(line)) {
			c = append(c, s.Name)
		}
	}
	return c
}
