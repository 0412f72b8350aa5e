package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn(ctx context.Context) bool
	help(loggedIn bool) string
	// exec runs a command; known is false when name is not a command.
	exec(ctx context.Context, name string, args []string) (known bool, err error)
}

// runREPL starts a simple read–eval–print loop for the hikelog CLI.
//
// It reads a line from reader, parses the first token as the command and the
// rest as its arguments, and dispatches to a. Unknown commands are reported
// back to the user; command errors are rendered and the loop continues. The
// loop exits on EOF, on context cancellation, or when the user types "exit"
// or "quit".
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	for {
		if ctx.Err() != nil {
			return
		}
		fmt.Fprintf(w, "hikelog %s> ", statusFn())

		line, err := readLine(reader)
		if err != nil {
			fmt.Fprintln(w)
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			fmt.Fprintln(w, a.help(a.isLoggedIn(ctx)))

		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return

		default:
			known, err := a.exec(ctx, cmd, args)
			if !known {
				fmt.Fprintln(w, "Unknown command:", cmd)
				continue
			}
			if err != nil {
				renderError(w, err)
			}
		}
	}
}
