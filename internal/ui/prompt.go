package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// IsInteractive reports whether stdin is attached to a terminal.
// Interactive selection requires a terminal; piped input cannot answer
// re-prompts.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// PromptSelection prints prompt and reads lines from r until one parses as an
// integer within [1, max]. Invalid input re-prompts; it never fails on bad
// input, only on read errors or EOF.
func PromptSelection(r io.Reader, w io.Writer, prompt string, max int) (int, error) {
	scanner := bufio.NewScanner(r)
	for {
		fmt.Fprint(w, prompt)

		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return 0, fmt.Errorf("failed to read selection: %w", err)
			}
			return 0, io.ErrUnexpectedEOF
		}

		sel := strings.TrimSpace(scanner.Text())
		n, err := strconv.Atoi(sel)
		if err != nil || n < 1 || n > max {
			fmt.Fprintln(w, "Invalid selection.")
			continue
		}
		return n, nil
	}
}
