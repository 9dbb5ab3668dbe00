package cli

import (
	"bufio"
	"errors"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// stdinIsTerminal reports whether prompts can be shown.
var stdinIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// confirm asks a yes/no question before a destructive command. assumeYes
// skips the prompt; without a terminal the command is refused instead.
func confirm(cmd *cobra.Command, question string, assumeYes bool) error {
	if assumeYes {
		return nil
	}
	if !stdinIsTerminal() {
		return errors.New("refusing to continue without confirmation (use --yes)")
	}

	cmd.Printf("%s [y/N]: ", question)
	reader := bufio.NewReader(cmd.InOrStdin())
	if !isYes(readLine(reader)) {
		return errors.New("aborted")
	}
	return nil
}

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func isYes(input string) bool {
	switch strings.ToLower(input) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
