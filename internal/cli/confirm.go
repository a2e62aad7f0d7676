package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/magpiehq/magpie/internal/ui"
)

// shouldPromptForConfirm reports whether an interactive y/N prompt is
// possible: both ends of the conversation must be a terminal, and JSON
// mode never prompts.
func shouldPromptForConfirm() bool {
	if isJSONOutput() {
		return false
	}
	return isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stdout.Fd())
}

// promptForConfirm asks the user to confirm. Anything other than an
// explicit yes counts as no.
func promptForConfirm(message string) bool {
	if !shouldPromptForConfirm() {
		return false
	}

	fmt.Printf("%s %s ", message, ui.Hint("[y/N]"))
	answer, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	switch strings.TrimSpace(strings.ToLower(answer)) {
	case "y", "yes":
		return true
	}
	return false
}
