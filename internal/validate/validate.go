// Package validate performs structural safety checks on shell commands
// before they are handed to the executor.
//
// The checks are deliberately heuristic string inspections, not a shell
// parser. Quote and bracket counts are raw character tallies, so an
// escaped or quoted delimiter (echo "it's") can trip a rule, and a
// malformed command can slip through when its delimiters happen to
// balance. The executor still surfaces real syntax errors from the
// shell itself; these checks exist to reject the common truncation and
// half-generated-loop failures cheaply, before a process is spawned.
package validate

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	forPattern   = regexp.MustCompile(`\bfor\b`)
	whilePattern = regexp.MustCompile(`\bwhile\b`)
	doPattern    = regexp.MustCompile(`\bdo\b`)
	donePattern  = regexp.MustCompile(`\bdone\b`)
	ifPattern    = regexp.MustCompile(`\bif\b`)
	fiPattern    = regexp.MustCompile(`\bfi(\s*($|[;&|]))`)
)

// openerKeywords are shell keywords that open a block. A command whose
// last word is one of these has a dangling construct.
var openerKeywords = map[string]bool{
	"do":   true,
	"then": true,
	"else": true,
	"in":   true,
}

// Command checks a shell command for structural problems that indicate
// an incomplete or truncated construct. It returns nil when the command
// passes every check, or an error naming the first rule violated.
func Command(command string) error {
	trimmed := strings.TrimSpace(command)

	if strings.HasSuffix(trimmed, "\\") {
		return fmt.Errorf("command ends with a line continuation")
	}

	fields := strings.Fields(trimmed)
	if len(fields) > 0 && openerKeywords[fields[len(fields)-1]] {
		return fmt.Errorf("command ends with dangling keyword %q", fields[len(fields)-1])
	}

	if strings.Count(command, `"`)%2 != 0 {
		return fmt.Errorf("unbalanced double quotes")
	}
	if strings.Count(command, `'`)%2 != 0 {
		return fmt.Errorf("unbalanced single quotes")
	}
	if strings.Count(command, "(") != strings.Count(command, ")") {
		return fmt.Errorf("unbalanced parentheses")
	}
	if strings.Count(command, "{") != strings.Count(command, "}") {
		return fmt.Errorf("unbalanced braces")
	}

	if forPattern.MatchString(command) {
		if !doPattern.MatchString(command) || !donePattern.MatchString(command) {
			return fmt.Errorf("for loop missing do/done")
		}
	}

	if whilePattern.MatchString(command) {
		if !doPattern.MatchString(command) || !donePattern.MatchString(command) {
			return fmt.Errorf("while loop missing do/done")
		}
	}

	if ifPattern.MatchString(command) && !fiPattern.MatchString(command) {
		return fmt.Errorf("if statement missing closing fi")
	}

	return nil
}
