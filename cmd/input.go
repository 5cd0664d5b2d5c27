package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
)

const stdinSource = "stdin"

var errStdinNeedsYes = errors.New("the diagram was read from stdin, pass --yes to confirm")

// readDiagram reads the file named by args[0], or in when there is no
// argument or it is "-".
func readDiagram(in io.Reader, args []string) (text, source string, err error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(in)
		if err != nil {
			return "", "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), stdinSource, nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", "", fmt.Errorf("read diagram: %w", err)
	}
	return string(data), args[0], nil
}
