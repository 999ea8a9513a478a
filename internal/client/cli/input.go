package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// promptLine prints a prompt to w and reads a single line of input from
// reader. The line is whitespace-trimmed. If EOF occurs after some input
// was read, the partial line is returned.
func promptLine(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// confirm asks a y/N question and reports whether the user answered yes.
func confirm(reader *bufio.Reader, prompt string, w io.Writer) (bool, error) {
	answer, err := promptLine(reader, prompt+" (y/N): ", w)
	if err != nil {
		return false, err
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes", nil
}
