package client

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

type terminalPrompter struct {
	in    *os.File
	out   io.Writer
	lines *bufio.Reader
}

// NewTerminalPrompter returns a Prompter reading from in. When in is a
// terminal, input is read with echo disabled; otherwise (a pipe or a file)
// each call consumes one line. Prompts go to out.
func NewTerminalPrompter(in *os.File, out io.Writer) Prompter {
	return &terminalPrompter{
		in:    in,
		out:   out,
		lines: bufio.NewReader(in),
	}
}

func (p *terminalPrompter) ReadSecret(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)

	fd := int(p.in.Fd())
	if term.IsTerminal(fd) {
		secret, err := term.ReadPassword(fd)
		fmt.Fprintln(p.out)
		if err != nil {
			return "", fmt.Errorf("read secret: %w", err)
		}
		return string(secret), nil
	}

	line, err := p.lines.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("read secret: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
