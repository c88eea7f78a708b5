package selector

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Prompt asks on a terminal.
type Prompt struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompt creates a prompt reading in and writing out.
// nil means stdin and stdout.
func NewPrompt(in io.Reader, out io.Writer) *Prompt {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	return &Prompt{in: bufio.NewReader(in), out: out}
}

// SelectModel lists names and reads one line.
func (p *Prompt) SelectModel(names []string) (string, error) {
	fmt.Fprintln(p.out, "Input a model to load:")
	for _, name := range names {
		fmt.Fprintf(p.out, "- %s\n", name)
	}

	line, err := p.readLine()
	if line == "" {
		if err != nil && err != io.EOF {
			return "", fmt.Errorf("reading model name: %w", err)
		}
		return "", ErrNoModel
	}
	return line, nil
}

// SelectObjects asks once per object. "y" or "yes" keeps it; anything else,
// including end of input, skips it.
func (p *Prompt) SelectObjects(objects []string) ([]string, error) {
	var keep []string
	for _, name := range objects {
		fmt.Fprintf(p.out, "Would you like to render %s? ", name)

		line, err := p.readLine()
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("reading answer: %w", err)
		}
		if yes(line) {
			keep = append(keep, name)
		}
	}
	return keep, nil
}

func (p *Prompt) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	return strings.TrimSpace(line), err
}

func yes(answer string) bool {
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true
	}
	return false
}
