package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

var (
	labelColor  = color.New(color.FgCyan)
	headerColor = color.New(color.FgGreen, color.Bold)
)

// Prompter collects interactive answers from In, writing prompts to Out.
// Empty input resolves to the offered default.
type Prompter struct {
	In     io.Reader
	Out    io.Writer
	reader *bufio.Reader
}

func New() *Prompter {
	return &Prompter{In: os.Stdin, Out: os.Stdout}
}

func (p *Prompter) readLine() (string, error) {
	if p.reader == nil {
		p.reader = bufio.NewReader(p.In)
	}

	line, err := p.reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}

	return strings.TrimSpace(line), nil
}

// String prompts for a line of input, returning def when the operator just
// presses enter.
func (p *Prompter) String(label, def string) (string, error) {
	if def == "" {
		labelColor.Fprintf(p.Out, "%s: ", label)
	} else {
		labelColor.Fprintf(p.Out, "%s [%s]: ", label, def)
	}

	answer, err := p.readLine()
	if err != nil {
		return "", err
	}

	if answer == "" {
		return def, nil
	}

	return answer, nil
}

// Confirm prompts for a yes/no answer; empty input honors the default, and
// anything unrecognized falls back to it as well.
func (p *Prompter) Confirm(label string, def bool) (bool, error) {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}
	labelColor.Fprintf(p.Out, "%s [%s]: ", label, hint)

	answer, err := p.readLine()
	if err != nil {
		return false, err
	}

	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	default:
		return def, nil
	}
}

// Password prompts for input without echoing when In is a terminal, falling
// back to a plain line read otherwise.
func (p *Prompter) Password(label string) (string, error) {
	labelColor.Fprintf(p.Out, "%s: ", label)

	fd, isFile := p.In.(*os.File)
	if !isFile || !term.IsTerminal(int(fd.Fd())) {
		return p.readLine()
	}

	// Earlier prompts may have read ahead into the bufio buffer; anything
	// still buffered was typed before this prompt, so consume it from the
	// buffer rather than losing it to the raw fd read below.
	if p.reader != nil && p.reader.Buffered() > 0 {
		return p.readLine()
	}

	secret, err := term.ReadPassword(int(fd.Fd()))
	fmt.Fprintln(p.Out)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(string(secret)), nil
}

// Menu renders the top-level choices and returns the raw selection. Input
// other than a listed choice is the caller's to interpret; there is no
// re-prompt loop.
func (p *Prompter) Menu(title string, choices []string) (string, error) {
	headerColor.Fprintf(p.Out, "%s\n", title)
	for i, choice := range choices {
		fmt.Fprintf(p.Out, "  %d) %s\n", i+1, choice)
	}
	labelColor.Fprintf(p.Out, "Selection: ")

	return p.readLine()
}
