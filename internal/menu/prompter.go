package menu

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/huh"
)

// Prompter asks the user for one line of text. Implementations return
// io.EOF when no more input is available.
type Prompter interface {
	Ask(label string, required bool) (string, error)
}

// LinePrompter reads answers line by line from any reader.
type LinePrompter struct {
	r   *bufio.Reader
	out io.Writer
}

func NewLinePrompter(r io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{r: bufio.NewReader(r), out: out}
}

// Ask prints label and reads a line. A required answer is asked for again
// while it is blank.
func (p *LinePrompter) Ask(label string, required bool) (string, error) {
	for {
		fmt.Fprintf(p.out, "%s: ", label)
		line, err := p.r.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			return "", err
		}
		answer := strings.TrimSpace(line)
		if answer != "" || !required {
			return answer, nil
		}
		fmt.Fprintln(p.out, "A value is required.")
	}
}

// FormPrompter asks through a huh input field. Use it when stdin is a
// terminal.
type FormPrompter struct{}

func (FormPrompter) Ask(label string, required bool) (string, error) {
	var answer string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(label).
				Value(&answer).
				Validate(func(s string) error {
					if required && strings.TrimSpace(s) == "" {
						return fmt.Errorf("a value is required")
					}
					return nil
				}),
		),
	)
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", io.EOF
		}
		return "", err
	}
	return strings.TrimSpace(answer), nil
}
