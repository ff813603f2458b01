// Package menu runs the interactive catalog menu.
package menu

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Silvia-Panaite/Finalproject-Catalog/internal/catalog"
	"github.com/Silvia-Panaite/Finalproject-Catalog/internal/ui"
)

// Prep collects the input for a command. It may prompt repeatedly until
// the answer is valid and write hints to out.
type Prep func(p Prompter, out io.Writer) (catalog.Input, error)

// Option is one menu entry.
type Option struct {
	Key     string
	Name    string
	Command catalog.Command
	Prep    Prep // nil means the command takes no input
}

func (o Option) input(p Prompter, out io.Writer) (catalog.Input, error) {
	if o.Prep == nil {
		return catalog.NoInput{}, nil
	}
	return o.Prep(p, out)
}

// Loop shows the menu until the user quits or input ends. A failing
// command is reported and the menu shown again.
func Loop(ctx context.Context, options []Option, p Prompter, out io.Writer) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		ui.ClearScreen(out)
		printOptions(out, options)

		opt, err := choose(options, p, out)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		in, err := opt.input(p, out)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			fmt.Fprintf(out, "%s %v\n", ui.RenderFail("Error:"), err)
		} else {
			res, err := opt.Command.Execute(ctx, in)
			if errors.Is(err, catalog.ErrQuit) {
				return nil
			}
			if err != nil {
				fmt.Fprintf(out, "%s %v\n", ui.RenderFail("Error:"), err)
			} else {
				printResult(out, res)
			}
		}

		fmt.Fprintln(out)
		if _, err := p.Ask("Press ENTER to return to menu", false); errors.Is(err, io.EOF) {
			return nil
		} else if err != nil {
			return err
		}
	}
}

func printOptions(out io.Writer, options []Option) {
	fmt.Fprintln(out, ui.RenderTitle("Catalog"))
	fmt.Fprintln(out, ui.RenderSeparator())
	for _, o := range options {
		fmt.Fprintf(out, "%s %s\n", ui.RenderKey(o.Key), o.Name)
	}
	fmt.Fprintln(out)
}

func choose(options []Option, p Prompter, out io.Writer) (Option, error) {
	for {
		choice, err := p.Ask("Choose an option", true)
		if err != nil {
			return Option{}, err
		}
		if opt, ok := lookup(options, choice); ok {
			return opt, nil
		}
		fmt.Fprintf(out, "%s %q is not a valid choice\n", ui.RenderWarn(ui.IconWarn), choice)
	}
}

func lookup(options []Option, key string) (Option, bool) {
	key = strings.TrimSpace(key)
	for _, o := range options {
		if strings.EqualFold(o.Key, key) {
			return o, true
		}
	}
	return Option{}, false
}

func printResult(out io.Writer, res catalog.Result) {
	for _, line := range res.Lines() {
		if line == res.Message {
			fmt.Fprintln(out, ui.RenderPass(line))
			continue
		}
		fmt.Fprintln(out, line)
	}
}
