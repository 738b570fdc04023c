package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aleister1102/geoprobe/internal/urlhandler"
)

const infoText = `geoprobe sends one request per ISO 3166-1 country code to a target URL
and records which countries get a 200 response.

Write {code} in the URL where the lowercase country code belongs, for example
https://www.example.com/{code}/home. Without a placeholder the code is sent as
the ?country= query parameter.

Each run is saved under responses/<session id>/: one JSON file per country in
analysis/ and the summary table in summary.txt.`

type menuChoice int

const (
	choiceUnknown menuChoice = iota
	choiceInfo
	choiceRun
	choiceExit
)

func parseChoice(input string) menuChoice {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "1", "i", "info":
		return choiceInfo
	case "2", "r", "run":
		return choiceRun
	case "3", "e", "exit", "q", "quit":
		return choiceExit
	default:
		return choiceUnknown
	}
}

// interactive is the menu loop. The menu choice is the only state it keeps.
type interactive struct {
	app        *app
	in         *bufio.Scanner
	out        io.Writer
	defaultURL string
}

func runInteractive(ctx context.Context, in io.Reader, out io.Writer, a *app, defaultURL string) {
	ui := &interactive{app: a, in: bufio.NewScanner(in), out: out, defaultURL: defaultURL}

	for ctx.Err() == nil {
		ui.printMenu()
		line, ok := ui.readLine()
		if !ok {
			return
		}

		switch parseChoice(line) {
		case choiceInfo:
			ui.showInfo()
			ui.waitForQuit()
		case choiceRun:
			if !ui.runOnce(ctx) {
				return
			}
			ui.waitForQuit()
		case choiceExit:
			return
		default:
			fmt.Fprintf(ui.out, "Unknown choice %q\n", strings.TrimSpace(line))
		}
	}
}

func (ui *interactive) printMenu() {
	fmt.Fprintln(ui.out, "\nMENU")
	fmt.Fprintln(ui.out, "  1) Info")
	fmt.Fprintln(ui.out, "  2) Run")
	fmt.Fprintln(ui.out, "  3) Exit")
	fmt.Fprint(ui.out, "> ")
}

func (ui *interactive) readLine() (string, bool) {
	if !ui.in.Scan() {
		return "", false
	}
	return ui.in.Text(), true
}

func (ui *interactive) showInfo() {
	fmt.Fprintln(ui.out, infoText)
	fmt.Fprintf(ui.out, "\nCountries per run: %d\n", ui.app.catalog.Len())
	fmt.Fprintf(ui.out, "Targeting mode: %s\n", ui.app.cfg.TargetingConfig.Rule().Mode)
	if last := ui.app.lastRun(); last != nil {
		fmt.Fprintf(ui.out, "Last run: %s (%s) %d succeeded, %d failed\n",
			last.SessionID, last.Status, last.Succeeded, last.Failed)
	}
}

// runOnce prompts for a URL until it is valid, then probes it. It returns
// false when input ended.
func (ui *interactive) runOnce(ctx context.Context) bool {
	placeholder := ui.app.cfg.TargetingConfig.Rule().Placeholder
	var target string
	for {
		if ui.defaultURL != "" {
			fmt.Fprintf(ui.out, "URL [%s]: ", ui.defaultURL)
		} else {
			fmt.Fprint(ui.out, "URL: ")
		}
		line, ok := ui.readLine()
		if !ok {
			return false
		}
		target = strings.TrimSpace(line)
		if target == "" {
			target = ui.defaultURL
		}
		if err := urlhandler.ValidateTargetURL(target, placeholder); err != nil {
			fmt.Fprintf(ui.out, "ERROR: %v\n", err)
			continue
		}
		break
	}

	if _, err := ui.app.run(ctx, target); err != nil {
		fmt.Fprintf(ui.out, "ERROR: %v\n", err)
	}
	return true
}

// waitForQuit blocks until the user enters q or input ends.
func (ui *interactive) waitForQuit() {
	fmt.Fprint(ui.out, "\n\n\nPress Q to return back to the Menu: ")
	for {
		line, ok := ui.readLine()
		if !ok || strings.EqualFold(strings.TrimSpace(line), "q") {
			return
		}
	}
}
