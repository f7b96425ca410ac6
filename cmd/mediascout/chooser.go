package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"mediascout/internal/logging"
	"mediascout/internal/lookup"
	"mediascout/internal/report"
	"mediascout/internal/tmdb"
)

const selectionPrompt = "\nEnter the index of the correct result, or type 'none' if none are correct: "

// promptChooser asks the operator to pick a search result on stdin.
type promptChooser struct {
	in      *bufio.Reader
	out     io.Writer
	printer *report.Printer
	logger  *slog.Logger
}

func newPromptChooser(in io.Reader, out io.Writer, printer *report.Printer, logger *slog.Logger) *promptChooser {
	return &promptChooser{
		in:      bufio.NewReader(in),
		out:     out,
		printer: printer,
		logger:  logging.NewComponentLogger(logger, "chooser"),
	}
}

func (c *promptChooser) Choose(ctx context.Context, results []tmdb.Result) (lookup.Selection, error) {
	c.printer.SearchResults(results)
	for {
		if err := ctx.Err(); err != nil {
			return lookup.Selection{}, err
		}
		fmt.Fprint(c.out, selectionPrompt)
		line, readErr := c.in.ReadString('\n')
		choice := strings.ToLower(strings.TrimSpace(line))

		if choice == "none" {
			return lookup.Aborted(), nil
		}
		if choice != "" {
			if idx, err := lookup.ParseID(choice); err == nil && idx <= int64(len(results)) {
				c.logger.Debug("selection read", logging.Int64("index", idx))
				return lookup.Selected(results[idx-1]), nil
			}
		}
		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				c.logger.Info("input closed before a selection was made")
				fmt.Fprintln(c.out)
				return lookup.Aborted(), nil
			}
			return lookup.Selection{}, fmt.Errorf("read selection: %w", readErr)
		}
		c.printer.Alert("Invalid choice. Please enter a valid index or 'none'.")
	}
}
