package utils

import (
	"fmt"
	"io"
	"time"

	"github.com/theckman/yacspin"
)

type Spinner struct {
	spinner *yacspin.Spinner
	out     io.Writer
}

func NewSpinner(message string) (*Spinner, error) {
	cfg := yacspin.Config{
		Frequency:         100 * time.Millisecond,
		CharSet:           yacspin.CharSets[59],
		Suffix:            " " + message,
		SuffixAutoColon:   true,
		ColorAll:          true,
		Colors:            []string{"fgYellow"},
		StopCharacter:     "✓",
		StopColors:        []string{"fgGreen"},
		StopFailCharacter: "✗",
		StopFailColors:    []string{"fgRed"},
	}

	spinner, err := yacspin.New(cfg)
	if err != nil {
		return nil, err
	}

	return &Spinner{spinner: spinner}, nil
}

// NewQuietSpinner returns a spinner that only prints the final status line
// to out. Used when stdout is not a terminal or output is captured.
func NewQuietSpinner(out io.Writer) *Spinner {
	return &Spinner{out: out}
}

func (s *Spinner) Start() error {
	if s.spinner == nil {
		return nil
	}
	return s.spinner.Start()
}

func (s *Spinner) Stop() error {
	if s.spinner == nil {
		return nil
	}
	return s.spinner.Stop()
}

func (s *Spinner) StopWithSuccess(message string) error {
	if s.spinner == nil {
		_, err := fmt.Fprintf(s.out, "✓ %s\n", message)
		return err
	}
	s.spinner.StopMessage(message)
	return s.spinner.Stop()
}

func (s *Spinner) StopWithFailure(message string) error {
	if s.spinner == nil {
		_, err := fmt.Fprintf(s.out, "✗ %s\n", message)
		return err
	}
	s.spinner.StopFailMessage(message)
	return s.spinner.StopFail()
}

func (s *Spinner) UpdateMessage(message string) {
	if s.spinner == nil {
		return
	}
	s.spinner.Message(message)
}
