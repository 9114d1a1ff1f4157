// Package shell drives a state machine from line-oriented text commands.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/pickleRick23/finite-state-machine/pkg/logger"
	"github.com/pickleRick23/finite-state-machine/pkg/statemachine"
)

var (
	ErrQuit           = errors.New("quit")
	ErrUsage          = errors.New("usage")
	ErrUnknownCommand = errors.New("unknown command")
	ErrNoDefinition   = errors.New("no definition loaded")
)

const noneMarker = "(none)"

// Shell executes commands against a single machine.
type Shell struct {
	machine    statemachine.StateMachine
	definition *statemachine.Config
	logger     *slog.Logger
}

// Option configures a Shell.
type Option func(*Shell)

// WithLogger sets the logger used for session records.
func WithLogger(l *slog.Logger) Option {
	return func(s *Shell) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithDefinition makes the machine's configuration available to the definition command.
func WithDefinition(cfg *statemachine.Config) Option {
	return func(s *Shell) {
		s.definition = cfg
	}
}

func New(m statemachine.StateMachine, opts ...Option) *Shell {
	s := &Shell{
		machine: m,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run executes one command per input line until EOF, quit or context cancellation.
// Command errors are reported to w and do not end the session.
// Input is read on a separate goroutine, so cancellation ends the session even while
// a read is blocked. The reader goroutine exits once its pending read returns.
func (s *Shell) Run(ctx context.Context, r io.Reader, w io.Writer) error {
	readCtx, stop := context.WithCancel(ctx)
	defer stop()

	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-readCtx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	lineNo := 0
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		var raw string
		var ok bool
		select {
		case <-ctx.Done():
			return ctx.Err()
		case raw, ok = <-lines:
		}
		if !ok {
			if err := ctx.Err(); err != nil {
				return err
			}
			return <-readErr
		}
		lineNo++

		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		out, err := s.Exec(line)
		if errors.Is(err, ErrQuit) {
			return nil
		}
		if err != nil {
			s.logger.Debug("command failed", slog.Int("line", lineNo), slog.String("command", line), logger.Error(err))
			if _, werr := fmt.Fprintf(w, "error: %v\n", err); werr != nil {
				return werr
			}
			continue
		}
		if _, err := fmt.Fprintln(w, out); err != nil {
			return err
		}
	}
}

// Exec runs a single command and returns its output.
func (s *Shell) Exec(line string) (string, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", fmt.Errorf("%w: empty command", ErrUsage)
	}
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "state":
		return s.machine.State(), nil
	case "change":
		if len(args) != 1 {
			return "", fmt.Errorf("%w: change <state>", ErrUsage)
		}
		if err := s.machine.ChangeState(args[0]); err != nil {
			return "", err
		}
		return s.machine.State(), nil
	case "trigger":
		if len(args) != 1 {
			return "", fmt.Errorf("%w: trigger <event>", ErrUsage)
		}
		if err := s.machine.Trigger(args[0]); err != nil {
			return "", err
		}
		return s.machine.State(), nil
	case "reset":
		s.machine.Reset()
		return s.machine.State(), nil
	case "states":
		switch len(args) {
		case 0:
			return joinOrNone(s.machine.States()), nil
		case 1:
			return joinOrNone(s.machine.StatesFor(args[0])), nil
		default:
			return "", fmt.Errorf("%w: states [event]", ErrUsage)
		}
	case "can":
		if len(args) != 1 {
			return "", fmt.Errorf("%w: can <event>", ErrUsage)
		}
		return strconv.FormatBool(s.machine.Can(args[0])), nil
	case "undo":
		ok := s.machine.Undo()
		return strconv.FormatBool(ok) + " " + s.machine.State(), nil
	case "redo":
		ok := s.machine.Redo()
		return strconv.FormatBool(ok) + " " + s.machine.State(), nil
	case "clear":
		s.machine.ClearHistory()
		return s.formatHistory(), nil
	case "history":
		return s.formatHistory(), nil
	case "definition":
		return s.formatDefinition(args)
	case "help":
		return usage, nil
	case "quit", "exit":
		return "", ErrQuit
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownCommand, cmd)
	}
}

// formatHistory lists history oldest first with the active entry marked by '*'.
func (s *Shell) formatHistory() string {
	history := s.machine.History()
	cursor := s.machine.Cursor()
	parts := make([]string, len(history))
	for i, name := range history {
		if i == cursor {
			name = "*" + name
		}
		parts[i] = name
	}
	return strings.Join(parts, " ")
}

func (s *Shell) formatDefinition(args []string) (string, error) {
	if s.definition == nil {
		return "", ErrNoDefinition
	}
	format := "yaml"
	if len(args) == 1 {
		format = args[0]
	} else if len(args) > 1 {
		return "", fmt.Errorf("%w: definition [yaml|json]", ErrUsage)
	}
	data, err := statemachine.Encode(s.definition, format)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(data), "\n"), nil
}

func joinOrNone(names []string) string {
	if len(names) == 0 {
		return noneMarker
	}
	return strings.Join(names, " ")
}

const usage = `Commands:
  state               Show the active state
  change <state>      Switch directly to a state
  trigger <event>     Apply the active state's transition for an event
  can <event>         Report whether the active state handles an event
  reset               Return to the initial state and clear history
  states [event]      List all states, or the states handling an event
  undo                Step back in history
  redo                Step forward in history
  clear               Keep only the active state in history
  history             Show history, active entry marked with *
  definition [fmt]    Print the loaded definition (yaml or json)
  help                Show this help message
  quit                End the session`
