package repl

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/LLFourn/bdk-cli/command"
	"github.com/LLFourn/bdk-cli/internal/logger"
)

var zlog *logger.Logger

func init() {
	zlog = logger.New("repl")
}

// State is the lifecycle of an interactive session.
type State int

const (
	StateInit State = iota
	StateRunning
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateRunning:
		return "running"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

const prompt = ">> "

// Engine drives the interactive read-parse-dispatch-print loop. It owns the
// wallet session for the lifetime of the loop; the dispatcher only borrows
// it per cycle.
type Engine struct {
	in         io.Reader
	out        io.Writer
	dispatcher *command.Dispatcher
	session    *command.Session
	interrupt  <-chan os.Signal
	state      State
	history    []string
}

func NewEngine(in io.Reader, out io.Writer, dispatcher *command.Dispatcher, session *command.Session) *Engine {
	return &Engine{
		in:         in,
		out:        out,
		dispatcher: dispatcher,
		session:    session,
		state:      StateInit,
	}
}

// SetInterrupt wires a signal channel into the loop. A signal received while
// waiting for a line re-prompts instead of terminating.
func (e *Engine) SetInterrupt(ch <-chan os.Signal) {
	e.interrupt = ch
}

func (e *Engine) State() State {
	return e.state
}

func (e *Engine) History() []string {
	return e.history
}

// Run executes the session until an exit command, end of input, or an
// unrecoverable read error. The final status message is always printed.
func (e *Engine) Run() error {
	if e.state != StateInit {
		return fmt.Errorf("session already %s", e.state)
	}
	e.state = StateRunning

	lines := make(chan string)
	readErr := make(chan error, 1)
	done := make(chan struct{})
	defer close(done)
	go func() {
		scanner := bufio.NewScanner(e.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				// the loop terminated first, stop reading
				return
			}
		}
		readErr <- scanner.Err()
		close(lines)
	}()

	for e.state == StateRunning {
		fmt.Fprint(e.out, prompt)

		select {
		case <-e.interrupt:
			fmt.Fprintln(e.out)
			continue
		case line, ok := <-lines:
			if !ok {
				if err := <-readErr; err != nil {
					zlog.Sugar().Errorf("input read failed: %v", err)
				} else {
					zlog.Debug("end of input")
				}
				e.state = StateTerminated
				continue
			}
			e.cycle(line)
		}
	}

	fmt.Fprintln(e.out, "Exiting REPL")
	return nil
}

// cycle runs one read-to-render iteration over an already-read line.
func (e *Engine) cycle(line string) {
	if strings.TrimSpace(line) == "" {
		return
	}
	e.history = append(e.history, line)

	tokens := Tokenize(line)
	if len(tokens) == 0 {
		return
	}

	req, err := command.Resolve(tokens, true)
	if err != nil {
		// parse errors print the bare parser message, no JSON wrapping
		fmt.Fprintln(e.out, err.Error())
		return
	}
	zlog.Sugar().Debugf("repl command resolved: %#v", req)

	if _, isExit := req.(command.Exit); isExit {
		e.state = StateTerminated
		return
	}

	result, err := e.dispatcher.Dispatch(req, e.session)
	if err != nil {
		command.RenderError(e.out, err)
		return
	}
	command.RenderResult(e.out, result)
}
