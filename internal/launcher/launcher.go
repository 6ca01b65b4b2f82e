// Package launcher implements the console launch sequence for the Gmail AI
// Summarizer front-end: a fixed prerequisite checklist, an operator
// acknowledgment, the child process, and a second acknowledgment so the
// operator can read whatever the child left on the console.
//
// The checklist is advisory text only. The launcher validates nothing and
// never inspects the child's exit status; the `doctor` command owns the
// actual checks.
package launcher

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/exec"

	"golang.org/x/term"
)

// title is printed first, before the checklist.
const title = "Starting Gmail AI Summarizer..."

// checklist is the fixed console script. Line order is part of the contract;
// there is no conditional branching anywhere in the sequence.
var checklist = [4]string{
	"1. Python 3.8+ installed",
	"2. Dependencies installed (pip install -r requirements.txt)",
	"3. credentials.json in this directory",
	"4. .env file with your OPENAI_API_KEY in this directory",
}

const pausePrompt = "Press any key to continue . . . "

// Launcher runs the launch sequence against injected streams so tests can
// drive it with buffers instead of a terminal.
type Launcher struct {
	Command string   // front-end host program, e.g. "streamlit"
	Args    []string // full argument list, e.g. ["run", "gmail_ai_summarizer.py"]
	Dir     string   // working directory for the child; "" = inherit

	In  io.Reader
	Out io.Writer
	Err io.Writer

	// stdin lazily wraps In for the non-terminal pause path. It must persist
	// across both pauses: bufio may read ahead on the first one.
	stdin *bufio.Reader
}

// New returns a Launcher wired to the process's own console.
func New(command string, args []string, dir string) *Launcher {
	return &Launcher{
		Command: command,
		Args:    args,
		Dir:     dir,
		In:      os.Stdin,
		Out:     os.Stdout,
		Err:     os.Stderr,
	}
}

// Run executes the sequence: print title and checklist, pause, start the
// child, pause again. It always returns nil — a start failure is echoed as a
// single console line (the analog of the shell's own "command not found"
// message) and the sequence still finishes, so the operator gets the final
// pause to read it.
func (l *Launcher) Run() error {
	fmt.Fprintln(l.Out, title)
	fmt.Fprintln(l.Out)
	for _, line := range checklist {
		fmt.Fprintln(l.Out, line)
	}
	fmt.Fprintln(l.Out)

	l.Pause()

	cmd := exec.Command(l.Command, l.Args...)
	cmd.Dir = l.Dir
	cmd.Stdout = l.Out
	cmd.Stderr = l.Err
	if f, ok := l.In.(*os.File); ok {
		cmd.Stdin = f // share the console with the child
	}
	if err := cmd.Run(); err != nil {
		fmt.Fprintf(l.Err, "%s: %v\n", l.Command, err)
	}

	l.Pause()
	return nil
}

// Pause blocks until the operator acknowledges. On a real terminal a single
// raw-mode keypress suffices, matching cmd.exe `pause` semantics; otherwise
// one line (or EOF) is consumed so piped input and tests work.
func (l *Launcher) Pause() {
	fmt.Fprint(l.Out, pausePrompt)
	defer fmt.Fprintln(l.Out)

	if f, ok := l.In.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		old, err := term.MakeRaw(int(f.Fd()))
		if err == nil {
			buf := make([]byte, 1)
			_, _ = f.Read(buf)
			_ = term.Restore(int(f.Fd()), old)
			return
		}
	}

	if l.stdin == nil {
		l.stdin = bufio.NewReader(l.In)
	}
	_, _ = l.stdin.ReadString('\n')
}
