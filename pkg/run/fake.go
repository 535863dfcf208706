package run

import (
	"context"
	"strings"
)

// Fake is a scripted Runner for tests. Handler receives the full command
// line and decides the Result; a nil Handler answers everything with
// success and empty output. Every invocation is recorded in Calls.
type Fake struct {
	Handler func(cmdline string) Result
	Calls   []string
}

var _ Runner = (*Fake)(nil)

func (f *Fake) Run(ctx context.Context, name string, args ...string) Result {
	return f.record(name, args)
}

func (f *Fake) Stream(ctx context.Context, name string, args ...string) Result {
	return f.record(name, args)
}

func (f *Fake) record(name string, args []string) Result {
	cmdline := commandLine(name, args)
	f.Calls = append(f.Calls, cmdline)
	if f.Handler != nil {
		res := f.Handler(cmdline)
		if res.Cmd == "" {
			res.Cmd = cmdline
		}
		return res
	}
	return Result{Cmd: cmdline}
}

// Called reports whether any recorded command line starts with prefix.
func (f *Fake) Called(prefix string) bool {
	for _, c := range f.Calls {
		if strings.HasPrefix(c, prefix) {
			return true
		}
	}
	return false
}

// Count returns how many recorded command lines start with prefix.
func (f *Fake) Count(prefix string) int {
	n := 0
	for _, c := range f.Calls {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}
