// Package javac runs the Java compiler over the generated sketch sources.
//
// The argument list and the log format the build parses are those of the
// Eclipse batch compiler (ecj); OpenJDK javac rejects -Xemacs.
package javac

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// Result is what the build consumes from a compiler run. RawLog is the
// line-oriented diagnostic output.
type Result struct {
	Success bool
	RawLog  string
}

// Compiler compiles with the given argument list. An error means the
// compiler could not be run at all; compile errors are reported in Result.
type Compiler interface {
	Compile(ctx context.Context, args []string) (Result, error)
}

// Func adapts a function to the Compiler interface.
type Func func(ctx context.Context, args []string) (Result, error)

func (f Func) Compile(ctx context.Context, args []string) (Result, error) {
	return f(ctx, args)
}

// Options are the settings that shape the argument list.
type Options struct {
	Source    string
	Target    string
	ClassPath string
	OutDir    string
}

// DefaultCommand is the compiler run when none is configured. Any
// ecj-compatible command line works.
const DefaultCommand = "ecj"

// DefaultLevel is the language level used when Options leave it empty.
const DefaultLevel = "1.8"

// Args builds the compiler argument list:
//
//	-g -Xemacs -source S -target T -encoding utf8 -classpath CP -nowarn -d BIN <sources>
func Args(o Options, sources []string) []string {
	src := o.Source
	if src == "" {
		src = DefaultLevel
	}
	target := o.Target
	if target == "" {
		target = src
	}
	args := []string{
		"-g",
		"-Xemacs",
		"-source", src,
		"-target", target,
		"-encoding", "utf8",
		"-classpath", o.ClassPath,
		"-nowarn",
		"-d", o.OutDir,
	}
	return append(args, sources...)
}

// Exec runs a compiler binary. Stdout and stderr are combined into RawLog.
type Exec struct {
	Command       string
	PrintCommands bool
	Stdout        io.Writer
}

func (e Exec) Compile(ctx context.Context, args []string) (Result, error) {
	if e.Command == "" {
		return Result{}, errors.New("compiler command is not configured")
	}
	if e.PrintCommands && e.Stdout != nil {
		if _, err := fmt.Fprintf(e.Stdout, "%s %s\n", e.Command, strings.Join(args, " ")); err != nil {
			return Result{}, fmt.Errorf("failed to print command: %w", err)
		}
	}
	cmd := exec.CommandContext(ctx, e.Command, args...)
	var out strings.Builder
	cmd.Stdout = &out
	cmd.Stderr = &out
	err := cmd.Run()
	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return Result{Success: true, RawLog: out.String()}, nil
	case errors.As(err, &exitErr):
		return Result{Success: false, RawLog: out.String()}, nil
	}
	return Result{}, fmt.Errorf("%s: %w", e.Command, err)
}
