package preproc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// Exec runs an external preprocessor. The concatenated source is written to
// its stdin and it answers with one JSON document on stdout: either a Result
// or {"error": {...}} describing a syntax failure.
type Exec struct {
	Command       string
	Args          []string
	PrintCommands bool
	Stdout        io.Writer
}

type response struct {
	Result
	Error *wireError `json:"error"`
}

type wireError struct {
	Kind    string `json:"kind"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Text    string `json:"text"`
	Message string `json:"message"`
}

func (e Exec) Preprocess(ctx context.Context, req Request) (Result, error) {
	if e.Command == "" {
		return Result{}, errors.New("preprocessor command is not configured")
	}
	args := append([]string(nil), e.Args...)
	args = append(args, "--name", req.Name)
	for _, p := range req.KnownPackages {
		args = append(args, "--known-package", p)
	}
	if e.PrintCommands && e.Stdout != nil {
		if _, err := fmt.Fprintf(e.Stdout, "%s %s\n", e.Command, strings.Join(args, " ")); err != nil {
			return Result{}, fmt.Errorf("failed to print command: %w", err)
		}
	}

	cmd := exec.CommandContext(ctx, e.Command, args...)
	cmd.Stdin = strings.NewReader(req.Source)
	var stdout bytes.Buffer
	var stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	runErr := cmd.Run()

	res, err := Decode(stdout.Bytes())
	if err == nil || isSyntax(err) {
		return res, err
	}
	if runErr != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return Result{}, fmt.Errorf("%s: %w", e.Command, runErr)
		}
		return Result{}, fmt.Errorf("%s: %s", e.Command, msg)
	}
	return Result{}, fmt.Errorf("%s: %w", e.Command, err)
}

// Decode parses one preprocessor response.
func Decode(data []byte) (Result, error) {
	var resp response
	if err := json.Unmarshal(data, &resp); err != nil {
		return Result{}, fmt.Errorf("invalid preprocessor output: %w", err)
	}
	if resp.Error == nil {
		return resp.Result, nil
	}
	switch resp.Error.Kind {
	case "recognition":
		return Result{}, &RecognitionError{Line: resp.Error.Line, Column: resp.Error.Column, Message: resp.Error.Message}
	case "token-stream":
		text := resp.Error.Text
		if text == "" {
			text = resp.Error.Message
		}
		return Result{}, &TokenStreamError{Text: text, Message: resp.Error.Message}
	}
	return Result{}, fmt.Errorf("preprocessor error %q: %s", resp.Error.Kind, resp.Error.Message)
}

func isSyntax(err error) bool {
	var re *RecognitionError
	var te *TokenStreamError
	return errors.As(err, &re) || errors.As(err, &te)
}
