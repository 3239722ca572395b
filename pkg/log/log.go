// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package log prints the line-oriented console narrative of a run and
// mirrors every line into zerolog.
package log

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// 🎨 Display configuration
const (
	stepIndent = 4  // spaces to indent step lines
	stepWidth  = 14 // width of the step name column
)

// 🎯 FontOperation identifies the font a block of step lines belongs to
type FontOperation struct {
	Name          string // display name
	Basename      string // archive and link prefix
	LocalVersion  string
	RemoteVersion string
	Steps         string // planned steps, e.g. "download|extract|relink"
}

// 🔧 StepOperation is one step of a font's handling
type StepOperation struct {
	Name   string // Download, Extract, Update links
	Detail string // url or path the step works on
}

// 🎯 Logger handles structured logging with console output
type Logger struct {
	zlog      zerolog.Logger
	console   io.Writer
	mu        sync.Mutex
	currentOp *FontOperation
	steps     int
}

// 🏭 New creates a logger printing to console and mirroring to zlog
func New(console io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{
		zlog:    zlog,
		console: console,
		mu:      sync.Mutex{},
	}
}

// Discard returns a logger that prints nothing
func Discard() *Logger {
	return New(io.Discard, zerolog.Nop())
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context, or a discarding one
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		return Discard()
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// 📝 formatStep formats a step line for display
func formatStep(op StepOperation) string {
	line := fmt.Sprintf("%*s%s %s",
		stepIndent, "",
		color.New(color.FgBlue).Sprint("⟳"),
		fmt.Sprintf("%-*s", stepWidth, op.Name))
	if op.Detail != "" {
		line += color.New(color.Faint).Sprintf("(%s)", op.Detail)
	}
	return strings.TrimRight(line, " ")
}

// 📝 StartFont prints the header line for a font
func (l *Logger) StartFont(ctx context.Context, op FontOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.currentOp = &op
	l.steps = 0

	fmt.Fprintf(l.console, "%s %s %s %s\n",
		color.New(color.FgMagenta).Sprint("◆"),
		color.New(color.Bold).Sprint(op.Name),
		color.New(color.Faint).Sprint("•"),
		color.New(color.FgYellow).Sprint(op.Basename))

	l.zlog.Info().
		Str("font", op.Name).
		Str("basename", op.Basename).
		Str("local_version", op.LocalVersion).
		Str("remote_version", op.RemoteVersion).
		Str("steps", op.Steps).
		Msg("handling font")
}

// 📝 Step prints the start of a step
func (l *Logger) Step(ctx context.Context, op StepOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.steps++
	fmt.Fprintln(l.console, formatStep(op))

	ev := l.zlog.Info().Str("step", op.Name).Str("detail", op.Detail)
	if l.currentOp != nil {
		ev = ev.Str("font", l.currentOp.Name)
	}
	ev.Msg("step")
}

// 📝 StepOK prints the confirmation of the last step
func (l *Logger) StepOK(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "%*s%s\n", stepIndent, "", color.New(color.FgGreen).Sprint("✓ OK"))
}

// 📝 StepFailed prints why the last step failed
func (l *Logger) StepFailed(ctx context.Context, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "%*s%s %v\n", stepIndent, "", color.New(color.FgRed).Sprint("✗"), err)
	l.zlog.Error().Err(err).Msg("step failed")
}

// 📝 FailedLinks lists the link targets that could not be created
func (l *Logger) FailedLinks(ctx context.Context, targets []string) {
	if len(targets) == 0 {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintf(l.console, "%*s%s\n", stepIndent, "", color.New(color.FgRed).Sprint("✗ failed links:"))
	for _, target := range targets {
		fmt.Fprintf(l.console, "%*s- %s\n", stepIndent*2, "", target)
	}
	l.zlog.Warn().Strs("targets", targets).Msg("links could not be created")
}

// 📝 EndFont ends the current font block
func (l *Logger) EndFont(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.currentOp == nil {
		return
	}

	l.zlog.Debug().
		Str("font", l.currentOp.Name).
		Int("steps", l.steps).
		Msg("font handled")

	l.currentOp = nil
	l.steps = 0
}

// 📝 Console returns the writer console lines go to
func (l *Logger) Console() io.Writer {
	return l.console
}

// 📝 LogNewline logs a newline
func (l *Logger) LogNewline() {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console)
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	nameText := color.New(color.Bold, color.FgCyan).Sprint("fontsync")
	fmt.Fprintf(l.console, "\n%s %s\n\n", nameText, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

// 📝 Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}
