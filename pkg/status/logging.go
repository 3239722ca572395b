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

package status

import (
	"context"
	"fmt"
	"io"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"

	"github.com/walteh/fontsync/pkg/fault"
)

// 📢 Reporter prints the end-of-run outcome for the user
type Reporter struct {
	out       io.Writer
	formatter Formatter
	log       zerolog.Logger
}

// 🎯 NewReporter creates a reporter writing to out
func NewReporter(ctx context.Context, out io.Writer) *Reporter {
	return &Reporter{
		out:       out,
		formatter: NewDefaultFormatter(),
		log:       *zerolog.Ctx(ctx),
	}
}

// 📝 Outcome prints one font's outcome line
func (r *Reporter) Outcome(row Row, failed bool) {
	msg := r.formatter.FormatOutcome(row.Name, row.Steps, failed)
	fmt.Fprintln(r.out, msg)
	r.log.Debug().Str("font", row.Name).Stringer("steps", row.Steps).Bool("failed", failed).Msg("font outcome")
}

// 📝 Progress prints how many of the planned fonts were handled
func (r *Reporter) Progress(current, total int) {
	fmt.Fprintln(r.out, r.formatter.FormatProgress(current, total))
}

// ❌ Failures lists every per-font failure, grouped under their kind
func (r *Reporter) Failures(failures []*fault.Error) {
	if len(failures) == 0 {
		return
	}

	printer := pterm.Error.WithPrefix(pterm.Prefix{Text: "❌"})
	fmt.Fprint(r.out, printer.Sprintln(fmt.Sprintf("%d font(s) failed", len(failures))))
	for _, f := range failures {
		fmt.Fprintf(r.out, "  - %s (%s): %v\n", f.Font, f.Kind, f.Err)
		r.log.Error().Err(f.Err).Str("font", f.Font).Stringer("kind", f.Kind).Msg("font failed")
	}
}

// ✅ Done prints the closing line of a successful run
func (r *Reporter) Done(msg string) {
	fmt.Fprint(r.out, pterm.Success.WithPrefix(pterm.Prefix{Text: "✅"}).Sprintln(msg))
	r.log.Info().Msg(msg)
}

// ⚠️ Fatal prints why a run stopped
func (r *Reporter) Fatal(err error) {
	fmt.Fprint(r.out, pterm.Error.WithPrefix(pterm.Prefix{Text: "❌"}).Sprintln(r.formatter.FormatError(err)))
	r.log.Error().Err(err).Stringer("kind", fault.KindOf(err)).Msg("run stopped")
}
