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

package operation

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/fontsync/pkg/fault"
	"github.com/walteh/fontsync/pkg/font"
	"github.com/walteh/fontsync/pkg/registry"
	"github.com/walteh/fontsync/pkg/status"
)

// Sync implements Operator.Sync
func (o *operator) Sync(ctx context.Context) (*registry.Report, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("config", o.config.String()).Msg("syncing fonts")

	reporter := status.NewReporter(ctx, o.console)

	var planned []status.Row
	reg, err := o.registry(func(ctx context.Context, r *registry.Registry) error {
		planned = rows(ctx, r)
		if err := status.RenderMatrix(o.console, planned); err != nil {
			return err
		}
		fmt.Fprintln(o.console, status.Summary(planned))
		return nil
	})
	if err != nil {
		return nil, err
	}

	report, err := reg.Run(ctx)
	if err != nil {
		// a fail-fast abort still has per-font failures to list
		if fault.IsFatal(err) || report == nil {
			reporter.Fatal(err)
		} else {
			reporter.Failures(report.Failures)
		}
		return report, errors.Errorf("syncing fonts: %w", err)
	}

	failed := map[string]bool{}
	for _, f := range report.Failures {
		failed[f.Font] = true
	}

	total := 0
	for _, row := range planned {
		if row.Skipped || row.Err != nil || row.Steps == font.UpToDate {
			continue
		}
		total++
		reporter.Outcome(row, failed[row.Name])
	}
	reporter.Progress(report.Handled, total)
	reporter.Failures(report.Failures)

	if !report.OK() {
		return report, errors.Errorf("syncing fonts: %d font(s) failed, first: %w", len(report.Failures), report.Failures[0])
	}

	reporter.Done(fmt.Sprintf("%d font(s) synced, %d already up to date", report.Handled, report.UpToDate))
	logger.Debug().
		Int("handled", report.Handled).
		Int("up_to_date", report.UpToDate).
		Int("skipped", report.Skipped).
		Msg("sync complete")

	return report, nil
}
