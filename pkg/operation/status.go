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

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/fontsync/pkg/status"
)

// Status loads the catalogs and plans every font. Nothing is downloaded or written.
func (o *operator) Status(ctx context.Context) ([]status.Row, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("config", o.config.String()).Msg("checking status")

	reg, err := o.registry(nil)
	if err != nil {
		return nil, err
	}

	if err := reg.Load(ctx); err != nil {
		status.NewReporter(ctx, o.console).Fatal(err)
		return nil, errors.Errorf("loading catalogs: %w", err)
	}

	planned := rows(ctx, reg)
	if err := status.RenderMatrix(o.console, planned); err != nil {
		return planned, err
	}
	summary := status.Summary(planned)
	if _, err := o.console.Write([]byte(summary + "\n")); err != nil {
		return planned, errors.Errorf("writing summary: %w", err)
	}

	logger.Debug().Str("summary", summary).Msg("status checked")
	return planned, nil
}
