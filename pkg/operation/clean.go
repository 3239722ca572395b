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
	"github.com/walteh/fontsync/pkg/links"
	"github.com/walteh/fontsync/pkg/log"
	"github.com/walteh/fontsync/pkg/registry"
	"github.com/walteh/fontsync/pkg/status"
)

// 🧹 Clean removes the links of every selected, locally cataloged font and
// drops those fonts from the manifest. Archives and extracted files stay.
func (o *operator) Clean(ctx context.Context) error {
	logger := zerolog.Ctx(ctx)
	console := log.FromContext(ctx)
	reporter := status.NewReporter(ctx, o.console)

	// the remote catalog is never needed to find what is installed
	reg, err := registry.New(registry.Options{
		Layout:    o.config.Layout(),
		LocalOnly: true,
		Patterns:  o.config.Fonts,
	})
	if err != nil {
		return errors.Errorf("creating registry: %w", err)
	}
	if err := reg.Load(ctx); err != nil {
		reporter.Fatal(err)
		return errors.Errorf("loading catalog: %w", err)
	}

	l := o.config.Layout()
	m := reg.Manifest()
	var failures []*fault.Error
	cleaned := 0

	for _, name := range reg.Names() {
		f, _ := reg.Font(name)
		if !reg.Selected(f.Basename) {
			continue
		}

		removed, err := links.Remove(ctx, l, f.Basename, m)
		if err != nil {
			failures = append(failures, fault.New(fault.KindLinks, f.Name, err))
			continue
		}
		m.Forget(f.Basename)
		cleaned++

		count := 0
		for _, names := range removed {
			count += len(names)
		}
		console.Infof("%s: removed %d link(s)", f.Name, count)
		logger.Debug().Str("font", f.Name).Int("removed", count).Msg("font cleaned")
	}

	if err := m.Save(ctx); err != nil {
		err = fault.New(fault.KindCatalogWrite, "", err)
		reporter.Fatal(err)
		return errors.Errorf("saving manifest %s: %w", m.Path(), err)
	}

	logger.Debug().Str("manifest", m.Path()).Int("cleaned", cleaned).Msg("manifest saved")

	reporter.Failures(failures)
	if len(failures) > 0 {
		return errors.Errorf("cleaning fonts: %d font(s) failed, first: %w", len(failures), failures[0])
	}

	reporter.Done(fmt.Sprintf("%d font(s) cleaned", cleaned))
	return nil
}
