// Package memory is an in-memory YearMirror for tests and local runs
// without Google credentials.
package memory

import (
	"context"
	"sync"

	"github.com/Musyoka2020-eng/Contriflow/internal/core"
	ports "github.com/Musyoka2020-eng/Contriflow/internal/sheets"
)

type Mirror struct {
	mu    sync.Mutex
	years map[string]core.YearData
}

var _ ports.YearMirror = (*Mirror)(nil)

func New() *Mirror {
	return &Mirror{years: make(map[string]core.YearData)}
}

func (m *Mirror) MirrorYear(ctx context.Context, year string, data core.YearData) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Deep copy so later document mutations don't reach into the mirror.
	cp := make(core.YearData, len(data))
	for month, rec := range data {
		if rec == nil {
			continue
		}
		contribs := make([]core.Contribution, len(rec.Contributions))
		copy(contribs, rec.Contributions)
		cp[month] = &core.MonthRecord{Contributions: contribs, Total: rec.Total}
	}
	m.years[year] = cp
	return nil
}

// Year returns the last mirrored data for a year, or nil.
func (m *Mirror) Year(year string) core.YearData {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.years[year]
}

// Years returns how many distinct years have been mirrored.
func (m *Mirror) Years() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.years)
}
