// Package sheets defines the ports for mirroring contribution data to an
// external spreadsheet. The worker consumes these; implementations live
// in subpackages.
package sheets

import (
	"context"

	"github.com/Musyoka2020-eng/Contriflow/internal/core"
)

// YearMirror writes one year of contribution data to its spreadsheet tab,
// replacing whatever the tab held before. Implementations must be safe
// for concurrent calls with distinct years.
type YearMirror interface {
	MirrorYear(ctx context.Context, year string, data core.YearData) error
}
