package google

import (
	"testing"

	"github.com/Musyoka2020-eng/Contriflow/internal/core"
)

func TestTabName(t *testing.T) {
	if got := tabName("2024"); got != "2024 Contributions" {
		t.Fatalf("tabName = %q", got)
	}
}

func TestBuildRows(t *testing.T) {
	data := core.YearData{
		"March": {Contributions: []core.Contribution{
			{MemberName: "Alice", Amount: 100, Paid: true},
			{MemberName: "Bob", Amount: 50, Paid: false},
		}},
		"January": {Contributions: []core.Contribution{
			{MemberName: "Alice", Amount: 80, Paid: true},
		}},
		"July": {}, // empty months are skipped entirely
	}

	rows := buildRows("2024", data)

	// Header + (1 entry + total) + (2 entries + total)
	if len(rows) != 6 {
		t.Fatalf("rows = %d, want 6", len(rows))
	}
	if rows[0][0] != "Month" {
		t.Fatalf("header = %v", rows[0])
	}
	// Calendar order regardless of map iteration: January before March.
	if rows[1][0] != "January" || rows[3][0] != "March" {
		t.Fatalf("month order = %v / %v", rows[1][0], rows[3][0])
	}
	if rows[2][1] != "TOTAL" || rows[2][2] != int64(80) {
		t.Fatalf("january total row = %v", rows[2])
	}
	if rows[5][1] != "TOTAL" || rows[5][2] != int64(150) {
		t.Fatalf("march total row = %v", rows[5])
	}
	if rows[4][3] != "Unpaid" {
		t.Fatalf("bob status = %v", rows[4][3])
	}
}

func TestBuildRowsEmptyYear(t *testing.T) {
	rows := buildRows("2024", core.YearData{})
	if len(rows) != 1 {
		t.Fatalf("empty year should produce only the header, got %d rows", len(rows))
	}
}
