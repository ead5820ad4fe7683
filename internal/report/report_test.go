package report

import (
	"bytes"
	"errors"
	"testing"

	"github.com/Musyoka2020-eng/Contriflow/internal/core"
)

func testData() core.ContributionsData {
	data := make(core.ContributionsData)
	y23 := data.EnsureYear("2023")
	y23["December"] = &core.MonthRecord{Contributions: []core.Contribution{
		{MemberName: "Alice", Amount: 80, Paid: true},
	}}
	y24 := data.EnsureYear("2024")
	y24["January"] = &core.MonthRecord{Contributions: []core.Contribution{
		{MemberName: "Alice", Amount: 100, Paid: true},
		{MemberName: "Bob", Amount: 50, Paid: false},
	}}
	y24["March"] = &core.MonthRecord{Contributions: []core.Contribution{
		{MemberName: "Alice", Amount: 100, Paid: false},
	}}
	return data
}

func TestMemberStatement(t *testing.T) {
	rep, err := Generate(testData(), Request{Type: TypeMemberStatement, Member: "Alice"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(rep.Rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rep.Rows))
	}
	// Chronological: 2023 December, then 2024 January, March.
	if rep.Rows[0].Year != "2023" || rep.Rows[1].Month != "January" || rep.Rows[2].Month != "March" {
		t.Fatalf("row order = %+v", rep.Rows)
	}
	if rep.TotalPaid != 180 || rep.TotalUnpaid != 100 {
		t.Fatalf("totals = %d/%d, want 180/100", rep.TotalPaid, rep.TotalUnpaid)
	}
	if rep.Total() != 280 {
		t.Fatalf("total = %d, want 280", rep.Total())
	}
}

func TestMemberStatementFiltersYear(t *testing.T) {
	rep, err := Generate(testData(), Request{Type: TypeMemberStatement, Member: "Alice", Year: "2024"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(rep.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rep.Rows))
	}
	for _, r := range rep.Rows {
		if r.Year != "2024" {
			t.Fatalf("row outside filter: %+v", r)
		}
	}
}

func TestPeriodSummary(t *testing.T) {
	rep, err := Generate(testData(), Request{Type: TypePeriodSummary, Year: "2024", Month: "January"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(rep.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rep.Rows))
	}
	if rep.TotalPaid != 100 || rep.TotalUnpaid != 50 {
		t.Fatalf("totals = %d/%d, want 100/50", rep.TotalPaid, rep.TotalUnpaid)
	}
}

func TestPaymentStatusUnpaidFirst(t *testing.T) {
	rep, err := Generate(testData(), Request{Type: TypePaymentStatus, Year: "2024"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(rep.Rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rep.Rows))
	}
	if rep.Rows[0].Paid || rep.Rows[1].Paid {
		t.Fatalf("unpaid rows must lead, got %+v", rep.Rows)
	}
	if !rep.Rows[2].Paid {
		t.Fatalf("paid rows must trail, got %+v", rep.Rows)
	}
}

func TestGenerateErrors(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		want error
	}{
		{"unknown type", Request{Type: Type("annual-gala")}, ErrUnknownType},
		{"statement without member", Request{Type: TypeMemberStatement}, ErrMemberMissing},
		{"unknown member", Request{Type: TypeMemberStatement, Member: "Nobody"}, ErrNoData},
		{"bad month", Request{Type: TypePeriodSummary, Month: "Smarch"}, core.ErrUnknownMonth},
		{"empty period", Request{Type: TypePeriodSummary, Year: "1999"}, ErrNoData},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Generate(testData(), tt.req)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestXLSXExport(t *testing.T) {
	rep, err := Generate(testData(), Request{Type: TypePeriodSummary})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	raw, err := XLSX(rep)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	// xlsx files are zip archives.
	if !bytes.HasPrefix(raw, []byte("PK")) {
		t.Fatalf("export does not look like a workbook, first bytes %q", raw[:4])
	}
}
