package cli

import (
	"strings"
	"testing"
)

func TestWriteTableAlignsColumns(t *testing.T) {
	var out strings.Builder
	err := writeTable(&out, []string{"ID", "SUBJECT"}, [][]string{
		{"conv-1", "School pickup"},
		{"conv-22", "Dentist"},
	})
	if err != nil {
		t.Fatalf("writeTable: %v", err)
	}

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[0], "ID") {
		t.Fatalf("expected header line, got %q", lines[0])
	}

	subjectCol := strings.Index(lines[1], "School")
	if subjectCol != strings.Index(lines[2], "Dentist") {
		t.Fatalf("columns misaligned: %q vs %q", lines[1], lines[2])
	}
}

func TestWriteTableHandlesShortRows(t *testing.T) {
	var out strings.Builder
	err := writeTable(&out, []string{"A", "B", "C"}, [][]string{
		{"only"},
	})
	if err != nil {
		t.Fatalf("writeTable: %v", err)
	}
	if !strings.Contains(out.String(), "only") {
		t.Fatalf("missing cell in output: %q", out.String())
	}
}

func TestWriteTableEmptyIsNoop(t *testing.T) {
	var out strings.Builder
	if err := writeTable(&out, nil, nil); err != nil {
		t.Fatalf("writeTable: %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("expected no output, got %q", out.String())
	}
}

func TestFormatCents(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{0, "$0.00"},
		{5, "$0.05"},
		{12345, "$123.45"},
		{-250, "-$2.50"},
	}
	for _, tc := range cases {
		if got := formatCents(tc.cents); got != tc.want {
			t.Errorf("formatCents(%d) = %q, want %q", tc.cents, got, tc.want)
		}
	}
}

func TestFormatYesNo(t *testing.T) {
	if formatYesNo(true) != "yes" || formatYesNo(false) != "no" {
		t.Fatal("unexpected yes/no formatting")
	}
}
