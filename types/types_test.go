package types

import (
	"strings"
	"testing"
)

func TestFileHandleIsPDF(t *testing.T) {
	cases := []struct {
		name string
		file *FileHandle
		want bool
	}{
		{name: "nil", file: nil, want: false},
		{name: "pdf", file: &FileHandle{Name: "a.pdf", DeclaredType: "application/pdf"}, want: true},
		{name: "pdf upper with params", file: &FileHandle{DeclaredType: "Application/PDF; charset=binary"}, want: true},
		{name: "png", file: &FileHandle{Name: "a.png", DeclaredType: "image/png"}, want: false},
		{name: "empty", file: &FileHandle{Name: "a"}, want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.file.IsPDF(); got != tc.want {
				t.Fatalf("IsPDF() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestFormatIssues(t *testing.T) {
	if got := FormatIssues(nil); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
	out := FormatIssues([]Issue{{JSONPointer: "/dpr_file", Reason: ReasonMissingFile, Message: "Please upload a DPR document"}})
	for _, want := range []string{"Validation errors", "/dpr_file", "missing file", "Please upload a DPR document"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestFormatFields(t *testing.T) {
	fields := []FieldInfo{
		{Name: "approved", DisplayName: "Approved", Kind: KindBool},
		{Name: "dpr_file", DisplayName: "DPR File", Kind: KindFile, Required: true},
		{Name: "remarks", DisplayName: "Remarks", Kind: KindMultiline},
	}
	values := map[string]any{
		"approved": true,
		"dpr_file": map[string]any{"name": "report.pdf"},
		"remarks":  "line one\nline two",
	}
	out := FormatFields(fields, values)
	for _, want := range []string{"Approved", "yes", "report.pdf", "line one line two"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
