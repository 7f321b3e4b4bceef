package variants

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/tbxark/formsubmit/form"
	"github.com/tbxark/formsubmit/patch"
	"github.com/tbxark/formsubmit/submit"
	"github.com/tbxark/formsubmit/types"
)

type captured[T any] struct {
	calls []submit.Submission[T]
}

func (c *captured[T]) Submit(ctx context.Context, sub submit.Submission[T]) error {
	c.calls = append(c.calls, sub)
	return nil
}

func newForm[T any](t *testing.T, spec form.Spec[T], opts ...form.Option[T]) (*form.Controller[T], *captured[T]) {
	t.Helper()
	rec := &captured[T]{}
	c, err := form.New(spec, rec, opts...)
	if err != nil {
		t.Fatalf("new %s: %v", spec.Name(), err)
	}
	return c, rec
}

func TestFieldsMatchStructTags(t *testing.T) {
	check := func(name string, fields []types.FieldInfo, pointers []string) {
		t.Helper()
		got := make(map[string]bool)
		for _, f := range fields {
			if patch.Pointer(f.Name) != f.JSONPointer {
				t.Errorf("%s: field %s has pointer %s", name, f.Name, f.JSONPointer)
			}
			got[f.JSONPointer] = true
		}
		want := make(map[string]bool)
		for _, p := range pointers {
			want[p] = true
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("%s: field set mismatch (-struct +spec):\n%s", name, diff)
		}
	}
	check(NameRemarks, RemarksSpec{}.Fields(), patch.FieldPointers[Remarks]())
	check(NameRemarksApproval, RemarksApprovalSpec{}.Fields(), patch.FieldPointers[RemarksApproval]())
	check(NameChecklist, ChecklistSpec{}.Fields(), patch.FieldPointers[Checklist]())
	check(NameDPRUpload, DPRUploadSpec{}.Fields(), patch.FieldPointers[DPRUpload]())
	check(NameDPRPDFUpload, DPRPDFUploadSpec{}.Fields(), patch.FieldPointers[DPRPDFUpload]())
	check(NameWebsite, WebsiteSpec{}.Fields(), patch.FieldPointers[Website]())
}

func TestValidate(t *testing.T) {
	pdf := &types.FileHandle{Name: "dpr.pdf", DeclaredType: "application/pdf"}
	png := &types.FileHandle{Name: "scan.png", DeclaredType: "image/png"}

	cases := []struct {
		name       string
		run        func() error
		wantReason string
	}{
		{name: "remarks empty", run: func() error { return form.Validate[Remarks](RemarksSpec{}, Remarks{}) }},
		{name: "approval empty", run: func() error { return form.Validate[RemarksApproval](RemarksApprovalSpec{}, RemarksApproval{}) }},
		{name: "checklist empty", run: func() error { return form.Validate[Checklist](ChecklistSpec{}, Checklist{}) }},
		{name: "upload missing file", run: func() error { return form.Validate[DPRUpload](DPRUploadSpec{}, DPRUpload{Remarks: "x"}) }, wantReason: types.ReasonMissingFile},
		{name: "upload any type", run: func() error { return form.Validate[DPRUpload](DPRUploadSpec{}, DPRUpload{DPRFile: png}) }},
		{name: "pdf missing file", run: func() error { return form.Validate[DPRPDFUpload](DPRPDFUploadSpec{}, DPRPDFUpload{}) }, wantReason: types.ReasonMissingFile},
		{name: "pdf wrong type", run: func() error { return form.Validate[DPRPDFUpload](DPRPDFUploadSpec{}, DPRPDFUpload{DPRFile: png}) }, wantReason: types.ReasonWrongType},
		{name: "pdf ok", run: func() error { return form.Validate[DPRPDFUpload](DPRPDFUploadSpec{}, DPRPDFUpload{DPRFile: pdf}) }},
		{name: "website missing url", run: func() error { return form.Validate[Website](WebsiteSpec{}, Website{}) }, wantReason: types.ReasonMissingURL},
		{name: "website no syntax check", run: func() error { return form.Validate[Website](WebsiteSpec{}, Website{WebsiteURL: "not a url"}) }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.run()
			if tc.wantReason == "" {
				if err != nil {
					t.Fatalf("expected Ok, got %v", err)
				}
				return
			}
			var vErr *form.ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if vErr.Reason() != tc.wantReason {
				t.Fatalf("reason = %q, want %q", vErr.Reason(), tc.wantReason)
			}
		})
	}
}

func TestUploadWithoutFileIsRejected(t *testing.T) {
	var shown []string
	c, rec := newForm[DPRUpload](t, DPRUploadSpec{}, form.WithObserver[DPRUpload](func(ev form.Event) {
		if ev.Kind == form.EventRejected {
			shown = append(shown, ev.Issue.Message)
		}
	}))
	c.SetField("remarks", "project notes")

	outcome, err := c.Submit(context.Background())
	if outcome != form.OutcomeRejected || err == nil {
		t.Fatalf("submit = %s, %v", outcome, err)
	}
	if len(rec.calls) != 0 {
		t.Fatal("collaborator must not be invoked")
	}
	if c.Status() != types.StatusIdle {
		t.Fatalf("status = %s", c.Status())
	}
	if diff := cmp.Diff([]string{"Please upload a DPR document"}, shown); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
}

func TestPDFUploadRejectsPNG(t *testing.T) {
	c, rec := newForm[DPRPDFUpload](t, DPRPDFUploadSpec{})
	c.SetField("dpr_file", &types.FileHandle{Name: "scan.png", DeclaredType: "image/png"})

	_, err := c.Submit(context.Background())
	var vErr *form.ValidationError
	if !errors.As(err, &vErr) || vErr.Reason() != types.ReasonWrongType {
		t.Fatalf("expected wrong type, got %v", err)
	}
	if len(rec.calls) != 0 {
		t.Fatal("collaborator must not be invoked")
	}
}

func TestPDFUploadAcceptsInitialData(t *testing.T) {
	initial := DPRPDFUpload{DPRFile: &types.FileHandle{Name: "tender.pdf", DeclaredType: "application/pdf", Path: "/uploads/tender.pdf"}}
	c, rec := newForm[DPRPDFUpload](t, DPRPDFUploadSpec{}, form.WithInitial(initial))

	if _, err := c.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if len(rec.calls) != 1 {
		t.Fatalf("calls = %d", len(rec.calls))
	}
	if diff := cmp.Diff(initial, rec.calls[0].Payload); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}
}

func TestRemarksSubmittedOnce(t *testing.T) {
	c, rec := newForm[Remarks](t, RemarksSpec{})
	c.SetField("remarks", "looks good")

	if outcome, err := c.Submit(context.Background()); err != nil || outcome != form.OutcomeDispatched {
		t.Fatalf("first submit = %s, %v", outcome, err)
	}
	if outcome, err := c.Submit(context.Background()); err != nil || outcome != form.OutcomeIgnored {
		t.Fatalf("second submit = %s, %v", outcome, err)
	}
	if len(rec.calls) != 1 {
		t.Fatalf("calls = %d, want 1", len(rec.calls))
	}
	if diff := cmp.Diff(Remarks{Remarks: "looks good"}, rec.calls[0].Payload); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}
}

func TestRemarksApprovalPayload(t *testing.T) {
	c, rec := newForm[RemarksApproval](t, RemarksApprovalSpec{})
	c.SetField("approved", true)
	c.SetField("remarks", "approved with conditions")
	if _, err := c.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}
	want := RemarksApproval{Approved: true, Remarks: "approved with conditions"}
	if diff := cmp.Diff(want, rec.calls[0].Payload); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}
}

func TestWebsiteSubmitsURL(t *testing.T) {
	c, rec := newForm[Website](t, WebsiteSpec{})
	c.SetField("website_url", "https://example.com")
	if _, err := c.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if diff := cmp.Diff(Website{WebsiteURL: "https://example.com"}, rec.calls[0].Payload); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(map[string]any{"website_url": "https://example.com"}, c.Values()); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestFileFromPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.7"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	f, err := FileFromPath(path)
	if err != nil {
		t.Fatalf("FileFromPath: %v", err)
	}
	if f.Name != "report.pdf" || f.DeclaredType != "application/pdf" || f.Size != 8 {
		t.Fatalf("unexpected handle: %+v", f)
	}
	if !f.IsPDF() {
		t.Fatal("expected PDF")
	}

	if _, err := FileFromPath(""); err == nil {
		t.Error("expected error for empty path")
	}
	if _, err := FileFromPath(dir); err == nil {
		t.Error("expected error for directory")
	}
	if _, err := FileFromPath(filepath.Join(dir, "missing.pdf")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestNames(t *testing.T) {
	for _, name := range Names() {
		if !Known(name) {
			t.Errorf("%s not known", name)
		}
	}
	if Known("unknown") {
		t.Error("unknown should not be known")
	}
}
