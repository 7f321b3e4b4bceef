package types

import "strings"

// Status is the submission status of a single form instance.
type Status string

const (
	StatusIdle       Status = "idle"
	StatusSubmitting Status = "submitting"
	StatusSubmitted  Status = "submitted"
)

type FieldKind string

const (
	KindText      FieldKind = "text"
	KindMultiline FieldKind = "multiline"
	KindBool      FieldKind = "bool"
	KindURL       FieldKind = "url"
	KindFile      FieldKind = "file"
)

// FieldInfo describes one member of a form's fixed field set.
type FieldInfo struct {
	JSONPointer string    `json:"json_pointer"`
	Name        string    `json:"name"`
	DisplayName string    `json:"display_name"`
	Description string    `json:"description,omitempty"`
	Kind        FieldKind `json:"kind"`
	Required    bool      `json:"required"`
}

// Issue is a single local validation failure. Reason is stable and meant for
// code; Message is shown to the user.
type Issue struct {
	JSONPointer string `json:"json_pointer"`
	Reason      string `json:"reason"`
	Message     string `json:"message"`
}

const (
	ReasonMissingFile = "missing file"
	ReasonWrongType   = "wrong type"
	ReasonMissingURL  = "missing url"
)

// FileHandle is what the file-selection collaborator hands over. Only Name
// and DeclaredType are read by validation and display.
type FileHandle struct {
	Name         string `json:"name"`
	DeclaredType string `json:"declared_type"`
	Path         string `json:"path,omitempty"`
	Size         int64  `json:"size,omitempty"`
}

// IsPDF reports whether the declared content type is application/pdf.
// Parameters such as "; charset=binary" are ignored.
func (f *FileHandle) IsPDF() bool {
	if f == nil {
		return false
	}
	mediaType, _, _ := strings.Cut(f.DeclaredType, ";")
	return strings.EqualFold(strings.TrimSpace(mediaType), "application/pdf")
}

type Presentation struct {
	Title       string `json:"title"`
	SubmitLabel string `json:"submit_label"`
	BusyLabel   string `json:"busy_label"`
}
