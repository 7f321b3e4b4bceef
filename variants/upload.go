package variants

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/tbxark/formsubmit/form"
	"github.com/tbxark/formsubmit/types"
)

const (
	NameDPRUpload    = "dpr_upload"
	NameDPRPDFUpload = "dpr_pdf_upload"
)

// DPRUpload is the initial DPR upload from the district office.
type DPRUpload struct {
	DPRFile *types.FileHandle `json:"dpr_file" jsonschema:"description=The DPR document (PDF, DOC or XLS)"`
	Remarks string            `json:"remarks" jsonschema:"description=Brief description of the DPR or project notes"`
}

type DPRUploadSpec struct{}

func (DPRUploadSpec) Name() string { return NameDPRUpload }

func (DPRUploadSpec) Fields() []types.FieldInfo {
	return []types.FieldInfo{
		{
			JSONPointer: "/dpr_file",
			Name:        "dpr_file",
			DisplayName: "DPR Document",
			Description: "PDF, DOC or XLS",
			Kind:        types.KindFile,
			Required:    true,
		},
		remarksField("Remarks / Description", "Brief description of the DPR, project details, or any notes..."),
	}
}

func (DPRUploadSpec) Presentation() types.Presentation {
	return types.Presentation{Title: "Upload DPR Document", SubmitLabel: "Submit DPR", BusyLabel: "Uploading..."}
}

func (DPRUploadSpec) ValidateFacts(current DPRUpload) []types.Issue {
	if current.DPRFile == nil {
		return []types.Issue{{
			JSONPointer: "/dpr_file",
			Reason:      types.ReasonMissingFile,
			Message:     "Please upload a DPR document",
		}}
	}
	return nil
}

// DPRPDFUpload is the tender-process DPR upload. It only accepts PDFs and
// may be seeded with initial data by the caller.
type DPRPDFUpload struct {
	DPRFile *types.FileHandle `json:"dpr_file" jsonschema:"description=The DPR document as a PDF"`
}

type DPRPDFUploadSpec struct{}

func (DPRPDFUploadSpec) Name() string { return NameDPRPDFUpload }

func (DPRPDFUploadSpec) Fields() []types.FieldInfo {
	return []types.FieldInfo{{
		JSONPointer: "/dpr_file",
		Name:        "dpr_file",
		DisplayName: "DPR File",
		Description: "PDF only",
		Kind:        types.KindFile,
		Required:    true,
	}}
}

func (DPRPDFUploadSpec) Presentation() types.Presentation {
	return types.Presentation{Title: "Upload DPR File", SubmitLabel: "Submit DPR", BusyLabel: "Uploading..."}
}

func (DPRPDFUploadSpec) ValidateFacts(current DPRPDFUpload) []types.Issue {
	switch {
	case current.DPRFile == nil:
		return []types.Issue{{
			JSONPointer: "/dpr_file",
			Reason:      types.ReasonMissingFile,
			Message:     "Please select a PDF file to upload.",
		}}
	case !current.DPRFile.IsPDF():
		return []types.Issue{{
			JSONPointer: "/dpr_file",
			Reason:      types.ReasonWrongType,
			Message:     "Only PDF files are allowed.",
		}}
	}
	return nil
}

// FileFromPath builds a file handle for a local file. The declared type
// comes from the file extension, the way a browser file picker reports it.
func FileFromPath(path string) (*types.FileHandle, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("file path is empty")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	declared, _, _ := strings.Cut(mime.TypeByExtension(filepath.Ext(abs)), ";")
	return &types.FileHandle{
		Name:         info.Name(),
		DeclaredType: declared,
		Path:         abs,
		Size:         info.Size(),
	}, nil
}

var (
	_ form.Spec[DPRUpload]    = DPRUploadSpec{}
	_ form.Spec[DPRPDFUpload] = DPRPDFUploadSpec{}
)
