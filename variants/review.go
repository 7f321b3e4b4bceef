package variants

import (
	"github.com/tbxark/formsubmit/form"
	"github.com/tbxark/formsubmit/types"
)

const (
	NameRemarks         = "remarks"
	NameRemarksApproval = "remarks_approval"
	NameChecklist       = "checklist"
)

// Remarks is the DPR review step: free-text remarks only.
type Remarks struct {
	Remarks string `json:"remarks" jsonschema:"description=Remarks, observations or feedback"`
}

type RemarksSpec struct{}

func (RemarksSpec) Name() string { return NameRemarks }

func (RemarksSpec) Fields() []types.FieldInfo {
	return []types.FieldInfo{remarksField("Remarks / Comments", "Enter your remarks, observations, or feedback...")}
}

func (RemarksSpec) Presentation() types.Presentation {
	return types.Presentation{Title: "Review", SubmitLabel: "Submit Review", BusyLabel: "Submitting..."}
}

func (RemarksSpec) ValidateFacts(Remarks) []types.Issue { return nil }

// RemarksApproval is a DPR approval step: remarks plus an approval toggle.
type RemarksApproval struct {
	Approved bool   `json:"approved" jsonschema:"description=Whether the item is approved to proceed"`
	Remarks  string `json:"remarks" jsonschema:"description=Remarks, observations or feedback"`
}

type RemarksApprovalSpec struct{}

func (RemarksApprovalSpec) Name() string { return NameRemarksApproval }

func (RemarksApprovalSpec) Fields() []types.FieldInfo {
	return []types.FieldInfo{
		remarksField("Remarks / Comments", "Enter your remarks, observations, or feedback..."),
		{
			JSONPointer: "/approved",
			Name:        "approved",
			DisplayName: "Approved",
			Description: "Toggle to approve this submission",
			Kind:        types.KindBool,
		},
	}
}

func (RemarksApprovalSpec) Presentation() types.Presentation {
	return types.Presentation{Title: "Review & Approval", SubmitLabel: "Submit Decision", BusyLabel: "Submitting..."}
}

func (RemarksApprovalSpec) ValidateFacts(RemarksApproval) []types.Issue { return nil }

// Checklist captures checklist validation notes.
type Checklist struct {
	ChecklistNotes string `json:"checklist_notes" jsonschema:"description=Checklist details"`
}

type ChecklistSpec struct{}

func (ChecklistSpec) Name() string { return NameChecklist }

func (ChecklistSpec) Fields() []types.FieldInfo {
	return []types.FieldInfo{{
		JSONPointer: "/checklist_notes",
		Name:        "checklist_notes",
		DisplayName: "Checklist Information",
		Description: "Enter checklist details here...",
		Kind:        types.KindMultiline,
	}}
}

func (ChecklistSpec) Presentation() types.Presentation {
	return types.Presentation{Title: "Checklist Validation", SubmitLabel: "Submit Checklist", BusyLabel: "Submitting..."}
}

func (ChecklistSpec) ValidateFacts(Checklist) []types.Issue { return nil }

func remarksField(display, description string) types.FieldInfo {
	return types.FieldInfo{
		JSONPointer: "/remarks",
		Name:        "remarks",
		DisplayName: display,
		Description: description,
		Kind:        types.KindMultiline,
	}
}

var (
	_ form.Spec[Remarks]         = RemarksSpec{}
	_ form.Spec[RemarksApproval] = RemarksApprovalSpec{}
	_ form.Spec[Checklist]       = ChecklistSpec{}
)
