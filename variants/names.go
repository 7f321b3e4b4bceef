package variants

// Names lists every workflow form this package provides.
func Names() []string {
	return []string{
		NameChecklist,
		NameDPRPDFUpload,
		NameDPRUpload,
		NameRemarks,
		NameRemarksApproval,
		NameWebsite,
	}
}

func Known(name string) bool {
	for _, n := range Names() {
		if n == name {
			return true
		}
	}
	return false
}
