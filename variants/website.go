package variants

import (
	"github.com/tbxark/formsubmit/form"
	"github.com/tbxark/formsubmit/types"
)

const NameWebsite = "website"

// Website is the input of the website scraper workflow.
type Website struct {
	WebsiteURL string `json:"website_url" jsonschema:"description=Full URL including https://"`
}

type WebsiteSpec struct{}

func (WebsiteSpec) Name() string { return NameWebsite }

func (WebsiteSpec) Fields() []types.FieldInfo {
	return []types.FieldInfo{{
		JSONPointer: "/website_url",
		Name:        "website_url",
		DisplayName: "Website URL",
		Description: "Enter the full URL including https://",
		Kind:        types.KindURL,
		Required:    true,
	}}
}

func (WebsiteSpec) Presentation() types.Presentation {
	return types.Presentation{Title: "Website Scraper Input", SubmitLabel: "Start Scraping", BusyLabel: "Starting Scraping..."}
}

// ValidateFacts only checks presence; URL syntax is left to the scraper.
func (WebsiteSpec) ValidateFacts(current Website) []types.Issue {
	if current.WebsiteURL == "" {
		return []types.Issue{{
			JSONPointer: "/website_url",
			Reason:      types.ReasonMissingURL,
			Message:     "Please enter a website URL",
		}}
	}
	return nil
}

var _ form.Spec[Website] = WebsiteSpec{}
