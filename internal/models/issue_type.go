package models

type IssueType struct {
	ID                  int64   `json:"id"`
	ProjectID           int64   `json:"projectId"`
	Name                string  `json:"name"`
	Color               string  `json:"color"`
	DisplayOrder        int     `json:"displayOrder"`
	TemplateSummary     *string `json:"templateSummary,omitempty"`
	TemplateDescription *string `json:"templateDescription,omitempty"`
}

// IssueTypeParams is the body of a create-issue-type request. Identifier and
// project membership are assigned by the server.
type IssueTypeParams struct {
	Name                string  `json:"name"`
	Color               string  `json:"color"`
	TemplateSummary     *string `json:"templateSummary,omitempty"`
	TemplateDescription *string `json:"templateDescription,omitempty"`
}

func NewIssueTypeParams(original IssueType) IssueTypeParams {
	return IssueTypeParams{
		Name:                original.Name,
		Color:               original.Color,
		TemplateSummary:     original.TemplateSummary,
		TemplateDescription: original.TemplateDescription,
	}
}
