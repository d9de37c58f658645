package backlog

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/TWRT/project-config-migrator/internal/models"
)

type BacklogError struct {
	Message  string `json:"message"`
	Code     int    `json:"code"`
	MoreInfo string `json:"moreInfo"`
}

type BacklogErrors struct {
	Errors []BacklogError `json:"errors"`
}

type IssueTypeResponse struct {
	ID                  int64   `json:"id"`
	ProjectID           int64   `json:"projectId"`
	Name                string  `json:"name"`
	Color               string  `json:"color"`
	DisplayOrder        int     `json:"displayOrder"`
	TemplateSummary     *string `json:"templateSummary"`
	TemplateDescription *string `json:"templateDescription"`
}

func (r IssueTypeResponse) toModel() models.IssueType {
	return models.IssueType{
		ID:                  r.ID,
		ProjectID:           r.ProjectID,
		Name:                r.Name,
		Color:               r.Color,
		DisplayOrder:        r.DisplayOrder,
		TemplateSummary:     r.TemplateSummary,
		TemplateDescription: r.TemplateDescription,
	}
}

type CustomFieldItemResponse struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	DisplayOrder int    `json:"displayOrder"`
}

// CustomFieldResponse is the union of every attribute Backlog returns for a
// custom field. Which of the type-specific attributes are meaningful depends
// on TypeID; min and max are dates for date fields and numbers for number
// fields, so they are kept raw until the kind is known.
type CustomFieldResponse struct {
	ID                   int64   `json:"id"`
	Version              int64   `json:"version"`
	TypeID               int     `json:"typeId"`
	Name                 string  `json:"name"`
	Description          *string `json:"description"`
	Required             *bool   `json:"required"`
	UseIssueType         bool    `json:"useIssueType"`
	ApplicableIssueTypes []int64 `json:"applicableIssueTypes"`
	DisplayOrder         int     `json:"displayOrder"`

	AllowAddItem *bool                     `json:"allowAddItem,omitempty"`
	AllowInput   *bool                     `json:"allowInput,omitempty"`
	Items        []CustomFieldItemResponse `json:"items,omitempty"`

	Min              json.RawMessage `json:"min,omitempty"`
	Max              json.RawMessage `json:"max,omitempty"`
	InitialValue     *float64        `json:"initialValue,omitempty"`
	Unit             *string         `json:"unit,omitempty"`
	InitialValueType *int            `json:"initialValueType,omitempty"`
	InitialDate      *string         `json:"initialDate,omitempty"`
	InitialShift     *int            `json:"initialShift,omitempty"`
}

func (r CustomFieldResponse) toModel() (models.CustomField, error) {
	field := models.CustomField{
		ID:                   r.ID,
		Version:              r.Version,
		TypeID:               models.CustomFieldType(r.TypeID),
		Name:                 r.Name,
		Description:          r.Description,
		Required:             r.Required,
		UseIssueType:         r.UseIssueType,
		ApplicableIssueTypes: r.ApplicableIssueTypes,
		DisplayOrder:         r.DisplayOrder,
	}

	switch {
	case field.TypeID.IsList():
		items := make([]models.CustomFieldItem, 0, len(r.Items))
		for _, item := range r.Items {
			items = append(items, models.CustomFieldItem{
				ID:           item.ID,
				Name:         item.Name,
				DisplayOrder: item.DisplayOrder,
			})
		}
		field.Attributes = models.ListAttributes{
			AllowAddItem: r.AllowAddItem,
			AllowInput:   r.AllowInput,
			Items:        items,
		}
	case field.TypeID == models.CustomFieldTypeDate:
		lower, err := decodeOptional[string](r.Min)
		if err != nil {
			return models.CustomField{}, fmt.Errorf("custom field %d min: %w", r.ID, err)
		}
		upper, err := decodeOptional[string](r.Max)
		if err != nil {
			return models.CustomField{}, fmt.Errorf("custom field %d max: %w", r.ID, err)
		}
		field.Attributes = models.DateAttributes{
			Min:              lower,
			Max:              upper,
			InitialValueType: r.InitialValueType,
			InitialDate:      r.InitialDate,
			InitialShift:     r.InitialShift,
		}
	case field.TypeID == models.CustomFieldTypeNumber:
		lower, err := decodeOptional[float64](r.Min)
		if err != nil {
			return models.CustomField{}, fmt.Errorf("custom field %d min: %w", r.ID, err)
		}
		upper, err := decodeOptional[float64](r.Max)
		if err != nil {
			return models.CustomField{}, fmt.Errorf("custom field %d max: %w", r.ID, err)
		}
		field.Attributes = models.NumberAttributes{
			Min:          lower,
			Max:          upper,
			InitialValue: r.InitialValue,
			Unit:         r.Unit,
		}
	}

	return field, nil
}

func decodeOptional[T any](raw json.RawMessage) (*T, error) {
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return &v, nil
}
