package models

import "fmt"

type CustomFieldType int

const (
	CustomFieldTypeText         CustomFieldType = 1
	CustomFieldTypeSentence     CustomFieldType = 2
	CustomFieldTypeNumber       CustomFieldType = 3
	CustomFieldTypeDate         CustomFieldType = 4
	CustomFieldTypeSingleList   CustomFieldType = 5
	CustomFieldTypeMultipleList CustomFieldType = 6
	CustomFieldTypeCheckbox     CustomFieldType = 7
	CustomFieldTypeRadio        CustomFieldType = 8
)

func (t CustomFieldType) String() string {
	switch t {
	case CustomFieldTypeText:
		return "text"
	case CustomFieldTypeSentence:
		return "sentence"
	case CustomFieldTypeNumber:
		return "number"
	case CustomFieldTypeDate:
		return "date"
	case CustomFieldTypeSingleList:
		return "single_list"
	case CustomFieldTypeMultipleList:
		return "multiple_list"
	case CustomFieldTypeCheckbox:
		return "checkbox"
	case CustomFieldTypeRadio:
		return "radio"
	default:
		return fmt.Sprintf("unknown(%d)", int(t))
	}
}

// Known reports whether t is one of the eight field kinds Backlog defines.
func (t CustomFieldType) Known() bool {
	return t >= CustomFieldTypeText && t <= CustomFieldTypeRadio
}

// IsList reports whether fields of this kind carry selectable items.
func (t CustomFieldType) IsList() bool {
	switch t {
	case CustomFieldTypeSingleList, CustomFieldTypeMultipleList, CustomFieldTypeCheckbox, CustomFieldTypeRadio:
		return true
	}
	return false
}

type CustomField struct {
	ID                   int64           `json:"id"`
	Version              int64           `json:"version"`
	TypeID               CustomFieldType `json:"typeId"`
	Name                 string          `json:"name"`
	Description          *string         `json:"description,omitempty"`
	Required             *bool           `json:"required,omitempty"`
	UseIssueType         bool            `json:"useIssueType"`
	ApplicableIssueTypes []int64         `json:"applicableIssueTypes"`
	DisplayOrder         int             `json:"displayOrder"`
	// Attributes holds the type-specific part of the field. It is nil for
	// text, sentence and unrecognized kinds.
	Attributes TypeAttributes `json:"attributes,omitempty"`
}

// TypeAttributes is implemented by ListAttributes, DateAttributes and
// NumberAttributes only.
type TypeAttributes interface {
	isTypeAttributes()
}

type CustomFieldItem struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	DisplayOrder int    `json:"displayOrder"`
}

type ListAttributes struct {
	AllowAddItem *bool             `json:"allowAddItem,omitempty"`
	AllowInput   *bool             `json:"allowInput,omitempty"`
	Items        []CustomFieldItem `json:"items"`
}

type DateAttributes struct {
	Min              *string `json:"min,omitempty"`
	Max              *string `json:"max,omitempty"`
	InitialValueType *int    `json:"initialValueType,omitempty"`
	InitialDate      *string `json:"initialDate,omitempty"`
	InitialShift     *int    `json:"initialShift,omitempty"`
}

type NumberAttributes struct {
	Min          *float64 `json:"min,omitempty"`
	Max          *float64 `json:"max,omitempty"`
	InitialValue *float64 `json:"initialValue,omitempty"`
	Unit         *string  `json:"unit,omitempty"`
}

func (ListAttributes) isTypeAttributes()   {}
func (DateAttributes) isTypeAttributes()   {}
func (NumberAttributes) isTypeAttributes() {}

// Items returns the list items of f, or nil when f has none.
func (f CustomField) Items() []CustomFieldItem {
	if attrs, ok := f.Attributes.(ListAttributes); ok {
		return attrs.Items
	}
	return nil
}

// CustomFieldPayload is the body of a create-custom-field request. Each
// variant carries exactly the attributes the server requires for its kind.
type CustomFieldPayload interface {
	FieldType() CustomFieldType
	isCustomFieldPayload()
}

type commonPayload struct {
	TypeID               CustomFieldType `json:"typeId"`
	Name                 string          `json:"name"`
	ApplicableIssueTypes []int64         `json:"applicableIssueTypes"`
	Description          *string         `json:"description,omitempty"`
	Required             *bool           `json:"required,omitempty"`
}

func (p commonPayload) FieldType() CustomFieldType { return p.TypeID }
func (commonPayload) isCustomFieldPayload()        {}

type PlainFieldPayload struct {
	commonPayload
}

type ListFieldPayload struct {
	commonPayload
	AllowAddItem *bool    `json:"allowAddItem,omitempty"`
	AllowInput   *bool    `json:"allowInput,omitempty"`
	Items        []string `json:"items"`
}

type DateFieldPayload struct {
	commonPayload
	Min              *string `json:"min,omitempty"`
	Max              *string `json:"max,omitempty"`
	InitialValueType *int    `json:"initialValueType,omitempty"`
	InitialDate      *string `json:"initialDate,omitempty"`
	InitialShift     *int    `json:"initialShift,omitempty"`
}

type NumberFieldPayload struct {
	commonPayload
	Min          *float64 `json:"min,omitempty"`
	Max          *float64 `json:"max,omitempty"`
	InitialValue *float64 `json:"initialValue,omitempty"`
	Unit         *string  `json:"unit,omitempty"`
}

// NewCustomFieldPayload builds the creation payload for field, using
// applicableIssueTypes in place of the field's own references. The variant
// is chosen by the discriminator alone; text, sentence and unrecognized
// kinds get the common attributes only.
func NewCustomFieldPayload(field CustomField, applicableIssueTypes []int64) CustomFieldPayload {
	if applicableIssueTypes == nil {
		applicableIssueTypes = []int64{}
	}
	common := commonPayload{
		TypeID:               field.TypeID,
		Name:                 field.Name,
		ApplicableIssueTypes: applicableIssueTypes,
		Description:          field.Description,
		Required:             field.Required,
	}

	switch {
	case field.TypeID.IsList():
		attrs, _ := field.Attributes.(ListAttributes)
		items := make([]string, 0, len(attrs.Items))
		for _, item := range attrs.Items {
			items = append(items, item.Name)
		}
		return ListFieldPayload{
			commonPayload: common,
			AllowAddItem:  attrs.AllowAddItem,
			AllowInput:    attrs.AllowInput,
			Items:         items,
		}
	case field.TypeID == CustomFieldTypeDate:
		attrs, _ := field.Attributes.(DateAttributes)
		return DateFieldPayload{
			commonPayload:    common,
			Min:              attrs.Min,
			Max:              attrs.Max,
			InitialValueType: attrs.InitialValueType,
			InitialDate:      attrs.InitialDate,
			InitialShift:     attrs.InitialShift,
		}
	case field.TypeID == CustomFieldTypeNumber:
		attrs, _ := field.Attributes.(NumberAttributes)
		return NumberFieldPayload{
			commonPayload: common,
			Min:           attrs.Min,
			Max:           attrs.Max,
			InitialValue:  attrs.InitialValue,
			Unit:          attrs.Unit,
		}
	default:
		return PlainFieldPayload{commonPayload: common}
	}
}
