package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIdentifierCorrespondence_ZipsPairs(t *testing.T) {
	pairs := []IssueTypePair{
		{Original: IssueType{ID: 1, Name: "A"}, Created: IssueType{ID: 101, Name: "A"}},
		{Original: IssueType{ID: 2, Name: "B"}, Created: IssueType{ID: 102, Name: "B"}},
	}

	c := NewIdentifierCorrespondence(pairs)
	assert.Equal(t, 2, c.Len())

	id, ok := c.Lookup(1)
	require.True(t, ok)
	assert.Equal(t, int64(101), id)

	id, ok = c.Lookup(2)
	require.True(t, ok)
	assert.Equal(t, int64(102), id)

	_, ok = c.Lookup(3)
	assert.False(t, ok)
}

func TestIdentifierCorrespondence_Remap(t *testing.T) {
	c := NewIdentifierCorrespondence([]IssueTypePair{
		{Original: IssueType{ID: 1}, Created: IssueType{ID: 101}},
		{Original: IssueType{ID: 2}, Created: IssueType{ID: 102}},
	})

	got, err := c.Remap([]int64{1, 2})
	require.NoError(t, err)
	assert.Equal(t, []int64{101, 102}, got)

	got, err = c.Remap([]int64{2, 1, 2})
	require.NoError(t, err)
	assert.Equal(t, []int64{102, 101, 102}, got)
}

func TestIdentifierCorrespondence_RemapEmpty(t *testing.T) {
	c := NewIdentifierCorrespondence(nil)

	got, err := c.Remap(nil)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestIdentifierCorrespondence_RemapUnmapped(t *testing.T) {
	c := NewIdentifierCorrespondence([]IssueTypePair{
		{Original: IssueType{ID: 1}, Created: IssueType{ID: 101}},
	})

	_, err := c.Remap([]int64{1, 7})
	require.ErrorIs(t, err, ErrUnmappedIssueType)
	assert.Contains(t, err.Error(), "issue type 7")
}

func TestNewIssueTypeParams(t *testing.T) {
	summary := "Steps"
	params := NewIssueTypeParams(IssueType{
		ID:              5,
		ProjectID:       9,
		Name:            "Bug",
		Color:           "#ff0000",
		DisplayOrder:    2,
		TemplateSummary: &summary,
	})

	assert.Equal(t, "Bug", params.Name)
	assert.Equal(t, "#ff0000", params.Color)
	require.NotNil(t, params.TemplateSummary)
	assert.Equal(t, "Steps", *params.TemplateSummary)
	assert.Nil(t, params.TemplateDescription)
}
