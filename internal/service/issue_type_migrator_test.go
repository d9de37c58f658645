package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TWRT/project-config-migrator/internal/client"
	"github.com/TWRT/project-config-migrator/internal/models"
)

func TestIssueTypeMigrator_PairsFollowReadOrder(t *testing.T) {
	c := newFakeConfigClient()
	c.issueTypes["SRC"] = []models.IssueType{
		{ID: 1, Name: "A", Color: "#111111"},
		{ID: 2, Name: "B", Color: "#222222"},
	}
	c.createdIssueTypeIDs = map[string]int64{"A": 101, "B": 102}

	// A's creation only finishes after B's, so completion order is reversed.
	bDone := make(chan struct{})
	c.beforeCreate = func(name string) {
		if name == "A" {
			<-bDone
		}
	}
	c.afterCreate = func(name string) {
		if name == "B" {
			close(bDone)
		}
	}

	pairs, err := NewIssueTypeMigrator(c).Migrate(context.Background(), "SRC", "DST")
	require.NoError(t, err)
	require.Len(t, pairs, 2)

	assert.Equal(t, int64(1), pairs[0].Original.ID)
	assert.Equal(t, int64(101), pairs[0].Created.ID)
	assert.Equal(t, int64(2), pairs[1].Original.ID)
	assert.Equal(t, int64(102), pairs[1].Created.ID)

	correspondence := models.NewIdentifierCorrespondence(pairs)
	got, err := correspondence.Remap([]int64{1, 2})
	require.NoError(t, err)
	assert.Equal(t, []int64{101, 102}, got)
}

func TestIssueTypeMigrator_CorrespondenceCoversEverySourceType(t *testing.T) {
	c := newFakeConfigClient()
	for i := int64(1); i <= 25; i++ {
		c.issueTypes["SRC"] = append(c.issueTypes["SRC"], models.IssueType{ID: i, Name: string(rune('A' + i))})
	}

	pairs, err := NewIssueTypeMigrator(c).Migrate(context.Background(), "SRC", "DST")
	require.NoError(t, err)

	correspondence := models.NewIdentifierCorrespondence(pairs)
	assert.Equal(t, 25, correspondence.Len())
	for i, original := range c.issueTypes["SRC"] {
		destID, ok := correspondence.Lookup(original.ID)
		require.True(t, ok, "missing source issue type %d", original.ID)
		assert.Equal(t, pairs[i].Created.ID, destID)
		assert.Equal(t, original.Name, pairs[i].Created.Name)
	}
}

func TestIssueTypeMigrator_SendsOnlyCreationAttributes(t *testing.T) {
	c := newFakeConfigClient()
	c.issueTypes["SRC"] = []models.IssueType{
		{ID: 1, ProjectID: 7, Name: "Bug", Color: "#ff0000", DisplayOrder: 3, TemplateDescription: ptr("## Steps")},
	}

	_, err := NewIssueTypeMigrator(c).Migrate(context.Background(), "SRC", "DST")
	require.NoError(t, err)

	require.Len(t, c.issueTypeParams, 1)
	assert.Equal(t, models.IssueTypeParams{
		Name:                "Bug",
		Color:               "#ff0000",
		TemplateDescription: ptr("## Steps"),
	}, c.issueTypeParams[0])
}

func TestIssueTypeMigrator_EmptyProject(t *testing.T) {
	c := newFakeConfigClient()
	c.issueTypes["SRC"] = nil

	pairs, err := NewIssueTypeMigrator(c).Migrate(context.Background(), "SRC", "DST")
	require.NoError(t, err)
	assert.Empty(t, pairs)
}

func TestIssueTypeMigrator_ReadFailure(t *testing.T) {
	c := newFakeConfigClient()

	_, err := NewIssueTypeMigrator(c).Migrate(context.Background(), "MISSING", "DST")
	require.Error(t, err)

	var remoteErr *client.RemoteError
	require.True(t, errors.As(err, &remoteErr))
	assert.Equal(t, "get issue types", remoteErr.Operation)
	assert.Empty(t, c.issueTypeParams)
}

func TestIssueTypeMigrator_OneFailedCreationFailsBatch(t *testing.T) {
	c := newFakeConfigClient()
	c.issueTypes["SRC"] = []models.IssueType{
		{ID: 1, Name: "Bug"},
		{ID: 2, Name: "Broken"},
		{ID: 3, Name: "Task"},
	}
	c.failIssueType = "Broken"

	pairs, err := NewIssueTypeMigrator(c).Migrate(context.Background(), "SRC", "DST")
	require.Error(t, err)
	assert.Nil(t, pairs)
	assert.Contains(t, err.Error(), `create issue type "Broken"`)

	var remoteErr *client.RemoteError
	require.True(t, errors.As(err, &remoteErr))
	assert.Equal(t, `{"errors":[{"message":"Invalid color."}]}`, remoteErr.Body)
}
