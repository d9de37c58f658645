package models

import (
	"errors"
	"fmt"
)

var ErrUnmappedIssueType = errors.New("issue type has no counterpart in destination project")

type IssueTypePair struct {
	Original IssueType
	Created  IssueType
}

type CustomFieldPair struct {
	Original CustomField
	Created  CustomField
}

// IdentifierCorrespondence maps source issue-type ids to the ids of the
// issue types created for them in the destination project. It is read-only
// once built.
type IdentifierCorrespondence struct {
	ids map[int64]int64
}

func NewIdentifierCorrespondence(pairs []IssueTypePair) IdentifierCorrespondence {
	ids := make(map[int64]int64, len(pairs))
	for _, p := range pairs {
		ids[p.Original.ID] = p.Created.ID
	}
	return IdentifierCorrespondence{ids: ids}
}

func (c IdentifierCorrespondence) Lookup(sourceID int64) (int64, bool) {
	id, ok := c.ids[sourceID]
	return id, ok
}

func (c IdentifierCorrespondence) Len() int {
	return len(c.ids)
}

// Remap translates every id through the correspondence. The result is never
// nil, so an absent list becomes an empty one.
func (c IdentifierCorrespondence) Remap(sourceIDs []int64) ([]int64, error) {
	remapped := make([]int64, 0, len(sourceIDs))
	for _, id := range sourceIDs {
		destID, ok := c.ids[id]
		if !ok {
			return nil, fmt.Errorf("issue type %d: %w", id, ErrUnmappedIssueType)
		}
		remapped = append(remapped, destID)
	}
	return remapped, nil
}
