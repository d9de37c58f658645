package client

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoteError_Error(t *testing.T) {
	err := &RemoteError{Operation: "create issue type", StatusCode: 400, Body: `{"errors":[]}`}
	assert.Equal(t, `create issue type: status 400: {"errors":[]}`, err.Error())

	err.Messages = []string{"name is duplicated", "color is invalid"}
	assert.Equal(t, "create issue type: status 400: name is duplicated; color is invalid", err.Error())
}

func TestRemoteError_As(t *testing.T) {
	wrapped := fmt.Errorf("migrate issue types: %w", &RemoteError{Operation: "get issue types", StatusCode: 404})

	var remoteErr *RemoteError
	require.True(t, errors.As(wrapped, &remoteErr))
	assert.Equal(t, 404, remoteErr.StatusCode)
}
