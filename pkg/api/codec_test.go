package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONCodec(t *testing.T) {
	codec := JSONCodec{}
	assert.Equal(t, "json", codec.Name())

	data, err := codec.Marshal(&AssignItemRequest{SessionID: "s1", ItemID: "1", Name: "Alice"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"sessionId":"s1","itemId":"1","name":"Alice"}`, string(data))

	var req AssignItemRequest
	require.NoError(t, codec.Unmarshal(data, &req))
	assert.Equal(t, "Alice", req.Name)

	var empty GetSessionRequest
	require.NoError(t, codec.Unmarshal(nil, &empty))
	assert.Equal(t, GetSessionRequest{}, empty)

	assert.Error(t, codec.Unmarshal([]byte("{"), &empty))
}
