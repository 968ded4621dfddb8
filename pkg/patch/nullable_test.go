package patch

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type body struct {
	AddressID Nullable[int64] `json:"addressId"`
}

func TestNullable_Absent(t *testing.T) {
	var b body
	require.NoError(t, json.Unmarshal([]byte(`{}`), &b))
	assert.False(t, b.AddressID.Set)
	assert.Nil(t, b.AddressID.Ptr())
}

func TestNullable_Null(t *testing.T) {
	var b body
	require.NoError(t, json.Unmarshal([]byte(`{"addressId": null}`), &b))
	assert.True(t, b.AddressID.Set)
	assert.False(t, b.AddressID.Valid)
	assert.Nil(t, b.AddressID.Ptr())
}

func TestNullable_Value(t *testing.T) {
	var b body
	require.NoError(t, json.Unmarshal([]byte(`{"addressId": 7}`), &b))
	assert.True(t, b.AddressID.Set)
	require.NotNil(t, b.AddressID.Ptr())
	assert.Equal(t, int64(7), *b.AddressID.Ptr())
}

func TestNullable_BadValue(t *testing.T) {
	var b body
	assert.Error(t, json.Unmarshal([]byte(`{"addressId": "x"}`), &b))
}
