package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscussionParent(t *testing.T) {
	d := NewDiscussion(GroupParent(7))
	require.NotNil(t, d.GroupID)
	assert.Nil(t, d.EventID)

	p, ok := d.Parent()
	require.True(t, ok)
	assert.Equal(t, ParentGroup, p.Kind())
	assert.Equal(t, uint(7), p.ID())

	d = NewDiscussion(EventParent(9))
	p, ok = d.Parent()
	require.True(t, ok)
	assert.Equal(t, ParentEvent, p.Kind())
	assert.Equal(t, "event", p.Kind().String())
}

func TestDiscussionParentInvalidRows(t *testing.T) {
	one, two := uint(1), uint(2)

	_, ok := (&Discussion{}).Parent()
	assert.False(t, ok, "neither")

	_, ok = (&Discussion{GroupID: &one, EventID: &two}).Parent()
	assert.False(t, ok, "both")
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "someone@example.com", NormalizeEmail("  SomeOne@Example.COM "))
}

func TestJSONNull(t *testing.T) {
	var p Photo
	require.NoError(t, json.Unmarshal([]byte(`{"url":"u","metadata":null}`), &p))
	assert.True(t, p.Metadata.IsEmpty())

	v, err := p.Metadata.Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	require.NoError(t, p.Metadata.Scan(nil))
	assert.True(t, p.Metadata.IsEmpty())
}

func TestJSONDocument(t *testing.T) {
	var p Photo
	require.NoError(t, json.Unmarshal([]byte(`{"url":"u","metadata":{"iso":200}}`), &p))
	assert.False(t, p.Metadata.IsEmpty())

	out, err := json.Marshal(p.Metadata)
	require.NoError(t, err)
	assert.JSONEq(t, `{"iso":200}`, string(out))
}
