package services

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageCheck(t *testing.T) {
	require.NoError(t, Page{Limit: 1}.Check(100))
	require.NoError(t, Page{Limit: 100, Offset: 5}.Check(100))

	requireKind(t, Page{Limit: 0}.Check(100), http.StatusBadRequest)
	requireKind(t, Page{Limit: 101}.Check(100), http.StatusBadRequest)
	requireKind(t, Page{Limit: 10, Offset: -1}.Check(100), http.StatusBadRequest)
}

func TestPageClamp(t *testing.T) {
	assert.Equal(t, Page{Limit: 1, Offset: 0}, Page{Limit: 0, Offset: -3}.Clamp(100))
	assert.Equal(t, Page{Limit: 100, Offset: 7}, Page{Limit: 5000, Offset: 7}.Clamp(100))
	assert.Equal(t, Page{Limit: 20, Offset: 0}, Page{Limit: 20}.Clamp(100))
}
