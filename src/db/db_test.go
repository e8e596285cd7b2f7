package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	gormDB, err := Open("file:dbtest?mode=memory&cache=shared")
	require.NoError(t, err)

	var one int
	require.NoError(t, gormDB.Raw("SELECT 1").Scan(&one).Error)
	assert.Equal(t, 1, one)
	assert.Equal(t, "sqlite", gormDB.Name())
}
