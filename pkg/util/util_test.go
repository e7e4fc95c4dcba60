package util

import (
	"errors"
	"fmt"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapErrorf(t *testing.T) {
	orig := errors.New("disk on fire")
	err := WrapErrorf(orig, ErrInternalServerError, "failed to read %s", "graph")

	assert.EqualError(t, err, "failed to read graph: disk on fire")
	assert.ErrorIs(t, err, orig)
	assert.Equal(t, ErrInternalServerError, ErrorCode(err))

	wrapped := fmt.Errorf("loading: %w", err)
	assert.Equal(t, ErrInternalServerError, ErrorCode(wrapped))

	assert.Nil(t, ErrorCode(orig))
	assert.EqualError(t, NewErrorf(ErrBadParamInput, "bad %d", 1), "bad 1")
}

func TestHelpers(t *testing.T) {
	assert.Equal(t, 3.5, Abs(-3.5))
	assert.Equal(t, 4, Abs(4))
	assert.Equal(t, 1.23, RoundFloat(1.23456, 2))
	assert.Equal(t, []int{3, 2, 1}, ReverseG([]int{1, 2, 3}))

	v, err := StringToFloat64(" 2.5 ")
	assert.NoError(t, err)
	assert.Equal(t, 2.5, v)
	_, err = StringToFloat64("x")
	assert.Error(t, err)
}

func TestReadConfigDefaults(t *testing.T) {
	require.NoError(t, ReadConfig())
	assert.Equal(t, 6060, viper.GetInt("API_PORT"))
	assert.Equal(t, 100.0, viper.GetFloat64("SEARCH_RADIUS_M"))
	assert.Equal(t, 0, viper.GetInt("MAX_SETTLED_NODES"))

	t.Setenv("ROUTE_CACHE_SIZE", "16")
	assert.Equal(t, 16, viper.GetInt("ROUTE_CACHE_SIZE"))
}
