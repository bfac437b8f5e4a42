package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveOsEnvBool(t *testing.T) {
	t.Setenv("SS_TEST_BOOL", "true")
	v, err := ResolveOsEnvBool("SS_TEST_BOOL", false)
	require.NoError(t, err)
	assert.True(t, v)

	v, err = ResolveOsEnvBool("SS_TEST_BOOL_UNSET", true)
	require.NoError(t, err)
	assert.True(t, v)
}

func TestResolveOsEnvInt(t *testing.T) {
	t.Setenv("SS_TEST_INT", "7")
	v, err := ResolveOsEnvInt("SS_TEST_INT", 1)
	require.NoError(t, err)
	assert.Equal(t, 7, v)

	v, err = ResolveOsEnvInt("SS_TEST_INT_UNSET", 3)
	require.NoError(t, err)
	assert.Equal(t, 3, v)
}

func TestResolveOsEnvDuration(t *testing.T) {
	t.Setenv("SS_TEST_DURATION", "90s")
	v, err := ResolveOsEnvDuration("SS_TEST_DURATION")
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, 90*time.Second, *v)

	v, err = ResolveOsEnvDuration("SS_TEST_DURATION_UNSET")
	require.NoError(t, err)
	assert.Nil(t, v)
}
