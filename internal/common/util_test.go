package common

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeRandHexString(t *testing.T) {
	s, err := MakeRandHexString(16)
	require.NoError(t, err)
	assert.Len(t, s, 32)
	_, err = hex.DecodeString(s)
	assert.NoError(t, err)

	empty, err := MakeRandHexString(0)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestGenerateRandByteArray(t *testing.T) {
	b := GenerateRandByteArray(24)
	assert.Len(t, b, 24)
}

func TestWipeByteArray(t *testing.T) {
	buf := []byte{1, 2, 3}
	WipeByteArray(buf)
	assert.Equal(t, []byte{0, 0, 0}, buf)

	WipeByteArray(nil)
}

func TestSessionKeys_CoverEveryPersistedKey(t *testing.T) {
	want := []string{
		KeyUserToken, KeyUserLoggedIn, KeyCachedUser,
		KeyCachedTasks, KeyTasksActiveTab, KeySettingsActiveTab,
	}
	assert.ElementsMatch(t, want, SessionKeys)
}
