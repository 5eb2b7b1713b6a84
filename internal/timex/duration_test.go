package timex

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDuration_JSON(t *testing.T) {
	var v struct {
		A Duration `json:"a"`
		B Duration `json:"b"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":"30s","b":1000000000}`), &v))
	assert.Equal(t, 30*time.Second, v.A.Duration)
	assert.Equal(t, time.Second, v.B.Duration)

	out, err := json.Marshal(v.A)
	require.NoError(t, err)
	assert.JSONEq(t, `"30s"`, string(out))
}

func TestDuration_InvalidJSON(t *testing.T) {
	var d Duration
	assert.Error(t, json.Unmarshal([]byte(`true`), &d))
	assert.Error(t, json.Unmarshal([]byte(`"soon"`), &d))
}

func TestDuration_TOML(t *testing.T) {
	var v struct {
		Poll Duration `toml:"poll"`
	}
	_, err := toml.Decode(`poll = "45s"`, &v)
	require.NoError(t, err)
	assert.Equal(t, 45*time.Second, v.Poll.Duration)
}
