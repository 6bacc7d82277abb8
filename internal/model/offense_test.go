package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateParsing(t *testing.T) {
	d, err := ParseDate("2025-06-09")
	require.NoError(t, err)
	assert.Equal(t, NewDate(2025, time.June, 9), d)
	assert.Equal(t, "2025-06-09", d.String())

	_, err = ParseDate("09/06/2025")
	assert.Error(t, err)
	_, err = ParseDate("2025-13-01")
	assert.Error(t, err)
}

func TestDateJSON(t *testing.T) {
	raw, err := json.Marshal(NewDate(2025, time.June, 9))
	require.NoError(t, err)
	assert.Equal(t, `"2025-06-09"`, string(raw))

	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"2025-06-09"`), &d))
	assert.Equal(t, 9, d.Day())

	assert.Error(t, json.Unmarshal([]byte(`20250609`), &d))
}
