package clinic

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_JSON(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"2020-01-02"`), &d))
	assert.Equal(t, NewDate(2020, time.January, 2), d)

	require.NoError(t, json.Unmarshal([]byte(`"2020-01-02T23:30:00-03:00"`), &d))
	assert.Equal(t, "2020-01-03", d.String())

	b, err := json.Marshal(NewDate(2021, time.March, 4))
	require.NoError(t, err)
	assert.Equal(t, `"2021-03-04"`, string(b))

	var typeErr *json.UnmarshalTypeError
	assert.ErrorAs(t, json.Unmarshal([]byte(`"02/01/2020"`), &d), &typeErr)
	assert.ErrorAs(t, json.Unmarshal([]byte(`20200102`), &d), &typeErr)
}

func TestDateTime_AcceptsLocalFormLayouts(t *testing.T) {
	for _, in := range []string{"2025-05-01T10:00:00Z", "2025-05-01T10:00:00", "2025-05-01T10:00", "2025-05-01 10:00:00"} {
		dt, err := ParseDateTime(in)
		require.NoError(t, err, in)
		assert.Equal(t, time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC), dt.Time, in)
	}

	dt, err := ParseDateTime("2025-05-01T10:00:00+02:00")
	require.NoError(t, err)
	assert.Equal(t, 8, dt.Hour())

	_, err = ParseDateTime("tomorrow")
	assert.Error(t, err)
}

func TestNullable_DistinguishesAbsentNullAndValue(t *testing.T) {
	var in struct {
		A Nullable[string] `json:"a"`
		B Nullable[string] `json:"b"`
		C Nullable[string] `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"b":null,"c":"x"}`), &in))

	assert.False(t, in.A.Set)
	assert.True(t, in.B.Set)
	assert.False(t, in.B.Valid)
	assert.Equal(t, Some("x"), in.C)

	old := "keep"
	dst := &old
	in.A.Apply(&dst)
	assert.Equal(t, "keep", *dst)
	in.B.Apply(&dst)
	assert.Nil(t, dst)
	in.C.Apply(&dst)
	assert.Equal(t, "x", *dst)
}

func TestRound2AndDecimals(t *testing.T) {
	assert.Equal(t, 0.3, Round2(0.1+0.2))
	assert.Equal(t, 12.35, Round2(12.345000001))
	assert.True(t, hasAtMost2Decimals(45.5))
	assert.True(t, hasAtMost2Decimals(0.1+0.2))
	assert.False(t, hasAtMost2Decimals(1.234))
}

func TestTrimSpace(t *testing.T) {
	a, b := "  x ", "y"
	pa, pb := &a, &b
	var pc *string
	TrimSpace(&pa, &pb, &pc)
	assert.Equal(t, "x", *pa)
	assert.Equal(t, "y", *pb)
	assert.Nil(t, pc)
}
