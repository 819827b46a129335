package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNum(t *testing.T) {
	cases := []struct {
		in   string
		want *float64
	}{
		{"38.2", f(38.2)},
		{"12", f(12)},
		{"-3.5", f(-3.5)},
		{"0", f(0)},
		{"1e3", f(1000)},
		{"", nil},
		{"abc", nil},
		{"12kg", nil},
		{"NaN", nil},
		{"Inf", nil},
		{"-Inf", nil},
	}
	for _, tc := range cases {
		got := Num(tc.in)
		if tc.want == nil {
			assert.Nil(t, got, "input %q", tc.in)
			continue
		}
		require.NotNil(t, got, "input %q", tc.in)
		assert.Equal(t, *tc.want, *got, "input %q", tc.in)
	}
}

func TestCount(t *testing.T) {
	cases := []struct {
		in   string
		want *int64
	}{
		{"1234", i(1234)},
		{"-7", i(-7)},
		{"12.9", i(12)},
		{"", nil},
		{"steps", nil},
		{"NaN", nil},
	}
	for _, tc := range cases {
		got := Count(tc.in)
		if tc.want == nil {
			assert.Nil(t, got, "input %q", tc.in)
			continue
		}
		require.NotNil(t, got, "input %q", tc.in)
		assert.Equal(t, *tc.want, *got, "input %q", tc.in)
	}
}

func TestWhen(t *testing.T) {
	got := When("2024-05-01T10:30:00Z")
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC), got.UTC())

	got = When("1714559400")
	require.NotNil(t, got)
	assert.Equal(t, time.Unix(1714559400, 0).UTC(), *got)

	assert.Nil(t, When(""))
	assert.Nil(t, When("yesterday"))
}

func TestStr(t *testing.T) {
	assert.Nil(t, Str(""))
	require.NotNil(t, Str("Beagle"))
	assert.Equal(t, "Beagle", *Str("Beagle"))
}

func f(v float64) *float64 { return &v }
func i(v int64) *int64     { return &v }
