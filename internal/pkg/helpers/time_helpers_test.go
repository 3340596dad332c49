package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("05-09-2019")
	require.NoError(t, err)
	assert.Equal(t, time.September, d.Month())
	assert.Equal(t, 5, d.Day())
	assert.Equal(t, "05-09-2019", FormatDate(d))

	for _, bad := range []string{"2019-09-05", "31-02-2020", "5/9/2019", ""} {
		_, err := ParseDate(bad)
		assert.Error(t, err, bad)
	}
}

func TestNormalizeDate(t *testing.T) {
	cases := map[string]string{
		"05-09-2019": "05-09-2019",
		"5/9/2019":   "05-09-2019",
		"2019-09-05": "05-09-2019",
	}
	for in, want := range cases {
		got, err := NormalizeDate(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := NormalizeDate("yesterday")
	assert.Error(t, err)
}

func TestParseDurationFallback(t *testing.T) {
	assert.Equal(t, 2*time.Hour, ParseDuration("2h", time.Minute))
	assert.Equal(t, time.Minute, ParseDuration("soon", time.Minute))
}
