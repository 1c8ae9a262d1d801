package csv

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLapTime(t *testing.T) {
	tests := []struct {
		name    string
		arg     string
		want    string
		wantErr bool
	}{
		{"minutes", "1:48.656", "108.656", false},
		{"hours", "4:30:00.623", "16200.623", false},
		{"zero minutes", "0:59.999", "59.999", false},
		{"no separator", "108.656", "", true},
		{"too many parts", "1:2:3:4.5", "", true},
		{"non-numeric minutes", "ab:12.345", "", true},
		{"non-numeric seconds", "1:xx.345", "", true},
		{"blank", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLapTime(tt.arg)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrMalformedLapTime))
				return
			}
			require.NoError(t, err)
			want, _ := decimal.NewFromString(tt.want)
			assert.True(t, got.Equal(want), "got %s, want %s", got, want)
		})
	}
}

func TestParseLargeSectorTime(t *testing.T) {
	tests := []struct {
		name    string
		arg     string
		want    string
		wantErr bool
	}{
		{"valid", "1:48.656", "108.656", false},
		{"hour component rejected", "1:30:00.623", "", true},
		{"blank", "", "", true},
		{"non-numeric", "x:12.3", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLargeSectorTime(tt.arg)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrMalformedSectorTime))
				return
			}
			require.NoError(t, err)
			want, _ := decimal.NewFromString(tt.want)
			assert.True(t, got.Equal(want), "got %s, want %s", got, want)
		})
	}
}

func TestParseElapsedSeconds(t *testing.T) {
	tests := []struct {
		name    string
		arg     string
		want    string
		wantErr bool
	}{
		{"two parts", "15:24.428000", "924.428", false},
		{"three parts", "2:05:01.123456", "7501.123456", false},
		{"single part", "924", "", true},
		{"non-numeric", "a:b.c", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseElapsedSeconds(tt.arg)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrMalformedElapsedTime))
				return
			}
			require.NoError(t, err)
			want, _ := decimal.NewFromString(tt.want)
			assert.True(t, got.Equal(want), "got %s, want %s", got, want)
		})
	}
}

func TestReconstructTimestamp(t *testing.T) {
	sessionStart := time.Date(2024, 1, 27, 13, 0, 0, 0, time.UTC)

	t.Run("same day", func(t *testing.T) {
		elapsed, _ := decimal.NewFromString("924.428")
		got, err := ReconstructTimestamp("15:24.428", elapsed, sessionStart)
		require.NoError(t, err)
		want := time.Date(2024, 1, 27, 13, 15, 24, 428000000, time.UTC)
		assert.True(t, got.Equal(want), "got %s, want %s", got, want)
	})

	t.Run("midnight rollover", func(t *testing.T) {
		// 13 hours into the race the clock reads just past 2am next day
		elapsed, _ := decimal.NewFromString("46923.717")
		got, err := ReconstructTimestamp("2:02:03.717", elapsed, sessionStart)
		require.NoError(t, err)
		want := time.Date(2024, 1, 28, 2, 2, 3, 717000000, time.UTC)
		assert.True(t, got.Equal(want), "got %s, want %s", got, want)
	})

	t.Run("beyond 24h elapsed", func(t *testing.T) {
		elapsed, _ := decimal.NewFromString("90000")
		got, err := ReconstructTimestamp("14:00:00.000", elapsed, sessionStart)
		require.NoError(t, err)
		want := time.Date(2024, 1, 28, 14, 0, 0, 0, time.UTC)
		assert.True(t, got.Equal(want), "got %s, want %s", got, want)
	})

	t.Run("malformed", func(t *testing.T) {
		elapsed := decimal.NewFromInt(10)
		_, err := ReconstructTimestamp("garbage", elapsed, sessionStart)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrMalformedTimestamp))
	})
}

func TestIntOrNil(t *testing.T) {
	assert.Nil(t, IntOrNil(""))
	assert.Nil(t, IntOrNil("  "))
	assert.Nil(t, IntOrNil("abc"))
	if got := IntOrNil(" 42 "); assert.NotNil(t, got) {
		assert.Equal(t, 42, *got)
	}
}

func TestDecimalOrNil(t *testing.T) {
	assert.Nil(t, DecimalOrNil(""))
	assert.Nil(t, DecimalOrNil("n/a"))
	if got := DecimalOrNil("183.944"); assert.NotNil(t, got) {
		want, _ := decimal.NewFromString("183.944")
		assert.True(t, got.Equal(want))
	}
}
