package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatLapTime(t *testing.T) {
	tests := []struct {
		name    string
		seconds string
		want    string
	}{
		{"typical lap", "108.656", "1:48.656"},
		{"sub minute", "59.999", "0:59.999"},
		{"exact minute", "60", "1:00.000"},
		{"long lap", "16200.623", "270:00.623"},
		{"rounding", "95.1234", "1:35.123"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			arg, _ := decimal.NewFromString(tt.seconds)
			assert.Equal(t, tt.want, FormatLapTime(arg))
		})
	}
}

func TestMedian(t *testing.T) {
	mk := func(args ...string) []decimal.Decimal {
		ret := make([]decimal.Decimal, 0, len(args))
		for _, a := range args {
			d, _ := decimal.NewFromString(a)
			ret = append(ret, d)
		}
		return ret
	}

	assert.True(t, median(mk("100")).Equal(decimal.NewFromInt(100)))
	assert.True(t, median(mk("100", "102", "110")).Equal(decimal.NewFromInt(102)))
	assert.True(t, median(mk("100", "102")).Equal(decimal.NewFromInt(101)))
}
