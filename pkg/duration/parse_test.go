package duration

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Duration
		wantErr bool
	}{
		{name: "bare seconds", input: "3600", want: time.Hour},
		{name: "zero", input: "0", want: 0},
		{name: "padded seconds", input: " 90 ", want: 90 * time.Second},
		{name: "go duration", input: "6h", want: 6 * time.Hour},
		{name: "go compound", input: "1h30m", want: 90 * time.Minute},
		{name: "days", input: "1d", want: Day},
		{name: "weeks and days", input: "2w3d", want: 2*Week + 3*Day},
		{name: "month", input: "1M", want: Month},
		{name: "year and months", input: "1y6M", want: Year + 6*Month},
		{name: "day and hours", input: "1d12h", want: Day + 12*time.Hour},
		{name: "minutes stay minutes", input: "30m", want: 30 * time.Minute},

		{name: "empty", input: "", wantErr: true},
		{name: "negative seconds", input: "-5", wantErr: true},
		{name: "negative go duration", input: "-1h", wantErr: true},
		{name: "garbage", input: "soon", wantErr: true},
		{name: "unknown unit", input: "5x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSeconds(t *testing.T) {
	got, err := Seconds("", 10*time.Second)
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, got)

	got, err = Seconds("30", 10*time.Second)
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, got)

	_, err = Seconds("abc", 10*time.Second)
	assert.Error(t, err)
}
