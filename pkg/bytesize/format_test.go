package bytesize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name  string
		input int64
		want  string
	}{
		{name: "zero", input: 0, want: "0 B"},
		{name: "bytes", input: 512, want: "512 B"},
		{name: "just below a kibibyte", input: 1023, want: "1023 B"},
		{name: "one kibibyte", input: 1024, want: "1.0 KiB"},
		{name: "fractional", input: 1536, want: "1.5 KiB"},
		{name: "mebibytes", input: 512 * 1024 * 1024, want: "512.0 MiB"},
		{name: "gibibytes", input: 3 * 1024 * 1024 * 1024, want: "3.0 GiB"},
		{name: "rounds up to next unit", input: 1024*1024 - 1, want: "1.0 MiB"},
		{name: "negative", input: -2048, want: "-2.0 KiB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.input))
		})
	}
}
