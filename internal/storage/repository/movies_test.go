package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeLike(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain text untouched", input: "drama", want: "drama"},
		{name: "percent escaped", input: "100%", want: `100\%`},
		{name: "underscore escaped", input: "sci_fi", want: `sci\_fi`},
		{name: "backslash escaped first", input: `a\%b`, want: `a\\\%b`},
		{name: "only wildcards", input: "%_%", want: `\%\_\%`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, escapeLike(tt.input))
		})
	}
}
