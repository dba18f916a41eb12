package clients

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeSearch(t *testing.T) {
	cases := map[string]string{
		"José":        "jose",
		"  MÓNICA  ":  "monica",
		"pérez gómez": "perez gomez",
		"plain":       "plain",
		"":            "",
	}
	for input, want := range cases {
		require.Equal(t, want, NormalizeSearch(input), "input %q", input)
	}
}
