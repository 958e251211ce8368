package textutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeToken(t *testing.T) {
	cases := []struct {
		in       string
		expected string
	}{
		{in: "  Infantil ", expected: "INFANTIL"},
		{in: "ped", expected: "PED"},
		{in: "\n\tURGENCIA\n", expected: "URGENCIA"},
		{in: "", expected: ""},
	}
	for _, test := range cases {
		require.Equal(t, test.expected, NormalizeToken(test.in))
	}
}

func TestCollapseWhitespace(t *testing.T) {
	require.Equal(t, "Juan Perez Soto", CollapseWhitespace("  Juan \n  Perez\tSoto "))
}

func TestContainsFold(t *testing.T) {
	require.True(t, ContainsFold("Subunidad Pediatria", "PEDIATRIA"))
	require.True(t, ContainsFold("PEDIATRIA", "pediatria"))
	require.False(t, ContainsFold("Adulto", "PEDIATRIA"))
}
