package cryptox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateInvitationCode(t *testing.T) {
	t.Parallel()

	seen := make(map[string]struct{})
	for range 200 {
		code, err := GenerateInvitationCode()
		require.NoError(t, err)
		require.Len(t, code, InvitationCodeLength)

		for _, r := range code {
			require.True(t, strings.ContainsRune(InvitationAlphabet, r), "unexpected rune %q", r)
		}
		seen[code] = struct{}{}
	}

	// 36^6 possibilities; 200 draws colliding more than once means a broken source.
	require.Greater(t, len(seen), 198)
}

func TestGenerateCode_InvalidInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		alphabet string
		n        int
	}{
		{"zero length", InvitationAlphabet, 0},
		{"negative length", InvitationAlphabet, -3},
		{"single letter alphabet", "A", 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateCode(tt.alphabet, tt.n)
			require.Error(t, err)
		})
	}
}
