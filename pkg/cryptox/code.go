package cryptox

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
)

// InvitationAlphabet is the character set of couple invitation codes.
const InvitationAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// InvitationCodeLength is the length of a couple invitation code.
const InvitationCodeLength = 6

// GenerateCode returns n characters drawn uniformly from alphabet using
// crypto/rand.
func GenerateCode(alphabet string, n int) (string, error) {
	if n <= 0 {
		return "", fmt.Errorf("code length must be positive, got %d", n)
	}
	if len(alphabet) < 2 {
		return "", errors.New("alphabet needs at least two characters")
	}

	limit := big.NewInt(int64(len(alphabet)))
	out := make([]byte, n)
	for i := range out {
		idx, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", fmt.Errorf("failed to generate random code: %w", err)
		}
		out[i] = alphabet[idx.Int64()]
	}
	return string(out), nil
}

// GenerateInvitationCode returns a fresh 6 character A-Z0-9 code.
func GenerateInvitationCode() (string, error) {
	return GenerateCode(InvitationAlphabet, InvitationCodeLength)
}
