package service

import (
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/blake2b"

	"github.com/afoninsb/api-yamdb/internal/core/domain"
)

// codeSize is the MAC length in bytes; hex-encoded the code is 32 chars.
const codeSize = 16

// CodeIssuer derives confirmation codes as a keyed BLAKE2b MAC over the
// user's identity and mutable state. Codes are never stored: Validate
// recomputes the expected value for the user's *current* state, so any
// incorporated change (activation, epoch bump) retires outstanding codes.
type CodeIssuer struct {
	key [32]byte
}

// NewCodeIssuer builds a CodeIssuer from the server-side secret. The secret
// is hashed down to a fixed-size key so arbitrary-length secrets are fine.
func NewCodeIssuer(secret string) *CodeIssuer {
	return &CodeIssuer{key: blake2b.Sum256([]byte(secret))}
}

// Issue returns the confirmation code for the user's current state.
func (i *CodeIssuer) Issue(u *domain.User) string {
	h, err := blake2b.New(codeSize, i.key[:])
	if err != nil {
		// unreachable: key and size are both within blake2b limits
		panic(err)
	}
	fmt.Fprintf(h, "%s|%s|%d|%t", u.ID, u.Username, u.CodeEpoch, u.Active)
	return hex.EncodeToString(h.Sum(nil))
}

// Validate reports whether code matches the user's current state. A false
// result is an expected outcome, not an error; the comparison is constant
// time.
func (i *CodeIssuer) Validate(u *domain.User, code string) bool {
	expected := i.Issue(u)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(code)) == 1
}
