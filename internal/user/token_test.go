package user

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestIssueAndVerify(t *testing.T) {
	m := NewTokenManager("test-secret")
	u := &User{ID: 42, Email: "bob@x.com"}

	token, err := m.Issue(u)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := m.Verify(token)
	assert.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "bob@x.com", claims.Email)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	issuer := NewTokenManager("secret-one")
	verifier := NewTokenManager("secret-two")

	token, err := issuer.Issue(&User{ID: 1, Email: "a@b.c"})
	assert.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	m := NewTokenManager("test-secret")

	_, err := m.Verify("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenExpiryBoundary(t *testing.T) {
	issuedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	m := NewTokenManager("test-secret")
	m.now = fixedClock(issuedAt)

	token, err := m.Issue(&User{ID: 7, Email: "bob@x.com"})
	assert.NoError(t, err)

	// Just inside the 2-hour window.
	m.now = fixedClock(issuedAt.Add(119 * time.Minute))
	claims, err := m.Verify(token)
	assert.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)

	// Just past it.
	m.now = fixedClock(issuedAt.Add(121 * time.Minute))
	_, err = m.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
