package mem

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResetTokensSingleUse(t *testing.T) {
	s := NewResetTokens()
	s.Set("tok", "dara@example.com", time.Minute)

	email, ok := s.Peek("tok")
	assert.True(t, ok)
	assert.Equal(t, "dara@example.com", email)

	// Peek does not consume.
	_, ok = s.Peek("tok")
	assert.True(t, ok)

	assert.Equal(t, "dara@example.com", s.Consume("tok"))
	assert.Equal(t, "", s.Consume("tok"))
}

func TestResetTokensExpiry(t *testing.T) {
	s := NewResetTokens()
	s.Set("tok", "dara@example.com", -time.Second)

	_, ok := s.Peek("tok")
	assert.False(t, ok)
	assert.Equal(t, "", s.Consume("tok"))
}
