package upload

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSigner(t *testing.T) {
	t.Run("sign then verify", func(t *testing.T) {
		s := NewSigner("secret", time.Minute)
		sig := s.Sign()
		assert.True(t, s.Verify(sig))
	})

	t.Run("different secret fails", func(t *testing.T) {
		sig := NewSigner("secret", time.Minute).Sign()
		other := NewSigner("other", time.Minute)
		assert.False(t, other.Verify(sig))
	})

	t.Run("tampered timestamp fails", func(t *testing.T) {
		s := NewSigner("secret", time.Minute)
		sig := s.Sign()
		sig.Timestamp++
		assert.False(t, s.Verify(sig))
	})

	t.Run("expired signature fails", func(t *testing.T) {
		s := NewSigner("secret", time.Minute)
		sig := s.Sign()

		s.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
		assert.False(t, s.Verify(sig))
	})
}
