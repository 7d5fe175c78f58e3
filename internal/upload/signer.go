package upload

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"
)

// Signer issues short-lived HMAC signatures that let the browser upload
// directly to the media CDN without the API ever touching file bytes.
type Signer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// Signature is everything the client needs to authorize one upload.
type Signature struct {
	Timestamp int64  `json:"timestamp"`
	ExpiresAt int64  `json:"expiresAt"`
	Signature string `json:"signature"`
}

func NewSigner(secret string, ttl time.Duration) *Signer {
	return &Signer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (s *Signer) Sign() Signature {
	issued := s.now().UTC()
	expires := issued.Add(s.ttl)
	return Signature{
		Timestamp: issued.Unix(),
		ExpiresAt: expires.Unix(),
		Signature: s.mac(issued.Unix(), expires.Unix()),
	}
}

// Verify checks the mac and the expiry. Used by tests and by any future
// server-side upload proxy.
func (s *Signer) Verify(sig Signature) bool {
	if s.now().UTC().Unix() > sig.ExpiresAt {
		return false
	}
	expected := s.mac(sig.Timestamp, sig.ExpiresAt)
	return hmac.Equal([]byte(expected), []byte(sig.Signature))
}

func (s *Signer) mac(issued, expires int64) string {
	mac := hmac.New(sha256.New, s.secret)
	fmt.Fprint(mac, strconv.FormatInt(issued, 10), ":", strconv.FormatInt(expires, 10))
	return hex.EncodeToString(mac.Sum(nil))
}
