// Package service holds the glue collaborators around the workflow
// core: OTP verification state and outbound mail
package service

import (
	"crypto/rand"
	"math/big"
	"time"

	"reelup/review-api/internal/apperr"

	"github.com/jellydator/ttlcache/v2"
)

const otpLen = 6

// OTPStore keeps pending email verification codes in memory. Entries
// expire on their own, no sweep goroutine to babysit
type OTPStore struct {
	cache *ttlcache.Cache
	ttl   time.Duration
}

func NewOTPStore(ttl time.Duration) *OTPStore {
	c := ttlcache.NewCache()
	c.SetTTL(ttl)
	// A failed verify attempt must not keep the code alive
	c.SkipTTLExtensionOnHit(true)

	return &OTPStore{
		cache: c,
		ttl:   ttl,
	}
}

// Generate creates a one-time code for the given account, replacing
// any previous one
func (s *OTPStore) Generate(userID string) (string, error) {
	code := make([]byte, otpLen)
	for i := range code {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", apperr.Wrap(apperr.Internal, "failed to generate verification code", err)
		}
		code[i] = byte('0' + n.Int64())
	}

	s.cache.SetWithTTL(userID, string(code), s.ttl)
	return string(code), nil
}

// Verify consumes the code. Single use, a correct code works exactly
// once
func (s *OTPStore) Verify(userID, code string) error {
	v, err := s.cache.Get(userID)
	if err != nil {
		return apperr.New(apperr.InvalidInput, "verification code expired or invalid")
	}

	if v.(string) != code {
		return apperr.New(apperr.InvalidInput, "verification code expired or invalid")
	}

	s.cache.Remove(userID)
	return nil
}

// Close releases the cache's internal timers
func (s *OTPStore) Close() {
	s.cache.Close()
}
