// Package commit implements the opponent's move commitment.
//
// Before the human chooses, the opponent publishes HMAC-SHA256(key, move).
// After the human has chosen, the key and move are revealed and anyone can
// recompute the digest to confirm the move was fixed in advance. A plain hash
// would not do here: the move alphabet is tiny, so the digest must depend on
// a secret to be unpredictable.
package commit

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
)

const (
	// DefaultKeyBits is the key length used when none is configured.
	DefaultKeyBits = 256
	// MinKeyBits is the shortest key accepted.
	MinKeyBits = 128
)

var (
	ErrRandomSource   = errors.New("commit: random source unavailable")
	ErrInvalidKeyBits = errors.New("commit: key length must be a multiple of 8 and at least 128 bits")
)

// Commitment binds a secret key to the committed move. Only Digest may be
// shown before the human has chosen.
type Commitment struct {
	Key    string
	Digest string
	Move   string
}

// ValidateKeyBits checks a configured key length.
func ValidateKeyBits(bits int) error {
	if bits < MinKeyBits || bits%8 != 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidKeyBits, bits)
	}
	return nil
}

// GenerateKey reads bits/8 bytes from r and returns them hex encoded. A nil
// reader uses crypto/rand.
func GenerateKey(r io.Reader, bits int) (string, error) {
	if err := ValidateKeyBits(bits); err != nil {
		return "", err
	}
	if r == nil {
		r = rand.Reader
	}

	buf := make([]byte, bits/8)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", fmt.Errorf("%w: %w", ErrRandomSource, err)
	}
	return hex.EncodeToString(buf), nil
}

// ComputeDigest returns the lowercase hex HMAC-SHA256 of message keyed with
// the bytes of key.
func ComputeDigest(key, message string) string {
	mac := hmac.New(sha256.New, []byte(key))
	mac.Write([]byte(message))
	return hex.EncodeToString(mac.Sum(nil))
}

// New generates a fresh key and commits to move with it.
func New(r io.Reader, bits int, move string) (*Commitment, error) {
	key, err := GenerateKey(r, bits)
	if err != nil {
		return nil, err
	}
	return &Commitment{
		Key:    key,
		Digest: ComputeDigest(key, move),
		Move:   move,
	}, nil
}

// Verify recomputes the digest for key and move and compares it with digest
// in constant time. Hex case is ignored.
func Verify(key, move, digest string) bool {
	want, err := hex.DecodeString(digest)
	if err != nil {
		return false
	}
	mac := hmac.New(sha256.New, []byte(key))
	mac.Write([]byte(move))
	return hmac.Equal(mac.Sum(nil), want)
}

// Verify checks the commitment against its own revealed key and move.
func (c *Commitment) Verify() bool {
	return Verify(c.Key, c.Move, c.Digest)
}
