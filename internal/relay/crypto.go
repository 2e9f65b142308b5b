// Package relay implements the credential relay: a small hardened HTTP API
// that receives encrypted ESPN session tokens from the browser extension,
// persists them, and runs the lineup setup on a daily schedule.
package relay

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/pbkdf2"
)

const (
	minSecretLength  = 32
	pbkdf2Iterations = 210_000
	keyLength        = 32 // AES-256
	defaultWindow    = 5 * time.Minute
)

// ErrStalePayload marks a payload whose timestamp falls outside the accepted
// window (replayed or from a badly skewed clock).
var ErrStalePayload = errors.New("relay: payload timestamp outside accepted window")

// ErrDecrypt marks a payload that failed authenticated decryption.
var ErrDecrypt = errors.New("relay: decryption failed")

// SealedPayload is the wire shape of an encrypted message. The GCM tag is
// embedded in the ciphertext.
type SealedPayload struct {
	Nonce      string `json:"nonce"`
	Ciphertext string `json:"ciphertext"`
}

type envelope struct {
	Timestamp int64           `json:"ts"` // unix seconds
	Body      json.RawMessage `json:"body"`
}

// Codec seals and opens payloads with AES-256-GCM. The key derives from the
// shared secret via PBKDF2-SHA256 with a per-deployment salt; each payload
// carries a fresh random nonce and a timestamp bounded by the replay window.
type Codec struct {
	aead   cipher.AEAD
	window time.Duration
	now    func() time.Time
}

// NewCodec derives the encryption key and prepares the AEAD. The secret must
// be at least 32 characters.
func NewCodec(secret, salt string, window time.Duration) (*Codec, error) {
	if len(secret) < minSecretLength {
		return nil, fmt.Errorf("relay: secret must be at least %d characters", minSecretLength)
	}
	if salt == "" {
		return nil, errors.New("relay: key salt required")
	}
	if window <= 0 {
		window = defaultWindow
	}

	key := pbkdf2.Key([]byte(secret), []byte(salt), pbkdf2Iterations, keyLength, sha256.New)
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	return &Codec{aead: aead, window: window, now: time.Now}, nil
}

// Seal encrypts a JSON-marshalable body with the current timestamp.
func (c *Codec) Seal(body any) (SealedPayload, error) {
	raw, err := json.Marshal(body)
	if err != nil {
		return SealedPayload{}, err
	}
	plain, err := json.Marshal(envelope{Timestamp: c.now().Unix(), Body: raw})
	if err != nil {
		return SealedPayload{}, err
	}

	nonce := make([]byte, c.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return SealedPayload{}, err
	}

	sealed := c.aead.Seal(nil, nonce, plain, nil)
	return SealedPayload{
		Nonce:      hex.EncodeToString(nonce),
		Ciphertext: hex.EncodeToString(sealed),
	}, nil
}

// Open decrypts a sealed payload into out and validates its timestamp
// against the replay window. The payload nonce is returned so callers can
// run a seen-nonce replay check on top.
func (c *Codec) Open(p SealedPayload, out any) (string, error) {
	nonce, err := hex.DecodeString(p.Nonce)
	if err != nil || len(nonce) != c.aead.NonceSize() {
		return "", ErrDecrypt
	}
	sealed, err := hex.DecodeString(p.Ciphertext)
	if err != nil {
		return "", ErrDecrypt
	}

	plain, err := c.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", ErrDecrypt
	}

	var env envelope
	if err := json.Unmarshal(plain, &env); err != nil {
		return "", ErrDecrypt
	}

	age := c.now().Sub(time.Unix(env.Timestamp, 0))
	if age > c.window || age < -c.window {
		return "", ErrStalePayload
	}

	if out != nil {
		if err := json.Unmarshal(env.Body, out); err != nil {
			return "", err
		}
	}
	return p.Nonce, nil
}
