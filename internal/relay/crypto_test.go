package relay

import (
	"errors"
	"strings"
	"testing"
	"time"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestCodec(t *testing.T) *Codec {
	t.Helper()
	codec, err := NewCodec(testSecret, "test-salt", 5*time.Minute)
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}
	return codec
}

func TestCodecSealOpenRoundtrip(t *testing.T) {
	codec := newTestCodec(t)

	sealed, err := codec.Seal(map[string]string{"ping": "pong"})
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}

	var out map[string]string
	nonce, err := codec.Open(sealed, &out)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if out["ping"] != "pong" {
		t.Errorf("body = %v, want ping=pong", out)
	}
	if nonce != sealed.Nonce {
		t.Errorf("returned nonce %q, want %q", nonce, sealed.Nonce)
	}
}

func TestCodecRejectsStaleTimestamp(t *testing.T) {
	codec := newTestCodec(t)

	base := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)
	codec.now = func() time.Time { return base }
	sealed, err := codec.Seal(map[string]string{"ping": "pong"})
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}

	codec.now = func() time.Time { return base.Add(6 * time.Minute) }
	if _, err := codec.Open(sealed, nil); !errors.Is(err, ErrStalePayload) {
		t.Errorf("Open error = %v, want ErrStalePayload", err)
	}
}

func TestCodecRejectsWrongKey(t *testing.T) {
	codec := newTestCodec(t)
	other, err := NewCodec(strings.Repeat("x", 32), "test-salt", 5*time.Minute)
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}

	sealed, err := codec.Seal(map[string]string{"ping": "pong"})
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	if _, err := other.Open(sealed, nil); !errors.Is(err, ErrDecrypt) {
		t.Errorf("Open error = %v, want ErrDecrypt", err)
	}
}

func TestCodecRejectsCorruptCiphertext(t *testing.T) {
	codec := newTestCodec(t)

	sealed, err := codec.Seal(map[string]string{"ping": "pong"})
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	sealed.Ciphertext = "zz" + sealed.Ciphertext[2:]
	if _, err := codec.Open(sealed, nil); !errors.Is(err, ErrDecrypt) {
		t.Errorf("Open error = %v, want ErrDecrypt", err)
	}
}

func TestNewCodecRejectsShortSecret(t *testing.T) {
	if _, err := NewCodec("too-short", "salt", 0); err == nil {
		t.Fatal("expected error for short secret")
	}
}

func TestNewCodecRequiresSalt(t *testing.T) {
	if _, err := NewCodec(testSecret, "", 0); err == nil {
		t.Fatal("expected error for empty salt")
	}
}
