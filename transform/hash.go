package transform

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/zoobzio/mapper"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

// Hasher performs one-way hashing.
type Hasher interface {
	// Hash returns the encoded hash of plaintext.
	Hash(plaintext []byte) (string, error)
}

// Hash returns a callback that replaces the target field with its hash.
func Hash[S, T any](field string, h Hasher, opts ...Option) mapper.Callback[S, T] {
	cache := resolve(opts)
	return func(_ S, dst *T) error {
		v, err := stringField(cache, dst, field, "hash")
		if err != nil {
			return err
		}
		if v.Len() == 0 {
			return nil
		}
		sum, err := h.Hash([]byte(v.String()))
		if err != nil {
			return &Error{Err: ErrHash, Field: field, Op: "hash", Cause: err}
		}
		v.SetString(sum)
		return nil
	}
}

// Argon2Params configures Argon2id hashing.
type Argon2Params struct {
	Time    uint32 // Number of iterations
	Memory  uint32 // Memory usage in KiB
	Threads uint8  // Parallelism factor
	KeyLen  uint32 // Output key length
	SaltLen uint32 // Salt length
}

// DefaultArgon2Params returns the OWASP-recommended Argon2id parameters.
func DefaultArgon2Params() Argon2Params {
	return Argon2Params{
		Time:    1,
		Memory:  64 * 1024,
		Threads: 4,
		KeyLen:  32,
		SaltLen: 16,
	}
}

type argon2Hasher struct {
	params Argon2Params
}

// Argon2 returns an Argon2id hasher with default parameters.
func Argon2() Hasher {
	return Argon2WithParams(DefaultArgon2Params())
}

// Argon2WithParams returns an Argon2id hasher with custom parameters.
func Argon2WithParams(params Argon2Params) Hasher {
	return &argon2Hasher{params: params}
}

// Hash encodes as $argon2id$v=19$m=<memory>,t=<time>,p=<threads>$<salt>$<hash>.
func (h *argon2Hasher) Hash(plaintext []byte) (string, error) {
	salt := make([]byte, h.params.SaltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	key := argon2.IDKey(plaintext, salt, h.params.Time, h.params.Memory, h.params.Threads, h.params.KeyLen)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		h.params.Memory,
		h.params.Time,
		h.params.Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

type bcryptHasher struct {
	cost int
}

// Bcrypt returns a bcrypt hasher with the default cost.
func Bcrypt() Hasher {
	return BcryptWithCost(bcrypt.DefaultCost)
}

// BcryptWithCost returns a bcrypt hasher with a specific cost factor.
func BcryptWithCost(cost int) Hasher {
	return &bcryptHasher{cost: cost}
}

func (h *bcryptHasher) Hash(plaintext []byte) (string, error) {
	out, err := bcrypt.GenerateFromPassword(plaintext, h.cost)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// HasherFunc adapts a plain function to Hasher.
type HasherFunc func(plaintext []byte) (string, error)

// Hash calls f(plaintext).
func (f HasherFunc) Hash(plaintext []byte) (string, error) {
	return f(plaintext)
}

// SHA256 returns a hex-encoded SHA-256 hasher.
// Use for fingerprinting, not passwords.
func SHA256() Hasher {
	return HasherFunc(func(plaintext []byte) (string, error) {
		sum := sha256.Sum256(plaintext)
		return hex.EncodeToString(sum[:]), nil
	})
}

// SHA512 returns a hex-encoded SHA-512 hasher.
// Use for fingerprinting, not passwords.
func SHA512() Hasher {
	return HasherFunc(func(plaintext []byte) (string, error) {
		sum := sha512.Sum512(plaintext)
		return hex.EncodeToString(sum[:]), nil
	})
}
