package transform

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/zoobzio/mapper"
)

// Encryption errors.
var (
	ErrEncrypt          = errors.New("encrypt failed")
	ErrInvalidKeySize   = errors.New("invalid key size")
	ErrCiphertextShort  = errors.New("ciphertext too short")
	ErrDecryptionFailed = errors.New("decryption failed")
)

// Encryptor is reversible encryption of a field value.
type Encryptor interface {
	Encrypt(plaintext []byte) ([]byte, error)
	Decrypt(ciphertext []byte) ([]byte, error)
}

// Encrypt returns a callback that replaces the target field with the
// base64 (standard encoding) ciphertext of its value. Empty values are kept.
func Encrypt[S, T any](field string, enc Encryptor, opts ...Option) mapper.Callback[S, T] {
	cache := resolve(opts)
	return func(_ S, dst *T) error {
		v, err := stringField(cache, dst, field, "encrypt")
		if err != nil {
			return err
		}
		if v.Len() == 0 {
			return nil
		}
		out, err := enc.Encrypt([]byte(v.String()))
		if err != nil {
			return &Error{Err: ErrEncrypt, Field: field, Op: "encrypt", Cause: err}
		}
		v.SetString(base64.StdEncoding.EncodeToString(out))
		return nil
	}
}

// DecryptString reverses a value produced by an Encrypt callback.
func DecryptString(enc Encryptor, value string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDecryptionFailed, err)
	}
	out, err := enc.Decrypt(raw)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	switch len(key) {
	case 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: must be 16, 24, or 32 bytes, got %d", ErrInvalidKeySize, len(key))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// seal returns nonce || ciphertext.
func seal(gcm cipher.AEAD, plaintext []byte) ([]byte, error) {
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

func open(gcm cipher.AEAD, data []byte) ([]byte, error) {
	n := gcm.NonceSize()
	if len(data) < n {
		return nil, ErrCiphertextShort
	}
	out, err := gcm.Open(nil, data[:n], data[n:], nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecryptionFailed, err)
	}
	return out, nil
}

type aesEncryptor struct {
	gcm cipher.AEAD
}

// AES returns an AES-GCM encryptor. The key selects AES-128, AES-192 or
// AES-256 by its length.
func AES(key []byte) (Encryptor, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	return &aesEncryptor{gcm: gcm}, nil
}

func (e *aesEncryptor) Encrypt(plaintext []byte) ([]byte, error) { return seal(e.gcm, plaintext) }
func (e *aesEncryptor) Decrypt(ciphertext []byte) ([]byte, error) { return open(e.gcm, ciphertext) }

const dataKeySize = 32

type envelopeEncryptor struct {
	master cipher.AEAD
}

// Envelope returns an encryptor that seals each value with a fresh AES-256
// data key and stores that key sealed under masterKey in front of the
// payload: [2-byte key length][sealed key][sealed data].
func Envelope(masterKey []byte) (Encryptor, error) {
	gcm, err := newGCM(masterKey)
	if err != nil {
		return nil, err
	}
	return &envelopeEncryptor{master: gcm}, nil
}

func (e *envelopeEncryptor) Encrypt(plaintext []byte) ([]byte, error) {
	dataKey := make([]byte, dataKeySize)
	if _, err := io.ReadFull(rand.Reader, dataKey); err != nil {
		return nil, err
	}
	dataGCM, err := newGCM(dataKey)
	if err != nil {
		return nil, err
	}

	sealedData, err := seal(dataGCM, plaintext)
	if err != nil {
		return nil, err
	}
	sealedKey, err := seal(e.master, dataKey)
	if err != nil {
		return nil, err
	}
	if len(sealedKey) > math.MaxUint16 {
		return nil, errors.New("sealed data key exceeds maximum length")
	}

	out := make([]byte, 2, 2+len(sealedKey)+len(sealedData))
	binary.BigEndian.PutUint16(out, uint16(len(sealedKey))) // #nosec G115 -- bounds checked above
	out = append(out, sealedKey...)
	return append(out, sealedData...), nil
}

func (e *envelopeEncryptor) Decrypt(ciphertext []byte) ([]byte, error) {
	if len(ciphertext) < 2 {
		return nil, ErrCiphertextShort
	}
	keyLen := int(binary.BigEndian.Uint16(ciphertext))
	if len(ciphertext) < 2+keyLen {
		return nil, ErrCiphertextShort
	}

	dataKey, err := open(e.master, ciphertext[2:2+keyLen])
	if err != nil {
		return nil, fmt.Errorf("data key: %w", err)
	}
	dataGCM, err := newGCM(dataKey)
	if err != nil {
		return nil, err
	}
	return open(dataGCM, ciphertext[2+keyLen:])
}
