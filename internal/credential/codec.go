// Package credential hashes and verifies account passwords.
package credential

import (
	"strings"

	"github.com/pkg/errors"
)

// Scheme names a password hashing scheme.
type Scheme string

const (
	SchemeBcrypt   Scheme = "bcrypt"
	SchemeArgon2id Scheme = "argon2id"
)

// ErrPasswordTooLong is returned by Hash when the bcrypt scheme cannot take the
// whole password.
var ErrPasswordTooLong = errors.New("password exceeds 72 bytes")

// Codec hashes plaintext passwords and verifies them against stored digests.
type Codec interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) bool
}

// Config selects the scheme used for new digests.
type Config struct {
	Scheme     Scheme
	BcryptCost int
	Argon2id   Argon2idParams
}

// codec writes digests with one scheme and verifies digests of every known scheme.
type codec struct {
	hasher  Codec
	bcrypt  *BcryptCodec
	argon2i *Argon2idCodec
}

// NewCodec builds a Codec from cfg. Verification recognises bcrypt and argon2id
// digests regardless of which scheme is configured for hashing.
func NewCodec(cfg Config) (Codec, error) {
	c := &codec{
		bcrypt:  NewBcryptCodec(cfg.BcryptCost),
		argon2i: NewArgon2idCodec(cfg.Argon2id),
	}
	switch cfg.Scheme {
	case SchemeBcrypt, "":
		c.hasher = c.bcrypt
	case SchemeArgon2id:
		c.hasher = c.argon2i
	default:
		return nil, errors.Errorf("unsupported password hash scheme '%s'", cfg.Scheme)
	}
	return c, nil
}

func (c *codec) Hash(plaintext string) (string, error) {
	return c.hasher.Hash(plaintext)
}

func (c *codec) Verify(plaintext, digest string) bool {
	if strings.HasPrefix(digest, argon2idPrefix) {
		return c.argon2i.Verify(plaintext, digest)
	}
	return c.bcrypt.Verify(plaintext, digest)
}
