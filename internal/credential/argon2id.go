package credential

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/crypto/argon2"
)

const (
	argon2idPrefix = "$argon2id$"
	// digests asking for more memory than this are treated as malformed
	maxArgon2idMemoryKiB = 1 << 20
)

// Argon2idParams configures Argon2id hashing parameters.
type Argon2idParams struct {
	Time        uint32 `yaml:"time"`
	MemoryKiB   uint32 `yaml:"memory_kib"`
	Parallelism uint8  `yaml:"parallelism"`
	KeyLen      uint32 `yaml:"key_len"`
	SaltLen     uint32 `yaml:"salt_len"`
}

// DefaultArgon2idParams returns the parameters used when none are configured.
func DefaultArgon2idParams() Argon2idParams {
	return Argon2idParams{Time: 1, MemoryKiB: 64 * 1024, Parallelism: 4, KeyLen: 32, SaltLen: 16}
}

// Argon2idCodec hashes passwords into PHC-formatted argon2id strings.
type Argon2idCodec struct {
	params Argon2idParams
}

// NewArgon2idCodec returns an argon2id codec; zero params select the defaults.
func NewArgon2idCodec(p Argon2idParams) *Argon2idCodec {
	if p.Time == 0 || p.MemoryKiB == 0 || p.Parallelism == 0 || p.KeyLen == 0 || p.SaltLen == 0 {
		p = DefaultArgon2idParams()
	}
	return &Argon2idCodec{params: p}
}

// Hash returns $argon2id$v=19$m=<mem>,t=<time>,p=<par>$<salt>$<hash> for the trimmed password.
func (c *Argon2idCodec) Hash(plaintext string) (string, error) {
	p := c.params
	salt := make([]byte, p.SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	dk := argon2.IDKey([]byte(strings.TrimSpace(plaintext)), salt, p.Time, p.MemoryKiB, p.Parallelism, p.KeyLen)
	return fmt.Sprintf(
		"%sv=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2idPrefix, argon2.Version, p.MemoryKiB, p.Time, p.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(dk),
	), nil
}

// Verify reports whether plaintext matches digest. Malformed digests never match.
func (c *Argon2idCodec) Verify(plaintext, digest string) bool {
	params, salt, hash, err := parseArgon2id(digest)
	if err != nil {
		return false
	}
	dk := argon2.IDKey(
		[]byte(strings.TrimSpace(plaintext)), salt, params.Time, params.MemoryKiB, params.Parallelism,
		uint32(len(hash)),
	)
	return subtle.ConstantTimeCompare(dk, hash) == 1
}

func parseArgon2id(encoded string) (Argon2idParams, []byte, []byte, error) {
	var out Argon2idParams
	if !strings.HasPrefix(encoded, argon2idPrefix) {
		return out, nil, nil, errors.New("unsupported password hash format")
	}
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 {
		return out, nil, nil, errors.New("invalid argon2id hash format")
	}
	if parts[2] != "v="+strconv.Itoa(argon2.Version) {
		return out, nil, nil, errors.New("unsupported argon2 version")
	}
	for _, kv := range strings.Split(parts[3], ",") {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			return out, nil, nil, errors.Errorf("invalid argon2id parameter '%s'", kv)
		}
		switch key {
		case "m":
			v, err := strconv.ParseUint(value, 10, 32)
			if err != nil {
				return out, nil, nil, errors.Wrap(err, "parse memory")
			}
			out.MemoryKiB = uint32(v)
		case "t":
			v, err := strconv.ParseUint(value, 10, 32)
			if err != nil {
				return out, nil, nil, errors.Wrap(err, "parse time")
			}
			out.Time = uint32(v)
		case "p":
			v, err := strconv.ParseUint(value, 10, 8)
			if err != nil {
				return out, nil, nil, errors.Wrap(err, "parse parallelism")
			}
			out.Parallelism = uint8(v)
		}
	}
	if out.Time == 0 || out.Parallelism == 0 || out.MemoryKiB == 0 || out.MemoryKiB > maxArgon2idMemoryKiB {
		return out, nil, nil, errors.New("invalid argon2id parameters")
	}
	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return out, nil, nil, errors.Wrap(err, "decode salt")
	}
	hash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return out, nil, nil, errors.Wrap(err, "decode hash")
	}
	if len(hash) == 0 {
		return out, nil, nil, errors.New("empty argon2id hash")
	}
	out.SaltLen = uint32(len(salt))
	out.KeyLen = uint32(len(hash))
	return out, salt, hash, nil
}
