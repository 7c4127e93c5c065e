package credential

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testArgon2idParams() Argon2idParams {
	return Argon2idParams{Time: 1, MemoryKiB: 1024, Parallelism: 1, KeyLen: 32, SaltLen: 16}
}

func TestCodec_HashAndVerify(t *testing.T) {
	tests := []struct {
		name   string
		scheme Scheme
		prefix string
	}{
		{name: "bcrypt", scheme: SchemeBcrypt, prefix: "$2a$"},
		{name: "argon2id", scheme: SchemeArgon2id, prefix: "$argon2id$v=19$"},
		{name: "default scheme", scheme: "", prefix: "$2a$"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			codec, err := NewCodec(Config{Scheme: tt.scheme, BcryptCost: bcrypt.MinCost, Argon2id: testArgon2idParams()})
			require.NoError(t, err)

			digest, err := codec.Hash("s3cret")
			require.NoError(t, err)
			assert.True(t, len(digest) > len(tt.prefix))
			assert.Equal(t, tt.prefix, digest[:len(tt.prefix)])
			assert.NotContains(t, digest, "s3cret")

			assert.True(t, codec.Verify("s3cret", digest))
			assert.True(t, codec.Verify("  s3cret ", digest))
			assert.False(t, codec.Verify("wrong", digest))

			again, err := codec.Hash("s3cret")
			require.NoError(t, err)
			assert.NotEqual(t, digest, again, "digests must be salted")
		})
	}
}

func TestCodec_VerifiesEitherScheme(t *testing.T) {
	bc := NewBcryptCodec(bcrypt.MinCost)
	ac := NewArgon2idCodec(testArgon2idParams())

	bDigest, err := bc.Hash("pw")
	require.NoError(t, err)
	aDigest, err := ac.Hash("pw")
	require.NoError(t, err)

	codec, err := NewCodec(Config{Scheme: SchemeArgon2id, Argon2id: testArgon2idParams()})
	require.NoError(t, err)
	assert.True(t, codec.Verify("pw", bDigest))
	assert.True(t, codec.Verify("pw", aDigest))
}

func TestCodec_MalformedDigest(t *testing.T) {
	codec, err := NewCodec(Config{Scheme: SchemeBcrypt, BcryptCost: bcrypt.MinCost})
	require.NoError(t, err)

	for _, digest := range []string{
		"",
		"plaintext",
		"$2a$10$short",
		"$argon2id$",
		"$argon2id$v=19$m=1024,t=1,p=0$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=1024,t=0,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=18$m=1024,t=1,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=1024,t=1,p=1$!!!$aGFzaA",
		"$argon2id$v=19$m=1024,t=1,p=1$c2FsdA$",
		"$argon2id$v=19$m=99999999,t=1,p=1$c2FsdA$aGFzaA",
	} {
		assert.NotPanics(t, func() {
			assert.False(t, codec.Verify("pw", digest), digest)
		})
	}
}

func TestNewCodec_UnknownScheme(t *testing.T) {
	_, err := NewCodec(Config{Scheme: "md5"})
	assert.Error(t, err)
}

func TestBcryptCodec_PasswordTooLong(t *testing.T) {
	codec := NewBcryptCodec(bcrypt.MinCost)

	_, err := codec.Hash(strings.Repeat("x", 80))
	assert.ErrorIs(t, err, ErrPasswordTooLong)

	digest, err := codec.Hash(strings.Repeat("x", 72))
	require.NoError(t, err)
	assert.True(t, codec.Verify(strings.Repeat("x", 72), digest))

	argon := NewArgon2idCodec(testArgon2idParams())
	_, err = argon.Hash(strings.Repeat("x", 80))
	assert.NoError(t, err, "argon2id has no length limit")
}
