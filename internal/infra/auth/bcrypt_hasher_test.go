package auth

import (
	"testing"

	"showreel/config"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

// testCost keeps bcrypt fast in tests while exercising the real algorithm.
const testCost = bcrypt.MinCost

func TestBcryptHasher_HashRoundTrip(t *testing.T) {
	hasher := NewBcryptHasherWithCost(testCost)

	password := "testPassword123"
	hash, err := hasher.Hash(password)
	assert.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, password, hash)

	assert.True(t, hasher.Check(password, hash))
}

func TestBcryptHasher_HashIsNonDeterministic(t *testing.T) {
	hasher := NewBcryptHasherWithCost(testCost)

	password := "testPassword123"
	first, err := hasher.Hash(password)
	assert.NoError(t, err)
	second, err := hasher.Hash(password)
	assert.NoError(t, err)

	// Fresh salt per call: the hashes differ, yet both verify.
	assert.NotEqual(t, first, second)
	assert.True(t, hasher.Check(password, first))
	assert.True(t, hasher.Check(password, second))
}

func TestBcryptHasher_Check(t *testing.T) {
	hasher := NewBcryptHasherWithCost(testCost)

	hash, err := hasher.Hash("testPassword123")
	assert.NoError(t, err)

	assert.True(t, hasher.Check("testPassword123", hash))
	assert.False(t, hasher.Check("wrongPassword", hash))
	assert.False(t, hasher.Check("", hash))

	// A malformed hash degrades to false, it never panics.
	assert.False(t, hasher.Check("testPassword123", "not-a-bcrypt-hash"))
	assert.False(t, hasher.Check("testPassword123", ""))
}

func TestBcryptHasher_CostFromConfig(t *testing.T) {
	cfg := &config.Config{Auth: &config.AuthConfig{BcryptCost: bcrypt.MinCost}}
	hasher := NewBcryptHasher(cfg)

	hash, err := hasher.Hash("testPassword123")
	assert.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	assert.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)
}

func TestBcryptHasher_DefaultCost(t *testing.T) {
	hasher := NewBcryptHasher(&config.Config{})

	impl, ok := hasher.(*bcryptHasher)
	assert.True(t, ok)
	assert.Equal(t, bcrypt.DefaultCost, impl.cost)
}
