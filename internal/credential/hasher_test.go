package credential

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var hexDigest = regexp.MustCompile(`^[0-9a-f]{64}$`)

func TestSHA256Hasher_Digest(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     string
	}{
		{
			name:     "known vector",
			password: "password",
			want:     "5e884898da28047151d0e56f8dc6292773603d0d6aabbdd62a11ef721d1542d8",
		},
		{
			name:     "unicode input",
			password: "pässwörd",
			want:     "46970bef70aced8123f0d5d094717e2a5cd412041e03b26376049fe65b2834a4",
		},
	}

	hasher := NewSHA256Hasher()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := hasher.Digest(tt.password)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSHA256Hasher_Deterministic(t *testing.T) {
	hasher := NewSHA256Hasher()

	first, err := hasher.Digest("correct horse battery staple")
	require.NoError(t, err)
	second, err := hasher.Digest("correct horse battery staple")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Regexp(t, hexDigest, first)
}

func TestSHA256Hasher_DistinctInputs(t *testing.T) {
	hasher := NewSHA256Hasher()

	a, err := hasher.Digest("one")
	require.NoError(t, err)
	b, err := hasher.Digest("two")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.Len(t, a, 64)
	assert.Len(t, b, 64)
}
