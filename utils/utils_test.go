package utils

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSlug(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Augustus of Prima Porta", "augustus-of-prima-porta"},
		{"Venus de Milo (réplica)", "venus-de-milo-replica"},
		{"  --Weird__Name!!  ", "weird-name"},
		{"ÀÉÎÕÜ", "aeiou"},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, GenerateSlug(tc.in), "input %q", tc.in)
	}
}

func TestParseFloatQuery(t *testing.T) {
	t.Run("empty means absent", func(t *testing.T) {
		v, err := ParseFloatQuery("")
		require.NoError(t, err)
		assert.Nil(t, v)
	})

	t.Run("parses a valid number", func(t *testing.T) {
		v, err := ParseFloatQuery("199.99")
		require.NoError(t, err)
		require.NotNil(t, v)
		assert.Equal(t, 199.99, *v)
	})

	t.Run("rejects junk", func(t *testing.T) {
		_, err := ParseFloatQuery("cheap")
		assert.Error(t, err)
	})
}

func TestParseIntDefault(t *testing.T) {
	assert.Equal(t, 10, ParseIntDefault("", 10))
	assert.Equal(t, 3, ParseIntDefault("3", 10))
	assert.Equal(t, 10, ParseIntDefault("abc", 10))
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.NoError(t, CheckPassword(hash, "s3cret-pass"))
	assert.Error(t, CheckPassword(hash, "wrong-pass"))
}

func TestAccessTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateAccessToken("user-1", "admin@example.com", "ADMIN", 15*time.Minute)
	require.NoError(t, err)

	claims, err := ValidateToken(token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.Equal(t, "ADMIN", claims.Role)

	t.Run("wrong secret fails", func(t *testing.T) {
		_, err := ValidateToken(token, "other-secret")
		assert.Error(t, err)
	})
}

func TestUploadPath(t *testing.T) {
	t.Setenv("UPLOAD_DIR", t.TempDir())

	t.Run("known directories resolve", func(t *testing.T) {
		for _, dir := range UploadDirectories {
			p, err := UploadPath(dir)
			require.NoError(t, err)
			assert.Contains(t, p, dir)
		}
	})

	t.Run("unknown and traversal directories are rejected", func(t *testing.T) {
		for _, dir := range []string{"secrets", "../etc", "products/../..", ""} {
			_, err := UploadPath(dir)
			assert.Error(t, err, "dir %q", dir)
		}
	})
}

func TestSafeFileName(t *testing.T) {
	name := SafeFileName("Côte d'Azur Photo.JPG")

	re := regexp.MustCompile(`^\d+-[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}-cote-d-azur-photo\.jpg$`)
	assert.Regexp(t, re, name)

	t.Run("unusable stem falls back", func(t *testing.T) {
		name := SafeFileName("....png")
		assert.Contains(t, name, "-file.png")
	})

	t.Run("names are unique", func(t *testing.T) {
		assert.NotEqual(t, SafeFileName("a.png"), SafeFileName("a.png"))
	})
}
