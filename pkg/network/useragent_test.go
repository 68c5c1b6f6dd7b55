package network

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomUserAgentStartsWithMozilla(t *testing.T) {
	for i := 0; i < 50; i++ {
		ua := RandomUserAgent()
		require.True(t, strings.HasPrefix(ua, "Mozilla/5.0"), "UA must start with Mozilla/5.0, got: %s", ua)
		assert.Greater(t, len(ua), 40)
	}
}

func TestRandomDesktopUserAgentMentionsKnownOS(t *testing.T) {
	for i := 0; i < 50; i++ {
		ua := RandomDesktopUserAgent()
		assert.True(t,
			strings.Contains(ua, "Windows NT") || strings.Contains(ua, "Macintosh") || strings.Contains(ua, "Linux"),
			"desktop UA must mention Windows/macOS/Linux: %s", ua,
		)
	}
}

func TestRandomMobileUserAgentMentionsKnownOS(t *testing.T) {
	for i := 0; i < 50; i++ {
		ua := RandomMobileUserAgent()
		assert.True(t,
			strings.Contains(ua, "Android") || strings.Contains(ua, "iPhone") || strings.Contains(ua, "iPad"),
			"mobile UA must mention Android/iPhone/iPad: %s", ua,
		)
	}
}

func TestDotify(t *testing.T) {
	assert.Equal(t, "17.4", dotify("17_4"))
	assert.Equal(t, "10.0", dotify("10_0"))
}
