package version

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBanners(t *testing.T) {
	server := ServerVersion()
	assert.Contains(t, server, "Tool Server "+Version)
	assert.True(t, strings.HasPrefix(server, colorCyanBold))
	assert.True(t, strings.HasSuffix(server, colorReset))

	console := ConsoleVersion()
	assert.Contains(t, console, "Console "+Version)
	assert.NotContains(t, console, "%s")
}
