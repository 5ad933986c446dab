package version

import "fmt"

const (
	Version = "v0.1.0"

	colorReset     = "\033[0m"
	colorCyanBold  = "\033[36;1m"
	colorGreenBold = "\033[32;1m"
)

// asciiArtTpl returns the ASCII art of nsqlite-mcp.
func asciiArtTpl(color string) string {
	asciiArt := `
    _   _______ ____    __    _ __          __  _____________ 
   / | / / ___// __ \  / /   (_) /____     /  |/  / ____/ __ \
  /  |/ /\__ \/ / / / / /   / / __/ _ \   / /|_/ / /   / /_/ /
 / /|  /___/ / /_/ / / /___/ / /_/  __/  / /  / / /___/ ____/
/_/ |_//____/\___\_\/_____/_/\__/\___/  /_/  /_/\____/_/
%s ` + Version + `
For more information visit https://github.com/nsqlite/nsqlite-mcp`

	asciiArt = asciiArt[1:] // This just removes the first newline character
	return color + asciiArt + colorReset
}

// ServerVersion returns the version banner of the tool server.
func ServerVersion() string {
	return fmt.Sprintf(asciiArtTpl(colorCyanBold), "Tool Server")
}

// ConsoleVersion returns the version banner of the console.
func ConsoleVersion() string {
	return fmt.Sprintf(asciiArtTpl(colorGreenBold), "Console")
}
