package sysutil

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
)

// ansiClear moves the cursor home and clears the screen.
const ansiClear = "\033[H\033[2J"

// ClearTerminal clears the terminal screen behind w.
//
// When w is the process stdout the platform command is used (cls or clear),
// otherwise or when that command fails the ANSI escape sequence is written.
func ClearTerminal(w io.Writer) {
	if w == os.Stdout && clearCommand() == nil {
		return
	}
	_, _ = fmt.Fprint(w, ansiClear)
}

func clearCommand() error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("cmd", "/c", "cls")
	case "linux", "darwin", "freebsd", "openbsd":
		cmd = exec.Command("clear")
	default:
		return fmt.Errorf("no clear command for %s", runtime.GOOS)
	}
	cmd.Stdout = os.Stdout
	return cmd.Run()
}
