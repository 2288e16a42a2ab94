package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

const (
	ansiReset  = "\x1b[0m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
)

const statusLabelWidth = 12

// renderCoverLine prints "label: [OK] detail" for a hit and "[MISS]" otherwise.
func renderCoverLine(label string, found bool, detail string, colorize bool) string {
	tag, color := "MISS", ansiYellow
	if found {
		tag, color = "OK", ansiGreen
	}
	line := fmt.Sprintf("%-*s [%s] %s", statusLabelWidth, label+":", tag, detail)
	if colorize {
		return color + line + ansiReset
	}
	return line
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
