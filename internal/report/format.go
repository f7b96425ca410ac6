package report

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

const gib = 1 << 30

// FormatGiB renders a byte count as GiB with two decimals.
func FormatGiB(size int64) string {
	if size <= 0 {
		return "0.00 GiB"
	}
	return fmt.Sprintf("%.2f GiB", float64(size)/gib)
}

// FormatRuntime renders minutes as "Xh Ym", or N/A when unknown.
func FormatRuntime(minutes int) string {
	if minutes <= 0 {
		return "N/A"
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

// ShouldColorize reports whether w is an interactive terminal.
func ShouldColorize(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func orNA(value string) string {
	if value == "" {
		return "N/A"
	}
	return value
}
