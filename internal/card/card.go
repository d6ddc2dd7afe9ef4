// Package card renders a compact terminal summary of extracted metadata.
package card

import (
	"strings"
	"unicode/utf8"

	"github.com/aipengineer/quackmetadata/internal/metadata"
)

const innerWidth = 42

// Render draws a boxed metadata card. When simulated is true a warning
// row marks the data as coming from the stub client.
func Render(md metadata.Metadata, simulated bool) string {
	lines := []string{
		"╔" + strings.Repeat("═", innerWidth) + "╗",
		row(center("🃏 METADATA CARD", innerWidth)),
		"╠" + strings.Repeat("═", innerWidth) + "╣",
		row(pad(" Title: "+md.Title, innerWidth)),
		row(pad(" Domain: "+md.Domain, innerWidth)),
		row(pad(" Tone: "+md.Tone, innerWidth)),
		row(pad(" Rarity: "+md.Rarity, innerWidth)),
	}
	if simulated {
		lines = append(lines,
			"╠"+strings.Repeat("═", innerWidth)+"╣",
			row(center("⚠ SIMULATED DATA (STUB LLM) ⚠", innerWidth)),
		)
	}
	lines = append(lines, "╚"+strings.Repeat("═", innerWidth)+"╝")
	return strings.Join(lines, "\n")
}

func row(content string) string {
	return "║" + content + "║"
}

// pad truncates or right-pads content to width runes.
func pad(content string, width int) string {
	runes := []rune(content)
	if len(runes) > width {
		return string(runes[:width-1]) + "…"
	}
	return content + strings.Repeat(" ", width-len(runes))
}

func center(content string, width int) string {
	n := utf8.RuneCountInString(content)
	if n >= width {
		return pad(content, width)
	}
	left := (width - n) / 2
	return strings.Repeat(" ", left) + content + strings.Repeat(" ", width-n-left)
}
