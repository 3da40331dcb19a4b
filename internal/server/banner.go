package server

import (
	"fmt"
	"io"
	"strings"

	"github.com/phuslu/log"
	"github.com/ternarybob/banner"
)

// BannerInfo is what the startup banner reports.
type BannerInfo struct {
	Version   string
	Addr      string
	Database  string
	Sentences int
}

// PrintBanner writes the startup banner to w and logs the same facts.
func PrintBanner(w io.Writer, info BannerInfo, logger *log.Logger) {
	lineColor := banner.ColorCyan
	textColor := banner.ColorBold + banner.ColorWhite
	width := 56
	hr := lineColor + strings.Repeat("═", width) + banner.ColorReset

	art := []string{
		` _____  _    ____ ___ _____`,
		`|_   _|/ \  / ___|_ _|_   _|`,
		`  | | / _ \| |    | |  | |`,
		`  | |/ ___ \ |___ | |  | |`,
		`  |_/_/   \_\____|___| |_|`,
	}

	fmt.Fprintf(w, "\n%s\n\n", hr)
	for _, line := range art {
		fmt.Fprintf(w, "%s%s%s\n", textColor, line, banner.ColorReset)
	}
	fmt.Fprintf(w, "\n%s  Sentence service for CCT annotation practice%s\n\n", textColor, banner.ColorReset)
	fmt.Fprintf(w, "%s\n\n", hr)

	kvPad := 12
	kvLines := [][2]string{
		{"Version", info.Version},
		{"Listening", "http://" + info.Addr},
		{"Database", info.Database},
		{"Sentences", fmt.Sprintf("%d", info.Sentences)},
	}
	for _, kv := range kvLines {
		fmt.Fprintf(w, "%s  %-*s %s%s\n", textColor, kvPad, kv[0], kv[1], banner.ColorReset)
	}
	fmt.Fprintf(w, "\n%s\n\n", hr)

	logger.Info().
		Str("version", info.Version).
		Str("addr", info.Addr).
		Str("database", info.Database).
		Int("sentences", info.Sentences).
		Msg("Sentence service started")
}
