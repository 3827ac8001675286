package salesfile

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// ReadLines reads a sales data file, skipping the header row and blank
// lines. Files that are not valid UTF-8 are decoded as Windows-1252,
// which covers the Latin-1 exports some upstream systems still produce.
func ReadLines(r io.Reader) ([]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading sales data: %w", err)
	}

	if !utf8.Valid(data) {
		decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
		if err != nil {
			return nil, fmt.Errorf("decoding sales data: %w", err)
		}
		data = decoded
	}

	raw := strings.Split(string(data), "\n")

	var lines []string
	for i, line := range raw {
		line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if i == 0 || line == "" {
			// Header row or blank line.
			continue
		}
		lines = append(lines, line)
	}
	return lines, nil
}
