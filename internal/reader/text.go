package reader

import (
	"bufio"
	"io"
	"strings"
)

// TextReader handles plain text files. The input is already line text, so it
// passes through with line endings normalized.
type TextReader struct{}

func (p *TextReader) Read(r io.Reader, filename string) (string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var b strings.Builder
	for scanner.Scan() {
		b.WriteString(scanner.Text())
		b.WriteByte('\n')
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return b.String(), nil
}
