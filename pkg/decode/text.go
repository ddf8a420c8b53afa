package decode

import (
	"bytes"
	"fmt"
	"io"

	"golang.org/x/net/html/charset"

	"github.com/KonishchevDmitry/booktext/pkg/parse"
)

// Text decodes data to UTF-8 and trims leading and trailing whitespace including BOM left by the encoding detection.
func Text(data []byte, contentType string) (string, error) {
	if len(data) == 0 {
		return "", nil
	}

	reader, err := charset.NewReader(bytes.NewReader(data), contentType)
	if err != nil {
		return "", fmt.Errorf("unable to determine text encoding: %w", err)
	}

	text, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("failed to decode the text: %w", err)
	}

	return parse.TrimExtendedWhitespace(string(text)), nil
}
