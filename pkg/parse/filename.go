package parse

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const defaultMaxFilenameBytes = 128

var ErrEmptyFilename = errors.New("filename cannot be empty")

var (
	specialCharsRe = regexp.MustCompile(`[*+:\\"/<>?]+`)
	pipesRe        = regexp.MustCompile(`\|+`)
)

type FilenameOption func(o *filenameOptions)

type filenameOptions struct {
	keepSpecialChars bool
	transliterate    bool
	maxBytes         int
}

// KeepSpecialChars disables replacement of characters that are reserved on some file systems.
func KeepSpecialChars() FilenameOption {
	return func(o *filenameOptions) {
		o.keepSpecialChars = true
	}
}

// Transliterate strips diacritics and replaces all other non-ASCII characters with underscores.
func Transliterate() FilenameOption {
	return func(o *filenameOptions) {
		o.transliterate = true
	}
}

func MaxBytes(limit int) FilenameOption {
	return func(o *filenameOptions) {
		o.maxBytes = limit
	}
}

// ValidFilename turns an arbitrary book title or author name into a string which is safe to use as a file or directory
// name.
func ValidFilename(value string, opts ...FilenameOption) (string, error) {
	options := filenameOptions{maxBytes: defaultMaxFilenameBytes}
	for _, opt := range opts {
		opt(&options)
	}

	if strings.HasSuffix(value, ".") {
		value = value[:len(value)-1] + "_"
	}

	value = strings.NewReplacer("/", "_", ":", "_").Replace(value)
	value = strings.Trim(value, "\x00")

	if options.transliterate {
		var err error
		if value, err = transliterate(value); err != nil {
			return "", err
		}
	}

	if !options.keepSpecialChars {
		value = specialCharsRe.ReplaceAllString(value, "_")
		value = pipesRe.ReplaceAllString(value, ",")
	}

	if options.maxBytes > 0 && len(value) > options.maxBytes {
		value = strings.ToValidUTF8(value[:options.maxBytes], "")
	}

	value = TrimExtendedWhitespace(value)
	if value == "" {
		return "", ErrEmptyFilename
	}

	return value, nil
}

func transliterate(value string) (string, error) {
	transformer := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), runes.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return '_'
		}
		return r
	}))

	result, _, err := transform.String(transformer, value)
	if err != nil {
		return "", fmt.Errorf("unable to transliterate %q: %w", value, err)
	}

	return result, nil
}
