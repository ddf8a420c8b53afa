package parse

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidFilename(t *testing.T) {
	t.Parallel()

	for _, testCase := range []struct {
		value    string
		options  []FilenameOption
		expected string
	}{
		{value: "Title: Subtitle", expected: "Title_ Subtitle"},
		{value: "AC/DC", expected: "AC_DC"},
		{value: "What? <Really>*", expected: "What_ _Really_"},
		{value: `Back\slash "quoted"`, expected: "Back_slash _quoted_"},
		{value: "A | B || C", expected: "A , B , C"},
		{value: "Ends with dot.", expected: "Ends with dot_"},
		{value: "\x00 name \x00", expected: "name"},
		{value: "\ufeff Title \u200b", expected: "Title"},
		{value: "Inner\u200bspace", expected: "Inner\u200bspace"},
		{value: "a*b|c", options: []FilenameOption{KeepSpecialChars()}, expected: "a*b|c"},
		{value: "a/b", options: []FilenameOption{KeepSpecialChars()}, expected: "a_b"},
		{value: "Crème brûlée", options: []FilenameOption{Transliterate()}, expected: "Creme brulee"},
		{value: "Война и мир", options: []FilenameOption{Transliterate()}, expected: "_____ _ ___"},
		{value: "Война и мир", expected: "Война и мир"},
		{value: "abc def", options: []FilenameOption{MaxBytes(4)}, expected: "abc"},
		{value: strings.Repeat("я", 100), options: []FilenameOption{MaxBytes(5)}, expected: "яя"},
		{value: strings.Repeat("a", 200), expected: strings.Repeat("a", 128)},
		{value: strings.Repeat("a", 200), options: []FilenameOption{MaxBytes(0)}, expected: strings.Repeat("a", 200)},
	} {
		filename, err := ValidFilename(testCase.value, testCase.options...)
		require.NoError(t, err, testCase.value)
		require.Equal(t, testCase.expected, filename, testCase.value)
	}
}

func TestValidFilenameEmpty(t *testing.T) {
	t.Parallel()

	for _, value := range []string{"", "   ", "\u200b\ufeff", "\x00\x00", "\t\n"} {
		_, err := ValidFilename(value)
		require.ErrorIs(t, err, ErrEmptyFilename, "%q", value)
	}
}
