package query

import (
	"github.com/PuerkitoBio/goquery"

	"github.com/KonishchevDmitry/booktext/pkg/parse"
)

// Text returns visible text of the selection with words of adjacent elements separated by a space.
func Text(selection *goquery.Selection) string {
	return parse.TrimText(plainText(selection))
}
