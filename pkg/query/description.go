package query

import (
	"cmp"
	"context"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	logging "github.com/KonishchevDmitry/go-easy-logging"
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/KonishchevDmitry/booktext/pkg/decode"
	"github.com/KonishchevDmitry/booktext/pkg/parse"
)

const DefaultMaxDescriptionLength = 5000

var escapedRe = regexp.MustCompile("\\\\([#@%&*~`])")

// Containers which book stores use for synopsis.
var synopsisSelectors = []string{
	"[data-full-synopsis]",
	"[data-testid='synopsis']",
	"[data-testid='description']",
	"[data-automation='synopsis']",
	"[data-automation='book-description']",
	"[itemprop='description']",
	".text-synopsis",
}

const maxSynopsisSiblings = 5

var invisibleReplacer = strings.NewReplacer(
	"\u00a0", " ", // no-break space
	"\u2009", " ", // thin space
	"\u200b", "", // zero width space
)

type Option func(o *options)

type options struct {
	maxLength int
}

// MaxLength limits description length in characters. Zero disables the limit.
func MaxLength(length int) Option {
	return func(o *options) {
		o.maxLength = length
	}
}

// CleanDescription converts a possibly HTML book description into a single line of plain text.
func CleanDescription(ctx context.Context, text string, opts ...Option) string {
	text = parse.TrimExtendedWhitespace(text)
	if text == "" {
		return ""
	}

	// The HTML parser fails only on reader errors
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
	if err != nil {
		panic(err)
	}

	return normalizeDescription(ctx, plainText(doc.Selection), opts...)
}

// ExtractDescription extracts book synopsis from a store page. The longest of the known synopsis containers wins, then
// the content following a "Synopsis" heading is tried. If the page has neither, the whole body is used.
func ExtractDescription(ctx context.Context, data []byte, source string, opts ...Option) (string, error) {
	doc, err := decode.HTML(ctx, data, source)
	if err != nil {
		return "", err
	}

	var candidates []string
	for _, selector := range synopsisSelectors {
		doc.Find(selector).Each(func(_ int, container *goquery.Selection) {
			if description := normalizeDescription(ctx, plainText(container), opts...); description != "" &&
				!slices.Contains(candidates, description) {
				candidates = append(candidates, description)
			}
		})
	}

	if len(candidates) != 0 {
		return slices.MaxFunc(candidates, func(a, b string) int {
			return cmp.Compare(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
		}), nil
	}

	if description, ok := synopsisAfterHeading(ctx, doc, opts...); ok {
		return description, nil
	}

	logging.L(ctx).Debugf("No synopsis found in %s. Use the whole page body.", source)
	return normalizeDescription(ctx, plainText(doc.Find("body")), opts...), nil
}

func synopsisAfterHeading(ctx context.Context, doc *goquery.Document, opts ...Option) (string, bool) {
	heading := doc.Find("h2, h3, h4").FilterFunction(func(_ int, heading *goquery.Selection) bool {
		return strings.Contains(strings.ToLower(Text(heading)), "synopsis")
	}).First()

	container := heading.Next()
	for range maxSynopsisSiblings {
		if container.Length() == 0 {
			break
		}

		if description := normalizeDescription(ctx, plainText(container), opts...); description != "" {
			return description, true
		}

		container = container.Next()
	}

	return "", false
}

func normalizeDescription(ctx context.Context, text string, opts ...Option) string {
	options := options{maxLength: DefaultMaxDescriptionLength}
	for _, opt := range opts {
		opt(&options)
	}

	text = invisibleReplacer.Replace(text)
	text = parse.TrimExtendedWhitespace(strings.Join(strings.Fields(text), " "))
	text = escapedRe.ReplaceAllString(text, "$1")

	if options.maxLength > 0 && utf8.RuneCountInString(text) > options.maxLength {
		logging.L(ctx).Debugf("Truncating %d characters description to %d characters.",
			utf8.RuneCountInString(text), options.maxLength)
		text = truncate(text, options.maxLength)
	}

	return text
}

// Cuts the text on the last word boundary within the limit. A single word longer than the limit is cut as is.
func truncate(text string, maxLength int) string {
	var end int
	for index := range text {
		if maxLength == 0 {
			end = index
			break
		}
		maxLength--
	}

	text = text[:end]
	if index := strings.LastIndexByte(text, ' '); index != -1 {
		text = text[:index]
	}

	return text + "..."
}

// Joins text nodes with a space to not glue words from adjacent block elements.
func plainText(selection *goquery.Selection) string {
	selection = selection.Clone()
	selection.Find("script, style, noscript").Remove()

	var texts []string
	for _, node := range selection.Nodes {
		texts = appendText(texts, node)
	}

	return strings.Join(texts, " ")
}

func appendText(texts []string, node *html.Node) []string {
	if node.Type == html.TextNode {
		if text := strings.TrimSpace(node.Data); text != "" {
			texts = append(texts, text)
		}
		return texts
	}

	for child := node.FirstChild; child != nil; child = child.NextSibling {
		texts = appendText(texts, child)
	}

	return texts
}
