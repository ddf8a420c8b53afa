package decode

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"strings"

	logging "github.com/KonishchevDmitry/go-easy-logging"
	"github.com/PuerkitoBio/goquery"
	"github.com/samber/mo"
	"golang.org/x/net/html/charset"
)

// HTML parses the document honoring the charset declared in its <meta> tags. The source is used only for messages.
func HTML(ctx context.Context, data []byte, source string) (*goquery.Document, error) {
	doc, err := parseHTML(data, source)
	if err != nil {
		return nil, err
	}

	encoding, ok := declaredCharset(ctx, doc, source).Get()
	if !ok || encoding == "utf-8" || encoding == "utf8" {
		return doc, nil
	}

	charsetReader, err := charset.NewReaderLabel(encoding, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s has an unknown charset encoding: %q", source, encoding)
	}

	data, err = io.ReadAll(charsetReader)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s using %s charset: %w", source, encoding, err)
	}

	logging.L(ctx).Debugf("Decoded %s using %s charset.", source, encoding)
	return parseHTML(data, source)
}

func parseHTML(data []byte, source string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("unable to parse %s: %w", source, err)
	}
	return doc, nil
}

// <meta charset> takes precedence over <meta http-equiv="Content-Type">.
func declaredCharset(ctx context.Context, doc *goquery.Document, source string) mo.Option[string] {
	var metaCharset, httpCharset mo.Option[string]

	doc.Find("head > meta").Each(func(_ int, tag *goquery.Selection) {
		if encoding := strings.ToLower(tag.AttrOr("charset", "")); encoding != "" {
			metaCharset = mo.Some(encoding)
			return
		}

		if !strings.EqualFold(tag.AttrOr("http-equiv", ""), "content-type") {
			return
		}

		content := tag.AttrOr("content", "")
		_, params, err := mime.ParseMediaType(content)
		if err != nil {
			logging.L(ctx).Warnf(
				`Got an invalid content type of %s from <meta http-equiv="Content-Type"> tag: %q.`, source, content)
			return
		}

		if encoding := strings.ToLower(params["charset"]); encoding != "" {
			httpCharset = mo.Some(encoding)
		}
	})

	if metaCharset.IsPresent() {
		return metaCharset
	}
	return httpCharset
}
