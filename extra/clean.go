package extra

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/neurosnap/sentences/english"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// SpeakableText strips markdown from an assistant reply so the speech
// engine is not fed asterisks and table separators. Render to html
// first, then pull the text back out.
func SpeakableText(md string) string {
	gm := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)
	var buf bytes.Buffer
	if err := gm.Convert([]byte(md), &buf); err != nil {
		return strings.TrimSpace(md)
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		return strings.TrimSpace(md)
	}
	doc.Find("script, style, noscript, code, pre").Each(func(i int, s *goquery.Selection) {
		s.Remove()
	})
	return strings.Join(strings.Fields(doc.Text()), " ")
}

// SplitSentences breaks text up so long replies are synthesized and
// played one sentence at a time.
func SplitSentences(text string) []string {
	tokenizer, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return []string{text}
	}
	sentences := tokenizer.Tokenize(text)
	resp := make([]string, 0, len(sentences))
	for _, s := range sentences {
		st := strings.TrimSpace(s.Text)
		if st != "" {
			resp = append(resp, st)
		}
	}
	return resp
}
