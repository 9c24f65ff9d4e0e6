package fragment

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/shandysiswandi/gonav/internal/nav/entity"
)

// Extract parses raw and returns the title and the inner HTML of the first
// element matching selector. When nothing matches, the whole input is the
// content.
func Extract(raw, selector string) (entity.Page, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return entity.Page{}, err
	}

	page := entity.Page{
		Title:   strings.TrimSpace(doc.Find("title").First().Text()),
		Content: raw,
	}

	if selector == "" {
		return page, nil
	}

	sel := doc.Find(selector).First()
	if sel.Length() == 0 {
		return page, nil
	}

	content, err := sel.Html()
	if err != nil {
		return entity.Page{}, err
	}
	page.Content = content

	return page, nil
}

// ApplyNonce sets the nonce attribute on every <script> in the fragment that
// does not already carry one. An empty nonce leaves raw untouched.
func ApplyNonce(raw, nonce string) (string, error) {
	if nonce == "" || !strings.Contains(strings.ToLower(raw), "<script") {
		return raw, nil
	}

	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(raw), body)
	if err != nil {
		return "", err
	}

	root := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	for _, n := range nodes {
		root.AppendChild(n)
	}

	goquery.NewDocumentFromNode(root).Find("script").Each(func(_ int, s *goquery.Selection) {
		if _, ok := s.Attr("nonce"); !ok {
			s.SetAttr("nonce", nonce)
		}
	})

	var buf bytes.Buffer
	for n := root.FirstChild; n != nil; n = n.NextSibling {
		if err := html.Render(&buf, n); err != nil {
			return "", err
		}
	}

	return buf.String(), nil
}
