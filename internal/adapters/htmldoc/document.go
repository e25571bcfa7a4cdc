// Package htmldoc implements domain.Page as an HTML node tree.
package htmldoc

import (
	"bytes"
	"fmt"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"monopoly_report/internal/domain"
)

type Document struct {
	doc   *html.Node
	nodes []*html.Node // index is the NodeHandle; 0 is <body>
}

var _ domain.Page = (*Document)(nil)

func New(title string) *Document {
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	root := element(atom.Html)
	root.Attr = []html.Attribute{{Key: "lang", Val: "en"}}
	head := element(atom.Head)
	meta := element(atom.Meta)
	meta.Attr = []html.Attribute{{Key: "charset", Val: "utf-8"}}
	head.AppendChild(meta)
	t := element(atom.Title)
	t.AppendChild(&html.Node{Type: html.TextNode, Data: title})
	head.AppendChild(t)
	body := element(atom.Body)

	root.AppendChild(head)
	root.AppendChild(body)
	doc.AppendChild(root)

	return &Document{doc: doc, nodes: []*html.Node{body}}
}

func (d *Document) Root() domain.NodeHandle { return 0 }

func (d *Document) CreateSection(kind domain.NodeKind, text string) domain.NodeHandle {
	n := element(tagFor(kind))
	if kind == domain.KindProperty {
		n.Attr = []html.Attribute{{Key: "class", Val: "property"}}
	}
	if text != "" {
		n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	}
	d.nodes = append(d.nodes, n)
	return domain.NodeHandle(len(d.nodes) - 1)
}

// AppendChild moves child under parent. Unknown handles are ignored.
func (d *Document) AppendChild(parent, child domain.NodeHandle) {
	p, ok := d.node(parent)
	if !ok {
		return
	}
	c, ok := d.node(child)
	if !ok || c == p {
		return
	}
	if c.Parent != nil {
		c.Parent.RemoveChild(c)
	}
	p.AppendChild(c)
}

// HTML renders the whole page.
func (d *Document) HTML() (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, d.doc); err != nil {
		return "", fmt.Errorf("render document: %w", err)
	}
	return buf.String(), nil
}

// Fragment renders one node and its subtree.
func (d *Document) Fragment(h domain.NodeHandle) (string, error) {
	n, ok := d.node(h)
	if !ok {
		return "", fmt.Errorf("unknown node %d", h)
	}
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (d *Document) node(h domain.NodeHandle) (*html.Node, bool) {
	if int(h) < 0 || int(h) >= len(d.nodes) {
		return nil, false
	}
	return d.nodes[h], true
}

func tagFor(k domain.NodeKind) atom.Atom {
	switch k {
	case domain.KindHeading:
		return atom.H1
	case domain.KindSubheading:
		return atom.H2
	case domain.KindParagraph:
		return atom.P
	case domain.KindList:
		return atom.Ul
	case domain.KindListItem:
		return atom.Li
	}
	return atom.Div
}

func element(a atom.Atom) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
}
