package svgdoc

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
)

// Namespace is the SVG namespace written on the root element.
const Namespace = "http://www.w3.org/2000/svg"

var errNoRoot = errors.New("svgdoc: no svg root element")

// Surface is an SVG document under construction.
// The root element is always an svg element.
type Surface struct {
	root *Element
}

// NewSurface returns an empty surface.
func NewSurface() *Surface {
	return &Surface{root: newRoot()}
}

func newRoot() *Element {
	return NewElement("svg").Set("xmlns", Namespace)
}

// Root returns the svg element.
func (s *Surface) Root() *Element { return s.root }

// Len returns the number of direct children of the root.
func (s *Surface) Len() int { return len(s.root.Children) }

// Clear removes every child of the root, and its attributes,
// leaving an empty surface.
func (s *Surface) Clear() {
	s.root = newRoot()
}

// Size returns the width and height attributes of the root,
// or 0 when they are missing or not numbers.
func (s *Surface) Size() (w, h float64) {
	w, _ = ParseLength(s.root.Get("width"))
	h, _ = ParseLength(s.root.Get("height"))
	return w, h
}

// Encode writes the document as indented XML.
func (s *Surface) Encode(w io.Writer) error {
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := encodeElement(enc, s.root); err != nil {
		return err
	}
	if err := enc.Flush(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// Bytes returns the XML encoding of the document.
func (s *Surface) Bytes() []byte {
	var buf bytes.Buffer
	_ = s.Encode(&buf) // writing to a buffer does not fail
	return buf.Bytes()
}

func encodeElement(enc *xml.Encoder, e *Element) error {
	start := xml.StartElement{Name: xml.Name{Local: e.Name}}
	for _, a := range e.Attrs {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: a.Name}, Value: a.Value})
	}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	if e.Text != "" {
		if err := enc.EncodeToken(xml.CharData(e.Text)); err != nil {
			return err
		}
	}
	for _, c := range e.Children {
		if err := encodeElement(enc, c); err != nil {
			return err
		}
	}
	return enc.EncodeToken(start.End())
}

// Decode parses an SVG document. Namespaces prefixes are dropped,
// comments and processing instructions are ignored, and whitespace
// only character data is skipped.
func Decode(r io.Reader) (*Surface, error) {
	decoder := xml.NewDecoder(r)
	decoder.CharsetReader = charset.NewReaderLabel

	var (
		root  *Element
		stack []*Element
	)
	for {
		t, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		switch se := t.(type) {
		case xml.StartElement:
			el := NewElement(se.Name.Local)
			for _, a := range se.Attr {
				name := a.Name.Local
				if a.Name.Space == "xmlns" || (a.Name.Space == "" && name == "xmlns") {
					continue // the namespace is written back by the encoder
				}
				el.Attrs = append(el.Attrs, Attr{Name: name, Value: a.Value})
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, errors.New("svgdoc: several root elements")
				}
				root = el
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, el)
			}
			stack = append(stack, el)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) == 0 {
				continue
			}
			if text := string(se); strings.TrimSpace(text) != "" {
				stack[len(stack)-1].Text += text
			}
		}
	}
	if root == nil || root.Name != "svg" {
		return nil, errNoRoot
	}
	root.Attrs = append([]Attr{{Name: "xmlns", Value: Namespace}}, root.Attrs...)
	return &Surface{root: root}, nil
}
