// Package svgdoc implements the drawing surface charts are written to:
// an ordered tree of SVG elements, which can be encoded to
// and decoded from XML.
package svgdoc

import (
	"strconv"
	"strings"
)

// Attr is a single attribute of an element.
type Attr struct {
	Name, Value string
}

// Element is a node of the surface. Attribute order is preserved.
type Element struct {
	Name     string
	Attrs    []Attr
	Children []*Element
	Text     string // character data, used by text elements
}

// NewElement returns an element without attributes.
func NewElement(name string) *Element {
	return &Element{Name: name}
}

// Append adds a new child named name and returns it.
func (e *Element) Append(name string) *Element {
	child := NewElement(name)
	e.Children = append(e.Children, child)
	return child
}

// Set sets the attribute name, replacing a previous value.
// It returns e so that calls may be chained.
func (e *Element) Set(name, value string) *Element {
	for i, a := range e.Attrs {
		if a.Name == name {
			e.Attrs[i].Value = value
			return e
		}
	}
	e.Attrs = append(e.Attrs, Attr{Name: name, Value: value})
	return e
}

// SetFloat sets a numeric attribute, with the shortest
// representation of v.
func (e *Element) SetFloat(name string, v float64) *Element {
	return e.Set(name, FormatFloat(v))
}

// SetText sets the character data of e.
func (e *Element) SetText(text string) *Element {
	e.Text = text
	return e
}

// Get returns the value of the attribute name, or "" if not set.
func (e *Element) Get(name string) string {
	v, _ := e.Lookup(name)
	return v
}

// Lookup returns the value of the attribute name and whether it is set.
func (e *Element) Lookup(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Remove deletes the attribute name, if present.
func (e *Element) Remove(name string) {
	for i, a := range e.Attrs {
		if a.Name == name {
			e.Attrs = append(e.Attrs[:i], e.Attrs[i+1:]...)
			return
		}
	}
}

// RemoveChild detaches the direct child c of e, and reports
// whether it was found.
func (e *Element) RemoveChild(c *Element) bool {
	for i, child := range e.Children {
		if child == c {
			e.Children = append(e.Children[:i], e.Children[i+1:]...)
			return true
		}
	}
	return false
}

// HasClass reports whether class is one of the classes of e.
func (e *Element) HasClass(class string) bool {
	for _, c := range strings.Fields(e.Get("class")) {
		if c == class {
			return true
		}
	}
	return false
}

// Walk calls fn for e and its descendants, depth first, in document order.
// Returning false from fn skips the children of the current element.
func (e *Element) Walk(fn func(*Element) bool) {
	if !fn(e) {
		return
	}
	for _, c := range e.Children {
		c.Walk(fn)
	}
}

// FindAll returns the descendants of e named name (e excluded).
func (e *Element) FindAll(name string) []*Element {
	var out []*Element
	for _, c := range e.Children {
		c.Walk(func(el *Element) bool {
			if el.Name == name {
				out = append(out, el)
			}
			return true
		})
	}
	return out
}

// FindClass returns the descendants of e having class (e excluded).
func (e *Element) FindClass(class string) []*Element {
	var out []*Element
	for _, c := range e.Children {
		c.Walk(func(el *Element) bool {
			if el.HasClass(class) {
				out = append(out, el)
			}
			return true
		})
	}
	return out
}

// FormatFloat returns the shortest decimal representation of v.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Translate returns a translate transform attribute value.
func Translate(x, y float64) string {
	return "translate(" + FormatFloat(x) + "," + FormatFloat(y) + ")"
}
