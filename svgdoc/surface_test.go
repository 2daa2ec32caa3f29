package svgdoc

import (
	"bytes"
	"strings"
	"testing"
)

func sampleSurface() *Surface {
	s := NewSurface()
	s.Root().SetFloat("width", 500).SetFloat("height", 400)
	g := s.Root().Append("g").Set("transform", Translate(40, 20))
	g.Append("circle").Set("class", "mark").SetFloat("cx", 88).SetFloat("cy", 27.5).SetFloat("r", 5).Set("fill", "red")
	g.Append("text").SetFloat("x", 10).SetText("Product <A> & co")
	return s
}

func TestElement(t *testing.T) {
	e := NewElement("circle").Set("r", "5").Set("fill", "red").Set("r", "6")
	if len(e.Attrs) != 2 || e.Get("r") != "6" {
		t.Fatalf("unexpected attributes %v", e.Attrs)
	}
	if _, ok := e.Lookup("cx"); ok {
		t.Fatal("cx should not be set")
	}
	e.Remove("fill")
	if e.Get("fill") != "" || len(e.Attrs) != 1 {
		t.Fatalf("fill should be removed: %v", e.Attrs)
	}
	e.Set("class", "mark legend")
	if !e.HasClass("legend") || e.HasClass("leg") {
		t.Fatal("unexpected class matching")
	}
}

func TestFind(t *testing.T) {
	s := sampleSurface()
	if n := len(s.Root().FindAll("circle")); n != 1 {
		t.Fatalf("expected 1 circle, got %d", n)
	}
	if n := len(s.Root().FindClass("mark")); n != 1 {
		t.Fatalf("expected 1 mark, got %d", n)
	}
	var names []string
	s.Root().Walk(func(e *Element) bool {
		names = append(names, e.Name)
		return e.Name != "g"
	})
	if strings.Join(names, ",") != "svg,g" {
		t.Fatalf("walk should skip children of g, got %v", names)
	}
}

func TestFormat(t *testing.T) {
	for v, exp := range map[float64]string{0: "0", 280: "280", 27.5: "27.5", -6: "-6"} {
		if got := FormatFloat(v); got != exp {
			t.Errorf("FormatFloat(%v) = %s", v, got)
		}
	}
	if got := Translate(340, 250); got != "translate(340,250)" {
		t.Errorf("unexpected transform %s", got)
	}
}

func TestEncodeDecode(t *testing.T) {
	s := sampleSurface()
	out := string(s.Bytes())
	for _, chunk := range []string{
		`<svg xmlns="http://www.w3.org/2000/svg" width="500" height="400">`,
		`<circle class="mark" cx="88" cy="27.5" r="5" fill="red"></circle>`,
		`<text x="10">Product &lt;A&gt; &amp; co</text>`,
	} {
		if !strings.Contains(out, chunk) {
			t.Errorf("missing %s in\n%s", chunk, out)
		}
	}

	back, err := Decode(strings.NewReader(out))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(back.Bytes(), s.Bytes()) {
		t.Fatalf("decoding changed the document:\n%s\n%s", back.Bytes(), s.Bytes())
	}
	if w, h := back.Size(); w != 500 || h != 400 {
		t.Fatalf("unexpected size %v x %v", w, h)
	}
}

func TestDecodeCharset(t *testing.T) {
	// "Café" in ISO-8859-1
	input := "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?>\n<svg width=\"10px\"><text>Caf\xe9</text></svg>"
	s, err := Decode(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if got := s.Root().FindAll("text")[0].Text; got != "Café" {
		t.Fatalf("unexpected text %q", got)
	}
	if w, _ := s.Size(); w != 10 {
		t.Fatalf("unexpected width %v", w)
	}
}

func TestDecodeErrors(t *testing.T) {
	for _, input := range []string{
		"",
		"<g></g>",
		"<svg><g></svg>",
	} {
		if _, err := Decode(strings.NewReader(input)); err == nil {
			t.Errorf("%q: expected an error", input)
		}
	}
}

func TestClear(t *testing.T) {
	s := sampleSurface()
	s.Clear()
	if s.Len() != 0 {
		t.Fatalf("expected empty surface, got %d children", s.Len())
	}
	if w, h := s.Size(); w != 0 || h != 0 {
		t.Fatal("size attributes should be cleared")
	}
}

func TestRemoveChild(t *testing.T) {
	root := NewElement("g")
	a, b := root.Append("circle"), root.Append("text")
	if !root.RemoveChild(a) {
		t.Fatal("child not found")
	}
	if len(root.Children) != 1 || root.Children[0] != b {
		t.Errorf("unexpected children %v", root.Children)
	}
	if root.RemoveChild(a) || root.RemoveChild(NewElement("circle")) {
		t.Error("removing a foreign element should fail")
	}
}
