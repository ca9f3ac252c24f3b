package resource

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"
)

// XMLElement is one node of a parsed XML document. The tree is
// immutable after parsing.
type XMLElement struct {
	Name     string
	Attrs    map[string]string
	Text     string // Trimmed character data directly inside the element
	Children []*XMLElement
}

// Attr returns the named attribute.
func (e *XMLElement) Attr(name string) (string, bool) {
	v, ok := e.Attrs[name]
	return v, ok
}

// Find returns the first direct child with the given name, or nil.
func (e *XMLElement) Find(name string) *XMLElement {
	for _, child := range e.Children {
		if child.Name == name {
			return child
		}
	}
	return nil
}

// FindAll returns every direct child with the given name.
func (e *XMLElement) FindAll(name string) []*XMLElement {
	var out []*XMLElement
	for _, child := range e.Children {
		if child.Name == name {
			out = append(out, child)
		}
	}
	return out
}

func parseXML(data []byte) (*XMLElement, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	var root *XMLElement
	var stack []*XMLElement

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			el := &XMLElement{Name: t.Name.Local}
			if len(t.Attr) > 0 {
				el.Attrs = make(map[string]string, len(t.Attr))
				for _, a := range t.Attr {
					el.Attrs[a.Name.Local] = a.Value
				}
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, errors.New("multiple root elements")
				}
				root = el
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, el)
			}
			stack = append(stack, el)

		case xml.EndElement:
			el := stack[len(stack)-1]
			el.Text = strings.TrimSpace(el.Text)
			stack = stack[:len(stack)-1]

		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].Text += string(t)
			}
		}
	}

	if root == nil {
		return nil, errors.New("no root element")
	}
	return root, nil
}
