package reader

import (
	"bytes"
	"encoding/xml"
	"io"
	"os"
	"strings"
)

// rawElement is one XML element flattened to its local tag name, attributes
// and directly contained character data.
type rawElement struct {
	tag   string
	attrs map[string]string
	text  string
}

func (e rawElement) attr(name string) string { return e.attrs[name] }

// scanXML walks an XML document and returns every element in document order.
// Tag and attribute names are lowercased with namespaces stripped, so tag
// variants like "Requirement" and "ownedRequirements" both match by suffix
// checks on the caller side.
func scanXML(data []byte) ([]rawElement, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Strict = false

	var out []rawElement
	var open []int // indices into out for currently open elements
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
			el := rawElement{
				tag:   strings.ToLower(t.Name.Local),
				attrs: make(map[string]string, len(t.Attr)),
			}
			for _, a := range t.Attr {
				el.attrs[strings.ToLower(a.Name.Local)] = a.Value
			}
			out = append(out, el)
			open = append(open, len(out)-1)
		case xml.CharData:
			if len(open) > 0 {
				out[open[len(open)-1]].text += string(t)
			}
		case xml.EndElement:
			if len(open) > 0 {
				open = open[:len(open)-1]
			}
		}
	}
	for i := range out {
		out[i].text = strings.TrimSpace(out[i].text)
	}
	return out, nil
}

func readModelXML(path string) ([]Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	elems, err := parseModelXML(data)
	if err != nil {
		return nil, err
	}
	return []Document{{Source: path, Elements: elems}}, nil
}

// parseModelXML extracts requirements, functions, components, actors and
// interfaces from a generic XML model export.
func parseModelXML(data []byte) ([]Element, error) {
	raw, err := scanXML(data)
	if err != nil {
		return nil, err
	}

	var elems []Element
	for _, el := range raw {
		switch el.tag {
		case "requirement", "ownedrequirements":
			elems = append(elems, Element{
				MetaType:    "xml_requirement",
				Label:       "Requirement",
				Type:        "requirement",
				ID:          el.attr("id"),
				Name:        nameOrUnnamed(el),
				Description: el.attr("description"),
				Details:     el.text,
			})
		case "function", "component", "ownedfunctions", "ownedcomponents":
			etype := "component"
			if strings.Contains(el.tag, "function") {
				etype = "function"
			}
			elems = append(elems, Element{
				MetaType:    "xml_" + etype,
				Label:       "Function/Component",
				Type:        etype,
				ID:          el.attr("id"),
				Name:        nameOrUnnamed(el),
				Description: el.attr("description"),
				TypeAttr:    el.attr("type"),
			})
		case "actor", "ownedactors", "operationalactor":
			elems = append(elems, Element{
				MetaType:    "xml_actor",
				Label:       "Actor",
				Type:        "actor",
				ID:          el.attr("id"),
				Name:        nameOrUnnamed(el),
				Description: el.attr("description"),
			})
		case "interface", "ownedinterfaces":
			elems = append(elems, Element{
				MetaType:    "xml_interface",
				Label:       "Interface",
				Type:        "interface",
				ID:          el.attr("id"),
				Name:        nameOrUnnamed(el),
				Description: el.attr("description"),
			})
		}
	}
	return elems, nil
}

func nameOrUnnamed(el rawElement) string {
	if n := el.attr("name"); n != "" {
		return n
	}
	return "Unnamed"
}
