package reader

import (
	"bytes"
	"os"
	"strings"
)

// capellaTags maps the Capella container tags to their element type, in
// extraction order.
var capellaTags = []struct {
	tag   string
	etype string
}{
	{"ownedfunctions", "function"},
	{"ownedcomponents", "component"},
	{"ownedrequirements", "requirement"},
	{"ownedactors", "actor"},
	{"ownedinterfaces", "interface"},
	{"ownedcapabilities", "capability"},
	{"ownedmissions", "mission"},
}

var zipMagic = []byte("PK\x03\x04")

// readCapella handles .capella project files, which come in three flavors:
// a direct XML export, a plain text file, or a zip archive of exports.
func (r *Registry) readCapella(path string) ([]Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if bytes.HasPrefix(data, zipMagic) {
		return r.readExportArchive(path, capellaEntry)
	}

	if strings.HasPrefix(strings.TrimSpace(string(data)), "<?xml") {
		elems, err := parseCapellaContent(data)
		if err != nil {
			return nil, err
		}
		return []Document{{Source: path, Elements: elems}}, nil
	}

	return []Document{{Source: path, TypeTag: "capella_text", Text: string(data)}}, nil
}

// parseCapellaContent extracts the Capella model elements from an XML export.
// Elements without a name attribute are skipped.
func parseCapellaContent(data []byte) ([]Element, error) {
	raw, err := scanXML(data)
	if err != nil {
		return nil, err
	}

	var elems []Element
	for _, ct := range capellaTags {
		for _, el := range raw {
			if el.tag != ct.tag || el.attr("name") == "" {
				continue
			}
			elems = append(elems, Element{
				MetaType:    "capella_" + ct.etype,
				Label:       "Capella " + titleCase(ct.etype),
				Type:        ct.etype,
				ID:          el.attr("id"),
				Name:        el.attr("name"),
				Description: el.attr("description"),
				Summary:     el.attr("summary"),
				Nature:      el.attr("nature"),
				Kind:        el.attr("kind"),
			})
		}
	}
	return elems, nil
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
