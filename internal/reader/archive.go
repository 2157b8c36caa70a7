package reader

import (
	"archive/zip"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
)

// entryParser decides whether an archive entry is interesting and parses it.
type entryParser func(name string, data []byte) ([]Element, bool, error)

// readAird handles .aird representation files: zip archives whose XML
// entries carry model elements.
func (r *Registry) readAird(path string) ([]Document, error) {
	return r.readExportArchive(path, airdEntry)
}

// readExportArchive traverses a zip archive of model exports. A decode or
// parse failure on one inner entry is logged and skipped; it never aborts
// processing of sibling entries.
func (r *Registry) readExportArchive(path string, parse entryParser) ([]Document, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open archive %s: %w", path, err)
	}
	defer zr.Close()

	var docs []Document
	for _, f := range zr.File {
		data, err := readZipEntry(f)
		if err != nil {
			r.log.Warn("skipping archive entry",
				zap.String("archive", path),
				zap.String("entry", f.Name),
				zap.Error(err))
			continue
		}

		elems, matched, err := parse(f.Name, data)
		if err != nil {
			r.log.Warn("skipping archive entry",
				zap.String("archive", path),
				zap.String("entry", f.Name),
				zap.Error(err))
			continue
		}
		if !matched || len(elems) == 0 {
			continue
		}
		docs = append(docs, Document{
			Source:   path + "#" + f.Name,
			Elements: elems,
		})
	}
	return docs, nil
}

func readZipEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// airdEntry extracts model elements from XML entries of an .aird archive.
// Entries without a name attribute are skipped; the element type is the
// container tag with its "owned" prefix stripped.
func airdEntry(name string, data []byte) ([]Element, bool, error) {
	if !strings.HasSuffix(name, ".xml") {
		return nil, false, nil
	}
	raw, err := scanXML(data)
	if err != nil {
		return nil, true, err
	}

	var elems []Element
	for _, el := range raw {
		switch el.tag {
		case "ownedfunctions", "ownedcomponents", "ownedrequirements", "ownedactors":
			if el.attr("name") == "" {
				continue
			}
			elems = append(elems, Element{
				MetaType:    "aird_element",
				Label:       "Model Element",
				Type:        strings.TrimPrefix(el.tag, "owned"),
				ID:          el.attr("id"),
				Name:        el.attr("name"),
				Description: el.attr("description"),
				Summary:     el.attr("summary"),
			})
		}
	}
	return elems, true, nil
}

// capellaEntry parses model exports nested inside a binary .capella archive.
func capellaEntry(name string, data []byte) ([]Element, bool, error) {
	if !strings.HasSuffix(name, ".xml") &&
		!strings.HasSuffix(name, ".capella") &&
		!strings.HasSuffix(name, ".aird") {
		return nil, false, nil
	}
	elems, err := parseCapellaContent(data)
	return elems, true, err
}
