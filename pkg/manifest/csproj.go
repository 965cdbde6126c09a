package manifest

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/matzehuels/souper/pkg/errors"
	"github.com/matzehuels/souper/pkg/soup"
)

const packageReference = "PackageReference"

func parseCsProj(content string, meta soup.Metadata) (soup.Set, error) {
	dec := xml.NewDecoder(strings.NewReader(content))

	var charset string
	dec.CharsetReader = func(label string, input io.Reader) (io.Reader, error) {
		if strings.EqualFold(label, "us-ascii") || strings.EqualFold(label, "ascii") {
			return input, nil
		}
		charset = label
		return nil, fmt.Errorf("unsupported charset %q", label)
	}

	var set soup.Set
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			if charset != "" {
				return soup.Set{}, newError(errors.ErrCodeAttributeEncoding, CsProj,
					fmt.Sprintf("declared encoding %q is not UTF-8", charset), nil)
			}
			return soup.Set{}, newError(errors.ErrCodeInvalidStructure, CsProj, "invalid XML structure", err)
		}

		el, ok := tok.(xml.StartElement)
		if !ok || el.Name.Local != packageReference {
			continue
		}

		name, err := requiredAttr(el, "Include")
		if err != nil {
			return soup.Set{}, err
		}
		if strings.TrimSpace(name) == "" {
			return soup.Set{}, newError(errors.ErrCodeMissingAttribute, CsProj,
				packageReference+" has an empty Include attribute", nil)
		}
		version, err := requiredAttr(el, "Version")
		if err != nil {
			return soup.Set{}, err
		}
		set.Insert(record(name, version, meta))
	}
	return set, nil
}

func requiredAttr(el xml.StartElement, key string) (string, error) {
	for _, a := range el.Attr {
		if a.Name.Space == "" && a.Name.Local == key {
			return a.Value, nil
		}
	}
	return "", newError(errors.ErrCodeMissingAttribute, CsProj,
		fmt.Sprintf("%s missing required attribute %s", packageReference, key), nil)
}
