package report

import (
	"encoding/xml"
	"io"
)

// ReadFileObjects returns every <fileobject> element of a report.
func ReadFileObjects(r io.Reader) ([]FileObject, error) {
	dec := xml.NewDecoder(r)

	var objects []FileObject
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		if start, ok := tok.(xml.StartElement); ok && start.Name.Local == "fileobject" {
			var fo FileObject
			if err := dec.DecodeElement(&fo, &start); err != nil {
				return nil, err
			}
			objects = append(objects, fo)
		}
	}
	return objects, nil
}
