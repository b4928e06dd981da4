// Copyright (c) 2025 Stefano Scafiti
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.
package report

import (
	"encoding/xml"
	"io"
)

// XMLWriter streams a report as XML: the header first, then one
// element per file object, then an optional summary.
type XMLWriter struct {
	w   io.Writer
	enc *xml.Encoder
}

func NewXMLWriter(w io.Writer) *XMLWriter {
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")

	return &XMLWriter{
		w:   w,
		enc: enc,
	}
}

// WriteHeader writes the XML declaration, opens the root element and
// encodes hdr inside it.
func (w *XMLWriter) WriteHeader(hdr Header) error {
	if _, err := io.WriteString(w.w, xml.Header); err != nil {
		return err
	}

	start := xml.StartElement{
		Name: xml.Name{Local: "report"},
		Attr: []xml.Attr{
			{Name: xml.Name{Local: "xmloutputversion"}, Value: hdr.XmlOutput},
		},
	}
	if err := w.enc.EncodeToken(start); err != nil {
		return err
	}

	return w.enc.Encode(struct {
		XMLName xml.Name `xml:"header"`
		Creator Creator  `xml:"creator"`
		Source  Source   `xml:"source"`
	}{
		Creator: hdr.Creator,
		Source:  hdr.Source,
	})
}

func (w *XMLWriter) WriteFileObject(obj FileObject) error {
	return w.enc.Encode(obj)
}

func (w *XMLWriter) WriteSummary(s Summary) error {
	return w.enc.Encode(s)
}

// Close writes the closing root tag and flushes the encoder.
func (w *XMLWriter) Close() error {
	if err := w.enc.EncodeToken(xml.EndElement{Name: xml.Name{Local: "report"}}); err != nil {
		return err
	}
	return w.enc.Flush()
}
