package render

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ContentType is the MIME type of the generated documents.
const ContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

const (
	wordNamespace = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

	contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
		`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
		`<Default Extension="xml" ContentType="application/xml"/>` +
		`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
		`</Types>`

	packageRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
		`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
		`</Relationships>`

	documentRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`
)

type wDocument struct {
	XMLName xml.Name `xml:"w:document"`
	NS      string   `xml:"xmlns:w,attr"`
	Body    wBody    `xml:"w:body"`
}

type wBody struct {
	Paragraphs []wParagraph `xml:"w:p"`
	Section    wSectPr      `xml:"w:sectPr"`
}

type wParagraph struct {
	Run wRun `xml:"w:r"`
}

type wRun struct {
	Props *wRunProps `xml:"w:rPr,omitempty"`
	Text  wText      `xml:"w:t"`
}

type wRunProps struct {
	Fonts  *wFonts `xml:"w:rFonts,omitempty"`
	Bold   *wEmpty `xml:"w:b,omitempty"`
	Size   *wVal   `xml:"w:sz,omitempty"`
	SizeCS *wVal   `xml:"w:szCs,omitempty"`
}

type wFonts struct {
	ASCII string `xml:"w:ascii,attr"`
	HAnsi string `xml:"w:hAnsi,attr"`
	CS    string `xml:"w:cs,attr"`
}

type wEmpty struct{}

type wVal struct {
	Val string `xml:"w:val,attr"`
}

type wText struct {
	Space string `xml:"xml:space,attr,omitempty"`
	Value string `xml:",chardata"`
}

type wSectPr struct {
	PageSize   wPageSize   `xml:"w:pgSz"`
	PageMargin wPageMargin `xml:"w:pgMar"`
}

type wPageSize struct {
	W int `xml:"w:w,attr"`
	H int `xml:"w:h,attr"`
}

type wPageMargin struct {
	Top    int `xml:"w:top,attr"`
	Right  int `xml:"w:right,attr"`
	Bottom int `xml:"w:bottom,attr"`
	Left   int `xml:"w:left,attr"`
	Header int `xml:"w:header,attr"`
	Footer int `xml:"w:footer,attr"`
	Gutter int `xml:"w:gutter,attr"`
}

// documentXML renders word/document.xml for the paragraphs on a US Letter page.
func documentXML(paragraphs []Paragraph, margin int) ([]byte, error) {
	doc := wDocument{
		NS: wordNamespace,
		Body: wBody{
			Paragraphs: make([]wParagraph, 0, len(paragraphs)),
			Section: wSectPr{
				PageSize: wPageSize{W: 12240, H: 15840},
				PageMargin: wPageMargin{
					Top: margin, Right: margin, Bottom: margin, Left: margin,
					Header: 720, Footer: 720,
				},
			},
		},
	}
	for _, p := range paragraphs {
		doc.Body.Paragraphs = append(doc.Body.Paragraphs, wParagraph{Run: toRun(p)})
	}
	body, err := xml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal document.xml: %w", err)
	}
	return append([]byte(xml.Header), body...), nil
}

func toRun(p Paragraph) wRun {
	run := wRun{Text: wText{Value: p.Text}}
	if p.Text != strings.TrimSpace(p.Text) {
		run.Text.Space = "preserve"
	}
	props := &wRunProps{}
	set := false
	if p.Style.Font != "" {
		props.Fonts = &wFonts{ASCII: p.Style.Font, HAnsi: p.Style.Font, CS: p.Style.Font}
		set = true
	}
	if p.Style.Bold {
		props.Bold = &wEmpty{}
		set = true
	}
	if p.Style.Size > 0 {
		size := strconv.Itoa(p.Style.Size)
		props.Size = &wVal{Val: size}
		props.SizeCS = &wVal{Val: size}
		set = true
	}
	if set {
		run.Props = props
	}
	return run
}

// BuildDOCX packages the paragraphs into a .docx archive.
func BuildDOCX(kind Kind, paragraphs []Paragraph, modified time.Time) ([]byte, error) {
	docXML, err := documentXML(paragraphs, kind.margin())
	if err != nil {
		return nil, err
	}
	var output bytes.Buffer
	writer := zip.NewWriter(&output)
	parts := []struct {
		name string
		data []byte
	}{
		{"[Content_Types].xml", []byte(contentTypesXML)},
		{"_rels/.rels", []byte(packageRelsXML)},
		{"word/_rels/document.xml.rels", []byte(documentRelsXML)},
		{"word/document.xml", docXML},
	}
	for _, part := range parts {
		if err := writeZipFile(writer, part.name, part.data, modified); err != nil {
			return nil, fmt.Errorf("write %s: %w", part.name, err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}
	return output.Bytes(), nil
}

func writeZipFile(writer *zip.Writer, name string, content []byte, modified time.Time) error {
	header := &zip.FileHeader{
		Name:     name,
		Method:   zip.Deflate,
		Modified: modified,
	}
	dst, err := writer.CreateHeader(header)
	if err != nil {
		return err
	}
	_, err = dst.Write(content)
	return err
}
