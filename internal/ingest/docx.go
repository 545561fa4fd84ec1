package ingest

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

const wordNS = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

// ReadDocx returns the text of each top-level paragraph in a .docx file, in
// document order. Paragraphs inside tables and text boxes are not included.
func ReadDocx(path string) ([]string, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open docx: %w", err)
	}
	defer zr.Close()

	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open document.xml: %w", err)
		}
		defer rc.Close()
		return readParagraphs(rc)
	}
	return nil, fmt.Errorf("open docx: %s has no word/document.xml", path)
}

func readParagraphs(r io.Reader) ([]string, error) {
	dec := xml.NewDecoder(r)

	paras := []string{}
	var (
		sb     strings.Builder
		inPara bool
		inText bool
		nested int // depth inside w:tbl / w:txbxContent
	)

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse document.xml: %w", err)
		}

		switch el := tok.(type) {
		case xml.StartElement:
			if el.Name.Space != wordNS {
				continue
			}
			switch el.Name.Local {
			case "tbl", "txbxContent":
				nested++
			case "p":
				if nested == 0 {
					inPara = true
					sb.Reset()
				}
			case "t":
				inText = inPara && nested == 0
			case "tab":
				if inPara && nested == 0 {
					sb.WriteByte('\t')
				}
			case "br", "cr":
				if inPara && nested == 0 {
					sb.WriteByte('\n')
				}
			}
		case xml.EndElement:
			if el.Name.Space != wordNS {
				continue
			}
			switch el.Name.Local {
			case "tbl", "txbxContent":
				nested--
			case "p":
				if inPara && nested == 0 {
					paras = append(paras, sb.String())
					inPara = false
				}
			case "t":
				inText = false
			}
		case xml.CharData:
			if inText {
				sb.Write(el)
			}
		}
	}
	return paras, nil
}
