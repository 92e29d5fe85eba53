package feed

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
)

// parseXML collects the text of every <title> that is a direct child of an
// <item>. Item placement differs between RSS 2.0 (inside <channel>) and RDF
// (beside it), so the document is scanned as a token stream.
func parseXML(r io.Reader) ([]string, error) {
	dec := xml.NewDecoder(r)
	dec.Strict = false
	dec.AutoClose = xml.HTMLAutoClose
	dec.Entity = xml.HTMLEntity
	dec.CharsetReader = charsetReader

	var (
		titles  []string
		inItem  int // depth of the open <item>, 0 when outside
		depth   int
		inTitle bool
		sb      strings.Builder
		sawRoot bool
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("feed: parse xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			sawRoot = true
			depth++
			switch {
			case t.Name.Local == "item" && inItem == 0:
				inItem = depth
			case t.Name.Local == "title" && inItem > 0 && depth == inItem+1:
				inTitle = true
				sb.Reset()
			}
		case xml.EndElement:
			switch {
			case inTitle && t.Name.Local == "title":
				titles = append(titles, sb.String())
				inTitle = false
			case inItem == depth && t.Name.Local == "item":
				inItem = 0
			}
			depth--
		case xml.CharData:
			if inTitle {
				sb.Write(t)
			}
		}
	}
	if !sawRoot {
		return nil, errors.New("feed: empty xml document")
	}
	return titles, nil
}

func charsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("feed: unsupported charset %q", label)
	}
	return enc.NewDecoder().Reader(input), nil
}
