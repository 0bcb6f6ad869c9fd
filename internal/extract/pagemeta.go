package extract

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var tipOffKeywords = []string{"tip", "tipoff", "tip-off", "start", "time"}

// PageMeta is document-level context extracted once and stamped onto every
// matchup produced from that document.
type PageMeta struct {
	RoundLabel string
	Venue      string
	TipOff     string
	SourceURL  string
}

// PageMetaFor pulls round label, venue, and tip-off time out of the document
// headings and classed elements. Plain-text documents only contribute the
// source URL; the text grammar carries its own date/venue lines.
func PageMetaFor(doc Document) PageMeta {
	meta := PageMeta{SourceURL: doc.SourceURL}
	if len(doc.Body) == 0 || !bytes.Contains(doc.Body, []byte("<")) {
		return meta
	}
	page, err := goquery.NewDocumentFromReader(bytes.NewReader(doc.Body))
	if err != nil {
		return meta
	}

	page.Find("h1, h2, h3").EachWithBreak(func(_ int, heading *goquery.Selection) bool {
		text := collapseSpace(heading.Text())
		if m := defaultHeaderPattern.FindStringSubmatch(text); m != nil {
			meta.RoundLabel = text
			return false
		}
		return true
	})

	page.Find("*").EachWithBreak(func(_ int, node *goquery.Selection) bool {
		class := strings.ToLower(node.AttrOr("class", ""))
		if class == "" {
			return true
		}
		text := collapseSpace(node.Text())
		if text == "" {
			return true
		}
		if meta.Venue == "" && (strings.Contains(class, "venue") || strings.Contains(class, "location")) {
			meta.Venue = text
		}
		if meta.TipOff == "" && classHasAny(class, tipOffKeywords) {
			meta.TipOff = text
		}
		return meta.Venue == "" || meta.TipOff == ""
	})
	return meta
}

// Attach layers page context under any value the matchup already carries.
func (m PageMeta) Attach(matchup *RawMatchup) {
	if matchup.RoundLabel == "" {
		matchup.RoundLabel = m.RoundLabel
	}
	if matchup.Extra == nil {
		matchup.Extra = map[string]string{}
	}
	if m.SourceURL != "" {
		matchup.Extra["source_url"] = m.SourceURL
	}
	if m.Venue != "" && matchup.Extra["venue"] == "" {
		matchup.Extra["venue"] = m.Venue
	}
	if m.TipOff != "" && matchup.Extra["tip_time"] == "" {
		matchup.Extra["tip_time"] = m.TipOff
	}
}

func classHasAny(class string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(class, keyword) {
			return true
		}
	}
	return false
}
