package parse

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/html/charset"

	"github.com/Sriram-PR/index-now/pkg/models"
)

// SitemapNamespace is the sitemaps.org schema namespace
const SitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// InvalidSitemapMessage is logged whenever sitemap content cannot be parsed as XML
const InvalidSitemapMessage = "Invalid sitemap format. The XML could not be parsed. Please check the location of the sitemap."

// --- XML Structs for Sitemap Parsing ---

// XMLURL represents a <url> element in a sitemap
// Pointer fields distinguish a missing element from an empty one
type XMLURL struct {
	XMLName    xml.Name
	Loc        *string `xml:"loc"`
	LastMod    *string `xml:"lastmod"`
	ChangeFreq *string `xml:"changefreq"`
	Priority   *string `xml:"priority"`
}

// XMLSitemap represents a <sitemap> element in a sitemap index file
type XMLSitemap struct {
	XMLName xml.Name
	Loc     *string `xml:"loc"`
	LastMod *string `xml:"lastmod"`
}

// XMLDocument matches both <urlset> and <sitemapindex> roots
// Mixed documents carrying both kinds of children are accepted as well
type XMLDocument struct {
	XMLName  xml.Name
	URLs     []XMLURL     `xml:"url"`
	Sitemaps []XMLSitemap `xml:"sitemap"`
}

// Sitemap is the parsed form of one sitemap document
type Sitemap struct {
	URLs           []models.SitemapURL
	NestedSitemaps []string
}

// IsIndex reports whether the document links to other sitemaps
func (s Sitemap) IsIndex() bool {
	return len(s.NestedSitemaps) > 0
}

// ParseSitemap parses sitemap XML into URL records and nested sitemap links
// Malformed content never fails: the diagnostic is logged and an empty Sitemap is returned
func ParseSitemap(content []byte, log logrus.FieldLogger) Sitemap {
	result := Sitemap{
		URLs:           []models.SitemapURL{},
		NestedSitemaps: []string{},
	}

	doc, err := decodeDocument(content)
	if err != nil {
		log.WithField("error", err).Warn(InvalidSitemapMessage)
		return result
	}
	if !inSitemapNamespace(doc.XMLName) {
		log.Debugf("Root element <%s> uses foreign namespace '%s'", doc.XMLName.Local, doc.XMLName.Space)
	}

	for _, entry := range doc.URLs {
		if !inSitemapNamespace(entry.XMLName) {
			continue
		}
		record, ok := entry.toRecord(log)
		if ok {
			result.URLs = append(result.URLs, record)
		}
	}

	for _, entry := range doc.Sitemaps {
		if !inSitemapNamespace(entry.XMLName) || entry.Loc == nil {
			continue
		}
		if loc := strings.TrimSpace(*entry.Loc); loc != "" {
			result.NestedSitemaps = append(result.NestedSitemaps, loc)
		}
	}

	return result
}

// URLs returns the <url> records of a sitemap document, ignoring nested sitemap links
func URLs(content []byte, log logrus.FieldLogger) []models.SitemapURL {
	return ParseSitemap(content, log).URLs
}

// Locations returns only the <loc> values of the <url> records
func Locations(content []byte, log logrus.FieldLogger) []string {
	return models.Locations(URLs(content, log))
}

// NestedSitemapLinks returns the <sitemap><loc> values of a sitemap index document
func NestedSitemapLinks(content []byte, log logrus.FieldLogger) []string {
	return ParseSitemap(content, log).NestedSitemaps
}

func decodeDocument(content []byte) (*XMLDocument, error) {
	decoder := xml.NewDecoder(bytes.NewReader(content))
	decoder.CharsetReader = charset.NewReaderLabel // Sitemaps are not always UTF-8

	var doc XMLDocument
	if err := decoder.Decode(&doc); err != nil {
		return nil, err
	}
	if err := checkTrailing(decoder); err != nil {
		return nil, err
	}
	return &doc, nil
}

// checkTrailing accepts only whitespace, comments and processing instructions after the root element
func checkTrailing(decoder *xml.Decoder) error {
	for {
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		switch t := token.(type) {
		case xml.Comment, xml.ProcInst:
		case xml.CharData:
			if len(bytes.TrimSpace(t)) > 0 {
				return fmt.Errorf("unexpected text after root element at offset %d", decoder.InputOffset())
			}
		case xml.StartElement:
			return fmt.Errorf("unexpected element <%s> after root element", t.Name.Local)
		default:
			return fmt.Errorf("unexpected %T after root element", t)
		}
	}
}

func inSitemapNamespace(name xml.Name) bool {
	return name.Space == "" || name.Space == SitemapNamespace
}

// toRecord converts one <url> element, dropping it when <loc> is missing or blank
func (u XMLURL) toRecord(log logrus.FieldLogger) (models.SitemapURL, bool) {
	if u.Loc == nil {
		return models.SitemapURL{}, false
	}
	loc := strings.TrimSpace(*u.Loc)
	if loc == "" {
		return models.SitemapURL{}, false
	}
	record := models.SitemapURL{Loc: loc}
	entryLog := log.WithField("loc", loc)

	if u.LastMod != nil {
		lastMod, err := ParseLastModified(*u.LastMod)
		if err != nil {
			entryLog.Debugf("Ignoring unparseable lastmod: %v", err)
		} else {
			record.LastMod = &lastMod
		}
	}

	if u.ChangeFreq != nil {
		freq, known := models.ParseChangeFrequency(*u.ChangeFreq)
		if !known {
			entryLog.Debugf("Unknown changefreq '%s'", *u.ChangeFreq)
		}
		if freq != "" {
			record.ChangeFreq = &freq
		}
	}

	if u.Priority != nil {
		priority, err := strconv.ParseFloat(strings.TrimSpace(*u.Priority), 64)
		if err != nil {
			entryLog.Debugf("Ignoring unparseable priority '%s'", *u.Priority)
		} else {
			record.Priority = &priority
		}
	}

	return record, true
}
