// Package obo reads Gene Ontology terms from OBO 1.2 flat files such as go-basic.obo.
package obo

import (
	"bufio"
	"io"
	"strings"

	"github.com/emrgen/bioref/internal/model"
)

const scannerBufferSize = 1 << 20

// Ontology is the subset of an OBO document needed to seed the term registry.
type Ontology struct {
	FormatVersion string
	DataVersion   string
	Ontology      string
	Terms         []Term
}

type Term struct {
	ID         string
	Name       string
	Namespace  string
	Definition string
	AltIDs     []string
	IsObsolete bool
}

// Category maps the GO namespace of the term, nil for unknown namespaces.
func (t *Term) Category() *model.Category {
	c, err := model.ParseCategory(t.Namespace)
	if err != nil {
		return nil
	}
	return &c
}

// Parse reads every [Term] stanza. Other stanzas are skipped.
func Parse(r io.Reader) (*Ontology, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), scannerBufferSize)

	ont := &Ontology{}
	header := true

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '!' {
			continue
		}

		if line[0] == '[' {
			header = false
			if line == "[Term]" {
				ont.Terms = append(ont.Terms, parseTerm(scanner))
			}
			continue
		}

		if header {
			parseHeaderLine(ont, line)
		}
	}

	return ont, scanner.Err()
}

func parseHeaderLine(ont *Ontology, line string) {
	key, val, ok := strings.Cut(line, ": ")
	if !ok {
		return
	}
	switch key {
	case "format-version":
		ont.FormatVersion = val
	case "data-version":
		ont.DataVersion = val
	case "ontology":
		ont.Ontology = val
	}
}

func parseTerm(scanner *bufio.Scanner) Term {
	var t Term
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			break
		}

		key, val, ok := strings.Cut(line, ": ")
		if !ok {
			continue
		}
		val = stripComment(val)

		switch key {
		case "id":
			t.ID = val
		case "name":
			t.Name = val
		case "namespace":
			t.Namespace = val
		case "def":
			t.Definition = parseQuoted(val)
		case "alt_id":
			t.AltIDs = append(t.AltIDs, val)
		case "is_obsolete":
			t.IsObsolete = val == "true"
		}
	}
	return t
}

// stripComment drops a trailing " ! comment".
func stripComment(val string) string {
	if strings.HasPrefix(val, `"`) {
		return val
	}
	if i := strings.Index(val, " !"); i >= 0 {
		return strings.TrimSpace(val[:i])
	}
	return val
}

// parseQuoted extracts the text between the first pair of unescaped double quotes.
func parseQuoted(s string) string {
	start := strings.IndexByte(s, '"')
	if start < 0 {
		return s
	}

	var b strings.Builder
	for i := start + 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			if i+1 < len(s) {
				i++
				b.WriteByte(s[i])
			}
		case '"':
			return b.String()
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
