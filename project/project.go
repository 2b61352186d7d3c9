package project

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkotlin/pkc/analyzer"
	"github.com/pkotlin/pkc/token"
)

// Extension is the file extension of a project document.
const Extension = ".pk"

// TokenEntry is a token saved in a project document.
type TokenEntry struct {
	Type  token.Kind `json:"type"`
	Value string     `json:"value"`
}

// Document is a program saved along with the tokens and the identifiers of its last analysis.
type Document struct {
	Code   string        `json:"code"`
	Tokens []*TokenEntry `json:"tokens"`
	Vars   []string      `json:"vars"`
}

// FromResult makes a document from a program and its analysis.
func FromResult(code string, res *analyzer.AnalysisResult) *Document {
	doc := &Document{
		Code:   code,
		Tokens: make([]*TokenEntry, 0, len(res.Tokens)),
		Vars:   append([]string{}, res.Identifiers...),
	}
	for _, tok := range res.Tokens {
		doc.Tokens = append(doc.Tokens, &TokenEntry{
			Type:  tok.Kind,
			Value: tok.Text,
		})
	}
	return doc
}

// Title returns the name of a project file without its directory and extension.
func Title(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Write encodes a document as JSON.
func Write(w io.Writer, doc *Document) error {
	b, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%v\n", string(b))
	return err
}

// Read decodes a document. Missing lists are returned as empty lists.
func Read(r io.Reader) (*Document, error) {
	doc := &Document{}
	err := json.NewDecoder(r).Decode(doc)
	if err != nil {
		return nil, err
	}
	if doc.Tokens == nil {
		doc.Tokens = []*TokenEntry{}
	}
	if doc.Vars == nil {
		doc.Vars = []string{}
	}
	return doc, nil
}

// Save writes a document to `path`, appending Extension when the path lacks it, and returns the title
// of the project.
func Save(path string, doc *Document) (string, error) {
	if !strings.HasSuffix(path, Extension) {
		path += Extension
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return "", fmt.Errorf("Cannot create the project file %s: %w", path, err)
	}
	defer f.Close()

	err = Write(f, doc)
	if err != nil {
		return "", fmt.Errorf("Cannot write the project file %s: %w", path, err)
	}

	return Title(path), nil
}

// Load reads the document saved at `path`.
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("Cannot open the project file %s: %w", path, err)
	}
	defer f.Close()

	doc, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("Cannot read the project file %s: %w", path, err)
	}
	return doc, nil
}
