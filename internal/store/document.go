// SPDX-License-Identifier: MPL-2.0

package store

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"iter"
	"slices"

	"cuelang.org/go/cue"

	"jlm-cli/pkg/cueutil"
)

// DocumentName is the value of the "name" field written to every document.
const DocumentName = "jlm.LocalStore"

//go:embed document_schema.cue
var documentSchema []byte

type (
	// Document is the content of a local store's data.json.
	Document struct {
		Name       string `json:"name"`
		JLMVersion string `json:"jlm_version"`
		Config     Config `json:"config"`
	}

	// Config holds the per-project runtime settings.
	Config struct {
		// Default is the executable identity used when none is given
		// explicitly. Empty means unset.
		Default string   `json:"default,omitempty"`
		Runtime Runtimes `json:"runtime"`
	}

	// RuntimeEntry is the per-executable configuration.
	RuntimeEntry struct {
		Sysimage string `json:"sysimage"`
	}

	// Runtimes maps executable identities to their entries and remembers
	// insertion order. The zero value is an empty map ready for use.
	Runtimes struct {
		keys    []string
		entries map[string]RuntimeEntry
	}

	// Patch is a partial update applied by LocalStore.Set. A non-empty
	// Default replaces the stored default; Runtime entries are merged into
	// the stored map one level deep, existing keys keep their position.
	Patch struct {
		Default string
		Runtime Runtimes
	}
)

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{Name: DocumentName}
}

// Set adds or replaces the entry for executable. New keys are appended.
func (r *Runtimes) Set(executable string, entry RuntimeEntry) {
	if r.entries == nil {
		r.entries = make(map[string]RuntimeEntry)
	}
	if _, ok := r.entries[executable]; !ok {
		r.keys = append(r.keys, executable)
	}
	r.entries[executable] = entry
}

// Delete removes the entry for executable and reports whether it existed.
func (r *Runtimes) Delete(executable string) bool {
	if _, ok := r.entries[executable]; !ok {
		return false
	}
	delete(r.entries, executable)
	r.keys = slices.DeleteFunc(r.keys, func(k string) bool { return k == executable })
	return true
}

// Get returns the entry for executable.
func (r Runtimes) Get(executable string) (RuntimeEntry, bool) {
	e, ok := r.entries[executable]
	return e, ok
}

// Len returns the number of entries.
func (r Runtimes) Len() int { return len(r.keys) }

// Keys returns the executable identities in insertion order.
func (r Runtimes) Keys() []string { return slices.Clone(r.keys) }

// All iterates over the entries in insertion order.
func (r Runtimes) All() iter.Seq2[string, RuntimeEntry] {
	return func(yield func(string, RuntimeEntry) bool) {
		for _, k := range r.keys {
			if !yield(k, r.entries[k]) {
				return
			}
		}
	}
}

// MarshalJSON encodes the entries as a JSON object in insertion order.
func (r Runtimes) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(r.entries[k])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Apply merges p into the document.
func (d *Document) Apply(p Patch) {
	if p.Default != "" {
		d.Config.Default = p.Default
	}
	for exe, entry := range p.Runtime.All() {
		d.Config.Runtime.Set(exe, entry)
	}
}

// Encode renders the document as indented JSON with a trailing newline.
func (d *Document) Encode() ([]byte, error) {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode store document: %w", err)
	}
	return append(data, '\n'), nil
}

// DecodeDocument validates data against the document schema and decodes it.
// Runtime entries keep the order in which they appear in data. Entries in
// the legacy bare-string form are converted to RuntimeEntry values and their
// keys are returned in migrated.
func DecodeDocument(data []byte, filename string) (doc *Document, migrated []string, err error) {
	unified, err := cueutil.Validate(documentSchema, data, "#Document",
		cueutil.WithFormat(cueutil.FormatJSON),
		cueutil.WithFilename(filename),
	)
	if err != nil {
		return nil, nil, &CorruptDocumentError{Path: filename, Err: err}
	}

	doc = NewDocument()
	for path, dst := range map[string]*string{
		"name":           &doc.Name,
		"jlm_version":    &doc.JLMVersion,
		"config.default": &doc.Config.Default,
	} {
		v := unified.LookupPath(cue.ParsePath(path))
		if !v.Exists() || !v.IsConcrete() {
			continue
		}
		if *dst, err = v.String(); err != nil {
			return nil, nil, &CorruptDocumentError{Path: filename, Err: fmt.Errorf("%s: %w", path, err)}
		}
	}

	fields, err := unified.LookupPath(cue.ParsePath("config.runtime")).Fields()
	if err != nil {
		return nil, nil, &CorruptDocumentError{Path: filename, Err: err}
	}
	for fields.Next() {
		exe := fields.Selector().Unquoted()
		entry, legacy, err := decodeRuntimeEntry(fields.Value())
		if err != nil {
			return nil, nil, &CorruptDocumentError{Path: filename, Err: fmt.Errorf("config.runtime[%q]: %w", exe, err)}
		}
		if legacy {
			migrated = append(migrated, exe)
		}
		doc.Config.Runtime.Set(exe, entry)
	}

	return doc, migrated, nil
}

func decodeRuntimeEntry(v cue.Value) (entry RuntimeEntry, legacy bool, err error) {
	if v.Kind() == cue.StringKind {
		s, err := v.String()
		return RuntimeEntry{Sysimage: s}, true, err
	}
	s, err := v.LookupPath(cue.ParsePath("sysimage")).String()
	return RuntimeEntry{Sysimage: s}, false, err
}
