// SPDX-License-Identifier: MPL-2.0

package store

import (
	"encoding/json"
	"errors"
	"slices"
	"strings"
	"testing"
)

func TestDecodeDocument(t *testing.T) {
	t.Parallel()

	data := `{
  "name": "jlm.LocalStore",
  "jlm_version": "0.3.0",
  "config": {
    "default": "/opt/julia/bin/julia",
    "runtime": {
      "/zz/julia": {"sysimage": "/zz/sys.so"},
      "/aa/julia": {"sysimage": "/aa/sys.so", "note": "kept open"},
      "/mm/julia": {"sysimage": ""}
    }
  }
}`
	doc, migrated, err := DecodeDocument([]byte(data), "data.json")
	if err != nil {
		t.Fatalf("DecodeDocument() error = %v", err)
	}
	if len(migrated) != 0 {
		t.Errorf("migrated = %v, want none", migrated)
	}
	if doc.JLMVersion != "0.3.0" || doc.Config.Default != "/opt/julia/bin/julia" {
		t.Errorf("doc = %+v", doc)
	}
	wantKeys := []string{"/zz/julia", "/aa/julia", "/mm/julia"}
	if got := doc.Config.Runtime.Keys(); !slices.Equal(got, wantKeys) {
		t.Errorf("Runtime.Keys() = %v, want %v", got, wantKeys)
	}
	if e, _ := doc.Config.Runtime.Get("/aa/julia"); e.Sysimage != "/aa/sys.so" {
		t.Errorf("Get(/aa/julia) = %+v", e)
	}
}

func TestDecodeDocument_Defaults(t *testing.T) {
	t.Parallel()

	for _, data := range []string{`{}`, `{"config": {}}`, `{"config": {"runtime": {}}}`} {
		doc, _, err := DecodeDocument([]byte(data), "data.json")
		if err != nil {
			t.Fatalf("DecodeDocument(%s) error = %v", data, err)
		}
		if doc.Config.Default != "" || doc.Config.Runtime.Len() != 0 {
			t.Errorf("DecodeDocument(%s) = %+v, want empty config", data, doc.Config)
		}
		if doc.Name != DocumentName {
			t.Errorf("Name = %q, want %q", doc.Name, DocumentName)
		}
	}
}

func TestDecodeDocument_LegacyEntries(t *testing.T) {
	t.Parallel()

	data := `{"config": {"runtime": {"/a/julia": "/a/sys.so", "/b/julia": {"sysimage": "/b/sys.so"}}}}`
	doc, migrated, err := DecodeDocument([]byte(data), "data.json")
	if err != nil {
		t.Fatalf("DecodeDocument() error = %v", err)
	}
	if !slices.Equal(migrated, []string{"/a/julia"}) {
		t.Errorf("migrated = %v, want [/a/julia]", migrated)
	}
	if e, _ := doc.Config.Runtime.Get("/a/julia"); e.Sysimage != "/a/sys.so" {
		t.Errorf("migrated entry = %+v", e)
	}

	encoded, err := doc.Encode()
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if !strings.Contains(string(encoded), `"/a/julia": {`) {
		t.Errorf("Encode() kept legacy form:\n%s", encoded)
	}
}

func TestDecodeDocument_Corrupt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
	}{
		{"not json", `{"config": `},
		{"cue syntax", `config: runtime: {}`},
		{"empty default", `{"config": {"default": ""}}`},
		{"default not string", `{"config": {"default": 3}}`},
		{"runtime not object", `{"config": {"runtime": []}}`},
		{"entry number", `{"config": {"runtime": {"/a": 1}}}`},
		{"entry without sysimage", `{"config": {"runtime": {"/a": {}}}}`},
		{"sysimage not string", `{"config": {"runtime": {"/a": {"sysimage": true}}}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, _, err := DecodeDocument([]byte(tt.data), "data.json")
			if !errors.Is(err, ErrCorruptDocument) {
				t.Fatalf("DecodeDocument() error = %v, want ErrCorruptDocument", err)
			}
			var corrupt *CorruptDocumentError
			if !errors.As(err, &corrupt) || corrupt.Path != "data.json" {
				t.Errorf("error = %#v, want *CorruptDocumentError for data.json", err)
			}
		})
	}
}

func TestRuntimes(t *testing.T) {
	t.Parallel()

	var r Runtimes
	if data, err := json.Marshal(r); err != nil || string(data) != "{}" {
		t.Errorf("Marshal(zero) = %s, %v; want {}", data, err)
	}

	r.Set("/c", RuntimeEntry{Sysimage: "c"})
	r.Set("/a", RuntimeEntry{Sysimage: "a"})
	r.Set("/b", RuntimeEntry{Sysimage: "b"})
	r.Set("/c", RuntimeEntry{Sysimage: "c2"})

	if got := r.Keys(); !slices.Equal(got, []string{"/c", "/a", "/b"}) {
		t.Errorf("Keys() = %v", got)
	}
	if !r.Delete("/a") || r.Delete("/a") {
		t.Error("Delete() should report true once")
	}

	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if want := `{"/c":{"sysimage":"c2"},"/b":{"sysimage":"b"}}`; string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}

	var visited []string
	for k := range r.All() {
		visited = append(visited, k)
		break
	}
	if !slices.Equal(visited, []string{"/c"}) {
		t.Errorf("All() with early break visited %v", visited)
	}
}

func TestDocument_ApplyAndRoundTrip(t *testing.T) {
	t.Parallel()

	doc := NewDocument()
	doc.Config.Runtime.Set("/x", RuntimeEntry{Sysimage: "/x.so"})

	var p Patch
	p.Default = "/y"
	p.Runtime.Set("/y", RuntimeEntry{Sysimage: "/y.so"})
	p.Runtime.Set("/x", RuntimeEntry{Sysimage: "/x2.so"})
	doc.Apply(p)

	data, err := doc.Encode()
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	back, _, err := DecodeDocument(data, "data.json")
	if err != nil {
		t.Fatalf("DecodeDocument() error = %v\n%s", err, data)
	}
	if back.Config.Default != "/y" {
		t.Errorf("Default = %q, want /y", back.Config.Default)
	}
	if got := back.Config.Runtime.Keys(); !slices.Equal(got, []string{"/x", "/y"}) {
		t.Errorf("Keys() = %v, want [/x /y]", got)
	}
	if e, _ := back.Config.Runtime.Get("/x"); e.Sysimage != "/x2.so" {
		t.Errorf("/x = %+v, want /x2.so", e)
	}
}
