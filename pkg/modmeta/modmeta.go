// SPDX-License-Identifier: MPL-2.0

// Package modmeta parses versioned mod metadata documents (mod.json) into
// typed records. Three schema tiers exist: tier 0 is the legacy format
// without a schemaVersion field, tier 1 added the field, and tier 2 is the
// latest format with structured self-validation (format warnings).
package modmeta

import (
	"encoding/json"
	"errors"
	"fmt"
)

const (
	// MetadataFilename is the conventional metadata file name at a mod's
	// package root.
	MetadataFilename = "mod.json"

	// Tier0 is the legacy schema: no schemaVersion field (or an explicit 0).
	Tier0 SchemaTier = 0
	// Tier1 added the schemaVersion field without self-validation support.
	Tier1 SchemaTier = 1
	// Tier2 is the latest schema and supports structured format warnings.
	Tier2 SchemaTier = 2

	// LatestTier is the newest supported schema tier.
	LatestTier = Tier2
)

var (
	// ErrMissingID is returned when a metadata document declares no id.
	// Callers can check for it with errors.Is.
	ErrMissingID = errors.New("metadata declares no id")

	// ErrUnsupportedTier is the sentinel wrapped by UnsupportedTierError.
	ErrUnsupportedTier = errors.New("unsupported metadata schema version")
)

type (
	// SchemaTier identifies the metadata schema version a document was
	// parsed under.
	SchemaTier int

	// Person is one entry of a metadata authors list. Documents may declare
	// a person either as a bare string or as an object with a name field.
	Person struct {
		// Name is the person's display name (never empty after decoding).
		Name string
		// Contact holds optional contact entries from the object form.
		Contact map[string]string
	}

	// Record is one mod's parsed metadata.
	Record struct {
		// ID is the mod's unique identifier (mandatory).
		ID string
		// Name is the display name; falls back to ID when the document
		// declares none.
		Name string
		// Version is the declared version string, verbatim.
		Version string
		// Authors lists the declared authors in document order.
		Authors []Person
		// Tier is the schema tier the document was parsed under.
		Tier SchemaTier

		// raw retains the document for tier 2 self-validation.
		raw []byte
	}

	// UnsupportedTierError is returned when a document declares a
	// schemaVersion outside the supported range.
	UnsupportedTierError struct {
		Declared int
	}
)

// Error implements the error interface.
func (e *UnsupportedTierError) Error() string {
	return fmt.Sprintf("unsupported metadata schema version %d (supported: 0 through %d)", e.Declared, int(LatestTier))
}

// Unwrap returns ErrUnsupportedTier so callers can use errors.Is.
func (e *UnsupportedTierError) Unwrap() error { return ErrUnsupportedTier }

// String renders the tier as "v<n>".
func (t SchemaTier) String() string { return fmt.Sprintf("v%d", int(t)) }

// UnmarshalJSON accepts either a JSON string or an object with a mandatory
// name field.
func (p *Person) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		if name == "" {
			return errors.New("author entry is an empty string")
		}
		p.Name = name
		return nil
	}

	var obj struct {
		Name    string            `json:"name"`
		Contact map[string]string `json:"contact"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("author entry must be a string or an object: %w", err)
	}
	if obj.Name == "" {
		return errors.New("author entry object declares no name")
	}
	p.Name = obj.Name
	p.Contact = obj.Contact
	return nil
}

// AuthorNames returns the declared author names in document order.
func (r *Record) AuthorNames() []string {
	if len(r.Authors) == 0 {
		return nil
	}
	names := make([]string, len(r.Authors))
	for i, p := range r.Authors {
		names[i] = p.Name
	}
	return names
}

// Parse decodes a mod.json document into a Record. The schema tier is
// sniffed from the top-level schemaVersion field: absent (or 0) means tier 0,
// 1 means tier 1, 2 means tier 2. Any other value is an UnsupportedTierError.
func Parse(data []byte) (*Record, error) {
	var doc struct {
		SchemaVersion *int     `json:"schemaVersion"`
		ID            string   `json:"id"`
		Name          string   `json:"name"`
		Version       string   `json:"version"`
		Authors       []Person `json:"authors"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("malformed metadata document: %w", err)
	}

	tier := Tier0
	if doc.SchemaVersion != nil {
		switch *doc.SchemaVersion {
		case 0:
			tier = Tier0
		case 1:
			tier = Tier1
		case 2:
			tier = Tier2
		default:
			return nil, &UnsupportedTierError{Declared: *doc.SchemaVersion}
		}
	}

	if doc.ID == "" {
		return nil, ErrMissingID
	}

	name := doc.Name
	if name == "" {
		name = doc.ID
	}

	return &Record{
		ID:      doc.ID,
		Name:    name,
		Version: doc.Version,
		Authors: doc.Authors,
		Tier:    tier,
		raw:     data,
	}, nil
}
