// SPDX-License-Identifier: MPL-2.0

package modmeta

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"golang.org/x/exp/slices"
)

//go:embed modmeta_schema.json
var tier2Schema string

// tier2Validator is compiled once at init; the schema is embedded and
// covered by tests, so a compile failure is a programming error.
var tier2Validator = jsonschema.MustCompileString("modmeta_schema.json", tier2Schema)

// EmitFormatWarnings runs the tier-2 self-validation checks and passes each
// warning message to sink, one call per warning. Records parsed under older
// tiers emit nothing. Emission order is deterministic: the semantic
// versioning check first, then schema violations ordered by document
// location.
func (r *Record) EmitFormatWarnings(sink func(message string)) {
	if r.Tier != LatestTier {
		return
	}

	if _, err := semver.NewVersion(r.Version); err != nil {
		sink(fmt.Sprintf("version %q does not follow semantic versioning", r.Version))
	}

	for _, w := range r.schemaWarnings() {
		sink(w)
	}
}

// schemaWarnings validates the raw document against the tier-2 schema and
// returns one formatted message per leaf violation, sorted by
// (instance location, message) and deduplicated.
func (r *Record) schemaWarnings() []string {
	if len(r.raw) == 0 {
		return nil
	}

	var payload any
	if err := json.Unmarshal(r.raw, &payload); err != nil {
		return nil
	}

	err := tier2Validator.Validate(payload)
	if err == nil {
		return nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return nil
	}

	warnings := collectLeafViolations(ve, nil)
	slices.Sort(warnings)
	return slices.Compact(warnings)
}

// collectLeafViolations walks the validation error tree and formats its
// leaves. Intermediate nodes only restate which subschema failed.
func collectLeafViolations(ve *jsonschema.ValidationError, out []string) []string {
	if len(ve.Causes) == 0 {
		loc := ve.InstanceLocation
		if loc == "" {
			loc = "/"
		}
		return append(out, fmt.Sprintf("metadata %s: %s", loc, strings.TrimSpace(ve.Message)))
	}
	for _, cause := range ve.Causes {
		out = collectLeafViolations(cause, out)
	}
	return out
}
