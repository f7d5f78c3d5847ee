// Package ingest turns raw settlement spreadsheet rows into canonical
// records. Marketplace report vintages disagree on column naming
// ("Order Item Value" vs "Sale Amount"), formatting (stray ₹, %, parentheses)
// and completeness, so each canonical field carries an alias list and rows
// are matched against normalized header names.
//
// Resolution never fails a row: numeric fields degrade to 0 and string
// fields to "" when a column is missing or malformed, and the original row
// is always retained on the record for traceability.
package ingest

import (
	"strings"
)

// RawRow is one decoded spreadsheet row, keyed by the original column header.
type RawRow map[string]any

// FieldKind selects the coercion applied to a resolved value.
type FieldKind int

const (
	KindString FieldKind = iota
	KindNumber
)

// MatchMode selects how normalized headers are compared with aliases.
// GST reports have stable headers and use exact matching; order report
// headers drift between vintages and use substring containment.
type MatchMode int

const (
	MatchExact MatchMode = iota
	MatchContains
)

// FieldSpec describes one canonical field and the headers it may appear
// under in source spreadsheets.
type FieldSpec struct {
	Name    string
	Aliases []string
	Kind    FieldKind
}

// Schema is a full canonical schema for one report family.
type Schema struct {
	Name   string
	Match  MatchMode
	Fields []FieldSpec

	// Derive fills fields that are computable from others when the sheet
	// omits them. It runs after resolution and must not override non-zero
	// resolved values.
	Derive func(r *Record)
}

// Record is a canonical record resolved from one raw row.
type Record struct {
	Schema  string
	Strings map[string]string
	Numbers map[string]float64

	// Raw is the original row with nil values dropped.
	Raw map[string]any
}

// String returns the resolved string field, or "" when absent.
func (r *Record) String(field string) string {
	return r.Strings[field]
}

// Number returns the resolved numeric field, or 0 when absent.
func (r *Record) Number(field string) float64 {
	return r.Numbers[field]
}

// ReconKeys returns the two alternate join keys used by reconciliation.
func (r *Record) ReconKeys() (string, string) {
	return r.String(FieldOrderID), r.String(FieldOrderItemID)
}

// strippedRunes are the formatting characters removed during header
// normalization: whitespace, parentheses, the rupee symbol, percent signs
// and periods.
const strippedRunes = " \t\n\r()₹%."

// Normalize lowercases a header and strips formatting characters so that
// "Final Invoice Amount (₹)" and "finalinvoiceamount" compare equal.
func Normalize(s string) string {
	s = strings.ToLower(s)
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(strippedRunes, r) {
			return -1
		}
		return r
	}, s)
}

// headerMatches reports whether a normalized row header matches a normalized
// alias under the given mode.
func headerMatches(header, alias string, mode MatchMode) bool {
	if mode == MatchContains {
		return strings.Contains(header, alias)
	}
	return header == alias
}

// Resolve maps a raw row onto the schema's canonical fields. For each field
// the first row key whose normalized form matches any alias wins. Rows with
// missing or malformed columns still resolve; the affected fields are zero
// values.
func Resolve(row RawRow, schema *Schema) *Record {
	rec := &Record{
		Schema:  schema.Name,
		Strings: make(map[string]string),
		Numbers: make(map[string]float64),
		Raw:     make(map[string]any, len(row)),
	}

	// Normalize headers once per row. Keys are sorted so alias resolution
	// does not depend on map iteration order.
	keys := make([]string, 0, len(row))
	normalized := make(map[string]string, len(row))
	for k, v := range row {
		if v == nil {
			continue
		}
		rec.Raw[k] = v
		keys = append(keys, k)
		normalized[k] = Normalize(k)
	}
	sortKeys(keys)

	for _, spec := range schema.Fields {
		value, ok := lookup(row, keys, normalized, spec.Aliases, schema.Match)
		if spec.Kind == KindNumber {
			if ok {
				rec.Numbers[spec.Name] = toNumber(value)
			} else {
				rec.Numbers[spec.Name] = 0
			}
			continue
		}
		if ok {
			rec.Strings[spec.Name] = toString(value)
		} else {
			rec.Strings[spec.Name] = ""
		}
	}

	if schema.Derive != nil {
		schema.Derive(rec)
	}
	return rec
}

// lookup finds the first row value whose normalized header matches one of
// the aliases.
func lookup(row RawRow, keys []string, normalized map[string]string, aliases []string, mode MatchMode) (any, bool) {
	for _, alias := range aliases {
		na := Normalize(alias)
		for _, k := range keys {
			if headerMatches(normalized[k], na, mode) {
				return row[k], true
			}
		}
	}
	return nil, false
}
