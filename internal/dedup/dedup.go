// Package dedup partitions records into unique, missing-identifier and
// duplicate groups. Matching is exact on normalized keys; the first
// occurrence of a key is kept and later ones are rejected.
package dedup

import (
	"slices"

	"github.com/matsen/litmerge/internal/record"
	"github.com/matsen/litmerge/internal/schema"
)

// ResultSet is the outcome of one run. Every input record appears in exactly
// one of Unique, MissingIdentifier or Duplicates, each ordered by
// SequenceIndex.
type ResultSet struct {
	Family            schema.Family
	Unique            []record.Record
	MissingIdentifier []record.Record
	Duplicates        []record.Record
	Warnings          []record.Warning
}

// Total returns the number of records across all partitions.
func (rs *ResultSet) Total() int {
	return len(rs.Unique) + len(rs.MissingIdentifier) + len(rs.Duplicates)
}

// ByIdentifier splits records on their normalized identifier. Records
// without a usable identifier go to missing; repeats of an already seen
// identifier are rejected with ReasonByIdentifier.
func ByIdentifier(recs []record.Record) (kept, missing, rejected []record.Record) {
	seen := make(map[string]bool)
	for _, r := range recs {
		key, ok := record.Key(r.Identifier)
		if !ok {
			missing = append(missing, r)
			continue
		}
		if seen[key] {
			r.DuplicateReason = record.ReasonByIdentifier
			rejected = append(rejected, r)
			continue
		}
		seen[key] = true
		kept = append(kept, r)
	}
	return kept, missing, rejected
}

// ByTitle rejects repeats of an already seen normalized title with
// ReasonByTitle. Records without a title are always kept.
func ByTitle(recs []record.Record) (kept, rejected []record.Record) {
	seen := make(map[string]bool)
	for _, r := range recs {
		key, ok := record.Key(r.Title)
		if !ok {
			kept = append(kept, r)
			continue
		}
		if seen[key] {
			r.DuplicateReason = record.ReasonByTitle
			rejected = append(rejected, r)
			continue
		}
		seen[key] = true
		kept = append(kept, r)
	}
	return kept, rejected
}

// Run applies the passes for the schema family. Tabular records go through
// the identifier pass and then the title pass over its survivors; identifier
// lists only get the identifier pass. Records missing an identifier are not
// title-checked.
func Run(family schema.Family, recs []record.Record) *ResultSet {
	kept, missing, byID := ByIdentifier(recs)

	var byTitle []record.Record
	if family == schema.FamilyTabular {
		kept, byTitle = ByTitle(kept)
	}

	rs := Assemble(kept, missing, byID, byTitle)
	rs.Family = family
	return rs
}

// Assemble builds a result set from the pass outputs. The two reject lists
// are merged and ordered by SequenceIndex.
func Assemble(unique, missing, byID, byTitle []record.Record) *ResultSet {
	dups := make([]record.Record, 0, len(byID)+len(byTitle))
	dups = append(dups, byID...)
	dups = append(dups, byTitle...)
	slices.SortStableFunc(dups, bySequence)

	return &ResultSet{
		Unique:            unique,
		MissingIdentifier: missing,
		Duplicates:        dups,
	}
}

func bySequence(a, b record.Record) int {
	return a.SequenceIndex - b.SequenceIndex
}
