package schema

import (
	"fmt"

	"github.com/arloliu/aggcore/errs"
)

// FieldKind distinguishes the shapes of field a record can declare, mirroring
// flat_serialize's field kinds.
type FieldKind int

const (
	// FieldFixed is a field of constant, statically-known size.
	FieldFixed FieldKind = iota
	// FieldFixedArray is a fixed-length array of a constant-size element.
	FieldFixedArray
	// FieldVarlen is a variable-length run whose element count is given by
	// an earlier field in the same record.
	FieldVarlen
	// FieldConditional is a field present only when a predicate over an
	// earlier field's decoded value holds, mirroring flat_serialize's
	// "field if condition" kind (e.g. "opt_d: T4 if self.field_b != 0").
	FieldConditional
)

// FieldMeta describes one field of a record for the purposes of layout
// validation. It does not perform encoding itself; the record's hand-written
// TryRef/Fill methods do that using flatcodec.Codec values that should agree
// with the alignment and size declared here.
type FieldMeta struct {
	// Name identifies the field for error messages and, for varlen fields,
	// the length-expression reference below.
	Name string
	// Kind is the field's shape.
	Kind FieldKind
	// MinLen is the minimum number of bytes this field occupies. For a
	// FieldVarlen field this is the per-element minimum length.
	MinLen int
	// RequiredAlignment is the alignment this field's first byte must sit
	// on within the record.
	RequiredAlignment int
	// ElementIsVarlen is true when a FieldVarlen field's elements are
	// themselves variable-length (spec forbids this: a run's element size
	// must be statically known so random access by index stays O(1)).
	ElementIsVarlen bool
	// LengthField names the earlier FieldMeta.Name this field's element
	// count is read from, required for FieldVarlen fields.
	LengthField string
	// PredicateField names the earlier FieldMeta.Name this field's
	// presence is decided from, required for FieldConditional fields.
	PredicateField string
	// Predicate reports whether this FieldConditional field is present,
	// given the referenced field's decoded value. Required for
	// FieldConditional fields.
	Predicate func(referenced int64) bool
	// Tag, when non-empty semantics apply (tagged sum variant), is the
	// discriminant value for this variant. Unused for plain records.
	Tag int
	hasTag bool
}

// WithTag marks f as a tagged-sum variant carrying the given discriminant.
func (f FieldMeta) WithTag(tag int) FieldMeta {
	f.Tag = tag
	f.hasTag = true

	return f
}

// Validate checks fields against the record layout rules:
//
//  1. each field's required alignment must be satisfied by the running byte
//     offset computed from the minimum lengths of the fields before it;
//  2. a field's required alignment must not exceed the alignment currently
//     guaranteed by the schema, which is lowered to 1 once a variable-length
//     or otherwise runtime-sized field has been seen;
//  3. a FieldVarlen field may not declare ElementIsVarlen (no runs of
//     variable-length elements, so indexing stays O(1));
//  4. a FieldVarlen field's LengthField must name a field declared earlier
//     in the slice;
//  5. a FieldConditional field's PredicateField must name a field declared
//     earlier in the slice, and it must declare a Predicate.
func Validate(fields []FieldMeta) error {
	seen := make(map[string]bool, len(fields))
	offset := 0
	guaranteedAlignment := 1 << 30 // effectively unbounded until lowered

	for _, f := range fields {
		if f.RequiredAlignment > guaranteedAlignment {
			return fmt.Errorf("%w: field %q requires alignment %d but schema only guarantees %d",
				errs.ErrAlignmentExceeded, f.Name, f.RequiredAlignment, guaranteedAlignment)
		}

		if f.RequiredAlignment > 0 && offset%f.RequiredAlignment != 0 {
			return fmt.Errorf("%w: field %q at offset %d is not aligned to %d",
				errs.ErrMisalignedField, f.Name, offset, f.RequiredAlignment)
		}

		switch f.Kind {
		case FieldVarlen:
			if f.ElementIsVarlen {
				return fmt.Errorf("%w: field %q", errs.ErrVarlenOfVarlen, f.Name)
			}

			if f.LengthField == "" || !seen[f.LengthField] {
				return fmt.Errorf("%w: field %q length reference %q", errs.ErrInvalidFieldName, f.Name, f.LengthField)
			}

			// A variable-length field's end is not known statically, so
			// every subsequent field can only rely on byte alignment.
			offset = 0
			guaranteedAlignment = 1
		case FieldConditional:
			if f.PredicateField == "" || !seen[f.PredicateField] {
				return fmt.Errorf("%w: field %q predicate reference %q", errs.ErrInvalidFieldName, f.Name, f.PredicateField)
			}

			if f.Predicate == nil {
				return fmt.Errorf("%w: field %q", errs.ErrMissingPredicate, f.Name)
			}

			// A conditional field may be entirely absent, so neither its
			// own presence nor the offset of anything after it is known
			// statically.
			offset = 0
			guaranteedAlignment = 1
		default:
			offset += f.MinLen
			if f.RequiredAlignment < guaranteedAlignment && f.RequiredAlignment > 0 {
				guaranteedAlignment = f.RequiredAlignment
			}
		}

		seen[f.Name] = true
	}

	return nil
}

// ValidateTags checks that a tagged sum's variants carry distinct
// discriminant values.
func ValidateTags(variants []FieldMeta) error {
	seen := make(map[int]string, len(variants))
	for _, v := range variants {
		if !v.hasTag {
			return fmt.Errorf("%w: variant %q has no tag", errs.ErrInvalidTag, v.Name)
		}

		if existing, ok := seen[v.Tag]; ok {
			return fmt.Errorf("%w: tag %d used by both %q and %q", errs.ErrDuplicateTag, v.Tag, existing, v.Name)
		}

		seen[v.Tag] = v.Name
	}

	return nil
}
