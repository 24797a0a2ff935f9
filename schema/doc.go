// Package schema implements the declarative record and tagged-sum layout
// compiler described by the spec's "schema compiler" component.
//
// Rust's flat_serialize_macro validates a record's field layout at compile
// time: each field's required alignment must be satisfied by the running
// byte offset, a field's alignment must not exceed the alignment currently
// guaranteed by the fields before it, and a tagged sum's variants must carry
// distinct tag values. Go has no field-layout macros, so this package moves
// the same checks to schema-construction time: Validate returns an error
// immediately when a FieldMeta slice violates one of these rules, which is
// the closest Go analogue of a build failure.
//
// The actual per-type TryRef/Fill/ByteLen bodies are hand-written against
// flatcodec.Codec, one implementation per concrete record, matching the
// "no dynamic dispatch... monomorphised" design note: this package supplies
// the validation and the Run[T] iteration helper, not a reflection-driven
// generic encoder.
package schema
