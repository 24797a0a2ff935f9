// Package wire implements the on-wire framing used to serialize and
// deserialize aggregate state, matching the host serialize/deserialize
// contract described by the spec's aggregate-binding component.
//
// A frame is a 4-byte length header, written in the byte order of the
// endian.EndianEngine passed to Encode/Decode, followed by a body. The
// body is the flat-encoded record bytes, optionally run through a
// compress.Codec. Framing mirrors mebo's section-header convention (a fixed
// header field carrying the length of what follows) and the teacher's
// byte-buffer pooling for the write path.
package wire
