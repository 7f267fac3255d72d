package codec

import "errors"

// Codec failure kinds. Decode and encode fail atomically with one of
// these, usually wrapped with positional context; match with errors.Is.
var (
	// ErrUnexpectedEnd reports a buffer too short for the next field.
	ErrUnexpectedEnd = errors.New("unexpected end of message")

	// ErrMalformedName reports a label header using the reserved 01/10
	// bit patterns.
	ErrMalformedName = errors.New("malformed domain name")

	// ErrInvalidPointer reports a compression pointer beyond the message.
	ErrInvalidPointer = errors.New("compression pointer out of bounds")

	// ErrPointerCycle reports compression pointers that revisit an offset.
	ErrPointerCycle = errors.New("compression pointer cycle")

	// ErrUnknownOpcode reports an opcode the encoder cannot serialize.
	ErrUnknownOpcode = errors.New("unknown opcode")

	// ErrUnknownClass reports a class code outside the registry.
	ErrUnknownClass = errors.New("unknown class")

	// ErrUnsupportedType reports a (class,type) combination the encoder
	// has no serializer for.
	ErrUnsupportedType = errors.New("unsupported record type")

	// ErrBadRData reports RDATA whose length does not fit its type.
	ErrBadRData = errors.New("malformed rdata")

	// ErrMalformedEDNS reports an OPT record with a non-empty owner name
	// or otherwise broken EDNS framing.
	ErrMalformedEDNS = errors.New("malformed EDNS record")

	// ErrExtendedRCode reports a response code above 15 in a message
	// without an OPT record to carry the upper bits.
	ErrExtendedRCode = errors.New("extended rcode requires OPT record")

	// ErrInvalidName reports an owner name containing an unencodable label.
	ErrInvalidName = errors.New("invalid domain name")
)
