package bigint

import (
	"bytes"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

var (
	_ msgpack.CustomEncoder = Int{}
	_ msgpack.CustomDecoder = (*Int)(nil)
)

// MarshalText implements encoding.TextMarshaler using decimal digits.
func (x Int) MarshalText() ([]byte, error) {
	return []byte(x.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler for decimal text.
func (x *Int) UnmarshalText(text []byte) error {
	v, err := Parse(string(text), 10)
	if err != nil {
		return err
	}
	*x = v
	return nil
}

// MarshalJSON encodes x as a JSON string so values beyond float64 range
// survive JavaScript consumers.
func (x Int) MarshalJSON() ([]byte, error) {
	s := x.String()
	out := make([]byte, 0, len(s)+2)
	out = append(out, '"')
	out = append(out, s...)
	return append(out, '"'), nil
}

// UnmarshalJSON accepts a JSON string or a bare JSON number. null leaves x
// unchanged.
func (x *Int) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if string(data) == "null" {
		return nil
	}
	if len(data) >= 2 && data[0] == '"' && data[len(data)-1] == '"' {
		data = data[1 : len(data)-1]
	}
	return x.UnmarshalText(data)
}

// EncodeMsgpack writes x as a two-element array: the sign flag followed by
// the little-endian limbs.
func (x Int) EncodeMsgpack(enc *msgpack.Encoder) error {
	if err := enc.EncodeArrayLen(2); err != nil {
		return err
	}
	if err := enc.EncodeBool(x.neg); err != nil {
		return err
	}
	mag := x.mag()
	if err := enc.EncodeArrayLen(len(mag)); err != nil {
		return err
	}
	for _, w := range mag {
		if err := enc.EncodeUint32(w); err != nil {
			return err
		}
	}
	return nil
}

// maxPreallocLimbs caps the capacity reserved from a msgpack length header.
const maxPreallocLimbs = 1 << 10

// DecodeMsgpack reads the layout written by EncodeMsgpack.
func (x *Int) DecodeMsgpack(dec *msgpack.Decoder) error {
	n, err := dec.DecodeArrayLen()
	if err != nil {
		return err
	}
	if n != 2 {
		return fmt.Errorf("bigint: msgpack array of %d elements, want 2", n)
	}
	neg, err := dec.DecodeBool()
	if err != nil {
		return err
	}
	limbs, err := dec.DecodeArrayLen()
	if err != nil {
		return err
	}
	// The header length is untrusted; grow with the limbs actually read.
	mag := make([]uint32, 0, min(max(limbs, 0), maxPreallocLimbs))
	for range limbs {
		w, err := dec.DecodeUint32()
		if err != nil {
			return fmt.Errorf("bigint: msgpack limb %d of %d: %w", len(mag), limbs, err)
		}
		mag = append(mag, w)
	}
	*x = fromMag(mag, neg)
	return nil
}
