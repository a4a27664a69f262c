/* SPDX-License-Identifier: MPL-2.0
 * Copyright 2025 Tejus Pratap <tejzpr@gmail.com>
 *
 * See CONTRIBUTORS.md for full contributor list.
 */

// Package wire implements the signaling serialization codec: the
// length-delimited binary framing for SignalRequest/SignalResponse and the
// value types each variant carries.
//
// The format is built directly on protowire's tag/varint/length-delimited
// primitives rather than generated .pb.go stubs, keeping the message set
// compatible with protobuf-framed signaling servers without a build-time
// code generation step.
package wire

import (
	"fmt"
	"math"

	"google.golang.org/protobuf/encoding/protowire"

	sdkerrors "github.com/nexusrtc/client-go/errors"
)

// builder accumulates a length-delimited record. Zero-valued scalar fields
// are omitted entirely (proto3-style), so encode(decode(encode(v))) produces
// byte-identical output to encode(v).
type builder struct {
	b []byte
}

func (bd *builder) string(num protowire.Number, s string) {
	if s == "" {
		return
	}
	bd.b = protowire.AppendTag(bd.b, num, protowire.BytesType)
	bd.b = protowire.AppendString(bd.b, s)
}

func (bd *builder) boolean(num protowire.Number, v bool) {
	if !v {
		return
	}
	bd.b = protowire.AppendTag(bd.b, num, protowire.VarintType)
	bd.b = protowire.AppendVarint(bd.b, protowire.EncodeBool(v))
}

func (bd *builder) varint(num protowire.Number, v int64) {
	if v == 0 {
		return
	}
	bd.b = protowire.AppendTag(bd.b, num, protowire.VarintType)
	bd.b = protowire.AppendVarint(bd.b, uint64(v))
}

func (bd *builder) fixed32Float(num protowire.Number, v float32) {
	if v == 0 {
		return
	}
	bd.b = protowire.AppendTag(bd.b, num, protowire.Fixed32Type)
	bd.b = protowire.AppendFixed32(bd.b, math.Float32bits(v))
}

// message embeds the already-encoded bytes of a nested type as a
// length-delimited field. Used both for "has one sub-message" fields and,
// called once per element, for repeated sub-messages. An empty payload is
// still written, so a present but all-zero sub-message survives a round trip.
func (bd *builder) message(num protowire.Number, payload []byte) {
	bd.b = protowire.AppendTag(bd.b, num, protowire.BytesType)
	bd.b = protowire.AppendBytes(bd.b, payload)
}

func (bd *builder) bytes() []byte { return bd.b }

// visitFunc handles one decoded field. data is the field's raw value bytes
// (tag already consumed). It returns handled=true with the number of bytes
// of data it consumed, or handled=false (n is then ignored) to request the
// walker skip the field generically (used for field numbers a decoder does
// not recognize, which is how unknown variants and fields are ignored
// rather than rejected).
type visitFunc func(num protowire.Number, typ protowire.Type, data []byte) (handled bool, n int)

// walkFields parses data as a sequence of tag/value pairs and invokes visit
// for each. Framing errors (a truncated tag or value) produce a
// DecodeError{InvalidFraming}. A visit that returns handled=true with n < 0,
// which is how decoders report a malformed recognized field, is reported as
// InvalidFraming too.
func walkFields(data []byte, visit visitFunc) error {
	for len(data) > 0 {
		num, typ, tn := protowire.ConsumeTag(data)
		if tn < 0 {
			return &sdkerrors.DecodeError{Kind: sdkerrors.DecodeInvalidFraming, Err: fmt.Errorf("truncated field tag")}
		}
		rest := data[tn:]

		handled, n := visit(num, typ, rest)
		if !handled {
			n = protowire.ConsumeFieldValue(num, typ, rest)
		}
		if n < 0 {
			return &sdkerrors.DecodeError{Kind: sdkerrors.DecodeInvalidFraming, Err: fmt.Errorf("malformed field %d", num)}
		}
		data = rest[n:]
	}
	return nil
}

func consumeString(data []byte) (string, int) {
	v, n := protowire.ConsumeBytes(data)
	if n < 0 {
		return "", n
	}
	return string(v), n
}

func consumeBool(data []byte) (bool, int) {
	v, n := protowire.ConsumeVarint(data)
	if n < 0 {
		return false, n
	}
	return protowire.DecodeBool(v), n
}

func consumeInt64(data []byte) (int64, int) {
	v, n := protowire.ConsumeVarint(data)
	if n < 0 {
		return 0, n
	}
	return int64(v), n
}

func consumeInt32(data []byte) (int32, int) {
	v, n := consumeInt64(data)
	return int32(v), n
}

func consumeFloat32(data []byte) (float32, int) {
	v, n := protowire.ConsumeFixed32(data)
	if n < 0 {
		return 0, n
	}
	return math.Float32frombits(v), n
}

func consumeMessage(data []byte) ([]byte, int) {
	return protowire.ConsumeBytes(data)
}

func framingErr(err error) error {
	return &sdkerrors.DecodeError{Kind: sdkerrors.DecodeInvalidFraming, Err: err}
}

func rangeErr(field string, v int64) error {
	return &sdkerrors.DecodeError{Kind: sdkerrors.DecodeFieldOutOfRange, Err: fmt.Errorf("%s: value %d out of range", field, v)}
}
