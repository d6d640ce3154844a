// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package offer

import (
	"bytes"
	"encoding/binary"
	"io"
	"strings"

	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/klauspost/compress/zlib"

	"github.com/splash-network/splashd/asset"
	"github.com/splash-network/splashd/bundle"
	"github.com/splash-network/splashd/fault"
)

// format constants
const (
	HumanReadablePart = "offer"
	Prefix            = HumanReadablePart + "1"

	// limit on the decompressed bundle
	MaximumDecompressedSize = 8 * 1024 * 1024

	versionSize = 2
)

// Codec - decoding and classification context
type Codec struct {
	Classifier   *asset.Classifier
	Dictionaries Dictionaries
}

// NewCodec - create a codec, a nil classifier selects the deployed
// module hashes
func NewCodec(classifier *asset.Classifier, dictionaries Dictionaries) *Codec {
	if nil == classifier {
		classifier = asset.Default()
	}
	return &Codec{
		Classifier:   classifier,
		Dictionaries: dictionaries,
	}
}

// Decode - offer string to spend bundle
func (c *Codec) Decode(raw string) (*bundle.SpendBundle, error) {
	packed, err := c.Decompress(raw)
	if nil != err {
		return nil, err
	}
	sb, err := bundle.Unpack(packed)
	if nil != err {
		return nil, fault.NewDecodeError(fault.MalformedBundle, err)
	}
	return sb, nil
}

// Decompress - offer string to packed spend bundle bytes
func (c *Codec) Decompress(raw string) ([]byte, error) {
	if !strings.HasPrefix(raw, Prefix) {
		return nil, fault.NewDecodeError(fault.UnrecognizedFormat, nil)
	}

	hrp, data, err := bech32.DecodeNoLimit(raw)
	if nil != err {
		return nil, fault.NewDecodeError(fault.MalformedEncoding, err)
	}
	if HumanReadablePart != hrp {
		return nil, fault.NewDecodeError(fault.MalformedEncoding, fault.WrongNetworkFormat)
	}
	compressed, err := bech32.ConvertBits(data, 5, 8, false)
	if nil != err {
		return nil, fault.NewDecodeError(fault.MalformedEncoding, err)
	}

	packed, err := c.decompress(compressed)
	if nil != err {
		return nil, fault.NewDecodeError(fault.DecompressionFailure, err)
	}
	return packed, nil
}

func (c *Codec) decompress(compressed []byte) ([]byte, error) {
	if len(compressed) < versionSize {
		return nil, io.ErrUnexpectedEOF
	}
	version := binary.BigEndian.Uint16(compressed[:versionSize])
	dict, err := c.Dictionaries.For(version)
	if nil != err {
		return nil, err
	}

	r, err := zlib.NewReaderDict(bytes.NewReader(compressed[versionSize:]), dict)
	if nil != err {
		return nil, err
	}
	defer r.Close()

	packed, err := io.ReadAll(io.LimitReader(r, MaximumDecompressedSize+1))
	if nil != err {
		return nil, err
	}
	if len(packed) > MaximumDecompressedSize {
		return nil, fault.PayloadTooLarge
	}
	return packed, nil
}

// Encode - spend bundle to offer string using the latest dictionary
// version
func (c *Codec) Encode(sb *bundle.SpendBundle) (string, error) {
	return c.EncodeVersion(sb, c.Dictionaries.Latest())
}

// EncodeVersion - spend bundle to offer string using a specific
// dictionary version
func (c *Codec) EncodeVersion(sb *bundle.SpendBundle, version uint16) (string, error) {
	dict, err := c.Dictionaries.For(version)
	if nil != err {
		return "", err
	}

	header := make([]byte, versionSize)
	binary.BigEndian.PutUint16(header, version)
	buffer := bytes.NewBuffer(header)

	w, err := zlib.NewWriterLevelDict(buffer, zlib.BestCompression, dict)
	if nil != err {
		return "", err
	}
	if _, err := w.Write(sb.Pack()); nil != err {
		return "", err
	}
	if err := w.Close(); nil != err {
		return "", err
	}

	data, err := bech32.ConvertBits(buffer.Bytes(), 8, 5, true)
	if nil != err {
		return "", err
	}
	return bech32.EncodeM(HumanReadablePart, data)
}
