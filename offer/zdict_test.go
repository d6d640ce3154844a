// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package offer

import (
	"encoding/hex"
	"errors"
	"io/fs"
	"path"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"

	"github.com/splash-network/splashd/asset"
	"github.com/splash-network/splashd/bundle"
	"github.com/splash-network/splashd/clvm"
	"github.com/splash-network/splashd/fault"
)

// a small module and its serialised form: (q . 1)
var (
	quoteModule = clvm.Cons(clvm.IntAtom(1), clvm.IntAtom(1))
	quoteBytes  = clvm.Serialize(quoteModule)
)

func quoteHash() string {
	h := clvm.TreeHash(quoteModule)
	return hex.EncodeToString(h[:])
}

func bundled(t *testing.T, name string) []byte {
	text, err := fs.ReadFile(bundledModules, path.Join(moduleDirectory, name+".hex"))
	if nil != err {
		t.Fatalf("read module: %s  error: %s", name, err)
	}
	b, err := readModule(bundledModules, path.Join(moduleDirectory, name+".hex"), hashOf(t, name))
	if nil != err {
		t.Fatalf("module: %s  error: %s  text: %q", name, err, text[:16])
	}
	return b
}

func hashOf(t *testing.T, name string) string {
	for _, modules := range SharedDictionary {
		for _, m := range modules {
			if name == m.Name {
				return m.Hash
			}
		}
	}
	t.Fatalf("unknown module: %s", name)
	return ""
}

// every bundled file must hash to the value listed for it
func TestBundledModulesVerify(t *testing.T) {
	entries, err := fs.ReadDir(bundledModules, moduleDirectory)
	assert.Nil(t, err, "read directory error")
	assert.NotEqual(t, 0, len(entries), "no modules bundled")

	for _, e := range entries {
		name := e.Name()[:len(e.Name())-len(".hex")]
		_, err := readModule(bundledModules, path.Join(moduleDirectory, e.Name()), hashOf(t, name))
		assert.Nil(t, err, "module: %s", name)
	}

	d, missing, err := DefaultDictionaries()
	assert.Nil(t, err, "default dictionaries error")
	assert.Equal(t, int(d.Latest()), len(d), "wrong latest version")
	for _, name := range missing {
		_, err := fs.Stat(bundledModules, path.Join(moduleDirectory, name+".hex"))
		assert.True(t, errors.Is(err, fs.ErrNotExist), "module: %s reported missing but bundled", name)
	}
}

// the classifier identifies puzzles by the same modules the dictionary
// carries
func TestBundledModulesMatchClassifier(t *testing.T) {
	c := asset.Default()

	singleton, _, err := clvm.Parse(bundled(t, "singleton_top_layer_v1_1"))
	assert.Nil(t, err, "parse error")
	assert.Equal(t, c.SingletonModHash, clvm.TreeHash(singleton), "singleton hash differs")
}

func TestBuildDictionaries(t *testing.T) {
	files := fstest.MapFS{
		"m/one.hex":   {Data: []byte(hex.EncodeToString(quoteBytes) + "\n")},
		"m/two.hex":   {Data: []byte(hex.EncodeToString(quoteBytes))},
		"m/three.hex": {Data: []byte(hex.EncodeToString(quoteBytes))},
	}
	h := quoteHash()

	versions := [][]Module{
		{{"one", h}, {"two", h}},
		{{"three", h}},
		{},
	}
	d, missing, err := buildDictionaries(files, "m", versions)
	assert.Nil(t, err, "build error")
	assert.Equal(t, 0, len(missing), "unexpected missing modules")
	assert.Equal(t, uint16(3), d.Latest(), "wrong latest version")
	assert.Equal(t, append(append([]byte{}, quoteBytes...), quoteBytes...), []byte(d[0]), "wrong first entry")
	assert.Equal(t, 0, len(d[2]), "empty version carries bytes")

	dict, err := d.For(3)
	assert.Nil(t, err, "dictionary error")
	assert.Equal(t, 3*len(quoteBytes), len(dict), "wrong cumulative size")
}

// versions stop at the first gap, later versions are not usable
func TestBuildDictionariesStopsAtGap(t *testing.T) {
	files := fstest.MapFS{
		"m/one.hex":   {Data: []byte(hex.EncodeToString(quoteBytes))},
		"m/three.hex": {Data: []byte(hex.EncodeToString(quoteBytes))},
	}
	h := quoteHash()

	versions := [][]Module{
		{{"one", h}},
		{{"two", h}},
		{{"three", h}},
	}
	d, missing, err := buildDictionaries(files, "m", versions)
	assert.Nil(t, err, "build error")
	assert.Equal(t, []string{"two"}, missing, "wrong missing modules")
	assert.Equal(t, uint16(1), d.Latest(), "gap not respected")

	codec := NewCodec(nil, d)
	sb := &bundle.SpendBundle{
		CoinSpends: []bundle.CoinSpend{{
			Coin:         bundle.Coin{Amount: 1},
			PuzzleReveal: quoteBytes,
			Solution:     clvm.Serialize(clvm.Nil()),
		}},
	}
	raw, err := codec.EncodeVersion(sb, 1)
	assert.Nil(t, err, "encode error")
	decoded, err := codec.Decode(raw)
	assert.Nil(t, err, "decode error")
	assert.Equal(t, sb.Pack(), decoded.Pack(), "bundle changed")

	_, err = codec.EncodeVersion(sb, 2)
	assert.Equal(t, fault.UnsupportedVersion, err, "version past the gap accepted")
}

func TestBuildDictionariesRejectsWrongModule(t *testing.T) {
	other := clvm.Serialize(clvm.IntAtom(7))
	files := fstest.MapFS{
		"m/one.hex": {Data: []byte(hex.EncodeToString(other))},
		"m/two.hex": {Data: []byte("not hex")},
		"m/six.hex": {Data: []byte(hex.EncodeToString(append(append([]byte{}, quoteBytes...), 0x80)))},
	}
	h := quoteHash()

	for _, name := range []string{"one", "two", "six"} {
		_, _, err := buildDictionaries(files, "m", [][]Module{{{name, h}}})
		assert.True(t, errors.Is(err, fault.InvalidDictionaryModule), "module: %s  error: %v", name, err)
	}
}

// with no configured files the built-in dictionary is used
func TestLoadDictionariesDefault(t *testing.T) {
	expected, _, err := DefaultDictionaries()
	assert.Nil(t, err, "default dictionaries error")

	d, err := LoadDictionaries(nil)
	assert.Nil(t, err, "load error")
	assert.Equal(t, expected, d, "default not selected")
}
