// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package offer

import (
	"bytes"
	"embed"
	"encoding/hex"
	"fmt"
	"io/fs"
	"path"

	"github.com/splash-network/splashd/clvm"
	"github.com/splash-network/splashd/fault"
)

// serialised puzzle modules making up the shared dictionary, one
// <name>.hex file per module
//
//go:embed zdict/*.hex
var bundledModules embed.FS

const moduleDirectory = "zdict"

// Module - one puzzle of the shared compression dictionary and the
// tree hash its bytes must have
type Module struct {
	Name string
	Hash string
}

// SharedDictionary - modules appended to the dictionary by each
// compression version, version 1 first
//
// version 5 adds nothing so that older decoders reject it
var SharedDictionary = [][]Module{
	{
		{"p2_delegated_puzzle_or_hidden_puzzle", "e9aaa49f45bad5c889b86ee3341550c155cfdd10c3a6757de618d20612fffd52"},
		{"cat_v1", "72dec062874cd4d3aab892a0906688a1ae412b0109982e1797a170add88bdcdc"},
	},
	{
		{"settlement_payments_v1", "bae24162efbd568f89bc7a340798a6118df0189eb9e3f8697bcea27af99f8f79"},
		{"singleton_top_layer_v1_1", "7faa3253bfddd1e0decb0906b2dc6247bbc4cf608f58345d173adb63e8b47c9f"},
		{"nft_state_layer", "a04d9f57764f54a43e4030befb4d80026e870519aaa66334aef8304f5d0393c2"},
		{"nft_ownership_layer", "c5abea79afaa001b5427dfa0c8cf42ca6f38f5841b78f9b3c252733eb2de2726"},
		{"nft_metadata_updater_default", "fe8a4b4e27a2e29a4d3fc7ce9d527adbcaccbab6ada3903ccf3ba9a769d2d78b"},
		{"nft_ownership_transfer_program_one_way_claim_with_royalties", "025dee0fb1e9fa110302a7e9bfb6e381ca09618e2778b0184fa5c6b275cfce1f"},
	},
	{
		{"cat_v2", "37bef360ee858133b69d595a906dc45d01af50379dad515eb9518abb7c1d2a7a"},
	},
	{
		{"settlement_payments", "cfbfdeed5c4ca2de3d0bf520b9cb4bb7743a359bd2e6a188d19ce7dffc21d3e7"},
	},
	{},
}

// DefaultDictionaries - the shared dictionary built into the binary
//
// versions end before the first one that needs a module which is not
// bundled; the names of those missing modules are returned so that the
// caller can report the gap
func DefaultDictionaries() (Dictionaries, []string, error) {
	return buildDictionaries(bundledModules, moduleDirectory, SharedDictionary)
}

func buildDictionaries(files fs.FS, directory string, versions [][]Module) (Dictionaries, []string, error) {
	d := make(Dictionaries, 0, len(versions))
	missing := []string{}

	for _, modules := range versions {
		entry := []byte{}
		for _, m := range modules {
			b, err := readModule(files, path.Join(directory, m.Name+".hex"), m.Hash)
			if nil != err {
				if fault.ModuleNotBundled == err {
					missing = append(missing, m.Name)
					continue
				}
				return nil, nil, fmt.Errorf("module: %s  error: %w", m.Name, err)
			}
			entry = append(entry, b...)
		}
		if 0 == len(missing) {
			d = append(d, entry)
		}
	}
	return d, missing, nil
}

// readModule - hex file to program bytes, verified by tree hash
func readModule(files fs.FS, name string, expected string) ([]byte, error) {
	text, err := fs.ReadFile(files, name)
	if nil != err {
		return nil, fault.ModuleNotBundled
	}
	program, err := hex.DecodeString(string(bytes.TrimSpace(text)))
	if nil != err {
		return nil, fault.InvalidDictionaryModule
	}

	node, n, err := clvm.Parse(program)
	if nil != err || n != len(program) {
		return nil, fault.InvalidDictionaryModule
	}
	h := clvm.TreeHash(node)
	if hex.EncodeToString(h[:]) != expected {
		return nil, fault.InvalidDictionaryModule
	}
	return program, nil
}
