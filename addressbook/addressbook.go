// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package addressbook - the bootstrap peers a node starts from
package addressbook

import (
	"github.com/libp2p/go-libp2p/core/peer"
	ma "github.com/multiformats/go-multiaddr"

	"github.com/splash-network/splashd/fault"
)

// Entry - one bootstrap address and the peer it belongs to
type Entry struct {
	Address ma.Multiaddr
	ID      peer.ID
}

// Book - validated bootstrap addresses in the order supplied
type Book struct {
	entries []Entry
}

// New - parse and validate addresses, every address must end with a
// /p2p/<id> component
func New(addresses []string) (*Book, error) {
	b := &Book{
		entries: make([]Entry, 0, len(addresses)),
	}
	for _, s := range addresses {
		address, err := ma.NewMultiaddr(s)
		if nil != err {
			return nil, fault.InvalidPeerAddress
		}
		if err := b.Add(address); nil != err {
			return nil, err
		}
	}
	return b, nil
}

// Add - validate and append one address
func (b *Book) Add(address ma.Multiaddr) error {
	_, last := ma.SplitLast(address)
	if nil == last || ma.P_P2P != last.Protocol().Code {
		return fault.MissingPeerIdentity
	}
	info, err := peer.AddrInfoFromP2pAddr(address)
	if nil != err {
		return fault.MissingPeerIdentity
	}
	b.entries = append(b.entries, Entry{
		Address: address,
		ID:      info.ID,
	})
	return nil
}

// Entries - all entries in order
func (b *Book) Entries() []Entry {
	return b.entries
}

// Len - number of addresses
func (b *Book) Len() int {
	return len(b.entries)
}

// AddrInfos - addresses grouped by peer, in order of first appearance
func (b *Book) AddrInfos() []peer.AddrInfo {
	infos := []peer.AddrInfo{}
	index := map[peer.ID]int{}
	for _, e := range b.entries {
		transport, _ := peer.SplitAddr(e.Address)
		i, ok := index[e.ID]
		if !ok {
			i = len(infos)
			index[e.ID] = i
			infos = append(infos, peer.AddrInfo{ID: e.ID})
		}
		if nil != transport {
			infos[i].Addrs = append(infos[i].Addrs, transport)
		}
	}
	return infos
}
