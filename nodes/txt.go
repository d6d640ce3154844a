// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package nodes

import (
	"strings"

	ma "github.com/multiformats/go-multiaddr"

	"github.com/splash-network/splashd/fault"
)

const txtPrefix = "dnsaddr="

// Parse - the multiaddr carried by one TXT record
func Parse(txt string) (ma.Multiaddr, error) {
	txt = strings.TrimSpace(txt)
	if !strings.HasPrefix(txt, txtPrefix) {
		return nil, fault.InvalidNodeDomain
	}
	address, err := ma.NewMultiaddr(strings.TrimPrefix(txt, txtPrefix))
	if nil != err {
		return nil, fault.InvalidPeerAddress
	}
	return address, nil
}
