// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/splash-network/splashd/rpc/assets"
)

// NFT - metadata for an nft1… id
func (c *Client) NFT(id string) (*assets.NFTReply, error) {
	var reply assets.NFTReply
	if err := c.call("Asset.NFT", &assets.NFTArguments{ID: id}, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

// Asset - token listing for a code or asset id
func (c *Client) Asset(code string) (*assets.AssetReply, error) {
	var reply assets.AssetReply
	if err := c.call("Asset.Code", &assets.CodeArguments{Code: code}, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}
