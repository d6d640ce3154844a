// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package assets

import (
	"context"
	"strings"
	"time"

	"github.com/bitmark-inc/logger"
	"golang.org/x/time/rate"

	"github.com/splash-network/splashd/asset"
	"github.com/splash-network/splashd/catalog"
	"github.com/splash-network/splashd/fault"
	"github.com/splash-network/splashd/rpc/ratelimit"
)

const (
	rateLimitAsset = 20
	rateBurstAsset = 10

	defaultTimeout = 20 * time.Second
)

// Asset - type for the RPC
type Asset struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Catalog catalog.Catalog
	Timeout time.Duration
}

// NFTArguments - an nft1… identifier
type NFTArguments struct {
	ID string `json:"id"`
}

// NFTReply - metadata from the catalog
type NFTReply struct {
	catalog.NFTMetadata
}

// CodeArguments - a token code or asset id
type CodeArguments struct {
	Code string `json:"code"`
}

// AssetReply - token listing from the catalog
type AssetReply struct {
	catalog.Asset
}

// New - create asset RPC handler
func New(log *logger.L, cat catalog.Catalog) *Asset {
	return &Asset{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitAsset, rateBurstAsset),
		Catalog: cat,
		Timeout: defaultTimeout,
	}
}

// NFT - look up metadata for a single item
func (a *Asset) NFT(arguments *NFTArguments, reply *NFTReply) error {

	if err := ratelimit.Limit(a.Limiter); nil != err {
		return err
	}

	id := strings.TrimSpace(arguments.ID)
	if "" == id {
		return fault.MissingParameters
	}
	if !strings.HasPrefix(id, asset.ItemPrefix+"1") {
		return fault.InvalidAssetID
	}

	ctx, cancel := context.WithTimeout(context.Background(), a.Timeout)
	defer cancel()

	m, err := a.Catalog.NFT(ctx, id)
	if nil != err {
		a.Log.Debugf("nft: %s  error: %s", id, err)
		return err
	}

	reply.NFTMetadata = *m
	return nil
}

// Code - look up a token; the native asset is answered locally
func (a *Asset) Code(arguments *CodeArguments, reply *AssetReply) error {

	if err := ratelimit.Limit(a.Limiter); nil != err {
		return err
	}

	code := strings.TrimSpace(arguments.Code)
	if "" == code {
		return fault.MissingParameters
	}

	if asset.Native == strings.ToLower(code) {
		reply.Asset = catalog.Asset{
			ID:   asset.Native,
			Code: strings.ToUpper(asset.Native),
			Name: "Chia",
		}
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), a.Timeout)
	defer cancel()

	c, err := a.Catalog.Asset(ctx, code)
	if nil != err {
		a.Log.Debugf("asset: %s  error: %s", code, err)
		return err
	}

	reply.Asset = *c
	return nil
}
