// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package assets_test

import (
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/splash-network/splashd/catalog"
	"github.com/splash-network/splashd/fault"
	"github.com/splash-network/splashd/fixtures"
	"github.com/splash-network/splashd/rpc/assets"
	"github.com/splash-network/splashd/rpc/mocks"
)

const nftID = "nft1kdl0l8h4mwvq9xpy4cxv0pyjnyxxn4hnxn46hwfqhwspvlr58ghqqslsg0"

func TestNFT(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	cat := mocks.NewMockCatalog(ctl)
	m := &catalog.NFTMetadata{
		ID:           nftID,
		Name:         "Splash #1",
		Collection:   catalog.Collection{Name: "Splash"},
		Description:  "first",
		ThumbnailURI: "https://example.com/1.png",
	}
	cat.EXPECT().NFT(gomock.Any(), nftID).Return(m, nil).Times(1)

	a := assets.New(logger.New(fixtures.LogCategory), cat)

	var reply assets.NFTReply
	err := a.NFT(&assets.NFTArguments{ID: nftID}, &reply)
	assert.Nil(t, err, "wrong NFT")
	assert.Equal(t, *m, reply.NFTMetadata, "wrong metadata")
}

func TestNFTWhenInvalid(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	a := assets.New(logger.New(fixtures.LogCategory), mocks.NewMockCatalog(ctl))

	var reply assets.NFTReply
	err := a.NFT(&assets.NFTArguments{}, &reply)
	assert.Equal(t, fault.MissingParameters, err, "wrong empty error")

	err = a.NFT(&assets.NFTArguments{ID: "xch1abc"}, &reply)
	assert.Equal(t, fault.InvalidAssetID, err, "wrong prefix error")
}

func TestNFTWhenCatalogUnavailable(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	cat := mocks.NewMockCatalog(ctl)
	cat.EXPECT().NFT(gomock.Any(), nftID).Return(nil, fault.CatalogUnavailable).Times(1)

	a := assets.New(logger.New(fixtures.LogCategory), cat)

	var reply assets.NFTReply
	err := a.NFT(&assets.NFTArguments{ID: nftID}, &reply)
	assert.Equal(t, fault.CatalogUnavailable, err, "wrong error")
}

func TestCode(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	cat := mocks.NewMockCatalog(ctl)
	c := &catalog.Asset{
		ID:   "a628c1c2c6fcb74d53746157e438e108eab5c0bb3e5c80ff9b1910b3e4832913",
		Code: "SBX",
		Name: "Spacebucks",
	}
	cat.EXPECT().Asset(gomock.Any(), "SBX").Return(c, nil).Times(1)

	a := assets.New(logger.New(fixtures.LogCategory), cat)

	var reply assets.AssetReply
	err := a.Code(&assets.CodeArguments{Code: "SBX"}, &reply)
	assert.Nil(t, err, "wrong Code")
	assert.Equal(t, *c, reply.Asset, "wrong asset")
}

func TestCodeWhenNative(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	// no catalog call expected
	a := assets.New(logger.New(fixtures.LogCategory), mocks.NewMockCatalog(ctl))

	var reply assets.AssetReply
	err := a.Code(&assets.CodeArguments{Code: "XCH"}, &reply)
	assert.Nil(t, err, "wrong Code")
	assert.Equal(t, "xch", reply.ID, "wrong id")
	assert.Equal(t, "XCH", reply.Code, "wrong code")
}

func TestCodeWhenEmpty(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	a := assets.New(logger.New(fixtures.LogCategory), mocks.NewMockCatalog(ctl))

	var reply assets.AssetReply
	err := a.Code(&assets.CodeArguments{Code: "  "}, &reply)
	assert.Equal(t, fault.MissingParameters, err, "wrong error")
}
