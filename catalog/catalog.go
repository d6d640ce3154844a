// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package catalog - metadata lookups for the assets an offer moves
//
// NFT details are fetched by their nft1… id and fungible tokens by
// their asset id or ticker code; answers are cached for a while
package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bitmark-inc/logger"
	jsoniter "github.com/json-iterator/go"
	"github.com/patrickmn/go-cache"

	"github.com/splash-network/splashd/fault"
)

// defaults
const (
	DefaultNFTURL        = "https://api.mintgarden.io"
	DefaultAssetURL      = "https://dexie.space/v1/assets"
	DefaultCacheLifetime = 10 * time.Minute
	DefaultTimeout       = 15 * time.Second

	// reported when a code is not listed
	Unknown = "unknown"

	// limit on a response body
	maximumResponseSize = 1 << 20
)

// Configuration - a block of configuration data
// this is read from the configuration file
type Configuration struct {
	NFTURL        string `gluamapper:"nft_url" json:"nft_url"`
	AssetURL      string `gluamapper:"asset_url" json:"asset_url"`
	CacheLifetime int    `gluamapper:"cache_lifetime" json:"cache_lifetime"`
	Timeout       int    `gluamapper:"timeout" json:"timeout"`
}

// Collection - collection an NFT belongs to
type Collection struct {
	Name string `json:"name"`
}

// NFTMetadata - display details of an NFT
type NFTMetadata struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Collection   Collection `json:"collection"`
	Description  string     `json:"description"`
	ThumbnailURI string     `json:"thumbnail_uri"`
}

// Asset - a listed fungible token
type Asset struct {
	ID   string `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

// Catalog - metadata lookups
type Catalog interface {
	NFT(ctx context.Context, id string) (*NFTMetadata, error)
	Asset(ctx context.Context, code string) (*Asset, error)
}

// Client - cached catalog lookups
type Client struct {
	log      *logger.L
	http     *http.Client
	nftURL   string
	assetURL string
	cache    *cache.Cache
}

// the parts of the upstream replies that are used
type nftReply struct {
	ID   string `json:"id"`
	Data struct {
		ThumbnailURI string `json:"thumbnail_uri"`
		MetadataJSON struct {
			Name        string `json:"name"`
			Description string `json:"description"`
			Collection  struct {
				Name string `json:"name"`
			} `json:"collection"`
		} `json:"metadata_json"`
	} `json:"data"`
}

type assetReply struct {
	Assets []Asset `json:"assets"`
}

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// New - create a client, zero values in the configuration select the
// defaults
func New(configuration *Configuration, log *logger.L) *Client {
	nftURL := configuration.NFTURL
	if "" == nftURL {
		nftURL = DefaultNFTURL
	}
	assetURL := configuration.AssetURL
	if "" == assetURL {
		assetURL = DefaultAssetURL
	}
	lifetime := DefaultCacheLifetime
	if configuration.CacheLifetime > 0 {
		lifetime = time.Duration(configuration.CacheLifetime) * time.Second
	}
	timeout := DefaultTimeout
	if configuration.Timeout > 0 {
		timeout = time.Duration(configuration.Timeout) * time.Second
	}

	return &Client{
		log:      log,
		http:     &http.Client{Timeout: timeout},
		nftURL:   strings.TrimRight(nftURL, "/"),
		assetURL: assetURL,
		cache:    cache.New(lifetime, 2*lifetime),
	}
}

// NFT - metadata for an nft1… id
func (c *Client) NFT(ctx context.Context, id string) (*NFTMetadata, error) {
	if "" == id || strings.ContainsAny(id, "/?#") {
		return nil, fault.InvalidAssetID
	}

	key := "nft:" + id
	if v, ok := c.cache.Get(key); ok {
		return v.(*NFTMetadata), nil
	}

	reply := nftReply{}
	err := c.get(ctx, c.nftURL+"/nfts/"+url.PathEscape(id), &reply)
	if nil != err {
		return nil, err
	}

	m := &NFTMetadata{
		ID:           reply.ID,
		Name:         reply.Data.MetadataJSON.Name,
		Collection:   Collection{Name: reply.Data.MetadataJSON.Collection.Name},
		Description:  reply.Data.MetadataJSON.Description,
		ThumbnailURI: reply.Data.ThumbnailURI,
	}
	c.cache.Set(key, m, cache.DefaultExpiration)
	return m, nil
}

// Asset - first listed token matching a code or asset id, the unknown
// triple when nothing matches
func (c *Client) Asset(ctx context.Context, code string) (*Asset, error) {
	if "" == code {
		return nil, fault.InvalidAssetID
	}

	key := "asset:" + code
	if v, ok := c.cache.Get(key); ok {
		return v.(*Asset), nil
	}

	q := url.Values{}
	q.Set("page_size", "25")
	q.Set("page", "1")
	q.Set("type", "all")
	q.Set("code", code)

	reply := assetReply{}
	err := c.get(ctx, c.assetURL+"?"+q.Encode(), &reply)
	if nil != err {
		return nil, err
	}

	a := &Asset{ID: Unknown, Code: Unknown, Name: Unknown}
	if len(reply.Assets) > 0 {
		first := reply.Assets[0]
		a = &first
	}
	c.cache.Set(key, a, cache.DefaultExpiration)
	return a, nil
}

func (c *Client) get(ctx context.Context, u string, reply interface{}) error {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if nil != err {
		return err
	}
	request.Header.Set("Accept", "application/json")

	response, err := c.http.Do(request)
	if nil != err {
		c.log.Warnf("get: %s  error: %s", u, err)
		return fault.CatalogUnavailable
	}
	defer response.Body.Close()

	if http.StatusOK != response.StatusCode {
		c.log.Warnf("get: %s  status: %d", u, response.StatusCode)
		return fault.CatalogUnavailable
	}

	body, err := io.ReadAll(io.LimitReader(response.Body, maximumResponseSize))
	if nil != err {
		return err
	}

	err = json.Unmarshal(body, reply)
	if nil != err {
		return fmt.Errorf("catalog reply: %w", err)
	}
	c.log.Debugf("get: %s  bytes: %d", u, len(body))
	return nil
}
