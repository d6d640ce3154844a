// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"strings"

	"github.com/urfave/cli"

	"github.com/splash-network/splashd/command/splash-cli/rpccalls"
	"github.com/splash-network/splashd/fault"
)

func runPeers(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	client, err := rpccalls.NewClient(m.connect, m.tls, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	count, err := client.PeerCount()
	if nil != err {
		return err
	}

	return printJson(m.w, map[string]uint64{"peers": count})
}

func runInfo(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	client, err := rpccalls.NewClient(m.connect, m.tls, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.Info()
	if nil != err {
		return err
	}

	return printJson(m.w, response)
}

func runNFT(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	id := strings.TrimSpace(c.String("id"))
	if "" == id {
		return fault.MissingParameters
	}

	client, err := rpccalls.NewClient(m.connect, m.tls, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.NFT(id)
	if nil != err {
		return err
	}

	return printJson(m.w, response)
}

func runAsset(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	code := strings.TrimSpace(c.String("code"))
	if "" == code {
		return fault.MissingParameters
	}

	client, err := rpccalls.NewClient(m.connect, m.tls, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.Asset(code)
	if nil != err {
		return err
	}

	return printJson(m.w, response)
}
