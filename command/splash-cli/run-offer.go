// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"io"
	"os"
	"strings"

	"github.com/urfave/cli"

	"github.com/splash-network/splashd/asset"
	"github.com/splash-network/splashd/command/splash-cli/rpccalls"
	"github.com/splash-network/splashd/fault"
	"github.com/splash-network/splashd/offer"
)

func runSubmit(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	text, err := offerText(c)
	if nil != err {
		return err
	}

	client, err := rpccalls.NewClient(m.connect, m.tls, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.Submit(text)
	if nil != err {
		return err
	}

	return printJson(m.w, response)
}

func runParse(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	text, err := offerText(c)
	if nil != err {
		return err
	}

	client, err := rpccalls.NewClient(m.connect, m.tls, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.Parse(text)
	if nil != err {
		return err
	}

	return printJson(m.w, response)
}

// decodeReply - a local summary, or the category of the failure
type decodeReply struct {
	*offer.Summary
	Error    string `json:"error,omitempty"`
	Category string `json:"category,omitempty"`
}

func runDecode(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	text, err := offerText(c)
	if nil != err {
		return err
	}

	dictionaries, err := offer.LoadDictionaries(c.StringSlice("dictionary"))
	if nil != err {
		return err
	}
	codec := offer.NewCodec(asset.Default(), dictionaries)

	summary, err := codec.Summarize(text)
	if nil != err {
		printJson(m.w, decodeReply{
			Error:    err.Error(),
			Category: fault.Category(err),
		})
		return err
	}

	return printJson(m.w, decodeReply{Summary: summary})
}

// offerText - from the --offer flag or the --file flag
func offerText(c *cli.Context) (string, error) {
	text := c.String("offer")
	file := c.String("file")

	switch {
	case "" != text && "" != file:
		return "", errOfferSource
	case "" != text:
	case "-" == file:
		b, err := io.ReadAll(os.Stdin)
		if nil != err {
			return "", err
		}
		text = string(b)
	case "" != file:
		b, err := os.ReadFile(file)
		if nil != err {
			return "", err
		}
		text = string(b)
	default:
		return "", errOfferSource
	}

	text = strings.TrimSpace(text)
	if "" == text {
		return "", fault.MissingParameters
	}
	return text, nil
}
