// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli"
)

type metadata struct {
	connect string
	tls     bool
	verbose bool
	e       io.Writer
	w       io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

const defaultConnect = "127.0.0.1:2150"

func main() {
	app := newApp(os.Stdout, os.Stderr)

	err := app.Run(os.Args)
	if nil != err {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}

func newApp(w io.Writer, e io.Writer) *cli.App {

	app := cli.NewApp()
	app.Name = "splash-cli"
	app.Usage = "submit and inspect offers through a splashd node"
	app.Version = version
	app.HideVersion = true

	app.Writer = w
	app.ErrWriter = e

	offerFlags := []cli.Flag{
		cli.StringFlag{
			Name:  "offer, o",
			Value: "",
			Usage: "+offer `TEXT` (offer1…)",
		},
		cli.StringFlag{
			Name:  "file, f",
			Value: "",
			Usage: "+`FILE` holding the offer text, - for stdin",
		},
	}

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:  "connect, c",
			Value: defaultConnect,
			Usage: " splashd RPC `HOST:PORT`",
		},
		cli.BoolFlag{
			Name:  "tls, t",
			Usage: " use TLS for the RPC connection",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "submit",
			Usage:     "validate an offer and publish it on the network",
			ArgsUsage: "\n   (+ = select one)",
			Flags:     offerFlags,
			Action:    runSubmit,
		},
		{
			Name:      "parse",
			Usage:     "summarise an offer on the node without publishing",
			ArgsUsage: "\n   (+ = select one)",
			Flags:     offerFlags,
			Action:    runParse,
		},
		{
			Name:  "decode",
			Usage: "summarise an offer locally, no node required",
			ArgsUsage: "\n   (+ = select one)",
			Flags: append([]cli.Flag{
				cli.StringSliceFlag{
					Name:  "dictionary, d",
					Usage: " compression dictionary `FILE`, repeat in version order (default: built in)",
				},
			}, offerFlags...),
			Action: runDecode,
		},
		{
			Name:   "peers",
			Usage:  "number of connected peers",
			Action: runPeers,
		},
		{
			Name:   "info",
			Usage:  "display splashd status",
			Action: runInfo,
		},
		{
			Name:      "nft",
			Usage:     "metadata for a non-fungible item",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "id, i",
					Value: "",
					Usage: "*item `ID` (nft1…)",
				},
			},
			Action: runNFT,
		},
		{
			Name:      "asset",
			Usage:     "token listing for a code or asset id",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "code, a",
					Value: "",
					Usage: "*token `CODE` or asset id",
				},
			},
			Action: runAsset,
		},
		{
			Name:  "version",
			Usage: "display splash-cli version",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version)
				return nil
			},
		},
	}

	app.Before = func(c *cli.Context) error {
		m := &metadata{
			connect: c.GlobalString("connect"),
			tls:     c.GlobalBool("tls"),
			verbose: c.GlobalBool("verbose"),
			e:       c.App.ErrWriter,
			w:       c.App.Writer,
		}
		c.App.Metadata = map[string]interface{}{
			"config": m,
		}
		return nil
	}

	return app
}
