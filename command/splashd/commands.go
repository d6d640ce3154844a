// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	stdjson "encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bitmark-inc/exitwithstatus"
	jsoniter "github.com/json-iterator/go"
	"github.com/libp2p/go-libp2p/core/peer"
	ma "github.com/multiformats/go-multiaddr"

	"github.com/splash-network/splashd/fault"
	"github.com/splash-network/splashd/rpc/certificate"
	"github.com/splash-network/splashd/util"
)

const (
	peerPrivateKeyFilename = "peer.private"

	rpcCertificateKeyFilename = "rpc.crt"
	rpcPrivateKeyFilename     = "rpc.key"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// setup command handler
//
// commands that run to create key and certificate files these
// commands cannot access any internal state or the configuration
// file
func processSetupCommand(program string, arguments []string) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	switch command {
	case "generate-identity", "gen-peer-identity", "peer":
		privateKeyFilename := getFilenameWithDirectory(arguments, peerPrivateKeyFilename)

		if _, err := os.Stat(privateKeyFilename); nil == err {
			fmt.Printf("generate private key: %q error: %s\n", privateKeyFilename, fault.KeyFileAlreadyExists)
			exitwithstatus.Exit(1)
		}

		key, err := util.MakeEd25519PeerKey()
		if err != nil {
			fmt.Printf("generate private key: %q error: %s\n", privateKeyFilename, err)
			exitwithstatus.Exit(1)
		}

		if err := os.WriteFile(privateKeyFilename, []byte(key), 0600); err != nil {
			_ = os.Remove(privateKeyFilename)
			fmt.Printf("generate private key: %q error: %s\n", privateKeyFilename, err)
			exitwithstatus.Exit(1)
		}

		privateKey, _ := util.DecodePrivKeyFromHex(key)
		id, _ := peer.IDFromPrivateKey(privateKey)

		fmt.Printf("generated private key: %q\n", privateKeyFilename)
		fmt.Printf("peer id: %s\n", id)

	case "gen-rpc-cert", "rpc":
		certificateFilename := getFilenameWithDirectory(arguments, rpcCertificateKeyFilename)
		privateKeyFilename := getFilenameWithDirectory(arguments, rpcPrivateKeyFilename)

		addresses := []string{}
		if len(arguments) >= 2 {
			for _, a := range arguments[1:] {
				if "" != a {
					addresses = append(addresses, a)
				}
			}
		}

		err := certificate.MakeSelfSigned("rpc", certificateFilename, privateKeyFilename, addresses)
		if nil != err {
			fmt.Printf("generate RPC key: %q and certificate: %q error: %s\n", privateKeyFilename, certificateFilename, err)
			exitwithstatus.Exit(1)
		}
		fmt.Printf("generated RPC key: %q and certificate: %q\n", privateKeyFilename, certificateFilename)

	case "dns-txt", "txt":
		return false // defer processing until configuration is read

	case "start", "run":
		return false // continue processing

	case "config-test", "cfg":
		return false

	case "version", "v":
		fmt.Printf("%s\n", version)
		return true

	default:
		switch command {
		case "help", "h", "?":
		case "", " ":
			fmt.Printf("error: missing command\n")
		default:
			fmt.Printf("error: no such command: %q\n", command)
		}
		fmt.Printf("usage: %s [--help] [--verbose] [--quiet] --config-file=FILE [[command|help] arguments...]\n", program)

		fmt.Printf("supported commands:\n\n")
		fmt.Printf("  help                       (h)      - display this message\n\n")
		fmt.Printf("  version                    (v)      - display version sting\n\n")

		fmt.Printf("  generate-identity [DIR]    (peer)   - create private key in: %q\n", "DIR/"+peerPrivateKeyFilename)
		fmt.Printf("\n")

		fmt.Printf("  gen-rpc-cert [DIR] [IPs...] (rpc)   - create private key in:  %q\n", "DIR/"+rpcPrivateKeyFilename)
		fmt.Printf("                                        and the certificate in: %q\n", "DIR/"+rpcCertificateKeyFilename)
		fmt.Printf("\n")

		fmt.Printf("  dns-txt                    (txt)    - display the data to put in a dns TXT record\n")
		fmt.Printf("\n")

		fmt.Printf("  start                      (run)    - just run the program, same as no arguments\n")
		fmt.Printf("                                        for convienience when passing script arguments\n")
		fmt.Printf("\n")

		fmt.Printf("  config-test                (cfg)    - just check the configuration file\n")
		fmt.Printf("\n")

		exitwithstatus.Exit(1)
	}

	// indicate processing complete and preform normal exit from main
	return true
}

// configuration file enquiry commands
// have configuration file read and decoded, but nothing else
func processConfigCommand(arguments []string, options *Configuration) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
	}

	switch command {
	case "dns-txt", "txt":
		records, err := dnsTXT(options)
		if nil != err {
			exitwithstatus.Message("error: %s", err)
		}
		for _, r := range records {
			fmt.Printf("%s\n", r)
		}

	case "config-test", "cfg":
		b, err := json.Marshal(options)
		if err != nil {
			exitwithstatus.Message("error: %s", err)
		}
		var out bytes.Buffer
		_ = stdjson.Indent(&out, b, "", "  ")
		_, _ = out.WriteTo(os.Stdout)
		_, _ = os.Stdout.WriteString("\n")

	default: // unknown commands fall through to start
		return false
	}

	// indicate processing complete and perform normal exit from main
	return true
}

// dnsTXT - the records to publish in a nodes domain, one per
// announced address
func dnsTXT(options *Configuration) ([]string, error) {
	if "" == options.Peering.PrivateKey {
		return nil, fmt.Errorf("peering private_key is required for a stable identity")
	}
	key, err := util.DecodePrivKeyFromHex(options.Peering.PrivateKey)
	if nil != err {
		return nil, err
	}
	id, err := peer.IDFromPrivateKey(key)
	if nil != err {
		return nil, err
	}

	addresses := options.Peering.Announce
	if 0 == len(addresses) {
		addresses = options.Peering.Listen
	}

	records := make([]string, 0, len(addresses))
	for _, a := range addresses {
		address, err := ma.NewMultiaddr(a)
		if nil != err {
			return nil, fmt.Errorf("address: %q  error: %s", a, err)
		}
		records = append(records, fmt.Sprintf("dnsaddr=%s/p2p/%s", address, id))
	}
	return records, nil
}

// get the filename, with the directory if supplied
func getFilenameWithDirectory(arguments []string, name string) string {
	directory := "."
	if len(arguments) >= 1 && "" != arguments[0] {
		directory = arguments[0]
	}
	return filepath.Join(directory, name)
}
