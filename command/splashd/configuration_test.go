// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/splash-network/splashd/gossip"
)

func writeConfiguration(t *testing.T, content string) (string, string) {
	dir := t.TempDir()
	name := filepath.Join(dir, "splashd.conf")
	err := os.WriteFile(name, []byte(content), 0600)
	if nil != err {
		t.Fatalf("write with error: %s", err)
	}
	return dir, name
}

func TestGetConfigurationDefaults(t *testing.T) {
	dir, name := writeConfiguration(t, `
local M = {}
M.data_directory = "."
M.pidfile = "splashd.pid"
M.offer = { dictionaries = { "dict/v1.bin", "/abs/v2.bin" } }
M.peering = {
    connect = { "/dnsaddr/bootstrap.splash.example/p2p/12D3KooWEhm8sTAMfEzVPYcbLWxQ8ifDsmoGTfVdLpUzeg8bPSPj" },
}
return M
`)

	c, err := getConfiguration(name)
	assert.Nil(t, err, "wrong getConfiguration")

	assert.Equal(t, filepath.Clean(dir)+"/", c.DataDirectory, "wrong data directory")
	assert.Equal(t, filepath.Join(dir, "splashd.pid"), c.PidFile, "wrong pid file")
	assert.Equal(t, []string{filepath.Join(dir, "dict/v1.bin"), "/abs/v2.bin"}, c.Offer.Dictionaries, "wrong dictionaries")
	assert.Equal(t, gossip.DefaultTopic, c.Peering.Topic, "wrong topic")
	assert.Equal(t, gossip.DefaultMaximumPayload, c.Peering.MaximumPayload, "wrong payload")
	assert.Equal(t, 1, len(c.Peering.Connect), "wrong connect")
	assert.Equal(t, []string{defaultRPCListen}, c.ClientRPC.Listen, "wrong rpc listen")
	assert.Equal(t, "", c.ClientRPC.Certificate, "certificate set")
	assert.Equal(t, filepath.Join(dir, defaultLogDirectory), c.Logging.Directory, "wrong log directory")

	_, err = os.Stat(c.Logging.Directory)
	assert.Nil(t, err, "log directory not created")
}

func TestGetConfigurationWhenNoDataDirectory(t *testing.T) {
	_, name := writeConfiguration(t, `return {}`)

	_, err := getConfiguration(name)
	assert.NotNil(t, err, "missing data directory accepted")
}

func TestGetConfigurationWhenWaterMarksReversed(t *testing.T) {
	_, name := writeConfiguration(t, `return { data_directory = ".", peering = { low_water = 10, high_water = 5 } }`)

	_, err := getConfiguration(name)
	assert.NotNil(t, err, "reversed water marks accepted")
}

func TestGetConfigurationWhenLogFileIsPath(t *testing.T) {
	_, name := writeConfiguration(t, `return { data_directory = ".", logging = { file = "a/b.log" } }`)

	_, err := getConfiguration(name)
	assert.NotNil(t, err, "log path accepted")
}
