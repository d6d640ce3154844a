// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/splash-network/splashd/configuration"
	"github.com/splash-network/splashd/fault"
)

type peering struct {
	Listen         []string `gluamapper:"listen"`
	MaximumPayload int      `gluamapper:"maximum_payload"`
}

type testConfiguration struct {
	DataDirectory string            `gluamapper:"data_directory"`
	Peering       peering           `gluamapper:"peering"`
	Levels        map[string]string `gluamapper:"levels"`
}

const luaFile = `
local M = {}
M.data_directory = arg[0]:match("(.*/)")
M.peering = {
    listen = { "/ip4/0.0.0.0/tcp/2136", "/ip6/::/tcp/2136" },
    maximum_payload = 1024 * 300,
}
M.levels = { main = "info", DEFAULT = "error" }
return M
`

func writeFile(t *testing.T, content string) string {
	name := filepath.Join(t.TempDir(), "splashd.conf")
	err := os.WriteFile(name, []byte(content), 0600)
	if nil != err {
		t.Fatalf("write with error: %s", err)
	}
	return name
}

func TestParseConfigurationFile(t *testing.T) {
	name := writeFile(t, luaFile)

	var c testConfiguration
	err := configuration.ParseConfigurationFile(name, &c)
	assert.Nil(t, err, "wrong parse")
	assert.Equal(t, filepath.Dir(name)+"/", c.DataDirectory, "wrong data directory")
	assert.Equal(t, []string{"/ip4/0.0.0.0/tcp/2136", "/ip6/::/tcp/2136"}, c.Peering.Listen, "wrong listen")
	assert.Equal(t, 307200, c.Peering.MaximumPayload, "wrong maximum payload")
	assert.Equal(t, "error", c.Levels["DEFAULT"], "wrong levels")
}

func TestParseConfigurationFileWhenNotStruct(t *testing.T) {
	name := writeFile(t, luaFile)

	var s string
	err := configuration.ParseConfigurationFile(name, &s)
	assert.Equal(t, fault.InvalidStructPointer, err, "wrong error")

	err = configuration.ParseConfigurationFile(name, testConfiguration{})
	assert.Equal(t, fault.InvalidStructPointer, err, "wrong error")
}

func TestParseConfigurationFileWhenSyntaxError(t *testing.T) {
	name := writeFile(t, "return {")

	var c testConfiguration
	err := configuration.ParseConfigurationFile(name, &c)
	assert.NotNil(t, err, "syntax error accepted")
}

func TestParseConfigurationFileWhenNoTable(t *testing.T) {
	name := writeFile(t, "return 5")

	var c testConfiguration
	err := configuration.ParseConfigurationFile(name, &c)
	assert.NotNil(t, err, "non-table accepted")
}
