// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bitmark-inc/logger"

	"github.com/splash-network/splashd/catalog"
	"github.com/splash-network/splashd/configuration"
	"github.com/splash-network/splashd/gossip"
	"github.com/splash-network/splashd/p2p"
	"github.com/splash-network/splashd/publish"
	"github.com/splash-network/splashd/rpc/listeners"
)

// basic defaults (directories and files are relative to the "DataDirectory" from Configuration file)
const (
	defaultDataDirectory = "" // this will error; use "." for the same directory as the config file

	defaultLogDirectory = "log"
	defaultLogFile      = "splashd.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size

	defaultRPCClients  = 10
	defaultRPCListen   = "127.0.0.1:2150"
	defaultLowWater    = 32
	defaultHighWater   = 96
	defaultPeerListen4 = "/ip4/0.0.0.0/tcp/2136"
	defaultPeerListen6 = "/ip6/::/tcp/2136"
)

// to hold log levels
type LoglevelMap map[string]string

// path expanded or calculated defaults
var (
	defaultLogLevels = LoglevelMap{
		logger.DefaultTag: "critical",
	}
)

// OfferConfiguration - compression dictionaries in version order
type OfferConfiguration struct {
	Dictionaries []string `gluamapper:"dictionaries" json:"dictionaries"`
}

// MetricsConfiguration - prometheus scrape endpoint
type MetricsConfiguration struct {
	Listen string `gluamapper:"listen" json:"listen"`
}

// Configuration - the whole configuration file
type Configuration struct {
	DataDirectory string `gluamapper:"data_directory" json:"data_directory"`
	PidFile       string `gluamapper:"pidfile" json:"pidfile"`
	ProfileHTTP   string `gluamapper:"profile_http" json:"profile_http"`

	Peering    p2p.Configuration            `gluamapper:"peering" json:"peering"`
	Offer      OfferConfiguration           `gluamapper:"offer" json:"offer"`
	ClientRPC  listeners.RPCConfiguration   `gluamapper:"client_rpc" json:"client_rpc"`
	HttpRPC    listeners.HTTPConfiguration  `gluamapper:"http_rpc" json:"http_rpc"`
	Publishing publish.Configuration        `gluamapper:"publishing" json:"publishing"`
	Catalog    catalog.Configuration        `gluamapper:"catalog" json:"catalog"`
	Metrics    MetricsConfiguration         `gluamapper:"metrics" json:"metrics"`
	Logging    logger.Configuration         `gluamapper:"logging" json:"logging"`
}

// will read decode and verify the configuration
func getConfiguration(configurationFileName string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	options := &Configuration{

		DataDirectory: defaultDataDirectory,
		PidFile:       "", // no PidFile by default

		Peering: p2p.Configuration{
			Listen:         []string{defaultPeerListen4, defaultPeerListen6},
			Topic:          gossip.DefaultTopic,
			MaximumPayload: gossip.DefaultMaximumPayload,
			LowWater:       defaultLowWater,
			HighWater:      defaultHighWater,
		},

		ClientRPC: listeners.RPCConfiguration{
			MaximumConnections: defaultRPCClients,
			Listen:             []string{defaultRPCListen},
		},

		HttpRPC: listeners.HTTPConfiguration{
			MaximumConnections: defaultRPCClients,
		},

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels:    defaultLogLevels,
		},
	}

	if err := configuration.ParseConfigurationFile(configurationFileName, options); err != nil {
		return nil, err
	}

	// ensure absolute data directory
	if "" == options.DataDirectory || "~" == options.DataDirectory {
		return nil, fmt.Errorf("Path: %q is not a valid directory", options.DataDirectory)
	} else if "." == options.DataDirectory {
		options.DataDirectory = dataDirectory // same directory as the configuration file
	} else {
		options.DataDirectory = filepath.Clean(options.DataDirectory)
	}

	// this directory must exist - i.e. must be created prior to running
	if fileInfo, err := os.Stat(options.DataDirectory); nil != err {
		return nil, err
	} else if !fileInfo.IsDir() {
		return nil, fmt.Errorf("Path: %q is not a directory", options.DataDirectory)
	}

	if options.Peering.LowWater > options.Peering.HighWater {
		return nil, fmt.Errorf("peering: low_water: %d exceeds high_water: %d", options.Peering.LowWater, options.Peering.HighWater)
	}

	// force all relevant items to be absolute paths
	// if not, assign them to the data directory
	mustBeAbsolute := []*string{
		&options.Logging.Directory,
	}
	for _, f := range mustBeAbsolute {
		*f = ensureAbsolute(options.DataDirectory, *f)
	}

	// optional absolute paths i.e. blank or an absolute path
	optionalAbsolute := []*string{
		&options.PidFile,
		&options.ClientRPC.Certificate,
		&options.ClientRPC.PrivateKey,
		&options.HttpRPC.Certificate,
		&options.HttpRPC.PrivateKey,
	}
	for i := range options.Offer.Dictionaries {
		optionalAbsolute = append(optionalAbsolute, &options.Offer.Dictionaries[i])
	}
	for _, f := range optionalAbsolute {
		if "" != *f {
			*f = ensureAbsolute(options.DataDirectory, *f)
		}
	}

	// the log file must be a plain name within the log directory
	switch filepath.Dir(options.Logging.File) {
	case "", ".":
	default:
		return nil, fmt.Errorf("Files: %q is not plain name", options.Logging.File)
	}

	// create directories if they do not already exist
	if err := os.MkdirAll(options.Logging.Directory, 0700); nil != err {
		return nil, err
	}

	// done
	return options, nil
}

// ensureAbsolute - relative paths are taken from the directory
func ensureAbsolute(directory string, filePath string) string {
	if !filepath.IsAbs(filePath) {
		filePath = filepath.Join(directory, filePath)
	}
	return filepath.Clean(filePath)
}
