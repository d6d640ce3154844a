// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"crypto/tls"
	"os"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/splash-network/splashd/catalog"
	"github.com/splash-network/splashd/counter"
	"github.com/splash-network/splashd/fault"
	"github.com/splash-network/splashd/p2p"
	"github.com/splash-network/splashd/rpc/certificate"
	"github.com/splash-network/splashd/rpc/handler"
	"github.com/splash-network/splashd/rpc/listeners"
	"github.com/splash-network/splashd/rpc/server"
)

const (
	rpcName  = "client_rpc"
	httpName = "http_rpc"
)

// globals
type rpcData struct {
	sync.RWMutex // to allow locking

	log *logger.L // logger

	listeners []listeners.Listener

	// set once during initialise
	initialised bool
}

// global data
var globalData rpcData

// number of connected RPC clients
var connectionCountRPC counter.Counter

// Initialise - start the RPC and HTTP servers
func Initialise(
	rpcConfiguration *listeners.RPCConfiguration,
	httpConfiguration *listeners.HTTPConfiguration,
	version string,
	network p2p.API,
	codec p2p.Summarizer,
	cat catalog.Catalog,
) error {

	globalData.Lock()
	defer globalData.Unlock()

	// no need to start if already started
	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	log := logger.New("rpc")
	globalData.log = log
	log.Info("starting…")

	s := server.Create(log, version, &connectionCountRPC, network, codec, cat)

	tlsConfig, err := loadTLS(log, rpcName, rpcConfiguration.Certificate, rpcConfiguration.PrivateKey)
	if nil != err {
		return err
	}

	rpcListener, err := listeners.NewRPC(rpcConfiguration, log, &connectionCountRPC, s, tlsConfig)
	if nil != err {
		return err
	}
	err = rpcListener.Serve()
	if nil != err {
		_ = rpcListener.Close()
		return err
	}
	globalData.listeners = append(globalData.listeners, rpcListener)

	if nil != httpConfiguration && 0 != len(httpConfiguration.Listen) {
		tlsConfig, err := loadTLS(log, httpName, httpConfiguration.Certificate, httpConfiguration.PrivateKey)
		if nil != err {
			closeAll()
			return err
		}

		h := handler.New(log, s, time.Now(), version, httpConfiguration.MaximumConnections, network)
		httpListener, err := listeners.NewHTTP(httpConfiguration, log, tlsConfig, h)
		if nil != err {
			closeAll()
			return err
		}
		err = httpListener.Serve()
		if nil != err {
			_ = httpListener.Close()
			closeAll()
			return err
		}
		globalData.listeners = append(globalData.listeners, httpListener)
	}

	// all data initialised
	globalData.initialised = true

	return nil
}

// Finalise - stop all listeners
func Finalise() error {

	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	closeAll()

	// finally...
	globalData.initialised = false

	globalData.log.Info("finished")
	globalData.log.Flush()

	return nil
}

// ConnectionCount - number of RPC clients currently connected
func ConnectionCount() uint64 {
	return connectionCountRPC.Uint64()
}

// caller must hold the lock
func closeAll() {
	for _, l := range globalData.listeners {
		_ = l.Close()
	}
	globalData.listeners = nil
}

// loadTLS - nil configuration when no certificate is set
func loadTLS(log *logger.L, name string, certificateFile string, keyFile string) (*tls.Config, error) {
	if "" == certificateFile && "" == keyFile {
		log.Infof("%s: tls disabled", name)
		return nil, nil
	}

	cer, err := os.ReadFile(certificateFile)
	if nil != err {
		log.Errorf("%s: certificate: %q  error: %s", name, certificateFile, err)
		return nil, err
	}
	key, err := os.ReadFile(keyFile)
	if nil != err {
		log.Errorf("%s: private key: %q  error: %s", name, keyFile, err)
		return nil, err
	}

	tlsConfig, fingerprint, err := certificate.Get(log, name, string(cer), string(key))
	if nil != err {
		return nil, err
	}
	log.Infof("%s: SHA3-256 fingerprint: %x", name, fingerprint)

	return tlsConfig, nil
}
