// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"
	ma "github.com/multiformats/go-multiaddr"
	madns "github.com/multiformats/go-multiaddr-dns"

	"github.com/splash-network/splashd/addressbook"
	"github.com/splash-network/splashd/asset"
	"github.com/splash-network/splashd/background"
	"github.com/splash-network/splashd/catalog"
	"github.com/splash-network/splashd/fault"
	"github.com/splash-network/splashd/nodes"
	"github.com/splash-network/splashd/offer"
	"github.com/splash-network/splashd/p2p"
	"github.com/splash-network/splashd/publish"
	"github.com/splash-network/splashd/rpc"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// time allowed to expand /dnsaddr/ bootstrap entries at startup
const resolveTimeout = 30 * time.Second

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "quiet", HasArg: getoptions.NO_ARGUMENT, Short: 'q'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "config-file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
		{Long: "memory-stats", HasArg: getoptions.NO_ARGUMENT, Short: 'm'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		processSetupCommand(program, []string{"version"})
		return
	}

	if len(options["help"]) > 0 {
		processSetupCommand(program, []string{"help"})
		return
	}

	// these commands do not require the configuration and
	// process data needed for initial setup
	if len(arguments) > 0 && processSetupCommand(program, arguments) {
		return
	}

	if 1 != len(options["config-file"]) {
		exitwithstatus.Message("%s: only one config-file option is required, %d were detected", program, len(options["config-file"]))
	}

	// read options and parse the configuration file
	configurationFile := options["config-file"][0]
	theConfiguration, err := getConfiguration(configurationFile)
	if nil != err {
		exitwithstatus.Message("%s: failed to read configuration from: %q  error: %s", program, configurationFile, err)
	}

	// these commands require the configuration and
	// perform enquiries on the configuration
	if len(arguments) > 0 && processConfigCommand(arguments, theConfiguration) {
		return
	}

	if len(options["verbose"]) > 0 {
		theConfiguration.Logging.Console = true
	}

	// start logging
	if err = logger.Initialise(theConfiguration.Logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	// panic channel
	if err = fault.Initialise(); nil != err {
		exitwithstatus.Message("%s: panic log setup failed with error: %s", program, err)
	}
	defer fault.Finalise()

	// create a logger channel for the main program
	log := logger.New("main")
	defer log.Info("finished")
	log.Info("starting…")
	log.Infof("version: %s", version)
	log.Debugf("theConfiguration: %v", theConfiguration)

	// ------------------
	// start of real main
	// ------------------

	// optional PID file
	// use if not running under a supervisor program like daemon(8)
	if "" != theConfiguration.PidFile {
		lockFile, err := os.OpenFile(theConfiguration.PidFile, os.O_WRONLY|os.O_EXCL|os.O_CREATE, os.ModeExclusive|0600)
		if err != nil {
			if os.IsExist(err) {
				exitwithstatus.Message("%s: another instance is already running", program)
			}
			exitwithstatus.Message("%s: PID file: %q creation failed, error: %s", program, theConfiguration.PidFile, err)
		}
		fmt.Fprintf(lockFile, "%d\n", os.Getpid())
		lockFile.Close()
		defer os.Remove(theConfiguration.PidFile)
	}

	// start a profiling http server
	// this uses the default builtin HTTP handler
	// and is not associated with the normal ClientRPC HTTP server
	if "" != theConfiguration.ProfileHTTP {
		go func() {
			log.Warnf("profile listener on: %s", theConfiguration.ProfileHTTP)
			err := http.ListenAndServe(theConfiguration.ProfileHTTP, nil)
			exitwithstatus.Message("profile error: %s", err)
		}()
	}

	// connection info
	log.Debugf("%s = %#v", "ClientRPC", theConfiguration.ClientRPC)
	log.Debugf("%s = %#v", "Peering", theConfiguration.Peering)
	log.Debugf("%s = %#v", "Publishing", theConfiguration.Publishing)
	log.Debugf("%s = %#v", "Catalog", theConfiguration.Catalog)

	// offer decoding
	log.Info("initialise offer codec")
	dictionaries, err := offer.LoadDictionaries(theConfiguration.Offer.Dictionaries)
	if nil != err {
		log.Criticalf("offer dictionaries error: %s", err)
		exitwithstatus.Message("offer dictionaries error: %s", err)
	}
	if 0 == len(theConfiguration.Offer.Dictionaries) {
		_, missing, _ := offer.DefaultDictionaries()
		for _, name := range missing {
			log.Warnf("dictionary module not bundled: %s", name)
		}
	}
	log.Infof("compression version: %d", dictionaries.Latest())
	codec := offer.NewCodec(asset.Default(), dictionaries)

	// bootstrap addresses
	log.Info("initialise address book")
	nodesLog := logger.New("nodes")
	lookuper := nodes.NewLookuper(nodesLog, nodes.TXT)
	book, err := bootstrapAddresses(nodesLog, &theConfiguration.Peering, lookuper)
	if nil != err {
		log.Criticalf("address book error: %s", err)
		exitwithstatus.Message("address book error: %s", err)
	}
	log.Infof("bootstrap addresses: %d", book.Len())

	// host notifications need to be ready before the node reports peers
	err = publish.Initialise(&theConfiguration.Publishing)
	if nil != err {
		log.Criticalf("publish initialise error: %s", err)
		exitwithstatus.Message("publish initialise error: %s", err)
	}
	defer publish.Finalise()

	// start up the p2p background processes
	err = p2p.Initialise(&theConfiguration.Peering, book, codec, version)
	if nil != err {
		log.Criticalf("p2p initialise error: %s", err)
		exitwithstatus.Message("p2p initialise error: %s", err)
	}
	defer p2p.Finalise()

	// periodic refresh of the nodes domain
	if "" != theConfiguration.Peering.Nodes {
		refresher := nodes.NewRefresher(nodesLog, theConfiguration.Peering.Nodes, lookuper, p2p.AddBootstrap)
		refresh := background.Start(background.Processes{refresher}, nil)
		defer refresh.Stop()
	}

	// metadata lookups
	cat := catalog.New(&theConfiguration.Catalog, logger.New("catalog"))

	// start up the rpc background processes
	err = rpc.Initialise(&theConfiguration.ClientRPC, &theConfiguration.HttpRPC, version, p2p.Get(), codec, cat)
	if nil != err {
		log.Criticalf("rpc initialise error: %s", err)
		exitwithstatus.Message("rpc initialise error: %s", err)
	}
	defer rpc.Finalise()

	// prometheus scrape endpoint
	if "" != theConfiguration.Metrics.Listen {
		server, err := metricsServer(log, theConfiguration.Metrics.Listen)
		if nil != err {
			log.Criticalf("metrics listen error: %s", err)
			exitwithstatus.Message("metrics listen error: %s", err)
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = server.Shutdown(ctx)
		}()
	}

	// if memory logging enabled
	if len(options["memory-stats"]) > 0 {
		go memstats()
	}

	// wait for CTRL-C before shutting down to allow manual testing
	if 0 == len(options["quiet"]) {
		fmt.Printf("\n\nWaiting for CTRL-C (SIGINT) or 'kill <pid>' (SIGTERM)…")
	}

	// turn Signals into channel messages
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	sig := <-ch
	log.Infof("received signal: %v", sig)
	if 0 == len(options["quiet"]) {
		fmt.Printf("\nreceived signal: %v\n", sig)
		fmt.Printf("\nshutting down…\n")
	}

	log.Info("shutting down…")
}

// bootstrapAddresses - static connect entries with /dnsaddr/ expanded,
// followed by the entries published in the nodes domain
//
// a static entry without a peer identity is an error, resolved and
// published entries that lack one are skipped
func bootstrapAddresses(log *logger.L, configuration *p2p.Configuration, lookuper nodes.Lookuper) (*addressbook.Book, error) {
	book, err := addressbook.New(nil)
	if nil != err {
		return nil, err
	}

	dnsaddrs := []ma.Multiaddr{}
	for _, c := range configuration.Connect {
		address, err := ma.NewMultiaddr(c)
		if nil != err {
			log.Errorf("connect: %q  error: %s", c, err)
			return nil, err
		}
		if nodes.IsDNSAddr(address) {
			dnsaddrs = append(dnsaddrs, address)
			continue
		}
		if err := book.Add(address); nil != err {
			log.Errorf("connect: %q  error: %s", c, err)
			return nil, err
		}
	}

	discovered := []ma.Multiaddr{}
	if len(dnsaddrs) > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), resolveTimeout)
		defer cancel()
		discovered = nodes.Expand(ctx, madns.DefaultResolver, dnsaddrs, log)
	}

	if "" != configuration.Nodes {
		published, err := lookuper.Lookup(configuration.Nodes)
		if nil != err {
			log.Warnf("nodes: %s  error: %s", configuration.Nodes, err)
		}
		discovered = append(discovered, published...)
	}

	for _, a := range discovered {
		if err := book.Add(a); nil != err {
			log.Warnf("skip: %s  error: %s", a, err)
		}
	}
	return book, nil
}

// metricsServer - serve the node registry for prometheus scrapes
func metricsServer(log *logger.L, listen string) (*http.Server, error) {
	l, err := net.Listen("tcp", listen)
	if nil != err {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", p2p.GetMetrics().Handler())

	server := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Infof("metrics listener on: %s", l.Addr())
		err := server.Serve(l)
		if nil != err && !errors.Is(err, http.ErrServerClosed) {
			log.Errorf("metrics serve error: %s", err)
		}
	}()
	return server, nil
}
