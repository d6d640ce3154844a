// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package listeners

import (
	"context"
	"crypto/tls"
	"errors"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/splash-network/splashd/fault"
	"github.com/splash-network/splashd/rpc/handler"
)

const (
	httpLogName      = "http_rpc"
	readWriteTimeout = 10 * time.Second
	shutdownTimeout  = 5 * time.Second
)

// HTTPConfiguration - configuration file data for HTTP setup
type HTTPConfiguration struct {
	MaximumConnections uint64              `gluamapper:"maximum_connections" json:"maximum_connections"`
	Listen             []string            `gluamapper:"listen" json:"listen"`
	Certificate        string              `gluamapper:"certificate" json:"certificate"`
	PrivateKey         string              `gluamapper:"private_key" json:"private_key"`
	Allow              map[string][]string `gluamapper:"allow" json:"allow"`
}

type httpListener struct {
	sync.Mutex
	log             *logger.L
	listenIPAndPort []string
	ipType          []string
	tlsConfig       *tls.Config
	mux             *http.ServeMux
	servers         []*http.Server
	listeners       []net.Listener
}

// NewHTTP - JSON-RPC over HTTP POST plus status GET requests; nil when
// no listen address is configured
func NewHTTP(
	configuration *HTTPConfiguration,
	log *logger.L,
	tlsConfig *tls.Config,
	hdlr handler.Handler,
) (Listener, error) {
	if 0 == len(configuration.Listen) {
		log.Infof("disable: %s", httpLogName)
		return nil, nil
	}

	if configuration.MaximumConnections < minConnectionCount {
		log.Errorf("invalid %s maximum connection limit: %d", httpLogName, configuration.MaximumConnections)
		return nil, fault.MissingParameters
	}

	listen := append([]string{}, configuration.Listen...)
	ipType, err := parseListenAddress(listen, log)
	if nil != err {
		return nil, err
	}

	// access control per path
	local := make(map[string][]*net.IPNet)
	for path, addresses := range configuration.Allow {
		set := make([]*net.IPNet, len(addresses))
		local[path] = set
		for i, ip := range addresses {
			_, cidr, err := net.ParseCIDR(strings.Trim(ip, " "))
			if nil != err {
				log.Errorf("allow: %q  error: %s", ip, err)
				return nil, err
			}
			set[i] = cidr
		}
	}

	hdlr.SetAllow(local)

	h := &httpListener{
		log:             log,
		listenIPAndPort: listen,
		ipType:          ipType,
		tlsConfig:       tlsConfig,
		mux:             http.NewServeMux(),
	}

	h.mux.HandleFunc("/splashd/rpc", hdlr.RPC)
	h.mux.HandleFunc("/splashd/details", hdlr.Details)
	h.mux.HandleFunc("/splashd/peers", hdlr.Peers)
	h.mux.HandleFunc("/", hdlr.Root)

	return h, nil
}

// Serve - start a server on every address
func (h *httpListener) Serve() error {
	h.Lock()
	defer h.Unlock()

	for i, listen := range h.listenIPAndPort {
		h.log.Infof("starting server: %s on: %q  tls: %t", httpLogName, listen, nil != h.tlsConfig)

		l, err := net.Listen(h.ipType[i], listen)
		if nil != err {
			h.log.Errorf("%s listen error: %s", httpLogName, err)
			return err
		}

		s := &http.Server{
			Handler:        h.mux,
			ReadTimeout:    readWriteTimeout,
			WriteTimeout:   readWriteTimeout,
			MaxHeaderBytes: 1 << 20,
		}
		if nil != h.tlsConfig {
			cfg := h.tlsConfig.Clone()
			cfg.NextProtos = []string{"http/1.1"}
			l = tls.NewListener(l, cfg)
		}

		h.servers = append(h.servers, s)
		h.listeners = append(h.listeners, l)

		go func(s *http.Server, l net.Listener) {
			err := s.Serve(l)
			if nil != err && !errors.Is(err, http.ErrServerClosed) {
				h.log.Errorf("%s serve error: %s", httpLogName, err)
			}
		}(s, l)
	}

	return nil
}

// Addrs - bound addresses
func (h *httpListener) Addrs() []net.Addr {
	h.Lock()
	defer h.Unlock()

	addrs := make([]net.Addr, len(h.listeners))
	for i, l := range h.listeners {
		addrs[i] = l.Addr()
	}
	return addrs
}

// Close - shut down all servers
func (h *httpListener) Close() error {
	h.Lock()
	defer h.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	for _, s := range h.servers {
		_ = s.Shutdown(ctx)
	}
	h.servers = nil
	h.listeners = nil
	return nil
}
