// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package handler

import (
	"io"
	"net"
	"net/http"
	"net/rpc"
	"net/rpc/jsonrpc"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"
	jsoniter "github.com/json-iterator/go"

	"github.com/splash-network/splashd/counter"
	"github.com/splash-network/splashd/p2p"
)

// limit on an HTTP request body
const maximumBodySize = 1 << 20

// Handler - HTTP entry points
type Handler interface {
	RPC(w http.ResponseWriter, r *http.Request)
	Details(w http.ResponseWriter, r *http.Request)
	Peers(w http.ResponseWriter, r *http.Request)
	Root(w http.ResponseWriter, r *http.Request)
	SetAllow(allow map[string][]*net.IPNet)
}

type handler struct {
	sync.RWMutex
	log                *logger.L
	server             *rpc.Server
	start              time.Time
	version            string
	allow              map[string][]*net.IPNet
	maximumConnections uint64
	count              counter.Counter
	network            p2p.API
}

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// New - create the HTTP handler
func New(log *logger.L, server *rpc.Server, start time.Time, version string, maximumConnections uint64, network p2p.API) Handler {
	return &handler{
		log:                log,
		server:             server,
		start:              start,
		version:            version,
		allow:              make(map[string][]*net.IPNet),
		maximumConnections: maximumConnections,
		network:            network,
	}
}

// type to allow rpc system to interface to http request
type internalConnection struct {
	in  io.Reader
	out io.Writer
}

func (c *internalConnection) Read(p []byte) (n int, err error) {
	return c.in.Read(p)
}
func (c *internalConnection) Write(d []byte) (n int, err error) {
	return c.out.Write(d)
}
func (c *internalConnection) Close() error {
	return nil
}

// SetAllow - access control lists keyed by path name
func (h *handler) SetAllow(allow map[string][]*net.IPNet) {
	h.Lock()
	h.allow = allow
	h.Unlock()
}

// Root - anything not matched
func (h *handler) Root(w http.ResponseWriter, _ *http.Request) {
	sendError(w, http.StatusNotFound, "not found")
}

// RPC - a single JSON-RPC call in a POST body
func (h *handler) RPC(w http.ResponseWriter, r *http.Request) {
	if http.MethodPost != r.Method {
		sendError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if !h.count.Acquire(h.maximumConnections) {
		sendError(w, http.StatusTooManyRequests, http.StatusText(http.StatusTooManyRequests))
		return
	}
	defer h.count.Release()

	body := http.MaxBytesReader(w, r.Body, maximumBodySize)
	serverCodec := jsonrpc.NewServerCodec(&internalConnection{in: body, out: w})
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	err := h.server.ServeRequest(serverCodec)
	if nil != err {
		h.log.Debugf("rpc request error: %s", err)
		sendError(w, http.StatusInternalServerError, "internal server error")
		return
	}
}

// Details - node status for monitoring
func (h *handler) Details(w http.ResponseWriter, r *http.Request) {
	if !h.checkAccess(w, r, "details") {
		return
	}
	defer h.count.Release()

	type theReply struct {
		Version     string    `json:"version"`
		Uptime      string    `json:"uptime"`
		Connections uint64    `json:"connections"`
		Node        *p2p.Info `json:"node,omitempty"`
	}

	reply := theReply{
		Version:     h.version,
		Uptime:      time.Since(h.start).String(),
		Connections: h.count.Uint64(),
	}
	info, err := h.network.Info()
	if nil == err {
		reply.Node = info
	}

	sendReply(w, reply)
}

// Peers - current peer count
func (h *handler) Peers(w http.ResponseWriter, r *http.Request) {
	if !h.checkAccess(w, r, "peers") {
		return
	}
	defer h.count.Release()

	type theReply struct {
		Peers uint64 `json:"peers"`
	}

	sendReply(w, theReply{Peers: h.network.PeerCount()})
}

// checkAccess - GET only, allowed address, within the connection limit;
// on true the caller must release the slot
func (h *handler) checkAccess(w http.ResponseWriter, r *http.Request, name string) bool {
	if http.MethodGet != r.Method {
		sendError(w, http.StatusMethodNotAllowed, "method not allowed")
		return false
	}

	if !h.allowed(r.RemoteAddr, name) {
		h.log.Warnf("deny access: %q  to: %s", r.RemoteAddr, name)
		sendError(w, http.StatusForbidden, "forbidden")
		return false
	}

	if !h.count.Acquire(h.maximumConnections) {
		sendError(w, http.StatusTooManyRequests, http.StatusText(http.StatusTooManyRequests))
		return false
	}
	return true
}

func (h *handler) allowed(remoteAddr string, name string) bool {
	host, _, err := net.SplitHostPort(remoteAddr)
	if nil != err {
		return false
	}
	ip := net.ParseIP(host)
	if nil == ip {
		return false
	}

	h.RLock()
	defer h.RUnlock()

	for _, cidr := range h.allow[name] {
		if cidr.Contains(ip) {
			return true
		}
	}
	return false
}

func sendReply(w http.ResponseWriter, reply interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(reply)
}

func sendError(w http.ResponseWriter, code int, message string) {
	type errorReply struct {
		Code  int    `json:"code"`
		Error string `json:"error"`
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(errorReply{Code: code, Error: message})
}
