// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"time"
)

const dialTimeout = 10 * time.Second

// Client - to hold RPC connections streams
type Client struct {
	conn    net.Conn
	client  *rpc.Client
	verbose bool
	handle  io.Writer // if verbose is set output items here
}

// NewClient - create a RPC connection to a splashd
func NewClient(connect string, useTLS bool, verbose bool, handle io.Writer) (*Client, error) {

	dialer := &net.Dialer{
		Timeout: dialTimeout,
	}

	var conn net.Conn
	var err error
	if useTLS {
		tlsConfig := &tls.Config{
			InsecureSkipVerify: true,
		}
		conn, err = tls.DialWithDialer(dialer, "tcp", connect, tlsConfig)
	} else {
		conn, err = dialer.Dial("tcp", connect)
	}
	if err != nil {
		return nil, err
	}

	r := &Client{
		conn:    conn,
		client:  jsonrpc.NewClient(conn),
		verbose: verbose,
		handle:  handle,
	}
	return r, nil
}

// Close - shutdown the splashd connection
func (c *Client) Close() {
	c.client.Close()
}

func (c *Client) call(method string, arguments interface{}, reply interface{}) error {
	if c.verbose {
		fmt.Fprintf(c.handle, "%s: %+v\n", method, arguments)
	}
	err := c.client.Call(method, arguments, reply)
	if c.verbose && nil != err {
		fmt.Fprintf(c.handle, "%s error: %s\n", method, err)
	}
	return err
}
