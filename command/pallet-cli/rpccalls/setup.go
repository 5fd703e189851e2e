// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package rpccalls - typed client for the palletd JSON RPC
package rpccalls

import (
	"io"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"time"
)

const (
	dialTimeout = 10 * time.Second
)

// Client - to hold RPC connections streams
type Client struct {
	conn    net.Conn
	client  *rpc.Client
	verbose bool
	handle  io.Writer // if verbose is set output items here
}

// NewClient - create a RPC connection to a palletd
func NewClient(connect string, verbose bool, handle io.Writer) (*Client, error) {

	conn, err := net.DialTimeout("tcp", connect, dialTimeout)
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

// Close - shutdown the palletd connection
func (c *Client) Close() {
	c.client.Close()
}
