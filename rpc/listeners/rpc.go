// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package listeners - accept JSON RPC connections
package listeners

import (
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"strings"
	"sync"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/palletd/counter"
	"github.com/bitmark-inc/palletd/fault"
)

const (
	logName            = "client_rpc"
	minConnectionCount = 1
)

// Listener - a started or startable network listener
type Listener interface {
	Serve() error
	Addresses() []net.Addr
	Close() error
}

type rpcListener struct {
	sync.Mutex
	log             *logger.L
	listeners       []net.Listener
	count           *counter.Counter
	server          *rpc.Server
	maxConnections  uint64
	ipType          []string
	listenIPAndPort []string
}

// Serve - open every listen address and start accepting
func (r *rpcListener) Serve() error {
	r.Lock()
	defer r.Unlock()

	for i, listen := range r.listenIPAndPort {
		r.log.Infof("starting RPC server: %s", listen)
		l, err := net.Listen(r.ipType[i], listen)
		if nil != err {
			r.log.Errorf("rpc server listen error: %s", err)
			return err
		}
		r.listeners = append(r.listeners, l)

		go doServeRPC(l, r.server, r.maxConnections, r.log, r.count)
	}
	return nil
}

// Addresses - the bound addresses, useful when listening on port zero
func (r *rpcListener) Addresses() []net.Addr {
	r.Lock()
	defer r.Unlock()

	addresses := make([]net.Addr, 0, len(r.listeners))
	for _, l := range r.listeners {
		addresses = append(addresses, l.Addr())
	}
	return addresses
}

// Close - stop accepting; open connections finish their current requests
func (r *rpcListener) Close() error {
	r.Lock()
	defer r.Unlock()

	var first error
	for _, l := range r.listeners {
		if err := l.Close(); nil != err && nil == first {
			first = err
		}
	}
	r.listeners = nil
	return first
}

func doServeRPC(listen net.Listener, server *rpc.Server, maximumConnections uint64, log *logger.L, count *counter.Counter) {
	for {
		conn, err := listen.Accept()
		if nil != err {
			log.Infof("rpc.server terminated: accept error: %s", err)
			break
		}
		if count.Increment() <= maximumConnections {
			go func() {
				server.ServeCodec(jsonrpc.NewServerCodec(conn))
				_ = conn.Close()
				count.Decrement()
			}()
		} else {
			count.Decrement()
			log.Warnf("connection limit reached: %d  rejected: %s", maximumConnections, conn.RemoteAddr())
			_ = conn.Close()
		}
	}
	_ = listen.Close()
	log.Info("RPC accept terminated")
}

// RPCConfiguration - configuration file data for RPC setup
type RPCConfiguration struct {
	MaximumConnections uint64   `gluamapper:"maximum_connections" json:"maximum_connections"`
	Listen             []string `gluamapper:"listen" json:"listen"`
}

// NewRPC - validate the configuration and create a listener
func NewRPC(
	configuration *RPCConfiguration,
	log *logger.L,
	count *counter.Counter,
	server *rpc.Server,
) (Listener, error) {
	if configuration.MaximumConnections < minConnectionCount {
		log.Errorf("invalid %s maximum connection limit: %d", logName, configuration.MaximumConnections)
		return nil, fault.ErrMissingParameters
	}

	if 0 == len(configuration.Listen) {
		log.Errorf("missing %s listen", logName)
		return nil, fault.ErrMissingParameters
	}

	listen := make([]string, len(configuration.Listen))
	copy(listen, configuration.Listen)

	r := &rpcListener{
		log:             log,
		maxConnections:  configuration.MaximumConnections,
		listenIPAndPort: listen,
		server:          server,
		count:           count,
	}

	// validate all listen addresses
	ipType, err := parseListenAddress(r.listenIPAndPort, r.log)
	if nil != err {
		return nil, err
	}
	r.ipType = ipType

	return r, nil
}

func parseListenAddress(addrs []string, log *logger.L) ([]string, error) {
	parsed := make([]string, len(addrs))
	for i, listen := range addrs {
		if "" == listen || !strings.Contains(listen, ":") {
			log.Errorf("rpc server listen error: %s: %q", fault.ErrInvalidIpAddress, listen)
			return nil, fault.ErrInvalidIpAddress
		}

		if '*' == listen[0] {
			// change "*:PORT" to "[::]:PORT"
			// on the assumption that this will listen on tcp4 and tcp6
			addrs[i] = "[::]" + ":" + strings.Split(listen, ":")[1]
			listen = "::"
			parsed[i] = "tcp"
		} else if '[' == listen[0] {
			listen = strings.Split(listen[1:], "]:")[0]
			parsed[i] = "tcp6"
		} else {
			listen = strings.Split(listen, ":")[0]
			parsed[i] = "tcp4"
		}

		if ip := net.ParseIP(listen); nil == ip {
			err := fault.ErrInvalidIpAddress
			log.Errorf("rpc server listen error: %s", err)
			return nil, err
		}
	}

	return parsed, nil
}
