// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"context"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/palletd/counter"
	"github.com/bitmark-inc/palletd/fault"
	"github.com/bitmark-inc/palletd/rpc/listeners"
	"github.com/bitmark-inc/palletd/rpc/server"
	"github.com/bitmark-inc/palletd/rpc/state"
)

// HTTPConfiguration - configuration file data for HTTP setup
type HTTPConfiguration struct {
	MaximumConnections uint64              `gluamapper:"maximum_connections" json:"maximum_connections"`
	Listen             []string            `gluamapper:"listen" json:"listen"`
	Allow              map[string][]string `gluamapper:"allow" json:"allow"`
}

// globals
type rpcData struct {
	sync.RWMutex // to allow locking

	log *logger.L // logger

	listener listeners.Listener
	servers  []*http.Server

	// set once during initialise
	initialised bool
}

// global data
var globalData rpcData

// number of active connections on all listeners
var connectionCountRPC counter.Counter

// Initialise - start the RPC listeners
func Initialise(rpcConfiguration *listeners.RPCConfiguration, httpConfiguration *HTTPConfiguration, n state.Node, withJournal bool, version string) error {
	globalData.Lock()
	defer globalData.Unlock()

	// no need to Start if already started
	if globalData.initialised {
		return fault.ErrAlreadyInitialised
	}

	log := logger.New("rpc")
	globalData.log = log
	log.Info("starting…")

	rpcListener, err := listeners.NewRPC(
		rpcConfiguration,
		log,
		&connectionCountRPC,
		server.Create(log, n, withJournal, version, &connectionCountRPC),
	)
	if nil != err {
		return err
	}
	err = rpcListener.Serve()
	if nil != err {
		_ = rpcListener.Close()
		return err
	}
	globalData.listener = rpcListener

	err = initialiseHTTP(httpConfiguration, n, withJournal, version)
	if nil != err {
		_ = rpcListener.Close()
		for _, s := range globalData.servers {
			_ = s.Close()
		}
		globalData.servers = nil
		return err
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
		return fault.ErrNotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	if nil != globalData.listener {
		_ = globalData.listener.Close()
		globalData.listener = nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for _, s := range globalData.servers {
		_ = s.Shutdown(ctx)
	}
	globalData.servers = nil

	// finally...
	globalData.initialised = false

	globalData.log.Info("finished")
	globalData.log.Flush()

	return nil
}

// start the HTTP server if any listen addresses are configured
func initialiseHTTP(configuration *HTTPConfiguration, n state.Node, withJournal bool, version string) error {
	name := "http_rpc"
	log := globalData.log

	if nil == configuration || 0 == len(configuration.Listen) {
		log.Infof("disable: %s", name)
		return nil
	}

	if configuration.MaximumConnections < 1 {
		log.Errorf("invalid %s maximum connection limit: %d", name, configuration.MaximumConnections)
		return fault.ErrMissingParameters
	}

	// create access control from CIDR strings
	local := make(map[string][]*net.IPNet)
	for path, addresses := range configuration.Allow {
		set := make([]*net.IPNet, len(addresses))
		local[path] = set
		for i, ip := range addresses {
			_, cidr, err := net.ParseCIDR(strings.Trim(ip, " "))
			if nil != err {
				return err
			}
			set[i] = cidr
		}
	}

	handler := &httpHandler{
		log:                log,
		server:             server.Create(log, n, withJournal, version, &connectionCountRPC),
		node:               n,
		version:            version,
		start:              time.Now(),
		allow:              local,
		count:              &connectionCountRPC,
		maximumConnections: configuration.MaximumConnections,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/palletd/rpc", handler.rpc)
	mux.HandleFunc("/palletd/details", handler.details)
	mux.HandleFunc("/", handler.root)

	for _, listen := range configuration.Listen {
		log.Infof("starting server: %s on: %q", name, listen)
		if '*' == listen[0] {
			// change "*:PORT" to "[::]:PORT"
			// on the assumption that this will listen on tcp4 and tcp6
			listen = "[::]" + ":" + strings.Split(listen, ":")[1]
		}

		l, err := net.Listen("tcp", listen)
		if nil != err {
			log.Errorf("%s listen error: %s", name, err)
			return err
		}

		s := &http.Server{
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
			IdleTimeout:       3 * time.Minute,
		}
		globalData.servers = append(globalData.servers, s)

		go func() {
			err := s.Serve(l)
			if http.ErrServerClosed != err {
				log.Errorf("%s terminated: %s", name, err)
			}
		}()
	}

	return nil
}
