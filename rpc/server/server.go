// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package server - register all RPC services
package server

import (
	"net/rpc"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/palletd/counter"
	"github.com/bitmark-inc/palletd/rpc/state"
)

// Create - a server with every service registered
func Create(log *logger.L, n state.Node, withJournal bool, version string, rpcCount *counter.Counter) *rpc.Server {
	start := time.Now().UTC()

	server := rpc.NewServer()

	_ = server.RegisterName(state.ServiceName, state.New(log, n, withJournal, start, version, rpcCount))

	return server
}
