// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/rpc"
	"net/rpc/jsonrpc"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/palletd/counter"
	"github.com/bitmark-inc/palletd/rpc/state"
)

// InternalConnection - type to allow rpc system to interface to http request
type InternalConnection struct {
	in  io.Reader
	out io.Writer
}

func (c *InternalConnection) Read(p []byte) (n int, err error) {
	return c.in.Read(p)
}
func (c *InternalConnection) Write(d []byte) (n int, err error) {
	return c.out.Write(d)
}
func (c *InternalConnection) Close() error {
	return nil
}

// the argument passed to the handlers
type httpHandler struct {
	log                *logger.L
	server             *rpc.Server
	node               state.Node
	start              time.Time
	version            string
	allow              map[string][]*net.IPNet
	count              *counter.Counter
	maximumConnections uint64
}

// this matches anything not matched and returns error
func (s *httpHandler) root(w http.ResponseWriter, r *http.Request) {
	sendNotFound(w)
}

// performs a call to any normal RPC
func (s *httpHandler) rpc(w http.ResponseWriter, r *http.Request) {
	if http.MethodPost != r.Method {
		sendMethodNotAllowed(w)
		return
	}

	if s.count.Increment() > s.maximumConnections {
		s.count.Decrement()
		sendServiceUnavailable(w)
		return
	}
	defer s.count.Decrement()

	serverCodec := jsonrpc.NewServerCodec(&InternalConnection{in: r.Body, out: w})
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)
	err := s.server.ServeRequest(serverCodec)
	if nil != err {
		s.log.Debugf("http rpc error: %s", err)
	}
}

// GET the node state (restricted to the allow list)
func (s *httpHandler) details(w http.ResponseWriter, r *http.Request) {
	if http.MethodGet != r.Method {
		sendMethodNotAllowed(w)
		return
	}

	if !s.allowed("details", r.RemoteAddr) {
		s.log.Warnf("Deny access: %q", r.RemoteAddr)
		sendForbidden(w)
		return
	}

	info, err := s.node.Info()
	if nil != err {
		sendInternalServerError(w)
		return
	}

	reply := state.InfoReply{
		Info:    info,
		RPCs:    s.count.Uint64(),
		Version: s.version,
	}
	sendReply(w, reply)
}

// check the remote address against the allow list for a path
func (s *httpHandler) allowed(path string, remoteAddr string) bool {
	host, _, err := net.SplitHostPort(remoteAddr)
	if nil != err {
		return false
	}
	ip := net.ParseIP(host)
	if nil == ip {
		return false
	}
	for _, cidr := range s.allow[path] {
		if cidr.Contains(ip) {
			return true
		}
	}
	return false
}

func sendReply(w http.ResponseWriter, data interface{}) {
	text, err := json.Marshal(data)
	if nil != err {
		sendInternalServerError(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(text)
}

// error responses
func sendNotFound(w http.ResponseWriter) {
	sendError(w, "not found", http.StatusNotFound)
}
func sendMethodNotAllowed(w http.ResponseWriter) {
	sendError(w, "method not allowed", http.StatusMethodNotAllowed)
}
func sendForbidden(w http.ResponseWriter) {
	sendError(w, "forbidden", http.StatusForbidden)
}
func sendServiceUnavailable(w http.ResponseWriter) {
	sendError(w, "service unavailable", http.StatusServiceUnavailable)
}
func sendInternalServerError(w http.ResponseWriter) {
	sendError(w, "internal server error", http.StatusInternalServerError)
}

// to compose JSON error messages
type eType struct {
	Code  int    `json:"code"`
	Error string `json:"error"`
}

// output an error with a JSON body
func sendError(w http.ResponseWriter, message string, code int) {
	text, err := json.Marshal(eType{
		Code:  code,
		Error: message,
	})
	if nil != err {
		// manually composed error just incase JSON fails
		http.Error(w, `{"code":500,"error":"Internal Server Error"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(code)
	_, _ = w.Write(text)
}
