// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ingest - execute block files dropped into a directory
//
// a block file "<anything>.json" is renamed with a ".done" suffix after
// it executes, or ".rejected" if it can never execute; a block ahead of
// the runtime is held until the blocks before it arrive
package ingest

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/patrickmn/go-cache"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/palletd/blockrecord"
	"github.com/bitmark-inc/palletd/fault"
	"github.com/bitmark-inc/palletd/merkle"
	"github.com/bitmark-inc/palletd/node"
	"github.com/bitmark-inc/palletd/runtime"
)

// file name suffixes
const (
	BlockSuffix    = ".json"
	DoneSuffix     = ".done"
	RejectedSuffix = ".rejected"
)

// how long a file content digest suppresses repeated events
const (
	seenExpiry  = 10 * time.Minute
	seenCleanup = 20 * time.Minute
)

// interval between checks of held blocks
const retryInterval = 5 * time.Second

// Executor - the part of the node used for ingestion
type Executor interface {
	ExecuteBlock(runtime.Block) (node.Receipt, error)
	BlockNumber() runtime.BlockNumber
}

// Ingester - watches one directory
type Ingester struct {
	sync.Mutex
	log       *logger.L
	directory string
	executor  Executor
	watcher   *fsnotify.Watcher
	seen      *cache.Cache

	// blocks ahead of the runtime: block number → file name
	pending map[runtime.BlockNumber]string
}

// New - prepare to watch a directory that must already exist
func New(directory string, executor Executor) (*Ingester, error) {
	log := logger.New("ingest")

	directory, err := filepath.Abs(filepath.Clean(directory))
	if nil != err {
		return nil, err
	}

	info, err := os.Stat(directory)
	if nil != err {
		log.Errorf("blocks directory: %q  error: %s", directory, err)
		return nil, err
	}
	if !info.IsDir() {
		log.Errorf("blocks directory: %q is not a directory", directory)
		return nil, fault.ErrNotADirectory
	}

	watcher, err := fsnotify.NewWatcher()
	if nil != err {
		log.Errorf("new watcher with error: %s", err)
		return nil, err
	}

	err = watcher.Add(directory)
	if nil != err {
		_ = watcher.Close()
		log.Errorf("watcher add error: %s", err)
		return nil, err
	}

	return &Ingester{
		log:       log,
		directory: directory,
		executor:  executor,
		watcher:   watcher,
		seen:      cache.New(seenExpiry, seenCleanup),
		pending:   make(map[runtime.BlockNumber]string),
	}, nil
}

// Run - background process: scan the directory then follow events
func (ig *Ingester) Run(args interface{}, shutdown <-chan struct{}) {
	ig.log.Infof("watching: %q", ig.directory)

	ig.Scan()

	retry := time.NewTicker(retryInterval)
	defer retry.Stop()

loop:
	for {
		select {
		case <-shutdown:
			break loop

		case <-retry.C:
			ig.Retry()

		case event, ok := <-ig.watcher.Events:
			if !ok {
				break loop
			}
			if !isBlockFile(event.Name) {
				continue loop
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				ig.log.Debugf("file event: %v", event)
				ig.ProcessFile(event.Name)
			}

		case err, ok := <-ig.watcher.Errors:
			if !ok {
				break loop
			}
			ig.log.Errorf("watcher error: %s", err)
		}
	}

	_ = ig.watcher.Close()
	ig.log.Info("stopped")
}

// Scan - process all block files already in the directory, in name order
func (ig *Ingester) Scan() {
	entries, err := os.ReadDir(ig.directory)
	if nil != err {
		ig.log.Errorf("read directory: %q  error: %s", ig.directory, err)
		return
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.Type().IsRegular() && isBlockFile(entry.Name()) {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		ig.ProcessFile(filepath.Join(ig.directory, name))
	}
}

// ProcessFile - execute one block file, or hold it until it can execute
func (ig *Ingester) ProcessFile(fileName string) {
	ig.Lock()
	defer ig.Unlock()

	ig.process(fileName)
	ig.release()
}

// Retry - run any held block that the runtime has caught up with
//
// blocks may reach the runtime from elsewhere (RPC submit) so this
// also runs periodically
func (ig *Ingester) Retry() {
	ig.Lock()
	defer ig.Unlock()

	ig.release()
}

// called with the lock held
func (ig *Ingester) process(fileName string) {
	data, err := os.ReadFile(fileName)
	if nil != err {
		ig.log.Debugf("read: %q  error: %s", fileName, err)
		return
	}

	key := merkle.NewDigest(data).String()
	if _, found := ig.seen.Get(key); found {
		ig.log.Debugf("duplicate: %q", fileName)
		return
	}

	block, err := blockrecord.Decode(bytes.NewReader(data))
	if isIncomplete(err) {
		ig.log.Debugf("incomplete: %q  error: %s", fileName, err)
		return
	}
	ig.seen.SetDefault(key, fileName)
	if nil != err {
		ig.log.Warnf("reject: %q  decode error: %s", fileName, err)
		ig.rename(fileName, RejectedSuffix)
		return
	}

	receipt, err := ig.executor.ExecuteBlock(block)
	if errors.Is(err, fault.ErrBlockNumberMismatch) {
		expected := ig.executor.BlockNumber() + 1
		if block.Header.Number > expected {
			ig.log.Infof("hold: %q  block: %d  expected: %d", fileName, block.Header.Number, expected)
			ig.pending[block.Header.Number] = fileName
			ig.seen.Delete(key)
			return
		}
	}
	if nil != err {
		ig.log.Warnf("reject: %q  error: %s", fileName, err)
		ig.rename(fileName, RejectedSuffix)
		return
	}

	ig.log.Infof("executed: %q  block: %d  failures: %d", fileName, receipt.Number, len(receipt.Failures))
	ig.rename(fileName, DoneSuffix)
}

// called with the lock held
//
// each pass removes one entry so the loop ends
func (ig *Ingester) release() {
	for {
		current := ig.executor.BlockNumber()

		for number, fileName := range ig.pending {
			if number <= current {
				delete(ig.pending, number)
				ig.log.Warnf("reject: %q  held block: %d  already at: %d", fileName, number, current)
				ig.rename(fileName, RejectedSuffix)
			}
		}

		next := current + 1
		fileName, ok := ig.pending[next]
		if !ok {
			return
		}
		delete(ig.pending, next)
		ig.log.Infof("release: %q  block: %d", fileName, next)
		ig.process(fileName)
	}
}

// a file still being written will not parse, wait for the next event
func isIncomplete(err error) bool {
	if nil == err {
		return false
	}
	var syntaxError *json.SyntaxError
	return errors.As(err, &syntaxError) || errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF)
}

// Pending - number of blocks held waiting for earlier blocks
func (ig *Ingester) Pending() int {
	ig.Lock()
	defer ig.Unlock()
	return len(ig.pending)
}

func (ig *Ingester) rename(fileName string, suffix string) {
	err := os.Rename(fileName, fileName+suffix)
	if nil != err {
		ig.log.Errorf("rename: %q  error: %s", fileName, err)
	}
}

func isBlockFile(name string) bool {
	return strings.HasSuffix(name, BlockSuffix) && !strings.HasPrefix(filepath.Base(name), ".")
}
