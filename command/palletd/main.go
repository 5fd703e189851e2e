// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/palletd/background"
	"github.com/bitmark-inc/palletd/ingest"
	"github.com/bitmark-inc/palletd/journal"
	"github.com/bitmark-inc/palletd/node"
	"github.com/bitmark-inc/palletd/rpc"
	"github.com/bitmark-inc/palletd/storage"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

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

	// these commands do not require the configuration
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

	// start logging
	if err = logger.Initialise(theConfiguration.Logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

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

	// these commands only need logging, runtime state is rebuilt from genesis
	if len(arguments) > 0 && processExecuteCommand(log, arguments, theConfiguration) {
		return
	}

	log.Infof("database: %+v", theConfiguration.Database)
	log.Debugf("%s = %#v", "ClientRPC", theConfiguration.ClientRPC)
	log.Debugf("%s = %#v", "HttpRPC", theConfiguration.HttpRPC)

	// optional journal
	withJournal := "" != theConfiguration.Database.Name
	var recorder node.Recorder
	var theJournal *journal.Journal
	if withJournal {
		log.Info("initialise storage")
		err = storage.Initialise(theConfiguration.Database.Name, storage.ReadWrite)
		if nil != err {
			log.Criticalf("storage initialise error: %s", err)
			exitwithstatus.Message("storage initialise error: %s", err)
		}
		defer storage.Finalise()

		// these commands are allowed to access the journal
		if len(arguments) > 0 && processDataCommand(log, arguments, theConfiguration) {
			return
		}

		// runtime state restarts from genesis so the journal must too
		theJournal = journal.New()
		if last := journal.LastBlockNumber(); 0 != last {
			log.Warnf("journal holds blocks up to: %d  clearing, runtime restarts from genesis", last)
		}
		if _, err := theJournal.Reset(); nil != err {
			log.Criticalf("journal reset error: %s", err)
			exitwithstatus.Message("journal reset error: %s", err)
		}
		recorder = theJournal
	} else if len(arguments) > 0 && "start" != arguments[0] && "run" != arguments[0] {
		exitwithstatus.Message("%s: command: %q requires a database", program, arguments[0])
	}

	theNode := node.New(theConfiguration.genesis(), recorder)

	// start up the rpc background processes
	err = rpc.Initialise(&theConfiguration.ClientRPC, &theConfiguration.HttpRPC, theNode, withJournal, version)
	if nil != err {
		log.Criticalf("rpc initialise error: %s", err)
		exitwithstatus.Message("rpc initialise error: %s", err)
	}
	defer rpc.Finalise()

	// block files dropped into a directory
	if "" != theConfiguration.BlocksDirectory {
		log.Infof("initialise ingest: %q", theConfiguration.BlocksDirectory)
		ingester, err := ingest.New(theConfiguration.BlocksDirectory, theNode)
		if nil != err {
			log.Criticalf("ingest initialise error: %s", err)
			exitwithstatus.Message("ingest initialise error: %s", err)
		}
		processes := background.Start(background.Processes{ingester}, nil)
		defer processes.Stop()
	}

	// if memory logging enabled
	if len(options["memory-stats"]) > 0 {
		go memstats()
		go nodestats(theNode, theJournal)
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
