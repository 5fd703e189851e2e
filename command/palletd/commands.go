// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/palletd/blockrecord"
	"github.com/bitmark-inc/palletd/journal"
	"github.com/bitmark-inc/palletd/node"
	"github.com/bitmark-inc/palletd/runtime"
)

// setup command handler
//
// commands that need neither the configuration file nor any state
func processSetupCommand(program string, arguments []string) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
	}

	switch command {
	case "start", "run":
		return false // continue processing

	case "execute", "x":
		return false // defer processing until logging is started

	case "block", "b":
		return false // defer processing until database is loaded

	case "config-test", "cfg":
		return false

	case "version", "v":
		fmt.Printf("%s\n", version)
		return true

	default:
		switch command {
		case "help", "h", "?":
		case "", " ":
			fmt.Printf("error: missing command\n")
		default:
			fmt.Printf("error: no such command: %q\n", command)
		}
		fmt.Printf("usage: %s [--help] [--verbose] [--quiet] --config-file=FILE [[command|help] arguments...]\n", program)

		fmt.Printf("supported commands:\n\n")
		fmt.Printf("  help                       (h)      - display this message\n\n")
		fmt.Printf("  version                    (v)      - display version sting\n\n")

		fmt.Printf("  start                      (run)    - just run the program, same as no arguments\n")
		fmt.Printf("                                        for convienience when passing script arguments\n")
		fmt.Printf("\n")

		fmt.Printf("  config-test                (cfg)    - just check the configuration file\n")
		fmt.Printf("\n")

		fmt.Printf("  execute FILE...            (x)      - run JSON block files from genesis and\n")
		fmt.Printf("                                        print the resulting state to stdout\n")
		fmt.Printf("\n")

		fmt.Printf("  block S [E [FILE]]         (b)      - dump journal block(s) as JSON structures to stdout/file\n")
		fmt.Printf("\n")

		exitwithstatus.Exit(1)
	}

	// indicate processing complete and preform normal exit from main
	return true
}

// configuration file enquiry commands
// have configuration file read and decoded, but nothing else
func processConfigCommand(arguments []string, options *Configuration) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
	}

	switch command {
	case "config-test", "cfg":
		printJSON(os.Stdout, options)

	default: // unknown commands fall through to the next handler
		return false
	}

	// indicate processing complete and perform normal exit from main
	return true
}

// StateDump - runtime state after executing block files
type StateDump struct {
	Receipts []node.Receipt `json:"receipts"`
	Info     node.Info      `json:"info"`
	Accounts []AccountDump  `json:"accounts"`
}

// AccountDump - per-account state
type AccountDump struct {
	Account runtime.AccountId `json:"account"`
	Balance runtime.Balance   `json:"balance"`
	Nonce   runtime.Nonce     `json:"nonce"`
}

// offline execution
// logging is available but no journal, rpc or ingest is started
func processExecuteCommand(log *logger.L, arguments []string, options *Configuration) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	switch command {
	case "execute", "x":
		if len(arguments) < 1 {
			exitwithstatus.Message("missing block file argument")
		}

		dump, err := executeFiles(options.genesis(), arguments)
		if nil != err {
			log.Errorf("execute error: %s", err)
			exitwithstatus.Message("execute error: %s", err)
		}
		printJSON(os.Stdout, dump)

	default:
		return false
	}

	return true
}

// run each file as one block in the order given
func executeFiles(genesis node.Genesis, fileNames []string) (*StateDump, error) {

	n := node.New(genesis, nil)

	dump := &StateDump{
		Receipts: make([]node.Receipt, 0, len(fileNames)),
	}
	for _, fileName := range fileNames {
		block, err := blockrecord.ReadFile(fileName)
		if nil != err {
			return nil, fmt.Errorf("file: %q  error: %w", fileName, err)
		}
		receipt, err := n.ExecuteBlock(block)
		if nil != err {
			return nil, fmt.Errorf("file: %q  error: %w", fileName, err)
		}
		dump.Receipts = append(dump.Receipts, receipt)
	}

	info, err := n.Info()
	if nil != err {
		return nil, err
	}
	dump.Info = info

	for _, account := range n.Accounts() {
		dump.Accounts = append(dump.Accounts, AccountDump{
			Account: account,
			Balance: n.Balance(account),
			Nonce:   n.Nonce(account),
		})
	}
	return dump, nil
}

// BlockDump - a journal entry
type BlockDump struct {
	Number  runtime.BlockNumber   `json:"number"`
	Block   blockrecord.BlockJSON `json:"block"`
	Digests journal.BlockDigests  `json:"digests"`
	Reports []journal.Report      `json:"reports"`
}

// data command handler
// the journal is open so these commands can read it
func processDataCommand(log *logger.L, arguments []string, options *Configuration) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	switch command {

	case "start", "run":
		return false // continue processing

	case "block", "b":
		if len(arguments) < 1 {
			exitwithstatus.Message("missing block number argument")
		}

		n, err := strconv.ParseUint(arguments[0], 10, 64)
		if nil != err {
			exitwithstatus.Message("error in block number: %s", err)
		}
		if n < 1 {
			exitwithstatus.Message("error: invalid block number: %d must be greater than 0", n)
		}

		output := "-"

		// optional end range
		nEnd := n
		if len(arguments) > 1 {
			nEnd, err = strconv.ParseUint(arguments[1], 10, 64)
			if nil != err {
				exitwithstatus.Message("error in ending block number: %s", err)
			}
			if nEnd < n {
				exitwithstatus.Message("error: invalid ending block number: %d must not be less than %d", nEnd, n)
			}
		}

		if len(arguments) > 2 {
			output = strings.TrimSpace(arguments[2])
		}
		fd := os.Stdout

		if output != "" && output != "-" {
			fd, err = os.Create(output)
			if nil != err {
				exitwithstatus.Message("error: creating: %q error: %s", output, err)
			}
		}

		blocks := make([]*BlockDump, 0, nEnd-n+1)
		for ; n <= nEnd; n += 1 {
			b, err := dumpBlock(n)
			if nil != err {
				log.Errorf("dump block: %d  error: %s", n, err)
				exitwithstatus.Message("dump block: %d  error: %s", n, err)
			}
			blocks = append(blocks, b)
		}
		printJSON(fd, blocks)
		fd.Close()

	default:
		exitwithstatus.Message("error: no such command: %s", command)

	}

	// indicate processing complete and perform normal exit from main
	return true
}

func dumpBlock(number uint64) (*BlockDump, error) {
	block, err := journal.Block(number)
	if nil != err {
		return nil, err
	}
	b, err := blockrecord.BlockToJSON(block)
	if nil != err {
		return nil, err
	}
	digests, err := journal.Digests(number)
	if nil != err {
		return nil, err
	}
	reports, err := journal.Reports(number)
	if nil != err {
		return nil, err
	}
	return &BlockDump{
		Number:  number,
		Block:   b,
		Digests: digests,
		Reports: reports,
	}, nil
}

func printJSON(w io.Writer, item interface{}) {
	b, err := json.Marshal(item)
	if err != nil {
		exitwithstatus.Message("error: %s", err)
	}
	var out bytes.Buffer
	json.Indent(&out, b, "", "  ")
	out.WriteString("\n")
	out.WriteTo(w)
}
