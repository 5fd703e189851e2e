// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli"
)

const (
	defaultConnect = "127.0.0.1:2150"
)

type metadata struct {
	connect string
	verbose bool
	e       io.Writer
	w       io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {
	app := newApp(os.Stdout, os.Stderr)

	err := app.Run(os.Args)
	if nil != err {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}

func newApp(w io.Writer, e io.Writer) *cli.App {

	app := cli.NewApp()
	app.Name = "pallet-cli"
	app.Usage = "query and submit blocks to a palletd node"
	app.Version = version
	app.HideVersion = true

	app.Writer = w
	app.ErrWriter = e

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:   "connect, c",
			Value:  defaultConnect,
			Usage:  " palletd client RPC `HOST:PORT`",
			EnvVar: "PALLETD_CONNECT",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "info",
			Usage:     "display node status",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{},
			Action:    runInfo,
		},
		{
			Name:      "balance",
			Usage:     "display the balance of an account",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "account, a",
					Value: "",
					Usage: "*account to query `ACCOUNT`",
				},
			},
			Action: runBalance,
		},
		{
			Name:      "nonce",
			Usage:     "display the number of extrinsics an account has submitted",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "account, a",
					Value: "",
					Usage: "*account to query `ACCOUNT`",
				},
			},
			Action: runNonce,
		},
		{
			Name:      "claim",
			Usage:     "display the owner of some content",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "content, C",
					Value: "",
					Usage: "*claimed content `STRING`",
				},
			},
			Action: runClaim,
		},
		{
			Name:      "submit",
			Usage:     "execute a JSON block file on the node",
			ArgsUsage: "FILE",
			Flags:     []cli.Flag{},
			Action:    runSubmit,
		},
		{
			Name:      "block",
			Usage:     "display a block from the node journal",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "number, n",
					Value: 0,
					Usage: "*block `NUMBER`",
				},
			},
			Action: runBlock,
		},
		{
			Name:   "version",
			Usage:  "display pallet-cli version",
			Action: runVersion,
		},
	}

	app.Before = func(c *cli.Context) error {
		connect := c.GlobalString("connect")
		if "" == connect {
			return ErrMissingConnect
		}
		c.App.Metadata["config"] = &metadata{
			connect: connect,
			verbose: c.GlobalBool("verbose"),
			e:       c.App.ErrWriter,
			w:       c.App.Writer,
		}
		return nil
	}

	return app
}
