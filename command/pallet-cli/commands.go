// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"strings"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/palletd/blockrecord"
	"github.com/bitmark-inc/palletd/command/pallet-cli/rpccalls"
)

func connect(m *metadata) (*rpccalls.Client, error) {
	if m.verbose {
		fmt.Fprintf(m.e, "connect: %s\n", m.connect)
	}
	return rpccalls.NewClient(m.connect, m.verbose, m.e)
}

func runInfo(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.GetInfo()
	if nil != err {
		return err
	}

	return printJson(m.w, response)
}

func runBalance(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	account := strings.TrimSpace(c.String("account"))
	if "" == account {
		return ErrMissingAccount
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.GetBalance(account)
	if nil != err {
		return err
	}

	return printJson(m.w, response)
}

func runNonce(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	account := strings.TrimSpace(c.String("account"))
	if "" == account {
		return ErrMissingAccount
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.GetNonce(account)
	if nil != err {
		return err
	}

	return printJson(m.w, response)
}

func runClaim(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	content := c.String("content")
	if "" == content {
		return ErrMissingContent
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.GetClaim(content)
	if nil != err {
		return err
	}

	return printJson(m.w, response)
}

func runSubmit(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	fileName := strings.TrimSpace(c.Args().First())
	if "" == fileName {
		return ErrMissingBlockFile
	}

	// decode locally so that a bad file never reaches the node
	block, err := blockrecord.ReadFile(fileName)
	if nil != err {
		return err
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.Submit(block)
	if nil != err {
		return err
	}

	return printJson(m.w, response)
}

func runBlock(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	number := c.Uint64("number")
	if 0 == number {
		return ErrMissingBlockNumber
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.GetBlock(number)
	if nil != err {
		return err
	}

	return printJson(m.w, response)
}

func runVersion(c *cli.Context) error {
	fmt.Fprintf(c.App.Writer, "%s\n", version)
	return nil
}
