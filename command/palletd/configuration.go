// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/palletd/configuration"
	"github.com/bitmark-inc/palletd/node"
	"github.com/bitmark-inc/palletd/rpc"
	"github.com/bitmark-inc/palletd/rpc/listeners"
	"github.com/bitmark-inc/palletd/util"
)

// basic defaults (directories and files are relative to the "DataDirectory" from Configuration file)
const (
	defaultDataDirectory = "" // this will error; use "." for the same directory as the config file

	defaultLevelDBDirectory = "data"
	defaultDatabase         = "palletd.leveldb"
	defaultBlocksDirectory  = "blocks"

	defaultLogDirectory = "log"
	defaultLogFile      = "palletd.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size

	defaultRPCClients = 10
)

// LoglevelMap - to hold log levels
type LoglevelMap map[string]string

// path expanded or calculated defaults
var (
	defaultLogLevels = LoglevelMap{
		logger.DefaultTag: "critical",
	}
)

// DatabaseType - location of the journal
//
// a blank name disables the journal
type DatabaseType struct {
	Directory string `gluamapper:"directory" json:"directory"`
	Name      string `gluamapper:"name" json:"name"`
}

// GenesisType - initial runtime state
type GenesisType struct {
	Balances map[string]uint64 `gluamapper:"balances" json:"balances"`
}

// Configuration - the decoded configuration file
type Configuration struct {
	DataDirectory   string       `gluamapper:"data_directory" json:"data_directory"`
	PidFile         string       `gluamapper:"pidfile" json:"pidfile"`
	Database        DatabaseType `gluamapper:"database" json:"database"`
	Genesis         GenesisType  `gluamapper:"genesis" json:"genesis"`
	BlocksDirectory string       `gluamapper:"blocks_directory" json:"blocks_directory"`

	ClientRPC listeners.RPCConfiguration `gluamapper:"client_rpc" json:"client_rpc"`
	HttpRPC   rpc.HTTPConfiguration      `gluamapper:"http_rpc" json:"http_rpc"`
	Logging   logger.Configuration       `gluamapper:"logging" json:"logging"`
}

// will read decode and verify the configuration
func getConfiguration(configurationFileName string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	options := &Configuration{

		DataDirectory:   defaultDataDirectory,
		PidFile:         "", // no PidFile by default
		BlocksDirectory: defaultBlocksDirectory,

		Database: DatabaseType{
			Directory: defaultLevelDBDirectory,
			Name:      defaultDatabase,
		},

		Genesis: GenesisType{
			Balances: map[string]uint64{},
		},

		ClientRPC: listeners.RPCConfiguration{
			MaximumConnections: defaultRPCClients,
		},

		HttpRPC: rpc.HTTPConfiguration{
			MaximumConnections: defaultRPCClients,
		},

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels:    defaultLogLevels,
		},
	}

	if err := configuration.ParseConfigurationFile(configurationFileName, options); err != nil {
		return nil, err
	}

	// ensure absolute data directory
	if "" == options.DataDirectory || "~" == options.DataDirectory {
		return nil, fmt.Errorf("Path: %q is not a valid directory", options.DataDirectory)
	} else if "." == options.DataDirectory {
		options.DataDirectory = dataDirectory // same directory as the configuration file
	} else {
		options.DataDirectory = filepath.Clean(options.DataDirectory)
	}

	// this directory must exist - i.e. must be created prior to running
	if fileInfo, err := os.Stat(options.DataDirectory); nil != err {
		return nil, err
	} else if !fileInfo.IsDir() {
		return nil, fmt.Errorf("Path: %q is not a directory", options.DataDirectory)
	}

	// optional absolute paths i.e. blank or an absolute path
	optionalAbsolute := []*string{
		&options.PidFile,
		&options.BlocksDirectory,
	}
	for _, f := range optionalAbsolute {
		if "" != *f {
			*f = util.EnsureAbsolute(options.DataDirectory, *f)
		}
	}

	// fail if any of these are not simple file names i.e. must
	// not contain path seperator, then add the correct directory
	// prefix, file item is first and corresponding directory is
	// second (or nil if no prefix can be added)
	mustNotBePaths := [][2]*string{
		{&options.Database.Name, &options.Database.Directory},
		{&options.Logging.File, nil},
	}
	for _, f := range mustNotBePaths {
		if "" == *f[0] {
			continue
		}
		switch filepath.Dir(*f[0]) {
		case "", ".":
			if nil != f[1] {
				*f[1] = util.EnsureAbsolute(options.DataDirectory, *f[1])
				*f[0] = util.EnsureAbsolute(*f[1], *f[0])
			}
		default:
			return nil, fmt.Errorf("Files: %q is not plain name", *f[0])
		}
	}

	// make absolute and create directories if they do not already exist
	directories := []*string{
		&options.Database.Directory,
		&options.Logging.Directory,
	}
	if "" != options.BlocksDirectory {
		directories = append(directories, &options.BlocksDirectory)
	}
	for _, d := range directories {
		*d, err = util.EnsureDirectory(options.DataDirectory, *d)
		if nil != err {
			return nil, err
		}
	}

	// done
	return options, nil
}

// the genesis balances in runtime form
func (c *Configuration) genesis() node.Genesis {
	g := make(node.Genesis, len(c.Genesis.Balances))
	for account, balance := range c.Genesis.Balances {
		g[account] = balance
	}
	return g
}
