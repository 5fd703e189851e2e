// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"
)

// hold a logger channel for the last attempt to log something
var panicLog struct {
	sync.Mutex
	log *logger.L
}

// Initialise - setup a log channel for last attempt to log something
//
// must be called after logger.Initialise
func Initialise() error {
	panicLog.Lock()
	defer panicLog.Unlock()

	if nil != panicLog.log {
		return ErrAlreadyInitialised
	}
	panicLog.log = logger.New("PANIC")
	if nil == panicLog.log {
		return ErrInvalidLoggerChannel
	}
	return nil
}

// Finalise - flush any data and detach from the logger
func Finalise() {
	panicLog.Lock()
	defer panicLog.Unlock()

	if nil != panicLog.log {
		panicLog.log.Flush()
		panicLog.log = nil
	}
}

// Criticalf - log a formatted string with the caller's position
func Criticalf(format string, arguments ...interface{}) {
	if _, file, line, ok := runtime.Caller(1); ok {
		a := make([]interface{}, 2, 2+len(arguments))
		a[0] = file
		a[1] = line
		a = append(a, arguments...)
		internalCriticalf("(%q:%d) "+format, a...)
	} else {
		internalCriticalf(format, arguments...)
	}
}

// Panicf - log a formatted message then panic
//
// used only for invariant violations that the runtime cannot
// represent as a value, e.g. a counter reaching its maximum
func Panicf(format string, arguments ...interface{}) {
	s := fmt.Sprintf(format, arguments...)
	if _, file, line, ok := runtime.Caller(1); ok {
		internalCriticalf("(%q:%d) %s", file, line, s)
	} else {
		internalCriticalf("%s", s)
	}
	time.Sleep(100 * time.Millisecond) // to allow logging output
	panic(s)
}

// PanicIfError - conditional panic
func PanicIfError(message string, err error) {
	if nil == err {
		return
	}
	s := fmt.Sprintf("%s failed with error: %v", message, err)
	internalCriticalf("%s", s)
	time.Sleep(100 * time.Millisecond) // to allow logging output
	panic(s)
}

// handle an uninitialised logger channel
func internalCriticalf(format string, arguments ...interface{}) {
	panicLog.Lock()
	log := panicLog.log
	panicLog.Unlock()

	if nil == log {
		fmt.Printf("*** "+format+"\n", arguments...)
		return
	}
	log.Criticalf(format, arguments...)
	log.Flush() // make sure log file is saved
}
