//go:build windows
// +build windows

// cmd/devbootstrap/args.go

package main

import (
	"os"
	"unsafe"

	"golang.org/x/sys/windows"
)

// patchWindowsArgs re-parses the raw Windows command line so that os.Args
// matches what the user typed, including paths with spaces (relevant for
// --envfile). Must run before pflag.Parse.
func patchWindowsArgs() {
	cmdLinePtr := windows.GetCommandLine()
	if cmdLinePtr == nil {
		return
	}
	var argc int32
	argvPtr, err := windows.CommandLineToArgv(cmdLinePtr, &argc)
	if err != nil || argvPtr == nil || argc < 1 {
		return
	}
	defer windows.LocalFree(windows.Handle(uintptr(unsafe.Pointer(argvPtr))))

	argvSlice := unsafe.Slice((**uint16)(unsafe.Pointer(argvPtr)), argc)

	newArgs := make([]string, 0, argc)
	for _, p := range argvSlice {
		if p != nil {
			newArgs = append(newArgs, windows.UTF16PtrToString(p))
		}
	}
	os.Args = newArgs
}
