// File: api/errno_windows.go
//go:build windows

// Author: momentics <momentics@gmail.com>
//
// Errno-level classification for Windows (winsock error space).

package api

import (
	"errors"

	"golang.org/x/sys/windows"
)

func errnoWouldBlock(err error) bool {
	return errors.Is(err, windows.WSAEWOULDBLOCK)
}

func errnoClosed(err error) bool {
	return errors.Is(err, windows.WSAECONNABORTED) ||
		errors.Is(err, windows.ERROR_BROKEN_PIPE)
}

func errnoNotConnected(err error) bool {
	return errors.Is(err, windows.WSAENOTCONN)
}
