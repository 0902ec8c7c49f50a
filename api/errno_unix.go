// File: api/errno_unix.go
//go:build unix

// Author: momentics <momentics@gmail.com>
//
// Errno-level classification for unix-like platforms.

package api

import (
	"errors"

	"golang.org/x/sys/unix"
)

func errnoWouldBlock(err error) bool {
	return errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EWOULDBLOCK)
}

func errnoClosed(err error) bool {
	return errors.Is(err, unix.EPIPE) || errors.Is(err, unix.ECONNABORTED)
}

func errnoNotConnected(err error) bool {
	return errors.Is(err, unix.ENOTCONN)
}
