// File: api/errno_stub.go
//go:build !unix && !windows

// Author: momentics <momentics@gmail.com>
//
// Fallback for platforms without errno-level classification.

package api

func errnoWouldBlock(error) bool   { return false }
func errnoClosed(error) bool       { return false }
func errnoNotConnected(error) bool { return false }
