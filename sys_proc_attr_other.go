//go:build !windows

package main

import "syscall"

func hiddenProcAttr() *syscall.SysProcAttr {
	return nil
}
