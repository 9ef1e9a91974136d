//go:build unix

package background

import "syscall"

// detachAttr puts the watcher in its own session so closing the sender's
// terminal cannot signal it.
func detachAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setsid: true}
}
