package core

import (
	"fmt"
	"os"
	"runtime/debug"
	"sync"
)

// Finalizer restores whatever owns the terminal before a crash report is printed
type Finalizer interface {
	Fini()
}

var (
	crashMu   sync.Mutex
	crashFini Finalizer
)

// SetCrashFinalizer registers the active screen; nil clears it
func SetCrashFinalizer(f Finalizer) {
	crashMu.Lock()
	crashFini = f
	crashMu.Unlock()
}

// HandleCrash restores the terminal, prints the stack trace and exits
func HandleCrash(r any) {
	if r == nil {
		return
	}

	crashMu.Lock()
	f := crashFini
	crashFini = nil
	crashMu.Unlock()
	if f != nil {
		f.Fini()
	}

	fmt.Fprintf(os.Stderr, "\r\n\x1b[31mCRASH DETECTED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
	os.Stderr.Sync()

	os.Exit(1)
}

// Go runs fn in a new goroutine with panic recovery
// Use instead of the 'go' keyword so a crash never leaves the terminal in raw mode
func Go(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				HandleCrash(r)
			}
		}()
		fn()
	}()
}
