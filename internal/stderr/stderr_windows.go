//go:build windows

// Package stderr is a no-op on Windows, whose audio stack does not write
// to the console.
package stderr

import (
	"os"

	"go.uber.org/zap"
)

// Messages never receives anything on Windows.
var Messages = make(chan string)

func Start(*zap.Logger) error { return nil }

func WriteOriginal(msg string) {
	_, _ = os.Stderr.WriteString(msg)
}

func Stop() {}
