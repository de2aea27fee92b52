//go:build !windows

// Package stderr redirects file descriptor 2 while the TUI owns the
// terminal. Audio backends (ALSA through the speaker, faad2) write there
// directly, which would corrupt the screen. Captured lines go to the log
// and to Messages for the status bar.
package stderr

import (
	"bufio"
	"os"
	"strings"
	"sync"
	"syscall"

	"go.uber.org/zap"
)

// Messages receives captured lines. Sends never block; lines are dropped
// when nobody reads.
var Messages = make(chan string, 100)

var (
	mu         sync.Mutex
	origStderr = -1
	pipeRead   *os.File
	pipeWrite  *os.File
	done       chan struct{}
)

// Start redirects fd 2 into a pipe drained by a goroutine that logs every
// line with log. It must run before the audio backend is initialized.
// On error the program keeps writing to the real stderr.
func Start(log *zap.Logger) error {
	mu.Lock()
	defer mu.Unlock()
	if pipeRead != nil {
		return nil
	}
	if log == nil {
		log = zap.NewNop()
	}

	r, w, err := os.Pipe()
	if err != nil {
		return err
	}
	orig, err := syscall.Dup(int(os.Stderr.Fd()))
	if err != nil {
		r.Close()
		w.Close()
		return err
	}
	if err := syscall.Dup2(int(w.Fd()), int(os.Stderr.Fd())); err != nil {
		syscall.Close(orig)
		r.Close()
		w.Close()
		return err
	}

	origStderr = orig
	pipeRead = r
	pipeWrite = w
	done = make(chan struct{})

	go drain(r, log.Named("stderr"), done)
	return nil
}

func drain(r *os.File, log *zap.Logger, done chan struct{}) {
	defer close(done)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		log.Warn("captured output", zap.String("line", line))
		select {
		case Messages <- line:
		default:
		}
	}
}

// WriteOriginal writes to the real stderr, bypassing the capture.
func WriteOriginal(msg string) {
	mu.Lock()
	fd := origStderr
	mu.Unlock()
	if fd < 0 {
		_, _ = os.Stderr.WriteString(msg)
		return
	}
	_, _ = syscall.Write(fd, []byte(msg))
}

// Stop restores fd 2 and waits for pending lines to be logged.
func Stop() {
	mu.Lock()
	defer mu.Unlock()
	if pipeRead == nil {
		return
	}

	_ = syscall.Dup2(origStderr, int(os.Stderr.Fd()))
	_ = syscall.Close(origStderr)
	origStderr = -1

	pipeWrite.Close()
	<-done
	pipeRead.Close()
	pipeRead = nil
	pipeWrite = nil
}
