// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package logger keeps a central, bounded log of tagged messages. Adjacent
// duplicate messages are folded into a single entry with a repeat count.
package logger

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// Entry is a single log message.
type Entry struct {
	Timestamp time.Time
	Tag       string
	Detail    string
	repeated  int
}

func (e *Entry) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %s", e.Tag, e.Detail)
	if e.repeated > 0 {
		fmt.Fprintf(&sb, " (repeat x%d)", e.repeated+1)
	}
	sb.WriteByte('\n')
	return sb.String()
}

type logger struct {
	mu         sync.Mutex
	maxEntries int
	entries    []Entry
	echo       io.Writer
}

// MaxEntries is the number of entries retained by the central log.
const MaxEntries = 256

var central = newLogger(MaxEntries)

func newLogger(maxEntries int) *logger {
	return &logger{maxEntries: maxEntries}
}

func (l *logger) log(tag, detail string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	tag = strings.ReplaceAll(tag, "\n", "")
	detail = strings.ReplaceAll(detail, "\n", " ")

	var e *Entry
	if n := len(l.entries); n > 0 && l.entries[n-1].Tag == tag && l.entries[n-1].Detail == detail {
		e = &l.entries[n-1]
		e.repeated++
		e.Timestamp = time.Now()
	} else {
		l.entries = append(l.entries, Entry{Timestamp: time.Now(), Tag: tag, Detail: detail})
		if len(l.entries) > l.maxEntries {
			l.entries = l.entries[len(l.entries)-l.maxEntries:]
		}
		e = &l.entries[len(l.entries)-1]
	}

	if l.echo != nil {
		io.WriteString(l.echo, e.String())
	}
}

func (l *logger) tail(w io.Writer, n int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	n = max(0, min(n, len(l.entries)))
	for _, e := range l.entries[len(l.entries)-n:] {
		io.WriteString(w, e.String())
	}
}

// Log adds a message to the central log.
func Log(tag, detail string) {
	central.log(tag, detail)
}

// Logf adds a formatted message to the central log.
func Logf(tag, format string, args ...any) {
	central.log(tag, fmt.Sprintf(format, args...))
}

// Write writes every entry of the central log to w.
func Write(w io.Writer) {
	central.tail(w, MaxEntries)
}

// Tail writes the most recent 'n' entries of the central log to w.
func Tail(w io.Writer, n int) {
	central.tail(w, n)
}

// Len returns the number of entries in the central log.
func Len() int {
	central.mu.Lock()
	defer central.mu.Unlock()
	return len(central.entries)
}

// Clear removes all entries from the central log.
func Clear() {
	central.mu.Lock()
	defer central.mu.Unlock()
	central.entries = central.entries[:0]
}

// SetEcho causes every new entry to be written to w as well. A nil writer
// turns echoing off.
func SetEcho(w io.Writer) {
	central.mu.Lock()
	defer central.mu.Unlock()
	central.echo = w
}
