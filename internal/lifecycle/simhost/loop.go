// Package simhost provides an in-process rendering host for the lifecycle
// sampler: a single-goroutine update loop, clocks, and simulated components
// with configurable render costs.
package simhost

import (
	"sync"
	"time"
)

// Loop is a single-goroutine task queue. Every task posted to it runs on the
// loop goroutine, one at a time, in the order it was posted. It plays the
// part of a UI thread.
//
// Post and After are safe for concurrent use, including from inside a task.
type Loop struct {
	mu     sync.Mutex
	queue  []func()
	wake   chan struct{}
	done   chan struct{}
	closed bool
	wg     sync.WaitGroup
}

// NewLoop creates a loop and starts its goroutine.
func NewLoop() *Loop {
	l := &Loop{
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}

	l.wg.Add(1)
	go l.run()

	return l
}

// Post queues fn to run on the loop. It reports false, dropping fn, once
// the loop has been stopped.
func (l *Loop) Post(fn func()) bool {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return false
	}
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
	return true
}

// Call runs fn on the loop and waits for it to return. It reports whether
// fn ran; it returns false without blocking when the loop is stopped before
// fn gets its turn. It must not be called from a loop task.
func (l *Loop) Call(fn func()) bool {
	done := make(chan struct{})
	if !l.Post(func() {
		defer close(done)
		fn()
	}) {
		return false
	}

	select {
	case <-done:
		return true
	case <-l.done:
		// fn may be running as the last task; wait for the loop to exit
		l.wg.Wait()
		select {
		case <-done:
			return true
		default:
			return false
		}
	}
}

// After queues fn to run on the loop once d has elapsed.
func (l *Loop) After(d time.Duration, fn func()) {
	time.AfterFunc(d, func() {
		l.Post(fn)
	})
}

// Stop drops pending tasks and waits for the running one to finish. It must
// not be called from a loop task.
func (l *Loop) Stop() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.closed = true
	l.queue = nil
	l.mu.Unlock()

	close(l.done)
	l.wg.Wait()
}

func (l *Loop) run() {
	defer l.wg.Done()

	for {
		select {
		case <-l.done:
			return
		case <-l.wake:
		}

		for {
			fn := l.next()
			if fn == nil {
				break
			}
			fn()
		}
	}
}

func (l *Loop) next() func() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed || len(l.queue) == 0 {
		return nil
	}
	fn := l.queue[0]
	l.queue[0] = nil
	l.queue = l.queue[1:]
	return fn
}
