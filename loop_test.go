package floating

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoop_FlushOrder(t *testing.T) {
	l := NewLoop()
	var order []string
	l.RequestFrame(func() { order = append(order, "frame") })
	l.SetTimeout(func() {
		order = append(order, "timer")
		l.QueueMicrotask(func() { order = append(order, "timer microtask") })
	})
	l.QueueMicrotask(func() {
		order = append(order, "microtask")
		l.QueueMicrotask(func() { order = append(order, "nested microtask") })
	})
	l.Post(func() { order = append(order, "posted") })

	l.Flush()

	assert.Equal(t, []string{
		"microtask",
		"nested microtask",
		"posted",
		"timer",
		"timer microtask",
		"frame",
	}, order)
	assert.Equal(t, 0, l.Pending())
}

func TestLoop_Cancel(t *testing.T) {
	type tc struct {
		schedule func(l *Loop, ran *[]string)
		want     []string
	}

	tests := map[string]tc{
		"cleared timer": {
			schedule: func(l *Loop, ran *[]string) {
				id := l.SetTimeout(func() { *ran = append(*ran, "a") })
				l.SetTimeout(func() { *ran = append(*ran, "b") })
				l.ClearTimeout(id)
			},
			want: []string{"b"},
		},
		"unknown ids are ignored": {
			schedule: func(l *Loop, ran *[]string) {
				l.SetTimeout(func() { *ran = append(*ran, "a") })
				l.ClearTimeout(42)
				l.CancelFrame(42)
			},
			want: []string{"a"},
		},
		"frame cancelled by an earlier frame of the same batch": {
			schedule: func(l *Loop, ran *[]string) {
				var second int
				l.RequestFrame(func() {
					*ran = append(*ran, "first")
					l.CancelFrame(second)
				})
				second = l.RequestFrame(func() { *ran = append(*ran, "second") })
			},
			want: []string{"first"},
		},
		"timers queued by timers run on a later turn": {
			schedule: func(l *Loop, ran *[]string) {
				l.SetTimeout(func() {
					*ran = append(*ran, "outer")
					l.SetTimeout(func() { *ran = append(*ran, "inner") })
				})
				l.SetTimeout(func() { *ran = append(*ran, "sibling") })
			},
			want: []string{"outer", "sibling", "inner"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			l := NewLoop()
			var ran []string
			tt.schedule(l, &ran)
			l.Flush()
			assert.Equal(t, tt.want, ran)
		})
	}
}

func TestLoop_FlushGivesUpOnRunawayTasks(t *testing.T) {
	l := NewLoop()
	var runs int
	var again func()
	again = func() {
		runs++
		l.SetTimeout(again)
	}
	l.SetTimeout(again)

	l.Flush()
	assert.Equal(t, maxFlushRounds, runs)
	assert.Equal(t, 1, l.Pending())
}

func TestLoop_PostFromGoroutines(t *testing.T) {
	l := NewLoop()
	var wg sync.WaitGroup
	var mu sync.Mutex
	count := 0
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Post(func() {
				mu.Lock()
				count++
				mu.Unlock()
			})
		}()
	}
	wg.Wait()
	l.Flush()
	assert.Equal(t, 8, count)
}
