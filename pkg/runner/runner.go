// Copyright 2025 cons0leweb
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package runner

import (
	"context"
	"sync/atomic"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// 🏃 Task is one unit of batch work. A failing task is counted and logged,
// never fatal to the batch.
type Task func(ctx context.Context) error

// 📊 Progress is a point-in-time snapshot of a running batch
type Progress struct {
	Total     int64
	Processed int64
	Errors    int64
}

// 🏊 Pool executes tasks over a bounded set of workers. Workers defaulting
// to 1 gives strictly sequential, order-preserving execution.
type Pool struct {
	workers   int
	tasks     chan Task
	group     *errgroup.Group
	total     atomic.Int64
	processed atomic.Int64
	failed    atomic.Int64
}

// 🏭 NewPool starts a pool with the given number of workers (minimum 1).
func NewPool(ctx context.Context, workers int) *Pool {
	if workers < 1 {
		workers = 1
	}

	p := &Pool{
		workers: workers,
		tasks:   make(chan Task),
	}

	g, gctx := errgroup.WithContext(ctx)
	p.group = g
	for i := 0; i < workers; i++ {
		g.Go(func() error {
			return p.work(gctx)
		})
	}

	return p
}

func (p *Pool) work(ctx context.Context) error {
	logger := zerolog.Ctx(ctx)

	// Keep draining after cancellation so Submit never blocks forever;
	// remaining tasks are counted as errors without running.
	for task := range p.tasks {
		if ctx.Err() != nil {
			p.failed.Add(1)
			p.processed.Add(1)
			continue
		}

		if err := task(ctx); err != nil {
			logger.Warn().Err(err).Msg("task failed, continuing batch")
			p.failed.Add(1)
		}
		p.processed.Add(1)
	}
	if ctx.Err() != nil {
		return errors.Errorf("batch cancelled: %w", ctx.Err())
	}
	return nil
}

// ➕ Submit queues one task. Must not be called after Wait.
func (p *Pool) Submit(task Task) {
	p.total.Add(1)
	p.tasks <- task
}

// 📊 Snapshot returns the current progress counters. Safe to call from
// another goroutine while the batch runs.
func (p *Pool) Snapshot() Progress {
	return Progress{
		Total:     p.total.Load(),
		Processed: p.processed.Load(),
		Errors:    p.failed.Load(),
	}
}

// ⏳ Wait closes the queue, drains remaining tasks and returns the final
// counters. The only error is batch cancellation via the context.
func (p *Pool) Wait() (Progress, error) {
	close(p.tasks)
	err := p.group.Wait()
	return p.Snapshot(), err
}
