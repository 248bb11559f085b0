// Copyright 2025 MetrodataTeam
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


package limiter

import (
	"context"
	"errors"

	"golang.org/x/sync/semaphore"
)

// ErrInvalidLimit is returned when a Limiter is created with a
// non-positive concurrency bound.
var ErrInvalidLimit = errors.New("concurrency limit must be positive")

// Limiter bounds the number of invocations executing concurrently.
// Callers over the bound block until a slot frees; the order in which
// waiters acquire slots is unspecified, only the bound is guaranteed.
type Limiter struct {
	sem *semaphore.Weighted
	max int64
}

// New creates a Limiter allowing at most max concurrent invocations.
func New(max int64) (*Limiter, error) {
	if max <= 0 {
		return nil, ErrInvalidLimit
	}
	return &Limiter{
		sem: semaphore.NewWeighted(max),
		max: max,
	}, nil
}

// Max returns the configured concurrency bound.
func (l *Limiter) Max() int64 {
	return l.max
}

// Do runs fn once a slot is available. The slot is released on every exit
// path, including fn returning an error or panicking, so failures never
// leak slots. Waiting is cancelable through ctx; on cancellation the
// context error is returned and fn is not invoked.
func (l *Limiter) Do(ctx context.Context, fn func() error) error {
	if err := l.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer l.sem.Release(1)
	return fn()
}
