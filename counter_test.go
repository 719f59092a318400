// BrownianExits - parallel simulation of Brownian paths escaping a rectangle
// Copyright (C) 2026  Sam Vermeulen
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package brownian

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExitBudgetUnderContention(t *testing.T) {
	const limit = 50
	const workers = 8
	const attempts = 100

	b := newExitBudget(limit)

	var granted atomic.Int64
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range attempts {
				if b.take() {
					granted.Add(1)
				}
			}
		}()
	}
	wg.Wait()

	// Every take gets a distinct pre-increment value, so exactly limit of
	// them succeed no matter how the goroutines interleave.
	assert.Equal(t, int64(limit), granted.Load())
	assert.True(t, b.exhausted())
}

func TestExitBudgetPeek(t *testing.T) {
	b := newExitBudget(2)
	assert.False(t, b.exhausted())
	require.True(t, b.take())
	assert.False(t, b.exhausted())
	require.True(t, b.take())
	assert.True(t, b.exhausted())
	assert.False(t, b.take())
}

func TestIDAllocatorUnique(t *testing.T) {
	const workers = 4
	const perWorker = 1000

	a := &idAllocator{}

	results := make([][]int64, workers)
	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids := make([]int64, 0, perWorker)
			for range perWorker {
				ids = append(ids, a.alloc())
			}
			results[i] = ids
		}()
	}
	wg.Wait()

	seen := make(map[int64]bool)
	for _, ids := range results {
		for _, id := range ids {
			require.False(t, seen[id], "id %d allocated twice", id)
			seen[id] = true
		}
	}
	assert.Len(t, seen, workers*perWorker)
}
