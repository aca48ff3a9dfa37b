/*
Copyright 2024 Stefan Prodan

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package reclaim

import "time"

const (
	defaultConcurrency = 1

	// DefaultItemTimeout is the deadline of a single delete or remove call.
	DefaultItemTimeout = 30 * time.Second
)

// Option configures a Coordinator.
type Option func(c *Coordinator)

// WithConcurrency sets the number of deletions performed in parallel
// for a kind, and the number of images processed in parallel.
// Values lower than one are ignored.
func WithConcurrency(n int) Option {
	return func(c *Coordinator) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

// WithItemTimeout sets the deadline of a single delete or remove call.
// Calls started before the sweep context is cancelled run until they
// finish or this timeout expires.
func WithItemTimeout(d time.Duration) Option {
	return func(c *Coordinator) {
		if d > 0 {
			c.itemTimeout = d
		}
	}
}

// WithDryRun makes the coordinator list and count the resources and images
// without removing anything.
func WithDryRun(enabled bool) Option {
	return func(c *Coordinator) {
		c.dryRun = enabled
	}
}
