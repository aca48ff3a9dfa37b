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

import (
	"context"
	"errors"
	"time"

	"github.com/go-logr/logr"
	"golang.org/x/sync/errgroup"

	apiv1 "github.com/stefanprodan/reclaimer/api/v1alpha1"
)

var errNotStarted = errors.New("not started, sweep aborted")

// Coordinator runs the sweep of a namespace and its test registry images.
type Coordinator struct {
	resources   ResourceClient
	artifacts   ArtifactClient
	concurrency int
	itemTimeout time.Duration
	dryRun      bool
}

// NewCoordinator returns a Coordinator that deletes resources with the given
// ResourceClient and removes images with the given ArtifactClient.
// When the ArtifactClient is nil, the image phase is skipped.
func NewCoordinator(resources ResourceClient, artifacts ArtifactClient, opts ...Option) *Coordinator {
	c := &Coordinator{
		resources:   resources,
		artifacts:   artifacts,
		concurrency: defaultConcurrency,
		itemTimeout: DefaultItemTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// sweep holds the state of a single Reclaim call.
type sweep struct {
	target  apiv1.SweepTarget
	report  *apiv1.SweepReport
	aborted bool
}

func (s *sweep) abort(err error) {
	if s.aborted {
		return
	}
	s.aborted = true
	s.report.AddError(&apiv1.SweepError{
		Phase:     apiv1.AbortFailure,
		Namespace: s.target.Namespace,
		Err:       err,
	})
}

// Reclaim deletes the resources of each kind in the sweep order, then removes
// the cached images tagged for the target registry, locally and remotely.
// Failures are recorded in the returned report, the sweep continues with the next item.
// Once the context is done, no further calls are started.
func (c *Coordinator) Reclaim(ctx context.Context, target apiv1.SweepTarget) *apiv1.SweepReport {
	log := logr.FromContextOrDiscard(ctx)
	s := &sweep{
		target: target,
		report: apiv1.NewSweepReport(target),
	}
	s.report.DryRun = c.dryRun

	if err := target.Validate(); err != nil {
		s.report.AddError(&apiv1.SweepError{
			Phase:     apiv1.ValidationFailure,
			Namespace: target.Namespace,
			Err:       err,
		})
		log.V(1).Info("invalid sweep target", "error", err.Error())
		return s.report
	}

	if c.resources != nil {
		for _, kind := range apiv1.SweepOrder {
			if err := ctx.Err(); err != nil {
				s.abort(err)
				return s.report
			}
			c.reclaimKind(ctx, s, kind)
		}
	}

	if c.artifacts != nil {
		if err := ctx.Err(); err != nil {
			s.abort(err)
			return s.report
		}
		c.reclaimImages(ctx, s)
	}

	return s.report
}

// forEach calls fn for each index with at most c.concurrency calls in flight
// and returns the errors in index order. Items are not started once ctx is done,
// their error is set to errNotStarted.
func (c *Coordinator) forEach(ctx context.Context, n int, fn func(ctx context.Context, i int) error) []error {
	errs := make([]error, n)

	var g errgroup.Group
	g.SetLimit(c.concurrency)
	for i := 0; i < n; i++ {
		if ctx.Err() != nil {
			for j := i; j < n; j++ {
				errs[j] = errNotStarted
			}
			break
		}
		g.Go(func() error {
			if ctx.Err() != nil {
				errs[i] = errNotStarted
				return nil
			}
			itemCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.itemTimeout)
			defer cancel()
			errs[i] = fn(itemCtx, i)
			return nil
		})
	}
	_ = g.Wait()

	return errs
}
