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

	"github.com/go-logr/logr"

	apiv1 "github.com/stefanprodan/reclaimer/api/v1alpha1"
)

// reclaimKind lists the objects of a kind and deletes the ones matching the target.
// The listing completes before any deletion starts.
func (c *Coordinator) reclaimKind(ctx context.Context, s *sweep, kind apiv1.ResourceKind) {
	log := logr.FromContextOrDiscard(ctx).WithValues("kind", kind.String())
	counters := s.report.Kind(kind)
	selector := kind.LabelSelector()

	refs, err := c.resources.List(ctx, kind, selector, s.target.Namespace)
	if err != nil {
		s.report.AddError(&apiv1.SweepError{
			Phase:     apiv1.ListFailure,
			Kind:      kind,
			Namespace: s.target.Namespace,
			Err:       err,
		})
		log.V(1).Info("listing failed", "error", err.Error())
		return
	}

	objects := make([]apiv1.ResourceRef, 0, len(refs))
	for _, ref := range refs {
		if ref.Kind == "" {
			ref.Kind = kind
		}
		if ref.LabelSelector == "" {
			ref.LabelSelector = selector
		}
		if ref.Kind != kind || !ref.MatchesTarget(s.target) {
			log.V(1).Info("skipped", "resource", ref.String())
			continue
		}
		objects = append(objects, ref)
	}
	counters.Listed = len(objects)

	errs := c.forEach(ctx, len(objects), func(itemCtx context.Context, i int) error {
		if c.dryRun {
			return nil
		}
		return c.resources.Delete(itemCtx, objects[i])
	})

	for i, ref := range objects {
		switch {
		case errors.Is(errs[i], errNotStarted):
			s.abort(ctx.Err())
		case errs[i] != nil:
			counters.Failed++
			s.report.AddError(&apiv1.SweepError{
				Phase:     apiv1.DeleteFailure,
				Kind:      ref.Kind,
				Name:      ref.Name,
				Namespace: ref.Namespace,
				Err:       errs[i],
			})
		default:
			counters.Deleted++
			s.report.Deleted = append(s.report.Deleted, ref)
		}
	}

	log.V(1).Info("kind reclaimed",
		"listed", counters.Listed, "deleted", counters.Deleted, "failed", counters.Failed)
}
