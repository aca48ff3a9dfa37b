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

type removal struct {
	local  error
	remote error
}

// reclaimImages removes the cached images whose primary tag points to the target
// registry, then removes the same tag from the registry. The remote removal
// is attempted even if the local one failed.
func (c *Coordinator) reclaimImages(ctx context.Context, s *sweep) {
	log := logr.FromContextOrDiscard(ctx)
	counters := &s.report.Images

	images, err := c.artifacts.ListCachedImages(ctx)
	if err != nil {
		s.report.AddError(&apiv1.SweepError{
			Phase: apiv1.ImageListFailure,
			Err:   err,
		})
		log.V(1).Info("listing cached images failed", "error", err.Error())
		return
	}
	counters.Listed = len(images)

	var tags []string
	for _, img := range images {
		if img.IsCandidate(s.target.RegistryHost) {
			tags = append(tags, img.PrimaryTag())
		}
	}
	counters.Matched = len(tags)

	results := make([]removal, len(tags))
	errs := c.forEach(ctx, len(tags), func(itemCtx context.Context, i int) error {
		if c.dryRun {
			return nil
		}
		results[i].local = c.artifacts.RemoveLocalImage(itemCtx, tags[i])
		results[i].remote = c.artifacts.RemoveRemoteTag(itemCtx, tags[i])
		return nil
	})

	for i, tag := range tags {
		if errors.Is(errs[i], errNotStarted) {
			s.abort(ctx.Err())
			continue
		}

		if err := results[i].local; err != nil {
			counters.LocalFailed++
			s.report.AddError(&apiv1.SweepError{
				Phase: apiv1.LocalRemovalFailure,
				Tag:   tag,
				Err:   err,
			})
		} else {
			counters.LocalRemoved++
		}

		if err := results[i].remote; err != nil {
			counters.RemoteFailed++
			s.report.AddError(&apiv1.SweepError{
				Phase: apiv1.RemoteRemovalFailure,
				Tag:   tag,
				Err:   err,
			})
		} else {
			counters.RemoteRemoved++
		}
	}

	log.V(1).Info("images reclaimed",
		"matched", counters.Matched, "localRemoved", counters.LocalRemoved, "remoteRemoved", counters.RemoteRemoved)
}
