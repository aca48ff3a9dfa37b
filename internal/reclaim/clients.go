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

	apiv1 "github.com/stefanprodan/reclaimer/api/v1alpha1"
)

// ResourceClient lists and deletes Kubernetes resources.
type ResourceClient interface {
	// List returns the resources of the given kind matching the label selector
	// in the given namespace. An empty selector matches all resources.
	List(ctx context.Context, kind apiv1.ResourceKind, labelSelector, namespace string) ([]apiv1.ResourceRef, error)

	// Delete removes the given resource, deleting a resource that
	// no longer exists is not an error.
	Delete(ctx context.Context, ref apiv1.ResourceRef) error
}

// ArtifactClient lists and removes container images.
type ArtifactClient interface {
	// ListCachedImages returns the images found in the local image store.
	ListCachedImages(ctx context.Context) ([]apiv1.ImageRef, error)

	// RemoveLocalImage removes the image with the given tag from the local image store.
	RemoveLocalImage(ctx context.Context, tag string) error

	// RemoveRemoteTag removes the given tag from the remote registry.
	RemoveRemoteTag(ctx context.Context, tag string) error
}
