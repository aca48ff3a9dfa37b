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

package artifact

import (
	"context"
	"fmt"

	cerrdefs "github.com/containerd/errdefs"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/client"

	apiv1 "github.com/stefanprodan/reclaimer/api/v1alpha1"
)

// danglingTag is reported by older Docker engines for untagged images.
const danglingTag = "<none>:<none>"

// ImageAPI is the subset of the Docker Engine API used to manage the image cache.
type ImageAPI interface {
	ImageList(ctx context.Context, options image.ListOptions) ([]image.Summary, error)
	ImageRemove(ctx context.Context, imageID string, options image.RemoveOptions) ([]image.DeleteResponse, error)
}

// NewDockerClient returns a Docker client configured from the environment.
// When host is set, it overrides DOCKER_HOST.
func NewDockerClient(host string) (*client.Client, error) {
	opts := []client.Opt{client.FromEnv, client.WithAPIVersionNegotiation()}
	if host != "" {
		opts = append(opts, client.WithHost(host))
	}

	cli, err := client.NewClientWithOpts(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create docker client: %w", err)
	}
	return cli, nil
}

// ListCachedImages returns the images stored in the local Docker cache.
func (c *Client) ListCachedImages(ctx context.Context) ([]apiv1.ImageRef, error) {
	images, err := c.docker.ImageList(ctx, image.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to list images: %w", err)
	}

	refs := make([]apiv1.ImageRef, 0, len(images))
	for _, img := range images {
		var tags []string
		for _, tag := range img.RepoTags {
			if tag != "" && tag != danglingTag {
				tags = append(tags, tag)
			}
		}
		refs = append(refs, apiv1.ImageRef{ID: img.ID, RepoTags: tags})
	}
	return refs, nil
}

// RemoveLocalImage removes the image with the given tag from the local cache.
// Images already removed are ignored.
func (c *Client) RemoveLocalImage(ctx context.Context, tag string) error {
	_, err := c.docker.ImageRemove(ctx, tag, image.RemoveOptions{
		Force:         true,
		PruneChildren: true,
	})
	if err != nil && !cerrdefs.IsNotFound(err) {
		return fmt.Errorf("failed to remove image %s: %w", tag, err)
	}
	return nil
}
