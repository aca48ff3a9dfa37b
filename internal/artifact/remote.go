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
	"errors"
	"fmt"
	"net/http"

	"github.com/google/go-containerregistry/pkg/crane"
	"github.com/google/go-containerregistry/pkg/name"
	"github.com/google/go-containerregistry/pkg/v1/remote/transport"
)

// RemoveRemoteTag deletes the manifest referenced by the tag from the registry.
// The tag is resolved to a digest first, as registries only accept
// manifest deletion by digest. Tags already removed are ignored.
func (c *Client) RemoveRemoteTag(ctx context.Context, tag string) error {
	var nameOpts []name.Option
	if c.insecure {
		nameOpts = append(nameOpts, name.Insecure)
	}

	ref, err := name.ParseReference(tag, nameOpts...)
	if err != nil {
		return fmt.Errorf("invalid image reference '%s': %w", tag, err)
	}

	opts := Options(ctx, c.credentials, c.insecure)

	digest, err := crane.Digest(ref.String(), opts...)
	if err != nil {
		if isNotFound(err) {
			return nil
		}
		return fmt.Errorf("resolving %s failed: %w", tag, err)
	}

	digestRef := ref.Context().Digest(digest)
	if err := crane.Delete(digestRef.String(), opts...); err != nil {
		if isNotFound(err) {
			return nil
		}
		return fmt.Errorf("deleting %s failed: %w", digestRef, err)
	}

	return nil
}

func isNotFound(err error) bool {
	var terr *transport.Error
	return errors.As(err, &terr) && terr.StatusCode == http.StatusNotFound
}
