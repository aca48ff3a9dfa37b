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
	"testing"

	"github.com/google/go-containerregistry/pkg/crane"
	"github.com/google/go-containerregistry/pkg/v1/random"
	. "github.com/onsi/gomega"

	"github.com/stefanprodan/reclaimer/internal/testutils"
)

func pushRandomImage(g *WithT, ref string) {
	img, err := random.Image(1024, 1)
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(crane.Push(img, ref, Options(context.Background(), "", false)...)).To(Succeed())
}

func TestRemoveRemoteTag(t *testing.T) {
	g := testutils.NewWithT(t)
	ctx := context.Background()
	registry := g.SetupTestRegistry()

	repo := fmt.Sprintf("%s/%s", registry, rnd("app", 5))
	tag := repo + ":1.0.0"
	other := repo + ":2.0.0"
	pushRandomImage(g.WithT, tag)
	pushRandomImage(g.WithT, other)

	c := NewClient(newFakeDocker())
	g.Expect(c.RemoveRemoteTag(ctx, tag)).To(Succeed())

	_, err := crane.Digest(tag, Options(ctx, "", false)...)
	g.Expect(err).To(HaveOccurred())

	_, err = crane.Digest(other, Options(ctx, "", false)...)
	g.Expect(err).ToNot(HaveOccurred())

	tags, err := crane.ListTags(repo, Options(ctx, "", false)...)
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(tags).To(ConsistOf("2.0.0"))
}

func TestRemoveRemoteTag_NotFound(t *testing.T) {
	g := testutils.NewWithT(t)
	ctx := context.Background()
	registry := g.SetupTestRegistry()

	tag := fmt.Sprintf("%s/%s:1.0.0", registry, rnd("missing", 5))
	c := NewClient(newFakeDocker())
	g.Expect(c.RemoveRemoteTag(ctx, tag)).To(Succeed())
}

func TestRemoveRemoteTag_InvalidReference(t *testing.T) {
	g := NewWithT(t)

	c := NewClient(newFakeDocker())
	err := c.RemoveRemoteTag(context.Background(), "registry.test/UPPER:1")
	g.Expect(err).To(MatchError(ContainSubstring("invalid image reference")))
}

func TestOptions(t *testing.T) {
	g := NewWithT(t)
	ctx := context.Background()

	g.Expect(Options(ctx, "", false)).To(HaveLen(2))
	g.Expect(Options(ctx, "token", false)).To(HaveLen(3))
	g.Expect(Options(ctx, "user:pass", true)).To(HaveLen(5))
}
