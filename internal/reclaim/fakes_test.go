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
	"fmt"
	"sync"

	"k8s.io/apimachinery/pkg/labels"

	apiv1 "github.com/stefanprodan/reclaimer/api/v1alpha1"
)

type listCall struct {
	kind      apiv1.ResourceKind
	selector  string
	namespace string
}

// fakeResources is an in-memory ResourceClient.
type fakeResources struct {
	mu       sync.Mutex
	objects  []apiv1.ResourceRef
	listErrs map[apiv1.ResourceKind]error
	delErrs  map[string]error

	// leaky returns objects from all namespaces ignoring the selector.
	leaky bool

	// onDelete is called with the call context before an object is removed,
	// a non-nil error is returned by Delete.
	onDelete func(ctx context.Context, ref apiv1.ResourceRef) error

	lists   []listCall
	deletes []string
}

func newFakeResources(objects ...apiv1.ResourceRef) *fakeResources {
	return &fakeResources{
		objects:  objects,
		listErrs: map[apiv1.ResourceKind]error{},
		delErrs:  map[string]error{},
	}
}

func (f *fakeResources) List(_ context.Context, kind apiv1.ResourceKind, selector, namespace string) ([]apiv1.ResourceRef, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists = append(f.lists, listCall{kind: kind, selector: selector, namespace: namespace})

	if err := f.listErrs[kind]; err != nil {
		return nil, err
	}

	sel, err := labels.Parse(selector)
	if err != nil {
		return nil, err
	}

	var refs []apiv1.ResourceRef
	for _, obj := range f.objects {
		if obj.Kind != kind {
			continue
		}
		if !f.leaky && (obj.Namespace != namespace || !sel.Matches(labels.Set(obj.Labels))) {
			continue
		}
		refs = append(refs, obj)
	}
	return refs, nil
}

func (f *fakeResources) Delete(ctx context.Context, ref apiv1.ResourceRef) error {
	var hookErr error
	if f.onDelete != nil {
		hookErr = f.onDelete(ctx, ref)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes = append(f.deletes, ref.String())

	if hookErr != nil {
		return hookErr
	}

	if err := f.delErrs[ref.String()]; err != nil {
		return err
	}

	for i, obj := range f.objects {
		if obj.Kind == ref.Kind && obj.Namespace == ref.Namespace && obj.Name == ref.Name {
			f.objects = append(f.objects[:i], f.objects[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeResources) listedKinds() []apiv1.ResourceKind {
	f.mu.Lock()
	defer f.mu.Unlock()
	var kinds []apiv1.ResourceKind
	for _, c := range f.lists {
		kinds = append(kinds, c.kind)
	}
	return kinds
}

func (f *fakeResources) remaining(namespace string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var ids []string
	for _, obj := range f.objects {
		if obj.Namespace == namespace {
			ids = append(ids, obj.String())
		}
	}
	return ids
}

// fakeArtifacts is an in-memory ArtifactClient.
type fakeArtifacts struct {
	mu         sync.Mutex
	images     []apiv1.ImageRef
	listErr    error
	localErrs  map[string]error
	remoteErrs map[string]error

	local  []string
	remote []string
}

func newFakeArtifacts(images ...apiv1.ImageRef) *fakeArtifacts {
	return &fakeArtifacts{
		images:     images,
		localErrs:  map[string]error{},
		remoteErrs: map[string]error{},
	}
}

func (f *fakeArtifacts) ListCachedImages(_ context.Context) ([]apiv1.ImageRef, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]apiv1.ImageRef(nil), f.images...), nil
}

func (f *fakeArtifacts) RemoveLocalImage(_ context.Context, tag string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.local = append(f.local, tag)
	if err := f.localErrs[tag]; err != nil {
		return err
	}
	for i, img := range f.images {
		if img.PrimaryTag() == tag {
			f.images = append(f.images[:i], f.images[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakeArtifacts) RemoveRemoteTag(_ context.Context, tag string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.remote = append(f.remote, tag)
	return f.remoteErrs[tag]
}

func pod(namespace, name string) apiv1.ResourceRef {
	return apiv1.ResourceRef{Kind: apiv1.PodKind, Namespace: namespace, Name: name}
}

func object(kind apiv1.ResourceKind, namespace, name string) apiv1.ResourceRef {
	ref := apiv1.ResourceRef{Kind: kind, Namespace: namespace, Name: name}
	if kind == apiv1.ConfigMapKind {
		ref.Labels = map[string]string{apiv1.VersionLabelKey: apiv1.VersionLabelValue}
	}
	return ref
}

func pods(namespace string, n int) []apiv1.ResourceRef {
	refs := make([]apiv1.ResourceRef, 0, n)
	for i := 0; i < n; i++ {
		refs = append(refs, pod(namespace, fmt.Sprintf("pod-%d", i)))
	}
	return refs
}
