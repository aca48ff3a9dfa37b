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

package kube

import (
	"context"
	"fmt"
	"time"

	"github.com/fluxcd/pkg/ssa"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/labels"
	"sigs.k8s.io/controller-runtime/pkg/client"

	apiv1 "github.com/stefanprodan/reclaimer/api/v1alpha1"
)

// Client lists and deletes the namespaced objects subject to a sweep.
type Client struct {
	rm         *ssa.ResourceManager
	deleteOpts ssa.DeleteOptions
}

// NewClient returns a Client backed by the given ResourceManager.
func NewClient(rm *ssa.ResourceManager) *Client {
	return &Client{
		rm:         rm,
		deleteOpts: DeleteOptions(),
	}
}

// List returns the objects of the given kind found in the namespace
// that match the label selector. An empty selector matches all objects.
func (c *Client) List(ctx context.Context, kind apiv1.ResourceKind, labelSelector, namespace string) ([]apiv1.ResourceRef, error) {
	if !kind.IsValid() {
		return nil, fmt.Errorf("unsupported kind '%s'", kind)
	}

	opts := []client.ListOption{client.InNamespace(namespace)}
	if labelSelector != "" {
		sel, err := labels.Parse(labelSelector)
		if err != nil {
			return nil, fmt.Errorf("invalid label selector '%s': %w", labelSelector, err)
		}
		opts = append(opts, client.MatchingLabelsSelector{Selector: sel})
	}

	list := &unstructured.UnstructuredList{}
	list.SetGroupVersionKind(kind.ListGroupVersionKind())
	if err := c.rm.Client().List(ctx, list, opts...); err != nil {
		return nil, fmt.Errorf("listing %s objects in namespace '%s' failed: %w", kind, namespace, err)
	}

	refs := make([]apiv1.ResourceRef, 0, len(list.Items))
	for _, item := range list.Items {
		refs = append(refs, apiv1.ResourceRef{
			Kind:          kind,
			Name:          item.GetName(),
			Namespace:     item.GetNamespace(),
			LabelSelector: labelSelector,
			Labels:        item.GetLabels(),
		})
	}
	return refs, nil
}

// Delete removes the object from the cluster.
// Objects that are already gone are considered deleted.
func (c *Client) Delete(ctx context.Context, ref apiv1.ResourceRef) error {
	if _, err := c.rm.Delete(ctx, toUnstructured(ref), c.deleteOpts); err != nil {
		return err
	}
	return nil
}

// WaitForTermination blocks until the given objects are removed
// from the cluster or the timeout expires.
func (c *Client) WaitForTermination(refs []apiv1.ResourceRef, timeout time.Duration) error {
	objects := make([]*unstructured.Unstructured, 0, len(refs))
	for _, ref := range refs {
		objects = append(objects, toUnstructured(ref))
	}

	opts := ssa.DefaultWaitOptions()
	opts.Timeout = timeout
	return c.rm.WaitForTermination(objects, opts)
}

func toUnstructured(ref apiv1.ResourceRef) *unstructured.Unstructured {
	u := &unstructured.Unstructured{}
	u.SetGroupVersionKind(ref.Kind.GroupVersionKind())
	u.SetName(ref.Name)
	u.SetNamespace(ref.Namespace)
	return u
}
