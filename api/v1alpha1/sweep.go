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

package v1alpha1

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/go-containerregistry/pkg/name"
	"k8s.io/apimachinery/pkg/labels"
)

var (
	// ErrNamespaceRequired is returned when the sweep target has no namespace.
	ErrNamespaceRequired = errors.New("namespace is required")

	// ErrRegistryHostRequired is returned when the sweep target has no registry host.
	ErrRegistryHostRequired = errors.New("registry host is required")
)

// SweepTarget holds the filters applied to a sweep.
type SweepTarget struct {
	// Namespace is the Kubernetes namespace where resources are reclaimed.
	Namespace string `json:"namespace"`

	// RegistryHost is the host name of the test registry,
	// images tagged with this prefix are removed.
	RegistryHost string `json:"registryHost"`
}

// Validate returns an error if the namespace is empty
// or if the registry host is not a valid host name.
func (t SweepTarget) Validate() error {
	if t.Namespace == "" {
		return ErrNamespaceRequired
	}
	if t.RegistryHost == "" {
		return ErrRegistryHostRequired
	}
	if strings.ContainsAny(t.RegistryHost, "/ \t\n@") {
		return fmt.Errorf("invalid registry host '%s'", t.RegistryHost)
	}
	if _, err := name.NewRegistry(t.RegistryHost, name.StrictValidation); err != nil {
		return fmt.Errorf("invalid registry host '%s': %w", t.RegistryHost, err)
	}
	return nil
}

// ResourceRef identifies a Kubernetes object subject to deletion.
type ResourceRef struct {
	Kind      ResourceKind `json:"kind"`
	Name      string       `json:"name"`
	Namespace string       `json:"namespace"`

	// LabelSelector is the selector used to list the object.
	// +optional
	LabelSelector string `json:"labelSelector,omitempty"`

	// Labels are the object's metadata labels.
	// +optional
	Labels map[string]string `json:"labels,omitempty"`
}

// String returns the object ID in the format <kind>/<namespace>/<name>.
func (r ResourceRef) String() string {
	return fmt.Sprintf("%s/%s/%s", r.Kind, r.Namespace, r.Name)
}

// MatchesTarget returns true if the object belongs to the target namespace
// and, for ConfigMaps, carries the version-tracking label. When the labels
// are unknown, a ConfigMap matches only if it was listed with the version selector.
func (r ResourceRef) MatchesTarget(target SweepTarget) bool {
	if r.Namespace != target.Namespace {
		return false
	}
	if r.Kind != ConfigMapKind {
		return true
	}
	if r.Labels == nil {
		return r.LabelSelector == VersionLabelSelector
	}
	sel, err := labels.Parse(VersionLabelSelector)
	if err != nil {
		return false
	}
	return sel.Matches(labels.Set(r.Labels))
}

// ImageRef holds the identity of a locally cached container image.
type ImageRef struct {
	// ID is the image ID in the format '<sha-type>:<hex>'.
	ID string `json:"id"`

	// RepoTags is the list of tags, it can be empty for dangling images.
	RepoTags []string `json:"repoTags,omitempty"`
}

// PrimaryTag returns the first tag or an empty string for untagged images.
func (i ImageRef) PrimaryTag() string {
	if len(i.RepoTags) == 0 {
		return ""
	}
	return i.RepoTags[0]
}

// IsCandidate returns true if the image primary tag starts with the registry host.
// Secondary tags are not inspected.
func (i ImageRef) IsCandidate(registryHost string) bool {
	tag := i.PrimaryTag()
	return tag != "" && strings.HasPrefix(tag, registryHost)
}
