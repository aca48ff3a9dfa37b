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
	"fmt"

	"k8s.io/apimachinery/pkg/runtime/schema"
)

const (
	// VersionLabelKey is the label key set on the ConfigMaps that track
	// the deployed versions of an application.
	VersionLabelKey = "kind"

	// VersionLabelValue is the value of VersionLabelKey for version-tracking ConfigMaps.
	VersionLabelValue = "version"

	// VersionLabelSelector restricts the ConfigMap sweep to version-tracking objects.
	VersionLabelSelector = VersionLabelKey + "=" + VersionLabelValue
)

// ResourceKind is an enumeration of the Kubernetes kinds torn down by a sweep.
type ResourceKind string

const (
	ServiceKind                 ResourceKind = "Service"
	DeploymentKind              ResourceKind = "Deployment"
	ReplicaSetKind              ResourceKind = "ReplicaSet"
	PodKind                     ResourceKind = "Pod"
	ConfigMapKind               ResourceKind = "ConfigMap"
	HorizontalPodAutoscalerKind ResourceKind = "HorizontalPodAutoscaler"
)

// SweepOrder is the order in which the kinds are reclaimed.
// Controllers come before the Pods they own, so that deleted Pods
// are not recreated while the sweep is running.
var SweepOrder = []ResourceKind{
	ServiceKind,
	DeploymentKind,
	ReplicaSetKind,
	PodKind,
	ConfigMapKind,
	HorizontalPodAutoscalerKind,
}

var kindToGVK = map[ResourceKind]schema.GroupVersionKind{
	ServiceKind:                 {Group: "", Version: "v1", Kind: string(ServiceKind)},
	DeploymentKind:              {Group: "apps", Version: "v1", Kind: string(DeploymentKind)},
	ReplicaSetKind:              {Group: "apps", Version: "v1", Kind: string(ReplicaSetKind)},
	PodKind:                     {Group: "", Version: "v1", Kind: string(PodKind)},
	ConfigMapKind:               {Group: "", Version: "v1", Kind: string(ConfigMapKind)},
	HorizontalPodAutoscalerKind: {Group: "autoscaling", Version: "v2", Kind: string(HorizontalPodAutoscalerKind)},
}

// String returns the string representation of the ResourceKind.
func (k ResourceKind) String() string {
	return string(k)
}

// IsValid returns true if the kind is one of the reclaimed kinds.
func (k ResourceKind) IsValid() bool {
	_, ok := kindToGVK[k]
	return ok
}

// GroupVersionKind returns the Kubernetes API group, version and kind.
func (k ResourceKind) GroupVersionKind() schema.GroupVersionKind {
	return kindToGVK[k]
}

// ListGroupVersionKind returns the GroupVersionKind of the kind's list type.
func (k ResourceKind) ListGroupVersionKind() schema.GroupVersionKind {
	gvk := kindToGVK[k]
	gvk.Kind += "List"
	return gvk
}

// LabelSelector returns the label selector used when listing the kind.
// Only version-tracking ConfigMaps are reclaimed, every other kind
// is listed without a selector.
func (k ResourceKind) LabelSelector() string {
	if k == ConfigMapKind {
		return VersionLabelSelector
	}
	return ""
}

// ParseResourceKind returns the ResourceKind matching the given name.
func ParseResourceKind(s string) (ResourceKind, error) {
	k := ResourceKind(s)
	if !k.IsValid() {
		return "", fmt.Errorf("unsupported kind '%s'", s)
	}
	return k, nil
}
