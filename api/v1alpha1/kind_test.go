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
	"testing"

	"github.com/google/go-cmp/cmp"
	. "github.com/onsi/gomega"
)

func TestSweepOrder(t *testing.T) {
	expected := []ResourceKind{
		ServiceKind,
		DeploymentKind,
		ReplicaSetKind,
		PodKind,
		ConfigMapKind,
		HorizontalPodAutoscalerKind,
	}
	if diff := cmp.Diff(expected, SweepOrder); diff != "" {
		t.Errorf("Mismatch from expected value (-want +got):\n%s", diff)
	}
}

func TestResourceKind(t *testing.T) {
	tests := []struct {
		kind     ResourceKind
		group    string
		version  string
		selector string
	}{
		{kind: ServiceKind, group: "", version: "v1"},
		{kind: DeploymentKind, group: "apps", version: "v1"},
		{kind: ReplicaSetKind, group: "apps", version: "v1"},
		{kind: PodKind, group: "", version: "v1"},
		{kind: ConfigMapKind, group: "", version: "v1", selector: "kind=version"},
		{kind: HorizontalPodAutoscalerKind, group: "autoscaling", version: "v2"},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			g := NewWithT(t)
			g.Expect(tt.kind.IsValid()).To(BeTrue())

			gvk := tt.kind.GroupVersionKind()
			g.Expect(gvk.Group).To(Equal(tt.group))
			g.Expect(gvk.Version).To(Equal(tt.version))
			g.Expect(gvk.Kind).To(Equal(tt.kind.String()))
			g.Expect(tt.kind.ListGroupVersionKind().Kind).To(Equal(tt.kind.String() + "List"))
			g.Expect(tt.kind.LabelSelector()).To(Equal(tt.selector))
		})
	}
}

func TestParseResourceKind(t *testing.T) {
	g := NewWithT(t)

	k, err := ParseResourceKind("Pod")
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(k).To(Equal(PodKind))

	_, err = ParseResourceKind("Secret")
	g.Expect(err).To(HaveOccurred())
	g.Expect(err.Error()).To(ContainSubstring("unsupported kind"))
}
