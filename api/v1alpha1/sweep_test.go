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

	. "github.com/onsi/gomega"
)

func TestSweepTarget_Validate(t *testing.T) {
	tests := []struct {
		name    string
		target  SweepTarget
		wantErr bool
	}{
		{name: "valid", target: SweepTarget{Namespace: "dew-test", RegistryHost: "registry.test"}},
		{name: "valid with port", target: SweepTarget{Namespace: "dew-test", RegistryHost: "localhost:5000"}},
		{name: "empty namespace", target: SweepTarget{RegistryHost: "registry.test"}, wantErr: true},
		{name: "empty host", target: SweepTarget{Namespace: "dew-test"}, wantErr: true},
		{name: "host with path", target: SweepTarget{Namespace: "dew-test", RegistryHost: "registry.test/org"}, wantErr: true},
		{name: "host with spaces", target: SweepTarget{Namespace: "dew-test", RegistryHost: "registry test"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewWithT(t)
			err := tt.target.Validate()
			if tt.wantErr {
				g.Expect(err).To(HaveOccurred())
			} else {
				g.Expect(err).ToNot(HaveOccurred())
			}
		})
	}
}

func TestResourceRef_MatchesTarget(t *testing.T) {
	g := NewWithT(t)
	target := SweepTarget{Namespace: "dew-test", RegistryHost: "registry.test"}

	g.Expect(ResourceRef{Kind: PodKind, Name: "app", Namespace: "dew-test"}.MatchesTarget(target)).To(BeTrue())
	g.Expect(ResourceRef{Kind: PodKind, Name: "app", Namespace: "default"}.MatchesTarget(target)).To(BeFalse())

	versionCM := ResourceRef{
		Kind:      ConfigMapKind,
		Name:      "app-v1",
		Namespace: "dew-test",
		Labels:    map[string]string{"kind": "version", "app": "web"},
	}
	g.Expect(versionCM.MatchesTarget(target)).To(BeTrue())

	otherCM := ResourceRef{
		Kind:      ConfigMapKind,
		Name:      "app-config",
		Namespace: "dew-test",
		Labels:    map[string]string{"app": "web"},
	}
	g.Expect(otherCM.MatchesTarget(target)).To(BeFalse())
	g.Expect(otherCM.String()).To(Equal("ConfigMap/dew-test/app-config"))

	listedCM := ResourceRef{Kind: ConfigMapKind, Name: "app-v2", Namespace: "dew-test", LabelSelector: VersionLabelSelector}
	g.Expect(listedCM.MatchesTarget(target)).To(BeTrue())

	unlabeledCM := ResourceRef{Kind: ConfigMapKind, Name: "app-config", Namespace: "dew-test"}
	g.Expect(unlabeledCM.MatchesTarget(target)).To(BeFalse())
}

func TestImageRef_IsCandidate(t *testing.T) {
	g := NewWithT(t)
	host := "registry.test"

	images := []ImageRef{
		{ID: "sha256:1", RepoTags: []string{"registry.test/foo:1"}},
		{ID: "sha256:2", RepoTags: []string{"other.test/bar:1"}},
		{ID: "sha256:3", RepoTags: []string{}},
		{ID: "sha256:4", RepoTags: []string{"other.test/baz:1", "registry.test/baz:1"}},
		{ID: "sha256:5", RepoTags: []string{""}},
	}

	var candidates []string
	for _, img := range images {
		if img.IsCandidate(host) {
			candidates = append(candidates, img.PrimaryTag())
		}
	}

	g.Expect(candidates).To(Equal([]string{"registry.test/foo:1"}))
}
