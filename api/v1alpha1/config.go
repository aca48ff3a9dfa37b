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

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime/schema"
)

var (
	// GroupVersion is the API group and version of the reclaimer configuration.
	GroupVersion = schema.GroupVersion{Group: "reclaimer.sh", Version: "v1alpha1"}
)

const (
	// SweepConfigKind is the kind of the sweep configuration file.
	SweepConfigKind = "SweepConfig"

	// FieldManager is the field manager name used for delete operations.
	FieldManager = "reclaimer"

	// UserAgent is the agent name used for container registry operations.
	UserAgent = "reclaimer/v1"
)

// SweepConfig holds the settings of a sweep, it can be loaded from a YAML file
// and any value is overridden by the command line flags.
type SweepConfig struct {
	metav1.TypeMeta `json:",inline"`

	// Namespace is the namespace to reclaim.
	// +optional
	Namespace string `json:"namespace,omitempty"`

	// RegistryURL is the address of the test registry e.g. 'https://registry.test:5000'.
	// +optional
	RegistryURL string `json:"registryURL,omitempty"`

	// RegistryInsecure allows connecting to the registry without TLS verification.
	// +optional
	RegistryInsecure bool `json:"registryInsecure,omitempty"`

	// DockerHost is the address of the Docker daemon, defaults to DOCKER_HOST.
	// +optional
	DockerHost string `json:"dockerHost,omitempty"`

	// Concurrency is the number of deletions performed in parallel for a kind.
	// +optional
	Concurrency int `json:"concurrency,omitempty"`

	// ItemTimeout is the deadline of a single delete or remove call e.g. '30s'.
	// +optional
	ItemTimeout metav1.Duration `json:"itemTimeout,omitempty"`

	// SkipImages disables the image phase.
	// +optional
	SkipImages bool `json:"skipImages,omitempty"`

	// DryRun reports what would be removed without removing anything.
	// +optional
	DryRun bool `json:"dryRun,omitempty"`

	// Wait blocks until the deleted resources are finalized.
	// +optional
	Wait bool `json:"wait,omitempty"`

	// Strict makes the command fail when the report contains errors.
	// +optional
	Strict bool `json:"strict,omitempty"`
}

// NewSweepConfig returns a config with the default values.
func NewSweepConfig() *SweepConfig {
	return &SweepConfig{
		TypeMeta: metav1.TypeMeta{
			APIVersion: GroupVersion.String(),
			Kind:       SweepConfigKind,
		},
		Concurrency: 1,
	}
}

// Validate returns an error if the config targets another API,
// or if the concurrency or the item timeout is negative.
func (c *SweepConfig) Validate() error {
	if c.APIVersion != "" && c.APIVersion != GroupVersion.String() {
		return fmt.Errorf("unsupported apiVersion '%s', must be '%s'", c.APIVersion, GroupVersion.String())
	}
	if c.Kind != "" && c.Kind != SweepConfigKind {
		return fmt.Errorf("unsupported kind '%s', must be '%s'", c.Kind, SweepConfigKind)
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("concurrency must be greater than zero")
	}
	if c.ItemTimeout.Duration < 0 {
		return fmt.Errorf("itemTimeout must be a positive duration")
	}
	return nil
}
