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

package main

import (
	"time"

	apiv1 "github.com/stefanprodan/reclaimer/api/v1alpha1"
	"github.com/stefanprodan/reclaimer/internal/artifact"
	"github.com/stefanprodan/reclaimer/internal/kube"
	"github.com/stefanprodan/reclaimer/internal/reclaim"
)

// resourceClient is a reclaim.ResourceClient that can wait for
// the deleted objects to be finalized.
type resourceClient interface {
	reclaim.ResourceClient
	WaitForTermination(refs []apiv1.ResourceRef, timeout time.Duration) error
}

// artifactClient is a reclaim.ArtifactClient holding a Docker connection.
type artifactClient interface {
	reclaim.ArtifactClient
	Close() error
}

// The client constructors are variables so that tests can inject fakes.
var (
	newResourceClient = func() (resourceClient, error) {
		rm, err := kube.NewResourceManager(kubeconfigArgs)
		if err != nil {
			return nil, err
		}
		return kube.NewClient(rm), nil
	}

	newArtifactClient = func(cfg *apiv1.SweepConfig, credentials string) (artifactClient, error) {
		docker, err := artifact.NewDockerClient(cfg.DockerHost)
		if err != nil {
			return nil, err
		}
		return artifact.NewClient(docker,
			artifact.WithCredentials(credentials),
			artifact.WithInsecure(cfg.RegistryInsecure),
		), nil
	}
)
