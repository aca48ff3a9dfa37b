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

// Package reclaim tears down the leftovers of an integration test run.
//
// The Coordinator performs a best-effort sweep of a namespace:
//   - lists and deletes the Services, Deployments, ReplicaSets, Pods,
//     version-tracking ConfigMaps and HorizontalPodAutoscalers, in this order
//   - lists the locally cached images and removes the ones tagged for the test registry
//   - removes the same tags from the remote registry
//
// Failures are isolated per item and collected in the SweepReport,
// a sweep never stops at the first error.
package reclaim
