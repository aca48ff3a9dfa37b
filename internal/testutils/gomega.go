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

// Package testutils provides gomega helpers shared by the test suites.
package testutils

import (
	"testing"

	"github.com/onsi/gomega"
)

// WithT wraps gomega.WithT with the helpers that need access to the test.
type WithT struct {
	*gomega.WithT
	t testing.TB
}

// NewWithT returns a WithT bound to the given test.
func NewWithT(t testing.TB) *WithT {
	return &WithT{
		WithT: gomega.NewWithT(t),
		t:     t,
	}
}
