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
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// SweepPhase is the step of the sweep in which a failure occurred.
type SweepPhase string

const (
	// ValidationFailure is recorded when the sweep target is invalid,
	// in which case nothing is attempted.
	ValidationFailure SweepPhase = "ValidationFailure"

	// ListFailure is recorded when a kind can't be listed,
	// no resources of that kind are deleted.
	ListFailure SweepPhase = "ListFailure"

	// DeleteFailure is recorded when a resource can't be deleted.
	DeleteFailure SweepPhase = "DeleteFailure"

	// ImageListFailure is recorded when the cached images can't be listed,
	// which ends the image phase.
	ImageListFailure SweepPhase = "ImageListFailure"

	// LocalRemovalFailure is recorded when a cached image can't be removed.
	LocalRemovalFailure SweepPhase = "LocalRemovalFailure"

	// RemoteRemovalFailure is recorded when a tag can't be removed from the registry.
	RemoteRemovalFailure SweepPhase = "RemoteRemovalFailure"

	// AbortFailure is recorded when the sweep context is done before all items were processed.
	AbortFailure SweepPhase = "AbortFailure"
)

// SweepError holds a failure and the item it belongs to.
type SweepError struct {
	Phase     SweepPhase   `json:"phase"`
	Kind      ResourceKind `json:"kind,omitempty"`
	Name      string       `json:"name,omitempty"`
	Namespace string       `json:"namespace,omitempty"`
	Tag       string       `json:"tag,omitempty"`
	Err       error        `json:"-"`
}

// Subject returns the identity of the failed item.
func (e *SweepError) Subject() string {
	switch {
	case e.Tag != "":
		return e.Tag
	case e.Name != "":
		return fmt.Sprintf("%s/%s/%s", e.Kind, e.Namespace, e.Name)
	case e.Kind != "":
		return fmt.Sprintf("%s/%s", e.Kind, e.Namespace)
	default:
		return e.Namespace
	}
}

func (e *SweepError) Error() string {
	var sb strings.Builder
	sb.WriteString(string(e.Phase))
	if s := e.Subject(); s != "" {
		sb.WriteString(" ")
		sb.WriteString(s)
	}
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}
	return sb.String()
}

func (e *SweepError) Unwrap() error {
	return e.Err
}

// MarshalJSON includes the underlying error message.
func (e *SweepError) MarshalJSON() ([]byte, error) {
	type alias SweepError
	msg := ""
	if e.Err != nil {
		msg = e.Err.Error()
	}
	return json.Marshal(&struct {
		*alias
		Message string `json:"error,omitempty"`
	}{
		alias:   (*alias)(e),
		Message: msg,
	})
}

// KindReport holds the counters of a resource kind.
type KindReport struct {
	Kind    ResourceKind `json:"kind"`
	Listed  int          `json:"listed"`
	Deleted int          `json:"deleted"`
	Failed  int          `json:"failed"`
}

// ImageReport holds the counters of the image phase.
type ImageReport struct {
	Listed        int `json:"listed"`
	Matched       int `json:"matched"`
	LocalRemoved  int `json:"localRemoved"`
	LocalFailed   int `json:"localFailed"`
	RemoteRemoved int `json:"remoteRemoved"`
	RemoteFailed  int `json:"remoteFailed"`
}

// SweepReport is the result of a sweep.
type SweepReport struct {
	Target SweepTarget `json:"target"`

	// DryRun is set when nothing was removed.
	// +optional
	DryRun bool `json:"dryRun,omitempty"`

	// Kinds holds the counters for each kind, in sweep order.
	Kinds []KindReport `json:"kinds"`

	// Images holds the counters of the image phase.
	Images ImageReport `json:"images"`

	// Deleted is the list of resources deleted during the sweep.
	// +optional
	Deleted []ResourceRef `json:"deleted,omitempty"`

	// Errors is the ordered list of failures.
	// +optional
	Errors []*SweepError `json:"errors,omitempty"`
}

// NewSweepReport returns an empty report with a zero counter for each kind.
func NewSweepReport(target SweepTarget) *SweepReport {
	r := &SweepReport{
		Target: target,
		Kinds:  make([]KindReport, 0, len(SweepOrder)),
	}
	for _, kind := range SweepOrder {
		r.Kinds = append(r.Kinds, KindReport{Kind: kind})
	}
	return r
}

// Kind returns the counters of the given kind.
func (r *SweepReport) Kind(kind ResourceKind) *KindReport {
	for i := range r.Kinds {
		if r.Kinds[i].Kind == kind {
			return &r.Kinds[i]
		}
	}
	r.Kinds = append(r.Kinds, KindReport{Kind: kind})
	return &r.Kinds[len(r.Kinds)-1]
}

// AddError appends a failure to the report.
func (r *SweepReport) AddError(e *SweepError) {
	r.Errors = append(r.Errors, e)
}

// HasErrors returns true if at least one failure was recorded.
func (r *SweepReport) HasErrors() bool {
	return len(r.Errors) > 0
}

// Err returns the recorded failures joined in a single error, or nil.
func (r *SweepReport) Err() error {
	if !r.HasErrors() {
		return nil
	}
	errs := make([]error, 0, len(r.Errors))
	for _, e := range r.Errors {
		errs = append(errs, e)
	}
	return errors.Join(errs...)
}

// ErrorsFor returns the failures recorded in the given phase.
func (r *SweepReport) ErrorsFor(phase SweepPhase) []*SweepError {
	var res []*SweepError
	for _, e := range r.Errors {
		if e.Phase == phase {
			res = append(res, e)
		}
	}
	return res
}

// TotalListed returns the number of resources listed across all kinds.
func (r *SweepReport) TotalListed() int {
	n := 0
	for _, k := range r.Kinds {
		n += k.Listed
	}
	return n
}

// TotalDeleted returns the number of resources deleted across all kinds.
func (r *SweepReport) TotalDeleted() int {
	n := 0
	for _, k := range r.Kinds {
		n += k.Deleted
	}
	return n
}

// Summary returns a one line description of the sweep outcome.
func (r *SweepReport) Summary() string {
	return fmt.Sprintf("%d/%d resource(s) deleted, %d/%d image(s) removed locally, %d/%d tag(s) removed from registry, %d error(s)",
		r.TotalDeleted(), r.TotalListed(),
		r.Images.LocalRemoved, r.Images.Matched,
		r.Images.RemoteRemoved, r.Images.Matched,
		len(r.Errors))
}
