// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package telemetry records click and view events without ever slowing
// down or failing the request that produced them.
package telemetry

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// Sink is the storage side of the recorder, satisfied by
// store.AnalyticsStore.
type Sink interface {
	InsertClick(linkID uuid.UUID) error
	InsertView(profileID uuid.UUID) error
}

// Recorder writes telemetry asynchronously. Insert errors are logged
// and dropped.
type Recorder struct {
	sink Sink
	wg   sync.WaitGroup
}

// NewRecorder creates a Recorder backed by the given sink.
func NewRecorder(sink Sink) *Recorder {
	return &Recorder{sink: sink}
}

// RecordClick registers a click on a link. Returns immediately.
func (r *Recorder) RecordClick(linkID uuid.UUID) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		if err := r.sink.InsertClick(linkID); err != nil {
			slog.Warn("telemetry: click insert failed", "link_id", linkID, "error", err)
		}
	}()
}

// RecordView registers a profile page view. Same-day repeats are
// deduplicated by the sink. Returns immediately.
func (r *Recorder) RecordView(profileID uuid.UUID) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		if err := r.sink.InsertView(profileID); err != nil {
			slog.Warn("telemetry: view insert failed", "profile_id", profileID, "error", err)
		}
	}()
}

// Flush blocks until all in-flight writes complete. Called on shutdown
// and from tests.
func (r *Recorder) Flush() {
	r.wg.Wait()
}
