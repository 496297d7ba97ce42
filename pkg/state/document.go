// Package state assembles the board snapshot from the schedule documents,
// the keystone engine and the external sources.
package state

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/stefanpenner/focusboard/pkg/keystone"
	"github.com/stefanpenner/focusboard/pkg/schedule"
	"github.com/stefanpenner/focusboard/pkg/sources"
	"github.com/stefanpenner/focusboard/pkg/store"
)

// SyncVersion is bumped whenever the document's field set changes.
// Consumers must tolerate fields they do not know.
const SyncVersion = 3

// Source names used in Document.Sources.
const (
	SourceCalendar  = "calendar"
	SourceWeather   = "weather"
	SourceReminders = "reminders"
	SourceHabits    = "habits"
	SourcePipeline  = "pipeline"
	SourceSystem    = "system"
)

type Meta struct {
	SyncVersion int  `json:"sync_version"`
	NoSchedule  bool `json:"no_schedule"`
	AllDone     bool `json:"all_done"`
}

// Document is the snapshot consumed by the display. Every run replaces it
// wholesale.
type Document struct {
	GeneratedAt    string                    `json:"generated_at"`
	Date           string                    `json:"date"`
	DayLabel       string                    `json:"day_label"`
	Now            schedule.Now              `json:"now"`
	Blocks         []schedule.Block          `json:"blocks"`
	Keystones      []keystone.Keystone       `json:"keystones"`
	SOPTasks       []schedule.SOPTask        `json:"sop_tasks"`
	DoneToday      []string                  `json:"done_today"`
	TomorrowFocus  schedule.Focus            `json:"tomorrow_focus"`
	RecordingReady schedule.RecordingReady   `json:"recording_ready"`
	BacklogNext    schedule.BacklogItem      `json:"backlog_next"`
	TaskCounts     schedule.TaskCounts       `json:"task_counts"`
	DailyLog       schedule.DailyLog         `json:"daily_log"`
	Quote          string                    `json:"quote"`
	Calendar       []sources.Event           `json:"calendar"`
	CalendarLegend []sources.LegendEntry     `json:"calendar_legend"`
	Weather        sources.Weather           `json:"weather"`
	Reminders      sources.Reminders         `json:"reminders"`
	Habits         sources.Habits            `json:"habits"`
	Pipeline       sources.Pipeline          `json:"pipeline"`
	System         sources.System            `json:"system"`
	Sources        map[string]sources.Status `json:"sources"`
	Meta           Meta                      `json:"meta"`
}

// present reports whether the named source produced a value this run.
func (d Document) present(name string) bool {
	s := d.Sources[name]
	return s == sources.StatusOK || s == sources.StatusCached
}

// section returns v, or an empty object when the source had nothing to give.
func (d Document) section(name string, v any) any {
	if d.present(name) {
		return v
	}
	return struct{}{}
}

// MarshalJSON writes weather, habits and pipeline as {} unless their source
// succeeded, so a real zero reading is never mistaken for a missing one.
func (d Document) MarshalJSON() ([]byte, error) {
	type wire Document
	out := struct {
		wire
		Weather  any `json:"weather"`
		Habits   any `json:"habits"`
		Pipeline any `json:"pipeline"`
	}{
		wire:     wire(d),
		Weather:  d.section(SourceWeather, d.Weather),
		Habits:   d.section(SourceHabits, d.Habits),
		Pipeline: d.section(SourcePipeline, d.Pipeline),
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(out); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Encode renders the document as indented JSON with a trailing newline.
// Non-ASCII text and HTML characters are written as-is.
func (d *Document) Encode() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return nil, fmt.Errorf("encoding state: %w", err)
	}
	return buf.Bytes(), nil
}

// Write encodes the document to path, creating parent directories and
// replacing any previous file atomically.
func (d *Document) Write(path string) error {
	data, err := d.Encode()
	if err != nil {
		return err
	}
	if err := store.WriteFileAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf("writing state: %w", err)
	}
	return nil
}
