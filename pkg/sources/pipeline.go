package sources

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	stageRecordingReady = "recording_ready"
	stageUnknown        = "unknown"
	maxNextToRecord     = 5
)

// Channel directory -> display code.
var pipelineChannels = []struct {
	dir  string
	code string
}{
	{"channel-curator", "cc"},
	{"channel-pioneers", "pioneers"},
	{"channel-highestaura", "ha"},
	{"channel-zendo", "zendo"},
}

// PipelineVideo is a video ready to record.
type PipelineVideo struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Channel string `json:"channel"`
}

// Pipeline summarizes the active content pipeline.
type Pipeline struct {
	TotalActive   int             `json:"total_active"`
	ReadyToRecord int             `json:"ready_to_record"`
	ByStage       map[string]int  `json:"by_stage"`
	ByChannel     map[string]int  `json:"by_channel"`
	NextToRecord  []PipelineVideo `json:"next_to_record"`
}

type videoState struct {
	Stage  string `yaml:"stage"`
	Status string `yaml:"status"`
	Title  string `yaml:"title"`
}

// PipelineDir scans <Root>/<channel>/active/<video>/state.yaml.
type PipelineDir struct {
	Root string
}

func (p *PipelineDir) Fetch(ctx context.Context) Result[Pipeline] {
	if p.Root == "" {
		return Disabled(Pipeline{})
	}
	if _, err := os.Stat(p.Root); errors.Is(err, fs.ErrNotExist) {
		return Disabled(Pipeline{})
	}

	v, err := p.scan(ctx)
	if err != nil {
		return Failed(Pipeline{}, err)
	}
	return OK(v)
}

func (p *PipelineDir) scan(ctx context.Context) (Pipeline, error) {
	out := Pipeline{
		ByStage:      make(map[string]int),
		ByChannel:    make(map[string]int),
		NextToRecord: []PipelineVideo{},
	}

	for _, ch := range pipelineChannels {
		if err := ctx.Err(); err != nil {
			return Pipeline{}, err
		}
		active := filepath.Join(p.Root, ch.dir, "active")
		entries, err := os.ReadDir(active)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return Pipeline{}, fmt.Errorf("reading %s: %w", active, err)
		}

		count := 0
		for _, e := range entries {
			if !e.IsDir() || strings.HasPrefix(e.Name(), "_") {
				continue
			}
			state, ok := readVideoState(filepath.Join(active, e.Name(), "state.yaml"))
			if !ok {
				continue
			}

			stage := firstNonEmpty(state.Stage, state.Status, stageUnknown)
			out.TotalActive++
			count++
			out.ByStage[stage]++

			if stage == stageRecordingReady {
				out.ReadyToRecord++
				out.NextToRecord = append(out.NextToRecord, PipelineVideo{
					ID:      VideoID(e.Name()),
					Title:   state.Title,
					Channel: ch.code,
				})
			}
		}
		out.ByChannel[ch.code] = count
	}

	sort.SliceStable(out.NextToRecord, func(i, j int) bool {
		return out.NextToRecord[i].ID < out.NextToRecord[j].ID
	})
	if len(out.NextToRecord) > maxNextToRecord {
		out.NextToRecord = out.NextToRecord[:maxNextToRecord]
	}
	return out, nil
}

func readVideoState(path string) (videoState, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return videoState{}, false
	}
	var s videoState
	if err := yaml.Unmarshal(data, &s); err != nil {
		slog.Debug("skipping unreadable state.yaml", "path", path, "err", err)
		return videoState{}, false
	}
	return s, true
}

// VideoID keeps the first two dash-separated parts of a folder name:
// "CC-013-n8n-agent-builder" -> "CC-013".
func VideoID(folder string) string {
	parts := strings.SplitN(folder, "-", 3)
	if len(parts) < 2 {
		return folder
	}
	return parts[0] + "-" + parts[1]
}
