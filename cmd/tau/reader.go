package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/banshee-data/tau.report/internal/gesture/l1pose"
)

// maxLineSize bounds a single recorded frame. A 65-joint skeleton is a few
// kilobytes, so this leaves room for verbose recorders.
const maxLineSize = 4 * 1024 * 1024

// replayEpoch anchors recorded frame times. Only differences matter to the
// engine, so any fixed instant works.
var replayEpoch = time.Unix(0, 0).UTC()

// poseRecord is one line of a recorded session:
//
//	{"t": 0.016, "joints": [{"name": "Hips", "position": [0, 0, 100], "rotation": [0, 0, 0]}]}
//
// t is seconds since the start of the recording. rotation is roll, pitch,
// yaw in degrees and may be omitted.
type poseRecord struct {
	T      *float64      `json:"t"`
	Joints []jointRecord `json:"joints"`
}

type jointRecord struct {
	Name     string     `json:"name"`
	Position [3]float64 `json:"position"`
	Rotation [3]float64 `json:"rotation"`
}

// timedSample is a recorded pose and the instant it was captured.
type timedSample struct {
	At     time.Time
	Sample l1pose.Sample
}

// readRecording parses a JSON Lines recording. Blank lines and lines
// starting with '#' are skipped.
func readRecording(r io.Reader) ([]timedSample, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	var out []timedSample
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		ts, err := parseRecord([]byte(line))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		out = append(out, ts)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read recording: %w", err)
	}
	return out, nil
}

func parseRecord(data []byte) (timedSample, error) {
	var rec poseRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return timedSample{}, fmt.Errorf("decode frame: %w", err)
	}
	if rec.T == nil {
		return timedSample{}, fmt.Errorf("frame has no \"t\" field")
	}
	if math.IsNaN(*rec.T) || math.IsInf(*rec.T, 0) || *rec.T < 0 {
		return timedSample{}, fmt.Errorf("invalid frame time %v", *rec.T)
	}

	joints := make([]l1pose.Joint, len(rec.Joints))
	for i, j := range rec.Joints {
		joints[i] = l1pose.Joint{
			Name:     j.Name,
			Position: r3.Vec{X: j.Position[0], Y: j.Position[1], Z: j.Position[2]},
			Rotation: l1pose.Rotator{Roll: j.Rotation[0], Pitch: j.Rotation[1], Yaw: j.Rotation[2]},
		}
	}
	at := replayEpoch.Add(time.Duration(*rec.T * float64(time.Second)))
	return timedSample{At: at, Sample: l1pose.Sample{Joints: joints}}, nil
}
