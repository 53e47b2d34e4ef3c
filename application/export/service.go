// Package export coordinates trim and still-export jobs: it hands a
// captured Request to the background runner and, for a trim with chained
// frames, launches the second job from the first one's completion.
package export

import (
	"context"
	"fmt"
	"io"
	"time"

	"framecut/domain/clip"
	"framecut/domain/job"
)

// Result reports what a finished run produced.
type Result struct {
	TrimPath  string
	FramesDir string
}

// Service drives jobs for Request snapshots.
type Service struct {
	transcoder clip.Transcoder
	runner     *job.Runner
	output     io.Writer
}

// NewService creates an export service.
func NewService(transcoder clip.Transcoder, runner *job.Runner, output io.Writer) *Service {
	return &Service{transcoder: transcoder, runner: runner, output: output}
}

// Run executes the job described by req on the background runner and waits
// on the interactive goroutine for its completion. For a ModeTrim request
// with chainFrames set, the success completion launches the still export
// with the same captured bounds before Run returns — strictly sequential,
// never concurrent.
//
// onTick, if non-nil, is invoked periodically while a job is running so the
// caller can animate its progress indicator; the indicator is the caller's
// to dismiss on both success and failure paths.
func (s *Service) Run(ctx context.Context, req clip.Request, chainFrames bool, onTick func()) (*Result, error) {
	if req.Mode == clip.ModeFrames && chainFrames {
		chainFrames = false
	}

	if _, err := s.runner.Start(ctx, req, s.task(req.Mode)); err != nil {
		return nil, err
	}

	result := &Result{}
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if onTick != nil {
				onTick()
			}
		case completion := <-s.runner.Completions():
			if completion.Err != nil {
				return result, completion.Err
			}

			switch completion.Request.Mode {
			case clip.ModeTrim:
				result.TrimPath = completion.Request.TrimOutputPath()
				fmt.Fprintf(s.output, "Created: %s\n", result.TrimPath)
				if !chainFrames {
					return result, nil
				}
				// Chain the still export from the trim completion using
				// the captured snapshot, never the live selection.
				chained := completion.Request.WithMode(clip.ModeFrames)
				if _, err := s.runner.Start(ctx, chained, s.task(clip.ModeFrames)); err != nil {
					return result, err
				}
			case clip.ModeFrames:
				result.FramesDir = completion.Request.FramesDir()
				fmt.Fprintf(s.output, "Exported frames to: %s\n", result.FramesDir)
				return result, nil
			}
		}
	}
}

func (s *Service) task(mode clip.Mode) job.Task {
	if mode == clip.ModeFrames {
		return s.transcoder.ExportFrames
	}
	return s.transcoder.Trim
}
