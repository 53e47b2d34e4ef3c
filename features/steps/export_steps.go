//go:build integration

package steps

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"

	"framecut/cmd"
	"framecut/domain/clip"

	"github.com/cucumber/godog"
)

// mockTranscoder records trim and still-export invocations for verification
type mockTranscoder struct {
	mu          sync.Mutex
	trimCalls   []clip.Request
	framesCalls []clip.Request
	shouldFail  bool
	failError   error
}

func (m *mockTranscoder) Trim(ctx context.Context, req clip.Request) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.shouldFail {
		return m.failError
	}
	m.trimCalls = append(m.trimCalls, req)
	return nil
}

func (m *mockTranscoder) ExportFrames(ctx context.Context, req clip.Request) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.shouldFail {
		return m.failError
	}
	m.framesCalls = append(m.framesCalls, req)
	return nil
}

func (m *mockTranscoder) snapshot() (trims, frames []clip.Request) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]clip.Request(nil), m.trimCalls...), append([]clip.Request(nil), m.framesCalls...)
}

// exportContext holds test state for trim/export scenarios
type exportContext struct {
	sourcePath string
	frameRate  float64
	transcoder *mockTranscoder
	output     *bytes.Buffer
	err        error
}

// SharedExportContext is reset before each scenario via Before hook
var SharedExportContext *exportContext

func getExportContext() *exportContext {
	return SharedExportContext
}

func InitializeExportScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		SharedExportContext = &exportContext{
			transcoder: &mockTranscoder{},
			output:     &bytes.Buffer{},
		}
		return c, nil
	})

	ctx.After(func(c context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		SharedExportContext = nil
		return c, nil
	})

	ctx.Step(`^a source video at "([^"]*)" with frame rate (\d+)$`, aSourceVideoAtWithFrameRate)
	ctx.Step(`^the transcoder fails with diagnostic "([^"]*)"$`, theTranscoderFailsWithDiagnostic)
	ctx.Step(`^I trim frames (\d+) to (\d+) with the "([^"]*)" encoder$`, iTrimFramesWithEncoder)
	ctx.Step(`^I trim frames (\d+) to (\d+) and also export stills$`, iTrimFramesAndAlsoExportStills)
	ctx.Step(`^I export frames (\d+) to (\d+) as stills$`, iExportFramesAsStills)
	ctx.Step(`^the trimmed file should be created at "([^"]*)"$`, theTrimmedFileShouldBeCreatedAt)
	ctx.Step(`^the trim should have used frames (\d+) to (\d+)$`, theTrimShouldHaveUsedFrames)
	ctx.Step(`^the stills should land in "([^"]*)"$`, theStillsShouldLandIn)
	ctx.Step(`^the still export should reuse frames (\d+) to (\d+)$`, theStillExportShouldReuseFrames)
	ctx.Step(`^the command should fail$`, theCommandShouldFail)
	ctx.Step(`^the output should mention "([^"]*)"$`, theOutputShouldMention)
	ctx.Step(`^no trim should run$`, noTrimShouldRun)
	ctx.Step(`^no still export should run$`, noStillExportShouldRun)
}

func aSourceVideoAtWithFrameRate(path string, rate int) error {
	e := getExportContext()
	e.sourcePath = path
	e.frameRate = float64(rate)
	return nil
}

func theTranscoderFailsWithDiagnostic(diagnostic string) error {
	e := getExportContext()
	e.transcoder.shouldFail = true
	e.transcoder.failError = &clip.JobExecutionError{
		Mode:       "trim",
		Diagnostic: diagnostic,
		Err:        fmt.Errorf("exit status 1"),
	}
	return nil
}

func iTrimFramesWithEncoder(start, end int, encoder string) error {
	e := getExportContext()
	e.err = cmd.RunTrimWithDependencies(
		context.Background(), e.transcoder,
		e.sourcePath, start, end, e.frameRate, encoder, false, "png", e.output,
	)
	return nil
}

func iTrimFramesAndAlsoExportStills(start, end int) error {
	e := getExportContext()
	e.err = cmd.RunTrimWithDependencies(
		context.Background(), e.transcoder,
		e.sourcePath, start, end, e.frameRate, "software", true, "png", e.output,
	)
	return nil
}

func iExportFramesAsStills(start, end int) error {
	e := getExportContext()
	e.err = cmd.RunFramesWithDependencies(
		context.Background(), e.transcoder,
		e.sourcePath, start, end, "png", e.output,
	)
	return nil
}

func theTrimmedFileShouldBeCreatedAt(expected string) error {
	e := getExportContext()
	if e.err != nil {
		return fmt.Errorf("expected success, got error: %v", e.err)
	}
	trims, _ := e.transcoder.snapshot()
	if len(trims) != 1 {
		return fmt.Errorf("expected exactly one trim call, got %d", len(trims))
	}
	if got := trims[0].TrimOutputPath(); got != expected {
		return fmt.Errorf("expected trim output %q, got %q", expected, got)
	}
	return nil
}

func theTrimShouldHaveUsedFrames(start, end int) error {
	e := getExportContext()
	trims, _ := e.transcoder.snapshot()
	if len(trims) != 1 {
		return fmt.Errorf("expected exactly one trim call, got %d", len(trims))
	}
	if trims[0].Start != start || trims[0].End != end {
		return fmt.Errorf("expected frames [%d, %d], got [%d, %d]", start, end, trims[0].Start, trims[0].End)
	}
	return nil
}

func theStillsShouldLandIn(expected string) error {
	e := getExportContext()
	if e.err != nil {
		return fmt.Errorf("expected success, got error: %v", e.err)
	}
	_, frames := e.transcoder.snapshot()
	if len(frames) != 1 {
		return fmt.Errorf("expected exactly one still-export call, got %d", len(frames))
	}
	if got := frames[0].FramesDir(); got != expected {
		return fmt.Errorf("expected frames directory %q, got %q", expected, got)
	}
	return nil
}

func theStillExportShouldReuseFrames(start, end int) error {
	e := getExportContext()
	_, frames := e.transcoder.snapshot()
	if len(frames) != 1 {
		return fmt.Errorf("expected exactly one still-export call, got %d", len(frames))
	}
	if frames[0].Start != start || frames[0].End != end {
		return fmt.Errorf("expected frames [%d, %d], got [%d, %d]", start, end, frames[0].Start, frames[0].End)
	}
	if frames[0].Mode != clip.ModeFrames {
		return fmt.Errorf("expected chained request in frames mode, got %s", frames[0].Mode)
	}
	return nil
}

func theCommandShouldFail() error {
	e := getExportContext()
	if e.err == nil {
		return fmt.Errorf("expected an error, command succeeded")
	}
	return nil
}

func theOutputShouldMention(text string) error {
	e := getExportContext()
	if !strings.Contains(e.output.String(), text) {
		return fmt.Errorf("output does not mention %q:\n%s", text, e.output.String())
	}
	return nil
}

func noTrimShouldRun() error {
	e := getExportContext()
	trims, _ := e.transcoder.snapshot()
	if len(trims) != 0 {
		return fmt.Errorf("expected no trim calls, got %d", len(trims))
	}
	return nil
}

func noStillExportShouldRun() error {
	e := getExportContext()
	_, frames := e.transcoder.snapshot()
	if len(frames) != 0 {
		return fmt.Errorf("expected no still-export calls, got %d", len(frames))
	}
	return nil
}
