package cmd

import (
	"context"
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"framecut/application/export"
	"framecut/application/session"
	"framecut/domain/clip"
	"framecut/domain/job"
	"framecut/infrastructure/capture"
	"framecut/infrastructure/filesystem"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"
)

// Prompter interface for interactive prompts (allows mocking in tests)
type Prompter interface {
	Input(message string, defaultValue string) (string, error)
	Confirm(message string, defaultValue bool) (bool, error)
	Select(message string, options []string) (string, error)
}

// SurveyPrompter implements Prompter using the survey library
type SurveyPrompter struct{}

func (p *SurveyPrompter) Input(message string, defaultValue string) (string, error) {
	result := ""
	prompt := &survey.Input{
		Message: message,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &result); err != nil {
		return "", err
	}
	return result, nil
}

func (p *SurveyPrompter) Confirm(message string, defaultValue bool) (bool, error) {
	result := defaultValue
	prompt := &survey.Confirm{
		Message: message,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &result); err != nil {
		return false, err
	}
	return result, nil
}

func (p *SurveyPrompter) Select(message string, options []string) (string, error) {
	result := ""
	prompt := &survey.Select{
		Message: message,
		Options: options,
	}
	if err := survey.AskOne(prompt, &result); err != nil {
		return "", err
	}
	return result, nil
}

// DefaultPrompter is the prompter used in production
var DefaultPrompter Prompter = &SurveyPrompter{}

const (
	actionScrub     = "Scrub to frame"
	actionStepFwd   = "Step forward"
	actionStepBack  = "Step back"
	actionMarkStart = "Mark start here"
	actionMarkEnd   = "Mark end here"
	actionSetStart  = "Set start frame"
	actionSetEnd    = "Set end frame"
	actionSave      = "Save preview image"
	actionTrim      = "Trim selection"
	actionFrames    = "Export selection as stills"
	actionBoth      = "Trim and export stills"
	actionLoad      = "Load another file"
	actionQuit      = "Quit"
)

var interactiveCmd = &cobra.Command{
	Use:   "interactive [path]",
	Short: "Scrub, mark a range, and trim in one session",
	Long: `Open a video, scrub through it frame by frame, mark the start and end
of a range, and run trims or still exports against the marked range
without leaving the session.

Frame decoding needs a build with '-tags=preview'; trimming and still
export work regardless.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInteractive,
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}

func runInteractive(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	ffmpegPath := locateFFmpegOrExit(cfg, os.Stdout)

	sess := session.New(
		capture.NewOpener(cfg.Preview.FallbackFPS),
		filesystem.NewChecker(),
		cfg.AcceptsExtension,
		cfg.Output.ImageFormat,
	)
	defer sess.Close()

	initial := ""
	if len(args) > 0 {
		initial = args[0]
	}

	return RunInteractiveWithDependencies(
		cmd.Context(),
		sess,
		newTranscoder(cfg, ffmpegPath),
		capture.NewRenderer(),
		cfg.Preview.MaxWidth,
		cfg.Preview.MaxHeight,
		DefaultPrompter,
		initial,
		os.Stdout,
	)
}

// RunInteractiveWithDependencies runs the interactive session with injected
// dependencies (for testing).
func RunInteractiveWithDependencies(
	ctx context.Context,
	sess *session.Session,
	transcoder clip.Transcoder,
	renderer clip.Renderer,
	maxWidth, maxHeight int,
	prompter Prompter,
	initialPath string,
	output io.Writer,
) error {
	if initialPath != "" {
		if err := loadInto(sess, initialPath, output); err != nil {
			fmt.Fprintln(output, err)
		}
	}

	for {
		if !sess.Loaded() {
			path, err := prompter.Input("Video file (drag and drop works)", "")
			if err != nil {
				return nil
			}
			if strings.TrimSpace(path) == "" {
				return nil
			}
			if err := loadInto(sess, path, output); err != nil {
				fmt.Fprintln(output, err)
			}
			continue
		}

		printReadout(sess, output)

		choice, err := prompter.Select("Action", []string{
			actionScrub, actionStepFwd, actionStepBack,
			actionMarkStart, actionMarkEnd, actionSetStart, actionSetEnd,
			actionSave, actionTrim, actionFrames, actionBoth,
			actionLoad, actionQuit,
		})
		if err != nil {
			return nil
		}

		switch choice {
		case actionScrub:
			if n, ok := askFrame(prompter, "Go to frame", sess.Selection().Position(), output); ok {
				sess.Selection().SetPosition(n)
			}
		case actionStepFwd:
			sess.Selection().Step(1)
		case actionStepBack:
			sess.Selection().Step(-1)
		case actionMarkStart:
			sess.Selection().MarkStart()
		case actionMarkEnd:
			sess.Selection().MarkEnd()
		case actionSetStart:
			if n, ok := askFrame(prompter, "Start frame", sess.Selection().Start(), output); ok {
				sess.Selection().SetStart(n)
			}
		case actionSetEnd:
			if n, ok := askFrame(prompter, "End frame", sess.Selection().End(), output); ok {
				sess.Selection().SetEnd(n)
			}
		case actionSave:
			if err := savePreview(sess, renderer, maxWidth, maxHeight, output); err != nil {
				fmt.Fprintln(output, err)
			}
		case actionTrim:
			runSessionJob(ctx, sess, transcoder, prompter, clip.ModeTrim, false, output)
		case actionFrames:
			runSessionJob(ctx, sess, transcoder, prompter, clip.ModeFrames, false, output)
		case actionBoth:
			runSessionJob(ctx, sess, transcoder, prompter, clip.ModeTrim, true, output)
		case actionLoad:
			path, err := prompter.Input("Video file (drag and drop works)", "")
			if err != nil || strings.TrimSpace(path) == "" {
				continue
			}
			if err := loadInto(sess, path, output); err != nil {
				fmt.Fprintln(output, err)
			}
		case actionQuit:
			return nil
		}
	}
}

func loadInto(sess *session.Session, raw string, output io.Writer) error {
	path := filesystem.NormalizeDropPath(raw)
	if err := sess.Load(path); err != nil {
		return err
	}
	fmt.Fprintf(output, "Loaded %s: %d frames at %.3f fps\n",
		path, sess.Selection().Total(), sess.FrameRate())
	return nil
}

// printReadout writes the one-line state summary shown before each prompt:
// position as frame index and timestamp, plus the marked range.
func printReadout(sess *session.Session, output io.Writer) {
	sel := sess.Selection()
	rate := sess.FrameRate()
	fmt.Fprintf(output, "\nFrame %d/%d  %s   range [%d, %d]  %s - %s\n",
		sel.Position(), sel.Total()-1,
		clip.FormatDuration(clip.FrameTime(sel.Position(), rate)),
		sel.Start(), sel.End(),
		clip.FormatDuration(clip.FrameTime(sel.Start(), rate)),
		clip.FormatDuration(clip.FrameTime(sel.End(), rate)),
	)
}

// askFrame prompts for a frame index and validates it as a non-negative
// integer. The selection clamps range violations itself, so only the type
// check happens here.
func askFrame(prompter Prompter, message string, current int, output io.Writer) (int, bool) {
	raw, err := prompter.Input(message, strconv.Itoa(current))
	if err != nil {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		fmt.Fprintln(output, &clip.InputValidationError{
			Field:  "frame",
			Reason: fmt.Sprintf("%q is not a non-negative frame number", raw),
		})
		return 0, false
	}
	return n, true
}

func savePreview(sess *session.Session, renderer clip.Renderer, maxWidth, maxHeight int, output io.Writer) error {
	frame, ok := sess.PreviewFrame()
	if !ok {
		return fmt.Errorf("frame %d could not be decoded", sess.Selection().Position())
	}
	defer frame.Close()

	img, err := renderer.Render(frame, maxWidth, maxHeight, true)
	if err != nil {
		return err
	}

	base := strings.TrimSuffix(sess.Path(), filepath.Ext(sess.Path()))
	out := fmt.Sprintf("%s_frame_%04d.png", base, sess.Selection().Position())
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return err
	}
	fmt.Fprintf(output, "Saved %s\n", out)
	return nil
}

// runSessionJob snapshots the current selection into an immutable request
// and runs it; the selection can be edited freely while the job executes.
func runSessionJob(
	ctx context.Context,
	sess *session.Session,
	transcoder clip.Transcoder,
	prompter Prompter,
	mode clip.Mode,
	withFrames bool,
	output io.Writer,
) {
	encoder := clip.EncoderSoftware
	if mode == clip.ModeTrim {
		hw, err := prompter.Confirm("Use the hardware encoder?", false)
		if err != nil {
			return
		}
		if hw {
			encoder = clip.EncoderHardware
		}
	}

	req, err := sess.Snapshot(encoder, mode)
	if err != nil {
		fmt.Fprintln(output, err)
		return
	}

	service := export.NewService(transcoder, job.NewRunner(), output)
	progress := newSpinner(output, "Working")
	defer progress.Dismiss()

	if _, err := service.Run(ctx, req, withFrames, progress.Tick); err != nil {
		progress.Dismiss()
		presentJobError(err, output)
	}
}
