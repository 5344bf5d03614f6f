// Command lyxnorm converts raw LaTeX and length specifications into LyX
// markup. It provides single-shot commands and a batch runner with
// golden-digest checks.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/FocuswithJustin/lyxnorm/core/encoding"
	"github.com/FocuswithJustin/lyxnorm/core/length"
	"github.com/FocuswithJustin/lyxnorm/core/lyx"
	"github.com/FocuswithJustin/lyxnorm/internal/archive"
	"github.com/FocuswithJustin/lyxnorm/internal/batch"
	"github.com/FocuswithJustin/lyxnorm/internal/logging"
	"github.com/FocuswithJustin/lyxnorm/internal/validation"
)

const version = "0.1.0"

// Injectable for testing.
var (
	stdin  io.Reader = os.Stdin
	stdout io.Writer = os.Stdout
)

// CLI defines the command-line interface for lyxnorm.
type CLI struct {
	// Global flags
	LogLevel  string `name:"log-level" help:"Log level (debug, info, warn, error)" enum:"debug,info,warn,error" default:"warn" env:"LYXNORM_LOG_LEVEL"`
	LogFormat string `name:"log-format" help:"Log format (json, text)" enum:"json,text" default:"text" env:"LYXNORM_LOG_FORMAT"`

	ERT      ERTCmd      `cmd:"" name:"ert" help:"Wrap raw LaTeX in an ERT inset"`
	Extract  ExtractCmd  `cmd:"" help:"Recover raw LaTeX from ERT inset lines"`
	Length   LengthCmd   `cmd:"" help:"Normalize lengths to LaTeX"`
	Glue     GlueCmd     `cmd:"" help:"Normalize glue lengths (base+stretch-shrink) to LaTeX"`
	BP       BPCmd       `cmd:"" name:"bp" help:"Convert lengths to big points"`
	Translit TranslitCmd `cmd:"" help:"Replace non-ASCII characters with LaTeX commands"`
	Batch    BatchGroup  `cmd:"" help:"Batch conversion and golden digests"`
	Version  VersionCmd  `cmd:"" help:"Print version information"`
}

// BatchGroup contains batch operations.
type BatchGroup struct {
	Run    BatchRunCmd `cmd:"" help:"Run JSONL requests and write a transcript"`
	Golden GoldenGroup `cmd:"" help:"Golden transcript digest operations"`
}

// GoldenGroup contains golden digest operations.
type GoldenGroup struct {
	Save  GoldenSaveCmd  `cmd:"" help:"Save golden transcript digest"`
	Check GoldenCheckCmd `cmd:"" help:"Check transcript against golden digest"`
}

// setupLogging applies the global log flags.
func (c *CLI) setupLogging() error {
	level, err := logging.ParseLevel(c.LogLevel)
	if err != nil {
		return err
	}
	format, err := logging.ParseFormat(c.LogFormat)
	if err != nil {
		return err
	}
	logging.InitLogger(level, format)
	logging.Debug("logging configured", "level", c.LogLevel, "format", c.LogFormat, "version", version)
	return nil
}

func printLines(lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(stdout, line); err != nil {
			return err
		}
	}
	return nil
}

// readInput reads path, or stdin for "" and "-".
func readInput(path string) (string, error) {
	if path == "" || path == archive.StdioPath {
		data, err := io.ReadAll(stdin)
		return string(data), err
	}
	if err := validation.ValidatePath(path); err != nil {
		return "", fmt.Errorf("invalid input path: %w", err)
	}
	data, err := archive.ReadAll(path)
	return string(data), err
}

// ERTCmd wraps raw LaTeX in an ERT inset.
type ERTCmd struct {
	Open      bool     `help:"Use the open inset status instead of collapsed"`
	Paragraph bool     `help:"Wrap the inset in its own Standard paragraph"`
	Cmd       []string `arg:"" optional:"" help:"LaTeX source lines (reads stdin if omitted)"`
}

func (c *ERTCmd) Run() error {
	content := c.Cmd
	if len(content) == 0 {
		text, err := readInput("")
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		content = []string{text}
	}
	if err := validation.ValidateContent(content); err != nil {
		return err
	}

	req := lyx.ERTRequest{Content: content, Open: c.Open, AsParagraph: c.Paragraph}
	lines := req.Lines()
	logging.Conversion(context.Background(), batch.OpERT, strings.Join(content, "\n"), len(lines))
	return printLines(lines)
}

// ExtractCmd recovers raw LaTeX from ERT inset lines.
type ExtractCmd struct {
	File string `arg:"" optional:"" help:"LyX fragment containing an ERT inset (reads stdin if omitted)"`
}

func (c *ExtractCmd) Run() error {
	text, err := readInput(c.File)
	if err != nil {
		return err
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")

	raw, err := lyx.ERTText(lines)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(stdout, raw)
	return err
}

// convertSpecs applies fn to every spec, printing results and logging
// failures. It reports an error if any spec failed.
func convertSpecs(op string, specs []string, fn func(string) (string, error)) error {
	ctx := context.Background()
	failed := 0
	for _, spec := range specs {
		err := validation.ValidateSpec(spec)
		var out string
		if err == nil {
			out, err = fn(spec)
		}
		if err != nil {
			failed++
			logging.ConversionError(ctx, op, spec, err)
			fmt.Fprintf(os.Stderr, "%s: %v\n", spec, err)
			continue
		}
		logging.Conversion(ctx, op, spec, 1)
		if _, err := fmt.Fprintln(stdout, out); err != nil {
			return err
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d %s conversions failed", failed, len(specs), op)
	}
	return nil
}

func relativeLine(fn func(string) (bool, string, error)) func(string) (string, error) {
	return func(spec string) (string, error) {
		relative, value, err := fn(spec)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%t\t%s", relative, value), nil
	}
}

// LengthCmd normalizes lengths.
type LengthCmd struct {
	Specs []string `arg:"" name:"spec" help:"Length specifications, e.g. -30.5col% or 11em"`
}

func (c *LengthCmd) Run() error {
	return convertSpecs(batch.OpLength, c.Specs, relativeLine(length.Normalize))
}

// GlueCmd normalizes glue lengths.
type GlueCmd struct {
	Specs []string `arg:"" name:"spec" help:"Glue specifications, e.g. 1pt+2pt-1pt"`
}

func (c *GlueCmd) Run() error {
	return convertSpecs(batch.OpGlue, c.Specs, relativeLine(length.Glue))
}

// BPCmd converts lengths to big points.
type BPCmd struct {
	Specs []string `arg:"" name:"spec" help:"Length specifications"`
}

func (c *BPCmd) Run() error {
	return convertSpecs(batch.OpBP, c.Specs, length.InBP)
}

// TranslitCmd replaces non-ASCII characters with LaTeX commands.
type TranslitCmd struct {
	Text []string `arg:"" optional:"" help:"Text to transliterate (reads stdin if omitted)"`
}

func (c *TranslitCmd) Run() error {
	if len(c.Text) > 0 {
		return printLines([]string{encoding.Transliterate(strings.Join(c.Text, " "))})
	}
	text, err := readInput("")
	if err != nil {
		return fmt.Errorf("failed to read stdin: %w", err)
	}
	_, err = io.WriteString(stdout, encoding.Transliterate(text))
	return err
}

// BatchRunCmd runs JSONL requests and writes a transcript.
type BatchRunCmd struct {
	Input     string `arg:"" help:"JSONL request file (.xz and .gz accepted, - for stdin)"`
	Out       string `required:"" help:"Output transcript path (.xz and .gz accepted, - for stdout)"`
	Workers   int    `help:"Concurrent requests (0 uses all CPUs)" default:"0" env:"LYXNORM_WORKERS"`
	CacheSize int    `name:"cache-size" help:"Memoized distinct requests (0 default, negative disables)" default:"0"`
}

func (c *BatchRunCmd) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, err := batch.RunFile(ctx, c.Input, c.Out, batch.Options{Workers: c.Workers, CacheSize: c.CacheSize})
	if err != nil {
		return err
	}
	if c.Out == archive.StdioPath {
		return nil
	}

	fmt.Fprintf(stdout, "Transcript: %s\n", c.Out)
	fmt.Fprintf(stdout, "  Run:      %s\n", res.RunID)
	fmt.Fprintf(stdout, "  Requests: %d (%d failed)\n", res.Total, res.Failed)
	fmt.Fprintf(stdout, "  Cached:   %d\n", res.CacheHits)
	fmt.Fprintf(stdout, "  Digest:   %s\n", res.Digest)

	transcript := &batch.Transcript{Events: res.Events, Path: c.Out}
	for _, ev := range transcript.Errors() {
		fmt.Fprintf(stdout, "  ERROR %d (%s): %s\n", ev.Seq, ev.Op, ev.Error)
	}
	return nil
}

// GoldenSaveCmd saves the transcript digest to a golden file.
type GoldenSaveCmd struct {
	Transcript string `arg:"" help:"Transcript to record" type:"existingfile"`
	Out        string `required:"" help:"Output golden digest file path" type:"path"`
}

func (c *GoldenSaveCmd) Run() error {
	if err := validation.ValidatePath(c.Out); err != nil {
		return fmt.Errorf("invalid output path: %w", err)
	}
	digest, err := batch.SaveGolden(c.Transcript, c.Out)
	if err != nil {
		return err
	}
	logging.Info("golden_saved", "transcript", c.Transcript, "golden", c.Out, "digest", digest)
	fmt.Fprintf(stdout, "Golden saved: %s\n", c.Out)
	fmt.Fprintf(stdout, "  Digest: %s\n", digest)
	return nil
}

// GoldenCheckCmd checks a transcript against a golden digest.
type GoldenCheckCmd struct {
	Transcript string `arg:"" help:"Transcript to check" type:"existingfile"`
	Golden     string `required:"" help:"Golden digest file to check against" type:"existingfile"`
}

func (c *GoldenCheckCmd) Run() error {
	check, err := batch.CheckGolden(c.Transcript, c.Golden)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Checking against golden: %s\n", c.Golden)
	fmt.Fprintf(stdout, "  Run: %s (%d failed)\n", check.RunID, check.Failed)
	fmt.Fprintf(stdout, "  %s\n", check)
	if !check.Match() {
		logging.Warn("golden_mismatch", "transcript", c.Transcript, "golden", check.Golden, "actual", check.Actual)
		return fmt.Errorf("transcript %s does not match golden %s", c.Transcript, c.Golden)
	}
	return nil
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Fprintf(stdout, "lyxnorm version %s\n", version)
	return nil
}

func kongOptions() []kong.Option {
	return []kong.Option{
		kong.Name("lyxnorm"),
		kong.Description("LyX markup normalization: ERT insets, lengths and transliteration"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	}
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli, kongOptions()...)
	ctx.FatalIfErrorf(cli.setupLogging())
	err := ctx.Run(ctx)
	if err != nil {
		logging.Error("command failed", "command", ctx.Command(), "error", err)
	}
	ctx.FatalIfErrorf(err)
}
