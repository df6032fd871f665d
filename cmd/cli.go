package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fzft/go-resp-decode/deps/linenoise"
	"github.com/fzft/go-resp-decode/log"
	"github.com/fzft/go-resp-decode/resp"
	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"
	"go.uber.org/zap"
)

var RespCliVersion = "0.1.0"

// Prompter is the line editor used by interactive mode.
type Prompter interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
	HistoryLoad(filepath string) error
	HistorySave(filepath string) error
	ClearScreen() error
	Close() error
}

type RespCli struct {
	config  RespCliCfg
	decoder *resp.Decoder
	format  resp.Format
	prompt  string

	gitSHA1  string
	gitDirty string
	buildID  string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	NewPrompter func() Prompter
}

func NewCli(gitSHA1, gitDirty, buildID string) *RespCli {
	return &RespCli{
		gitSHA1:  gitSHA1,
		gitDirty: gitDirty,
		buildID:  buildID,
		Stdin:    os.Stdin,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		NewPrompter: func() Prompter {
			return linenoise.New()
		},
	}
}

func (cli *RespCli) Version() string {
	version := RespCliVersion
	// Add git commit and working tree status when available
	if cli.gitSHA1 != "" && cli.gitSHA1 != "unknown" && strings.Trim(cli.gitSHA1, "0") != "" {
		version = fmt.Sprintf("%s (git:%s", version, cli.gitSHA1)
		if dirty, err := strconv.Atoi(cli.gitDirty); err == nil && dirty != 0 {
			version = fmt.Sprintf("%s-dirty", version)
		}
		version = fmt.Sprintf("%s)", version)
	}
	if cli.buildID != "" {
		version = fmt.Sprintf("%s build=%s", version, cli.buildID)
	}
	return version
}

func (cli *RespCli) usage(fs *flag.FlagSet) {
	out := fs.Output()
	fmt.Fprintf(out, "respdump %s\n\n", cli.Version())
	fmt.Fprintf(out, "Usage: respdump [OPTIONS] [file ...]\n")
	fmt.Fprintf(out, "  Decodes every RESP frame in each file, or in stdin when no file or \"-\" is given.\n\n")
	fs.PrintDefaults()
}

// Run parses args, then decodes the inputs or starts interactive mode.
func (cli *RespCli) Run(args []string) error {
	cfg := DefaultConfig()

	fs := flag.NewFlagSet("respdump", flag.ContinueOnError)
	fs.SetOutput(cli.Stderr)
	var (
		configPath  = fs.String("c", os.Getenv(RespCliConfigEnv), "TOML config `file`")
		raw         = fs.Bool("raw", false, "use raw formatting (default when stdout is not a tty)")
		noRaw       = fs.Bool("no-raw", false, "force formatted output even when stdout is not a tty")
		tree        = fs.Bool("tree", false, "print the type of every value as a tree")
		escapes     = fs.Bool("e", false, "interpret \\r \\n \\t \\\\ \\xHH escapes in the input")
		strict      = fs.Bool("strict", false, "reject bulk payloads whose length differs from the declared one")
		maxDepth    = fs.Int("max-depth", 0, "maximum array nesting `depth`")
		interactive = fs.Bool("i", false, "read frames interactively, one per line")
		logLevel    = fs.String("log-level", "", "log `level` (debug, info, warn, error)")
		version     = fs.Bool("version", false, "output version and exit")
	)
	fs.Usage = func() { cli.usage(fs) }

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return ErrUsage
	}
	if *version {
		fmt.Fprintf(cli.Stdout, "respdump %s\n", cli.Version())
		return nil
	}

	if *configPath != "" {
		if err := LoadConfig(*configPath, &cfg); err != nil {
			return err
		}
	}
	applyEnvOverrides(&cfg)

	// flags win over the config file and the environment
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "raw":
			if *raw {
				cfg.Output = resp.FormatRaw.String()
			}
		case "no-raw":
			if *noRaw {
				cfg.Output = resp.FormatStandard.String()
			}
		case "tree":
			if *tree {
				cfg.Output = resp.FormatTree.String()
			}
		case "e":
			cfg.Escapes = *escapes
		case "strict":
			cfg.Limits.StrictBulkLength = *strict
		case "max-depth":
			cfg.Limits.MaxDepth = *maxDepth
		case "i":
			cfg.Interactive = *interactive
		case "log-level":
			cfg.LogLevel = *logLevel
		}
	})
	if cfg.Limits.MaxDepth <= 0 {
		fmt.Fprintf(cli.Stderr, "invalid max depth %d\n", cfg.Limits.MaxDepth)
		return ErrUsage
	}

	if err := log.InitLogger(cfg.LogLevel); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = log.Logger.Sync() }()

	cli.config = cfg
	cli.decoder = resp.NewDecoder(cfg.Limits)
	format, err := cli.outputFormat()
	if err != nil {
		return err
	}
	cli.format = format

	if cfg.Interactive {
		return cli.repl()
	}
	return cli.decodeInputs(fs.Args())
}

func (cli *RespCli) outputFormat() (resp.Format, error) {
	if cli.config.Output != "" {
		return resp.ParseFormat(cli.config.Output)
	}
	if isTerminal(cli.Stdout) {
		return resp.FormatStandard, nil
	}
	return resp.FormatRaw, nil
}

func (cli *RespCli) decodeInputs(names []string) error {
	if len(names) == 0 {
		names = []string{"-"}
	}

	var errs MultiError
	for _, name := range names {
		if err := cli.decodeInput(name); err != nil {
			errs = append(errs, err)
		}
	}
	return errs.ErrOrNil()
}

func (cli *RespCli) decodeInput(name string) error {
	data, err := cli.readInput(name)
	if err != nil {
		return err
	}
	if cli.config.Escapes {
		data, err = unescape(strings.TrimRight(string(data), "\r\n"))
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}

	id := uuid.New()
	values, err := cli.decoder.DecodeAll(data)
	for _, v := range values {
		if err := resp.Fprint(cli.Stdout, v, cli.format); err != nil {
			return err
		}
	}
	if err != nil {
		log.Logger.Error("decode failed",
			zap.String("id", id.String()),
			zap.String("input", name),
			zap.Int("frames", len(values)),
			zap.Error(err))
		return fmt.Errorf("%s: %w", name, err)
	}

	log.Logger.Debug("decoded input",
		zap.String("id", id.String()),
		zap.String("input", name),
		zap.Int("bytes", len(data)),
		zap.Int("frames", len(values)))
	return nil
}

func (cli *RespCli) readInput(name string) ([]byte, error) {
	if name == "-" {
		data, err := io.ReadAll(cli.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return data, nil
}

func (cli *RespCli) repl() error {
	var historyFile string

	ln := cli.NewPrompter()
	defer ln.Close()

	if isTerminal(cli.Stdin) {
		historyFile = cli.config.HistoryFile
		if historyFile == "" {
			historyFile = getDotfilePath(RespCliHisFileEnv, RespCliHisFileDefault)
		}
		if historyFile != "" {
			if err := ln.HistoryLoad(historyFile); err != nil && !errors.Is(err, os.ErrNotExist) {
				log.Logger.Warn("history load failed", zap.String("file", historyFile), zap.Error(err))
			}
		}
	}

	cli.refreshPrompt()
	for {
		line, err := ln.Prompt(cli.prompt)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		ln.AppendHistory(line)
		if historyFile != "" {
			if err := ln.HistorySave(historyFile); err != nil {
				log.Logger.Warn("history save failed", zap.String("file", historyFile), zap.Error(err))
			}
		}

		switch {
		case strings.EqualFold(line, "quit") || strings.EqualFold(line, "exit"):
			return nil
		case strings.EqualFold(line, "clear"):
			if err := ln.ClearScreen(); err != nil {
				log.Logger.Debug("clear screen failed", zap.Error(err))
			}
		case isPreference(line):
			cli.setPreference(line)
		default:
			cli.evalLine(line)
		}
	}
}

// isPreference tells ":raw" apart from an integer frame like ":1".
func isPreference(line string) bool {
	if len(line) < 2 || line[0] != ':' {
		return false
	}
	c := line[1]
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func (cli *RespCli) setPreference(line string) {
	argv := strings.Fields(line[1:])
	switch strings.ToLower(argv[0]) {
	case "raw":
		cli.format = resp.FormatRaw
	case "standard", "no-raw":
		cli.format = resp.FormatStandard
	case "tree":
		cli.format = resp.FormatTree
	case "strict":
		on := true
		if len(argv) > 1 {
			v, ok := parseSwitch(argv[1])
			if !ok {
				fmt.Fprintf(cli.Stdout, "Invalid value '%s' for :strict\n", argv[1])
				return
			}
			on = v
		}
		limits := cli.decoder.Limits()
		limits.StrictBulkLength = on
		cli.decoder = resp.NewDecoder(limits)
	default:
		fmt.Fprintf(cli.Stdout, "Unknown preference '%s'\n", argv[0])
		return
	}
	cli.refreshPrompt()
}

func parseSwitch(raw string) (bool, bool) {
	switch strings.ToLower(raw) {
	case "on", "yes":
		return true, true
	case "off", "no":
		return false, true
	}
	return parseBool(raw)
}

func (cli *RespCli) evalLine(line string) {
	data, err := unescape(line)
	if err != nil {
		fmt.Fprintf(cli.Stdout, "(error) %v\n", err)
		return
	}

	values, err := cli.decoder.DecodeAll(data)
	for _, v := range values {
		_ = resp.Fprint(cli.Stdout, v, cli.format)
	}
	if err != nil {
		fmt.Fprintf(cli.Stdout, "(error) %v\n", err)
	}
}

func (cli *RespCli) refreshPrompt() {
	prompt := "resp"
	if cli.format != resp.FormatStandard {
		prompt = fmt.Sprintf("%s[%s]", prompt, cli.format)
	}
	if cli.decoder != nil && cli.decoder.Limits().StrictBulkLength {
		prompt = fmt.Sprintf("%s[strict]", prompt)
	}
	cli.prompt = fmt.Sprintf("%s> ", prompt)
}

func isTerminal(v interface{}) bool {
	f, ok := v.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}
