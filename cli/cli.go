package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync/atomic"

	"github.com/alexflint/go-arg"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/thanhnguyen2187/d2-savior/config"
	"github.com/thanhnguyen2187/d2-savior/d2"
	"github.com/thanhnguyen2187/d2-savior/d2/dref"
)

type (
	Args struct {
		Config  string      `help:"path to the YAML config" placeholder:"FILE" default:"d2-savior.yaml"`
		Data    string      `help:"directory with reference tables" placeholder:"DIR"`
		Verbose bool        `arg:"-v" help:"log every decoded record"`
		Convert *ConvertCmd `arg:"subcommand:convert"`
		Batch   *BatchCmd   `arg:"subcommand:batch"`
	}
	ConvertCmd struct {
		From  string `arg:"required" help:"path to source file" placeholder:"hero.d2s"`
		To    string `arg:"required" help:"path to destination file" placeholder:"hero.json"`
		Force bool   `help:"overwrite the destination file"`
	}
	BatchCmd struct {
		Files []string `arg:"positional,required" help:"files to convert, each into FILE.json"`
		Force bool     `help:"overwrite existing destination files"`
	}
)

func (Args) Description() string {
	des := strings.Join(
		[]string{
			"Stay a while and listen.\n",
			"A CLI utility to convert Diablo II character saves (.d2s), PlugY stashes",
			"(.d2x, .sss) and exported items (.d2i) to JSON.",
		},
		"\n",
	)
	des += "\n"
	return des
}

func CheckExistence(path string) bool {
	_, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return false
	}
	return err == nil
}

// LoadConfig reads the config file and applies the global flags on top.
func LoadConfig(args Args) (config.Config, error) {
	cfg, err := config.Load(args.Config)
	if err != nil {
		return cfg, errors.Wrap(err, "cli.LoadConfig error")
	}
	if args.Data != "" {
		cfg.DataDir = args.Data
	}
	if args.Verbose {
		cfg.LogLevel = logrus.DebugLevel.String()
	}
	return cfg, nil
}

func SetupLogging(cfg config.Config) error {
	level, err := cfg.Level()
	if err != nil {
		return errors.Wrap(err, "cli.SetupLogging error")
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return nil
}

// LoadLookup uses the tables in dataDir, or the embedded ones when dataDir
// is empty.
func LoadLookup(dataDir string) (dref.Lookup, error) {
	if dataDir == "" {
		tables, err := dref.LoadEmbedded()
		if err != nil {
			return nil, errors.Wrap(err, "cli.LoadLookup error")
		}
		return tables, nil
	}
	tables, err := dref.Load(os.DirFS(dataDir))
	if err != nil {
		return nil, errors.Wrapf(err, "cli.LoadLookup error: %s", dataDir)
	}
	return tables, nil
}

func OutputPath(path string) string {
	return path + ".json"
}

// Convert decodes one file into JSON at to. The destination is left
// untouched when decoding fails.
func Convert(from string, to string, force bool, lookup dref.Lookup, indent string) error {
	if !CheckExistence(from) {
		return errors.Errorf("source file %s does not exist", from)
	}
	if CheckExistence(to) && !force {
		return errors.Errorf("destination file %s exists, use --force to overwrite it", to)
	}
	decoded, err := d2.DecodeFile(from, lookup)
	if err != nil {
		return errors.Wrap(err, "cli.Convert error")
	}
	bs, err := d2.ToJSON(decoded, indent)
	if err != nil {
		return errors.Wrap(err, "cli.Convert error")
	}
	if err := os.WriteFile(to, bs, 0644); err != nil {
		return errors.Wrapf(err, "cli.Convert error writing %s", to)
	}
	logrus.WithFields(logrus.Fields{
		"from": from,
		"to":   to,
	}).Info("converted")
	return nil
}

// Batch converts files concurrently, at most cfg.Workers at a time. A failed
// file is logged and does not stop the others.
func Batch(ctx context.Context, files []string, force bool, lookup dref.Lookup, cfg config.Config) error {
	files = lo.Uniq(files)
	var failed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for _, file := range files {
		file := file
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := Convert(file, OutputPath(file), force || cfg.Force, lookup, cfg.Indent); err != nil {
				failed.Add(1)
				logrus.WithField("path", file).WithError(err).Error("conversion failed")
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return errors.Wrap(err, "cli.Batch error")
	}
	if n := failed.Load(); n > 0 {
		return errors.Errorf("%d of %d files failed", n, len(files))
	}
	return nil
}

func run(ctx context.Context, args Args) error {
	cfg, err := LoadConfig(args)
	if err != nil {
		return err
	}
	if err := SetupLogging(cfg); err != nil {
		return err
	}
	lookup, err := LoadLookup(cfg.DataDir)
	if err != nil {
		return err
	}

	switch {
	case args.Convert != nil:
		return Convert(args.Convert.From, args.Convert.To, args.Convert.Force || cfg.Force, lookup, cfg.Indent)
	case args.Batch != nil:
		return Batch(ctx, args.Batch.Files, args.Batch.Force, lookup, cfg)
	}
	return nil
}

func Start() {
	args := Args{}
	parser := arg.MustParse(&args)
	if args.Convert == nil && args.Batch == nil {
		parser.WriteHelp(os.Stdout)
		os.Exit(2)
	}

	if err := run(context.Background(), args); err != nil {
		logrus.WithError(err).Error("d2-savior failed")
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
