// Package commands builds the fixturectl command line application.
package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/urfave/cli/v2"

	"github.com/yigit/uniconnect-fixtures/internal/app/models"
	"github.com/yigit/uniconnect-fixtures/internal/app/models/dto"
	"github.com/yigit/uniconnect-fixtures/internal/bootstrap"
	"github.com/yigit/uniconnect-fixtures/internal/config"
	"github.com/yigit/uniconnect-fixtures/internal/seed"
)

// ExitValidationFailed is returned when a report or integrity check finds problems
const ExitValidationFailed = 1

// runner carries the dependencies built in the Before hook to every action
type runner struct {
	deps *bootstrap.Dependencies
}

// NewApp returns the fixturectl application. Exit codes are left to the caller:
// Run returns a cli.ExitCoder instead of terminating the process.
func NewApp() *cli.App {
	r := &runner{}

	return &cli.App{
		Name:  "fixturectl",
		Usage: "inspect, validate and edit UniConnect demo fixtures",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   config.DefaultPath,
				Usage:   "path to the YAML config file",
				EnvVars: []string{config.EnvPrefix + "CONFIG"},
			},
			&cli.StringFlag{
				Name:    "data",
				Aliases: []string{"d"},
				Usage:   "fixture directory, collection file or snapshot (default: data.dir from config)",
			},
			&cli.BoolFlag{
				Name:  "demo",
				Usage: "start from the built-in demo dataset instead of reading fixtures",
			},
		},
		Before: r.setup,
		Commands: []*cli.Command{
			validateCommand(r),
			integrityCommand(r),
			exportCommand(r),
			listCommand(r),
			showCommand(r),
			nextIDCommand(r),
			statsCommand(r),
			usageCommand(r),
			subTypesCommand(r),
			seedCommand(r),
			shiftCommand(r),
			duplicateWeekCommand(r),
			joinCommand(r),
			addLocationCommand(r),
			addSocietyCommand(r),
			deleteCommand(r),
		},
		ExitErrHandler: func(*cli.Context, error) {},
	}
}

func (r *runner) setup(cCtx *cli.Context) error {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(cCtx.String("config"))
	if err != nil {
		return err
	}
	r.deps = bootstrap.BuildDependencies(cfg, lgr)
	return nil
}

// load fills the store from --data, or from the demo dataset when --demo is set.
// Without --data the configured data dir is read, and demo data stands in when
// it does not exist.
func (r *runner) load(cCtx *cli.Context) error {
	if cCtx.Bool("demo") {
		return seed.CreateDemoData(r.deps.Store, r.deps.EditorService, r.deps.Logger)
	}
	if !cCtx.IsSet("data") {
		return r.deps.LoadOrSeed(cCtx.Context, "")
	}
	_, err := r.deps.LoadData(cCtx.Context, cCtx.String("data"))
	return err
}

// save writes an export file to --out, or the configured export dir, and prints its path
func (r *runner) save(cCtx *cli.Context, file *dto.ExportFile) error {
	target, err := r.deps.ExportStorage(cCtx.String("out"))
	if err != nil {
		return err
	}
	data, err := r.deps.FixtureService.Marshal(file)
	if err != nil {
		return err
	}
	path, err := target.SaveFile(file.Filename, data)
	if err != nil {
		return err
	}
	fmt.Fprintln(cCtx.App.Writer, path)
	return nil
}

func (r *runner) saveKind(cCtx *cli.Context, kind models.Kind) error {
	file, err := r.deps.FixtureService.ExportKind(kind)
	if err != nil {
		return err
	}
	return r.save(cCtx, file)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// ExitCode maps an error returned by Run to a process exit status
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var coder cli.ExitCoder
	if errors.As(err, &coder) {
		return coder.ExitCode()
	}
	return 1
}
