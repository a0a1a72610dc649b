package commands

import (
	"fmt"
	"sort"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yigit/uniconnect-fixtures/internal/app/models"
	"github.com/yigit/uniconnect-fixtures/internal/app/models/dto"
	"github.com/yigit/uniconnect-fixtures/internal/app/services"
	"github.com/yigit/uniconnect-fixtures/internal/pkg/apperrors"
	"github.com/yigit/uniconnect-fixtures/internal/pkg/helpers"
	"github.com/yigit/uniconnect-fixtures/internal/seed"
)

func outFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "out",
		Aliases: []string{"o"},
		Usage:   "directory to write exports to (default: data.export_dir from config)",
	}
}

func filterFlags(category string) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "category", Value: category, Usage: "only events of this category"},
		&cli.StringFlag{Name: "from", Usage: "first scheduled day to include (YYYY-MM-DD)"},
		&cli.StringFlag{Name: "to", Usage: "last scheduled day to include (YYYY-MM-DD)"},
	}
}

func eventFilter(cCtx *cli.Context) services.EventFilter {
	return services.EventFilter{
		Category: cCtx.String("category"),
		From:     cCtx.String("from"),
		To:       cCtx.String("to"),
	}
}

func validateCommand(r *runner) *cli.Command {
	return &cli.Command{
		Name:  "validate",
		Usage: "run every validation rule and print the report",
		Flags: []cli.Flag{&cli.BoolFlag{Name: "json", Usage: "print the report as JSON"}},
		Action: func(cCtx *cli.Context) error {
			if err := r.load(cCtx); err != nil {
				return err
			}
			report := r.deps.ValidationService.ValidateAll()

			if cCtx.Bool("json") {
				if err := writeJSON(cCtx.App.Writer, report); err != nil {
					return err
				}
			} else {
				printReport(cCtx, report)
			}

			if !report.Valid {
				err := apperrors.NewValidationFailedError(report.ErrorCount(), report.WarningCount())
				return cli.Exit(err.Error(), ExitValidationFailed)
			}
			return nil
		},
	}
}

func printReport(cCtx *cli.Context, report *dto.ValidationReport) {
	w := cCtx.App.Writer
	for _, e := range report.Errors {
		fmt.Fprintf(w, "ERROR   %s\n", e)
	}
	for _, warn := range report.Warnings {
		fmt.Fprintf(w, "WARNING %s\n", warn)
	}

	kinds := make([]string, 0, len(report.Statistics))
	for k := range report.Statistics {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	for _, k := range kinds {
		s := report.Statistics[k]
		fmt.Fprintf(w, "%-14s total=%d valid=%d warnings=%d errors=%d\n", k, s.Total, s.Valid, s.WithWarnings, s.WithErrors)
	}
	fmt.Fprintf(w, "valid=%t errors=%d warnings=%d\n", report.Valid, report.ErrorCount(), report.WarningCount())
}

func integrityCommand(r *runner) *cli.Command {
	return &cli.Command{
		Name:  "integrity",
		Usage: "list dangling references and one-sided friendships",
		Action: func(cCtx *cli.Context) error {
			if err := r.load(cCtx); err != nil {
				return err
			}
			issues := r.deps.IntegrityService.CheckIntegrity()
			for _, issue := range issues {
				fmt.Fprintln(cCtx.App.Writer, issue)
			}
			if len(issues) > 0 {
				return cli.Exit(fmt.Sprintf("%d integrity issues", len(issues)), ExitValidationFailed)
			}
			fmt.Fprintln(cCtx.App.Writer, "no integrity issues")
			return nil
		},
	}
}

func exportCommand(r *runner) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "write the combined snapshot, or one collection with --kind",
		Flags: []cli.Flag{
			outFlag(),
			&cli.StringFlag{Name: "kind", Aliases: []string{"k"}, Usage: "entity kind or collection name"},
		},
		Action: func(cCtx *cli.Context) error {
			if err := r.load(cCtx); err != nil {
				return err
			}
			if !cCtx.IsSet("kind") {
				return r.save(cCtx, r.deps.FixtureService.ExportSnapshot())
			}
			kind, err := models.ParseKind(cCtx.String("kind"))
			if err != nil {
				return apperrors.NewUnknownKindError(cCtx.String("kind"))
			}
			file, err := r.deps.FixtureService.ExportKind(kind)
			if err != nil {
				return err
			}
			return r.save(cCtx, file)
		},
	}
}

func listCommand(r *runner) *cli.Command {
	return &cli.Command{
		Name:      "list",
		Usage:     "print one page of entities of a kind",
		ArgsUsage: "<kind>",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "page", Value: helpers.DefaultPage},
			&cli.IntFlag{Name: "size", Value: helpers.DefaultPageSize},
		},
		Action: func(cCtx *cli.Context) error {
			if cCtx.NArg() != 1 {
				return cli.Exit("list needs exactly one kind", 2)
			}
			kind, err := models.ParseKind(cCtx.Args().First())
			if err != nil {
				return apperrors.NewUnknownKindError(cCtx.Args().First())
			}
			if err := r.load(cCtx); err != nil {
				return err
			}

			page, info := helpers.Paginate(r.deps.Store.All(kind), cCtx.Int("page"), cCtx.Int("size"))
			items := make([]any, len(page))
			for i, e := range page {
				items[i] = e
			}
			return writeJSON(cCtx.App.Writer, dto.EntityListResponse{Kind: string(kind), Items: items, Pagination: info})
		},
	}
}

func showCommand(r *runner) *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "print one entity with its display name",
		ArgsUsage: "<kind> <id>",
		Action: func(cCtx *cli.Context) error {
			if cCtx.NArg() != 2 {
				return cli.Exit("show needs a kind and an id", 2)
			}
			kind, err := models.ParseKind(cCtx.Args().Get(0))
			if err != nil {
				return apperrors.NewUnknownKindError(cCtx.Args().Get(0))
			}
			if err := r.load(cCtx); err != nil {
				return err
			}

			id := cCtx.Args().Get(1)
			entity, ok := r.deps.Store.Get(kind, id)
			if !ok {
				return apperrors.NewResourceNotFoundError(string(kind), id)
			}
			detail := dto.EntityDetail{Kind: string(kind), Label: r.deps.Store.DisplayName(kind, id), Entity: entity}
			if kind == models.KindUser {
				if privacy, ok := r.deps.Store.PrivacyFor(id); ok {
					detail.Privacy = privacy
				}
			}
			return writeJSON(cCtx.App.Writer, detail)
		},
	}
}

func nextIDCommand(r *runner) *cli.Command {
	return &cli.Command{
		Name:      "next-id",
		Usage:     "print the id the next new entity of a kind will get",
		ArgsUsage: "<kind>",
		Action: func(cCtx *cli.Context) error {
			kind, err := models.ParseKind(cCtx.Args().First())
			if err != nil {
				return apperrors.NewUnknownKindError(cCtx.Args().First())
			}
			if err := r.load(cCtx); err != nil {
				return err
			}
			fmt.Fprintln(cCtx.App.Writer, r.deps.Store.PeekID(kind))
			return nil
		},
	}
}

func statsCommand(r *runner) *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "print entity counts and relationship totals",
		Action: func(cCtx *cli.Context) error {
			if err := r.load(cCtx); err != nil {
				return err
			}
			return writeJSON(cCtx.App.Writer, r.deps.EditorService.Statistics())
		},
	}
}

func usageCommand(r *runner) *cli.Command {
	return &cli.Command{
		Name:      "usage",
		Usage:     "show what refers to a location",
		ArgsUsage: "<locationId>",
		Action: func(cCtx *cli.Context) error {
			if err := r.load(cCtx); err != nil {
				return err
			}
			usage, err := r.deps.EditorService.LocationUsage(cCtx.Args().First())
			if err != nil {
				return err
			}
			return writeJSON(cCtx.App.Writer, usage)
		},
	}
}

func subTypesCommand(r *runner) *cli.Command {
	return &cli.Command{
		Name:      "subtypes",
		Usage:     "list the valid sub-types of an event category",
		ArgsUsage: "<category>",
		Action: func(cCtx *cli.Context) error {
			category := cCtx.Args().First()
			subTypes := r.deps.EditorService.SubTypesForCategory(category)
			if subTypes == nil {
				return cli.Exit(fmt.Sprintf("unknown event category %q", category), 2)
			}
			for _, s := range subTypes {
				fmt.Fprintln(cCtx.App.Writer, s)
			}
			return nil
		},
	}
}

func seedCommand(r *runner) *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "write the built-in demo dataset as a snapshot",
		Flags: []cli.Flag{outFlag()},
		Action: func(cCtx *cli.Context) error {
			if err := seed.CreateDemoData(r.deps.Store, r.deps.EditorService, r.deps.Logger); err != nil {
				return err
			}
			return r.save(cCtx, r.deps.FixtureService.ExportSnapshot())
		},
	}
}

func shiftCommand(r *runner) *cli.Command {
	return &cli.Command{
		Name:  "shift",
		Usage: "move events by a number of days and write events.json",
		Flags: append(filterFlags(""), outFlag(),
			&cli.IntFlag{Name: "days", Usage: "days to move by (default: schedule.shift_days from config)"},
		),
		Action: func(cCtx *cli.Context) error {
			if err := r.load(cCtx); err != nil {
				return err
			}
			days := r.deps.Config.Schedule.ShiftDays
			if cCtx.IsSet("days") {
				days = cCtx.Int("days")
			}

			n := r.deps.EditorService.ShiftEvents(days, eventFilter(cCtx))
			fmt.Fprintf(cCtx.App.Writer, "shifted %d events by %d days\n", n, days)
			return r.saveKind(cCtx, models.KindEvent)
		},
	}
}

func duplicateWeekCommand(r *runner) *cli.Command {
	return &cli.Command{
		Name:  "duplicate-week",
		Usage: "copy a range of events forward under new ids and write events.json",
		Flags: append(filterFlags("academic"), outFlag(),
			&cli.IntFlag{Name: "offset", Usage: "days between source and copy (default: schedule.duplicate_days from config)"},
		),
		Action: func(cCtx *cli.Context) error {
			if err := r.load(cCtx); err != nil {
				return err
			}
			offset := r.deps.Config.Schedule.DuplicateDays
			if cCtx.IsSet("offset") {
				offset = cCtx.Int("offset")
			}

			created, err := r.deps.EditorService.DuplicateEvents(eventFilter(cCtx), offset)
			if err != nil {
				return err
			}
			for _, e := range created {
				fmt.Fprintf(cCtx.App.Writer, "%s\t%s\t%s\n", e.ID, e.ScheduledDate, e.Title)
			}
			fmt.Fprintf(cCtx.App.Writer, "duplicated %d events\n", len(created))
			return r.saveKind(cCtx, models.KindEvent)
		},
	}
}

func joinCommand(r *runner) *cli.Command {
	return &cli.Command{
		Name:      "join",
		Usage:     "toggle membership of a society and write societies.json",
		ArgsUsage: "<societyId>",
		Flags:     []cli.Flag{outFlag()},
		Action: func(cCtx *cli.Context) error {
			if err := r.load(cCtx); err != nil {
				return err
			}
			soc, err := r.deps.EditorService.ToggleMembership(cCtx.Args().First(), time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintf(cCtx.App.Writer, "%s joined=%t\n", soc.ID, soc.IsJoined)
			return r.saveKind(cCtx, models.KindSociety)
		},
	}
}

func deleteCommand(r *runner) *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "delete an entity with its dependents and write the snapshot",
		ArgsUsage: "<kind> <id>",
		Flags:     []cli.Flag{outFlag()},
		Action: func(cCtx *cli.Context) error {
			if cCtx.NArg() != 2 {
				return cli.Exit("delete needs a kind and an id", 2)
			}
			kind, err := models.ParseKind(cCtx.Args().Get(0))
			if err != nil {
				return apperrors.NewUnknownKindError(cCtx.Args().Get(0))
			}
			if err := r.load(cCtx); err != nil {
				return err
			}

			before := r.deps.Store.Counts()
			if err := r.deps.Store.Delete(kind, cCtx.Args().Get(1)); err != nil {
				return err
			}
			after := r.deps.Store.Counts()
			for _, k := range models.Kinds {
				if removed := before[k] - after[k]; removed > 0 {
					fmt.Fprintf(cCtx.App.Writer, "removed %d %s\n", removed, k.Collection())
				}
			}
			return r.save(cCtx, r.deps.FixtureService.ExportSnapshot())
		},
	}
}

func addLocationCommand(r *runner) *cli.Command {
	return &cli.Command{
		Name:  "add-location",
		Usage: "create a location with defaults for its type and write locations.json",
		Flags: []cli.Flag{
			outFlag(),
			&cli.StringFlag{Name: "name", Required: true},
			&cli.StringFlag{Name: "building", Required: true},
			&cli.StringFlag{Name: "room"},
			&cli.StringFlag{Name: "type", Required: true, Usage: "lecture_hall, classroom, lab, library, study_space, common_area or outdoor"},
			&cli.Float64Flag{Name: "lat", Usage: "latitude (default: from the building, or the campus centre)"},
			&cli.Float64Flag{Name: "lng", Usage: "longitude (default: from the building, or the campus centre)"},
			&cli.IntFlag{Name: "capacity", Usage: "seats (default: by type)"},
		},
		Action: func(cCtx *cli.Context) error {
			if err := r.load(cCtx); err != nil {
				return err
			}
			loc := &models.Location{
				Name:     cCtx.String("name"),
				Building: cCtx.String("building"),
				Type:     cCtx.String("type"),
				Capacity: cCtx.Int("capacity"),
			}
			if room := cCtx.String("room"); room != "" {
				loc.Room = &room
			}
			if cCtx.IsSet("lat") {
				lat := cCtx.Float64("lat")
				loc.Latitude = &lat
			}
			if cCtx.IsSet("lng") {
				lng := cCtx.Float64("lng")
				loc.Longitude = &lng
			}

			created, err := r.deps.EditorService.CreateLocation(loc)
			if err != nil {
				return err
			}
			fmt.Fprintf(cCtx.App.Writer, "%s\t%s\n", created.ID, created.Key())
			return r.saveKind(cCtx, models.KindLocation)
		},
	}
}

func addSocietyCommand(r *runner) *cli.Command {
	return &cli.Command{
		Name:  "add-society",
		Usage: "create a society and write societies.json",
		Flags: []cli.Flag{
			outFlag(),
			&cli.StringFlag{Name: "name", Required: true},
			&cli.StringFlag{Name: "category", Required: true},
			&cli.StringFlag{Name: "description"},
			&cli.IntFlag{Name: "members", Usage: "member count"},
		},
		Action: func(cCtx *cli.Context) error {
			if err := r.load(cCtx); err != nil {
				return err
			}
			members := cCtx.Int("members")
			soc := &models.Society{
				Name:        cCtx.String("name"),
				Category:    cCtx.String("category"),
				Description: cCtx.String("description"),
				MemberCount: &members,
			}

			created, err := r.deps.EditorService.CreateSociety(soc, time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintf(cCtx.App.Writer, "%s\t%s\n", created.ID, created.Name)
			return r.saveKind(cCtx, models.KindSociety)
		},
	}
}
