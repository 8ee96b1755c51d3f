package seed

import (
	"log/slog"

	"github.com/rosterline/backend/internal/config"
	"github.com/rosterline/backend/internal/domain"
	"github.com/rosterline/backend/internal/repository"
	"github.com/rosterline/backend/internal/schedule"
	"github.com/rosterline/backend/internal/scheduling"
)

type demoShift struct {
	EmployeeID int64
	Day        int
	Start      string
	End        string
	Template   string
}

type demoBusiness struct {
	Name      string
	State     string
	Templates []struct {
		Name  string
		Start string
		End   string
		Color string
	}
	Shifts []demoShift
}

// demoBusinesses is a small, fixed data set for local development. Times use
// the clock-label form the API accepts.
var demoBusinesses = []demoBusiness{
	{
		Name:  "Harbor Diner",
		State: "NY",
		Templates: []struct {
			Name  string
			Start string
			End   string
			Color string
		}{
			{"Opening", "6:00 AM", "2:00 PM", "#4f9d69"},
			{"Closing", "2:00 PM", "10:00 PM", "#ff6b35"},
		},
		Shifts: []demoShift{
			{101, 0, "6:00 AM", "2:00 PM", "Opening"},
			{102, 0, "2:00 PM", "10:00 PM", "Closing"},
			{101, 1, "6:00 AM", "2:00 PM", "Opening"},
			{103, 1, "2:00 PM", "10:00 PM", "Closing"},
			{102, 2, "6:00 AM", "2:00 PM", "Opening"},
			{103, 3, "10:00 PM", "6:00 AM", ""},
		},
	},
	{
		Name:  "Sunset Market",
		State: "AZ",
		Templates: []struct {
			Name  string
			Start string
			End   string
			Color string
		}{
			{"Day", "8:00 AM", "4:00 PM", "#3a86ff"},
			{"Evening", "4:00 PM", "11:00 PM", "#6c4ab6"},
		},
		Shifts: []demoShift{
			{201, 1, "8:00 AM", "4:00 PM", "Day"},
			{202, 1, "4:00 PM", "11:00 PM", "Evening"},
			{201, 3, "8:00 AM", "4:00 PM", "Day"},
			{202, 5, "4:00 PM", "11:00 PM", "Evening"},
		},
	},
}

// SeedDemoData inserts the demo businesses with shift templates and a
// populated current-week schedule. Safe to rerun; duplicate business names
// just log and skip.
func SeedDemoData(cfg *config.Config, repo *repository.Repository) {
	svc := schedule.NewService(cfg, repo)

	for _, db := range demoBusinesses {
		business := &domain.Business{Name: db.Name, State: db.State}
		if err := repo.CreateBusiness(business); err != nil {
			slog.Error("cannot insert demo business", "name", db.Name, "error", err)
			continue
		}

		templateByName := make(map[string]*domain.ShiftTemplate, len(db.Templates))
		for _, dt := range db.Templates {
			start, err := scheduling.ParseLabel(dt.Start)
			if err != nil {
				slog.Error("bad demo template time", "template", dt.Name, "error", err)
				continue
			}
			end, err := scheduling.ParseLabel(dt.End)
			if err != nil {
				slog.Error("bad demo template time", "template", dt.Name, "error", err)
				continue
			}

			tpl := &domain.ShiftTemplate{
				BusinessID:  business.ID,
				Name:        dt.Name,
				StartMinute: int(start),
				EndMinute:   int(end),
				Color:       dt.Color,
				IsActive:    true,
			}
			if err := repo.CreateShiftTemplate(tpl); err != nil {
				slog.Error("cannot insert demo template", "template", dt.Name, "error", err)
				continue
			}
			templateByName[dt.Name] = tpl
		}

		sched, err := svc.GetOrCreate(business, svc.CurrentWeekStart(business))
		if err != nil {
			slog.Error("cannot create demo schedule", "business", db.Name, "error", err)
			continue
		}

		ins := make([]schedule.ShiftInput, 0, len(db.Shifts))
		for _, ds := range db.Shifts {
			start, err := scheduling.ParseLabel(ds.Start)
			if err != nil {
				slog.Error("bad demo shift time", "business", db.Name, "error", err)
				continue
			}
			end, err := scheduling.ParseLabel(ds.End)
			if err != nil {
				slog.Error("bad demo shift time", "business", db.Name, "error", err)
				continue
			}

			in := schedule.ShiftInput{
				EmployeeID: ds.EmployeeID,
				Day:        ds.Day,
				Start:      start,
				End:        end,
			}
			if tpl, ok := templateByName[ds.Template]; ok {
				id := tpl.ID
				in.TemplateID = &id
			}
			ins = append(ins, in)
		}

		if _, err := svc.BulkAddShifts(business, sched, ins); err != nil {
			slog.Error("cannot insert demo shifts", "business", db.Name, "error", err)
			continue
		}

		slog.Info("seeded demo business", "name", db.Name, "shifts", len(ins))
	}
}
