package store

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"roster-backend/internal/db"
	"roster-backend/internal/model"
	"roster-backend/internal/roster"
)

// newTestStore opens a per-test in-memory SQLite database and migrates
// the full schema. Each test gets its own named memory DB so state
// never leaks between tests while shared-cache keeps all pooled
// connections on the same database.
func newTestStore(t *testing.T) Store {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gormDB))
	return NewGormStore(gormDB, time.UTC)
}

func seedTeam(t *testing.T, s Store, id string) {
	t.Helper()
	require.NoError(t, s.DB().Create(&model.Team{ID: id, Name: "Team " + id}).Error)
}

func seedWorker(t *testing.T, s Store, id, teamID string, skillCodes ...string) {
	t.Helper()
	w := model.Worker{ID: id, FirstName: "Worker", LastName: id, Email: id + "@example.com", TeamID: &teamID}
	for _, code := range skillCodes {
		var skill model.Skill
		require.NoError(t, s.DB().Where(model.Skill{Code: code}).FirstOrCreate(&skill, model.Skill{Code: code, Name: code}).Error)
		w.Skills = append(w.Skills, skill)
	}
	require.NoError(t, s.DB().Create(&w).Error)
}

func seedShift(t *testing.T, s Store, input CreateShiftInput) *model.Shift {
	t.Helper()
	shift, err := s.CreateShift(context.Background(), input)
	require.NoError(t, err)
	return shift
}

func dayShift(skills ...string) CreateShiftInput {
	return CreateShiftInput{
		TeamID:         "team-1",
		Date:           "2025-12-01",
		StartTime:      "09:00",
		EndTime:        "17:00",
		ShiftCode:      "D1",
		DurationHours:  8,
		RequiredSkills: skills,
	}
}

func TestCreateShift(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	seedTeam(t, s, "team-1")

	t.Run("new shift is OPEN at revision 1", func(t *testing.T) {
		shift := seedShift(t, s, dayShift("cashier"))
		assert.Equal(t, model.StatusOpen, shift.Status)
		assert.Equal(t, 1, shift.Revision)
		assert.Nil(t, shift.AssignedWorkerID)
		assert.Equal(t, time.Date(2025, 12, 1, 9, 0, 0, 0, time.UTC), shift.StartAt)
		assert.Equal(t, time.Date(2025, 12, 1, 17, 0, 0, 0, time.UTC), shift.EndAt)
	})

	t.Run("night shift lands its end on the next day", func(t *testing.T) {
		input := dayShift()
		input.StartTime, input.EndTime = "22:00", "06:00"
		shift := seedShift(t, s, input)
		assert.Equal(t, time.Date(2025, 12, 1, 22, 0, 0, 0, time.UTC), shift.StartAt)
		assert.Equal(t, time.Date(2025, 12, 2, 6, 0, 0, 0, time.UTC), shift.EndAt)
	})

	t.Run("unknown team", func(t *testing.T) {
		input := dayShift()
		input.TeamID = "no-such-team"
		_, err := s.CreateShift(ctx, input)
		var notFound *roster.NotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, "team", notFound.Kind)
	})

	t.Run("malformed time", func(t *testing.T) {
		input := dayShift()
		input.StartTime = "9am"
		_, err := s.CreateShift(ctx, input)
		var validation *roster.ValidationError
		assert.ErrorAs(t, err, &validation)
	})
}

func TestAssignShift(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	seedTeam(t, s, "team-1")
	seedWorker(t, s, "w-cashier", "team-1", "cashier")
	seedWorker(t, s, "w-plain", "team-1")

	t.Run("successful assignment", func(t *testing.T) {
		shift := seedShift(t, s, dayShift("cashier"))

		got, err := s.AssignShift(ctx, shift.ID, "w-cashier", model.SourceManual)
		require.NoError(t, err)
		assert.Equal(t, model.StatusAssigned, got.Status)
		assert.Equal(t, "w-cashier", *got.AssignedWorkerID)
		assert.Equal(t, model.SourceManual, *got.AssignmentSource)
		assert.NotNil(t, got.AssignedAt)
		assert.Equal(t, 2, got.Revision)
	})

	t.Run("missing skill leaves the shift untouched", func(t *testing.T) {
		shift := seedShift(t, s, CreateShiftInput{
			TeamID: "team-1", Date: "2025-12-02", StartTime: "09:00", EndTime: "17:00",
			RequiredSkills: []string{"cashier"},
		})

		_, err := s.AssignShift(ctx, shift.ID, "w-plain", model.SourceManual)
		var missing *roster.MissingSkillsError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, []string{"cashier"}, missing.Missing)

		reloaded, err := s.GetShift(ctx, shift.ID)
		require.NoError(t, err)
		assert.Equal(t, model.StatusOpen, reloaded.Status)
		assert.Nil(t, reloaded.AssignedWorkerID)
		assert.Equal(t, 1, reloaded.Revision, "failed assignment must not bump the revision")
	})

	t.Run("blackout covering the shift blocks assignment", func(t *testing.T) {
		shift := seedShift(t, s, CreateShiftInput{
			TeamID: "team-1", Date: "2025-12-03", StartTime: "09:00", EndTime: "17:00",
		})
		_, err := s.CreateAvailabilityWindow(ctx, CreateAvailabilityInput{
			WorkerID: "w-plain",
			StartAt:  "2025-12-03T08:00:00Z",
			EndAt:    "2025-12-03T18:00:00Z",
			Kind:     model.KindBlackout,
		})
		require.NoError(t, err)

		_, err = s.AssignShift(ctx, shift.ID, "w-plain", model.SourceManual)
		var blackout *roster.BlackoutConflictError
		assert.ErrorAs(t, err, &blackout)
	})

	t.Run("overlapping shift blocks assignment", func(t *testing.T) {
		first := seedShift(t, s, CreateShiftInput{
			TeamID: "team-1", Date: "2025-12-04", StartTime: "10:00", EndTime: "14:00",
		})
		_, err := s.AssignShift(ctx, first.ID, "w-cashier", model.SourceManual)
		require.NoError(t, err)

		second := seedShift(t, s, CreateShiftInput{
			TeamID: "team-1", Date: "2025-12-04", StartTime: "09:00", EndTime: "17:00",
		})
		_, err = s.AssignShift(ctx, second.ID, "w-cashier", model.SourceManual)
		var booked *roster.DoubleBookingError
		require.ErrorAs(t, err, &booked)
		assert.Equal(t, first.ID, booked.ConflictingShiftID)
	})

	t.Run("back-to-back shifts are allowed", func(t *testing.T) {
		morning := seedShift(t, s, CreateShiftInput{
			TeamID: "team-1", Date: "2025-12-05", StartTime: "06:00", EndTime: "14:00",
		})
		evening := seedShift(t, s, CreateShiftInput{
			TeamID: "team-1", Date: "2025-12-05", StartTime: "14:00", EndTime: "22:00",
		})

		_, err := s.AssignShift(ctx, morning.ID, "w-cashier", model.SourceManual)
		require.NoError(t, err)
		_, err = s.AssignShift(ctx, evening.ID, "w-cashier", model.SourceManual)
		assert.NoError(t, err)
	})

	t.Run("assignment is blocked outside OPEN and ASSIGNED", func(t *testing.T) {
		for _, status := range []model.ShiftStatus{model.StatusConfirmed, model.StatusInProgress, model.StatusCompleted, model.StatusCancelled} {
			shift := seedShift(t, s, CreateShiftInput{
				TeamID: "team-1", Date: "2025-12-06", StartTime: "09:00", EndTime: "10:00",
			})
			require.NoError(t, s.DB().Model(&model.Shift{}).Where("id = ?", shift.ID).Update("status", status).Error)

			_, err := s.AssignShift(ctx, shift.ID, "w-plain", model.SourceManual)
			var invalid *roster.InvalidStateTransitionError
			require.ErrorAs(t, err, &invalid, "status %s", status)
			assert.Equal(t, status, invalid.Status)

			require.NoError(t, s.DB().Delete(&model.Shift{}, "id = ?", shift.ID).Error)
		}
	})

	t.Run("re-assignment via swap records history", func(t *testing.T) {
		shift := seedShift(t, s, CreateShiftInput{
			TeamID: "team-1", Date: "2025-12-07", StartTime: "09:00", EndTime: "17:00",
		})
		_, err := s.AssignShift(ctx, shift.ID, "w-cashier", model.SourceManual)
		require.NoError(t, err)

		got, err := s.AssignShift(ctx, shift.ID, "w-plain", model.SourceSwap)
		require.NoError(t, err)
		require.Len(t, got.Metadata.SwapHistory, 1)
		assert.Equal(t, "w-cashier", got.Metadata.SwapHistory[0].From)
		assert.Equal(t, "w-plain", got.Metadata.SwapHistory[0].To)
		assert.Equal(t, 3, got.Revision)
	})

	t.Run("re-assignment via manual source records no history", func(t *testing.T) {
		shift := seedShift(t, s, CreateShiftInput{
			TeamID: "team-1", Date: "2025-12-08", StartTime: "09:00", EndTime: "17:00",
		})
		_, err := s.AssignShift(ctx, shift.ID, "w-cashier", model.SourceManual)
		require.NoError(t, err)

		got, err := s.AssignShift(ctx, shift.ID, "w-plain", model.SourceManual)
		require.NoError(t, err)
		assert.Empty(t, got.Metadata.SwapHistory)
	})

	t.Run("unknown source", func(t *testing.T) {
		shift := seedShift(t, s, CreateShiftInput{
			TeamID: "team-1", Date: "2025-12-09", StartTime: "09:00", EndTime: "17:00",
		})
		_, err := s.AssignShift(ctx, shift.ID, "w-plain", "telepathy")
		var validation *roster.ValidationError
		assert.ErrorAs(t, err, &validation)
	})

	t.Run("unknown shift and worker", func(t *testing.T) {
		var notFound *roster.NotFoundError
		_, err := s.AssignShift(ctx, "no-such-shift", "w-plain", model.SourceManual)
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, "shift", notFound.Kind)

		shift := seedShift(t, s, CreateShiftInput{
			TeamID: "team-1", Date: "2025-12-10", StartTime: "09:00", EndTime: "17:00",
		})
		_, err = s.AssignShift(ctx, shift.ID, "no-such-worker", model.SourceManual)
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, "worker", notFound.Kind)
	})
}

func TestUnassignShift(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	seedTeam(t, s, "team-1")
	seedWorker(t, s, "w-1", "team-1")

	t.Run("unassignment reopens the shift and remembers the assignee", func(t *testing.T) {
		shift := seedShift(t, s, dayShift())
		assigned, err := s.AssignShift(ctx, shift.ID, "w-1", model.SourceManual)
		require.NoError(t, err)
		require.Equal(t, 2, assigned.Revision)

		got, previous, err := s.UnassignShift(ctx, shift.ID)
		require.NoError(t, err)
		assert.Equal(t, model.StatusOpen, got.Status)
		assert.Nil(t, got.AssignedWorkerID)
		assert.Nil(t, got.AssignedAt)
		assert.Nil(t, got.AssignmentSource)
		assert.Equal(t, "w-1", got.Metadata.OriginalAssignee)
		assert.Equal(t, "w-1", previous)
		assert.Equal(t, 3, got.Revision)
	})

	t.Run("running shifts cannot be unassigned", func(t *testing.T) {
		shift := seedShift(t, s, CreateShiftInput{
			TeamID: "team-1", Date: "2025-12-02", StartTime: "09:00", EndTime: "17:00",
		})
		_, err := s.AssignShift(ctx, shift.ID, "w-1", model.SourceManual)
		require.NoError(t, err)
		require.NoError(t, s.DB().Model(&model.Shift{}).Where("id = ?", shift.ID).Update("status", model.StatusInProgress).Error)

		_, _, err = s.UnassignShift(ctx, shift.ID)
		var invalid *roster.InvalidStateTransitionError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, "unassign", invalid.Op)
	})

	t.Run("unassigning an already open shift still reopens it", func(t *testing.T) {
		shift := seedShift(t, s, CreateShiftInput{
			TeamID: "team-1", Date: "2025-12-03", StartTime: "09:00", EndTime: "17:00",
		})
		got, previous, err := s.UnassignShift(ctx, shift.ID)
		require.NoError(t, err)
		assert.Equal(t, model.StatusOpen, got.Status)
		assert.Empty(t, got.Metadata.OriginalAssignee)
		assert.Empty(t, previous)
		assert.Equal(t, 2, got.Revision)
	})

	t.Run("repeat unassignment keeps the slot but removes nobody", func(t *testing.T) {
		shift := seedShift(t, s, CreateShiftInput{
			TeamID: "team-1", Date: "2025-12-04", StartTime: "09:00", EndTime: "17:00",
		})
		_, err := s.AssignShift(ctx, shift.ID, "w-1", model.SourceManual)
		require.NoError(t, err)
		_, previous, err := s.UnassignShift(ctx, shift.ID)
		require.NoError(t, err)
		require.Equal(t, "w-1", previous)

		got, previous, err := s.UnassignShift(ctx, shift.ID)
		require.NoError(t, err)
		assert.Equal(t, "w-1", got.Metadata.OriginalAssignee, "the slot survives")
		assert.Empty(t, previous, "nobody was removed this time")
	})
}

func TestUpdateShift(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	seedTeam(t, s, "team-1")

	strPtr := func(v string) *string { return &v }
	intPtr := func(v int) *int { return &v }

	t.Run("partial edit bumps the revision", func(t *testing.T) {
		shift := seedShift(t, s, dayShift())

		got, err := s.UpdateShift(ctx, shift.ID, UpdateShiftInput{Notes: strPtr("bring keys")})
		require.NoError(t, err)
		assert.Equal(t, "bring keys", got.Notes)
		assert.Equal(t, 2, got.Revision)
		assert.Equal(t, shift.StartAt, got.StartAt, "untouched times stay put")
	})

	t.Run("time edit rebuilds the instants", func(t *testing.T) {
		shift := seedShift(t, s, CreateShiftInput{
			TeamID: "team-1", Date: "2025-12-02", StartTime: "09:00", EndTime: "17:00",
		})

		got, err := s.UpdateShift(ctx, shift.ID, UpdateShiftInput{EndTime: strPtr("08:00")})
		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 12, 3, 8, 0, 0, 0, time.UTC), got.EndAt, "end before start crosses midnight")
	})

	t.Run("matching expected revision passes", func(t *testing.T) {
		shift := seedShift(t, s, CreateShiftInput{
			TeamID: "team-1", Date: "2025-12-03", StartTime: "09:00", EndTime: "17:00",
		})

		got, err := s.UpdateShift(ctx, shift.ID, UpdateShiftInput{
			ExpectedRevision: intPtr(1),
			Notes:            strPtr("ok"),
		})
		require.NoError(t, err)
		assert.Equal(t, 2, got.Revision)
	})

	t.Run("stale revision rejects the write and changes nothing", func(t *testing.T) {
		shift := seedShift(t, s, CreateShiftInput{
			TeamID: "team-1", Date: "2025-12-04", StartTime: "09:00", EndTime: "17:00",
		})
		_, err := s.UpdateShift(ctx, shift.ID, UpdateShiftInput{Notes: strPtr("first edit")})
		require.NoError(t, err)

		_, err = s.UpdateShift(ctx, shift.ID, UpdateShiftInput{
			ExpectedRevision: intPtr(1),
			Notes:            strPtr("lost the race"),
		})
		var stale *roster.StaleRevisionError
		require.ErrorAs(t, err, &stale)
		assert.Equal(t, 1, stale.Expected)
		assert.Equal(t, 2, stale.Actual)

		reloaded, err := s.GetShift(ctx, shift.ID)
		require.NoError(t, err)
		assert.Equal(t, "first edit", reloaded.Notes)
		assert.Equal(t, 2, reloaded.Revision)
	})

	t.Run("unknown status is rejected and nothing persists", func(t *testing.T) {
		shift := seedShift(t, s, CreateShiftInput{
			TeamID: "team-1", Date: "2025-12-05", StartTime: "09:00", EndTime: "17:00",
		})

		bogus := model.ShiftStatus("BANANA")
		_, err := s.UpdateShift(ctx, shift.ID, UpdateShiftInput{Status: &bogus})
		var validation *roster.ValidationError
		require.ErrorAs(t, err, &validation)

		reloaded, err := s.GetShift(ctx, shift.ID)
		require.NoError(t, err)
		assert.Equal(t, model.StatusOpen, reloaded.Status)
		assert.Equal(t, 1, reloaded.Revision)
	})

	t.Run("terminal shifts admit no status change", func(t *testing.T) {
		for _, terminal := range []model.ShiftStatus{model.StatusCompleted, model.StatusCancelled} {
			shift := seedShift(t, s, CreateShiftInput{
				TeamID: "team-1", Date: "2025-12-06", StartTime: "09:00", EndTime: "10:00",
			})
			require.NoError(t, s.DB().Model(&model.Shift{}).Where("id = ?", shift.ID).Update("status", terminal).Error)

			open := model.StatusOpen
			_, err := s.UpdateShift(ctx, shift.ID, UpdateShiftInput{Status: &open})
			var invalid *roster.InvalidStateTransitionError
			require.ErrorAs(t, err, &invalid, "status %s", terminal)
			assert.Equal(t, "update", invalid.Op)

			require.NoError(t, s.DB().Delete(&model.Shift{}, "id = ?", shift.ID).Error)
		}
	})
}

func TestDeleteShift(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	seedTeam(t, s, "team-1")

	t.Run("delete removes the shift", func(t *testing.T) {
		shift := seedShift(t, s, dayShift())
		require.NoError(t, s.DeleteShift(ctx, shift.ID))

		_, err := s.GetShift(ctx, shift.ID)
		var notFound *roster.NotFoundError
		assert.ErrorAs(t, err, &notFound)
	})

	t.Run("running shifts cannot be deleted", func(t *testing.T) {
		shift := seedShift(t, s, CreateShiftInput{
			TeamID: "team-1", Date: "2025-12-02", StartTime: "09:00", EndTime: "17:00",
		})
		require.NoError(t, s.DB().Model(&model.Shift{}).Where("id = ?", shift.ID).Update("status", model.StatusInProgress).Error)

		err := s.DeleteShift(ctx, shift.ID)
		var invalid *roster.InvalidStateTransitionError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, "delete", invalid.Op)
	})
}

func TestListShifts(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	seedTeam(t, s, "team-1")
	seedTeam(t, s, "team-2")
	seedWorker(t, s, "w-1", "team-1")

	seedShift(t, s, CreateShiftInput{TeamID: "team-1", Date: "2025-12-01", StartTime: "09:00", EndTime: "17:00"})
	mid := seedShift(t, s, CreateShiftInput{TeamID: "team-1", Date: "2025-12-02", StartTime: "09:00", EndTime: "17:00"})
	seedShift(t, s, CreateShiftInput{TeamID: "team-1", Date: "2025-12-03", StartTime: "09:00", EndTime: "17:00"})
	seedShift(t, s, CreateShiftInput{TeamID: "team-2", Date: "2025-12-02", StartTime: "09:00", EndTime: "17:00"})

	_, err := s.AssignShift(ctx, mid.ID, "w-1", model.SourceManual)
	require.NoError(t, err)

	t.Run("team and date range filter", func(t *testing.T) {
		shifts, err := s.ListShifts(ctx, ShiftFilter{TeamID: "team-1", From: "2025-12-02", To: "2025-12-03"})
		require.NoError(t, err)
		require.Len(t, shifts, 2)
		assert.Equal(t, "2025-12-02", shifts[0].Date)
		assert.Equal(t, "2025-12-03", shifts[1].Date)
	})

	t.Run("status filter", func(t *testing.T) {
		shifts, err := s.ListShifts(ctx, ShiftFilter{Status: model.StatusAssigned})
		require.NoError(t, err)
		require.Len(t, shifts, 1)
		assert.Equal(t, mid.ID, shifts[0].ID)
	})

	t.Run("worker filter preloads the assignee", func(t *testing.T) {
		shifts, err := s.ListShifts(ctx, ShiftFilter{WorkerID: "w-1"})
		require.NoError(t, err)
		require.Len(t, shifts, 1)
		require.NotNil(t, shifts[0].AssignedWorker)
		assert.Equal(t, "w-1", shifts[0].AssignedWorker.ID)
	})

	t.Run("worker range listing uses half-open interval overlap", func(t *testing.T) {
		from := time.Date(2025, 12, 2, 17, 0, 0, 0, time.UTC) // touches mid's end
		to := time.Date(2025, 12, 5, 0, 0, 0, 0, time.UTC)
		shifts, err := s.ListShiftsForWorker(ctx, "w-1", from, to)
		require.NoError(t, err)
		assert.Empty(t, shifts, "a shift ending exactly at the range start is outside it")

		from = time.Date(2025, 12, 2, 0, 0, 0, 0, time.UTC)
		shifts, err = s.ListShiftsForWorker(ctx, "w-1", from, to)
		require.NoError(t, err)
		assert.Len(t, shifts, 1)
	})
}

func TestAvailabilityWindows(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	seedTeam(t, s, "team-1")
	seedWorker(t, s, "w-1", "team-1")

	t.Run("create and list", func(t *testing.T) {
		win, err := s.CreateAvailabilityWindow(ctx, CreateAvailabilityInput{
			WorkerID: "w-1",
			StartAt:  "2025-12-01T08:00:00Z",
			EndAt:    "2025-12-01T18:00:00Z",
			Kind:     model.KindPreferred,
		})
		require.NoError(t, err)
		assert.Equal(t, model.KindPreferred, win.Kind)

		windows, err := s.WindowsForWorker(ctx, "w-1", time.Time{}, time.Time{})
		require.NoError(t, err)
		assert.Len(t, windows, 1)
	})

	t.Run("overlapping window is rejected", func(t *testing.T) {
		_, err := s.CreateAvailabilityWindow(ctx, CreateAvailabilityInput{
			WorkerID: "w-1",
			StartAt:  "2025-12-01T12:00:00Z",
			EndAt:    "2025-12-01T20:00:00Z",
			Kind:     model.KindNeutral,
		})
		var validation *roster.ValidationError
		require.ErrorAs(t, err, &validation)
		assert.Contains(t, validation.Reason, "overlaps")
	})

	t.Run("adjacent window is fine", func(t *testing.T) {
		_, err := s.CreateAvailabilityWindow(ctx, CreateAvailabilityInput{
			WorkerID: "w-1",
			StartAt:  "2025-12-01T18:00:00Z",
			EndAt:    "2025-12-01T22:00:00Z",
			Kind:     model.KindNeutral,
		})
		assert.NoError(t, err)
	})

	t.Run("invalid inputs", func(t *testing.T) {
		var validation *roster.ValidationError

		_, err := s.CreateAvailabilityWindow(ctx, CreateAvailabilityInput{
			WorkerID: "w-1", StartAt: "2025-12-02T08:00:00Z", EndAt: "2025-12-02T18:00:00Z", Kind: "SOMETIMES",
		})
		assert.ErrorAs(t, err, &validation)

		_, err = s.CreateAvailabilityWindow(ctx, CreateAvailabilityInput{
			WorkerID: "w-1", StartAt: "2025-12-02T18:00:00Z", EndAt: "2025-12-02T08:00:00Z", Kind: model.KindNeutral,
		})
		assert.ErrorAs(t, err, &validation)

		_, err = s.CreateAvailabilityWindow(ctx, CreateAvailabilityInput{
			WorkerID: "nobody", StartAt: "2025-12-02T08:00:00Z", EndAt: "2025-12-02T18:00:00Z", Kind: model.KindNeutral,
		})
		var notFound *roster.NotFoundError
		assert.ErrorAs(t, err, &notFound)
	})

	t.Run("range delete removes only fully contained windows", func(t *testing.T) {
		count, err := s.DeleteWindowsForWorker(ctx, "w-1",
			time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 12, 1, 19, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.Equal(t, int64(1), count, "the 18:00-22:00 window sticks out of the range")

		windows, err := s.WindowsForWorker(ctx, "w-1", time.Time{}, time.Time{})
		require.NoError(t, err)
		assert.Len(t, windows, 1)
	})

	t.Run("delete by id", func(t *testing.T) {
		windows, err := s.WindowsForWorker(ctx, "w-1", time.Time{}, time.Time{})
		require.NoError(t, err)
		require.Len(t, windows, 1)

		require.NoError(t, s.DeleteAvailabilityWindow(ctx, windows[0].ID))

		var notFound *roster.NotFoundError
		err = s.DeleteAvailabilityWindow(ctx, windows[0].ID)
		assert.ErrorAs(t, err, &notFound)
	})
}

// newMockDB wires sqlmock behind the postgres dialector so SQL shape,
// including locking clauses SQLite cannot express, can be asserted.
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: conn}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func TestUnassignShift_LocksRow(t *testing.T) {
	gormDB, mock := newMockDB(t)
	s := NewGormStore(gormDB, time.UTC)

	now := time.Now()
	columns := []string{"id", "revision", "team_id", "date", "start_time", "end_time", "start_at", "end_at", "status", "assigned_worker_id", "required_skills", "metadata"}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "shifts" WHERE id = $1`) + `.*FOR UPDATE`).
		WithArgs("shift-1", 1).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("shift-1", 2, "team-1", "2025-12-01", "09:00", "17:00", now, now.Add(8*time.Hour), "ASSIGNED", "w-1", "[]", "{}"))
	mock.ExpectExec(`UPDATE "shifts" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	got, previous, err := s.UnassignShift(context.Background(), "shift-1")
	require.NoError(t, err)
	assert.Equal(t, model.StatusOpen, got.Status)
	assert.Equal(t, "w-1", got.Metadata.OriginalAssignee)
	assert.Equal(t, "w-1", previous)
	assert.Equal(t, 3, got.Revision)

	assert.NoError(t, mock.ExpectationsWereMet())
}

// Two concurrent assignments of different shifts to one worker must
// serialize somewhere; the worker row is that point. Without its lock
// each transaction sees zero conflicting rows and both commit.
func TestAssignShift_LocksWorkerRow(t *testing.T) {
	gormDB, mock := newMockDB(t)
	s := NewGormStore(gormDB, time.UTC)

	now := time.Now()
	shiftColumns := []string{"id", "revision", "team_id", "date", "start_time", "end_time", "start_at", "end_at", "status", "assigned_worker_id", "required_skills", "metadata"}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "shifts" WHERE id = $1`) + `.*FOR UPDATE`).
		WithArgs("shift-1", 1).
		WillReturnRows(sqlmock.NewRows(shiftColumns).
			AddRow("shift-1", 1, "team-1", "2025-12-01", "09:00", "17:00", now, now.Add(8*time.Hour), "OPEN", nil, "[]", "{}"))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "workers" WHERE id = $1`) + `.*FOR UPDATE`).
		WithArgs("w-1", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "first_name", "last_name", "email"}).
			AddRow("w-1", "Ada", "L", "ada@example.com"))
	mock.ExpectQuery(`FROM "skills"`).
		WillReturnRows(sqlmock.NewRows([]string{"code", "name"}))
	mock.ExpectQuery(`FROM "availability_windows"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "worker_id", "start_at", "end_at", "kind"}))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "shifts" WHERE`) + `.*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows(shiftColumns))
	mock.ExpectExec(`UPDATE "shifts" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	got, err := s.AssignShift(context.Background(), "shift-1", "w-1", model.SourceManual)
	require.NoError(t, err)
	assert.Equal(t, model.StatusAssigned, got.Status)
	assert.Equal(t, "w-1", *got.AssignedWorkerID)
	assert.Equal(t, 2, got.Revision)

	assert.NoError(t, mock.ExpectationsWereMet())
}
