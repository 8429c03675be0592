package usecase

import (
	"context"
	"testing"
	"time"

	"dental-clinic-api/config"
	"dental-clinic-api/internal/delivery/dto"
	"dental-clinic-api/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type slotFixture struct {
	uc           *slotUsecase
	slots        *fakeSlotRepo
	schedules    *fakeScheduleRepo
	appointments *fakeAppointmentRepo
}

func newSlotFixture(t *testing.T) *slotFixture {
	t.Helper()

	db, _ := newTestDB(t)
	f := &slotFixture{
		slots:        &fakeSlotRepo{},
		schedules:    &fakeScheduleRepo{schedules: map[int][]entity.DentistSchedule{}},
		appointments: &fakeAppointmentRepo{},
	}

	clinic := config.ClinicConfig{Timezone: "Asia/Bangkok", SlotMinutes: 30}
	f.uc = NewSlotUsecase(db, testLogger(), clinic, f.slots, f.schedules, f.appointments).(*slotUsecase)
	return f
}

func workingSchedule(dentistID uuid.UUID, weekday int, start, end string) entity.DentistSchedule {
	working := true
	return entity.DentistSchedule{
		ID:        weekday,
		DentistID: dentistID,
		Weekday:   weekday,
		StartTime: start,
		EndTime:   end,
		IsWorking: &working,
	}
}

func TestGenerateCutsWorkingHoursIntoSlots(t *testing.T) {
	f := newSlotFixture(t)
	dentistID := uuid.New()

	// Monday 2026-03-09, 09:00-11:00 at 30 minutes per slot
	f.schedules.schedules[1] = []entity.DentistSchedule{
		workingSchedule(dentistID, 1, "09:00:00", "11:00:00"),
	}

	resp, err := f.uc.Generate(context.Background(), &dto.GenerateSlotsRequest{
		StartDate: "2026-03-09",
		EndDate:   "2026-03-09",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(4), resp.Created)

	require.Len(t, f.slots.batches, 1)
	batch := f.slots.batches[0]
	require.Len(t, batch, 4)
	assert.Equal(t, "09:00:00", batch[0].StartTime)
	assert.Equal(t, "09:30:00", batch[0].EndTime)
	assert.Equal(t, "10:30:00", batch[3].StartTime)
	assert.Equal(t, "11:00:00", batch[3].EndTime)
	assert.Equal(t, dentistID, batch[0].DentistID)
}

func TestGenerateSkipsSundays(t *testing.T) {
	f := newSlotFixture(t)

	// 2026-03-14 is a Saturday, 2026-03-16 the following Monday
	_, err := f.uc.Generate(context.Background(), &dto.GenerateSlotsRequest{
		StartDate: "2026-03-14",
		EndDate:   "2026-03-16",
	})
	require.NoError(t, err)

	assert.Equal(t, []int{6, 1}, f.schedules.queriedWeekdays, "Sunday must not be queried")
}

func TestGenerateSecondRunCreatesNothing(t *testing.T) {
	f := newSlotFixture(t)
	dentistID := uuid.New()
	f.schedules.schedules[1] = []entity.DentistSchedule{
		workingSchedule(dentistID, 1, "09:00:00", "10:00:00"),
	}

	// The repository skips rows that already exist
	f.slots.createBatchFn = func(slots []entity.Slot) (int64, error) {
		if len(f.slots.batches) > 1 {
			return 0, nil
		}
		return int64(len(slots)), nil
	}

	req := &dto.GenerateSlotsRequest{StartDate: "2026-03-09", EndDate: "2026-03-09"}

	resp, err := f.uc.Generate(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.Created)

	resp, err = f.uc.Generate(context.Background(), req)
	require.NoError(t, err)
	assert.Zero(t, resp.Created, "re-generation over the same range is a no-op")
}

func TestGenerateRejectsInvertedRange(t *testing.T) {
	f := newSlotFixture(t)

	_, err := f.uc.Generate(context.Background(), &dto.GenerateSlotsRequest{
		StartDate: "2026-03-16",
		EndDate:   "2026-03-09",
	})
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestCreateRejectsDuplicateSlot(t *testing.T) {
	f := newSlotFixture(t)
	f.slots.findByKeyFn = func(dentistID uuid.UUID, date time.Time, startTime string) (*entity.Slot, error) {
		return &entity.Slot{ID: 1}, nil
	}

	_, err := f.uc.Create(context.Background(), &dto.CreateSlotRequest{
		DentistID: uuid.New(),
		Date:      "2026-03-09",
		StartTime: "09:00",
		EndTime:   "09:30",
	})
	assert.ErrorIs(t, err, ErrSlotExists)
}

func TestDeleteRefusesBookedSlot(t *testing.T) {
	f := newSlotFixture(t)
	dentistID := uuid.New()

	f.slots.findByIDFn = func(id int) (*entity.Slot, error) {
		return &entity.Slot{ID: id, DentistID: dentistID, StartTime: "09:00:00"}, nil
	}
	f.appointments.findActiveBySlotFn = func(dID uuid.UUID, date time.Time, startTime string) (*entity.Appointment, error) {
		return &entity.Appointment{ID: uuid.New(), Status: entity.StatusConfirm}, nil
	}

	err := f.uc.Delete(context.Background(), 1)
	assert.ErrorIs(t, err, ErrSlotBooked)
}

func TestDeleteAllowsUnoccupiedSlot(t *testing.T) {
	f := newSlotFixture(t)
	f.slots.findByIDFn = func(id int) (*entity.Slot, error) {
		return &entity.Slot{ID: id, DentistID: uuid.New(), StartTime: "09:00:00"}, nil
	}

	err := f.uc.Delete(context.Background(), 1)
	assert.NoError(t, err)
}

func TestDentistSlotsDerivesStatus(t *testing.T) {
	f := newSlotFixture(t)
	dentistID := uuid.New()
	date := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)

	available := true
	closed := false
	f.slots.findByDayFn = func(dID uuid.UUID, d time.Time) ([]entity.Slot, error) {
		return []entity.Slot{
			{ID: 1, DentistID: dentistID, SlotDate: date, StartTime: "09:00:00", IsAvailable: &available},
			{ID: 2, DentistID: dentistID, SlotDate: date, StartTime: "09:30:00", IsAvailable: &available},
			{ID: 3, DentistID: dentistID, SlotDate: date, StartTime: "10:00:00", IsAvailable: &closed},
		}, nil
	}
	f.appointments.findByDentistFn = func(dID uuid.UUID, d time.Time) ([]entity.Appointment, error) {
		return []entity.Appointment{
			{DentistID: dentistID, StartTime: "09:00:00", Status: entity.StatusConfirm},
			{DentistID: dentistID, StartTime: "10:00:00", Status: entity.StatusCancel},
		}, nil
	}

	resp, err := f.uc.DentistSlots(context.Background(), dentistID, date)
	require.NoError(t, err)
	require.Len(t, resp.Slots, 3)

	assert.Equal(t, string(entity.SlotStatusBooked), resp.Slots[0].Status)
	assert.Equal(t, string(entity.SlotStatusAvailable), resp.Slots[1].Status)
	assert.Equal(t, string(entity.SlotStatusUnavailable), resp.Slots[2].Status,
		"a cancelled appointment does not book the slot")
}

func TestPurgePastDeletesBeforeToday(t *testing.T) {
	f := newSlotFixture(t)
	f.uc.now = func() time.Time {
		return time.Date(2026, 3, 9, 15, 45, 0, 0, f.uc.location)
	}

	var cutoff time.Time
	f.slots.deleteBeforeFn = func(date time.Time) (int64, error) {
		cutoff = date
		return 12, nil
	}

	deleted, err := f.uc.PurgePast(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(12), deleted)
	assert.Equal(t, time.Date(2026, 3, 9, 0, 0, 0, 0, f.uc.location), cutoff)
}
