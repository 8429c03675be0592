package usecase

import (
	"context"
	"testing"
	"time"

	"dental-clinic-api/config"
	"dental-clinic-api/internal/delivery/dto"
	"dental-clinic-api/internal/delivery/http/middleware"
	"dental-clinic-api/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type appointmentFixture struct {
	uc           *appointmentUsecase
	appointments *fakeAppointmentRepo
	slots        *fakeSlotRepo
	treatments   *fakeTreatmentRepo
	history      *fakeHistoryRepo
	patients     *fakePatientProfileRepo
	notifier     *fakeNotifier
	limiter      *fakeLimiter

	userID  uuid.UUID
	patient *entity.PatientProfile
	now     time.Time
}

// newAppointmentFixture wires the usecase against fakes with a clock frozen
// at Monday 2026-03-09 10:00 Bangkok time.
func newAppointmentFixture(t *testing.T) *appointmentFixture {
	t.Helper()

	db, _ := newTestDB(t)
	loc, err := time.LoadLocation("Asia/Bangkok")
	require.NoError(t, err)

	f := &appointmentFixture{
		appointments: &fakeAppointmentRepo{},
		slots:        &fakeSlotRepo{},
		treatments:   &fakeTreatmentRepo{},
		history:      &fakeHistoryRepo{},
		notifier:     &fakeNotifier{},
		limiter:      &fakeLimiter{allowed: true},
		userID:       uuid.New(),
		now:          time.Date(2026, 3, 9, 10, 0, 0, 0, loc),
	}
	f.patient = &entity.PatientProfile{ID: uuid.New(), UserID: f.userID}
	f.patients = &fakePatientProfileRepo{profile: f.patient}

	available := true
	f.slots.findByKeyFn = func(dentistID uuid.UUID, date time.Time, startTime string) (*entity.Slot, error) {
		return &entity.Slot{ID: 1, DentistID: dentistID, SlotDate: date, StartTime: startTime, IsAvailable: &available}, nil
	}
	f.treatments.findByIDFn = func(id int) (*entity.Treatment, error) {
		return &entity.Treatment{ID: id, Name: "Scaling"}, nil
	}

	clinic := config.ClinicConfig{
		Timezone:    "Asia/Bangkok",
		SlotMinutes: 30,
		MinLeadTime: 24 * time.Hour,
	}

	uc := NewAppointmentUsecase(db, testLogger(), clinic,
		f.appointments, f.slots, f.treatments, f.history,
		f.patients, &fakeDentistProfileRepo{}, f.notifier, f.limiter,
	).(*appointmentUsecase)
	uc.now = func() time.Time { return f.now }

	f.uc = uc
	return f
}

func (f *appointmentFixture) ctx() context.Context {
	return context.WithValue(context.Background(), middleware.UserIDKey, f.userID)
}

func bookRequest() *dto.CreateAppointmentRequest {
	return &dto.CreateAppointmentRequest{
		DentistID:   uuid.New(),
		TreatmentID: 1,
		Date:        "2026-03-11",
		StartTime:   "10:00",
	}
}

func TestBookCreatesPendingAppointment(t *testing.T) {
	f := newAppointmentFixture(t)

	var created *entity.Appointment
	f.appointments.createFn = func(appointment *entity.Appointment) error {
		appointment.ID = uuid.New()
		created = appointment
		return nil
	}
	f.appointments.findByIDFn = func(id uuid.UUID) (*entity.Appointment, error) {
		return created, nil
	}

	resp, err := f.uc.Book(f.ctx(), bookRequest())
	require.NoError(t, err)

	assert.Equal(t, string(entity.StatusPending), resp.Status)
	assert.Equal(t, f.patient.ID, resp.PatientID)
	assert.Equal(t, "10:00:00", created.StartTime, "times are stored as HH:MM:SS")
	assert.Equal(t, 1, f.notifier.newBookings)
}

func TestBookRejectsSunday(t *testing.T) {
	f := newAppointmentFixture(t)

	req := bookRequest()
	req.Date = "2026-03-15"

	_, err := f.uc.Book(f.ctx(), req)
	assert.ErrorIs(t, err, ErrClinicClosedSunday)
}

func TestBookRejectsShortLeadTime(t *testing.T) {
	f := newAppointmentFixture(t)

	// Same day, two hours ahead of the frozen clock
	req := bookRequest()
	req.Date = "2026-03-09"
	req.StartTime = "12:00"

	_, err := f.uc.Book(f.ctx(), req)
	assert.ErrorIs(t, err, ErrBookingTooSoon)
}

func TestBookRateLimited(t *testing.T) {
	f := newAppointmentFixture(t)
	f.limiter.allowed = false

	_, err := f.uc.Book(f.ctx(), bookRequest())
	assert.ErrorIs(t, err, ErrBookingRateLimited)
}

func TestBookRejectsOccupiedSlot(t *testing.T) {
	f := newAppointmentFixture(t)
	f.appointments.findActiveBySlotFn = func(dentistID uuid.UUID, date time.Time, startTime string) (*entity.Appointment, error) {
		return &entity.Appointment{ID: uuid.New(), Status: entity.StatusPending}, nil
	}

	_, err := f.uc.Book(f.ctx(), bookRequest())
	assert.ErrorIs(t, err, ErrSlotTaken)
	assert.Zero(t, f.notifier.newBookings)
}

func TestBookRejectsMissingSlot(t *testing.T) {
	f := newAppointmentFixture(t)
	f.slots.findByKeyFn = func(dentistID uuid.UUID, date time.Time, startTime string) (*entity.Slot, error) {
		return nil, nil
	}

	_, err := f.uc.Book(f.ctx(), bookRequest())
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestBookRejectsTreatmentMismatch(t *testing.T) {
	f := newAppointmentFixture(t)

	available := true
	reserved := 7
	f.slots.findByKeyFn = func(dentistID uuid.UUID, date time.Time, startTime string) (*entity.Slot, error) {
		return &entity.Slot{ID: 1, IsAvailable: &available, TreatmentID: &reserved}, nil
	}

	_, err := f.uc.Book(f.ctx(), bookRequest())
	assert.ErrorIs(t, err, ErrSlotTreatmentMismatch)
}

func TestConfirmRejectsIllegalTransition(t *testing.T) {
	f := newAppointmentFixture(t)
	f.appointments.findByIDFn = func(id uuid.UUID) (*entity.Appointment, error) {
		return &entity.Appointment{ID: id, Status: entity.StatusCompleted}, nil
	}

	err := f.uc.Confirm(f.ctx(), uuid.New())
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Zero(t, f.notifier.confirmed)
}

func TestConfirmReportsLostRace(t *testing.T) {
	f := newAppointmentFixture(t)
	f.appointments.findByIDFn = func(id uuid.UUID) (*entity.Appointment, error) {
		return &entity.Appointment{ID: id, Status: entity.StatusPending}, nil
	}
	f.appointments.updateStatusFn = func(id uuid.UUID, from, to entity.AppointmentStatus) (int64, error) {
		return 0, nil
	}

	err := f.uc.Confirm(f.ctx(), uuid.New())
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCompleteRequiresTreatmentHistory(t *testing.T) {
	f := newAppointmentFixture(t)
	f.appointments.findByIDFn = func(id uuid.UUID) (*entity.Appointment, error) {
		return &entity.Appointment{ID: id, Status: entity.StatusWaitingForTreatment}, nil
	}

	err := f.uc.Complete(f.ctx(), uuid.New())
	assert.ErrorIs(t, err, ErrTreatmentHistoryMissing)

	f.history.exists = true
	err = f.uc.Complete(f.ctx(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, []entity.AppointmentStatus{entity.StatusCompleted}, f.appointments.statusUpdates)
}

func TestCancelByPatientChecksOwnership(t *testing.T) {
	f := newAppointmentFixture(t)
	f.appointments.findByIDFn = func(id uuid.UUID) (*entity.Appointment, error) {
		return &entity.Appointment{ID: id, PatientID: uuid.New(), Status: entity.StatusPending}, nil
	}

	ctx := context.WithValue(f.ctx(), middleware.RoleIDKey, entity.RoleIDPatient)
	err := f.uc.Cancel(ctx, uuid.New(), &dto.CancelAppointmentRequest{Reason: "cannot make it"})
	assert.ErrorIs(t, err, ErrAppointmentNotOwned)
}

func TestCancelRejectsWaitingForTreatment(t *testing.T) {
	f := newAppointmentFixture(t)
	f.appointments.findByIDFn = func(id uuid.UUID) (*entity.Appointment, error) {
		return &entity.Appointment{ID: id, PatientID: f.patient.ID, Status: entity.StatusWaitingForTreatment}, nil
	}

	ctx := context.WithValue(f.ctx(), middleware.RoleIDKey, entity.RoleIDPatient)
	err := f.uc.Cancel(ctx, uuid.New(), &dto.CancelAppointmentRequest{})
	assert.ErrorIs(t, err, ErrCancelNotAllowedFromStatus)
}

func TestCancelNotifiesCounterParty(t *testing.T) {
	f := newAppointmentFixture(t)
	f.appointments.findByIDFn = func(id uuid.UUID) (*entity.Appointment, error) {
		return &entity.Appointment{ID: id, PatientID: f.patient.ID, Status: entity.StatusConfirm}, nil
	}

	ctx := context.WithValue(f.ctx(), middleware.RoleIDKey, entity.RoleIDPatient)
	err := f.uc.Cancel(ctx, uuid.New(), &dto.CancelAppointmentRequest{Reason: "sick"})
	require.NoError(t, err)
	assert.Equal(t, 1, f.notifier.cancelled)
}

func TestAutoCancelSweep(t *testing.T) {
	f := newAppointmentFixture(t)

	overdue := []entity.Appointment{
		{ID: uuid.New(), Status: entity.StatusWaitingForTreatment},
		{ID: uuid.New(), Status: entity.StatusWaitingForTreatment},
	}
	f.appointments.overdueWaitingFn = func(cutoff time.Time) ([]entity.Appointment, error) {
		assert.Equal(t, f.now.Add(-2*time.Hour), cutoff)
		return overdue, nil
	}

	// The second appointment loses the race: another writer moved it first
	f.appointments.updateStatusFn = func(id uuid.UUID, from, to entity.AppointmentStatus) (int64, error) {
		assert.Equal(t, entity.StatusWaitingForTreatment, from)
		assert.Equal(t, entity.StatusAutoCancelled, to)
		if id == overdue[1].ID {
			return 0, nil
		}
		return 1, nil
	}

	summary, err := f.uc.AutoCancelSweep(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Processed)
	assert.Zero(t, summary.Failed)
	assert.Equal(t, 1, f.notifier.autoCancelled)
}

func TestBookMapsUniqueViolationToSlotTaken(t *testing.T) {
	f := newAppointmentFixture(t)

	// Both racers passed the occupancy check; the loser hits the partial
	// unique index on insert.
	f.appointments.createFn = func(appointment *entity.Appointment) error {
		return &pgconn.PgError{Code: "23505", ConstraintName: "uniq_active_appointment_slot"}
	}

	_, err := f.uc.Book(f.ctx(), bookRequest())
	assert.ErrorIs(t, err, ErrSlotTaken)
	assert.Zero(t, f.notifier.newBookings)
}
