package usecase

import (
	"context"
	"io"
	"testing"
	"time"

	"dental-clinic-api/internal/delivery/dto"
	"dental-clinic-api/internal/domain/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens a gorm handle over sqlmock. Most fakes ignore the *gorm.DB
// they receive, but the usecases still dereference it for WithContext, so it
// has to be real.
func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// Repository fakes. Function fields default to empty results so each test
// only wires the calls it cares about.

type fakeAppointmentRepo struct {
	createFn           func(appointment *entity.Appointment) error
	findByIDFn         func(id uuid.UUID) (*entity.Appointment, error)
	findActiveBySlotFn func(dentistID uuid.UUID, date time.Time, startTime string) (*entity.Appointment, error)
	findByDentistFn    func(dentistID uuid.UUID, date time.Time) ([]entity.Appointment, error)
	updateStatusFn     func(id uuid.UUID, from, to entity.AppointmentStatus) (int64, error)
	overdueWaitingFn   func(cutoff time.Time) ([]entity.Appointment, error)

	statusUpdates []entity.AppointmentStatus
}

func (f *fakeAppointmentRepo) Create(db *gorm.DB, appointment *entity.Appointment) error {
	if f.createFn != nil {
		return f.createFn(appointment)
	}
	return nil
}

func (f *fakeAppointmentRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(id)
	}
	return nil, nil
}

func (f *fakeAppointmentRepo) FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Appointment, error) {
	return nil, nil
}

func (f *fakeAppointmentRepo) FindByDentistAndDate(db *gorm.DB, dentistID uuid.UUID, date time.Time) ([]entity.Appointment, error) {
	if f.findByDentistFn != nil {
		return f.findByDentistFn(dentistID, date)
	}
	return nil, nil
}

func (f *fakeAppointmentRepo) FindAll(db *gorm.DB, limit, offset int) ([]entity.Appointment, int64, error) {
	return nil, 0, nil
}

func (f *fakeAppointmentRepo) FindActiveBySlot(db *gorm.DB, dentistID uuid.UUID, date time.Time, startTime string) (*entity.Appointment, error) {
	if f.findActiveBySlotFn != nil {
		return f.findActiveBySlotFn(dentistID, date, startTime)
	}
	return nil, nil
}

func (f *fakeAppointmentRepo) UpdateStatus(db *gorm.DB, id uuid.UUID, from, to entity.AppointmentStatus) (int64, error) {
	f.statusUpdates = append(f.statusUpdates, to)
	if f.updateStatusFn != nil {
		return f.updateStatusFn(id, from, to)
	}
	return 1, nil
}

func (f *fakeAppointmentRepo) UpdateStatusWithReason(db *gorm.DB, id uuid.UUID, from, to entity.AppointmentStatus, reason string) (int64, error) {
	f.statusUpdates = append(f.statusUpdates, to)
	if f.updateStatusFn != nil {
		return f.updateStatusFn(id, from, to)
	}
	return 1, nil
}

func (f *fakeAppointmentRepo) FindForDate(db *gorm.DB, date time.Time, statuses []entity.AppointmentStatus) ([]entity.Appointment, error) {
	return nil, nil
}

func (f *fakeAppointmentRepo) FindStartingBetween(db *gorm.DB, from, to time.Time, statuses []entity.AppointmentStatus) ([]entity.Appointment, error) {
	return nil, nil
}

func (f *fakeAppointmentRepo) FindOverdueWaiting(db *gorm.DB, cutoff time.Time) ([]entity.Appointment, error) {
	if f.overdueWaitingFn != nil {
		return f.overdueWaitingFn(cutoff)
	}
	return nil, nil
}

type fakeSlotRepo struct {
	createFn       func(slot *entity.Slot) error
	createBatchFn  func(slots []entity.Slot) (int64, error)
	findByIDFn     func(id int) (*entity.Slot, error)
	findByKeyFn    func(dentistID uuid.UUID, date time.Time, startTime string) (*entity.Slot, error)
	findByDayFn    func(dentistID uuid.UUID, date time.Time) ([]entity.Slot, error)
	deleteFn       func(id int) (int64, error)
	deleteBeforeFn func(date time.Time) (int64, error)

	batches [][]entity.Slot
}

func (f *fakeSlotRepo) Create(db *gorm.DB, slot *entity.Slot) error {
	if f.createFn != nil {
		return f.createFn(slot)
	}
	return nil
}

func (f *fakeSlotRepo) CreateSkipExisting(db *gorm.DB, slots []entity.Slot) (int64, error) {
	f.batches = append(f.batches, slots)
	if f.createBatchFn != nil {
		return f.createBatchFn(slots)
	}
	return int64(len(slots)), nil
}

func (f *fakeSlotRepo) FindByID(db *gorm.DB, id int) (*entity.Slot, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(id)
	}
	return nil, nil
}

func (f *fakeSlotRepo) FindByKey(db *gorm.DB, dentistID uuid.UUID, date time.Time, startTime string) (*entity.Slot, error) {
	if f.findByKeyFn != nil {
		return f.findByKeyFn(dentistID, date, startTime)
	}
	return nil, nil
}

func (f *fakeSlotRepo) FindByDentistAndDate(db *gorm.DB, dentistID uuid.UUID, date time.Time) ([]entity.Slot, error) {
	if f.findByDayFn != nil {
		return f.findByDayFn(dentistID, date)
	}
	return nil, nil
}

func (f *fakeSlotRepo) SetAvailability(db *gorm.DB, id int, available bool) (int64, error) {
	return 1, nil
}

func (f *fakeSlotRepo) Delete(db *gorm.DB, id int) (int64, error) {
	if f.deleteFn != nil {
		return f.deleteFn(id)
	}
	return 1, nil
}

func (f *fakeSlotRepo) DeleteBefore(db *gorm.DB, date time.Time) (int64, error) {
	if f.deleteBeforeFn != nil {
		return f.deleteBeforeFn(date)
	}
	return 0, nil
}

type fakeTreatmentRepo struct {
	findByIDFn func(id int) (*entity.Treatment, error)
}

func (f *fakeTreatmentRepo) Create(db *gorm.DB, treatment *entity.Treatment) error { return nil }

func (f *fakeTreatmentRepo) FindByID(db *gorm.DB, id int) (*entity.Treatment, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(id)
	}
	return nil, nil
}

func (f *fakeTreatmentRepo) FindAll(db *gorm.DB) ([]entity.Treatment, error) { return nil, nil }

func (f *fakeTreatmentRepo) Update(db *gorm.DB, treatment *entity.Treatment) error { return nil }

func (f *fakeTreatmentRepo) Delete(db *gorm.DB, id int) (int64, error) { return 1, nil }

type fakeHistoryRepo struct {
	exists bool
}

func (f *fakeHistoryRepo) Create(db *gorm.DB, history *entity.TreatmentHistory) error { return nil }

func (f *fakeHistoryRepo) FindByAppointmentID(db *gorm.DB, appointmentID uuid.UUID) (*entity.TreatmentHistory, error) {
	return nil, nil
}

func (f *fakeHistoryRepo) ExistsForAppointment(db *gorm.DB, appointmentID uuid.UUID) (bool, error) {
	return f.exists, nil
}

func (f *fakeHistoryRepo) FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.TreatmentHistory, error) {
	return nil, nil
}

type fakePatientProfileRepo struct {
	profile *entity.PatientProfile
}

func (f *fakePatientProfileRepo) Create(ctx context.Context, db *gorm.DB, profile *entity.PatientProfile) error {
	return nil
}

func (f *fakePatientProfileRepo) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.PatientProfile, error) {
	return f.profile, nil
}

func (f *fakePatientProfileRepo) FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.PatientProfile, error) {
	return f.profile, nil
}

type fakeDentistProfileRepo struct {
	profile *entity.DentistProfile
}

func (f *fakeDentistProfileRepo) Create(ctx context.Context, db *gorm.DB, profile *entity.DentistProfile) error {
	return nil
}

func (f *fakeDentistProfileRepo) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.DentistProfile, error) {
	return f.profile, nil
}

func (f *fakeDentistProfileRepo) FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.DentistProfile, error) {
	return f.profile, nil
}

func (f *fakeDentistProfileRepo) FindAll(ctx context.Context, db *gorm.DB) ([]entity.DentistProfile, error) {
	if f.profile == nil {
		return nil, nil
	}
	return []entity.DentistProfile{*f.profile}, nil
}

type fakeScheduleRepo struct {
	schedules map[int][]entity.DentistSchedule

	queriedWeekdays []int
}

func (f *fakeScheduleRepo) Upsert(db *gorm.DB, schedule *entity.DentistSchedule) error { return nil }

func (f *fakeScheduleRepo) FindByDentistID(db *gorm.DB, dentistID uuid.UUID) ([]entity.DentistSchedule, error) {
	return nil, nil
}

func (f *fakeScheduleRepo) FindWorkingByWeekday(db *gorm.DB, weekday int) ([]entity.DentistSchedule, error) {
	f.queriedWeekdays = append(f.queriedWeekdays, weekday)
	return f.schedules[weekday], nil
}

func (f *fakeScheduleRepo) Delete(db *gorm.DB, id int) (int64, error) { return 1, nil }

type fakeUserRepo struct {
	user             *entity.User
	updatePasswordFn func(id uuid.UUID, hash string) (int64, error)

	lastPasswordHash string
}

func (f *fakeUserRepo) Create(db *gorm.DB, user *entity.User) error { return nil }

func (f *fakeUserRepo) FindByEmail(db *gorm.DB, email string) (*entity.User, error) {
	if f.user != nil && f.user.Email == email {
		return f.user, nil
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.User, error) {
	return f.user, nil
}

func (f *fakeUserRepo) UpdatePassword(db *gorm.DB, id uuid.UUID, passwordHash string) (int64, error) {
	f.lastPasswordHash = passwordHash
	if f.updatePasswordFn != nil {
		return f.updatePasswordFn(id, passwordHash)
	}
	return 1, nil
}

type fakeResetRepo struct {
	findByTokenFn func(token string) (*entity.PasswordReset, error)
	markUsedFn    func(id int64, usedAt time.Time) (int64, error)

	created       []entity.PasswordReset
	deletedEmails []string
	usedIDs       []int64
}

func (f *fakeResetRepo) Create(db *gorm.DB, reset *entity.PasswordReset) error {
	f.created = append(f.created, *reset)
	return nil
}

func (f *fakeResetRepo) FindByToken(db *gorm.DB, token string) (*entity.PasswordReset, error) {
	if f.findByTokenFn != nil {
		return f.findByTokenFn(token)
	}
	return nil, nil
}

func (f *fakeResetRepo) DeleteByEmail(db *gorm.DB, email string) (int64, error) {
	f.deletedEmails = append(f.deletedEmails, email)
	return 0, nil
}

func (f *fakeResetRepo) MarkUsed(db *gorm.DB, id int64, usedAt time.Time) (int64, error) {
	f.usedIDs = append(f.usedIDs, id)
	if f.markUsedFn != nil {
		return f.markUsedFn(id, usedAt)
	}
	return 1, nil
}

func (f *fakeResetRepo) DeleteExpiredOrUsed(db *gorm.DB, now time.Time) (int64, error) {
	return 0, nil
}

type fakeMailer struct {
	resetTokens   []string
	changedEmails []string
}

func (f *fakeMailer) SendResetPasswordEmail(email, token string) error {
	f.resetTokens = append(f.resetTokens, token)
	return nil
}

func (f *fakeMailer) SendPasswordChangedEmail(email string) error {
	f.changedEmails = append(f.changedEmails, email)
	return nil
}

type fakeLimiter struct {
	allowed bool
}

func (f *fakeLimiter) Allow(ctx context.Context, key string) (bool, error) {
	return f.allowed, nil
}

// fakeNotifier counts lifecycle events instead of writing rows
type fakeNotifier struct {
	newBookings   int
	confirmed     int
	cancelled     int
	reminders     int
	upcoming      int
	noShows       int
	autoCancelled int
	treatments    int
}

func (f *fakeNotifier) List(ctx context.Context, userID uuid.UUID, roleID int, query ListNotificationsQuery) (*dto.NotificationListResponse, error) {
	return nil, nil
}

func (f *fakeNotifier) MarkRead(ctx context.Context, userID uuid.UUID, roleID int, id int64) error {
	return nil
}

func (f *fakeNotifier) MarkAllRead(ctx context.Context, userID uuid.UUID, roleID int) error {
	return nil
}

func (f *fakeNotifier) UnreadCount(ctx context.Context, userID uuid.UUID, roleID int) (int64, error) {
	return 0, nil
}

func (f *fakeNotifier) Delete(ctx context.Context, userID uuid.UUID, roleID int, id int64) error {
	return nil
}

func (f *fakeNotifier) Dispatch(ctx context.Context, notification *entity.Notification) error {
	return nil
}

func (f *fakeNotifier) NotifyNewBooking(ctx context.Context, appointment *entity.Appointment) {
	f.newBookings++
}

func (f *fakeNotifier) NotifyConfirmed(ctx context.Context, appointment *entity.Appointment) {
	f.confirmed++
}

func (f *fakeNotifier) NotifyCancelled(ctx context.Context, appointment *entity.Appointment, cancelledByPatient bool, reason string) {
	f.cancelled++
}

func (f *fakeNotifier) NotifyReminder(ctx context.Context, appointment *entity.Appointment) error {
	f.reminders++
	return nil
}

func (f *fakeNotifier) NotifyUpcoming(ctx context.Context, appointment *entity.Appointment) error {
	f.upcoming++
	return nil
}

func (f *fakeNotifier) NotifyPossibleNoShow(ctx context.Context, appointment *entity.Appointment) error {
	f.noShows++
	return nil
}

func (f *fakeNotifier) NotifyAutoCancelled(ctx context.Context, appointment *entity.Appointment) error {
	f.autoCancelled++
	return nil
}

func (f *fakeNotifier) NotifyTreatmentRecorded(ctx context.Context, appointment *entity.Appointment) {
	f.treatments++
}
