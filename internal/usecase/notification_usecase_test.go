package usecase

import (
	"context"
	"testing"
	"time"

	"dental-clinic-api/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeNotificationRepo struct {
	findByIDFn func(id int64) (*entity.Notification, error)

	lastFilter    *entity.NotificationFilter
	markedRead    []int64
	markedAll     []entity.NotificationScope
	deleted       []int64
	dispatched    []entity.Notification
	unreadByScope int64
}

func (f *fakeNotificationRepo) Create(db *gorm.DB, notification *entity.Notification) error {
	f.dispatched = append(f.dispatched, *notification)
	return nil
}

func (f *fakeNotificationRepo) FindByID(db *gorm.DB, id int64) (*entity.Notification, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(id)
	}
	return nil, nil
}

func (f *fakeNotificationRepo) List(db *gorm.DB, filter *entity.NotificationFilter) ([]entity.Notification, int64, error) {
	f.lastFilter = filter
	return nil, 0, nil
}

func (f *fakeNotificationRepo) MarkRead(db *gorm.DB, id int64) (int64, error) {
	f.markedRead = append(f.markedRead, id)
	return 1, nil
}

func (f *fakeNotificationRepo) MarkAllRead(db *gorm.DB, scope entity.NotificationScope) (int64, error) {
	f.markedAll = append(f.markedAll, scope)
	return 1, nil
}

func (f *fakeNotificationRepo) CountUnread(db *gorm.DB, scope entity.NotificationScope) (int64, error) {
	return f.unreadByScope, nil
}

func (f *fakeNotificationRepo) Delete(db *gorm.DB, id int64) (int64, error) {
	f.deleted = append(f.deleted, id)
	return 1, nil
}

func (f *fakeNotificationRepo) DeleteReadOlderThan(db *gorm.DB, cutoff time.Time) (int64, error) {
	return 0, nil
}

type notificationFixture struct {
	uc       NotificationUsecase
	repo     *fakeNotificationRepo
	patients *fakePatientProfileRepo
	dentists *fakeDentistProfileRepo
}

func newNotificationFixture(t *testing.T) *notificationFixture {
	t.Helper()

	db, _ := newTestDB(t)
	f := &notificationFixture{
		repo:     &fakeNotificationRepo{},
		patients: &fakePatientProfileRepo{},
		dentists: &fakeDentistProfileRepo{},
	}
	f.uc = NewNotificationUsecase(db, testLogger(), f.repo, f.patients, f.dentists)
	return f
}

func TestListClampsLimitAndResolvesPatientScope(t *testing.T) {
	f := newNotificationFixture(t)
	userID := uuid.New()
	patientID := uuid.New()
	f.patients.profile = &entity.PatientProfile{ID: patientID, UserID: userID}

	_, err := f.uc.List(context.Background(), userID, entity.RoleIDPatient, ListNotificationsQuery{Limit: 500})
	require.NoError(t, err)

	require.NotNil(t, f.repo.lastFilter)
	assert.Equal(t, maxNotificationLimit, f.repo.lastFilter.Limit)
	require.NotNil(t, f.repo.lastFilter.Scope.PatientID)
	assert.Equal(t, patientID, *f.repo.lastFilter.Scope.PatientID)
	assert.Nil(t, f.repo.lastFilter.Scope.DentistID)
}

func TestListDefaultsLimit(t *testing.T) {
	f := newNotificationFixture(t)

	_, err := f.uc.List(context.Background(), uuid.New(), entity.RoleIDAdmin, ListNotificationsQuery{})
	require.NoError(t, err)

	assert.Equal(t, defaultNotificationLimit, f.repo.lastFilter.Limit)
	assert.True(t, f.repo.lastFilter.Scope.IsAdmin())
}

func TestListFailsWithoutProfile(t *testing.T) {
	f := newNotificationFixture(t)

	_, err := f.uc.List(context.Background(), uuid.New(), entity.RoleIDPatient, ListNotificationsQuery{})
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestMarkReadRejectsForeignNotification(t *testing.T) {
	f := newNotificationFixture(t)
	userID := uuid.New()
	f.patients.profile = &entity.PatientProfile{ID: uuid.New(), UserID: userID}

	otherPatient := uuid.New()
	f.repo.findByIDFn = func(id int64) (*entity.Notification, error) {
		return &entity.Notification{ID: id, PatientID: &otherPatient}, nil
	}

	err := f.uc.MarkRead(context.Background(), userID, entity.RoleIDPatient, 7)
	assert.ErrorIs(t, err, ErrNotificationNotOwned)
	assert.Empty(t, f.repo.markedRead)
}

func TestMarkReadOwnNotification(t *testing.T) {
	f := newNotificationFixture(t)
	userID := uuid.New()
	patientID := uuid.New()
	f.patients.profile = &entity.PatientProfile{ID: patientID, UserID: userID}

	f.repo.findByIDFn = func(id int64) (*entity.Notification, error) {
		return &entity.Notification{ID: id, PatientID: &patientID}, nil
	}

	err := f.uc.MarkRead(context.Background(), userID, entity.RoleIDPatient, 7)
	require.NoError(t, err)
	assert.Equal(t, []int64{7}, f.repo.markedRead)
}

func TestAdminOwnsOnlyBroadcastRows(t *testing.T) {
	f := newNotificationFixture(t)
	patientID := uuid.New()

	f.repo.findByIDFn = func(id int64) (*entity.Notification, error) {
		if id == 1 {
			return &entity.Notification{ID: 1}, nil
		}
		return &entity.Notification{ID: id, PatientID: &patientID}, nil
	}

	err := f.uc.MarkRead(context.Background(), uuid.New(), entity.RoleIDAdmin, 1)
	assert.NoError(t, err)

	err = f.uc.MarkRead(context.Background(), uuid.New(), entity.RoleIDAdmin, 2)
	assert.ErrorIs(t, err, ErrNotificationNotOwned)
}

func TestDispatchResetsReadFlags(t *testing.T) {
	f := newNotificationFixture(t)

	err := f.uc.Dispatch(context.Background(), &entity.Notification{
		Type:   entity.NotificationReminder,
		IsRead: true,
		IsNew:  false,
	})
	require.NoError(t, err)

	require.Len(t, f.repo.dispatched, 1)
	assert.False(t, f.repo.dispatched[0].IsRead)
	assert.True(t, f.repo.dispatched[0].IsNew)
}

func TestNotifyNewBookingAddressesAdminAndDentist(t *testing.T) {
	f := newNotificationFixture(t)
	patientID := uuid.New()
	dentistID := uuid.New()

	f.uc.NotifyNewBooking(context.Background(), &entity.Appointment{
		ID:        uuid.New(),
		PatientID: patientID,
		DentistID: dentistID,
		Date:      time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC),
		StartTime: "10:00:00",
	})

	require.Len(t, f.repo.dispatched, 2)

	admin := f.repo.dispatched[0]
	assert.True(t, admin.IsAdmin())
	assert.Equal(t, entity.NotificationNewBooking, admin.Type)

	dentist := f.repo.dispatched[1]
	require.NotNil(t, dentist.DentistID)
	assert.Equal(t, dentistID, *dentist.DentistID)
}
