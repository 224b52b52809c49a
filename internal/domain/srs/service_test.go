package srs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/domain"
	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/histogram"
)

func TestNewDefaultService(t *testing.T) {
	t.Parallel()
	service, err := NewDefaultService()
	require.NoError(t, err, "Failed to create scheduling service")
	require.NotNil(t, service)

	defaultSvc, ok := service.(*defaultService)
	require.True(t, ok, "Expected *defaultService type")
	assert.NotNil(t, defaultSvc.settings)
	assert.Equal(t, *NewDefaultSettings(), service.Settings())
}

func TestNewServiceWithSettings(t *testing.T) {
	t.Parallel()

	_, err := NewServiceWithSettings(nil)
	assert.ErrorIs(t, err, ErrInvalidSettings)

	bad := NewDefaultSettings()
	bad.BaseEase = 100
	_, err = NewServiceWithSettings(bad)
	assert.ErrorIs(t, err, ErrInvalidSettings)

	custom := NewDefaultSettings()
	custom.EasyBonus = 2
	service, err := NewServiceWithSettings(custom)
	require.NoError(t, err)

	// Later changes to the caller's settings do not leak into the service.
	custom.EasyBonus = 3
	assert.Equal(t, 2.0, service.Settings().EasyBonus)
}

func TestCalculateNextReview(t *testing.T) {
	t.Parallel()
	service, err := NewDefaultService()
	require.NoError(t, err)
	today := domain.Today(testNow)

	t.Run("easy scenario", func(t *testing.T) {
		current := record(t, 0, 4, 270)
		next, err := service.CalculateNextReview(current, domain.ResponseEasy, 0, nil, testNow)
		require.NoError(t, err)
		assert.Equal(t, 15.1, next.Interval)
		assert.Equal(t, 290.0, next.Ease)

		// The input record is not modified.
		assert.Equal(t, 4.0, current.Interval)
		assert.Equal(t, 270.0, current.Ease)
	})

	t.Run("hard scenario", func(t *testing.T) {
		next, err := service.CalculateNextReview(record(t, 0, 4, 270), domain.ResponseHard, 0, nil, testNow)
		require.NoError(t, err)
		assert.Equal(t, 2.0, next.Interval)
		assert.Equal(t, 250.0, next.Ease)
		assert.Equal(t, domain.AddDays(today, 2), next.DueDate)
	})

	t.Run("new item without initial ease uses base ease", func(t *testing.T) {
		next, err := service.CalculateNextReview(nil, domain.ResponseGood, 0, histogram.New(), testNow)
		require.NoError(t, err)
		assert.Equal(t, 3.0, next.Interval)
		assert.Equal(t, 250.0, next.Ease)
	})

	t.Run("invalid response", func(t *testing.T) {
		_, err := service.CalculateNextReview(nil, domain.ReviewResponse(42), 0, nil, testNow)
		assert.ErrorIs(t, err, domain.ErrInvalidResponse)
	})

	t.Run("invalid current schedule", func(t *testing.T) {
		bad := &domain.ScheduleRecord{DueDate: today, Interval: -1, Ease: 250}
		_, err := service.CalculateNextReview(bad, domain.ResponseGood, 0, nil, testNow)
		assert.ErrorIs(t, err, domain.ErrInvalidSchedule)
	})
}

func TestPostponeSchedule(t *testing.T) {
	t.Parallel()
	service, err := NewDefaultService()
	require.NoError(t, err)
	today := domain.Today(testNow)

	testCases := []struct {
		name    string
		record  *domain.ScheduleRecord
		days    int
		wantDue time.Time
		wantErr error
	}{
		{
			name:    "future due date moves forward",
			record:  record(t, 2, 4, 250),
			days:    3,
			wantDue: domain.AddDays(today, 5),
		},
		{
			name:    "overdue item is postponed from today",
			record:  record(t, -5, 4, 250),
			days:    1,
			wantDue: domain.AddDays(today, 1),
		},
		{
			name:    "zero days rejected",
			record:  record(t, 0, 4, 250),
			days:    0,
			wantErr: ErrInvalidDays,
		},
		{
			name:    "nil record rejected",
			days:    1,
			wantErr: ErrNilSchedule,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			postponed, err := service.PostponeSchedule(tc.record, tc.days, testNow)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantDue, postponed.DueDate)
			assert.Equal(t, tc.record.Interval, postponed.Interval)
		})
	}
}

func TestServiceInitialEase(t *testing.T) {
	t.Parallel()
	service, err := NewDefaultService()
	require.NoError(t, err)

	eases := NewEaseList()
	eases.Add("a.md", 280)
	assert.Equal(t, 280.0, service.InitialCardEase("a.md", eases))
	assert.Equal(t, 265.0, service.InitialNoteEase(nil, "a.md", eases))
	assert.Equal(t, 250.0, service.InitialNoteEase(nil, "b.md", eases))
}
