package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedContent(now time.Time) *contentService {
	svc := NewContentService().(*contentService)
	svc.now = func() time.Time { return now }
	return svc
}

func TestCourses_ListOmitsDetail(t *testing.T) {
	svc := NewContentService()

	list := svc.Courses()
	require.NotEmpty(t, list)
	for _, c := range list {
		assert.Empty(t, c.Syllabus)
		assert.Empty(t, c.Instructor)
	}

	detail, err := svc.Course(list[0].ID)
	require.NoError(t, err)
	assert.NotEmpty(t, detail.Syllabus)
	assert.NotEmpty(t, detail.Instructor)

	_, err = svc.Course(999)
	assert.ErrorIs(t, err, ErrCourseNotFound)
}

func TestCalendar_EventsRelativeToNow(t *testing.T) {
	now := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	svc := fixedContent(now)

	all := svc.CalendarEvents()
	require.Len(t, all, 3)
	for _, ev := range all {
		assert.True(t, ev.StartTime.After(now))
		assert.True(t, ev.EndTime.After(ev.StartTime))
		assert.Empty(t, ev.Reminders)
	}

	upcoming := svc.UpcomingEvents(7 * 24 * time.Hour)
	assert.Len(t, upcoming, 2)

	ev, err := svc.CalendarEvent(1)
	require.NoError(t, err)
	assert.Len(t, ev.Reminders, 2)

	_, err = svc.CalendarEvent(42)
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestStaticCatalogs(t *testing.T) {
	svc := NewContentService()

	assert.NotEmpty(t, svc.Appointments())
	assert.NotNil(t, svc.HealthRecords())
	assert.NotEmpty(t, svc.Equipment())
	assert.NotEmpty(t, svc.Resources())
	assert.Empty(t, svc.Enrollments())
	assert.NotEmpty(t, svc.MarketPrices().Prices)

	packages := svc.TravelPackages()
	require.Len(t, packages, 3)
	for _, p := range packages {
		assert.True(t, p.Price.IsPositive())
		assert.Equal(t, "NPR", p.Currency)
	}
}
