package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"

	"boiler-ai/backend/internal/model"
)

// ── iCalendar export ────────────────────────────────────────
//
// One weekly VEVENT per course with a usable schedule_info:
//   - DTSTART/DTEND on the first meeting day on or after the term start
//   - RRULE FREQ=WEEKLY;BYDAY=<days>;UNTIL=<last day of term>
//   - floating local times, so calendar apps show the class time as written
// Courses without days or a parseable start/end are skipped.
// ─────────────────────────────────────────────────────────────

const icsLocalLayout = "20060102T150405"

var icsWeekdays = map[string]time.Weekday{
	"sun": time.Sunday, "sunday": time.Sunday, "su": time.Sunday,
	"mon": time.Monday, "monday": time.Monday, "mo": time.Monday, "m": time.Monday,
	"tue": time.Tuesday, "tuesday": time.Tuesday, "tu": time.Tuesday, "t": time.Tuesday,
	"wed": time.Wednesday, "wednesday": time.Wednesday, "we": time.Wednesday, "w": time.Wednesday,
	"thu": time.Thursday, "thursday": time.Thursday, "th": time.Thursday, "r": time.Thursday,
	"fri": time.Friday, "friday": time.Friday, "fr": time.Friday, "f": time.Friday,
	"sat": time.Saturday, "saturday": time.Saturday, "sa": time.Saturday,
}

var rruleDays = [...]string{"SU", "MO", "TU", "WE", "TH", "FR", "SA"}

// classMeeting weekly meeting pattern parsed from schedule_info
type classMeeting struct {
	days     []time.Weekday
	start    time.Duration // offset from midnight
	end      time.Duration
	location string
}

func (s *exportService) ScheduleCalendar(ctx context.Context, caller Caller, scheduleID string) ([]byte, string, error) {
	schedule, err := loadOwnedSchedule(ctx, s.repo, s.logger, caller, scheduleID)
	if err != nil {
		return nil, "", err
	}

	termStart, weeks, err := s.calendar.TermStart(schedule.Semester, schedule.Year)
	if err != nil {
		s.logger.Error("no calendar for term", zap.String("semester", schedule.Semester), zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	courses, err := s.repo.Schedule.ListCourses(ctx, schedule.ScheduleID)
	if err != nil {
		s.logger.Error("failed to list schedule courses", zap.String("schedule_id", scheduleID), zap.Error(err))
		return nil, "", err
	}

	cal := BuildCalendar(schedule, courses, termStart, weeks, time.Now())
	filename := fmt.Sprintf("schedule_%s_%d.ics", strings.ToLower(schedule.Semester), schedule.Year)
	return []byte(cal.Serialize()), filename, nil
}

// BuildCalendar renders the schedule's courses as recurring events.
func BuildCalendar(schedule *model.Schedule, courses []model.Course, termStart time.Time, weeks int, now time.Time) *ics.Calendar {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//Boiler AI//Schedule Export//EN")
	cal.SetName(fmt.Sprintf("%s %d", schedule.Semester, schedule.Year))

	termEnd := termStart.AddDate(0, 0, weeks*7-1)
	until := time.Date(termEnd.Year(), termEnd.Month(), termEnd.Day(), 23, 59, 59, 0, termEnd.Location())

	for _, c := range courses {
		m, ok := parseMeeting(c.ScheduleInfo)
		if !ok {
			continue
		}

		first := firstMeetingDay(termStart, m.days)
		if first.After(termEnd) {
			continue
		}

		event := cal.AddEvent(fmt.Sprintf("%s-%s@boiler-ai", schedule.ScheduleID, c.CourseID))
		event.SetDtStampTime(now)
		event.SetProperty(ics.ComponentPropertyDtStart, first.Add(m.start).Format(icsLocalLayout))
		event.SetProperty(ics.ComponentPropertyDtEnd, first.Add(m.end).Format(icsLocalLayout))
		event.SetProperty(ics.ComponentPropertyRrule, weeklyRule(m.days, until))
		event.SetSummary(fmt.Sprintf("%s: %s", c.CourseCode, c.Title))
		if m.location != "" {
			event.SetLocation(m.location)
		}
		event.SetDescription(fmt.Sprintf("%s (%.1f credits)", c.Major, c.Credits))
	}
	return cal
}

func parseMeeting(j model.JSON) (classMeeting, bool) {
	info := decodeScheduleInfo(j)

	seen := map[time.Weekday]bool{}
	var days []time.Weekday
	for _, d := range info.Days {
		wd, ok := icsWeekdays[strings.ToLower(strings.TrimSpace(d))]
		if ok && !seen[wd] {
			seen[wd] = true
			days = append(days, wd)
		}
	}
	if len(days) == 0 {
		return classMeeting{}, false
	}
	sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })

	start, err1 := clockOffset(info.Start)
	end, err2 := clockOffset(info.End)
	if err1 != nil || err2 != nil || end <= start {
		return classMeeting{}, false
	}

	return classMeeting{days: days, start: start, end: end, location: info.Location}, true
}

// clockOffset parses "HH:MM" into an offset from midnight
func clockOffset(s string) (time.Duration, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}

// firstMeetingDay earliest date on or after from that falls on one of days
func firstMeetingDay(from time.Time, days []time.Weekday) time.Time {
	day := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	for i := 0; i < 7; i++ {
		d := day.AddDate(0, 0, i)
		for _, wd := range days {
			if d.Weekday() == wd {
				return d
			}
		}
	}
	return day
}

func weeklyRule(days []time.Weekday, until time.Time) string {
	byDay := make([]string, 0, len(days))
	for _, d := range days {
		byDay = append(byDay, rruleDays[d])
	}
	return fmt.Sprintf("FREQ=WEEKLY;BYDAY=%s;UNTIL=%s", strings.Join(byDay, ","), until.Format(icsLocalLayout))
}
