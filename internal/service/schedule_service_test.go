package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"boiler-ai/backend/internal/dto"
	"boiler-ai/backend/internal/model"
)

// ── test helpers ──

const (
	studentID = "00000000-0000-0000-0000-0000000000a1"
	otherID   = "00000000-0000-0000-0000-0000000000b2"

	mwfInfo = `{"days":["Mon","Wed","Fri"],"start":"09:30","end":"10:20","location":"LWSN B151"}`
	trInfo  = `{"days":["Tue","Thu"],"start":"13:30","end":"14:45"}`
)

var (
	student = Caller{UserID: studentID, Role: model.RoleStudent}
	other   = Caller{UserID: otherID, Role: model.RoleStudent}
	admin   = Caller{UserID: "00000000-0000-0000-0000-0000000000ad", Role: model.RoleAdmin}
)

func setupTestScheduleService() (ScheduleService, *testRepos) {
	repos := newTestRepos()
	repos.seedCourse(courseCS180, "CS 18000", "Computer Science", 4, mwfInfo)
	repos.seedCourse(courseCS182, "CS 18200", "Computer Science", 3, trInfo)
	repos.seedCourse(courseCS240, "CS 24000", "Computer Science", 3, "")
	repos.seedCourse(courseMA161, "MA 16100", "Mathematics", 5, mwfInfo)
	return NewScheduleService(repos.toRepository(), zap.NewNop()), repos
}

func createTestSchedule(t *testing.T, svc ScheduleService, courses ...string) string {
	t.Helper()
	resp, err := svc.Create(context.Background(), studentID, &dto.CreateScheduleRequest{
		Semester: "fall",
		Year:     2026,
		Courses:  courses,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	return resp.ScheduleID
}

// ════════════════════════════════════════════════════════════
// Create
// ════════════════════════════════════════════════════════════

func TestScheduleService_Create_Success(t *testing.T) {
	svc, repos := setupTestScheduleService()

	resp, err := svc.Create(context.Background(), studentID, &dto.CreateScheduleRequest{
		Semester: "fall",
		Year:     2026,
		Courses:  []string{courseCS180, courseCS182, courseCS240, courseCS180},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if resp.Semester != "Fall" || resp.CourseCount != 3 {
		t.Errorf("unexpected response %+v", resp)
	}
	if got := len(repos.schedule.links[resp.ScheduleID]); got != 3 {
		t.Errorf("duplicate ids should be collapsed, stored %d links", got)
	}
}

func TestScheduleService_Create_Conflict(t *testing.T) {
	svc, repos := setupTestScheduleService()

	_, err := svc.Create(context.Background(), studentID, &dto.CreateScheduleRequest{
		Semester: "Fall",
		Year:     2026,
		Courses:  []string{courseCS180, courseMA161},
	})
	if !errors.Is(err, ErrScheduleConflict) {
		t.Fatalf("expected ErrScheduleConflict, got %v", err)
	}

	var ce *ConflictError
	if !errors.As(err, &ce) {
		t.Fatal("expected a *ConflictError")
	}
	if len(ce.Conflicts) != 1 || ce.Conflicts[0].Course1 != "CS 18000" || ce.Conflicts[0].Course2 != "MA 16100" {
		t.Errorf("unexpected conflicts %+v", ce.Conflicts)
	}
	if len(repos.schedule.schedules) != 0 {
		t.Error("no schedule should be stored when conflicts exist")
	}
}

func TestScheduleService_Create_UnknownCourse(t *testing.T) {
	svc, _ := setupTestScheduleService()

	_, err := svc.Create(context.Background(), studentID, &dto.CreateScheduleRequest{
		Semester: "Spring",
		Year:     2027,
		Courses:  []string{courseCS180, "10000000-0000-0000-0000-000000000999"},
	})
	if !errors.Is(err, ErrUnknownCourses) {
		t.Errorf("expected ErrUnknownCourses, got %v", err)
	}
}

// ════════════════════════════════════════════════════════════
// Read
// ════════════════════════════════════════════════════════════

func TestScheduleService_ListByUser(t *testing.T) {
	svc, _ := setupTestScheduleService()
	createTestSchedule(t, svc, courseCS180, courseCS182)
	ctx := context.Background()

	resp, err := svc.ListByUser(ctx, student, studentID)
	if err != nil {
		t.Fatalf("ListByUser failed: %v", err)
	}
	if resp.Count != 1 || resp.Schedules[0].CourseCount != 2 || resp.Schedules[0].TotalCredits != 7 {
		t.Errorf("unexpected summaries %+v", resp.Schedules)
	}

	if _, err := svc.ListByUser(ctx, other, studentID); !errors.Is(err, ErrForbidden) {
		t.Errorf("other student: expected ErrForbidden, got %v", err)
	}
	if _, err := svc.ListByUser(ctx, admin, studentID); err != nil {
		t.Errorf("admin should read any user's schedules: %v", err)
	}
}

func TestScheduleService_Get(t *testing.T) {
	svc, _ := setupTestScheduleService()
	id := createTestSchedule(t, svc, courseCS182, courseCS180)
	ctx := context.Background()

	resp, err := svc.Get(ctx, student, id)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if resp.CourseCount != 2 || resp.Courses[0].CourseCode != "CS 18000" {
		t.Errorf("courses should be ordered by code: %+v", resp.Courses)
	}

	if _, err := svc.Get(ctx, other, id); !errors.Is(err, ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
	if _, err := svc.Get(ctx, student, "20000000-0000-0000-0000-000000000999"); !errors.Is(err, ErrScheduleNotFound) {
		t.Errorf("expected ErrScheduleNotFound, got %v", err)
	}
}

// ════════════════════════════════════════════════════════════
// Course membership
// ════════════════════════════════════════════════════════════

func TestScheduleService_AddCourse(t *testing.T) {
	svc, _ := setupTestScheduleService()
	id := createTestSchedule(t, svc, courseCS180)
	ctx := context.Background()

	if _, err := svc.AddCourse(ctx, student, id, &dto.AddScheduleCourseRequest{CourseID: courseCS240}); err != nil {
		t.Fatalf("AddCourse failed: %v", err)
	}

	_, err := svc.AddCourse(ctx, student, id, &dto.AddScheduleCourseRequest{CourseID: courseCS240})
	if !errors.Is(err, ErrCourseAlreadyInSchedule) {
		t.Errorf("expected ErrCourseAlreadyInSchedule, got %v", err)
	}

	_, err = svc.AddCourse(ctx, student, id, &dto.AddScheduleCourseRequest{CourseID: courseMA161})
	if !errors.Is(err, ErrScheduleConflict) {
		t.Errorf("expected ErrScheduleConflict, got %v", err)
	}

	_, err = svc.AddCourse(ctx, student, id, &dto.AddScheduleCourseRequest{CourseID: "10000000-0000-0000-0000-000000000999"})
	if !errors.Is(err, ErrCourseNotFound) {
		t.Errorf("expected ErrCourseNotFound, got %v", err)
	}
}

func TestScheduleService_RemoveCourse(t *testing.T) {
	svc, _ := setupTestScheduleService()
	id := createTestSchedule(t, svc, courseCS180, courseCS182)
	ctx := context.Background()

	if _, err := svc.RemoveCourse(ctx, student, id, courseCS182); err != nil {
		t.Fatalf("RemoveCourse failed: %v", err)
	}
	if _, err := svc.RemoveCourse(ctx, student, id, courseCS182); !errors.Is(err, ErrCourseNotInSchedule) {
		t.Errorf("expected ErrCourseNotInSchedule, got %v", err)
	}
}

func TestScheduleService_Delete(t *testing.T) {
	svc, repos := setupTestScheduleService()
	id := createTestSchedule(t, svc, courseCS180)
	ctx := context.Background()

	if err := svc.Delete(ctx, other, id); !errors.Is(err, ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
	if err := svc.Delete(ctx, student, id); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, ok := repos.schedule.schedules[id]; ok {
		t.Error("schedule should be removed")
	}
}
