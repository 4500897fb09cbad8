//go:build integration

package repository_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"boiler-ai/backend/internal/model"
	"boiler-ai/backend/internal/repository"
	"boiler-ai/backend/pkg/database"
	pkgerrors "boiler-ai/backend/pkg/errors"
)

// ═══════════════════════════════════════════════════════════
// Test Setup
// ═══════════════════════════════════════════════════════════

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = "host=localhost port=5433 user=postgres password=password dbname=boiler_ai_test sslmode=disable"
	}

	var err error
	testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot connect to test database: %v\n", err)
		os.Exit(1)
	}

	sqlDB, err := testDB.DB()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot get sql.DB: %v\n", err)
		os.Exit(1)
	}
	if err := database.RunMigrations(sqlDB, zap.NewNop()); err != nil {
		fmt.Fprintf(os.Stderr, "migrations failed: %v\n", err)
		os.Exit(1)
	}

	os.Exit(m.Run())
}

// setupTestData creates a user and two courses and returns a cleanup func
func setupTestData(t *testing.T) (user *model.User, courses []model.Course, cleanup func()) {
	t.Helper()
	ctx := context.Background()
	suffix := time.Now().UnixNano()

	user = &model.User{
		Email:        fmt.Sprintf("student-%d@purdue.edu", suffix),
		PasswordHash: "$2a$10$integrationintegrationintegrationintegrationinte",
		FirstName:    "Test",
		LastName:     "Student",
		Role:         model.RoleStudent,
	}
	if err := testDB.WithContext(ctx).Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}

	for i := 0; i < 2; i++ {
		c := model.Course{
			CourseCode: fmt.Sprintf("TST %05d", (suffix+int64(i))%100000),
			Title:      fmt.Sprintf("Integration Course %d", i),
			Credits:    3,
			Major:      "Integration Testing",
		}
		if err := testDB.WithContext(ctx).Create(&c).Error; err != nil {
			t.Fatalf("create course: %v", err)
		}
		courses = append(courses, c)
	}

	cleanup = func() {
		testDB.Where("user_id = ?", user.UserID).Delete(&model.User{})
		for _, c := range courses {
			testDB.Where("course_id = ?", c.CourseID).Delete(&model.Course{})
		}
	}
	return user, courses, cleanup
}

// ═══════════════════════════════════════════════════════════
// Schedules
// ═══════════════════════════════════════════════════════════

func TestSchedule_CreateWithCourses_Commit(t *testing.T) {
	user, courses, cleanup := setupTestData(t)
	defer cleanup()
	repo := repository.NewScheduleRepo(testDB)
	ctx := context.Background()

	schedule := &model.Schedule{UserID: user.UserID, Semester: "Fall", Year: 2026}
	if err := repo.CreateWithCourses(ctx, schedule, []string{courses[0].CourseID, courses[1].CourseID}); err != nil {
		t.Fatalf("CreateWithCourses failed: %v", err)
	}

	summaries, err := repo.ListSummariesByUser(ctx, user.UserID)
	if err != nil {
		t.Fatalf("ListSummariesByUser failed: %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("expected 1 schedule, got %d", len(summaries))
	}
	if summaries[0].CourseCount != 2 || summaries[0].TotalCredits != 6 {
		t.Errorf("unexpected aggregate: count=%d credits=%v", summaries[0].CourseCount, summaries[0].TotalCredits)
	}
}

func TestSchedule_CreateWithCourses_RollbackOnUnknownCourse(t *testing.T) {
	user, _, cleanup := setupTestData(t)
	defer cleanup()
	repo := repository.NewScheduleRepo(testDB)
	ctx := context.Background()

	schedule := &model.Schedule{UserID: user.UserID, Semester: "Spring", Year: 2027}
	err := repo.CreateWithCourses(ctx, schedule, []string{"00000000-0000-0000-0000-000000000000"})
	if !pkgerrors.IsForeignKeyViolation(err) {
		t.Fatalf("expected foreign key violation, got %v", err)
	}

	summaries, err := repo.ListSummariesByUser(ctx, user.UserID)
	if err != nil {
		t.Fatalf("ListSummariesByUser failed: %v", err)
	}
	if len(summaries) != 0 {
		t.Errorf("schedule row should have been rolled back, found %d", len(summaries))
	}
}

func TestSchedule_AddCourse_Duplicate(t *testing.T) {
	user, courses, cleanup := setupTestData(t)
	defer cleanup()
	repo := repository.NewScheduleRepo(testDB)
	ctx := context.Background()

	schedule := &model.Schedule{UserID: user.UserID, Semester: "Fall", Year: 2026}
	if err := repo.CreateWithCourses(ctx, schedule, []string{courses[0].CourseID}); err != nil {
		t.Fatalf("CreateWithCourses failed: %v", err)
	}

	err := repo.AddCourse(ctx, schedule.ScheduleID, courses[0].CourseID)
	if !pkgerrors.IsUniqueViolation(err) {
		t.Fatalf("expected unique violation, got %v", err)
	}

	if err := repo.RemoveCourse(ctx, schedule.ScheduleID, courses[0].CourseID); err != nil {
		t.Fatalf("RemoveCourse failed: %v", err)
	}
	if err := repo.RemoveCourse(ctx, schedule.ScheduleID, courses[0].CourseID); !pkgerrors.IsNotFound(err) {
		t.Errorf("second RemoveCourse should be not found, got %v", err)
	}
}

// ═══════════════════════════════════════════════════════════
// Users
// ═══════════════════════════════════════════════════════════

func TestUser_DuplicateEmail(t *testing.T) {
	user, _, cleanup := setupTestData(t)
	defer cleanup()
	repo := repository.NewUserRepo(testDB)

	dup := &model.User{
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		FirstName:    "Dup",
		LastName:     "User",
		Role:         model.RoleStudent,
	}
	if err := repo.Create(context.Background(), dup); !pkgerrors.IsUniqueViolation(err) {
		t.Fatalf("expected unique violation, got %v", err)
	}
}

// ═══════════════════════════════════════════════════════════
// Chat history
// ═══════════════════════════════════════════════════════════

func TestChat_ListRecentByUser(t *testing.T) {
	user, _, cleanup := setupTestData(t)
	defer cleanup()
	repo := repository.NewChatRepo(testDB)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		msg := &model.ChatMessage{
			UserID:      user.UserID,
			UserMessage: fmt.Sprintf("q%d", i),
			AIResponse:  fmt.Sprintf("a%d", i),
			CreatedAt:   base.Add(time.Duration(i) * time.Minute),
		}
		if err := repo.Create(ctx, msg); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	msgs, err := repo.ListRecentByUser(ctx, user.UserID, 2)
	if err != nil {
		t.Fatalf("ListRecentByUser failed: %v", err)
	}
	if len(msgs) != 2 || msgs[0].UserMessage != "q1" || msgs[1].UserMessage != "q2" {
		t.Errorf("unexpected history: %+v", msgs)
	}
}
