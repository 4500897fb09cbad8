package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"boiler-ai/backend/internal/dto"
)

func setupTestGPAService() (GPAService, *testRepos) {
	repos := newTestRepos()
	return NewGPAService(repos.toRepository(), zap.NewNop()), repos
}

func TestGPAService_Calculate(t *testing.T) {
	svc, _ := setupTestGPAService()
	ctx := context.Background()

	resp, err := svc.Calculate(ctx, &dto.CalculateGPARequest{Grades: []dto.GradeEntry{
		{Course: "CS 18000", Grade: "a", Credits: 4},
		{Course: "MA 16100", Grade: "B+", Credits: 5},
	}})
	if err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}
	// (16 + 16.5) / 9 = 3.611
	if resp.GPA != "3.61" || resp.TotalCredits != 9 || resp.GradeCount != 2 {
		t.Errorf("unexpected result %+v", resp)
	}
	if resp.Breakdown[0].Grade != "A" || resp.Breakdown[0].Points != 16 {
		t.Errorf("unexpected breakdown %+v", resp.Breakdown[0])
	}

	if _, err := svc.Calculate(ctx, &dto.CalculateGPARequest{}); !errors.Is(err, ErrGradesRequired) {
		t.Errorf("missing grades: expected ErrGradesRequired, got %v", err)
	}

	empty, err := svc.Calculate(ctx, &dto.CalculateGPARequest{Grades: []dto.GradeEntry{}})
	if err != nil || empty.GPA != "0.00" {
		t.Errorf("empty grades should give 0.00, got %+v err=%v", empty, err)
	}
}

func TestGPAService_SaveAndHistory(t *testing.T) {
	svc, _ := setupTestGPAService()
	ctx := context.Background()

	first, err := svc.Save(ctx, studentID, &dto.SaveGPARequest{
		Semester:     "fall",
		Year:         2025,
		GPA:          floatPtr(4.0),
		TotalCredits: floatPtr(15),
	})
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if first.Semester != "Fall" || first.GPA != 4.0 {
		t.Errorf("unexpected save response %+v", first)
	}

	// gpa and credits computed from grades
	second, err := svc.Save(ctx, studentID, &dto.SaveGPARequest{
		Semester: "Spring",
		Year:     2026,
		Grades: []dto.GradeEntry{
			{Course: "CS 25100", Grade: "B", Credits: 15},
		},
	})
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if second.GPA != 3.0 {
		t.Errorf("expected computed gpa 3.0, got %v", second.GPA)
	}

	history, err := svc.History(ctx, student, studentID)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if history.Count != 2 || history.CumulativeGPA != "3.50" || history.TotalCredits != 30 {
		t.Errorf("unexpected history %+v", history)
	}
	if history.Records[0].Semester != "Spring" {
		t.Errorf("expected newest first, got %s", history.Records[0].Semester)
	}
	if len(history.Records[0].Grades) != 1 || history.Records[0].Grades[0].Course != "CS 25100" {
		t.Errorf("grades not decoded: %+v", history.Records[0].Grades)
	}

	if _, err := svc.History(ctx, other, studentID); !errors.Is(err, ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
}

func TestGPAService_Save_RequiresGPAOrGrades(t *testing.T) {
	svc, _ := setupTestGPAService()

	_, err := svc.Save(context.Background(), studentID, &dto.SaveGPARequest{Semester: "Fall", Year: 2025})
	if !errors.Is(err, ErrGradesRequired) {
		t.Errorf("expected ErrGradesRequired, got %v", err)
	}
}

func TestGPAService_GetRecord(t *testing.T) {
	svc, _ := setupTestGPAService()
	ctx := context.Background()

	saved, err := svc.Save(ctx, studentID, &dto.SaveGPARequest{Semester: "Fall", Year: 2025, GPA: floatPtr(3.2), TotalCredits: floatPtr(12)})
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	record, err := svc.GetRecord(ctx, student, saved.RecordID)
	if err != nil {
		t.Fatalf("GetRecord failed: %v", err)
	}
	if record.GPA != 3.2 || record.Grades == nil {
		t.Errorf("unexpected record %+v", record)
	}

	if _, err := svc.GetRecord(ctx, other, saved.RecordID); !errors.Is(err, ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
	if _, err := svc.GetRecord(ctx, student, "40000000-0000-0000-0000-000000000999"); !errors.Is(err, ErrGPARecordNotFound) {
		t.Errorf("expected ErrGPARecordNotFound, got %v", err)
	}
}

func TestGPAService_Predict(t *testing.T) {
	svc, _ := setupTestGPAService()
	ctx := context.Background()

	resp, err := svc.Predict(ctx, &dto.PredictGPARequest{
		CurrentGPA:     floatPtr(3.0),
		CurrentCredits: floatPtr(30),
		NewGrades: []dto.GradeEntry{
			{Grade: "A", Credits: 15},
		},
	})
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	// 150 / 45 = 3.333
	if resp.CurrentGPA != "3.00" || resp.PredictedGPA != "3.33" || resp.Change != "0.33" || resp.NewCredits != 45 {
		t.Errorf("unexpected prediction %+v", resp)
	}

	// a first-term student reports only the new credits
	resp, err = svc.Predict(ctx, &dto.PredictGPARequest{
		CurrentGPA:     floatPtr(0),
		CurrentCredits: floatPtr(0),
		NewGrades:      []dto.GradeEntry{{Grade: "B", Credits: 3}, {Grade: "A", Credits: 4}},
	})
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	if resp.NewCredits != 7 || resp.PredictedGPA != "3.57" {
		t.Errorf("unexpected first-term prediction %+v", resp)
	}

	_, err = svc.Predict(ctx, &dto.PredictGPARequest{CurrentGPA: floatPtr(3.0)})
	if !errors.Is(err, ErrPredictInputsRequired) {
		t.Errorf("expected ErrPredictInputsRequired, got %v", err)
	}
}
