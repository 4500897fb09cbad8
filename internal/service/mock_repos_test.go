package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"boiler-ai/backend/internal/model"
	"boiler-ai/backend/internal/repository"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User // key: user_id
	seq   int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	for _, u := range m.users {
		if u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	if user.UserID == "" {
		m.seq++
		user.UserID = fmt.Sprintf("00000000-0000-0000-0000-%012d", m.seq)
	}
	user.CreatedAt = time.Now()
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

// ── Mock CourseRepository ──

type mockCourseRepo struct {
	courses map[string]*model.Course // key: course_id
}

func newMockCourseRepo() *mockCourseRepo {
	return &mockCourseRepo{courses: make(map[string]*model.Course)}
}

func (m *mockCourseRepo) sorted() []model.Course {
	var out []model.Course
	for _, c := range m.courses {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CourseCode < out[j].CourseCode })
	return out
}

func (m *mockCourseRepo) List(_ context.Context, f repository.CourseFilter) ([]model.Course, error) {
	var out []model.Course
	for _, c := range m.sorted() {
		if f.Major != "" && c.Major != f.Major {
			continue
		}
		if f.Semester != "" && !containsString(c.SemesterOffered, f.Semester) {
			continue
		}
		if f.Search != "" {
			q := strings.ToLower(f.Search)
			if !strings.Contains(strings.ToLower(c.CourseCode), q) && !strings.Contains(strings.ToLower(c.Title), q) {
				continue
			}
		}
		out = append(out, c)
	}
	return out, nil
}

func (m *mockCourseRepo) GetByID(_ context.Context, id string) (*model.Course, error) {
	if c, ok := m.courses[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCourseRepo) GetByIDs(_ context.Context, ids []string) ([]model.Course, error) {
	var out []model.Course
	for _, c := range m.sorted() {
		if containsString(ids, c.CourseID) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *mockCourseRepo) GetByCodes(_ context.Context, codes []string) ([]model.Course, error) {
	var out []model.Course
	for _, c := range m.sorted() {
		if containsString(codes, c.CourseCode) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *mockCourseRepo) ListMajors(_ context.Context) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	for _, c := range m.courses {
		if !seen[c.Major] {
			seen[c.Major] = true
			out = append(out, c.Major)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (m *mockCourseRepo) Create(_ context.Context, course *model.Course) error {
	for _, c := range m.courses {
		if c.CourseCode == course.CourseCode {
			return gorm.ErrDuplicatedKey
		}
	}
	if course.CourseID == "" {
		course.CourseID = fmt.Sprintf("10000000-0000-0000-0000-%012d", len(m.courses)+1)
	}
	m.courses[course.CourseID] = course
	return nil
}

func (m *mockCourseRepo) Update(_ context.Context, course *model.Course) error {
	m.courses[course.CourseID] = course
	return nil
}

func (m *mockCourseRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.courses[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.courses, id)
	return nil
}

// ── Mock ScheduleRepository ──

type mockScheduleRepo struct {
	schedules map[string]*model.Schedule
	links     map[string][]string // schedule_id → course_ids
	courses   *mockCourseRepo
	createErr error
}

func newMockScheduleRepo(courses *mockCourseRepo) *mockScheduleRepo {
	return &mockScheduleRepo{
		schedules: make(map[string]*model.Schedule),
		links:     make(map[string][]string),
		courses:   courses,
	}
}

func (m *mockScheduleRepo) CreateWithCourses(_ context.Context, schedule *model.Schedule, courseIDs []string) error {
	if m.createErr != nil {
		return m.createErr
	}
	if schedule.ScheduleID == "" {
		schedule.ScheduleID = fmt.Sprintf("20000000-0000-0000-0000-%012d", len(m.schedules)+1)
	}
	m.schedules[schedule.ScheduleID] = schedule
	m.links[schedule.ScheduleID] = append([]string(nil), courseIDs...)
	return nil
}

func (m *mockScheduleRepo) GetByID(_ context.Context, id string) (*model.Schedule, error) {
	if s, ok := m.schedules[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockScheduleRepo) ListSummariesByUser(_ context.Context, userID string) ([]model.ScheduleSummary, error) {
	var out []model.ScheduleSummary
	for id, s := range m.schedules {
		if s.UserID != userID {
			continue
		}
		row := model.ScheduleSummary{Schedule: *s}
		for _, cid := range m.links[id] {
			if c, ok := m.courses.courses[cid]; ok {
				row.CourseCount++
				row.TotalCredits += c.Credits
			}
		}
		out = append(out, row)
	}
	return out, nil
}

func (m *mockScheduleRepo) ListCourses(ctx context.Context, scheduleID string) ([]model.Course, error) {
	return m.courses.GetByIDs(ctx, m.links[scheduleID])
}

func (m *mockScheduleRepo) HasCourse(_ context.Context, scheduleID, courseID string) (bool, error) {
	return containsString(m.links[scheduleID], courseID), nil
}

func (m *mockScheduleRepo) AddCourse(_ context.Context, scheduleID, courseID string) error {
	if containsString(m.links[scheduleID], courseID) {
		return gorm.ErrDuplicatedKey
	}
	m.links[scheduleID] = append(m.links[scheduleID], courseID)
	return nil
}

func (m *mockScheduleRepo) RemoveCourse(_ context.Context, scheduleID, courseID string) error {
	ids := m.links[scheduleID]
	for i, id := range ids {
		if id == courseID {
			m.links[scheduleID] = append(ids[:i:i], ids[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockScheduleRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.schedules[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.schedules, id)
	delete(m.links, id)
	return nil
}

// ── Mock TranscriptRepository ──

type mockTranscriptRepo struct {
	transcripts map[string]*model.Transcript
	analyses    []model.TranscriptAnalysis
}

func newMockTranscriptRepo() *mockTranscriptRepo {
	return &mockTranscriptRepo{transcripts: make(map[string]*model.Transcript)}
}

func (m *mockTranscriptRepo) Create(_ context.Context, t *model.Transcript) error {
	if t.TranscriptID == "" {
		t.TranscriptID = fmt.Sprintf("30000000-0000-0000-0000-%012d", len(m.transcripts)+1)
	}
	m.transcripts[t.TranscriptID] = t
	return nil
}

func (m *mockTranscriptRepo) GetByID(_ context.Context, id string) (*model.Transcript, error) {
	if t, ok := m.transcripts[id]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTranscriptRepo) ListByUser(_ context.Context, userID string) ([]model.Transcript, error) {
	var out []model.Transcript
	for _, t := range m.transcripts {
		if t.UserID == userID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (m *mockTranscriptRepo) CreateAnalysis(_ context.Context, a *model.TranscriptAnalysis) error {
	a.AnalysisID = fmt.Sprintf("analysis-%d", len(m.analyses)+1)
	a.AnalyzedAt = time.Now()
	m.analyses = append(m.analyses, *a)
	return nil
}

func (m *mockTranscriptRepo) GetLatestAnalysis(_ context.Context, transcriptID string) (*model.TranscriptAnalysis, error) {
	for i := len(m.analyses) - 1; i >= 0; i-- {
		if m.analyses[i].TranscriptID == transcriptID {
			a := m.analyses[i]
			return &a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// ── Mock GPARepository ──

type mockGPARepo struct {
	records []*model.GPARecord
}

func newMockGPARepo() *mockGPARepo {
	return &mockGPARepo{}
}

func (m *mockGPARepo) Create(_ context.Context, r *model.GPARecord) error {
	if r.RecordID == "" {
		r.RecordID = fmt.Sprintf("40000000-0000-0000-0000-%012d", len(m.records)+1)
	}
	m.records = append(m.records, r)
	return nil
}

func (m *mockGPARepo) GetByID(_ context.Context, id string) (*model.GPARecord, error) {
	for _, r := range m.records {
		if r.RecordID == id {
			return r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// ListByUser newest first, like the real query
func (m *mockGPARepo) ListByUser(_ context.Context, userID string) ([]model.GPARecord, error) {
	var out []model.GPARecord
	for i := len(m.records) - 1; i >= 0; i-- {
		if m.records[i].UserID == userID {
			out = append(out, *m.records[i])
		}
	}
	return out, nil
}

// ── Mock ChatRepository ──

type mockChatRepo struct {
	msgs      []model.ChatMessage
	createErr error
}

func newMockChatRepo() *mockChatRepo {
	return &mockChatRepo{}
}

func (m *mockChatRepo) Create(_ context.Context, msg *model.ChatMessage) error {
	if m.createErr != nil {
		return m.createErr
	}
	msg.ChatID = fmt.Sprintf("chat-%d", len(m.msgs)+1)
	msg.CreatedAt = time.Now()
	m.msgs = append(m.msgs, *msg)
	return nil
}

func (m *mockChatRepo) ListRecentByUser(_ context.Context, userID string, limit int) ([]model.ChatMessage, error) {
	var mine []model.ChatMessage
	for _, msg := range m.msgs {
		if msg.UserID == userID {
			mine = append(mine, msg)
		}
	}
	if len(mine) > limit {
		mine = mine[len(mine)-limit:]
	}
	return mine, nil
}

// ── helpers ──

// testRepos bundles the mocks so tests can seed data
type testRepos struct {
	user       *mockUserRepo
	course     *mockCourseRepo
	schedule   *mockScheduleRepo
	transcript *mockTranscriptRepo
	gpa        *mockGPARepo
	chat       *mockChatRepo
}

func newTestRepos() *testRepos {
	courses := newMockCourseRepo()
	return &testRepos{
		user:       newMockUserRepo(),
		course:     courses,
		schedule:   newMockScheduleRepo(courses),
		transcript: newMockTranscriptRepo(),
		gpa:        newMockGPARepo(),
		chat:       newMockChatRepo(),
	}
}

func (r *testRepos) toRepository() *repository.Repository {
	return &repository.Repository{
		User:       r.user,
		Course:     r.course,
		Schedule:   r.schedule,
		Transcript: r.transcript,
		GPA:        r.gpa,
		Chat:       r.chat,
	}
}

// seedCourse adds a catalog course and returns it
func (r *testRepos) seedCourse(id, code, major string, credits float64, info string, prereqs ...string) *model.Course {
	c := &model.Course{
		CourseID:        id,
		CourseCode:      code,
		Title:           code + " title",
		Credits:         credits,
		Major:           major,
		Prerequisites:   prereqs,
		SemesterOffered: []string{"Fall", "Spring"},
	}
	if info != "" {
		c.ScheduleInfo = model.JSON(info)
	}
	r.course.courses[id] = c
	return c
}

func (r *testRepos) seedUser(id, email string, major *string, gradYear *int) *model.User {
	u := &model.User{
		UserID:         id,
		Email:          email,
		FirstName:      "Purdue",
		LastName:       "Pete",
		Major:          major,
		GraduationYear: gradYear,
		Role:           model.RoleStudent,
	}
	r.user.users[id] = u
	return u
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

func floatPtr(f float64) *float64 { return &f }
