package service

import (
	"bytes"
	"encoding/json"

	"boiler-ai/backend/internal/dto"
	"boiler-ai/backend/internal/model"
)

const conflictTimeOverlap = "Time overlap"

// FindConflicts reports every unordered pair of courses whose schedule_info documents are
// identical. Courses without schedule_info never conflict. Times are not parsed.
func FindConflicts(courses []model.Course) []dto.ScheduleConflict {
	canon := make([][]byte, len(courses))
	for i := range courses {
		canon[i] = canonicalJSON(courses[i].ScheduleInfo)
	}

	conflicts := []dto.ScheduleConflict{}
	for i := 0; i < len(courses); i++ {
		if canon[i] == nil {
			continue
		}
		for j := i + 1; j < len(courses); j++ {
			if canon[j] == nil {
				continue
			}
			if bytes.Equal(canon[i], canon[j]) {
				conflicts = append(conflicts, dto.ScheduleConflict{
					Course1:  courses[i].CourseCode,
					Course2:  courses[j].CourseCode,
					Conflict: conflictTimeOverlap,
				})
			}
		}
	}
	return conflicts
}

// canonicalJSON re-encodes the document so key order and whitespace do not matter.
// nil for NULL.
func canonicalJSON(j model.JSON) []byte {
	if j.IsNull() {
		return nil
	}
	var v interface{}
	if err := json.Unmarshal(j, &v); err != nil {
		return bytes.TrimSpace(j)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return bytes.TrimSpace(j)
	}
	return b
}
