package workout

import "time"

var SetType = struct {
	Warmup  string
	Working string
}{
	Warmup:  "warmup",
	Working: "working",
}

var SetTypes = []string{
	SetType.Warmup,
	SetType.Working,
}

type Session struct {
	ID        int        `json:"id"`
	UserID    int        `json:"userId"`
	StartTime time.Time  `json:"startTime"`
	EndTime   *time.Time `json:"endTime,omitempty"`
}

// Active reports whether the session is still running.
func (s *Session) Active() bool {
	return s.EndTime == nil
}

type SetLog struct {
	ID         int       `json:"id"`
	SessionID  int       `json:"sessionId"`
	ExerciseID int       `json:"exerciseId"`
	SetNumber  int       `json:"setNumber"`
	SetType    string    `json:"setType"`
	Reps       int       `json:"reps"`
	Weight     float64   `json:"weight"`
	CreatedAt  time.Time `json:"createdAt"`
}

type PersonalRecord struct {
	ID           int       `json:"id"`
	UserID       int       `json:"userId"`
	ExerciseID   int       `json:"exerciseId"`
	ExerciseName string    `json:"exerciseName,omitempty"`
	Weight       float64   `json:"weight"`
	Reps         int       `json:"reps"`
	AchievedAt   time.Time `json:"achievedAt"`
}

// BeatenBy reports whether a set with the given weight and reps beats this
// record: strictly higher weight wins, equal weight needs strictly more reps.
func (pr *PersonalRecord) BeatenBy(weight float64, reps int) bool {
	if weight > pr.Weight {
		return true
	}
	return weight == pr.Weight && reps > pr.Reps
}
