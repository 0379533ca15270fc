package exercises

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var ExerciseType = struct {
	Barbell    string
	Dumbbell   string
	Machine    string
	Cable      string
	Bodyweight string
	Other      string
}{
	Barbell:    "barbell",
	Dumbbell:   "dumbbell",
	Machine:    "machine",
	Cable:      "cable",
	Bodyweight: "bodyweight",
	Other:      "other",
}

var ExerciseTypes = []string{
	ExerciseType.Barbell,
	ExerciseType.Dumbbell,
	ExerciseType.Machine,
	ExerciseType.Cable,
	ExerciseType.Bodyweight,
	ExerciseType.Other,
}

type Exercise struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	ExerciseType string    `json:"exerciseType"`
	IsBodyweight bool      `json:"isBodyweight"`
	CreatedAt    time.Time `json:"createdAt"`
}

var titleCaser = cases.Title(language.English)

// NormalizeName collapses whitespace and title-cases the exercise name,
// so that "bench  press", "Bench press" and "BENCH PRESS" all refer to
// the same exercise.
func NormalizeName(name string) string {
	name = strings.Join(strings.Fields(name), " ")
	return titleCaser.String(strings.ToLower(name))
}
