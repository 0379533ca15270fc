package integration_testing

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"sync"

	"github.com/dkovacev/liftlog/internal/workout"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) TestSchemaReconciled() {
	t := s.T()

	// the database started empty, everything below came from the reconciler
	for _, table := range []string{
		"users", "exercises", "workout_sessions", "workout_logs",
		"personal_records", "weight_logs", "bloodwork_logs", "workout_programs",
	} {
		var name string
		err := s.DB.QueryRow(
			`SELECT table_name FROM information_schema.tables
				WHERE table_schema = 'public' AND table_name = $1;`,
			table,
		).Scan(&name)
		require.NoError(t, err, "table %s missing", table)
	}

	var indexName string
	err := s.DB.QueryRow(
		`SELECT indexname FROM pg_indexes WHERE indexname = 'ux_workout_sessions_active';`,
	).Scan(&indexName)
	require.NoError(t, err)

	// operator account provisioned on first run
	var username string
	err = s.DB.QueryRow(`SELECT username FROM users;`).Scan(&username)
	require.NoError(t, err)
	assert.Equal(t, testUsername, username)
}

func (s *IntegrationTestSuite) TestAddSetAtomicity() {
	t := s.T()
	token := s.login()

	resp, err := s.request("POST", "/workout/session/start", token, nil)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	defer func() {
		resp, err := s.request("POST", "/workout/session/finish", token, nil)
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}()

	var setsBefore int
	require.NoError(t, s.DB.QueryRow(`SELECT COUNT(*) FROM workout_logs;`).Scan(&setsBefore))

	// hide personal_records so the record upsert fails after the log insert
	_, err = s.DB.Exec(`ALTER TABLE personal_records RENAME TO personal_records_hidden;`)
	require.NoError(t, err)
	defer func() {
		_, err := s.DB.Exec(`ALTER TABLE personal_records_hidden RENAME TO personal_records;`)
		require.NoError(t, err)
	}()

	reqJson, err := json.Marshal(workout.AddSetRequest{
		ExerciseName: "deadlift",
		SetType:      "working",
		Reps:         5,
		Weight:       180,
	})
	require.NoError(t, err)

	resp, err = s.request("POST", "/workout/sets", token, reqJson)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	var setsAfter int
	require.NoError(t, s.DB.QueryRow(`SELECT COUNT(*) FROM workout_logs;`).Scan(&setsAfter))
	assert.Equal(t, setsBefore, setsAfter, "set log must roll back together with the record write")
}

func (s *IntegrationTestSuite) TestAddSetConcurrentNumbering() {
	t := s.T()
	token := s.login()

	resp, err := s.request("POST", "/workout/session/start", token, nil)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	const workers = 8
	setNumbers := make(chan int, workers)
	errs := make(chan error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			reqJson, err := json.Marshal(workout.AddSetRequest{
				ExerciseName: "overhead press",
				SetType:      "working",
				Reps:         5,
				Weight:       40,
			})
			if err != nil {
				errs <- err
				return
			}
			resp, err := s.request("POST", "/workout/sets", token, reqJson)
			if err != nil {
				errs <- err
				return
			}
			defer resp.Body.Close()
			respBytes, err := io.ReadAll(resp.Body)
			if err != nil {
				errs <- err
				return
			}
			if resp.StatusCode != http.StatusCreated {
				errs <- fmt.Errorf("unexpected status %d: %s", resp.StatusCode, respBytes)
				return
			}
			var result workout.AddSetResult
			if err := json.Unmarshal(respBytes, &result); err != nil {
				errs <- err
				return
			}
			setNumbers <- result.Set.SetNumber
		}()
	}
	wg.Wait()
	close(errs)
	close(setNumbers)

	for err := range errs {
		require.NoError(t, err)
	}

	numbers := make([]int, 0, workers)
	for n := range setNumbers {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)
	expected := make([]int, 0, workers)
	for i := 1; i <= workers; i++ {
		expected = append(expected, i)
	}
	assert.Equal(t, expected, numbers, "set numbers must be gap-free and repeat-free")

	resp, err = s.request("POST", "/workout/session/finish", token, nil)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func (s *IntegrationTestSuite) TestWorkoutSessionFlow() {
	t := s.T()
	token := s.login()

	// no session yet
	resp, err := s.request("GET", "/workout/session", token, nil)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	// start one
	resp, err = s.request("POST", "/workout/session/start", token, nil)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// starting another must conflict
	resp, err = s.request("POST", "/workout/session/start", token, nil)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	addSet := func(exercise, setType string, reps int, weight float64) workout.AddSetResult {
		t.Helper()
		reqJson, err := json.Marshal(workout.AddSetRequest{
			ExerciseName: exercise,
			SetType:      setType,
			Reps:         reps,
			Weight:       weight,
		})
		require.NoError(t, err)

		resp, err := s.request("POST", "/workout/sets", token, reqJson)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		respBytes, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		var result workout.AddSetResult
		require.NoError(t, json.Unmarshal(respBytes, &result))
		return result
	}

	res := addSet("bench press", "warmup", 10, 60)
	assert.Equal(t, 1, res.Set.SetNumber)
	assert.False(t, res.NewPersonalRecord, "warmup sets never count as records")

	res = addSet("Bench Press", "working", 5, 100)
	assert.Equal(t, 2, res.Set.SetNumber, "same exercise regardless of name casing")
	assert.True(t, res.NewPersonalRecord)

	res = addSet("bench press", "working", 3, 110)
	assert.Equal(t, 3, res.Set.SetNumber)
	assert.True(t, res.NewPersonalRecord)

	res = addSet("squat", "working", 5, 140)
	assert.Equal(t, 1, res.Set.SetNumber, "each exercise numbers its own sets")
	assert.True(t, res.NewPersonalRecord)

	// current session with all its sets
	resp, err = s.request("GET", "/workout/session", token, nil)
	require.NoError(t, err)
	respBytes, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var details workout.SessionDetails
	require.NoError(t, json.Unmarshal(respBytes, &details))
	assert.Len(t, details.Sets, 4)

	// records reflect the best working sets
	resp, err = s.request("GET", "/workout/prs", token, nil)
	require.NoError(t, err)
	respBytes, err = io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var records []workout.PersonalRecord
	require.NoError(t, json.Unmarshal(respBytes, &records))
	recordsByName := make(map[string]workout.PersonalRecord, len(records))
	for _, pr := range records {
		recordsByName[pr.ExerciseName] = pr
	}
	bench, ok := recordsByName["Bench Press"]
	require.True(t, ok)
	assert.Equal(t, 110.0, bench.Weight)
	assert.Equal(t, 3, bench.Reps)
	squat, ok := recordsByName["Squat"]
	require.True(t, ok)
	assert.Equal(t, 140.0, squat.Weight)

	// finish, then finishing again fails
	resp, err = s.request("POST", "/workout/session/finish", token, nil)
	require.NoError(t, err)
	respBytes, err = io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var finishResp struct {
		DurationMinutes int `json:"durationMinutes"`
	}
	require.NoError(t, json.Unmarshal(respBytes, &finishResp))
	assert.GreaterOrEqual(t, finishResp.DurationMinutes, 0)

	resp, err = s.request("POST", "/workout/session/finish", token, nil)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	var setsCount int
	require.NoError(t, s.DB.QueryRow(
		`SELECT COUNT(*) FROM workout_logs WHERE session_id = $1;`, details.Session.ID,
	).Scan(&setsCount))
	assert.Equal(t, 4, setsCount)
}

func (s *IntegrationTestSuite) TestWorkoutUnauthorized() {
	t := s.T()

	resp, err := s.request("POST", "/workout/session/start", "", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, err = s.request("POST", "/workout/session/start", "some-invalid-token", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
