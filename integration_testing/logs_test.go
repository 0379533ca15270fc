package integration_testing

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/dkovacev/liftlog/internal/bodycomp"
	"github.com/dkovacev/liftlog/internal/programs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) TestWeightLogs() {
	t := s.T()
	token := s.login()

	bodyFat := 18.5
	reqJson, err := json.Marshal(bodycomp.WeightLog{
		Weight:            84.2,
		BodyFatPercentage: &bodyFat,
		Notes:             "morning weigh-in",
	})
	require.NoError(t, err)

	resp, err := s.request("POST", "/weight", token, reqJson)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, err = s.request("GET", "/weight", token, nil)
	require.NoError(t, err)
	respBytes, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var logs []bodycomp.WeightLog
	require.NoError(t, json.Unmarshal(respBytes, &logs))
	require.Len(t, logs, 1)
	assert.Equal(t, 84.2, logs[0].Weight)
	require.NotNil(t, logs[0].BodyFatPercentage)
	assert.Equal(t, 18.5, *logs[0].BodyFatPercentage)

	resp, err = s.request("GET", "/weight/chart", token, nil)
	require.NoError(t, err)
	respBytes, err = io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var chart bodycomp.WeightChartData
	require.NoError(t, json.Unmarshal(respBytes, &chart))
	require.Len(t, chart.Dates, 1)
	assert.Equal(t, []float64{84.2}, chart.Weights)
}

func (s *IntegrationTestSuite) TestPrograms() {
	t := s.T()
	token := s.login()

	reqJson, err := json.Marshal(programs.Program{
		Name:        "Push Pull Legs",
		Description: "6 day split",
		ProgramType: "hypertrophy",
	})
	require.NoError(t, err)

	resp, err := s.request("POST", "/programs", token, reqJson)
	require.NoError(t, err)
	respBytes, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var added programs.Program
	require.NoError(t, json.Unmarshal(respBytes, &added))
	require.NotZero(t, added.ID)

	resp, err = s.request("GET", "/programs", token, nil)
	require.NoError(t, err)
	respBytes, err = io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var listed []programs.Program
	require.NoError(t, json.Unmarshal(respBytes, &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, "Push Pull Legs", listed[0].Name)

	resp, err = s.request("DELETE", "/programs/"+strconv.Itoa(added.ID), token, nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}
