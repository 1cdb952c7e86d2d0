package test

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/dvranic/runquest/internal/boss"
)

func (s *IntegrationTestSuite) TestBossGoals() {
	targetDate := time.Now().UTC().AddDate(0, 0, 30).Format(time.DateOnly)

	status, respBytes := s.doRequest(http.MethodPost, "/boss", map[string]any{
		"goalName":    "spring marathon",
		"goalType":    "race",
		"targetValue": 42.2,
		"targetDate":  targetDate,
	}, true)
	s.Require().Equal(http.StatusCreated, status)

	var created boss.Goal
	s.Require().NoError(json.Unmarshal(respBytes, &created))
	s.Require().NotZero(created.ID)
	s.Assert().Equal("spring marathon", created.Name)
	s.Assert().False(created.Completed)

	// the oracle is unreachable in this setup, predictions come from the fallback
	status, respBytes = s.doRequest(http.MethodGet, "/boss", nil, false)
	s.Require().Equal(http.StatusOK, status)

	var statusResp boss.StatusResponse
	s.Require().NoError(json.Unmarshal(respBytes, &statusResp))
	s.Require().NotEmpty(statusResp.Goals)

	var goalStatus *boss.GoalStatus
	for i := range statusResp.Goals {
		if statusResp.Goals[i].ID == created.ID {
			goalStatus = &statusResp.Goals[i]
		}
	}
	s.Require().NotNil(goalStatus)
	s.Assert().Equal(50, goalStatus.WinProbability)
	s.Assert().InDelta(10, goalStatus.RecommendedWeeklyDistance, 0.001)
	s.Require().NotNil(goalStatus.DaysRemaining)
	s.Assert().Equal(30, *goalStatus.DaysRemaining)

	// race progress tracks the total distance
	stats := s.getStats()
	expectedProgress := stats.Stats.TotalDistanceKm / 42.2 * 100
	if expectedProgress > 100 {
		expectedProgress = 100
	}
	s.Assert().InDelta(expectedProgress, goalStatus.Progress, 0.001)

	// a past target date is rejected
	status, respBytes = s.doRequest(http.MethodPost, "/boss", map[string]any{
		"goalName":    "time machine",
		"goalType":    "race",
		"targetValue": 10,
		"targetDate":  "2000-01-01",
	}, true)
	s.Assert().Equal(http.StatusBadRequest, status)
	s.Assert().Contains(string(respBytes), "target date")

	// completing removes the goal from the active list
	status, respBytes = s.doRequest(http.MethodPatch, "/boss/complete", map[string]any{
		"goalId": created.ID,
	}, true)
	s.Require().Equal(http.StatusOK, status)
	var completeResp boss.CompleteGoalResponse
	s.Require().NoError(json.Unmarshal(respBytes, &completeResp))
	s.Assert().Equal(created.ID, completeResp.CompletedID)

	status, respBytes = s.doRequest(http.MethodGet, "/boss", nil, false)
	s.Require().Equal(http.StatusOK, status)
	s.Require().NoError(json.Unmarshal(respBytes, &statusResp))
	for _, gs := range statusResp.Goals {
		s.Assert().NotEqual(created.ID, gs.ID)
	}
}
