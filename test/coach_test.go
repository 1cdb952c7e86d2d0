package test

import (
	"encoding/json"
	"net/http"

	"github.com/dvranic/runquest/internal/coach"
)

func (s *IntegrationTestSuite) TestCoachSettings() {
	// never saved before, defaults come back
	status, respBytes := s.doRequest(http.MethodGet, "/coach/settings", nil, false)
	s.Require().Equal(http.StatusOK, status)

	var settings coach.Settings
	s.Require().NoError(json.Unmarshal(respBytes, &settings))
	s.Assert().Equal(coach.CharacterBalanced, settings.CoachCharacter)
	s.Assert().True(settings.NotificationEnabled)

	status, respBytes = s.doRequest(http.MethodPut, "/coach/settings", map[string]any{
		"coachCharacter":      "strict",
		"notificationEnabled": false,
	}, true)
	s.Require().Equal(http.StatusOK, status)
	s.Require().NoError(json.Unmarshal(respBytes, &settings))
	s.Assert().Equal(coach.CharacterStrict, settings.CoachCharacter)
	s.Assert().False(settings.NotificationEnabled)

	// the update sticks
	status, respBytes = s.doRequest(http.MethodGet, "/coach/settings", nil, false)
	s.Require().Equal(http.StatusOK, status)
	s.Require().NoError(json.Unmarshal(respBytes, &settings))
	s.Assert().Equal(coach.CharacterStrict, settings.CoachCharacter)

	status, _ = s.doRequest(http.MethodPut, "/coach/settings", map[string]any{
		"coachCharacter": "pirate",
	}, true)
	s.Assert().Equal(http.StatusBadRequest, status)
}

func (s *IntegrationTestSuite) TestCoachChat_OracleUnreachable() {
	status, _ := s.doRequest(http.MethodPost, "/coach/chat", map[string]any{
		"message": "how is my training going?",
	}, true)
	s.Assert().Equal(http.StatusBadGateway, status)
}
