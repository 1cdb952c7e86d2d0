package test

import (
	"encoding/json"
	"math"
	"net/http"
	"time"

	"github.com/dvranic/runquest/internal/enemies"
)

func (s *IntegrationTestSuite) TestEnemyStatus() {
	stats := s.getStats()

	status, respBytes := s.doRequest(http.MethodGet, "/enemy", nil, false)
	s.Require().Equal(http.StatusOK, status)

	var enemyStatus enemies.Status
	s.Require().NoError(json.Unmarshal(respBytes, &enemyStatus))

	expectedExp := int(math.Floor(stats.Stats.TotalDistanceKm * 100))
	s.Assert().Equal(expectedExp, enemyStatus.Experience)
	s.Assert().Equal(expectedExp/1000, enemyStatus.Level)
	s.Assert().Equal((enemyStatus.Level+1)*1000, enemyStatus.NextLevelExp)

	// make sure there is some distance on record, then beat an enemy
	today := time.Now().UTC().Format(time.DateOnly)
	s.addRunningRecord(today, 12)

	defeatCountBefore := enemyStatus.DefeatCount
	status, _ = s.doRequest(http.MethodPost, "/enemy/defeat", map[string]any{
		"enemyLevel":         1,
		"experienceRequired": 1000,
	}, true)
	s.Require().Equal(http.StatusCreated, status)

	status, respBytes = s.doRequest(http.MethodGet, "/enemy", nil, false)
	s.Require().Equal(http.StatusOK, status)
	s.Require().NoError(json.Unmarshal(respBytes, &enemyStatus))
	s.Assert().Equal(defeatCountBefore+1, enemyStatus.DefeatCount)
	s.Require().NotEmpty(enemyStatus.Defeats)
	s.Assert().Equal(1, enemyStatus.Defeats[0].EnemyLevel)

	// a defeat needs a positive level and experience
	status, _ = s.doRequest(http.MethodPost, "/enemy/defeat", map[string]any{
		"enemyLevel":         0,
		"experienceRequired": 1000,
	}, true)
	s.Assert().Equal(http.StatusBadRequest, status)
}
