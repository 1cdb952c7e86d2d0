package test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *IntegrationTestSuite) TestLogin() {
	cases := map[string]struct {
		loginReq           loginRequest
		expectedStatusCode int
		assertFunc         func(respBody string)
	}{
		"good creds": {
			loginReq: loginRequest{
				Username: testUsername,
				Password: testPassword,
			},
			expectedStatusCode: http.StatusOK,
			assertFunc: func(respBody string) {
				var loginResp struct {
					Token string `json:"token"`
				}
				s.Require().NoError(json.Unmarshal([]byte(respBody), &loginResp))
				s.Assert().NotEmpty(loginResp.Token)
			},
		},
		"wrong password": {
			loginReq: loginRequest{
				Username: testUsername,
				Password: "invalid-password",
			},
			expectedStatusCode: http.StatusBadRequest,
			assertFunc: func(respBody string) {
				s.Assert().True(strings.Contains(respBody, "wrong credentials"))
			},
		},
		"wrong username": {
			loginReq: loginRequest{
				Username: "invalid-username",
				Password: testPassword,
			},
			expectedStatusCode: http.StatusBadRequest,
			assertFunc: func(respBody string) {
				s.Assert().True(strings.Contains(respBody, "wrong credentials"))
			},
		},
	}

	for name, tc := range cases {
		s.Run(name, func() {
			reqBytes, err := json.Marshal(tc.loginReq)
			s.Require().NoError(err)

			req, err := http.NewRequest(
				http.MethodPost,
				fmt.Sprintf("%s/a/login", serverEndpoint),
				bytes.NewReader(reqBytes),
			)
			s.Require().NoError(err)
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Origin", "test")

			resp, err := http.DefaultClient.Do(req)
			s.Require().NoError(err)

			respBytes, err := io.ReadAll(resp.Body)
			s.Require().NoError(err)
			s.Require().NoError(resp.Body.Close())

			s.Assert().Equal(tc.expectedStatusCode, resp.StatusCode)
			tc.assertFunc(string(respBytes))
		})
	}
}

// logout with a bogus token is rejected
func (s *IntegrationTestSuite) TestLogout_InvalidToken() {
	req, err := http.NewRequest(
		http.MethodGet,
		fmt.Sprintf("%s/a/logout", serverEndpoint),
		nil,
	)
	s.Require().NoError(err)
	req.Header.Set("Origin", "test")
	req.Header.Set("X-RUNQUEST-TOKEN", "no-such-session")

	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	s.Require().NoError(resp.Body.Close())

	s.Assert().Equal(http.StatusUnauthorized, resp.StatusCode)
}
