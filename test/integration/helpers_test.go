package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

func (a *TestApp) vote(t *testing.T, hostname string, value int, userID string) *http.Response {
	t.Helper()
	body, _ := json.Marshal(map[string]interface{}{
		"link":    map[string]string{"hostname": hostname},
		"value":   value,
		"user_id": userID,
	})
	resp, err := a.Client.Post(a.Server.URL+"/v1/vote", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	return resp
}

func (a *TestApp) mustVote(t *testing.T, hostname string, value int, userID string) {
	t.Helper()
	resp := a.vote(t, hostname, value, userID)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode, "vote on %s by %s", hostname, userID)
}

func (a *TestApp) voteFails(t *testing.T, hostname string, value int, userID, reason string) {
	t.Helper()
	resp := a.vote(t, hostname, value, userID)
	defer resp.Body.Close()
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, reason, body["error"])
}

func (a *TestApp) scores(t *testing.T, hostnames ...string) []string {
	t.Helper()
	links := make([]map[string]string, len(hostnames))
	for i, h := range hostnames {
		links[i] = map[string]string{"hostname": h}
	}
	from, _ := json.Marshal(map[string]interface{}{"links": links})

	resp, err := a.Client.Get(a.Server.URL + "/v1/scores?from=" + url.QueryEscape(string(from)))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body []struct {
		Link  struct{ Hostname string } `json:"link"`
		Score string                    `json:"score"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	out := make([]string, len(body))
	for i, s := range body {
		out[i] = s.Score
	}
	return out
}

func (a *TestApp) admin(t *testing.T, method, path string, payload interface{}) {
	t.Helper()
	body, _ := json.Marshal(payload)
	req, err := http.NewRequest(method, a.Server.URL+"/v1/admin"+path, bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Admin-Token", adminToken)

	resp, err := a.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func (a *TestApp) setMaxVotes(t *testing.T, n int) {
	a.admin(t, http.MethodPatch, "/settings", map[string]int{"maximum_votes_per_user_per_day": n})
}

func (a *TestApp) setVotingDisabled(t *testing.T, disabled bool) {
	a.admin(t, http.MethodPatch, "/settings", map[string]bool{"voting_is_disabled": disabled})
}

func (a *TestApp) setBanned(t *testing.T, userID string, banned bool) {
	a.admin(t, http.MethodPut, fmt.Sprintf("/users/%s/ban", userID), map[string]bool{"is_banned": banned})
}

func userID(group, i int) string {
	return fmt.Sprintf("beda%04d-%d822-4342-0990-b92d94d9489a", i, group)
}
