package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/totototosssss/num/internal/game"
	"github.com/totototosssss/num/internal/oeis"
	"github.com/totototosssss/num/internal/store"
)

const fibBody = `{"results":[{"name":"Fibonacci numbers","data":"0,1,1,2,3,5,8,13"}]}`

// fakeOEIS answers /search with a per-identifier body, defaulting to the
// Fibonacci sequence.
func fakeOEIS(t *testing.T, bodies map[string]string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("q")
		id := strings.TrimPrefix(q, "id:")
		if body, ok := bodies[id]; ok {
			_, _ = w.Write([]byte(body))
			return
		}
		_, _ = w.Write([]byte(fibBody))
	}))
}

// testClient drives the server router while carrying cookies across
// requests, the way a browser would.
type testClient struct {
	t       *testing.T
	srv     *Server
	cookies []*http.Cookie
}

func newTestClient(t *testing.T, bodies map[string]string, pool ...string) *testClient {
	t.Helper()
	backend := fakeOEIS(t, bodies)
	t.Cleanup(backend.Close)

	provider := oeis.NewClient(backend.URL, game.TermsToDisplay+1)
	engine := game.NewEngine(provider, 0)
	srv := New(store.NewMemoryStore(), engine, pool)
	return &testClient{t: t, srv: srv}
}

func (c *testClient) do(method, path, body string) *httptest.ResponseRecorder {
	c.t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	c.srv.Router().ServeHTTP(w, req)
	c.cookies = append(c.cookies, w.Result().Cookies()...)
	return w
}

func (c *testClient) game(method, path, body string) gameRes {
	c.t.Helper()
	w := c.do(method, path, body)
	require.Equal(c.t, http.StatusOK, w.Code, "unexpected status: %s", w.Body.String())
	var res gameRes
	require.NoError(c.t, json.NewDecoder(w.Body).Decode(&res))
	return res
}

func TestHealth(t *testing.T) {
	c := newTestClient(t, nil, "A000045")
	w := c.do(http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())
}

func TestGamePage(t *testing.T) {
	c := newTestClient(t, nil, "A000045")
	w := c.do(http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "guess the next term")
}

func TestFullGameFlow(t *testing.T) {
	c := newTestClient(t, nil, "A000045")

	// New game: first question displayed.
	res := c.game(http.MethodPost, "/game/new", `{}`)
	require.NotEmpty(t, res.GameID)
	assert.Equal(t, game.PhaseDisplaying, res.View.Phase)
	assert.Equal(t, "0, 1, 1, 2, 3, __", res.View.Sequence.Display)
	assert.True(t, res.View.Input.Enabled)

	// View is idempotent.
	again := c.game(http.MethodGet, "/game/view?gameId="+res.GameID, "")
	assert.Equal(t, res.View, again.View)

	// Correct guess.
	res = c.game(http.MethodPost, "/game/guess",
		`{"gameId":"`+res.GameID+`","guess":"5"}`)
	assert.Equal(t, game.PhaseAnswered, res.View.Phase)
	assert.True(t, res.View.Feedback.Correct)
	assert.Equal(t, "Fibonacci numbers", res.View.Explanation.Title)
	assert.Equal(t, "0, 1, 1, 2, 3, 5, ...", res.View.Explanation.Body)
	assert.Equal(t, "https://oeis.org/A000045", res.View.Explanation.Link)
	assert.False(t, res.View.Next.Visible, "single-entry pool leaves no next question")

	// Advancing past the last question ends the game.
	res = c.game(http.MethodPost, "/game/next", `{"gameId":"`+res.GameID+`"}`)
	assert.Equal(t, game.PhaseExhausted, res.View.Phase)
}

func TestIncorrectGuessFlow(t *testing.T) {
	c := newTestClient(t, nil, "A000045", "A000040")

	res := c.game(http.MethodPost, "/game/new", `{}`)
	res = c.game(http.MethodPost, "/game/guess",
		`{"gameId":"`+res.GameID+`","guess":"99"}`)
	assert.False(t, res.View.Feedback.Correct)
	assert.Contains(t, res.View.Feedback.Text, "5")
	assert.True(t, res.View.Next.Visible, "identifiers remain in the pool")

	res = c.game(http.MethodPost, "/game/next", `{"gameId":"`+res.GameID+`"}`)
	assert.Equal(t, game.PhaseDisplaying, res.View.Phase)
}

func TestNewGameResumesUnfinishedSession(t *testing.T) {
	c := newTestClient(t, nil, "A000045", "A000040")

	first := c.game(http.MethodPost, "/game/new", `{}`)
	second := c.game(http.MethodPost, "/game/new", `{}`)
	assert.Equal(t, first.GameID, second.GameID)
	assert.Equal(t, first.View, second.View)
}

func TestNewGameAfterExhaustionStartsFresh(t *testing.T) {
	c := newTestClient(t, nil, "A000045")

	res := c.game(http.MethodPost, "/game/new", `{}`)
	c.game(http.MethodPost, "/game/guess", `{"gameId":"`+res.GameID+`","guess":"5"}`)
	c.game(http.MethodPost, "/game/next", `{"gameId":"`+res.GameID+`"}`)

	fresh := c.game(http.MethodPost, "/game/new", `{}`)
	assert.NotEqual(t, res.GameID, fresh.GameID)
	assert.Equal(t, game.PhaseDisplaying, fresh.View.Phase)
}

func TestErrorStateWhenSequenceNotFound(t *testing.T) {
	c := newTestClient(t, map[string]string{"A999999": `{"results":[]}`}, "A999999")

	res := c.game(http.MethodPost, "/game/new", `{}`)
	assert.Equal(t, game.PhaseError, res.View.Phase)
	assert.Contains(t, res.View.Error.Message, "A999999")
	assert.False(t, res.View.Error.Retry, "empty pool hides the retry control")
	assert.Equal(t, 0, res.View.Score.Remaining)
}

func TestGuessUnknownGame(t *testing.T) {
	c := newTestClient(t, nil, "A000045")
	w := c.do(http.MethodPost, "/game/guess", `{"gameId":"missing","guess":"5"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGuessMissingGameID(t *testing.T) {
	c := newTestClient(t, nil, "A000045")
	w := c.do(http.MethodPost, "/game/guess", `{"guess":"5"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSessionOwnership(t *testing.T) {
	c := newTestClient(t, nil, "A000045")
	res := c.game(http.MethodPost, "/game/new", `{}`)

	// A different browser (no shared cookie) cannot touch the session.
	stranger := &testClient{t: t, srv: c.srv}
	w := stranger.do(http.MethodPost, "/game/guess",
		`{"gameId":"`+res.GameID+`","guess":"5"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCORSPreflight(t *testing.T) {
	c := newTestClient(t, nil, "A000045")
	w := c.do(http.MethodOptions, "/game/new", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
	assert.NotEmpty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestJSONNotFound(t *testing.T) {
	c := newTestClient(t, nil, "A000045")
	w := c.do(http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "not_found")
}
