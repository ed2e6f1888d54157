package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/edruela/volleyball-simulator/internal/adapters/http/api"
	"github.com/edruela/volleyball-simulator/internal/adapters/repository"
	"github.com/edruela/volleyball-simulator/internal/domain/model"
)

// Mock implementations for testing
type mockDeps struct {
	seen        map[string]bool
	enqueueOK   bool
	enqueued    []model.MatchRequest
	simulateRes model.MatchResult
	simulateErr error
	stored      map[string]model.MatchResult
	recent      []model.MatchResult
}

func newMockDeps() *mockDeps {
	return &mockDeps{
		seen:      make(map[string]bool),
		enqueueOK: true,
		stored:    make(map[string]model.MatchResult),
	}
}

func (m *mockDeps) SeenAndRecord(ctx context.Context, id string) bool {
	if m.seen[id] {
		return true
	}
	m.seen[id] = true
	return false
}

func (m *mockDeps) Unrecord(ctx context.Context, id string) {
	delete(m.seen, id)
}

func (m *mockDeps) Size() int64 {
	return int64(len(m.seen))
}

func (m *mockDeps) Enqueue(ctx context.Context, req model.MatchRequest) bool {
	if !m.enqueueOK {
		return false
	}
	m.enqueued = append(m.enqueued, req)
	return true
}

func (m *mockDeps) Simulate(ctx context.Context, req model.MatchRequest) (model.MatchResult, error) {
	if m.simulateErr != nil {
		return model.MatchResult{}, m.simulateErr
	}
	res := m.simulateRes
	res.MatchID = req.RequestID
	return res, nil
}

func (m *mockDeps) GetMatch(ctx context.Context, matchID string) (model.MatchResult, error) {
	res, ok := m.stored[matchID]
	if !ok {
		return model.MatchResult{}, fmt.Errorf("%q: %w", matchID, repository.ErrNotFound)
	}
	return res, nil
}

func (m *mockDeps) RecentMatches(ctx context.Context, n int) ([]model.MatchResult, error) {
	if n > len(m.recent) {
		return m.recent, nil
	}
	return m.recent[:n], nil
}

type mockStatsProvider struct {
	stats map[string]interface{}
}

func (m *mockStatsProvider) GetStats() map[string]interface{} {
	return m.stats
}

func testRoster(clubID string) model.Roster {
	positions := []model.Position{
		model.PositionSetter,
		model.PositionOutsideHitter,
		model.PositionOutsideHitter,
		model.PositionMiddleBlocker,
		model.PositionOppositeHitter,
		model.PositionLibero,
	}
	players := make([]model.Player, len(positions))
	for i, pos := range positions {
		players[i] = model.Player{
			ID:       fmt.Sprintf("%s-p%d", clubID, i),
			Name:     fmt.Sprintf("Player %d", i),
			Position: pos,
			Attributes: model.PlayerAttributes{
				SpikePower: 60, SpikeAccuracy: 60, BlockTiming: 60,
				PassingAccuracy: 60, SettingPrecision: 60, ServePower: 60,
				ServeAccuracy: 60, CourtVision: 60, DecisionMaking: 60,
				Communication: 60, Stamina: 60, Strength: 60,
				Agility: 60, JumpHeight: 60, Speed: 60,
			},
		}
	}
	return model.Roster{ClubID: clubID, Players: players}
}

func testRequest(id string) model.MatchRequest {
	return model.MatchRequest{
		RequestID: id,
		Seed:      42,
		Home: model.TeamSheet{
			Club:    model.Club{ID: "club-home", Name: "Harbor VC", StadiumCapacity: 2000, DivisionTier: 2},
			Roster:  testRoster("club-home"),
			Tactics: model.DefaultTactics(),
		},
		Away: model.TeamSheet{
			Club:    model.Club{ID: "club-away", Name: "Summit VC", StadiumCapacity: 1500, DivisionTier: 2},
			Roster:  testRoster("club-away"),
			Tactics: model.DefaultTactics(),
		},
	}
}

func newTestMux(deps *mockDeps) *http.ServeMux {
	server := api.NewServer(deps, &mockStatsProvider{stats: map[string]interface{}{"started": true}}, 100)
	mux := http.NewServeMux()
	server.Register(context.Background(), mux)
	return mux
}

func postJSON(mux *http.ServeMux, path string, v any) *httptest.ResponseRecorder {
	body, _ := json.Marshal(v)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func TestServerRegister(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		deps := newMockDeps()
		mux := newTestMux(deps)

		Convey("The health endpoint should serve metrics", func() {
			req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusOK)
		})

		Convey("The stats endpoint should return JSON", func() {
			req := httptest.NewRequest(http.MethodGet, "/stats", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Header().Get("Content-Type"), ShouldContainSubstring, "application/json")
		})
	})
}

func TestSimulateEndpoint(t *testing.T) {
	Convey("Given the simulate endpoint", t, func() {
		deps := newMockDeps()
		deps.simulateRes = model.MatchResult{HomeSets: 3, AwaySets: 1, Winner: model.Home}
		mux := newTestMux(deps)

		Convey("When posting a valid request", func() {
			w := postJSON(mux, "/simulate", testRequest("req-1"))

			Convey("Then the full result is returned inline", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var res model.MatchResult
				So(json.Unmarshal(w.Body.Bytes(), &res), ShouldBeNil)
				So(res.MatchID, ShouldEqual, "req-1")
				So(res.HomeSets, ShouldEqual, 3)
			})
		})

		Convey("When posting without a request id", func() {
			w := postJSON(mux, "/simulate", testRequest(""))

			Convey("Then an id is generated for the result", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var res model.MatchResult
				So(json.Unmarshal(w.Body.Bytes(), &res), ShouldBeNil)
				So(res.MatchID, ShouldNotBeEmpty)
			})
		})

		Convey("When posting a short roster", func() {
			req := testRequest("req-2")
			req.Home.Roster.Players = req.Home.Roster.Players[:3]
			w := postJSON(mux, "/simulate", req)

			Convey("Then the request is rejected", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When posting malformed JSON", func() {
			req := httptest.NewRequest(http.MethodPost, "/simulate", bytes.NewReader([]byte("{not json")))
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then the request is rejected", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When using the wrong method", func() {
			req := httptest.NewRequest(http.MethodGet, "/simulate", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestMatchSubmission(t *testing.T) {
	Convey("Given the matches endpoint", t, func() {
		deps := newMockDeps()
		mux := newTestMux(deps)

		Convey("When submitting a match", func() {
			w := postJSON(mux, "/matches", testRequest("match-1"))

			Convey("Then it is accepted for async processing", func() {
				So(w.Code, ShouldEqual, http.StatusAccepted)
				So(len(deps.enqueued), ShouldEqual, 1)
				So(deps.enqueued[0].RequestID, ShouldEqual, "match-1")
			})

			Convey("And resubmitting the same id reports a duplicate", func() {
				w2 := postJSON(mux, "/matches", testRequest("match-1"))
				So(w2.Code, ShouldEqual, http.StatusOK)
				So(w2.Body.String(), ShouldContainSubstring, "duplicate")
				So(len(deps.enqueued), ShouldEqual, 1)
			})
		})

		Convey("When the request id is missing", func() {
			w := postJSON(mux, "/matches", testRequest(""))
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When the queue is saturated", func() {
			deps.enqueueOK = false
			w := postJSON(mux, "/matches", testRequest("match-2"))

			Convey("Then backpressure is signalled and the id rolled back", func() {
				So(w.Code, ShouldEqual, http.StatusTooManyRequests)
				So(deps.seen["match-2"], ShouldBeFalse)
			})
		})
	})
}

func TestMatchRetrieval(t *testing.T) {
	Convey("Given stored match results", t, func() {
		deps := newMockDeps()
		deps.stored["match-9"] = model.MatchResult{MatchID: "match-9", HomeSets: 3, Winner: model.Home}
		deps.recent = []model.MatchResult{
			{MatchID: "match-9"},
			{MatchID: "match-8"},
		}
		mux := newTestMux(deps)

		Convey("Fetching an existing match returns it", func() {
			req := httptest.NewRequest(http.MethodGet, "/matches/match-9", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusOK)
			var res model.MatchResult
			So(json.Unmarshal(w.Body.Bytes(), &res), ShouldBeNil)
			So(res.MatchID, ShouldEqual, "match-9")
		})

		Convey("Fetching an unknown match yields 404", func() {
			req := httptest.NewRequest(http.MethodGet, "/matches/nope", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("Listing recent matches honors the limit", func() {
			req := httptest.NewRequest(http.MethodGet, "/matches?limit=1", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusOK)
			var res []model.MatchResult
			So(json.Unmarshal(w.Body.Bytes(), &res), ShouldBeNil)
			So(len(res), ShouldEqual, 1)
		})

		Convey("A missing limit is rejected", func() {
			req := httptest.NewRequest(http.MethodGet, "/matches", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("An oversized limit is rejected", func() {
			req := httptest.NewRequest(http.MethodGet, "/matches?limit=5000", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})
	})
}
