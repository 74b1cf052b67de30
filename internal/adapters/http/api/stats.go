package api

import (
	"net/http"

	"github.com/okian/hyperreal/internal/domain/model"
	"github.com/okian/hyperreal/internal/domain/stats"
)

// StatsProvider reports the running match for GET /stats.
type StatsProvider interface {
	GetStats() stats.Report
}

// StatsHandler handles stats requests.
type StatsHandler struct {
	statsProvider StatsProvider
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(statsProvider StatsProvider) *StatsHandler {
	return &StatsHandler{statsProvider: statsProvider}
}

// countsResponse adds the derived success rates to the raw tallies.
type countsResponse struct {
	stats.Counts
	PassAccuracy   float64 `json:"passAccuracy"`
	TackleSuccess  float64 `json:"tackleSuccess"`
	ShotConversion float64 `json:"shotConversion"`
}

func newCountsResponse(c stats.Counts) countsResponse {
	return countsResponse{
		Counts:         c,
		PassAccuracy:   c.PassAccuracy(),
		TackleSuccess:  c.TackleSuccess(),
		ShotConversion: c.ShotConversion(),
	}
}

type statsResponse struct {
	MatchID     string         `json:"matchId"`
	Frame       int            `json:"frame"`
	MatchTime   string         `json:"matchTime"`
	Phase       model.Phase    `json:"phase"`
	Score       model.Score    `json:"score"`
	Events      int            `json:"events"`
	GitHub      bool           `json:"github"`
	GitCommits  bool           `json:"gitCommits"`
	TacticalPRs int            `json:"tacticalPRs"`
	Overall     countsResponse `json:"overall"`
	TeamA       countsResponse `json:"teamA"`
	TeamB       countsResponse `json:"teamB"`
}

// HandleStats handles GET /stats requests.
func (h *StatsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	rep := h.statsProvider.GetStats()
	writeJSON(w, http.StatusOK, statsResponse{
		MatchID:     rep.MatchID,
		Frame:       rep.Frame,
		MatchTime:   rep.MatchTime,
		Phase:       rep.Phase,
		Score:       rep.Score,
		Events:      rep.Events,
		GitHub:      rep.GitHub,
		GitCommits:  rep.GitCommits,
		TacticalPRs: rep.TacticalPRs,
		Overall:     newCountsResponse(rep.Summary.Overall),
		TeamA:       newCountsResponse(rep.Summary.TeamA),
		TeamB:       newCountsResponse(rep.Summary.TeamB),
	})
}
