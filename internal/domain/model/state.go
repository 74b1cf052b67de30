package model

// Phase of the match.
type Phase string

const (
	PhaseKickoff  Phase = "kickoff"
	PhasePlay     Phase = "play"
	PhaseFreekick Phase = "freekick"
	PhaseCorner   Phase = "corner"
	PhasePenalty  Phase = "penalty"
	PhaseHalftime Phase = "halftime"
	PhaseFulltime Phase = "fulltime"
)

// PlayerState is what a player is doing in the current frame.
type PlayerState string

const (
	PlayerIdle     PlayerState = "idle"
	PlayerRunning  PlayerState = "running"
	PlayerTackling PlayerState = "tackling"
	PlayerShooting PlayerState = "shooting"
	PlayerPassing  PlayerState = "passing"
)

// AgentRole enumerates the kinds of participants.
type AgentRole string

const (
	RoleGoalkeeper  AgentRole = "goalkeeper"
	RoleDefender    AgentRole = "defender"
	RoleMidfielder  AgentRole = "midfielder"
	RoleForward     AgentRole = "forward"
	RoleCoach       AgentRole = "coach"
	RoleReferee     AgentRole = "referee"
	RoleCommentator AgentRole = "commentator"
)

// Velocity3 is a ball velocity vector.
type Velocity3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Velocity2 is a player velocity vector.
type Velocity2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Ball is the ball position with optional velocity.
type Ball struct {
	PhysicalSpace
	Velocity *Velocity3 `json:"velocity,omitempty"`
}

// Player is one roster entry.
type Player struct {
	ID       AgentID       `json:"id" validate:"required,agentid"`
	Position PhysicalSpace `json:"position"`
	Velocity *Velocity2    `json:"velocity,omitempty"`
	Stamina  float64       `json:"stamina" validate:"gte=0,lte=100"`
	State    PlayerState   `json:"state" validate:"required,oneof=idle running tackling shooting passing"`
}

// Score is the running score.
type Score struct {
	TeamA int `json:"teamA" validate:"gte=0"`
	TeamB int `json:"teamB" validate:"gte=0"`
}

// For returns the goals of team.
func (s Score) For(team string) int {
	if team == TeamA {
		return s.TeamA
	}
	return s.TeamB
}

// Diff returns team's goals minus the opponent's.
func (s Score) Diff(team string) int {
	return s.For(team) - s.For(Opponent(team))
}

// MatchState is the complete state at a point in time; the engine
// overwrites it every frame.
type MatchState struct {
	MatchID   string   `json:"matchId,omitempty"`
	Timestamp string   `json:"timestamp" validate:"required,timestamp"`
	Frame     int      `json:"frame" validate:"gte=0"`
	MatchTime string   `json:"matchTime" validate:"required,matchtime"`
	Ball      Ball     `json:"ball"`
	Players   []Player `json:"players" validate:"dive"`
	Score     Score    `json:"score"`
	Phase     Phase    `json:"phase" validate:"required,oneof=kickoff play freekick corner penalty halftime fulltime"`
}

// Player returns the roster entry for id.
func (s *MatchState) Player(id AgentID) (*Player, bool) {
	for i := range s.Players {
		if s.Players[i].ID == id {
			return &s.Players[i], true
		}
	}
	return nil, false
}

// Clone returns a deep copy safe to hand to observers.
func (s MatchState) Clone() MatchState {
	out := s
	if s.Ball.Velocity != nil {
		v := *s.Ball.Velocity
		out.Ball.Velocity = &v
	}
	out.Players = make([]Player, len(s.Players))
	for i, p := range s.Players {
		if p.Velocity != nil {
			v := *p.Velocity
			p.Velocity = &v
		}
		out.Players[i] = p
	}
	return out
}
