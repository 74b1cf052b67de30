// Package model contains the match event record and match state passed
// between the engine, the coaches and the GitHub/git adapters.
package model

import "strings"

// Field bounds in metres for a standard 105m × 68m pitch.
const (
	FieldLength = 105.0
	FieldWidth  = 68.0
)

// Team identifiers embedded in agent ids.
const (
	TeamA = "team-a"
	TeamB = "team-b"
)

// ActionType is what happened.
type ActionType string

// Player, referee, coach and commentator actions.
const (
	ActionPass                ActionType = "pass"
	ActionShot                ActionType = "shot"
	ActionTackle              ActionType = "tackle"
	ActionInterception        ActionType = "interception"
	ActionClearance           ActionType = "clearance"
	ActionDribble             ActionType = "dribble"
	ActionCross               ActionType = "cross"
	ActionHeader              ActionType = "header"
	ActionSave                ActionType = "save"
	ActionGoal                ActionType = "goal"
	ActionFoul                ActionType = "foul"
	ActionCard                ActionType = "card"
	ActionWhistle             ActionType = "whistle"
	ActionSubstitution        ActionType = "substitution"
	ActionTacticalInstruction ActionType = "tactical_instruction"
	ActionCommentary          ActionType = "commentary"
)

// ActionResult is the outcome of an action.
type ActionResult string

const (
	ResultSuccess ActionResult = "success"
	ResultFailure ActionResult = "failure"
	ResultPartial ActionResult = "partial"
	ResultPending ActionResult = "pending"
)

// DecisionType records how an action was authorised.
type DecisionType string

const (
	DecisionCommand    DecisionType = "command"
	DecisionConsensus  DecisionType = "consensus"
	DecisionAutonomous DecisionType = "autonomous"
	DecisionSuggestion DecisionType = "suggestion"
	DecisionRuling     DecisionType = "ruling"
	DecisionRequest    DecisionType = "request"
	DecisionApproval   DecisionType = "approval"
	DecisionRejection  DecisionType = "rejection"
)

// CommunicationChannel records how a decision was communicated.
type CommunicationChannel string

const (
	ChannelDirect        CommunicationChannel = "direct"
	ChannelBroadcast     CommunicationChannel = "broadcast"
	ChannelDiscussion    CommunicationChannel = "discussion"
	ChannelPRReview      CommunicationChannel = "pr-review"
	ChannelIssueComment  CommunicationChannel = "issue-comment"
	ChannelTacticalBoard CommunicationChannel = "tactical-board"
	ChannelFieldShout    CommunicationChannel = "field-shout"
	ChannelInternal      CommunicationChannel = "internal"
)

// Priority of a decision.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityNormal   Priority = "normal"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// Card shown by the referee, stored in Action.Metadata["card"].
type Card string

const (
	CardNone   Card = "none"
	CardYellow Card = "yellow"
	CardRed    Card = "red"
)

// MetadataCard is the Action.Metadata key holding the Card for a foul.
const MetadataCard = "card"

// AgentID identifies a participant: {type}-{id}[-{team}], e.g.
// player-01-team-a, coach-team-b, referee-main.
type AgentID string

// Team returns the team id embedded in the agent id, or "".
func (a AgentID) Team() string {
	switch {
	case strings.Contains(string(a), TeamA):
		return TeamA
	case strings.Contains(string(a), TeamB):
		return TeamB
	}
	return ""
}

// String implements fmt.Stringer.
func (a AgentID) String() string { return string(a) }

// Opponent returns the other team id.
func Opponent(team string) string {
	if team == TeamA {
		return TeamB
	}
	return TeamA
}

// PhysicalSpace is a point on (or above) the pitch.
type PhysicalSpace struct {
	X float64 `json:"x" validate:"gte=0,lte=105"`
	Y float64 `json:"y" validate:"gte=0,lte=68"`
	Z float64 `json:"z" validate:"gte=0"`
}

// Space joins the physical position with a logical repository location.
type Space struct {
	Physical PhysicalSpace `json:"physical"`
	Logical  string        `json:"logical"`
}

// Action is what happened and who did it.
type Action struct {
	Type     ActionType     `json:"type" validate:"required,oneof=pass shot tackle interception clearance dribble cross header save goal foul card whistle substitution tactical_instruction commentary"`
	Agent    AgentID        `json:"agent" validate:"required,agentid"`
	Target   string         `json:"target,omitempty"`
	Result   ActionResult   `json:"result" validate:"required,oneof=success failure partial pending"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Card returns the card recorded on a foul, CardNone if absent.
func (a Action) Card() Card {
	if a.Metadata == nil {
		return CardNone
	}
	switch v := a.Metadata[MetadataCard].(type) {
	case Card:
		return v
	case string:
		return Card(v)
	}
	return CardNone
}

// GitHubRefs points at the GitHub artifacts that recorded a decision.
type GitHubRefs struct {
	IssueNumber      *int   `json:"issueNumber,omitempty"`
	PRNumber         *int   `json:"prNumber,omitempty"`
	DiscussionNumber *int   `json:"discussionNumber,omitempty"`
	CommentID        *int64 `json:"commentId,omitempty"`
}

// BasedOn references information a decision used.
type BasedOn struct {
	EventFrame  *int   `json:"eventFrame,omitempty"`
	IssueNumber *int   `json:"issueNumber,omitempty"`
	Source      string `json:"source" validate:"required"`
}

// ValidUntil bounds how long a decision applies.
type ValidUntil struct {
	Frame     *int   `json:"frame,omitempty"`
	MatchTime string `json:"matchTime,omitempty"`
	Condition string `json:"condition,omitempty"`
}

// DecisionMetadata records who decided what, how and why.
type DecisionMetadata struct {
	Type       DecisionType         `json:"type" validate:"required,oneof=command consensus autonomous suggestion ruling request approval rejection"`
	From       AgentID              `json:"from" validate:"required,agentid"`
	To         []AgentID            `json:"to,omitempty" validate:"omitempty,dive,agentid"`
	Channel    CommunicationChannel `json:"channel" validate:"required,oneof=direct broadcast discussion pr-review issue-comment tactical-board field-shout internal"`
	GitHub     *GitHubRefs          `json:"github,omitempty"`
	Reasoning  string               `json:"reasoning,omitempty"`
	BasedOn    []BasedOn            `json:"basedOn,omitempty" validate:"omitempty,dive"`
	ApprovedBy []AgentID            `json:"approvedBy,omitempty" validate:"omitempty,dive,agentid"`
	RejectedBy []AgentID            `json:"rejectedBy,omitempty" validate:"omitempty,dive,agentid"`
	Priority   Priority             `json:"priority,omitempty" validate:"omitempty,oneof=low normal high critical"`
	ValidUntil *ValidUntil          `json:"validUntil,omitempty"`
}

// GitMetadata tracks how an event is recorded in git.
type GitMetadata struct {
	Commit  string `json:"commit,omitempty"`
	Branch  string `json:"branch"`
	Message string `json:"message,omitempty"`
}

// NewGitMetadata returns metadata on the main branch.
func NewGitMetadata(message string) *GitMetadata {
	return &GitMetadata{Branch: "main", Message: message}
}

// Event is the complete Time × Space × Action × Decision record.
type Event struct {
	Timestamp string            `json:"timestamp" validate:"required,timestamp"`
	Frame     int               `json:"frame" validate:"gte=0"`
	MatchTime string            `json:"matchTime,omitempty" validate:"omitempty,matchtime"`
	Space     Space             `json:"space"`
	Action    Action            `json:"action"`
	Decision  *DecisionMetadata `json:"decision,omitempty"`
	Git       *GitMetadata      `json:"git,omitempty"`
}

// Team returns the acting agent's team.
func (e Event) Team() string { return e.Action.Agent.Team() }

// IsKey reports whether the event deserves a mention in summaries.
func (e Event) IsKey() bool {
	switch e.Action.Type {
	case ActionGoal, ActionFoul, ActionCard:
		return true
	}
	return false
}
