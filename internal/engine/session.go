package engine

import "time"

type PlayerSlot string

const (
	SlotPlayer1 PlayerSlot = "player1"
	SlotPlayer2 PlayerSlot = "player2"
)

func (p PlayerSlot) Valid() bool {
	return p == SlotPlayer1 || p == SlotPlayer2
}

func (p PlayerSlot) Other() PlayerSlot {
	if p == SlotPlayer1 {
		return SlotPlayer2
	}
	return SlotPlayer1
}

type Format string

const (
	FormatBO3 Format = "BO3"
	FormatBO5 Format = "BO5"
)

func (f Format) Valid() bool {
	return f == FormatBO3 || f == FormatBO5
}

// MaxWins is the score that ends the series.
func (f Format) MaxWins() int {
	if f == FormatBO5 {
		return 3
	}
	return 2
}

type Phase string

const (
	PhaseRPS             Phase = "RPS"
	PhaseStageBan        Phase = "STAGE_BAN"
	PhaseStageSelect     Phase = "STAGE_SELECT"
	PhaseCharacterSelect Phase = "CHARACTER_SELECT"
	PhasePlaying         Phase = "PLAYING"
	PhaseFinished        Phase = "FINISHED"
)

// ReportTier distinguishes who is vouching for a game result. Participant
// reports need agreement from both players; admin reports apply immediately.
type ReportTier string

const (
	TierParticipant ReportTier = "participant"
	TierAdmin       ReportTier = "admin"
)

type Player struct {
	Name      string   `json:"name"`
	Score     int      `json:"score"`
	Character string   `json:"character,omitempty"`
	WonStages []string `json:"wonStages"`
}

// BanRecord is one entry of the append-only ban audit log.
type BanRecord struct {
	Game   int        `json:"game"`
	Player PlayerSlot `json:"player"`
	Stage  string     `json:"stage"`
	At     time.Time  `json:"timestamp"`
}

// ResultReport is a participant-tier game result claim awaiting its
// counterpart from the other player.
type ResultReport struct {
	Reporter PlayerSlot `json:"reporter"`
	Winner   PlayerSlot `json:"winner"`
}

// Session is the complete state of one best-of-N match.
type Session struct {
	ID              string         `json:"sessionId"`
	Player1         Player         `json:"player1"`
	Player2         Player         `json:"player2"`
	Format          Format         `json:"format"`
	CurrentGame     int            `json:"currentGame"`
	Phase           Phase          `json:"phase"`
	RPSWinner       PlayerSlot     `json:"rpsWinner,omitempty"`
	LastGameWinner  PlayerSlot     `json:"lastGameWinner,omitempty"`
	CurrentTurn     PlayerSlot     `json:"currentTurn,omitempty"`
	AvailableStages []string       `json:"availableStages"`
	BannedStages    []string       `json:"bannedStages"`
	SelectedStage   string         `json:"selectedStage,omitempty"`
	BanHistory      []BanRecord    `json:"banHistory"`
	BansRemaining   int            `json:"bansRemaining"`
	TotalBansNeeded int            `json:"totalBansNeeded"`
	Disputed        bool           `json:"disputed,omitempty"`
	PendingReports  []ResultReport `json:"pendingReports,omitempty"`

	Rules Ruleset `json:"-"`
}

// NewSession builds a fresh session at the RPS phase. Stage pools stay empty
// until the coin toss result seeds them.
func NewSession(id, player1, player2 string, format Format, rules Ruleset) Session {
	return Session{
		ID:              id,
		Player1:         Player{Name: player1, WonStages: []string{}},
		Player2:         Player{Name: player2, WonStages: []string{}},
		Format:          format,
		CurrentGame:     1,
		Phase:           PhaseRPS,
		AvailableStages: []string{},
		BannedStages:    []string{},
		BanHistory:      []BanRecord{},
		Rules:           rules,
	}
}

func (s *Session) player(slot PlayerSlot) *Player {
	if slot == SlotPlayer1 {
		return &s.Player1
	}
	return &s.Player2
}

func (s *Session) charactersChosen() bool {
	return s.Player1.Character != "" && s.Player2.Character != ""
}

// Clone deep-copies the session so Apply can mutate freely while rejected
// commands leave the caller's value untouched.
func (s Session) Clone() Session {
	c := s
	c.Player1.WonStages = append([]string{}, s.Player1.WonStages...)
	c.Player2.WonStages = append([]string{}, s.Player2.WonStages...)
	c.AvailableStages = append([]string{}, s.AvailableStages...)
	c.BannedStages = append([]string{}, s.BannedStages...)
	c.BanHistory = append([]BanRecord{}, s.BanHistory...)
	if s.PendingReports != nil {
		c.PendingReports = append([]ResultReport{}, s.PendingReports...)
	}
	return c
}
