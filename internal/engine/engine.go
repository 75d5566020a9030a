package engine

import (
	"errors"
	"slices"
	"time"
)

var ErrWrongTurn = errors.New("not this player's turn")
var ErrWrongPhase = errors.New("action not legal in current phase")
var ErrIllegalStage = errors.New("stage not available")
var ErrIllegalCharacter = errors.New("invalid character")
var ErrUnknownPlayer = errors.New("unknown player slot")
var ErrSeriesOver = errors.New("series already finished")
var ErrFormatLocked = errors.New("format cannot change mid-series")
var ErrUnsupportedCommand = errors.New("unsupported command")

type CommandType string

const (
	CmdReportRPSWinner  CommandType = "ReportRPSWinner"
	CmdBanStage         CommandType = "BanStage"
	CmdSelectStage      CommandType = "SelectStage"
	CmdSelectCharacter  CommandType = "SelectCharacter"
	CmdReportGameWinner CommandType = "ReportGameWinner"
	CmdResetSeries      CommandType = "ResetSeries"
	CmdEndMatchEarly    CommandType = "EndMatchEarly"
	CmdUpdatePlayers    CommandType = "UpdatePlayers"
)

type Command struct {
	Type      CommandType
	Player    PlayerSlot // acting player for ban/select/character
	Winner    PlayerSlot // rps winner, game winner, early-end winner
	Stage     string
	Character string
	Tier      ReportTier // empty defaults to admin
	Reporter  PlayerSlot // required for participant-tier reports
	Player1   string     // UpdatePlayers
	Player2   string
	Format    Format
}

type EventType string

const (
	EvtSessionUpdated EventType = "SessionUpdated"
	EvtGameFinished   EventType = "GameFinished"
	EvtSeriesFinished EventType = "SeriesFinished"
)

type Event struct {
	Type   EventType
	Winner PlayerSlot
}

// stubbed in tests for deterministic ban history timestamps
var timeNow = time.Now

// Apply validates cmd against the session's phase and turn, and returns the
// next session. On error the input session is returned unchanged; callers
// must treat the returned value as the sole authoritative snapshot.
func Apply(s Session, cmd Command) (Session, []Event, error) {
	switch cmd.Type {
	case CmdReportRPSWinner:
		return reportRPSWinner(s, cmd)
	case CmdBanStage:
		return banStage(s, cmd)
	case CmdSelectStage:
		return selectStage(s, cmd)
	case CmdSelectCharacter:
		return selectCharacter(s, cmd)
	case CmdReportGameWinner:
		return reportGameWinner(s, cmd)
	case CmdResetSeries:
		return resetSeries(s)
	case CmdEndMatchEarly:
		return endMatchEarly(s, cmd)
	case CmdUpdatePlayers:
		return updatePlayers(s, cmd)
	default:
		return s, nil, ErrUnsupportedCommand
	}
}

func reportRPSWinner(s Session, cmd Command) (Session, []Event, error) {
	if s.Phase != PhaseRPS {
		return s, nil, ErrWrongPhase
	}
	if !cmd.Winner.Valid() {
		return s, nil, ErrUnknownPlayer
	}

	next := s.Clone()
	next.RPSWinner = cmd.Winner
	startGame(&next)
	return next, []Event{{Type: EvtSessionUpdated}}, nil
}

// startGame seeds the stage pool and ban counters for the current game and
// enters the first in-game phase. The caller must have set RPSWinner (game 1)
// or LastGameWinner (game 2+).
func startGame(s *Session) {
	s.BannedStages = []string{}
	s.SelectedStage = ""
	s.Disputed = false
	s.PendingReports = nil

	if s.CurrentGame == 1 {
		s.AvailableStages = append([]string{}, s.Rules.Game1Stages...)
		s.TotalBansNeeded = s.Rules.totalGame1Bans()
		s.CurrentTurn, s.BansRemaining = s.Rules.game1Turn(0, s.RPSWinner)
	} else {
		// DSR: the previous winner cannot revisit a stage they already won on.
		won := s.player(s.LastGameWinner).WonStages
		pool := make([]string, 0, len(s.Rules.CounterpickStages))
		for _, id := range s.Rules.CounterpickStages {
			if !slices.Contains(won, id) {
				pool = append(pool, id)
			}
		}
		s.AvailableStages = pool
		s.TotalBansNeeded = s.Rules.CounterpickBans
		s.BansRemaining = s.Rules.CounterpickBans
		s.CurrentTurn = s.LastGameWinner
	}

	if s.Rules.CharacterSelectFirst {
		s.Phase = PhaseCharacterSelect
		s.CurrentTurn = s.firstPicker()
	} else {
		s.Phase = PhaseStageBan
	}
}

// firstPicker is who chooses their character first: the RPS winner in game 1,
// the previous game's winner afterwards.
func (s *Session) firstPicker() PlayerSlot {
	if s.CurrentGame == 1 || s.LastGameWinner == "" {
		return s.RPSWinner
	}
	return s.LastGameWinner
}

// firstBanner is who owns the ban sequence opening for the current game.
func (s *Session) firstBanner() PlayerSlot {
	if s.CurrentGame == 1 {
		return s.RPSWinner
	}
	return s.LastGameWinner
}

func banStage(s Session, cmd Command) (Session, []Event, error) {
	if s.Phase != PhaseStageBan {
		return s, nil, ErrWrongPhase
	}
	if !cmd.Player.Valid() {
		return s, nil, ErrUnknownPlayer
	}
	if cmd.Player != s.CurrentTurn {
		return s, nil, ErrWrongTurn
	}
	if !slices.Contains(s.AvailableStages, cmd.Stage) {
		return s, nil, ErrIllegalStage
	}

	next := s.Clone()
	next.BanHistory = append(next.BanHistory, BanRecord{
		Game:   next.CurrentGame,
		Player: cmd.Player,
		Stage:  cmd.Stage,
		At:     timeNow(),
	})
	next.BannedStages = append(next.BannedStages, cmd.Stage)
	next.AvailableStages = slices.DeleteFunc(next.AvailableStages, func(id string) bool {
		return id == cmd.Stage
	})

	banned := len(next.BannedStages)
	if next.CurrentGame == 1 {
		if banned >= next.TotalBansNeeded {
			selector, _ := next.Rules.game1Turn(banned, next.RPSWinner)
			next.BansRemaining = 0
			finishBanPhase(&next, selector)
		} else {
			next.CurrentTurn, next.BansRemaining = next.Rules.game1Turn(banned, next.RPSWinner)
		}
	} else {
		next.BansRemaining--
		if next.BansRemaining == 0 {
			finishBanPhase(&next, next.LastGameWinner.Other())
		}
	}
	return next, []Event{{Type: EvtSessionUpdated}}, nil
}

// finishBanPhase moves to stage selection, or resolves the stage outright
// when the bans left exactly one candidate.
func finishBanPhase(s *Session, selector PlayerSlot) {
	if len(s.AvailableStages) == 1 {
		s.SelectedStage = s.AvailableStages[0]
		afterStageChosen(s)
		return
	}
	s.Phase = PhaseStageSelect
	s.CurrentTurn = selector
}

func selectStage(s Session, cmd Command) (Session, []Event, error) {
	if s.Phase != PhaseStageSelect {
		return s, nil, ErrWrongPhase
	}
	// An empty slot is the admin override; a named slot must hold the turn.
	if cmd.Player != "" {
		if !cmd.Player.Valid() {
			return s, nil, ErrUnknownPlayer
		}
		if cmd.Player != s.CurrentTurn {
			return s, nil, ErrWrongTurn
		}
	}
	if !slices.Contains(s.AvailableStages, cmd.Stage) {
		return s, nil, ErrIllegalStage
	}

	next := s.Clone()
	next.SelectedStage = cmd.Stage
	afterStageChosen(&next)
	return next, []Event{{Type: EvtSessionUpdated}}, nil
}

func afterStageChosen(s *Session) {
	if s.charactersChosen() {
		s.Phase = PhasePlaying
		s.CurrentTurn = ""
		return
	}
	s.Phase = PhaseCharacterSelect
	s.CurrentTurn = s.firstPicker()
}

func selectCharacter(s Session, cmd Command) (Session, []Event, error) {
	if s.Phase != PhaseCharacterSelect {
		return s, nil, ErrWrongPhase
	}
	if !cmd.Player.Valid() {
		return s, nil, ErrUnknownPlayer
	}
	if cmd.Player != s.CurrentTurn {
		return s, nil, ErrWrongTurn
	}
	if cmd.Character == "" {
		return s, nil, ErrIllegalCharacter
	}

	next := s.Clone()
	next.player(cmd.Player).Character = cmd.Character

	other := cmd.Player.Other()
	if next.player(other).Character == "" {
		next.CurrentTurn = other
		return next, []Event{{Type: EvtSessionUpdated}}, nil
	}

	// Both locked in.
	if next.Rules.CharacterSelectFirst && next.SelectedStage == "" {
		next.Phase = PhaseStageBan
		next.CurrentTurn = next.firstBanner()
	} else {
		next.Phase = PhasePlaying
		next.CurrentTurn = ""
	}
	return next, []Event{{Type: EvtSessionUpdated}}, nil
}

func reportGameWinner(s Session, cmd Command) (Session, []Event, error) {
	if s.Phase == PhaseFinished {
		return s, nil, ErrSeriesOver
	}
	if s.Phase != PhasePlaying {
		return s, nil, ErrWrongPhase
	}
	if !cmd.Winner.Valid() {
		return s, nil, ErrUnknownPlayer
	}

	if cmd.Tier == TierParticipant {
		if !cmd.Reporter.Valid() {
			return s, nil, ErrUnknownPlayer
		}
		next := s.Clone()
		next.PendingReports = slices.DeleteFunc(next.PendingReports, func(r ResultReport) bool {
			return r.Reporter == cmd.Reporter
		})
		next.PendingReports = append(next.PendingReports, ResultReport{
			Reporter: cmd.Reporter,
			Winner:   cmd.Winner,
		})
		if len(next.PendingReports) < 2 {
			next.Disputed = false
			return next, []Event{{Type: EvtSessionUpdated}}, nil
		}
		if next.PendingReports[0].Winner != next.PendingReports[1].Winner {
			// Conflicting claims: hold until a privileged report resolves it.
			next.Disputed = true
			return next, []Event{{Type: EvtSessionUpdated}}, nil
		}
		return applyGameResult(next, next.PendingReports[0].Winner)
	}

	// Admin tier (the default) applies unconditionally and settles disputes.
	return applyGameResult(s.Clone(), cmd.Winner)
}

func applyGameResult(next Session, winner PlayerSlot) (Session, []Event, error) {
	next.Disputed = false
	next.PendingReports = nil

	w := next.player(winner)
	w.Score++
	if next.SelectedStage != "" {
		w.WonStages = append(w.WonStages, next.SelectedStage)
	}
	next.LastGameWinner = winner

	if w.Score >= next.Format.MaxWins() {
		next.Phase = PhaseFinished
		next.CurrentTurn = ""
		return next, []Event{
			{Type: EvtGameFinished, Winner: winner},
			{Type: EvtSeriesFinished, Winner: winner},
		}, nil
	}

	next.CurrentGame++
	next.Player1.Character = ""
	next.Player2.Character = ""
	startGame(&next)
	return next, []Event{
		{Type: EvtGameFinished, Winner: winner},
		{Type: EvtSessionUpdated},
	}, nil
}

// resetSeries re-arms the session in place: same id, same names, same format,
// everything else back to defaults.
func resetSeries(s Session) (Session, []Event, error) {
	next := NewSession(s.ID, s.Player1.Name, s.Player2.Name, s.Format, s.Rules)
	return next, []Event{{Type: EvtSessionUpdated}}, nil
}

func endMatchEarly(s Session, cmd Command) (Session, []Event, error) {
	if s.Phase == PhaseFinished {
		return s, nil, ErrSeriesOver
	}
	if !cmd.Winner.Valid() {
		return s, nil, ErrUnknownPlayer
	}

	next := s.Clone()
	next.player(cmd.Winner).Score = next.Format.MaxWins()
	next.LastGameWinner = cmd.Winner
	next.Phase = PhaseFinished
	next.CurrentTurn = ""
	next.Disputed = false
	next.PendingReports = nil
	return next, []Event{{Type: EvtSeriesFinished, Winner: cmd.Winner}}, nil
}

func updatePlayers(s Session, cmd Command) (Session, []Event, error) {
	next := s.Clone()
	if cmd.Player1 != "" {
		next.Player1.Name = cmd.Player1
	}
	if cmd.Player2 != "" {
		next.Player2.Name = cmd.Player2
	}
	if cmd.Format != "" && cmd.Format != s.Format {
		if s.Phase != PhaseRPS && s.Phase != PhaseFinished {
			return s, nil, ErrFormatLocked
		}
		next.Format = cmd.Format
	}
	return next, []Event{{Type: EvtSessionUpdated}}, nil
}

// Finished reports whether any event in the batch ended the series.
func Finished(events []Event) (PlayerSlot, bool) {
	for _, e := range events {
		if e.Type == EvtSeriesFinished {
			return e.Winner, true
		}
	}
	return "", false
}
