package ws

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Gabrielb-Webdev/smash-ban-server/internal/engine"
	"github.com/Gabrielb-Webdev/smash-ban-server/pkg/types"
)

func TestToCommand(t *testing.T) {
	cases := []struct {
		name    string
		msg     types.ClientMessage
		want    engine.Command
		wantErr string
	}{
		{
			name: "coin toss winner",
			msg:  types.ClientMessage{Type: "reportCoinTossWinner", Winner: "player1"},
			want: engine.Command{Type: engine.CmdReportRPSWinner, Winner: engine.SlotPlayer1},
		},
		{
			name:    "coin toss bad winner",
			msg:     types.ClientMessage{Type: "reportCoinTossWinner", Winner: "player3"},
			wantErr: "invalid winner",
		},
		{
			name: "ban stage",
			msg:  types.ClientMessage{Type: "banStage", Player: "player2", StageID: "smashville"},
			want: engine.Command{Type: engine.CmdBanStage, Player: engine.SlotPlayer2, Stage: "smashville"},
		},
		{
			name: "select stage admin override",
			msg:  types.ClientMessage{Type: "selectStage", StageID: "battlefield"},
			want: engine.Command{Type: engine.CmdSelectStage, Stage: "battlefield"},
		},
		{
			name: "select character",
			msg:  types.ClientMessage{Type: "selectCharacter", Player: "player1", CharacterID: "fox"},
			want: engine.Command{Type: engine.CmdSelectCharacter, Player: engine.SlotPlayer1, Character: "fox"},
		},
		{
			name:    "select unknown character",
			msg:     types.ClientMessage{Type: "selectCharacter", Player: "player1", CharacterID: "goku"},
			wantErr: "unknown character",
		},
		{
			name: "participant game winner report",
			msg: types.ClientMessage{
				Type: "reportGameWinner", Winner: "player1",
				Tier: "participant", Reporter: "player2",
			},
			want: engine.Command{
				Type: engine.CmdReportGameWinner, Winner: engine.SlotPlayer1,
				Tier: engine.TierParticipant, Reporter: engine.SlotPlayer2,
			},
		},
		{
			name: "reset series",
			msg:  types.ClientMessage{Type: "resetSeries"},
			want: engine.Command{Type: engine.CmdResetSeries},
		},
		{
			name: "end match early",
			msg:  types.ClientMessage{Type: "endMatchEarly", Winner: "player2"},
			want: engine.Command{Type: engine.CmdEndMatchEarly, Winner: engine.SlotPlayer2},
		},
		{
			name: "update players",
			msg:  types.ClientMessage{Type: "updatePlayers", Player1: "Leo", Format: "BO5"},
			want: engine.Command{Type: engine.CmdUpdatePlayers, Player1: "Leo", Format: engine.FormatBO5},
		},
		{
			name:    "update players bad format",
			msg:     types.ClientMessage{Type: "updatePlayers", Format: "BO9"},
			wantErr: "invalid format",
		},
		{
			name:    "unknown type",
			msg:     types.ClientMessage{Type: "doBarrelRoll"},
			wantErr: "unknown type",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cmd, errMsg := toCommand(tc.msg)
			require.Equal(t, tc.wantErr, errMsg)
			if tc.wantErr == "" {
				require.Equal(t, tc.want, cmd)
			}
		})
	}
}
