package prediction

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		results []Result
		want    int
	}{
		{
			name:    "all wins scores 100",
			results: []Result{ResultWin, ResultWin, ResultWin, ResultWin, ResultWin},
			want:    100,
		},
		{
			name:    "all losses scores 0",
			results: []Result{ResultLoss, ResultLoss, ResultLoss, ResultLoss, ResultLoss},
			want:    0,
		},
		{
			name:    "no results defaults to neutral",
			results: nil,
			want:    NeutralFormScore,
		},
		{
			name:    "all draws is a third of max",
			results: []Result{ResultDraw, ResultDraw, ResultDraw, ResultDraw, ResultDraw},
			want:    33,
		},
		{
			name:    "recent results weigh more than old ones",
			results: []Result{ResultLoss, ResultLoss, ResultLoss, ResultLoss, ResultWin},
			// 3*1.8 / (3*(1+1.2+1.4+1.6+1.8)) = 5.4/21
			want: 26,
		},
		{
			name:    "only the last five results count",
			results: []Result{ResultLoss, ResultLoss, ResultWin, ResultWin, ResultWin, ResultWin, ResultWin},
			want:    100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, FormScore(tt.results))
		})
	}
}

func TestFormScoreFromString(t *testing.T) {
	t.Parallel()

	require.Equal(t, 100, FormScoreFromString("W,W,W,W,W"))
	require.Equal(t, 0, FormScoreFromString("LLLLL"))
	require.Equal(t, NeutralFormScore, FormScoreFromString(""))
	require.Equal(t, NeutralFormScore, FormScoreFromString("??"))
}

func TestParseForm(t *testing.T) {
	t.Parallel()

	require.Equal(t, []Result{ResultWin, ResultLoss, ResultDraw}, ParseForm("W,L,D"))
	require.Equal(t, []Result{ResultWin, ResultLoss, ResultDraw}, ParseForm("wld"))
	require.Nil(t, ParseForm("  "))
}
