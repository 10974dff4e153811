package bot

import (
	"math/rand"
	"testing"

	"github.com/iamasit07/flexfour/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pos(col, row int) domain.Position {
	return domain.Position{Column: col, Row: row}
}

// randomBoard plays n random legal drops alternating players
func randomBoard(rng *rand.Rand, n int) domain.Board {
	b := domain.NewBoard()
	player := domain.Player1
	for i := 0; i < n; i++ {
		candidates := b.Candidates()
		if len(candidates) == 0 {
			break
		}
		c := candidates[rng.Intn(len(candidates))]
		if err := b.Place(c, player); err != nil {
			panic(err)
		}
		player = domain.Opponent(player)
	}
	return b
}

func TestRunScore(t *testing.T) {
	tests := []struct {
		count int
		want  float64
	}{
		{0, 2},
		{1, 8},
		{2, 32},
		{3, 1000},
		{4, 1000},
		{6, 1000},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RunScore(tt.count), "count %d", tt.count)
	}

	for k := 0; k < 10; k++ {
		assert.LessOrEqual(t, RunScore(k), RunScore(k+1), "monotonic at %d", k)
	}
}

func TestWeight(t *testing.T) {
	columnWant := []float64{0.5, 1, 2, 4, 2, 1, 0.5}
	rowWant := []float64{1, 1.5, 3, 1.5, 0.5, 0.5}

	for c, cm := range columnWant {
		for r, rm := range rowWant {
			assert.Equal(t, 10*cm*rm, Weight(10, pos(c, r)), "cell %d,%d", c, r)
		}
	}
}

func TestCountRun(t *testing.T) {
	p1 := domain.Player1
	p2 := domain.Player2

	t.Run("vertical only looks down", func(t *testing.T) {
		var b domain.Board
		b[3][0] = p1
		b[3][1] = p1
		// pieces above the scanned cell are ignored
		b[3][3] = p1
		b[3][4] = p1
		assert.Equal(t, 2, CountRun(&b, pos(3, 2), p1, Vertical))
	})

	t.Run("vertical is capped at three", func(t *testing.T) {
		var b domain.Board
		for r := 0; r < 5; r++ {
			b[3][r] = p1
		}
		assert.Equal(t, 3, CountRun(&b, pos(3, 5), p1, Vertical))
	})

	t.Run("horizontal sums both sides", func(t *testing.T) {
		var b domain.Board
		b[1][0] = p1
		b[2][0] = p1
		b[4][0] = p1
		assert.Equal(t, 3, CountRun(&b, pos(3, 0), p1, Horizontal))
	})

	t.Run("blocked side keeps the other side", func(t *testing.T) {
		var b domain.Board
		b[1][0] = p1
		b[2][0] = p2
		b[4][0] = p1
		b[5][0] = p1
		assert.Equal(t, 2, CountRun(&b, pos(3, 0), p1, Horizontal))
	})

	t.Run("horizontal reaches across the board", func(t *testing.T) {
		var b domain.Board
		for c := 1; c < domain.Columns; c++ {
			b[c][0] = p1
		}
		assert.Equal(t, 6, CountRun(&b, pos(0, 0), p1, Horizontal))
	})

	t.Run("diagonals", func(t *testing.T) {
		var b domain.Board
		b[1][1] = p1
		b[3][3] = p1
		b[4][4] = p1
		b[3][1] = p1
		b[4][0] = p1
		b[1][3] = p1
		assert.Equal(t, 3, CountRun(&b, pos(2, 2), p1, DiagUp))
		assert.Equal(t, 3, CountRun(&b, pos(2, 2), p1, DiagDown))
		assert.Equal(t, 0, CountRun(&b, pos(2, 2), p2, DiagUp))
	})

	t.Run("diagonal up is capped at five", func(t *testing.T) {
		var b domain.Board
		for i := 1; i < domain.Rows; i++ {
			b[i][i] = p1
		}
		assert.Equal(t, 5, CountRun(&b, pos(0, 0), p1, DiagUp))
	})
}

func TestFlexibility_EmptyBoard(t *testing.T) {
	b := domain.NewBoard()

	center, err := Flexibility(&b, pos(3, 0), domain.Player1)
	require.NoError(t, err)
	edge, err := Flexibility(&b, pos(0, 0), domain.Player1)
	require.NoError(t, err)

	// four lines with no run score 2 each, then positional weights
	assert.Equal(t, 32.0, center)
	assert.Equal(t, 4.0, edge)
	assert.Greater(t, center, edge)

	for c := 0; c < domain.Columns; c++ {
		a, err := Flexibility(&b, pos(c, 0), domain.Player1)
		require.NoError(t, err)
		bb, err := Flexibility(&b, pos(c, 0), domain.Player2)
		require.NoError(t, err)
		assert.Equal(t, a, bb, "players score alike on an empty board")
	}
}

func TestFlexibility_VerticalThreeIsWin(t *testing.T) {
	var b domain.Board
	for r := 0; r < 3; r++ {
		b[3][r] = domain.Player1
	}

	flex, err := Flexibility(&b, pos(3, 3), domain.Player1)
	require.NoError(t, err)
	assert.Equal(t, 1006.0*4*1.5, flex)
	assert.True(t, IsWin(flex))

	flex, err = Flexibility(&b, pos(3, 3), domain.Player2)
	require.NoError(t, err)
	assert.False(t, IsWin(flex))
}

func TestFlexibility_CompletedLines(t *testing.T) {
	p1, p2 := domain.Player1, domain.Player2

	t.Run("horizontal", func(t *testing.T) {
		var b domain.Board
		b[0][0], b[1][0], b[2][0] = p1, p1, p1
		flex, err := Flexibility(&b, pos(3, 0), p1)
		require.NoError(t, err)
		assert.Equal(t, 1006.0*4, flex)
	})

	t.Run("diagonal", func(t *testing.T) {
		var b domain.Board
		b[0][0] = p1
		b[1][0], b[1][1] = p2, p1
		b[2][0], b[2][1], b[2][2] = p2, p2, p1
		b[3][0], b[3][1], b[3][2] = p2, p2, p2
		flex, err := Flexibility(&b, pos(3, 3), p1)
		require.NoError(t, err)
		assert.Equal(t, 1006.0*4*1.5, flex)
		assert.True(t, IsWin(flex))
	})
}

func TestFlexibility_Errors(t *testing.T) {
	b := domain.NewBoard()
	_, err := b.Drop(2, domain.Player1)
	require.NoError(t, err)

	_, err = Flexibility(&b, pos(2, 0), domain.Player2)
	require.ErrorIs(t, err, domain.ErrOccupiedCell)

	_, err = Flexibility(&b, pos(7, 0), domain.Player2)
	require.ErrorIs(t, err, domain.ErrInvalidPosition)

	_, err = Flexibility(&b, pos(0, -1), domain.Player2)
	require.ErrorIs(t, err, domain.ErrInvalidPosition)

	_, err = Flexibility(&b, pos(0, 0), domain.Empty)
	require.ErrorIs(t, err, domain.ErrInvalidPlayer)
}

func TestFlexibility_NonNegativeAndDeterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 50; i++ {
		b := randomBoard(rng, rng.Intn(30))
		before := b

		for c := 0; c < domain.Columns; c++ {
			for r := 0; r < domain.Rows; r++ {
				if b[c][r] != domain.Empty {
					continue
				}
				for _, player := range []domain.PlayerID{domain.Player1, domain.Player2} {
					first, err := Evaluate(b, pos(c, r), player)
					require.NoError(t, err)
					second, err := Evaluate(b, pos(c, r), player)
					require.NoError(t, err)

					assert.GreaterOrEqual(t, first, 0.0)
					assert.Equal(t, first, second)
				}
			}
		}
		require.Equal(t, before, b)
	}
}
