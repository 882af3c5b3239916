package game

import "github.com/Gauhar-1/Ludo-game/internal/models"

// Board geometry. The shared ring has 52 cells indexed 0-51. A piece's
// progress is tracked as a color-relative step: -1 in base, 0-50 on the ring,
// 51-56 in the color's private home lane. Step 56 means fully home.
const (
	RingSize = 52
	RingEnd  = 50 // last color-relative step that maps to a ring cell
	HomeStep = 56
	Pieces   = 4
)

// startIndexes maps each color to the absolute ring cell where its pieces
// enter the board after rolling a 6.
var startIndexes = map[models.Color]int{
	models.Blue:   0,
	models.Red:    13,
	models.Green:  26,
	models.Yellow: 39,
}

// haltCells are the 8 star cells on the ring where pieces cannot be captured.
var haltCells = map[int]bool{
	0: true, 8: true, 13: true, 21: true, 26: true, 34: true, 39: true, 47: true,
}

// seedColors are the two colors the first seat may receive. The second seat
// always gets the complement, so the pair sits on opposite corners.
var seedColors = [2]models.Color{models.Blue, models.Red}

// complement pairs each color with the one whose entry offset is 26 cells
// away, keeping a 2-player match symmetric.
var complement = map[models.Color]models.Color{
	models.Blue:   models.Green,
	models.Green:  models.Blue,
	models.Red:    models.Yellow,
	models.Yellow: models.Red,
}

// Occupant tags a ring cell with the piece sitting on it.
type Occupant struct {
	Color      models.Color `json:"color"`
	PieceIndex int          `json:"pieceIndex"`
}

// ActualCell translates a color-relative ring step (0-50) into the absolute
// 0-51 cell index used by the occupancy table.
func ActualCell(color models.Color, step int) int {
	return (startIndexes[color] + step) % RingSize
}

// IsSafeCell reports whether an absolute ring cell is one of the 8 star cells.
func IsSafeCell(cell int) bool {
	return haltCells[cell]
}

// ComplementOf returns the fixed partner color assigned to the second seat.
func ComplementOf(c models.Color) models.Color {
	return complement[c]
}
