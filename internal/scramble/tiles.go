package scramble

// TileID is a handle into the tile arena of the current round. Handles are
// only meaningful until the round is dealt again.
type TileID int

// NoTile marks an empty pool or slot position.
const NoTile TileID = -1

// Tile is one letter of the word. Origin is the pool index the tile left when
// it was placed into an answer slot, or -1 while it sits in the pool or is a
// hint letter.
type Tile struct {
	ID     TileID
	Letter rune
	Origin int
}

// TileView is the rendering form of a pool or slot position.
type TileView struct {
	ID     TileID `json:"id"`
	Letter string `json:"letter,omitempty"`
	Locked bool   `json:"locked,omitempty"`
}

func firstEmpty(ids []TileID) int {
	for i, id := range ids {
		if id == NoTile {
			return i
		}
	}
	return -1
}

func indexOf(ids []TileID, id TileID) int {
	for i, candidate := range ids {
		if candidate == id {
			return i
		}
	}
	return -1
}

func emptyPositions(n int) []TileID {
	ids := make([]TileID, n)
	for i := range ids {
		ids[i] = NoTile
	}
	return ids
}
