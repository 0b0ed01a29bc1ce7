package renderer

import (
	"fmt"
	"image"
)

// Tile represents a rectangular region of the image to be rendered
type Tile struct {
	ID     int             // Unique tile identifier, row-major over the grid
	TileX  int             // Grid column
	TileY  int             // Grid row
	Bounds image.Rectangle // Pixel bounds (x0,y0,x1,y1), half-open
}

// NewTile creates a new tile with the specified bounds
func NewTile(id, tileX, tileY int, bounds image.Rectangle) *Tile {
	return &Tile{
		ID:     id,
		TileX:  tileX,
		TileY:  tileY,
		Bounds: bounds,
	}
}

// TileGridSize returns the number of tile columns and rows needed to cover
// a width x height image
func TileGridSize(width, height, tileSize int) (tilesX, tilesY int) {
	tilesX = (width + tileSize - 1) / tileSize // Ceiling division
	tilesY = (height + tileSize - 1) / tileSize
	return tilesX, tilesY
}

// NewTileGrid creates a grid of tiles covering the entire image exactly once.
// The last column and row are clamped to the image. Non-positive sizes panic.
func NewTileGrid(width, height, tileSize int) []*Tile {
	if width <= 0 || height <= 0 || tileSize <= 0 {
		panic(fmt.Sprintf("renderer: invalid tile grid %dx%d with tile size %d", width, height, tileSize))
	}

	tilesX, tilesY := TileGridSize(width, height, tileSize)
	tiles := make([]*Tile, 0, tilesX*tilesY)

	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			// Calculate tile bounds
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width) // Don't exceed image bounds
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, NewTile(len(tiles), tileX, tileY, image.Rect(x0, y0, x1, y1)))
		}
	}

	return tiles
}
