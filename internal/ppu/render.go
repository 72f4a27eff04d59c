package ppu

import "github.com/tuankiet65/knocknock/internal/ppu/palette"

const (
	lcdcWindowMap    = 1 << 6
	lcdcWindowEnable = 1 << 5
	lcdcAddrMode     = 1 << 4
	lcdcBGMap        = 1 << 3
	lcdcSpriteSize   = 1 << 2
	lcdcSpriteEnable = 1 << 1
	lcdcBGPriority   = 1 << 0
)

// renderLine composites background, window, and sprites for the
// current p.ly into p.frame, per the tile decoding and palette rules
// of §4.7.
func (p *PPU) renderLine() {
	bgp := palette.Decode(p.bgp)
	obp0 := palette.Decode(p.obp0)
	obp1 := palette.Decode(p.obp1)

	var bgIndex [160]uint8 // raw 2-bit background/window color, for sprite priority

	windowVisible := p.lcdc&lcdcWindowEnable != 0 && p.ly >= p.wy
	for x := 0; x < 160; x++ {
		var tilePixel uint8
		if windowVisible && int(p.wx)-7 <= x {
			tilePixel = p.fetchTilePixel(p.windowLine, uint8(x-(int(p.wx)-7)), p.lcdc&lcdcWindowMap != 0)
		} else {
			bgY := p.scy + p.ly
			bgX := p.scx + uint8(x)
			tilePixel = p.fetchTilePixel(bgY, bgX, p.lcdc&lcdcBGMap != 0)
		}
		bgIndex[x] = tilePixel
		if p.lcdc&lcdcBGPriority == 0 {
			p.frame[p.ly][x] = bgp.Apply(0)
		} else {
			p.frame[p.ly][x] = bgp.Apply(tilePixel)
		}
	}
	if windowVisible {
		p.windowLine++
	}

	if p.lcdc&lcdcSpriteEnable != 0 {
		p.renderSprites(bgIndex, obp0, obp1)
	}
}

// fetchTilePixel decodes the pixel at (lineCoord, colCoord) within the
// tile grid addressed by tileMapHigh (true selects 0x9C00, false
// 0x9800), honoring LCDC's addressing-mode bit.
func (p *PPU) fetchTilePixel(lineCoord, colCoord uint8, tileMapHigh bool) uint8 {
	tileRow := lineCoord / 8
	tileCol := colCoord / 8

	mapBase := uint16(0x9800)
	if tileMapHigh {
		mapBase = 0x9C00
	}
	entryAddr := mapBase + uint16(tileRow)*32 + uint16(tileCol)
	tileIndex := p.vram[entryAddr-vramBase]

	var tileAddr uint16
	if p.lcdc&lcdcAddrMode != 0 {
		tileAddr = 0x8000 + uint16(tileIndex)*16
	} else {
		tileAddr = uint16(int32(0x9000) + int32(int8(tileIndex))*16)
	}

	var data [16]byte
	copy(data[:], p.vram[tileAddr-vramBase:tileAddr-vramBase+16])
	tile := decodeTile(data, false, false)
	return tile[lineCoord%8][colCoord%8]
}

// spriteEntry is one 4-byte OAM record: Y, X, tile index, and the
// priority/flip/palette flags (§4.7).
type spriteEntry struct {
	y, x, tile, flags uint8
}

func readSpriteEntry(oam *[oamSize]byte, index int) spriteEntry {
	base := index * 4
	return spriteEntry{
		y:     oam[base],
		x:     oam[base+1],
		tile:  oam[base+2],
		flags: oam[base+3],
	}
}

// renderSprites scans OAM for entries intersecting the current line
// and draws up to 10, lowest OAM index first among ties, respecting
// the priority and palette-select flags (§4.7).
func (p *PPU) renderSprites(bgIndex [160]uint8, obp0, obp1 palette.Palette) {
	height := uint8(8)
	if p.lcdc&lcdcSpriteSize != 0 {
		height = 16
	}

	drawn := 0
	for i := 0; i < 40 && drawn < 10; i++ {
		sprite := readSpriteEntry(&p.oam, i)
		sy, sx, tileNum, flags := sprite.y, sprite.x, sprite.tile, sprite.flags

		screenY := int(sy) - 16
		if int(p.ly) < screenY || int(p.ly) >= screenY+int(height) {
			continue
		}
		drawn++

		row := p.ly - sy + 16
		if flags&(1<<6) != 0 {
			row = height - 1 - row
		}
		if height == 16 {
			tileNum &^= 1
		}
		tileAddr := 0x8000 + uint16(tileNum)*16 + uint16(row/8)*16

		var data [16]byte
		copy(data[:], p.vram[tileAddr-vramBase:tileAddr-vramBase+16])
		tile := decodeTile(data, false, flags&(1<<5) != 0)

		pal := obp0
		if flags&(1<<4) != 0 {
			pal = obp1
		}

		for col := uint8(0); col < 8; col++ {
			screenX := int(sx) - 8 + int(col)
			if screenX < 0 || screenX >= 160 {
				continue
			}
			pixel := tile[row%8][col]
			if pixel == 0 {
				continue // transparent
			}
			if flags&(1<<7) != 0 && bgIndex[screenX] != 0 {
				continue // behind non-zero background
			}
			p.frame[p.ly][screenX] = pal.Apply(pixel)
		}
	}
}
