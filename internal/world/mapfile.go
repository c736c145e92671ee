package world

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"io"
	"strings"

	"go.uber.org/multierr"
	"gopkg.in/src-d/go-billy.v4"
	"gopkg.in/src-d/go-billy.v4/util"
)

// ErrEmptyMap is returned when a map file holds no rows.
var ErrEmptyMap = errors.New("map has no rows")

// ErrNoSpawn is returned when a map has no '@' and no free floor to start on.
var ErrNoSpawn = errors.New("map has no spawn point")

// Glyphs for entities placed on floor tiles.
const (
	GlyphSpawn   = '@'
	GlyphBoulder = 'o'
	GlyphCrate   = '%'
)

// ParseMap reads a text map. Every problem in the file is reported, not just
// the first; the returned error can be split with multierr.Errors. Without an
// '@' the spawn falls back to the first free floor cell.
func ParseMap(r io.Reader) (*Map, error) {
	var rows []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		rows = append(rows, strings.TrimRight(sc.Text(), "\r"))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read map: %w", err)
	}
	for len(rows) > 0 && rows[len(rows)-1] == "" {
		rows = rows[:len(rows)-1]
	}
	if len(rows) == 0 {
		return nil, ErrEmptyMap
	}

	width := len([]rune(rows[0]))
	m := NewMap(width, len(rows))
	spawnSet := false
	var errs error
	for y, row := range rows {
		cells := []rune(row)
		if len(cells) != width {
			errs = multierr.Append(errs, fmt.Errorf("row %d: width %d, expected %d", y+1, len(cells), width))
			continue
		}
		for x, r := range cells {
			p := image.Pt(x, y)
			if t, ok := tileFromGlyph(r); ok {
				m.Set(p, t)
				continue
			}
			switch r {
			case GlyphSpawn:
				if spawnSet {
					errs = multierr.Append(errs, fmt.Errorf("row %d col %d: second spawn point", y+1, x+1))
				}
				spawnSet = true
				m.Spawn = p
			case GlyphBoulder, GlyphCrate:
				m.Placements = append(m.Placements, Placement{Kind: r, Pos: p})
			default:
				errs = multierr.Append(errs, fmt.Errorf("row %d col %d: unknown glyph %q", y+1, x+1, r))
				continue
			}
			m.Set(p, TileFloor)
		}
	}
	if errs != nil {
		return nil, errs
	}
	if !spawnSet {
		p, ok := m.firstOpenCell()
		if !ok {
			return nil, ErrNoSpawn
		}
		m.Spawn = p
	}
	return m, nil
}

// firstOpenCell returns the first floor cell in row-major order that no
// placement occupies.
func (m *Map) firstOpenCell() (image.Point, bool) {
	taken := make(map[image.Point]bool, len(m.Placements))
	for _, pl := range m.Placements {
		taken[pl.Pos] = true
	}
	for p, t := range m.All() {
		if t == TileFloor && !taken[p] {
			return p, true
		}
	}
	return image.Point{}, false
}

// Format renders the map including spawn and placements, so that ParseMap
// of the result yields an equal map.
func (m *Map) Format() string {
	cells := []rune(strings.ReplaceAll(m.String(), "\n", ""))
	put := func(p image.Point, r rune) {
		if m.InBounds(p) {
			cells[p.X+p.Y*m.Width] = r
		}
	}
	for _, pl := range m.Placements {
		put(pl.Pos, pl.Kind)
	}
	put(m.Spawn, GlyphSpawn)

	var b strings.Builder
	for y := 0; y < m.Height; y++ {
		b.WriteString(string(cells[y*m.Width : (y+1)*m.Width]))
		b.WriteByte('\n')
	}
	return b.String()
}

// LoadMap opens name on fs and parses it.
func LoadMap(fs billy.Filesystem, name string) (*Map, error) {
	f, err := fs.Open(name)
	if err != nil {
		return nil, fmt.Errorf("failed to open map %s: %w", name, err)
	}
	defer f.Close()

	m, err := ParseMap(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse map %s: %w", name, err)
	}
	return m, nil
}

// SaveMap writes m to name on fs in map-file form.
func SaveMap(fs billy.Filesystem, name string, m *Map) error {
	if err := util.WriteFile(fs, name, []byte(m.Format()), 0o644); err != nil {
		return fmt.Errorf("failed to write map %s: %w", name, err)
	}
	return nil
}
