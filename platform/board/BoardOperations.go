package board

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/DedS3t/monopoly-engine/app/models"
)

const (
	Size         = 40
	JailPosition = 10
)

//go:embed properties.json
var propertiesJSON []byte

var ErrNotFound = errors.New("not found")

type Board struct {
	spaces     [Size]models.Space
	properties map[int]models.Property
	groups     map[string][]int
}

type entry struct {
	models.Property
	Tax int `json:"tax"`
}

// Load parses the embedded board definition.
func Load() (*Board, error) {
	return Parse(propertiesJSON)
}

func Parse(data []byte) (*Board, error) {
	var entries []entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse board: %w", err)
	}
	if len(entries) != Size {
		return nil, fmt.Errorf("parse board: want %d spaces, got %d", Size, len(entries))
	}

	b := &Board{
		properties: make(map[int]models.Property),
		groups:     make(map[string][]int),
	}
	seen := make(map[int]bool, Size)
	for _, e := range entries {
		if e.Id < 0 || e.Id >= Size || seen[e.Id] {
			return nil, fmt.Errorf("parse board: bad position %d", e.Id)
		}
		seen[e.Id] = true
		b.spaces[e.Id] = models.Space{Position: e.Id, Name: e.Name, Kind: e.Kind, Tax: e.Tax}
		if !e.Kind.Buyable() {
			continue
		}
		if e.Kind == models.SpaceProperty && len(e.Rent) != 6 {
			return nil, fmt.Errorf("parse board: %s needs 6 rent levels", e.Name)
		}
		if e.Kind == models.SpaceRailroad && len(e.Rent) != 4 {
			return nil, fmt.Errorf("parse board: %s needs 4 rent levels", e.Name)
		}
		b.properties[e.Id] = e.Property
		b.groups[e.Group] = append(b.groups[e.Group], e.Id)
	}
	for _, ids := range b.groups {
		sort.Ints(ids)
	}
	return b, nil
}

// Default returns the standard board and panics if the embedded file is broken.
func Default() *Board {
	b, err := Load()
	if err != nil {
		panic(err)
	}
	return b
}

func (b *Board) SpaceAt(pos int) models.Space {
	return b.spaces[((pos%Size)+Size)%Size]
}

func (b *Board) GetById(id int) (models.Property, error) {
	p, ok := b.properties[id]
	if !ok {
		return models.Property{}, ErrNotFound
	}
	return p, nil
}

// Group returns the sorted property ids sharing a group.
func (b *Board) Group(group string) []int {
	return b.groups[group]
}

// Properties returns every buyable definition in board order.
func (b *Board) Properties() []models.Property {
	out := make([]models.Property, 0, len(b.properties))
	for i := 0; i < Size; i++ {
		if p, ok := b.properties[i]; ok {
			out = append(out, p)
		}
	}
	return out
}
