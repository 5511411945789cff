package mockdice

import (
	"fmt"
	"sync"

	"github.com/KirkDiggler/ova-combat/internal/dice"
)

// ManualMockRoller implements dice.Roller with queued faces
type ManualMockRoller struct {
	mu    sync.Mutex
	faces []int
	index int
}

func NewManualMockRoller(faces ...int) *ManualMockRoller {
	return &ManualMockRoller{faces: faces}
}

// Queue appends faces to be returned by later rolls
func (m *ManualMockRoller) Queue(faces ...int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.faces = append(m.faces, faces...)
}

// Remaining reports how many queued faces are unused
func (m *ManualMockRoller) Remaining() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.faces) - m.index
}

func (m *ManualMockRoller) Faces(count int) ([]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.index+count > len(m.faces) {
		return nil, fmt.Errorf("no more predetermined faces available (need %d, have %d)", count, len(m.faces)-m.index)
	}

	out := make([]int, count)
	for i := range out {
		face := m.faces[m.index]
		if face < 1 || face > dice.MaxFace {
			return nil, fmt.Errorf("invalid face %d", face)
		}
		out[i] = face
		m.index++
	}
	return out, nil
}
