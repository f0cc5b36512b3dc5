package seed

import (
	"fmt"

	"github.com/ahmetcoskunkizilkaya/discipulado/internal/models"
)

// PlanDiscipleships gives leader i the members in [i*perLeader, (i+1)*perLeader).
// Leaders past the end of the member list get nobody, and members past
// len(leaders)*perLeader are left without a discipulador. That gap is
// accepted best-effort behavior, not something to fill in here.
func PlanDiscipleships(leaders, members []Account, perLeader int) []models.Discipleship {
	var edges []models.Discipleship
	for i, leader := range leaders {
		start := i * perLeader
		if start >= len(members) {
			break
		}
		end := min(start+perLeader, len(members))
		for _, m := range members[start:end] {
			edges = append(edges, models.Discipleship{
				DiscipuladorID: leader.ID,
				DiscipuloID:    m.ID,
			})
		}
	}
	return edges
}

// LinkDiscipleships persists the planned edges in one insert.
func (s *Seeder) LinkDiscipleships(leaders, members []Account) ([]models.Discipleship, error) {
	edges := PlanDiscipleships(leaders, members, s.profile.DisciplesPerLeader)
	if len(edges) == 0 {
		s.log.Info("no discipleships to create", "stage", "discipulados")
		return nil, nil
	}
	if err := s.store.InsertDiscipleships(edges); err != nil {
		return nil, fmt.Errorf("%w: discipulados: %v", ErrBulkInsertFailed, err)
	}
	s.log.Info("discipleships created", "stage", "discipulados", "count", len(edges))
	return edges, nil
}
