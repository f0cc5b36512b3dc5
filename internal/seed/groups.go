package seed

import (
	"fmt"

	"github.com/ahmetcoskunkizilkaya/discipulado/internal/models"
)

// PlanGroups builds one group per location. Leaders and weekdays are handed
// out round-robin by location index.
func PlanGroups(locations []Location, leaders []Account) ([]models.Group, error) {
	if len(leaders) == 0 {
		return nil, ErrEmptyLeaderPool
	}
	groups := make([]models.Group, 0, len(locations))
	for i, loc := range locations {
		groups = append(groups, models.Group{
			Name:        loc.Name,
			Description: loc.Description,
			Address:     loc.Address,
			Weekday:     models.Weekdays[i%len(models.Weekdays)],
			LeaderID:    leaders[i%len(leaders)].ID,
		})
	}
	return groups, nil
}

// CreateGroups persists the planned groups in one insert.
func (s *Seeder) CreateGroups(locations []Location, leaders []Account) error {
	groups, err := PlanGroups(locations, leaders)
	if err != nil {
		return err
	}
	if len(groups) == 0 {
		return nil
	}
	if err := s.store.InsertGroups(groups); err != nil {
		return fmt.Errorf("%w: grupos: %v", ErrBulkInsertFailed, err)
	}
	s.log.Info("groups created", "stage", "groups", "count", len(groups))
	return nil
}

// AssignMembersToGroups reads the persisted groups back, since their IDs
// are only known after the insert, and puts member i in group i mod n.
// Each update stands alone; a failed one is logged and skipped.
func (s *Seeder) AssignMembersToGroups(members []Account) ([]models.Group, error) {
	groups, err := s.store.ListGroups()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoGroups, err)
	}
	if len(groups) == 0 {
		return nil, ErrNoGroups
	}

	assigned := 0
	for i, m := range members {
		g := groups[i%len(groups)]
		if err := s.store.AssignGroup(m.ID, g.ID); err != nil {
			s.log.Warn("group assignment failed", "stage", "groups", "user_id", m.ID.String(),
				"error", fmt.Errorf("%w: %v", ErrUpdateFailed, err))
			continue
		}
		assigned++
	}
	s.log.Info("members assigned to groups", "stage", "groups", "groups", len(groups), "assigned", assigned)
	return groups, nil
}
