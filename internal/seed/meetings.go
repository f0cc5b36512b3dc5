package seed

import (
	"fmt"
	"strings"

	"github.com/ahmetcoskunkizilkaya/discipulado/internal/models"
)

// PlanMeetings draws one to three encontros per discipleship, each dated
// up to 59 days before now.
func (s *Seeder) PlanMeetings(edges []models.Discipleship) []models.Meeting {
	now := s.now()
	var meetings []models.Meeting
	for _, e := range edges {
		n := s.gen.meetingCount()
		for j := 0; j < n; j++ {
			topic := s.gen.topic()
			meetings = append(meetings, models.Meeting{
				DiscipuladoID: e.ID,
				Date:          now.AddDate(0, 0, -s.gen.daysAgo()),
				Topic:         topic,
				Notes:         meetingNotes(topic),
			})
		}
	}
	return meetings
}

func meetingNotes(topic string) string {
	return fmt.Sprintf("Encontro de discipulado sobre %s. Estudamos a Palavra, conversamos sobre aplicações práticas e oramos juntos.",
		strings.ToLower(topic))
}

// SeedMeetings reads the persisted discipleships back and inserts all
// generated meetings in one insert.
func (s *Seeder) SeedMeetings() ([]models.Meeting, error) {
	edges, err := s.store.ListDiscipleships()
	if err != nil {
		return nil, fmt.Errorf("encontros: load discipleships: %w", err)
	}

	meetings := s.PlanMeetings(edges)
	if len(meetings) == 0 {
		s.log.Info("no meetings to create", "stage", "encontros")
		return nil, nil
	}
	if err := s.store.InsertMeetings(meetings); err != nil {
		return nil, fmt.Errorf("%w: encontros: %v", ErrBulkInsertFailed, err)
	}
	s.log.Info("meetings created", "stage", "encontros", "count", len(meetings), "discipleships", len(edges))
	return meetings, nil
}
