package seed

import (
	"errors"

	"github.com/ahmetcoskunkizilkaya/discipulado/internal/models"
	"github.com/google/uuid"
)

// memStore is an in-memory Store with switchable failures.
type memStore struct {
	identities map[string]uuid.UUID
	profiles   map[uuid.UUID]models.User
	groups     []models.Group
	edges      []models.Discipleship
	meetings   []models.Meeting

	identityAttempts []string
	assignCalls      int
	edgeInserts      int
	meetingInserts   int

	failIdentity map[string]bool
	failProfile  map[string]bool
	failAssign   map[uuid.UUID]bool
	failGroups   bool
	failEdges     bool
	failListEdges bool
	failMeetings  bool
}

func newMemStore() *memStore {
	return &memStore{
		identities:   map[string]uuid.UUID{},
		profiles:     map[uuid.UUID]models.User{},
		failIdentity: map[string]bool{},
		failProfile:  map[string]bool{},
		failAssign:   map[uuid.UUID]bool{},
	}
}

var errInjected = errors.New("injected failure")

func (m *memStore) CreateIdentity(email, _ string, _ map[string]any) (uuid.UUID, error) {
	m.identityAttempts = append(m.identityAttempts, email)
	if m.failIdentity[email] {
		return uuid.Nil, errInjected
	}
	if _, ok := m.identities[email]; ok {
		return uuid.Nil, errors.New("email already registered")
	}
	id := uuid.New()
	m.identities[email] = id
	return id, nil
}

func (m *memStore) InsertProfile(u *models.User) error {
	if m.failProfile[u.Email] {
		return errInjected
	}
	m.profiles[u.ID] = *u
	return nil
}

func (m *memStore) InsertGroups(groups []models.Group) error {
	if m.failGroups {
		return errInjected
	}
	for _, g := range groups {
		g.ID = uuid.New()
		m.groups = append(m.groups, g)
	}
	return nil
}

func (m *memStore) ListGroups() ([]models.Group, error) {
	return append([]models.Group(nil), m.groups...), nil
}

func (m *memStore) AssignGroup(userID, groupID uuid.UUID) error {
	m.assignCalls++
	if m.failAssign[userID] {
		return errInjected
	}
	p := m.profiles[userID]
	gid := groupID
	p.GrupoID = &gid
	m.profiles[userID] = p
	return nil
}

func (m *memStore) InsertDiscipleships(edges []models.Discipleship) error {
	m.edgeInserts++
	if m.failEdges {
		return errInjected
	}
	for _, e := range edges {
		e.ID = uuid.New()
		m.edges = append(m.edges, e)
	}
	return nil
}

func (m *memStore) ListDiscipleships() ([]models.Discipleship, error) {
	if m.failListEdges {
		return nil, errInjected
	}
	return append([]models.Discipleship(nil), m.edges...), nil
}

func (m *memStore) InsertMeetings(meetings []models.Meeting) error {
	m.meetingInserts++
	if m.failMeetings {
		return errInjected
	}
	m.meetings = append(m.meetings, meetings...)
	return nil
}
