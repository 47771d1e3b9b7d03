package services

import (
	"testing"

	"github.com/latestcomment/livepoll/internal/models"
)

func TestRegistryCreateAndGet(t *testing.T) {
	r := NewSessionRegistry()
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		s := r.Create()
		if len(s.Id) != sessionIdLen {
			t.Fatalf("Expected %d-char id, got %q", sessionIdLen, s.Id)
		}
		if seen[s.Id] {
			t.Fatalf("Duplicate session id %q", s.Id)
		}
		seen[s.Id] = true
		if r.Get(s.Id) != s {
			t.Fatalf("Get(%q) did not return the created session", s.Id)
		}
	}
	if r.Get("") != nil || r.Get("missing") != nil {
		t.Error("Expected nil for unknown ids")
	}
	if r.Len() != 200 {
		t.Errorf("Expected 200 sessions, got %d", r.Len())
	}
}

func TestRegistryPresenterPointers(t *testing.T) {
	r := NewSessionRegistry()
	a, b, c := r.Create(), r.Create(), r.Create()

	if r.Active() != nil || r.MostRecentlyPresented() != nil {
		t.Fatal("Expected no presented sessions yet")
	}

	r.BindPresenter(a)
	r.BindPresenter(b)
	r.BindPresenter(c)
	r.BindPresenter(a)
	if r.Active() != a || r.MostRecentlyPresented() != a {
		t.Fatal("Expected rebinding to move a to the front")
	}

	r.UnbindPresenter(a)
	if r.Active() != nil {
		t.Error("Expected active pointer cleared with its presenter")
	}
	if r.MostRecentlyPresented() != c {
		t.Errorf("Expected c as most recent, got %v", r.MostRecentlyPresented())
	}

	r.UnbindPresenter(b)
	if r.MostRecentlyPresented() != c {
		t.Error("Unbinding an older session must not move the pointer")
	}
	r.UnbindPresenter(c)
	if r.MostRecentlyPresented() != nil {
		t.Error("Expected no presented sessions left")
	}
}

func TestRegistryFindByParticipant(t *testing.T) {
	r := NewSessionRegistry()
	a, b := r.Create(), r.Create()
	b.Roster.Put(models.Participant{ConnectionId: "p1", DisplayName: "P1"})

	if r.FindByParticipant("p1") != b {
		t.Error("Expected lookup by roster membership")
	}
	if r.FindByParticipant("p2") != nil {
		t.Error("Expected nil for unknown participant")
	}

	var ids []string
	r.Each(func(s *models.Session) { ids = append(ids, s.Id) })
	if len(ids) != 2 || ids[0] != a.Id || ids[1] != b.Id {
		t.Errorf("Expected creation order, got %v", ids)
	}
}
