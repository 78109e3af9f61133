package models

import (
	"testing"
	"time"
)

func TestUpdateStatus(t *testing.T) {
	tests := []struct {
		name       string
		status     string
		want       bool
		wantStatus string
	}{
		{"close", StatusClosed, true, StatusClosed},
		{"reopen", StatusActive, true, StatusActive},
		{"unknown value rejected", "archived", false, StatusActive},
		{"empty rejected", "", false, StatusActive},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewProject("p1", "Trip", "")
			if tt.wantStatus == StatusActive && tt.status == StatusActive {
				p.Status = StatusClosed // exercise the transition back
			}
			if got := p.UpdateStatus(tt.status); got != tt.want {
				t.Errorf("UpdateStatus(%q) = %v, want %v", tt.status, got, tt.want)
			}
			if p.Status != tt.wantStatus {
				t.Errorf("Status = %q, want %q", p.Status, tt.wantStatus)
			}
		})
	}
}

func TestIsEditable(t *testing.T) {
	p := NewProject("p1", "Trip", "")
	if !p.IsEditable() {
		t.Error("new project should be editable")
	}
	p.UpdateStatus(StatusClosed)
	if p.IsEditable() {
		t.Error("closed project should not be editable")
	}
}

func TestAddCategory(t *testing.T) {
	p := NewProject("p1", "Trip", "")
	seeded := len(p.Categories)

	if !p.AddCategory("Gifts") {
		t.Error("adding a new category should succeed")
	}
	if p.AddCategory("Gifts") {
		t.Error("adding a duplicate category should be a no-op")
	}
	if p.AddCategory("") {
		t.Error("adding an empty category should be a no-op")
	}
	if len(p.Categories) != seeded+1 {
		t.Errorf("category count = %d, want %d", len(p.Categories), seeded+1)
	}
}

func TestHasMemberName(t *testing.T) {
	p := NewProject("p1", "Trip", "")
	p.AddMember(Member{ID: "m1", Name: "Alice"})

	if !p.HasMemberName("alice", "") {
		t.Error("name check should be case-insensitive")
	}
	if p.HasMemberName("Alice", "m1") {
		t.Error("a member's own name should not count as a duplicate")
	}
	if p.HasMemberName("Bob", "") {
		t.Error("unused name should not be reported as taken")
	}
}

func TestRemoveMemberAndIsPayer(t *testing.T) {
	p := NewProject("p1", "Trip", "")
	p.AddMember(Member{ID: "m1", Name: "Alice"})
	p.AddMember(Member{ID: "m2", Name: "Bob"})
	p.AddTransaction(Transaction{ID: "t1", PayerID: "m1", Participants: []string{"m1", "m2"}})

	if !p.IsPayer("m1") {
		t.Error("m1 is payer on t1")
	}
	if p.IsPayer("m2") {
		t.Error("m2 is not a payer")
	}
	if !p.RemoveMember("m2") {
		t.Error("removing existing member should succeed")
	}
	if p.RemoveMember("m2") {
		t.Error("removing twice should fail")
	}
}

func TestMutationsTouchTimestamp(t *testing.T) {
	p := NewProject("p1", "Trip", "")
	before := p.LastUpdated
	time.Sleep(time.Millisecond)

	p.AddMember(Member{ID: "m1", Name: "Alice"})

	if !p.LastUpdated.After(before) {
		t.Error("AddMember should refresh LastUpdated")
	}
}
