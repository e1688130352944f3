package models

import "testing"

// ---------------------------------------------------------------------------
// Status state machine
// ---------------------------------------------------------------------------

func TestStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from, to Status
		want     bool
	}{
		{StatusPending, StatusApproved, true},
		{StatusPending, StatusRejected, true},
		{StatusPending, StatusPending, false},
		{StatusApproved, StatusRejected, false},
		{StatusApproved, StatusPending, false},
		{StatusRejected, StatusApproved, false},
		{StatusRejected, StatusPending, false},
		{Status("unknown"), StatusApproved, false},
	}
	for _, tt := range tests {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.want {
			t.Errorf("%s.CanTransitionTo(%s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestStatus_Valid(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusApproved, StatusRejected} {
		if !s.Valid() {
			t.Errorf("%q.Valid() = false, want true", s)
		}
	}
	if Status("open").Valid() {
		t.Error(`Status("open").Valid() = true, want false`)
	}
}

// ---------------------------------------------------------------------------
// Actor role checks
// ---------------------------------------------------------------------------

func TestActor_RoleChecks(t *testing.T) {
	var nilActor *Actor
	if nilActor.IsAdmin() || nilActor.IsOrganization() {
		t.Error("nil actor must be neither admin nor organization")
	}

	admin := &Actor{Email: "root@example.org", Role: RoleAdmin}
	if !admin.IsAdmin() || admin.IsOrganization() {
		t.Errorf("admin role checks wrong: admin=%v org=%v", admin.IsAdmin(), admin.IsOrganization())
	}

	ngo := &Actor{Email: "help@ngo.org", Role: RoleNGO}
	if ngo.IsAdmin() || !ngo.IsOrganization() {
		t.Errorf("ngo role checks wrong: admin=%v org=%v", ngo.IsAdmin(), ngo.IsOrganization())
	}
}

func TestMessage_Involves(t *testing.T) {
	m := Message{From: "a@x.org", To: "b@x.org"}
	if !m.Involves("a@x.org", "b@x.org") || !m.Involves("b@x.org", "a@x.org") {
		t.Error("Involves should match both directions")
	}
	if m.Involves("a@x.org", "c@x.org") {
		t.Error("Involves matched an unrelated peer")
	}
}
