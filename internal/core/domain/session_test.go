package domain

import "testing"

func TestPendingFromSession_NamePrecedence(t *testing.T) {
	tests := []struct {
		name    string
		session Session
		want    string
	}{
		{"full name wins", Session{FullName: "Jane Doe", Name: "jane", Email: "jd@example.com"}, "Jane Doe"},
		{"short name next", Session{Name: "jane", Email: "jd@example.com"}, "jane"},
		{"email local part next", Session{Email: "jd@example.com"}, "jd"},
		{"literal User last", Session{}, "User"},
		{"whitespace full name skipped", Session{FullName: "   ", Name: "jane"}, "jane"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PendingFromSession(tt.session)
			if got.DisplayName != tt.want {
				t.Fatalf("display name = %q, want %q", got.DisplayName, tt.want)
			}
		})
	}
}

func TestPendingFromSession_AvatarPrecedence(t *testing.T) {
	s := Session{AvatarURL: "https://a.example/x.png", PictureURL: "https://p.example/y.png"}
	if got := PendingFromSession(s).AvatarURL; got != "https://a.example/x.png" {
		t.Fatalf("avatar = %q, want provider avatar", got)
	}

	s = Session{PictureURL: "https://p.example/y.png"}
	if got := PendingFromSession(s).AvatarURL; got != "https://p.example/y.png" {
		t.Fatalf("avatar = %q, want picture fallback", got)
	}

	if got := PendingFromSession(Session{}).AvatarURL; got != "" {
		t.Fatalf("avatar = %q, want absent", got)
	}
}

func TestResolutionPhase_Transitions(t *testing.T) {
	if !PhaseUnresolved.CanTransitionTo(PhaseUnauthenticated) {
		t.Fatalf("unresolved -> unauthenticated should be valid")
	}
	if !PhaseNeedsProfile.CanTransitionTo(PhaseResolved) {
		t.Fatalf("needs_profile -> resolved should be valid")
	}
	if !PhaseNeedsProfile.CanTransitionTo(PhaseNeedsProfile) {
		t.Fatalf("needs_profile must be able to stay put on setup failure")
	}
	// Resolved only leaves via a full sign-out/sign-in cycle.
	if PhaseResolved.CanTransitionTo(PhaseNeedsProfile) {
		t.Fatalf("resolved -> needs_profile must be invalid")
	}
	if !PhaseResolved.CanTransitionTo(PhaseUnauthenticated) {
		t.Fatalf("resolved -> unauthenticated (sign-out) should be valid")
	}
}

func TestValidRole(t *testing.T) {
	if !ValidRole(RoleOwner) || !ValidRole(RoleCustomer) {
		t.Fatalf("owner and customer must be valid roles")
	}
	if ValidRole("admin") || ValidRole("") {
		t.Fatalf("unknown roles must be rejected")
	}
}
