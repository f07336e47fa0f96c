package session

import (
	"testing"

	"github.com/me/invdash/pkg/model"
)

func TestState_StartsBootstrapping(t *testing.T) {
	st := NewState()

	sess := st.Snapshot()
	if sess.Status != model.StatusBootstrapping {
		t.Errorf("expected bootstrapping status, got %q", sess.Status)
	}
	if sess.User != nil {
		t.Errorf("expected nil user, got %+v", sess.User)
	}
}

func TestState_Transitions(t *testing.T) {
	st := NewState()
	user := &model.User{ID: 1, Username: "alice", Email: "a@b.com", Role: "staff"}

	st.SetAuthenticated(user)
	sess := st.Snapshot()
	if sess.Status != model.StatusAuthenticated {
		t.Errorf("expected authenticated, got %q", sess.Status)
	}
	if sess.User == nil || sess.User.ID != 1 {
		t.Errorf("unexpected user: %+v", sess.User)
	}

	st.SetUnauthenticated()
	sess = st.Snapshot()
	if sess.Status != model.StatusUnauthenticated {
		t.Errorf("expected unauthenticated, got %q", sess.Status)
	}
	if sess.User != nil {
		t.Errorf("expected nil user after logout, got %+v", sess.User)
	}
}

func TestState_StatusUserInvariant(t *testing.T) {
	st := NewState()
	st.SetAuthenticated(&model.User{ID: 2, Username: "bob", Role: "admin"})
	st.SetUnauthenticated()
	st.SetAuthenticated(&model.User{ID: 3, Username: "carol", Role: "staff"})

	sess := st.Snapshot()
	if (sess.Status == model.StatusAuthenticated) != (sess.User != nil) {
		t.Errorf("invariant violated: status=%q user=%v", sess.Status, sess.User)
	}
}

func TestState_Subscribe(t *testing.T) {
	st := NewState()

	var got []model.Status
	cancel := st.Subscribe(func(sess model.Session) {
		got = append(got, sess.Status)
	})

	st.SetAuthenticated(&model.User{ID: 1, Username: "alice", Role: "staff"})
	st.SetUnauthenticated()

	if len(got) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(got))
	}
	if got[0] != model.StatusAuthenticated || got[1] != model.StatusUnauthenticated {
		t.Errorf("unexpected notification order: %v", got)
	}

	cancel()
	st.SetAuthenticated(&model.User{ID: 1, Username: "alice", Role: "staff"})
	if len(got) != 2 {
		t.Errorf("expected no notifications after cancel, got %d", len(got))
	}
}

func TestCapabilities(t *testing.T) {
	tests := []struct {
		name            string
		sess            model.Session
		wantManageUsers bool
		wantRecordSales bool
	}{
		{
			name:            "admin",
			sess:            model.Session{Status: model.StatusAuthenticated, User: &model.User{Role: "admin"}},
			wantManageUsers: true,
			wantRecordSales: true,
		},
		{
			name:            "staff",
			sess:            model.Session{Status: model.StatusAuthenticated, User: &model.User{Role: "staff"}},
			wantManageUsers: false,
			wantRecordSales: true,
		},
		{
			name: "unauthenticated",
			sess: model.Session{Status: model.StatusUnauthenticated},
		},
		{
			name: "bootstrapping",
			sess: model.Session{Status: model.StatusBootstrapping},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanManageUsers(tt.sess); got != tt.wantManageUsers {
				t.Errorf("CanManageUsers() = %v, want %v", got, tt.wantManageUsers)
			}
			if got := CanRecordSales(tt.sess); got != tt.wantRecordSales {
				t.Errorf("CanRecordSales() = %v, want %v", got, tt.wantRecordSales)
			}
		})
	}
}
