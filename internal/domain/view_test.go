package domain_test

import (
	"testing"

	"github.com/msomdec/employee-pass/internal/domain"
)

func TestNextView(t *testing.T) {
	tests := []struct {
		name string
		from domain.View
		ev   domain.ViewEvent
		auth bool
		want domain.View
	}{
		{"register shows pass", domain.ViewRegistration, domain.EventRegistered, false, domain.ViewPassDisplay},
		{"register new returns to form", domain.ViewPassDisplay, domain.EventRegisterNew, false, domain.ViewRegistration},
		{"admin nav unauthenticated", domain.ViewPassDisplay, domain.EventAdminNav, false, domain.ViewAdminLogin},
		{"admin nav authenticated", domain.ViewRegistration, domain.EventAdminNav, true, domain.ViewAdminDashboard},
		{"login succeeds", domain.ViewAdminLogin, domain.EventLoginSucceeded, true, domain.ViewAdminDashboard},
		{"login fails", domain.ViewAdminLogin, domain.EventLoginFailed, false, domain.ViewAdminLogin},
		{"logout", domain.ViewAdminDashboard, domain.EventLogout, false, domain.ViewRegistration},
		{"employee nav from dashboard", domain.ViewAdminDashboard, domain.EventEmployeeNav, true, domain.ViewRegistration},
		{"registered ignored outside form", domain.ViewAdminLogin, domain.EventRegistered, false, domain.ViewAdminLogin},
		{"logout ignored outside dashboard", domain.ViewPassDisplay, domain.EventLogout, false, domain.ViewPassDisplay},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := domain.NextView(tc.from, tc.ev, tc.auth); got != tc.want {
				t.Fatalf("NextView(%s, %s, %v) = %s, want %s", tc.from, tc.ev, tc.auth, got, tc.want)
			}
		})
	}
}

func TestResolve_DashboardRequiresFlag(t *testing.T) {
	if got := domain.Resolve(domain.ViewAdminDashboard, false); got != domain.ViewAdminLogin {
		t.Fatalf("expected adminLogin, got %s", got)
	}
	if got := domain.Resolve(domain.ViewAdminDashboard, true); got != domain.ViewAdminDashboard {
		t.Fatalf("expected adminDashboard, got %s", got)
	}
	if domain.InitialView != domain.ViewRegistration {
		t.Fatalf("expected initial view registration, got %s", domain.InitialView)
	}
}
