package application

import "testing"

func TestPermit(t *testing.T) {
	tests := []struct {
		surface Surface
		role    Role
		want    bool
	}{
		{SurfaceCreate, RoleApplicant, true},
		{SurfaceCreate, RoleAdmin, false},
		{SurfaceCreate, RoleBot, false},

		{SurfaceManualStatusUpdate, RoleAdmin, true},
		{SurfaceManualStatusUpdate, RoleBot, false},
		{SurfaceManualStatusUpdate, RoleApplicant, false},

		{SurfaceStatusUpdate, RoleAdmin, true},
		{SurfaceStatusUpdate, RoleBot, true},
		{SurfaceStatusUpdate, RoleApplicant, false},

		{SurfaceBotPass, RoleBot, true},
		{SurfaceBotPass, RoleAdmin, false},

		{SurfaceListOwn, RoleApplicant, true},
		{SurfaceListAll, RoleAdmin, true},
		{SurfaceListAll, RoleApplicant, false},
		{SurfaceListNonTechnical, RoleAdmin, true},
		{SurfaceListTechnical, RoleBot, true},
		{SurfaceListTechnical, RoleAdmin, false},
		{SurfaceBotLogs, RoleBot, true},
		{SurfaceDashboard, RoleAdmin, true},
		{SurfaceDashboard, RoleBot, false},
		{SurfaceManageJobRoles, RoleAdmin, true},
		{SurfaceManageJobRoles, RoleApplicant, false},
	}

	for _, tt := range tests {
		if got := Permit(tt.surface, tt.role); got != tt.want {
			t.Errorf("Permit(%d, %s) = %v, want %v", tt.surface, tt.role, got, tt.want)
		}
	}
}

func TestPermit_UnknownRoleDeniedEverywhere(t *testing.T) {
	for s := SurfaceCreate; s <= SurfaceManageJobRoles; s++ {
		if Permit(s, Role(0)) || Permit(s, Role(42)) {
			t.Fatalf("surface %d permitted an unknown role", s)
		}
	}
}
