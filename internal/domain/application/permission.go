package application

// Surface names one mutation or query entry point that is gated by role.
type Surface uint8

const (
	SurfaceCreate Surface = iota + 1
	SurfaceManualStatusUpdate
	SurfaceStatusUpdate
	SurfaceBotPass
	SurfaceListOwn
	SurfaceListAll
	SurfaceListNonTechnical
	SurfaceListTechnical
	SurfaceBotLogs
	SurfaceView
	SurfaceDashboard
	SurfaceManageJobRoles
)

// Permit reports whether role may use surface. Every role is matched
// explicitly; an unknown role falls through to a denial.
func Permit(surface Surface, role Role) bool {
	switch role {
	case RoleApplicant:
		switch surface {
		case SurfaceCreate, SurfaceListOwn, SurfaceView:
			return true
		default:
			return false
		}
	case RoleAdmin:
		switch surface {
		case SurfaceManualStatusUpdate, SurfaceStatusUpdate, SurfaceListAll,
			SurfaceListNonTechnical, SurfaceView, SurfaceDashboard, SurfaceManageJobRoles:
			return true
		default:
			return false
		}
	case RoleBot:
		switch surface {
		case SurfaceStatusUpdate, SurfaceBotPass, SurfaceListTechnical, SurfaceBotLogs, SurfaceView:
			return true
		default:
			return false
		}
	default:
		return false
	}
}
