package dto

import "ats/internal/usecase"

type StatusCountResponse struct {
	ID    string `json:"_id"`
	Count int    `json:"count"`
}

type DashboardStatsResponse struct {
	TotalApplications        int                         `json:"totalApplications"`
	TechnicalApplications    int                         `json:"technicalApplications"`
	NonTechnicalApplications int                         `json:"nonTechnicalApplications"`
	StatusCounts             []StatusCountResponse       `json:"statusCounts"`
	RecentApplications       []usecase.RecentApplication `json:"recentApplications"`
}

func NewDashboardStatsResponse(s usecase.DashboardStats) DashboardStatsResponse {
	out := DashboardStatsResponse{
		TotalApplications:        s.TotalApplications,
		TechnicalApplications:    s.TechnicalApplications,
		NonTechnicalApplications: s.NonTechnicalApplications,
		StatusCounts:             make([]StatusCountResponse, 0, len(s.StatusCounts)),
		RecentApplications:       s.RecentApplications,
	}
	if out.RecentApplications == nil {
		out.RecentApplications = []usecase.RecentApplication{}
	}
	for _, c := range s.StatusCounts {
		out.StatusCounts = append(out.StatusCounts, StatusCountResponse{ID: c.Status.String(), Count: c.Count})
	}
	return out
}
