package user

// MeResponse describes the signed-in identity and what it may do
type MeResponse struct {
	Identity
	CanManageProjects bool `json:"can_manage_projects"`
	CanManageFinance  bool `json:"can_manage_finance"`
}

func ToMeResponse(identity Identity) MeResponse {
	return MeResponse{
		Identity:          identity,
		CanManageProjects: identity.CanManageProjects(),
		CanManageFinance:  identity.CanManageFinance(),
	}
}
