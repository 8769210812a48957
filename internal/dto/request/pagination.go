package request

import "marketplace/pkg/utils"

type PaginatedRequest struct {
	Page    int `json:"page" validate:"min=1"`
	PerPage int `json:"per_page" validate:"min=1,max=100"`
}

// Window is the clamped page this request asks for.
func (p PaginatedRequest) Window() utils.Page {
	return utils.NewPage(p.Page, p.PerPage)
}
