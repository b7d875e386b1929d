package dto

type CreateChatRequest struct {
	Name         string   `json:"name"`
	Participants []string `json:"participants" binding:"required"`
	Type         string   `json:"type"`
	// CreatedBy используется в режиме без токенов, когда личность
	// не приходит из middleware.
	CreatedBy string `json:"createdBy"`
}
