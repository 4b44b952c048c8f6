package notifications

import "time"

// Notification is one rider notification
type Notification struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Type      string    `json:"type"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

// List is a page of notifications with counters
type List struct {
	TotalCount    int            `json:"totalCount"`
	UnreadCount   int            `json:"unreadCount"`
	Notifications []Notification `json:"notifications"`
}

// Filter is the NotificationFilterInput of GetMyNotifications
type Filter struct {
	IsRead *bool  `json:"isRead,omitempty"`
	Type   string `json:"type,omitempty"`
	Limit  int    `json:"limit,omitempty"`
	Offset int    `json:"offset,omitempty"`
}

// ReadState is the result of MarkNotificationAsRead
type ReadState struct {
	ID     string `json:"id"`
	IsRead bool   `json:"isRead"`
}

// MarkAllResult is the result of MarkAllNotificationsAsRead
type MarkAllResult struct {
	Success bool `json:"success"`
	Count   int  `json:"count"`
}

// ListRequest is the query string of GET /notifications
type ListRequest struct {
	IsRead *bool  `form:"is_read"`
	Type   string `form:"type"`
	Limit  int    `form:"limit" validate:"omitempty,min=1,max=100"`
	Offset int    `form:"offset" validate:"omitempty,min=0"`
}

// Filter converts the query string into the API filter. An empty request
// means no filter at all.
func (r ListRequest) Filter() *Filter {
	if r.IsRead == nil && r.Type == "" && r.Limit == 0 && r.Offset == 0 {
		return nil
	}
	return &Filter{IsRead: r.IsRead, Type: r.Type, Limit: r.Limit, Offset: r.Offset}
}
