package notifications

import (
	"context"

	"github.com/richxcame/ride-hailing-web/internal/graphql"
	"github.com/richxcame/ride-hailing-web/pkg/common"
)

// Executor runs GraphQL documents; *graphql.Client satisfies it
type Executor interface {
	Do(ctx context.Context, doc graphql.Document, variables map[string]interface{}, out interface{}) error
}

// Service reads and updates rider notifications through the GraphQL API
type Service struct {
	client Executor
}

// NewService creates a notifications service
func NewService(client Executor) *Service {
	return &Service{client: client}
}

// GetMyNotifications lists notifications matching filter; nil means all
func (s *Service) GetMyNotifications(ctx context.Context, filter *Filter) (*List, error) {
	var variables map[string]interface{}
	if filter != nil {
		variables = map[string]interface{}{"filter": filter}
	}

	var out struct {
		MyNotifications *List `json:"myNotifications"`
	}
	if err := s.client.Do(ctx, GetMyNotificationsQuery, variables, &out); err != nil {
		return nil, graphql.AppError(err, "failed to load notifications")
	}

	list := out.MyNotifications
	if list == nil {
		list = &List{}
	}
	if list.Notifications == nil {
		list.Notifications = []Notification{}
	}
	return list, nil
}

// MarkAsRead marks a single notification as read
func (s *Service) MarkAsRead(ctx context.Context, id string) (*ReadState, error) {
	var out struct {
		MarkNotificationAsRead *ReadState `json:"markNotificationAsRead"`
	}
	if err := s.client.Do(ctx, MarkNotificationAsReadMutation, map[string]interface{}{"id": id}, &out); err != nil {
		return nil, graphql.AppError(err, "failed to mark notification as read")
	}
	if out.MarkNotificationAsRead == nil {
		return nil, common.NewNotFoundError("notification not found", nil)
	}
	return out.MarkNotificationAsRead, nil
}

// MarkAllAsRead marks every notification of the caller as read
func (s *Service) MarkAllAsRead(ctx context.Context) (*MarkAllResult, error) {
	var out struct {
		MarkAllNotificationsAsRead MarkAllResult `json:"markAllNotificationsAsRead"`
	}
	if err := s.client.Do(ctx, MarkAllNotificationsAsReadMutation, nil, &out); err != nil {
		return nil, graphql.AppError(err, "failed to mark notifications as read")
	}
	return &out.MarkAllNotificationsAsRead, nil
}
