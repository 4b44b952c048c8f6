package notifications

import "github.com/richxcame/ride-hailing-web/internal/graphql"

var (
	// GetMyNotificationsQuery lists the rider's notifications, optionally filtered
	GetMyNotificationsQuery = graphql.MustDocument(`query GetMyNotifications($filter: NotificationFilterInput) {
  myNotifications(filter: $filter) {
    totalCount
    unreadCount
    notifications {
      id
      title
      body
      type
      isRead
      createdAt
    }
  }
}`)

	// MarkNotificationAsReadMutation marks one notification as read
	MarkNotificationAsReadMutation = graphql.MustDocument(`mutation MarkNotificationAsRead($id: ID!) {
  markNotificationAsRead(id: $id) {
    id
    isRead
  }
}`)

	// MarkAllNotificationsAsReadMutation marks every notification of the rider as read
	MarkAllNotificationsAsReadMutation = graphql.MustDocument(`mutation MarkAllNotificationsAsRead {
  markAllNotificationsAsRead {
    success
    count
  }
}`)
)
