package model

type UserRole string

const (
	RoleAssociate UserRole = "associate"
	RoleManager   UserRole = "manager"
)

type User struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Role    UserRole `json:"role"`
	StoreID string   `json:"storeId"`
}

type NotificationType string

const (
	NotifyOrder    NotificationType = "order"
	NotifyPicklist NotificationType = "picklist"
	NotifySystem   NotificationType = "system"
)

type Notification struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Type      NotificationType `json:"type"`
	Read      bool             `json:"read"`
	CreatedAt string           `json:"createdAt"`
}
