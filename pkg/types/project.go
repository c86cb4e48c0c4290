package types

// Project is a tenant-scoped project as reported by the API
type Project struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	TenantID   string `json:"tenantId,omitempty"`
	TenantName string `json:"tenantName,omitempty"`
}

// Task is an asynchronous API operation
type Task struct {
	ID         string `json:"id"`
	State      string `json:"state"`
	Operation  string `json:"operation"`
	EntityID   string `json:"entityId,omitempty"`
	EntityKind string `json:"entityKind,omitempty"`
}
