package entity

type Staff struct {
	ID                string                 `json:"id"`
	UserID            string                 `json:"user_id"`
	Position          string                 `json:"position"`
	ModulePermissions map[string]interface{} `json:"module_permissions"`
}
