// Package wire holds the JSON request/response messages for every RPC
// named in spec.md §6. These stand in for generated protobuf messages —
// proto/*.proto documents the same shapes for reference, per SPEC_FULL.md
// §4.5's codec decision.
package wire

type CreateProjectRequest struct {
	Name string `json:"name"`
}

type CreateProjectResponse struct {
	Project ProjectMessage `json:"project"`
}

type GetProjectRequest struct {
	ID string `json:"id"`
}

type GetProjectResponse struct {
	Project ProjectMessage `json:"project"`
}

type GetUserProjectsRequest struct{}

type GetUserProjectsResponse struct {
	Projects []ProjectMessage `json:"projects"`
}

type AddUserToProjectRequest struct {
	ProjectID string   `json:"project_id"`
	UserID    string   `json:"user_id"`
	Rights    []string `json:"rights"`
}

type AddUserToProjectResponse struct{}

type DeleteProjectRequest struct {
	ID string `json:"id"`
}

type DeleteProjectResponse struct{}

type CreateAPITokenRequest struct {
	ProjectID string   `json:"project_id"`
	Rights    []string `json:"rights"`
}

type CreateAPITokenResponse struct {
	Token APITokenMessage `json:"token"`
}

type GetAPITokenRequest struct {
	ID string `json:"id"`
}

type GetAPITokenResponse struct {
	Token APITokenMessage `json:"token"`
}

type DeleteAPITokenRequest struct {
	ID string `json:"id"`
}

type DeleteAPITokenResponse struct{}

type ProjectMessage struct {
	ID        string              `json:"id"`
	Name      string              `json:"name"`
	Status    string              `json:"status"`
	Users     []ProjectUserMessage `json:"users"`
	CreatedAt string              `json:"created_at"`
	UpdatedAt string              `json:"updated_at"`
}

type ProjectUserMessage struct {
	UserID string   `json:"user_id"`
	Rights []string `json:"rights"`
}

type APITokenMessage struct {
	ID        string   `json:"id"`
	UserID    string   `json:"user_id"`
	ProjectID string   `json:"project_id"`
	Token     string   `json:"token"`
	Rights    []string `json:"rights"`
}
