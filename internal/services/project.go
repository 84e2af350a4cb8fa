package services

import (
	"context"
	"time"

	"github.com/scidatahub/vault/common"
	"github.com/scidatahub/vault/internal/domain/project"
	"github.com/scidatahub/vault/internal/domain/shared"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// CreateProject inserts a new Project owned (with full rights) by ownerUserID.
func (h *Handlers) CreateProject(ctx context.Context, name, ownerUserID string) (*project.Project, error) {
	now := time.Now().UTC()
	id := uuid.NewString()

	p := &project.Project{
		Common: shared.Common{
			ID:        id,
			Name:      name,
			Status:    shared.StatusAvailable,
			CreatedAt: now,
			UpdatedAt: now,
		},
		Users: []project.ProjectUser{
			{UserID: ownerUserID, Rights: shared.Rights{shared.RightRead, shared.RightWrite}},
		},
	}

	return h.Projects.Insert(ctx, id, p)
}

// GetProject returns the Project with the given id.
func (h *Handlers) GetProject(ctx context.Context, id string) (*project.Project, error) {
	return h.Projects.FindOne(ctx, bson.M{"id": id})
}

// GetUserProjects returns every Project on which userID has any Right.
func (h *Handlers) GetUserProjects(ctx context.Context, userID string) ([]*project.Project, error) {
	return h.Projects.FindMany(ctx, bson.M{"users.user_id": userID})
}

// AddUserToProject grants userID the given rights on a project, idempotently.
func (h *Handlers) AddUserToProject(ctx context.Context, projectID, userID string, rights shared.Rights) error {
	return h.Projects.AddUser(ctx, projectID, userID, rightsToStrings(rights))
}

func rightsToStrings(rights shared.Rights) []string {
	out := make([]string, len(rights))
	for i, r := range rights {
		out[i] = string(r)
	}

	return out
}

// DeleteProject marks the project Deleting, cascades to every child
// Dataset (which in turn cascades to its ObjectGroups and
// DatasetVersions), then removes the project document.
func (h *Handlers) DeleteProject(ctx context.Context, id string) error {
	if _, err := h.Projects.FindOne(ctx, bson.M{"id": id}); err != nil {
		return err
	}

	if err := h.Projects.SetStatus(ctx, id, shared.StatusDeleting); err != nil {
		return err
	}

	datasets, err := h.Datasets.FindByParent(ctx, id)
	if err != nil {
		return err
	}

	for _, ds := range datasets {
		if err := h.DeleteDataset(ctx, ds.ID); err != nil {
			return err
		}
	}

	return h.Projects.Delete(ctx, bson.M{"id": id})
}

// CreateAPIToken issues a new token scoped to projectID with the given rights.
func (h *Handlers) CreateAPIToken(ctx context.Context, userID, projectID string, rights shared.Rights) (*project.APIToken, error) {
	token, err := project.GenerateToken()
	if err != nil {
		return nil, common.ValidateInternalError(err, "APIToken")
	}

	id := uuid.NewString()

	t := &project.APIToken{
		ID:        id,
		UserID:    userID,
		ProjectID: projectID,
		Token:     token,
		Rights:    rights,
	}

	return h.APITokens.Insert(ctx, id, t)
}

// GetAPIToken returns the APIToken with the given id.
func (h *Handlers) GetAPIToken(ctx context.Context, id string) (*project.APIToken, error) {
	return h.APITokens.FindOne(ctx, bson.M{"id": id})
}

// DeleteAPIToken removes the APIToken with the given id.
func (h *Handlers) DeleteAPIToken(ctx context.Context, id string) error {
	return h.APITokens.Delete(ctx, bson.M{"id": id})
}

// LookupAPIToken resolves a token string to its owning user, project, and
// rights — the callback the identity.Authenticator uses for API-token auth.
func (h *Handlers) LookupAPIToken(ctx context.Context, token string) (userID, projectID string, rights shared.Rights, err error) {
	t, err := h.APITokens.FindOne(ctx, bson.M{"token": token})
	if err != nil {
		return "", "", nil, err
	}

	return t.UserID, t.ProjectID, t.Rights, nil
}
