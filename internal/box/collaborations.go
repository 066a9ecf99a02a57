package box

import (
	"context"
	"net/http"
	"net/url"
)

// CreateCollaboration invites a user to collaborate on a file or folder.
func (conn *Connection) CreateCollaboration(ctx context.Context, params CollaborationParams, opts ...RequestOption) (*Collaboration, error) {
	if params.ItemType != "file" && params.ItemType != "folder" {
		return nil, &ValidationError{Field: "item type", Reason: `must be "file" or "folder"`}
	}
	if err := validateItemID("item id", params.ItemID); err != nil {
		return nil, err
	}
	if params.Login == "" && params.UserID == "" {
		return nil, &ValidationError{Field: "accessible_by", Reason: "either login or user id is required"}
	}
	if params.Role == "" {
		return nil, &ValidationError{Field: "role", Reason: "must not be empty"}
	}

	accessibleBy := map[string]string{"type": "user"}
	if params.Login != "" {
		accessibleBy["login"] = params.Login
	} else {
		accessibleBy["id"] = params.UserID
	}

	body := map[string]any{
		"item":          map[string]string{"type": params.ItemType, "id": params.ItemID},
		"accessible_by": accessibleBy,
		"role":          params.Role,
	}

	var collab Collaboration
	if err := conn.request(ctx, http.MethodPost, []string{"collaborations"}, nil, body, &collab, opts...); err != nil {
		return nil, err
	}
	return &collab, nil
}

// CollaborationInfo retrieves a collaboration by id.
func (conn *Connection) CollaborationInfo(ctx context.Context, collaborationID string, opts ...RequestOption) (*Collaboration, error) {
	if err := validateItemID("collaboration id", collaborationID); err != nil {
		return nil, err
	}
	var collab Collaboration
	if err := conn.request(ctx, http.MethodGet, []string{"collaborations", collaborationID}, nil, nil, &collab, opts...); err != nil {
		return nil, err
	}
	return &collab, nil
}

// UpdateCollaboration changes the role of a collaboration.
func (conn *Connection) UpdateCollaboration(ctx context.Context, collaborationID, role string, opts ...RequestOption) (*Collaboration, error) {
	if err := validateItemID("collaboration id", collaborationID); err != nil {
		return nil, err
	}
	if role == "" {
		return nil, &ValidationError{Field: "role", Reason: "must not be empty"}
	}
	body := map[string]string{"role": role}
	var collab Collaboration
	if err := conn.request(ctx, http.MethodPut, []string{"collaborations", collaborationID}, nil, body, &collab, opts...); err != nil {
		return nil, err
	}
	return &collab, nil
}

// DeleteCollaboration removes a collaboration.
func (conn *Connection) DeleteCollaboration(ctx context.Context, collaborationID string, opts ...RequestOption) error {
	if err := validateItemID("collaboration id", collaborationID); err != nil {
		return err
	}
	return conn.request(ctx, http.MethodDelete, []string{"collaborations", collaborationID}, nil, nil, nil, opts...)
}

// PendingCollaborations lists collaborations awaiting the current user's
// acceptance.
func (conn *Connection) PendingCollaborations(ctx context.Context, opts ...RequestOption) ([]Collaboration, error) {
	q := url.Values{}
	q.Set("status", "pending")

	var collection CollaborationCollection
	if err := conn.request(ctx, http.MethodGet, []string{"collaborations"}, q, nil, &collection, opts...); err != nil {
		return nil, err
	}
	return collection.Entries, nil
}
