package box

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// FolderInfo retrieves a folder by id. Folder id "0" is the root folder.
func (conn *Connection) FolderInfo(ctx context.Context, folderID string, opts ...RequestOption) (*Folder, error) {
	if err := validateItemID("folder id", folderID); err != nil {
		return nil, err
	}
	var folder Folder
	if err := conn.request(ctx, http.MethodGet, []string{"folders", folderID}, nil, nil, &folder, opts...); err != nil {
		return nil, err
	}
	return &folder, nil
}

// FolderItems lists the items inside a folder.
func (conn *Connection) FolderItems(ctx context.Context, folderID string, options ItemOptions, opts ...RequestOption) (*ItemCollection, error) {
	if err := validateItemID("folder id", folderID); err != nil {
		return nil, err
	}
	var items ItemCollection
	if err := conn.request(ctx, http.MethodGet, []string{"folders", folderID, "items"}, options.query(), nil, &items, opts...); err != nil {
		return nil, err
	}
	return &items, nil
}

// CreateFolder creates a folder under the given parent.
func (conn *Connection) CreateFolder(ctx context.Context, name, parentID string, opts ...RequestOption) (*Folder, error) {
	if name == "" {
		return nil, &ValidationError{Field: "folder name", Reason: "must not be empty"}
	}
	if err := validateItemID("parent folder id", parentID); err != nil {
		return nil, err
	}
	body := map[string]any{
		"name":   name,
		"parent": map[string]string{"id": parentID},
	}
	var folder Folder
	if err := conn.request(ctx, http.MethodPost, []string{"folders"}, nil, body, &folder, opts...); err != nil {
		return nil, err
	}
	return &folder, nil
}

// UpdateFolder changes folder attributes.
func (conn *Connection) UpdateFolder(ctx context.Context, folderID string, update FolderUpdate, opts ...RequestOption) (*Folder, error) {
	if err := validateItemID("folder id", folderID); err != nil {
		return nil, err
	}
	var folder Folder
	if err := conn.request(ctx, http.MethodPut, []string{"folders", folderID}, nil, update, &folder, opts...); err != nil {
		return nil, err
	}
	return &folder, nil
}

// DeleteFolder moves a folder to the trash. Deleting a non-empty folder
// requires options.Recursive.
func (conn *Connection) DeleteFolder(ctx context.Context, folderID string, options DeleteOptions, opts ...RequestOption) error {
	if err := validateItemID("folder id", folderID); err != nil {
		return err
	}
	q := url.Values{}
	if options.Recursive {
		q.Set("recursive", strconv.FormatBool(options.Recursive))
	}
	if options.Etag != "" {
		opts = append(opts, WithHeader("If-Match", options.Etag))
	}
	return conn.request(ctx, http.MethodDelete, []string{"folders", folderID}, q, nil, nil, opts...)
}

// CopyFolder copies a folder into another parent, optionally renaming it.
func (conn *Connection) CopyFolder(ctx context.Context, folderID, parentID, name string, opts ...RequestOption) (*Folder, error) {
	if err := validateItemID("folder id", folderID); err != nil {
		return nil, err
	}
	if err := validateItemID("parent folder id", parentID); err != nil {
		return nil, err
	}
	body := map[string]any{
		"parent": map[string]string{"id": parentID},
	}
	if name != "" {
		body["name"] = name
	}
	var folder Folder
	if err := conn.request(ctx, http.MethodPost, []string{"folders", folderID, "copy"}, nil, body, &folder, opts...); err != nil {
		return nil, err
	}
	return &folder, nil
}

// FolderSharedLink creates or updates the shared link on a folder.
func (conn *Connection) FolderSharedLink(ctx context.Context, folderID string, options SharedLinkOptions, opts ...RequestOption) (*Folder, error) {
	if err := validateItemID("folder id", folderID); err != nil {
		return nil, err
	}
	var folder Folder
	if err := conn.request(ctx, http.MethodPut, []string{"folders", folderID}, nil, options.body(), &folder, opts...); err != nil {
		return nil, err
	}
	return &folder, nil
}

// FolderCollaborations lists the collaborations on a folder.
func (conn *Connection) FolderCollaborations(ctx context.Context, folderID string, opts ...RequestOption) ([]Collaboration, error) {
	if err := validateItemID("folder id", folderID); err != nil {
		return nil, err
	}
	var collection CollaborationCollection
	if err := conn.request(ctx, http.MethodGet, []string{"folders", folderID, "collaborations"}, nil, nil, &collection, opts...); err != nil {
		return nil, err
	}
	return collection.Entries, nil
}
