package box

import (
	"context"
	"net/http"
)

// TrashedItems lists the items currently in the trash.
func (conn *Connection) TrashedItems(ctx context.Context, options ItemOptions, opts ...RequestOption) (*ItemCollection, error) {
	var items ItemCollection
	if err := conn.request(ctx, http.MethodGet, []string{"folders", "trash", "items"}, options.query(), nil, &items, opts...); err != nil {
		return nil, err
	}
	return &items, nil
}

// TrashedFolder retrieves a folder that is in the trash.
func (conn *Connection) TrashedFolder(ctx context.Context, folderID string, opts ...RequestOption) (*Folder, error) {
	if err := validateItemID("folder id", folderID); err != nil {
		return nil, err
	}
	var folder Folder
	if err := conn.request(ctx, http.MethodGet, []string{"folders", folderID, "trash"}, nil, nil, &folder, opts...); err != nil {
		return nil, err
	}
	return &folder, nil
}

// DeleteTrashedFolder permanently deletes a folder from the trash.
func (conn *Connection) DeleteTrashedFolder(ctx context.Context, folderID string, opts ...RequestOption) error {
	if err := validateItemID("folder id", folderID); err != nil {
		return err
	}
	return conn.request(ctx, http.MethodDelete, []string{"folders", folderID, "trash"}, nil, nil, nil, opts...)
}

// RestoreTrashedFolder restores a folder from the trash. A new name or
// parent can be supplied for when the original location no longer exists;
// empty values keep the originals.
func (conn *Connection) RestoreTrashedFolder(ctx context.Context, folderID, name, parentID string, opts ...RequestOption) (*Folder, error) {
	if err := validateItemID("folder id", folderID); err != nil {
		return nil, err
	}
	body := map[string]any{}
	if name != "" {
		body["name"] = name
	}
	if parentID != "" {
		if err := validateItemID("parent folder id", parentID); err != nil {
			return nil, err
		}
		body["parent"] = map[string]string{"id": parentID}
	}
	var folder Folder
	if err := conn.request(ctx, http.MethodPost, []string{"folders", folderID}, nil, body, &folder, opts...); err != nil {
		return nil, err
	}
	return &folder, nil
}

// TrashedFile retrieves a file that is in the trash.
func (conn *Connection) TrashedFile(ctx context.Context, fileID string, opts ...RequestOption) (*File, error) {
	if err := validateItemID("file id", fileID); err != nil {
		return nil, err
	}
	var file File
	if err := conn.request(ctx, http.MethodGet, []string{"files", fileID, "trash"}, nil, nil, &file, opts...); err != nil {
		return nil, err
	}
	return &file, nil
}

// DeleteTrashedFile permanently deletes a file from the trash.
func (conn *Connection) DeleteTrashedFile(ctx context.Context, fileID string, opts ...RequestOption) error {
	if err := validateItemID("file id", fileID); err != nil {
		return err
	}
	return conn.request(ctx, http.MethodDelete, []string{"files", fileID, "trash"}, nil, nil, nil, opts...)
}

// RestoreTrashedFile restores a file from the trash.
func (conn *Connection) RestoreTrashedFile(ctx context.Context, fileID, name, parentID string, opts ...RequestOption) (*File, error) {
	if err := validateItemID("file id", fileID); err != nil {
		return nil, err
	}
	body := map[string]any{}
	if name != "" {
		body["name"] = name
	}
	if parentID != "" {
		if err := validateItemID("parent folder id", parentID); err != nil {
			return nil, err
		}
		body["parent"] = map[string]string{"id": parentID}
	}
	var file File
	if err := conn.request(ctx, http.MethodPost, []string{"files", fileID}, nil, body, &file, opts...); err != nil {
		return nil, err
	}
	return &file, nil
}
