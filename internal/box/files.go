package box

import (
	"context"
	"net/http"
)

// FileInfo retrieves a file's metadata by id.
func (conn *Connection) FileInfo(ctx context.Context, fileID string, opts ...RequestOption) (*File, error) {
	if err := validateItemID("file id", fileID); err != nil {
		return nil, err
	}
	var file File
	if err := conn.request(ctx, http.MethodGet, []string{"files", fileID}, nil, nil, &file, opts...); err != nil {
		return nil, err
	}
	return &file, nil
}

// UpdateFile changes file attributes.
func (conn *Connection) UpdateFile(ctx context.Context, fileID string, update FileUpdate, opts ...RequestOption) (*File, error) {
	if err := validateItemID("file id", fileID); err != nil {
		return nil, err
	}
	var file File
	if err := conn.request(ctx, http.MethodPut, []string{"files", fileID}, nil, update, &file, opts...); err != nil {
		return nil, err
	}
	return &file, nil
}

// DeleteFile moves a file to the trash. A non-empty etag is sent as
// If-Match so deletion fails on a stale view.
func (conn *Connection) DeleteFile(ctx context.Context, fileID, etag string, opts ...RequestOption) error {
	if err := validateItemID("file id", fileID); err != nil {
		return err
	}
	if etag != "" {
		opts = append(opts, WithHeader("If-Match", etag))
	}
	return conn.request(ctx, http.MethodDelete, []string{"files", fileID}, nil, nil, nil, opts...)
}

// CopyFile copies a file into another folder, optionally renaming it.
func (conn *Connection) CopyFile(ctx context.Context, fileID, parentID, name string, opts ...RequestOption) (*File, error) {
	if err := validateItemID("file id", fileID); err != nil {
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
	var file File
	if err := conn.request(ctx, http.MethodPost, []string{"files", fileID, "copy"}, nil, body, &file, opts...); err != nil {
		return nil, err
	}
	return &file, nil
}

// FileSharedLink creates or updates the shared link on a file.
func (conn *Connection) FileSharedLink(ctx context.Context, fileID string, options SharedLinkOptions, opts ...RequestOption) (*File, error) {
	if err := validateItemID("file id", fileID); err != nil {
		return nil, err
	}
	var file File
	if err := conn.request(ctx, http.MethodPut, []string{"files", fileID}, nil, options.body(), &file, opts...); err != nil {
		return nil, err
	}
	return &file, nil
}

// FileComments lists the comments on a file.
func (conn *Connection) FileComments(ctx context.Context, fileID string, opts ...RequestOption) ([]Comment, error) {
	if err := validateItemID("file id", fileID); err != nil {
		return nil, err
	}
	var collection CommentCollection
	if err := conn.request(ctx, http.MethodGet, []string{"files", fileID, "comments"}, nil, nil, &collection, opts...); err != nil {
		return nil, err
	}
	return collection.Entries, nil
}
