package box

import (
	"net/url"
	"strconv"
	"strings"
)

// Entity is the minimal {type, id, name} triple Box embeds everywhere.
type Entity struct {
	Type string `json:"type"`
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// SharedLink is the shared-link object attached to files and folders.
type SharedLink struct {
	URL           string `json:"url,omitempty"`
	DownloadURL   string `json:"download_url,omitempty"`
	Access        string `json:"access,omitempty"`
	Password      string `json:"password,omitempty"`
	DownloadCount int    `json:"download_count,omitempty"`
	PreviewCount  int    `json:"preview_count,omitempty"`
}

// Folder is a Box folder object.
type Folder struct {
	Entity
	Etag           string          `json:"etag,omitempty"`
	SequenceID     string          `json:"sequence_id,omitempty"`
	Description    string          `json:"description,omitempty"`
	Size           int64           `json:"size,omitempty"`
	CreatedAt      string          `json:"created_at,omitempty"`
	ModifiedAt     string          `json:"modified_at,omitempty"`
	TrashedAt      string          `json:"trashed_at,omitempty"`
	Parent         *Entity         `json:"parent,omitempty"`
	OwnedBy        *User           `json:"owned_by,omitempty"`
	SharedLink     *SharedLink     `json:"shared_link,omitempty"`
	ItemStatus     string          `json:"item_status,omitempty"`
	ItemCollection *ItemCollection `json:"item_collection,omitempty"`
	Tags           []string        `json:"tags,omitempty"`
}

// File is a Box file object.
type File struct {
	Entity
	Etag        string      `json:"etag,omitempty"`
	SequenceID  string      `json:"sequence_id,omitempty"`
	SHA1        string      `json:"sha1,omitempty"`
	Description string      `json:"description,omitempty"`
	Size        int64       `json:"size,omitempty"`
	CreatedAt   string      `json:"created_at,omitempty"`
	ModifiedAt  string      `json:"modified_at,omitempty"`
	TrashedAt   string      `json:"trashed_at,omitempty"`
	Parent      *Entity     `json:"parent,omitempty"`
	OwnedBy     *User       `json:"owned_by,omitempty"`
	SharedLink  *SharedLink `json:"shared_link,omitempty"`
	ItemStatus  string      `json:"item_status,omitempty"`
	Tags        []string    `json:"tags,omitempty"`
}

// Item is a folder entry; Type distinguishes files, folders and web links.
type Item struct {
	Entity
	Etag       string `json:"etag,omitempty"`
	SequenceID string `json:"sequence_id,omitempty"`
	Size       int64  `json:"size,omitempty"`
}

// ItemCollection is a paged listing of items.
type ItemCollection struct {
	TotalCount int    `json:"total_count"`
	Entries    []Item `json:"entries"`
	Offset     int    `json:"offset,omitempty"`
	Limit      int    `json:"limit,omitempty"`
}

// User is a Box user object.
type User struct {
	Type      string `json:"type,omitempty"`
	ID        string `json:"id,omitempty"`
	Name      string `json:"name,omitempty"`
	Login     string `json:"login,omitempty"`
	Language  string `json:"language,omitempty"`
	SpaceUsed int64  `json:"space_used,omitempty"`
	MaxUpload int64  `json:"max_upload_size,omitempty"`
	Status    string `json:"status,omitempty"`
}

// Collaboration is a Box collaboration object.
type Collaboration struct {
	Type           string  `json:"type,omitempty"`
	ID             string  `json:"id,omitempty"`
	Role           string  `json:"role,omitempty"`
	Status         string  `json:"status,omitempty"`
	AccessibleBy   *User   `json:"accessible_by,omitempty"`
	Item           *Entity `json:"item,omitempty"`
	CreatedAt      string  `json:"created_at,omitempty"`
	ModifiedAt     string  `json:"modified_at,omitempty"`
	ExpiresAt      string  `json:"expires_at,omitempty"`
	AcknowledgedAt string  `json:"acknowledged_at,omitempty"`
}

// CollaborationCollection is a listing of collaborations.
type CollaborationCollection struct {
	TotalCount int             `json:"total_count"`
	Entries    []Collaboration `json:"entries"`
}

// Comment is a Box comment object.
type Comment struct {
	Type      string `json:"type,omitempty"`
	ID        string `json:"id,omitempty"`
	Message   string `json:"message,omitempty"`
	CreatedBy *User  `json:"created_by,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

// CommentCollection is a listing of comments.
type CommentCollection struct {
	TotalCount int       `json:"total_count"`
	Entries    []Comment `json:"entries"`
}

// SearchResults is the response of the search endpoint.
type SearchResults struct {
	TotalCount int    `json:"total_count"`
	Entries    []Item `json:"entries"`
	Offset     int    `json:"offset,omitempty"`
	Limit      int    `json:"limit,omitempty"`
}

// ItemOptions controls listing calls.
type ItemOptions struct {
	// Fields restricts the attributes returned per item.
	Fields []string
	// Limit caps the number of returned items; 0 uses the API default.
	Limit int
	// Offset is the paging offset.
	Offset int
}

func (o ItemOptions) query() url.Values {
	q := url.Values{}
	if len(o.Fields) > 0 {
		q.Set("fields", strings.Join(o.Fields, ","))
	}
	if o.Limit > 0 {
		q.Set("limit", strconv.Itoa(o.Limit))
	}
	if o.Offset > 0 {
		q.Set("offset", strconv.Itoa(o.Offset))
	}
	return q
}

// SearchOptions controls the search endpoint.
type SearchOptions struct {
	// Type restricts results to "file", "folder" or "web_link".
	Type string
	// Fields restricts the attributes returned per result.
	Fields []string
	// Limit caps the number of results; 0 uses the API default.
	Limit int
	// Offset is the paging offset.
	Offset int
	// AncestorFolderIDs restricts results to descendants of these folders.
	AncestorFolderIDs []string
	// FileExtensions restricts results by extension, e.g. "pdf".
	FileExtensions []string
	// ContentTypes restricts which fields the query matches against,
	// e.g. "name", "description", "file_content".
	ContentTypes []string
}

func (o SearchOptions) query() url.Values {
	q := url.Values{}
	if o.Type != "" {
		q.Set("type", o.Type)
	}
	if len(o.Fields) > 0 {
		q.Set("fields", strings.Join(o.Fields, ","))
	}
	if o.Limit > 0 {
		q.Set("limit", strconv.Itoa(o.Limit))
	}
	if o.Offset > 0 {
		q.Set("offset", strconv.Itoa(o.Offset))
	}
	if len(o.AncestorFolderIDs) > 0 {
		q.Set("ancestor_folder_ids", strings.Join(o.AncestorFolderIDs, ","))
	}
	if len(o.FileExtensions) > 0 {
		q.Set("file_extensions", strings.Join(o.FileExtensions, ","))
	}
	if len(o.ContentTypes) > 0 {
		q.Set("content_types", strings.Join(o.ContentTypes, ","))
	}
	return q
}

// DeleteOptions controls folder deletion.
type DeleteOptions struct {
	// Recursive deletes non-empty folders.
	Recursive bool
	// Etag, when set, is sent as If-Match so deletion fails on a stale view.
	Etag string
}

// SharedLinkOptions controls shared-link creation and update.
type SharedLinkOptions struct {
	// Access is "open", "company" or "collaborators". Empty uses the
	// folder's enterprise default.
	Access string
	// Password protects the link; requires Access "open".
	Password string
	// UnsharedAt disables the link at the given RFC 3339 timestamp.
	UnsharedAt string
	// CanDownload permits downloads through the link.
	CanDownload *bool
}

func (o SharedLinkOptions) body() map[string]any {
	link := map[string]any{}
	if o.Access != "" {
		link["access"] = o.Access
	}
	if o.Password != "" {
		link["password"] = o.Password
	}
	if o.UnsharedAt != "" {
		link["unshared_at"] = o.UnsharedAt
	}
	if o.CanDownload != nil {
		link["permissions"] = map[string]any{"can_download": *o.CanDownload}
	}
	return map[string]any{"shared_link": link}
}

// FolderUpdate lists the folder attributes an update call may change.
type FolderUpdate struct {
	Name        string   `json:"name,omitempty"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// FileUpdate lists the file attributes an update call may change.
type FileUpdate struct {
	Name        string   `json:"name,omitempty"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// CollaborationParams describes a collaboration to create.
type CollaborationParams struct {
	// ItemType is "file" or "folder".
	ItemType string
	// ItemID is the numeric id of the item being shared.
	ItemID string
	// Login invites by email address. Mutually exclusive with UserID.
	Login string
	// UserID invites an existing Box user by id.
	UserID string
	// Role is the granted role, e.g. "editor" or "viewer".
	Role string
}
