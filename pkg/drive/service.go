package drive

import (
	"context"
	"errors"
	"fmt"
	"io"

	"meetingmate-backend/pkg/googleauth"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

const (
	MimeText      = "text/plain"
	MimeGoogleDoc = "application/vnd.google-apps.document"
	MimeDocx      = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	mimeFolder    = "application/vnd.google-apps.folder"
)

// ErrUnsupportedMimeType means the file carries no transcript text we can
// extract. Callers skip the item without retrying.
var ErrUnsupportedMimeType = errors.New("unsupported mime type")

// SupportedMime reports whether a Drive file can be turned into transcript text.
func SupportedMime(mime string) bool {
	return mime == MimeText || mime == MimeGoogleDoc || mime == MimeDocx
}

// ChangeRecord is the slice of Drive file metadata the sync core needs.
type ChangeRecord struct {
	FileID   string
	Name     string
	MimeType string
	Trashed  bool
	Parents  []string
}

// ChangePage is one page of the Drive changes feed.
type ChangePage struct {
	Changes []ChangeRecord
	// Exactly one of these is set: NextPageToken mid-feed,
	// NewStartPageToken on the final page.
	NextPageToken     string
	NewStartPageToken string
}

// FilePage is one page of a folder listing.
type FilePage struct {
	Files         []ChangeRecord
	NextPageToken string
}

// Service wraps the Drive v3 API for change tracking and content fetching.
type Service struct{}

func NewService() *Service {
	return &Service{}
}

func (s *Service) driveService(ctx context.Context, cred *googleauth.Credential) (*drive.Service, error) {
	srv, err := drive.NewService(ctx, option.WithHTTPClient(cred.HTTPClient()))
	if err != nil {
		return nil, fmt.Errorf("unable to create Drive service: %v", err)
	}
	return srv, nil
}

// StartPageToken fetches a fresh start-of-feed cursor.
func (s *Service) StartPageToken(ctx context.Context, cred *googleauth.Credential) (string, error) {
	srv, err := s.driveService(ctx, cred)
	if err != nil {
		return "", err
	}

	resp, err := srv.Changes.GetStartPageToken().Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("unable to get start page token: %v", err)
	}
	return resp.StartPageToken, nil
}

// ListChangesPage fetches one page of the changes feed from the given cursor.
func (s *Service) ListChangesPage(ctx context.Context, cred *googleauth.Credential, pageToken string) (*ChangePage, error) {
	srv, err := s.driveService(ctx, cred)
	if err != nil {
		return nil, err
	}

	resp, err := srv.Changes.List(pageToken).
		Spaces("drive").
		Fields("nextPageToken,newStartPageToken,changes(file(id,name,mimeType,trashed,parents))").
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to list changes: %v", err)
	}

	page := &ChangePage{
		NextPageToken:     resp.NextPageToken,
		NewStartPageToken: resp.NewStartPageToken,
	}
	for _, ch := range resp.Changes {
		if ch.File == nil {
			continue
		}
		page.Changes = append(page.Changes, ChangeRecord{
			FileID:   ch.File.Id,
			Name:     ch.File.Name,
			MimeType: ch.File.MimeType,
			Trashed:  ch.File.Trashed,
			Parents:  ch.File.Parents,
		})
	}
	return page, nil
}

// ListFolderPage lists the non-trashed files directly inside a folder.
func (s *Service) ListFolderPage(ctx context.Context, cred *googleauth.Credential, folderID, pageToken string) (*FilePage, error) {
	srv, err := s.driveService(ctx, cred)
	if err != nil {
		return nil, err
	}

	call := srv.Files.List().
		Q(fmt.Sprintf("'%s' in parents and trashed = false", folderID)).
		Spaces("drive").
		Fields("nextPageToken,files(id,name,mimeType,trashed,parents)").
		Context(ctx)
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}

	resp, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("unable to list folder %s: %v", folderID, err)
	}

	page := &FilePage{NextPageToken: resp.NextPageToken}
	for _, f := range resp.Files {
		page.Files = append(page.Files, ChangeRecord{
			FileID:   f.Id,
			Name:     f.Name,
			MimeType: f.MimeType,
			Trashed:  f.Trashed,
			Parents:  f.Parents,
		})
	}
	return page, nil
}

// FindMeetFolder looks up the user's "Meet Recordings" folder, returning ""
// when none exists.
func (s *Service) FindMeetFolder(ctx context.Context, cred *googleauth.Credential) (string, error) {
	srv, err := s.driveService(ctx, cred)
	if err != nil {
		return "", err
	}

	resp, err := srv.Files.List().
		Q("name = 'Meet Recordings' and mimeType = '" + mimeFolder + "' and trashed = false").
		Spaces("drive").
		Fields("files(id)").
		PageSize(1).
		Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("unable to search for Meet Recordings folder: %v", err)
	}

	if len(resp.Files) == 0 {
		return "", nil
	}
	return resp.Files[0].Id, nil
}

// FetchContent retrieves a file's title and plain-text content. Plain text
// downloads raw, Google Docs export to text, and .docx packages are
// unzipped locally. Anything else returns ErrUnsupportedMimeType.
func (s *Service) FetchContent(ctx context.Context, cred *googleauth.Credential, fileID string) (string, string, error) {
	srv, err := s.driveService(ctx, cred)
	if err != nil {
		return "", "", err
	}

	meta, err := srv.Files.Get(fileID).Fields("name,mimeType,modifiedTime").Context(ctx).Do()
	if err != nil {
		return "", "", fmt.Errorf("unable to get file metadata: %v", err)
	}

	switch meta.MimeType {
	case MimeText:
		data, err := s.download(ctx, srv, fileID)
		if err != nil {
			return "", "", err
		}
		return meta.Name, string(data), nil

	case MimeGoogleDoc:
		resp, err := srv.Files.Export(fileID, MimeText).Context(ctx).Download()
		if err != nil {
			return "", "", fmt.Errorf("unable to export document: %v", err)
		}
		defer resp.Body.Close()
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return "", "", fmt.Errorf("unable to read export: %v", err)
		}
		return meta.Name, string(data), nil

	case MimeDocx:
		data, err := s.download(ctx, srv, fileID)
		if err != nil {
			return "", "", err
		}
		text, err := ExtractDocxText(data)
		if err != nil {
			// Keep ingestion moving: surface the failure in the content
			// instead of dropping the item.
			return meta.Name, fmt.Sprintf("[Error reading .docx: %v]", err), nil
		}
		return meta.Name, text, nil

	default:
		return "", "", fmt.Errorf("%w: %s", ErrUnsupportedMimeType, meta.MimeType)
	}
}

func (s *Service) download(ctx context.Context, srv *drive.Service, fileID string) ([]byte, error) {
	resp, err := srv.Files.Get(fileID).Context(ctx).Download()
	if err != nil {
		return nil, fmt.Errorf("unable to download file: %v", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("unable to read download: %v", err)
	}
	return data, nil
}
