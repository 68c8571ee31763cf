package usecase

import (
	"context"
	"log"

	authdomain "meetingmate-backend/internal/auth/domain"
	"meetingmate-backend/pkg/drive"
	"meetingmate-backend/pkg/googleauth"
)

// changeTracker walks a user's Drive change feed. A user with no stored
// cursor gets a one-time backfill of their transcript folder instead, since
// the changes feed only reports activity after the cursor was minted.
type changeTracker struct {
	drive DriveService
}

func newChangeTracker(driveSvc DriveService) *changeTracker {
	return &changeTracker{drive: driveSvc}
}

// Collect returns the pending change records and the cursor to store after
// they are processed. The returned cursor is always valid: an expired or
// corrupt cursor is replaced with a fresh one and the feed effectively
// restarts empty.
func (t *changeTracker) Collect(ctx context.Context, cred *googleauth.Credential, user *authdomain.User) ([]drive.ChangeRecord, string, error) {
	if user.DrivePageToken == "" {
		return t.backfill(ctx, cred, user)
	}

	var changes []drive.ChangeRecord
	pageToken := user.DrivePageToken

	for {
		page, err := t.drive.ListChangesPage(ctx, cred, pageToken)
		if err != nil {
			log.Printf("[ChangeTracker] Cursor for user %s failed, resetting: %v", user.ID, err)
			fresh, tokenErr := t.drive.StartPageToken(ctx, cred)
			if tokenErr != nil {
				return nil, "", tokenErr
			}
			return nil, fresh, nil
		}

		changes = append(changes, page.Changes...)

		if page.NewStartPageToken != "" {
			return changes, page.NewStartPageToken, nil
		}
		if page.NextPageToken == "" {
			// Defensive: the API promises one of the two tokens.
			return changes, pageToken, nil
		}
		pageToken = page.NextPageToken
	}
}

// backfill lists the user's transcript folder so pre-existing files are
// ingested once, then mints the cursor that future runs page from.
func (t *changeTracker) backfill(ctx context.Context, cred *googleauth.Credential, user *authdomain.User) ([]drive.ChangeRecord, string, error) {
	token, err := t.drive.StartPageToken(ctx, cred)
	if err != nil {
		return nil, "", err
	}

	if user.MeetFolderID == "" {
		return nil, token, nil
	}

	var files []drive.ChangeRecord
	pageToken := ""
	for {
		page, err := t.drive.ListFolderPage(ctx, cred, user.MeetFolderID, pageToken)
		if err != nil {
			return nil, "", err
		}
		files = append(files, page.Files...)
		if page.NextPageToken == "" {
			break
		}
		pageToken = page.NextPageToken
	}

	log.Printf("[ChangeTracker] Backfilled %d files for user %s", len(files), user.ID)
	return files, token, nil
}
