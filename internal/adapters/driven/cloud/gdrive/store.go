package gdrive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"github.com/custodia-labs/gradebook-cli/internal/core/domain"
	"github.com/custodia-labs/gradebook-cli/internal/core/ports/driven"
)

const (
	// ProviderName identifies this store in sync status output.
	ProviderName = "gdrive"

	// FileName is the snapshot document in the app data folder.
	FileName = "gradebook.json"

	appDataFolder = "appDataFolder"
	jsonMIMEType  = "application/json"

	// maxSnapshotSize caps how much of the remote file is read.
	maxSnapshotSize = 16 << 20
)

// Verify interface compliance.
var _ driven.CloudStore = (*Store)(nil)

// Store implements driven.CloudStore on the Drive app data folder.
type Store struct {
	svc         *drive.Service
	rateLimiter *RateLimiter

	mu     sync.Mutex
	fileID string
}

// New creates a Drive store from cloud settings.
// The token file must already exist; refreshed tokens are written back to it.
func New(ctx context.Context, settings domain.CloudSettings) (*Store, error) {
	if settings.TokenFile == "" || settings.ClientID == "" {
		return nil, fmt.Errorf("%w: cloud.token_file and cloud.client_id are required", domain.ErrAuthRequired)
	}

	token, err := LoadToken(settings.TokenFile)
	if err != nil {
		return nil, err
	}

	cfg := &oauth2.Config{
		ClientID:     settings.ClientID,
		ClientSecret: settings.ClientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       []string{drive.DriveAppdataScope},
	}
	ts := newPersistingTokenSource(cfg.TokenSource(ctx, token), settings.TokenFile, token)

	svc, err := drive.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("create drive service: %w", err)
	}
	return NewWithService(svc), nil
}

// NewWithService creates a store around an existing Drive service.
func NewWithService(svc *drive.Service) *Store {
	return &Store{
		svc:         svc,
		rateLimiter: NewRateLimiter(DefaultRateLimit),
	}
}

// Name returns the provider name.
func (s *Store) Name() string {
	return ProviderName
}

// Load fetches the snapshot. Returns nil if it has never been saved.
func (s *Store) Load(ctx context.Context) (*domain.Snapshot, error) {
	id, err := s.lookup(ctx)
	if err != nil {
		return nil, err
	}
	if id == "" {
		return nil, nil //nolint:nilnil // nothing saved yet
	}

	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	resp, err := s.svc.Files.Get(id).Context(ctx).Download()
	if err != nil {
		if IsNotFound(err) {
			s.setFileID("")
			return nil, nil //nolint:nilnil // removed remotely
		}
		return nil, s.fail("download snapshot", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxSnapshotSize))
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snap domain.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCorruptSnapshot, err)
	}
	snap.Normalise()
	return &snap, nil
}

// Save writes the snapshot, creating the file on first use.
func (s *Store) Save(ctx context.Context, snap domain.Snapshot) error {
	snap.Normalise()
	if snap.LastUpdated.IsZero() {
		snap.LastUpdated = time.Now().UTC()
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	id, err := s.lookup(ctx)
	if err != nil {
		return err
	}

	if err := s.wait(ctx); err != nil {
		return err
	}

	if id != "" {
		_, err = s.svc.Files.Update(id, &drive.File{}).
			Media(bytes.NewReader(data)).
			Context(ctx).
			Do()
		if err == nil {
			return nil
		}
		if !IsNotFound(err) {
			return s.fail("update snapshot", err)
		}
		// The file was deleted remotely; create it again.
		s.setFileID("")
		if err := s.wait(ctx); err != nil {
			return err
		}
	}

	created, err := s.svc.Files.Create(&drive.File{
		Name:     FileName,
		MimeType: jsonMIMEType,
		Parents:  []string{appDataFolder},
	}).
		Media(bytes.NewReader(data)).
		Fields("id").
		Context(ctx).
		Do()
	if err != nil {
		return s.fail("create snapshot", err)
	}
	s.setFileID(created.Id)
	return nil
}

// lookup finds the snapshot file ID, caching it after the first hit.
func (s *Store) lookup(ctx context.Context) (string, error) {
	s.mu.Lock()
	id := s.fileID
	s.mu.Unlock()
	if id != "" {
		return id, nil
	}

	if err := s.wait(ctx); err != nil {
		return "", err
	}
	list, err := s.svc.Files.List().
		Spaces(appDataFolder).
		Q(fmt.Sprintf("name = '%s' and trashed = false", FileName)).
		Fields("files(id, name)").
		PageSize(1).
		Context(ctx).
		Do()
	if err != nil {
		return "", s.fail("find snapshot", err)
	}
	if len(list.Files) == 0 {
		return "", nil
	}

	s.setFileID(list.Files[0].Id)
	return list.Files[0].Id, nil
}

func (s *Store) setFileID(id string) {
	s.mu.Lock()
	s.fileID = id
	s.mu.Unlock()
}

func (s *Store) wait(ctx context.Context) error {
	if err := s.rateLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}
	return nil
}

// fail records rate limiting and maps the error onto domain errors.
func (s *Store) fail(op string, err error) error {
	if IsRateLimited(err) {
		s.rateLimiter.RecordRateLimitError(retryAfter(err))
	}
	return wrapError(op, err)
}
